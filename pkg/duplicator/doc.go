// Package duplicator clones files through the filesystem's copy-on-write
// mechanism where one exists. A clone shares extents with the source, so
// sparseness is preserved for free. Callers are expected to fall back to a
// regular sparse copy when cloning fails.
package duplicator
