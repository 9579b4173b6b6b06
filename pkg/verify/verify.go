// Package verify checks that two files carry identical content by digesting
// them concurrently.
package verify

import (
	"context"
	"fmt"
	"os"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"
)

// Result describes one digested file.
type Result struct {
	Path   string
	Size   int64
	Digest digest.Digest
}

// Match reports whether the two results describe identical content. Sizes
// are compared as well as digests, so a sparse copy that changed the
// apparent length is flagged even though the hash of the shorter stream
// could theoretically collide.
func (r Result) Match(other Result) bool {
	return r.Size == other.Size && r.Digest == other.Digest
}

// File computes the sha256 digest and apparent size of one file.
func File(ctx context.Context, path string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("stating %s: %w", path, err)
	}
	d, err := digest.FromReader(f)
	if err != nil {
		return Result{}, fmt.Errorf("digesting %s: %w", path, err)
	}
	return Result{Path: path, Size: info.Size(), Digest: d}, nil
}

// Compare digests both files concurrently, one goroutine per file.
func Compare(ctx context.Context, pathA, pathB string) (a Result, b Result, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = File(ctx, pathA)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = File(ctx, pathB)
		return err
	})
	return a, b, g.Wait()
}
