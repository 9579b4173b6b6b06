// Package diskusage measures how many filesystem blocks actually back a
// file, which is what distinguishes a sparse copy from a dense one.
package diskusage

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// AllocatedBytes reports the bytes of storage allocated to path, as
// measured by du. Holes in sparse files take no blocks and do not count.
func AllocatedBytes(path string) (int64, error) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin", "linux":
		// -k is the block unit both GNU and BSD du understand.
		cmd = exec.Command("du", "-k", path)
	default:
		return 0, fmt.Errorf("unsupported platform")
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return 0, err
	}
	return parseDuOutput(out.String())
}

// parseDuOutput extracts the leading block count from du -k output, which
// is "<blocks>\t<path>" with 1024-byte blocks.
func parseDuOutput(s string) (int64, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return 0, fmt.Errorf("unexpected du output %q", s)
	}
	blocks, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected du output %q: %w", s, err)
	}
	return blocks * 1024, nil
}
