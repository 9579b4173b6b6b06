package duplicator

import (
	"fmt"
	"os/exec"
	"strings"
)

// CloneFile copies srcFile to dstFile with cp --reflink=auto, sharing
// extents on filesystems that support copy-on-write clones (btrfs, xfs).
func CloneFile(srcFile, dstFile string) error {
	cmd := exec.Command("cp", "--reflink=auto", "--", srcFile, dstFile)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("clone %s to %s: %s", srcFile, dstFile, msg)
		}
		return fmt.Errorf("clone %s to %s: %w", srcFile, dstFile, err)
	}
	return nil
}
