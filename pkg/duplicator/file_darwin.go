package duplicator

import (
	"fmt"
	"os/exec"
	"strings"
)

// CloneFile copies srcFile to dstFile with cp -c, a clonefile(2) clone on
// APFS. Fails on filesystems without clone support.
func CloneFile(srcFile, dstFile string) error {
	cmd := exec.Command("/bin/cp", "-c", srcFile, dstFile)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("clone %s to %s: %s", srcFile, dstFile, msg)
		}
		return fmt.Errorf("clone %s to %s: %w", srcFile, dstFile, err)
	}
	return nil
}
