package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sparsetools/sparsecp/pkg/verify"
)

func NewCmdVerify() *cobra.Command {
	var verifyCmd = &cobra.Command{
		Use:   "verify [file] [file]",
		Short: "Check that two files carry identical content",
		Long: `Digests both files concurrently and compares their apparent sizes and
sha256 digests. Holes read back as zeros, so a sparse copy and a dense
copy of the same content verify as equal.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := verify.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %d bytes  %s\n", a.Digest, a.Size, a.Path)
			fmt.Fprintf(out, "%s  %d bytes  %s\n", b.Digest, b.Size, b.Path)
			if !a.Match(b) {
				return fmt.Errorf("MISMATCH: %s and %s differ", a.Path, b.Path)
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}

	return verifyCmd
}
