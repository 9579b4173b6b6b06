package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sparsetools/sparsecp/pkg/seekio"
)

func NewCmdSeek() *cobra.Command {
	var seekCmd = &cobra.Command{
		Use:   "seek [file] {r<length>|R<length>|w<string>|s<offset>}...",
		Short: "Run a sequence of reads, writes and seeks against a file",
		Long: `Executes each operation argument in order against the file, sharing one
offset: r reads bytes and prints them as text, R reads bytes and prints
them as hex, w writes a string at the current offset, s seeks to an
absolute offset. Handy for poking holes into files and looking at what is
really there.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			runErr := seekio.Run(f, args[1:], cmd.OutOrStdout())
			if cerr := f.Close(); runErr == nil && cerr != nil {
				return fmt.Errorf("closing %s: %w", path, cerr)
			}
			return runErr
		},
	}

	return seekCmd
}
