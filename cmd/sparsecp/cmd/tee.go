package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func NewCmdTee() *cobra.Command {
	var flagAppend bool

	var teeCmd = &cobra.Command{
		Use:   "tee [file]...",
		Short: "Duplicate stdin to stdout and every named file",
		Long: `Reads standard input until end of stream and writes every chunk to
standard output and to each named file. Files are created and truncated
unless --append keeps their existing content. The first failing write
aborts the whole run.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			if flagAppend {
				flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
			}

			files := make([]*os.File, 0, len(args))
			defer func() {
				for _, f := range files {
					f.Close()
				}
			}()
			sinks := []io.Writer{cmd.OutOrStdout()}
			for _, path := range args {
				f, err := os.OpenFile(path, flags, 0o666)
				if err != nil {
					return fmt.Errorf("opening %s: %w", path, err)
				}
				files = append(files, f)
				sinks = append(sinks, f)
			}

			if _, err := io.Copy(io.MultiWriter(sinks...), cmd.InOrStdin()); err != nil {
				return fmt.Errorf("duplicating input: %w", err)
			}
			var closeErr error
			for i, f := range files {
				if err := f.Close(); err != nil && closeErr == nil {
					closeErr = fmt.Errorf("closing %s: %w", args[i], err)
				}
			}
			files = nil
			return closeErr
		},
	}

	teeCmd.Flags().BoolVarP(&flagAppend, "append", "a", false,
		"append to the files instead of truncating them")

	return teeCmd
}
