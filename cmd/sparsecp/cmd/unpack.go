package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sparsetools/sparsecp/pkg/sparsepack"
)

func NewCmdUnpack() *cobra.Command {
	var flagBufferSize string

	var unpackCmd = &cobra.Command{
		Use:   "unpack [archive] [dst]",
		Short: "Restore a file from a sparse archive, holes included",
		Long: `Replays the archive's record stream into dst. Zero regions become
holes again instead of written zeros, so the restored file allocates no
more storage than the original did.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			archivePath, dstPath := args[0], args[1]

			bufferSize, err := resolveBufferSize(flagBufferSize)
			if err != nil {
				return err
			}
			opts := []sparsepack.Option{
				sparsepack.WithBufferSize(bufferSize),
			}
			if TheAppConfig.Verbose {
				opts = append(opts, sparsepack.WithLogFunction(log.Printf))
			}

			in, err := os.Open(archivePath)
			if err != nil {
				return fmt.Errorf("opening archive %s: %w", archivePath, err)
			}
			defer in.Close()

			out, err := os.Create(dstPath)
			if err != nil {
				return fmt.Errorf("creating output file %s: %w", dstPath, err)
			}
			written, skipped, err := sparsepack.Unpack(out, in, opts...)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("unpacking to %s: %w", dstPath, err)
			}

			fmt.Printf("unpacked %s: %s written, %s skipped as holes\n", dstPath,
				humanize.IBytes(uint64(written)), humanize.IBytes(uint64(skipped)))
			return nil
		},
	}

	unpackCmd.Flags().StringVar(&flagBufferSize, "buffer-size", "",
		"write buffer capacity, e.g. 64KiB")

	return unpackCmd
}
