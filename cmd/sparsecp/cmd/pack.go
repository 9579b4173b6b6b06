package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sparsetools/sparsecp/pkg/sparsepack"
)

func NewCmdPack() *cobra.Command {
	var (
		flagLevel      int
		flagBufferSize string
	)

	var packCmd = &cobra.Command{
		Use:   "pack [src] [archive]",
		Short: "Archive a file so its holes survive pipes and networks",
		Long: `Scans src for data and zero regions and writes them as a compressed
record stream. The archive can be sent through any byte transport and
unpacked back into a sparse file on the other side.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcPath, archivePath := args[0], args[1]

			bufferSize, err := resolveBufferSize(flagBufferSize)
			if err != nil {
				return err
			}
			opts := []sparsepack.Option{
				sparsepack.WithLevel(flagLevel),
				sparsepack.WithBufferSize(bufferSize),
			}
			if TheAppConfig.Verbose {
				opts = append(opts, sparsepack.WithLogFunction(log.Printf))
			}

			in, err := os.Open(srcPath)
			if err != nil {
				return fmt.Errorf("opening input file %s: %w", srcPath, err)
			}
			defer in.Close()

			out, err := os.Create(archivePath)
			if err != nil {
				return fmt.Errorf("creating archive %s: %w", archivePath, err)
			}
			data, holes, err := sparsepack.Pack(out, in, opts...)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("packing to %s: %w", archivePath, err)
			}

			fmt.Printf("packed %s: %s of data, %s of holes\n", archivePath,
				humanize.IBytes(uint64(data)), humanize.IBytes(uint64(holes)))
			return nil
		},
	}

	packCmd.Flags().IntVar(&flagLevel, "level", 1,
		"zstd compression level (1..22)")
	packCmd.Flags().StringVar(&flagBufferSize, "buffer-size", "",
		"region scan buffer capacity, e.g. 64KiB")

	return packCmd
}
