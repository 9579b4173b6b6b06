package cmd

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/sparsetools/sparsecp/pkg/duplicator"
	"github.com/sparsetools/sparsecp/pkg/progress"
	"github.com/sparsetools/sparsecp/pkg/sparsefile"
)

func NewCmdCopy() *cobra.Command {
	var (
		flagDense      bool
		flagReflink    bool
		flagInPlace    bool
		flagBufferSize string
		flagMinHole    string
		flagNoProgress bool
	)

	var copyCmd = &cobra.Command{
		Use:   "copy [src] [dst]",
		Short: "Copy a file, recreating its runs of zeros as holes",
		Long: `Copies src to dst while classifying the content into data and zero
regions. Zero regions become holes in the destination instead of written
zeros, so the copy of a sparse file stays sparse. Works on any input,
including pipes and filesystems without hole-probing support.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcPath, dstPath := args[0], args[1]

			if flagDense && flagInPlace {
				return errors.New("--dense and --in-place are mutually exclusive")
			}
			bufferSize, err := resolveBufferSize(flagBufferSize)
			if err != nil {
				return err
			}
			minHole, err := resolveMinHole(flagMinHole)
			if err != nil {
				return err
			}
			opts := []sparsefile.Option{
				sparsefile.WithBufferSize(bufferSize),
				sparsefile.WithMinHoleSize(minHole),
			}

			if flagReflink {
				if err := duplicator.CloneFile(srcPath, dstPath); err == nil {
					fmt.Printf("cloned %s to %s\n", srcPath, dstPath)
					return nil
				} else if TheAppConfig.Verbose {
					log.Printf("clone failed, falling back to sparse copy: %v", err)
				}
			}

			in, err := os.Open(srcPath)
			if err != nil {
				return fmt.Errorf("opening input file %s: %w", srcPath, err)
			}
			defer in.Close()

			info, err := in.Stat()
			if err != nil {
				return fmt.Errorf("stating input file %s: %w", srcPath, err)
			}

			var bar *progressbar.ProgressBar
			if flagNoProgress || TheAppConfig.NoProgress {
				bar = progress.BytesSilent(info.Size())
			} else {
				bar = progress.Bytes(info.Size(), "copying")
			}
			reader := progressbar.NewReader(in, bar)

			var written, skipped int64
			switch {
			case flagInPlace:
				out, err := os.OpenFile(dstPath, os.O_RDWR|os.O_CREATE, 0o666)
				if err != nil {
					return fmt.Errorf("opening output file %s: %w", dstPath, err)
				}
				written, skipped, err = sparsefile.Overwrite(out, &reader, opts...)
				if cerr := out.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return fmt.Errorf("overwriting %s: %w", dstPath, err)
				}
			case flagDense:
				out, err := os.Create(dstPath)
				if err != nil {
					return fmt.Errorf("creating output file %s: %w", dstPath, err)
				}
				written, err = sparsefile.CopyDense(out, &reader, opts...)
				if cerr := out.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return fmt.Errorf("copying to %s: %w", dstPath, err)
				}
			default:
				out, err := os.Create(dstPath)
				if err != nil {
					return fmt.Errorf("creating output file %s: %w", dstPath, err)
				}
				written, skipped, err = sparsefile.Copy(out, &reader, opts...)
				if cerr := out.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return fmt.Errorf("copying to %s: %w", dstPath, err)
				}
			}

			_ = bar.Finish()
			switch {
			case flagInPlace:
				fmt.Printf("updated %s: %s rewritten, %s unchanged\n", dstPath,
					humanize.IBytes(uint64(written)), humanize.IBytes(uint64(skipped)))
			case flagDense:
				fmt.Printf("copied %s: %s written\n", dstPath, humanize.IBytes(uint64(written)))
			default:
				fmt.Printf("copied %s: %s written, %s skipped as holes\n", dstPath,
					humanize.IBytes(uint64(written)), humanize.IBytes(uint64(skipped)))
			}
			return nil
		},
	}

	copyCmd.Flags().BoolVar(&flagDense, "dense", false,
		"write every byte, do not create holes")
	copyCmd.Flags().BoolVar(&flagReflink, "reflink", false,
		"try a filesystem clone first, fall back to a sparse copy")
	copyCmd.Flags().BoolVar(&flagInPlace, "in-place", false,
		"rewrite an existing destination, touching only blocks that differ")
	copyCmd.Flags().StringVar(&flagBufferSize, "buffer-size", "",
		"read/write buffer capacity, e.g. 64KiB")
	copyCmd.Flags().StringVar(&flagMinHole, "min-hole", "",
		"shortest zero run kept sparse; shorter runs are written as zeros")
	copyCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false,
		"disable the progress bar")

	return copyCmd
}

// resolveBufferSize turns the flag value into bytes, deferring to the
// configured buffer_size when the flag is empty.
func resolveBufferSize(flagValue string) (int, error) {
	if flagValue == "" {
		return TheAppConfig.BufferSizeBytes()
	}
	v, err := humanize.ParseBytes(flagValue)
	if err != nil {
		return 0, fmt.Errorf("invalid --buffer-size %q: %w", flagValue, err)
	}
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("--buffer-size %q is too large", flagValue)
	}
	return int(v), nil
}

// resolveMinHole turns the flag value into bytes, deferring to the
// configured min_hole_size when the flag is empty.
func resolveMinHole(flagValue string) (int64, error) {
	if flagValue == "" {
		return TheAppConfig.MinHoleSizeBytes()
	}
	v, err := humanize.ParseBytes(flagValue)
	if err != nil {
		return 0, fmt.Errorf("invalid --min-hole %q: %w", flagValue, err)
	}
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("--min-hole %q is too large", flagValue)
	}
	return int64(v), nil
}
