package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sparsetools/sparsecp/pkg/blockmap"
	"github.com/sparsetools/sparsecp/pkg/diskusage"
)

const mapWidth = 32

func NewCmdStat() *cobra.Command {
	var flagMap bool

	var statCmd = &cobra.Command{
		Use:   "stat [file]...",
		Short: "Report how sparse a file really is",
		Long: `Shows, per file, the apparent size, the storage actually allocated to
it, and the data and hole regions found by scanning its content. With
--map a block map is rendered so you can see where the data lives.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, path := range args {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if err := statOne(out, path, flagMap); err != nil {
					return err
				}
			}
			return nil
		},
	}

	statCmd.Flags().BoolVar(&flagMap, "map", false,
		"render a block map of data vs holes")

	return statCmd
}

func statOne(out io.Writer, path string, withMap bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stating %s: %w", path, err)
	}
	m, err := blockmap.Scan(f, info.Size(), mapWidth)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}

	fmt.Fprintf(out, "%s:\n", path)
	fmt.Fprintf(out, "  apparent size:  %s (%d bytes)\n",
		humanize.IBytes(uint64(info.Size())), info.Size())
	if allocated, err := diskusage.AllocatedBytes(path); err == nil {
		fmt.Fprintf(out, "  allocated size: %s (%d bytes)\n",
			humanize.IBytes(uint64(allocated)), allocated)
	} else {
		fmt.Fprintf(out, "  allocated size: unavailable (%v)\n", err)
	}
	fmt.Fprintf(out, "  data:  %d regions, %s\n",
		m.DataRegions, humanize.IBytes(uint64(m.DataBytes)))
	fmt.Fprintf(out, "  holes: %d regions, %s\n",
		m.HoleRegions, humanize.IBytes(uint64(m.HoleBytes)))
	if info.Size() > 0 {
		fmt.Fprintf(out, "  sparseness: %.1f%%\n",
			100*float64(m.HoleBytes)/float64(info.Size()))
	}
	if withMap {
		fmt.Fprintf(out, "  map: %v (block = %s)\n",
			m, humanize.IBytes(uint64(m.BlockSize())))
	}
	return nil
}
