package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func InitializeCommands() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "sparsecp",
		Short: "sparsecp copies files without materializing their holes.",
		Long: `sparsecp classifies a byte stream into data and zero regions and recreates
the zero regions as holes in the destination, so sparse files keep their
small allocated size when copied, archived or piped through transports
that know nothing about filesystem extents.`,
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(cmd.Short)
			return nil
		},
	}

	rootCmd.SilenceErrors = false
	rootCmd.SilenceUsage = false

	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "",
		"config file (default is $HOME/.sparsecp/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"log extra detail to stderr")

	cobra.OnInitialize(func() {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	})

	rootCmd.AddCommand(
		NewCmdCopy(),
		NewCmdSeek(),
		NewCmdTee(),
		NewCmdStat(),
		NewCmdPack(),
		NewCmdUnpack(),
		NewCmdVerify(),
		NewCmdVersion(),
	)

	return rootCmd
}

func Execute(rootCmd *cobra.Command) {
	rootCmd.Version = Version
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
