package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/hogfinance/hogpool/core/backend/badger_driver"
	_ "github.com/hogfinance/hogpool/core/backend/bolt_driver"
	_ "github.com/hogfinance/hogpool/core/backend/buntdb_driver"
	_ "github.com/hogfinance/hogpool/core/backend/leveldb_driver"
)

// Version is set by the build
var Version = "dev"

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error :", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var logLevel string
	rootCmd := &cobra.Command{
		Use:           "hogsim",
		Short:         "runs and serves HOG reward pool scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (crit, error, warn, info, debug, trace)")
	rootCmd.AddCommand(runCommand(&logLevel))
	rootCmd.AddCommand(serveCommand(&logLevel))
	rootCmd.AddCommand(queryCommand())
	rootCmd.AddCommand(versionCommand())
	return rootCmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "prints the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "hogsim", Version)
		},
	}
}
