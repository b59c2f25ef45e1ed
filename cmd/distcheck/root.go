package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set via ldflags at build time.
var version = "dev"

// Global flags.
var (
	configPath string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "distcheck",
	Short: "Verify checksums and signatures of published download artifacts",
	Long: `distcheck scans a multi-project distribution tree and verifies, for every
release artifact, that its content matches the published checksum sidecar
and that its detached signature traces back to a key published in the
project's KEYS file. Findings are collected per file and dispatched to
the project's private list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "checker.yaml", "Path to the checker configuration file")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Only log warnings and errors")
	rootCmd.Version = version
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
