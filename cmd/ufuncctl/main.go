package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:   "ufuncctl",
		Short: "Drive and benchmark the ufunc work-stealing dispatcher",
		Long: `ufuncctl is a CLI tool for exercising the ufunc dispatcher outside of
a test binary.

Run a synthetic kernel over an iteration space, list the kernels built
into the package's ufunctest helpers, or run the package's Go
benchmarks with a chosen duration.`,
		Version: version,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(listCmd)
}
