package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

var (
	benchTime string

	benchCmd = &cobra.Command{
		Use:     "bench",
		Aliases: []string{"benchmark"},
		Short:   "Run the package's Go benchmarks",
		Long: `Run the ufunc package's benchmarks via "go test -bench".

This is a thin wrapper: it shells out to the Go toolchain rather than
reimplementing benchmark timing, so results come from the same -bench
machinery any contributor would run directly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(benchTime)
		},
	}
)

func init() {
	benchCmd.Flags().StringVar(&benchTime, "time", "2s", "benchmark duration per test, passed to -benchtime")
}

func runBench(duration string) error {
	goArgs := []string{"test", "-bench", ".", "-benchtime", duration, "-run", "^$", "./..."}
	c := exec.Command("go", goArgs...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Stdin = os.Stdin

	if err := c.Run(); err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}
	return nil
}
