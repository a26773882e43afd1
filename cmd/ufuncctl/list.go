package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// kernelDescription names a kernel shape runCmd knows how to build. The
// listing is kept by hand: runDispatch's switch on --kernel does not read it.
type kernelDescription struct {
	name        string
	description string
}

func availableKernels() []kernelDescription {
	return []kernelDescription{
		{"counting", "tallies total invocations only, for throughput runs"},
		{"recorder", "records one visit per index and checks exact coverage"},
		{"chaos", "recorder with randomized per-call jitter, for stress runs"},
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the kernels ufuncctl run can dispatch",
	Long:  "Display the built-in ufunctest kernels available to the run subcommand's --kernel flag.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Available kernels:")
		fmt.Println()
		for _, k := range availableKernels() {
			fmt.Printf("  %-10s %s\n", k.name, k.description)
		}
	},
}
