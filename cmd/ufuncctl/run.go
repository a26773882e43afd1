package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/vectorlane/ufunc"
	"github.com/vectorlane/ufunc/ufunctest"
)

var (
	runN        int
	runThreads  int
	runKernel   string
	runMaxDelay time.Duration

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Dispatch a synthetic kernel over an iteration space",
		Long: `Run builds an iteration space of --n indices, partitions it across
--threads workers via a ufunc.Dispatcher, and reports how the run went:
elapsed time, total steals, and (for the recorder/chaos kernels) whether
every index was visited exactly once.

See "ufuncctl list" for the kernel shapes --kernel accepts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(runN, runThreads, runKernel, runMaxDelay)
		},
	}
)

func init() {
	runCmd.Flags().IntVar(&runN, "n", 1000, "iteration space size")
	runCmd.Flags().IntVar(&runThreads, "threads", ufunc.DefaultThreadCount(), "worker (ThreadCount) count")
	runCmd.Flags().StringVar(&runKernel, "kernel", "recorder", "kernel shape: counting, recorder, or chaos")
	runCmd.Flags().DurationVar(&runMaxDelay, "max-delay", 0, "chaos kernel jitter ceiling (chaos only)")
}

func runDispatch(n, threads int, kernel string, maxDelay time.Duration) error {
	d := ufunc.NewDispatcher(threads)
	defer d.Close()

	var steals int64
	_ = d.OnSteal(func(_ context.Context, _ ufunc.DispatchEvent) error {
		atomic.AddInt64(&steals, 1)
		return nil
	})

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	var argsPtr []unsafe.Pointer
	var steps []int
	if n > 0 {
		argsPtr = []unsafe.Pointer{unsafe.Pointer(&indices[0])}
		steps = []int{int(unsafe.Sizeof(indices[0]))}
	}

	start := time.Now()

	switch kernel {
	case "counting":
		ck := &ufunctest.CountingKernel{}
		d.Dispatch(ck.Kernel(), argsPtr, []int{n}, steps, nil)
		elapsed := time.Since(start)
		fmt.Printf("kernel=counting n=%d threads=%d elapsed=%v calls=%d steals=%d\n", n, threads, elapsed, ck.Calls(), atomic.LoadInt64(&steals))
	case "recorder":
		rec := ufunctest.NewRecorder(n)
		d.Dispatch(rec.Kernel(), argsPtr, []int{n}, steps, nil)
		elapsed := time.Since(start)
		ok, badIdx, badCount := rec.AssertCoverage()
		fmt.Printf("kernel=recorder n=%d threads=%d elapsed=%v coverage_ok=%v steals=%d\n", n, threads, elapsed, ok, atomic.LoadInt64(&steals))
		if !ok {
			return fmt.Errorf("coverage failed at index %d: visited %d times", badIdx, badCount)
		}
	case "chaos":
		ck := ufunctest.NewChaosKernel(n, maxDelay)
		d.Dispatch(ck.Kernel(), argsPtr, []int{n}, steps, nil)
		elapsed := time.Since(start)
		ok, badIdx, badCount := ck.Recorder.AssertCoverage()
		fmt.Printf("kernel=chaos n=%d threads=%d max_delay=%v elapsed=%v coverage_ok=%v steals=%d\n", n, threads, maxDelay, elapsed, ok, atomic.LoadInt64(&steals))
		if !ok {
			return fmt.Errorf("coverage failed at index %d: visited %d times", badIdx, badCount)
		}
	default:
		return fmt.Errorf("unknown kernel %q: want one of counting, recorder, chaos", kernel)
	}

	return nil
}
