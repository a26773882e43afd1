package ufunc

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// DefaultThreadCount returns a reasonable ThreadCount for NewDispatcher on
// the current host: runtime.NumCPU(), the same quantity the Go scheduler
// itself uses to size GOMAXPROCS by default. Callers with their own sizing
// policy (a fixed worker count, a fraction of NumCPU reserved for other
// work) should pass it directly to NewDispatcher instead.
func DefaultThreadCount() int {
	return runtime.NumCPU()
}

// VectorWidth reports the widest SIMD instruction set the host CPU
// advertises, amd64 only. It is informational: nothing in this package
// changes its chunking or stealing behavior based on it. A caller wiring
// Dispatcher into a numeric kernel library can log or tag it alongside
// FieldVectorWidth to explain why two otherwise-identical hosts show
// different per-iteration kernel throughput.
func VectorWidth() string {
	switch {
	case cpu.X86.HasAVX512F:
		return "avx512"
	case cpu.X86.HasAVX2:
		return "avx2"
	case cpu.X86.HasAVX:
		return "avx"
	case cpu.X86.HasSSE42:
		return "sse4.2"
	default:
		return "scalar"
	}
}
