package ufunc

import (
	"testing"
	"unsafe"
)

func TestSharedContextElementArgs(t *testing.T) {
	a := []int32{10, 20, 30, 40}
	b := []int64{1, 2, 3, 4}

	shared := &sharedContext{
		args: []unsafe.Pointer{
			unsafe.Pointer(&a[0]),
			unsafe.Pointer(&b[0]),
		},
		steps: []int{
			int(unsafe.Sizeof(a[0])),
			int(unsafe.Sizeof(b[0])),
		},
	}

	for item := 0; item < len(a); item++ {
		addrs := shared.elementArgs(item)
		if got := *(*int32)(addrs[0]); got != a[item] {
			t.Errorf("item %d: args[0] = %d, want %d", item, got, a[item])
		}
		if got := *(*int64)(addrs[1]); got != b[item] {
			t.Errorf("item %d: args[1] = %d, want %d", item, got, b[item])
		}
	}
}

func TestWorkerContextID(t *testing.T) {
	wctx := &WorkerContext{id: 3}
	if wctx.ID() != 3 {
		t.Errorf("ID() = %d, want 3", wctx.ID())
	}
}
