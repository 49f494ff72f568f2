package pac

import (
	"testing"

	"github.com/petermattis/goid"
)

type fakeEntry struct {
	id     int
	status Status
}

func (f *fakeEntry) run() Status { return f.status }

func TestContext_FIFOOrder(t *testing.T) {
	ctx := NewContext()
	ctx.push(&fakeEntry{id: 1, status: StatusFinished})
	ctx.push(&fakeEntry{id: 2, status: StatusFinished})
	ctx.push(&fakeEntry{id: 3, status: StatusFinished})

	var order []int
	for {
		entry, ok := ctx.popFront()
		if !ok {
			break
		}
		order = append(order, entry.(*fakeEntry).id)
	}

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected FIFO order [1 2 3], got %v", order)
	}
}

func TestContext_CountAndClear(t *testing.T) {
	ctx := NewContext()
	if ctx.count() != 0 {
		t.Fatalf("expected empty context, got count %d", ctx.count())
	}

	ctx.push(&fakeEntry{id: 1, status: StatusFinished})
	ctx.push(&fakeEntry{id: 2, status: StatusFinished})
	if ctx.count() != 2 {
		t.Fatalf("expected count 2, got %d", ctx.count())
	}

	ctx.clear()
	if ctx.count() != 0 {
		t.Fatalf("expected count 0 after clear, got %d", ctx.count())
	}
	if _, ok := ctx.popFront(); ok {
		t.Fatalf("expected popFront to report empty after clear")
	}
}

func TestContext_PopFrontOnEmpty(t *testing.T) {
	ctx := NewContext()
	if entry, ok := ctx.popFront(); ok || entry != nil {
		t.Fatalf("expected (nil, false) from an empty context, got (%v, %v)", entry, ok)
	}
}

func TestContext_OwnerGoroutine(t *testing.T) {
	ctx := NewContext()
	if ctx.isOwnerGoroutine() {
		t.Fatalf("expected no owner claimed yet")
	}

	done := make(chan bool)
	go func() {
		ctx.setOwnerGoroutine(goid.Get())
		done <- ctx.isOwnerGoroutine()
	}()
	if !<-done {
		t.Fatalf("expected the setting goroutine to be recognized as owner")
	}

	if ctx.isOwnerGoroutine() {
		t.Fatalf("expected this test goroutine to not be recognized as owner")
	}
}
