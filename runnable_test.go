package pac

import "testing"

func TestRunnable_StatusTransitions(t *testing.T) {
	r := NewRunnable(NewCallback(func(x int) int { return x * 2 }), 21)
	if r.Status() != StatusPending {
		t.Fatalf("expected StatusPending before first run, got %v", r.Status())
	}

	if got := r.Run(); got != StatusContinuing {
		t.Fatalf("expected StatusContinuing for a repeatable runnable, got %v", got)
	}
	if r.Status() != StatusContinuing {
		t.Fatalf("expected Status() to report StatusContinuing, got %v", r.Status())
	}
}

func TestRunnable_SetOnceFinishes(t *testing.T) {
	r := NewRunnable(NewCallback(func(int) int { return 0 }), 1)
	r.SetOnce()
	if got := r.Run(); got != StatusFinished {
		t.Fatalf("expected StatusFinished for a once runnable, got %v", got)
	}
}

func TestRunnable_EmptyCallbackIsInvalid(t *testing.T) {
	var r Runnable[int, int]
	if got := r.Run(); got != StatusInvalid {
		t.Fatalf("expected StatusInvalid for an empty callback, got %v", got)
	}
}

func TestRunnable_PanicBecomesAbort(t *testing.T) {
	r := NewRunnable(NewCallback(func(int) int { panic("boom") }), 1)
	if got := r.Run(); got != StatusAbort {
		t.Fatalf("expected StatusAbort after a panicking callback, got %v", got)
	}
}

func TestRunnable_ArgCapturedByValue(t *testing.T) {
	type payload struct{ n int }
	arg := payload{n: 1}

	var observed int
	r := NewRunnable(NewCallback(func(p payload) int { observed = p.n; return p.n }), arg)

	arg.n = 999
	r.Run()

	if observed != 1 {
		t.Fatalf("expected the runnable to observe the argument as captured at construction (1), got %d", observed)
	}
}

func TestRunnable_SatisfiesRunnableEntry(t *testing.T) {
	r := NewRunnable(NewCallback(func(int) int { return 0 }), 1)
	var entry runnableEntry = r
	if got := entry.run(); got != StatusContinuing {
		t.Fatalf("expected StatusContinuing via runnableEntry, got %v", got)
	}
}
