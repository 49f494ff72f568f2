package pac

import (
	"testing"
	"time"
)

func TestToeCallback_AsCallbackReturnsZeroImmediately(t *testing.T) {
	toe := NewToe(WithName("tc-zero"))
	go toe.Launch(LaunchAsync) //nolint:errcheck
	defer toe.Close()

	done := make(chan struct{})
	tc := NewToeCallback(toe, NewCallback(func(int) int {
		close(done)
		return 99
	}))

	if got := tc.AsCallback().Call(1); got != 0 {
		t.Fatalf("expected AsCallback's immediate return to be the zero value, got %d", got)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the wrapped callback to run on the toe")
	}
}

func TestToeCallback_ConnectsToSignal(t *testing.T) {
	toe := NewToe(WithName("tc-signal"))
	go toe.Launch(LaunchAsync) //nolint:errcheck
	defer toe.Close()

	sig := NewSignal[int, int]("tc-sig")

	received := make(chan int, 1)
	tc := NewToeCallback(toe, NewCallback(func(x int) int {
		received <- x
		return x
	}))
	sig.Connect(tc.AsCallback())

	sig.Emit(7)

	select {
	case got := <-received:
		if got != 7 {
			t.Fatalf("expected 7, got %d", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the marshalled slot to run")
	}
}
