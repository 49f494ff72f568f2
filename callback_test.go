package pac

import "testing"

func TestCallback(t *testing.T) {
	t.Run("empty callback returns zero value", func(t *testing.T) {
		var c Callback[int, int]
		if !c.IsEmpty() {
			t.Fatalf("zero value Callback should be empty")
		}
		if got := c.Call(5); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("NewCallback wraps a function", func(t *testing.T) {
		c := NewCallback(func(x int) int { return x * 2 })
		if c.IsEmpty() {
			t.Fatalf("wrapped callback should not be empty")
		}
		if got := c.Call(5); got != 10 {
			t.Errorf("expected 10, got %d", got)
		}
	})

	t.Run("NewCallback with nil function is empty", func(t *testing.T) {
		var fn func(int) int
		c := NewCallback(fn)
		if !c.IsEmpty() {
			t.Fatalf("callback wrapping a nil func should be empty")
		}
	})

	t.Run("copies share the underlying callable", func(t *testing.T) {
		calls := 0
		c := NewCallback(func(int) int { calls++; return calls })
		copied := c
		copied.Call(0)
		c.Call(0)
		if calls != 2 {
			t.Errorf("expected 2 calls total, got %d", calls)
		}
	})

	t.Run("NewCallbackFunc0 wraps a zero-argument function", func(t *testing.T) {
		c := NewCallbackFunc0(func() string { return "hi" })
		if got := c.Call(struct{}{}); got != "hi" {
			t.Errorf("expected hi, got %s", got)
		}
	})

	t.Run("NewMethodCallback binds a value owner", func(t *testing.T) {
		type counter struct{ n int }
		owner := counter{n: 41}
		c := NewMethodCallback(owner, func(o counter, delta int) int { return o.n + delta })
		if got := c.Call(1); got != 42 {
			t.Errorf("expected 42, got %d", got)
		}
	})

	t.Run("NewMethodCallback binds a pointer owner, observes mutation", func(t *testing.T) {
		type counter struct{ n int }
		owner := &counter{n: 1}
		c := NewMethodCallback(owner, func(o *counter, delta int) int {
			o.n += delta
			return o.n
		})
		c.Call(1)
		if got := c.Call(1); got != 3 {
			t.Errorf("expected 3, got %d", got)
		}
	})
}
