package pac

// ToeCallback wraps a target Toe and a user Callback so that calling the
// result from any goroutine enqueues the call onto the toe's context
// instead of running it inline. This is the mechanism by which a slot that
// must run on a specific goroutine is connected to a Signal emitted
// elsewhere: wrap the user callback in a ToeCallback bound to the target
// toe, then connect ToeCallback.AsCallback() instead of the raw callback.
type ToeCallback[T, R any] struct {
	toe *Toe
	cb  Callback[T, R]
}

// NewToeCallback binds cb to toe.
func NewToeCallback[T, R any](toe *Toe, cb Callback[T, R]) *ToeCallback[T, R] {
	return &ToeCallback[T, R]{toe: toe, cb: cb}
}

// AsCallback returns a Callback[T, R] whose Call enqueues the wrapped
// callback onto the target toe and returns R's zero value immediately; the
// wrapped callback's actual return value is discarded, since its real
// invocation is deferred to the toe's own goroutine.
func (tc *ToeCallback[T, R]) AsCallback() Callback[T, R] {
	return NewCallback(func(arg T) R {
		AddCallback(tc.toe, tc.cb, arg)
		var zero R
		return zero
	})
}
