package pac

import "sync/atomic"

// slot wraps one connected Callback with per-subscription state. It is
// owned exclusively by the Signal that created it; equality is by id, which
// is stable for the life of the signal and never reused.
type slot[T, R any] struct {
	id              uint64
	cb              Callback[T, R]
	blocked         atomic.Bool
	deleteRequested atomic.Bool
}

func newSlot[T, R any](id uint64, cb Callback[T, R]) *slot[T, R] {
	return &slot[T, R]{id: id, cb: cb}
}
