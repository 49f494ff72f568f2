package pac

// Status reports the outcome of a Runnable's most recent Run, or the
// INVALID/PENDING states it holds before first running.
type Status int

const (
	// StatusInvalid means the runnable has no callback to run.
	StatusInvalid Status = iota
	// StatusPending means the runnable has been constructed but has not
	// yet run.
	StatusPending
	// StatusRunning is reserved for a runnable currently executing; Run is
	// synchronous in this module, so callers never observe this value
	// from Run's own return, only (potentially) from introspection.
	StatusRunning
	// StatusContinuing means Run completed and the runnable should be
	// re-queued.
	StatusContinuing
	// StatusFinished means Run completed and the runnable (marked once)
	// should not run again.
	StatusFinished
	// StatusAbort means Run's callback panicked and was recovered.
	StatusAbort
	// StatusInterrupted is reserved for a runnable dropped without
	// running, e.g. because its owning Toe quit first.
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusContinuing:
		return "continuing"
	case StatusFinished:
		return "finished"
	case StatusAbort:
		return "abort"
	case StatusInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Runnable binds a Callback to an argument captured by value at
// construction time, so that later mutation of the caller's own variable is
// not observed by Run — true for free given Go's copy-on-assignment value
// semantics, as long as T is not itself a pointer the caller mutates
// through.
type Runnable[T, R any] struct {
	cb     Callback[T, R]
	arg    T
	once   bool
	status Status
}

// NewRunnable constructs a Runnable bound to cb and arg (copied).
func NewRunnable[T, R any](cb Callback[T, R], arg T) *Runnable[T, R] {
	return &Runnable[T, R]{cb: cb, arg: arg, status: StatusPending}
}

// SetOnce marks the runnable so that Run reports StatusFinished after its
// next invocation.
func (r *Runnable[T, R]) SetOnce() {
	r.once = true
}

// Run invokes the stored callback with the captured argument and returns
// the runnable's resulting status. A callback panic is recovered and
// reported as StatusAbort rather than propagated: Run always executes on a
// Toe-owned goroutine, and letting a panic unwind through it would take the
// entire runnable queue down with it, a failure mode nothing in this
// module's design calls for.
func (r *Runnable[T, R]) Run() Status {
	if r.cb.IsEmpty() {
		r.status = StatusInvalid
		return r.status
	}

	var panicErr error
	func() {
		defer recoverFromCallbackPanic("runnable", &panicErr)
		r.cb.Call(r.arg)
	}()
	if panicErr != nil {
		r.status = StatusAbort
		return r.status
	}

	if r.once {
		r.status = StatusFinished
	} else {
		r.status = StatusContinuing
	}
	return r.status
}

// Status returns the runnable's current status, as of its last Run (or
// StatusPending if it has not yet run).
func (r *Runnable[T, R]) Status() Status {
	return r.status
}

// run satisfies runnableEntry, letting a Context queue hold Runnables of
// heterogeneous T, R behind one interface.
func (r *Runnable[T, R]) run() Status {
	return r.Run()
}

// runnableEntry is the type-erased interface a Context's queue holds.
type runnableEntry interface {
	run() Status
}
