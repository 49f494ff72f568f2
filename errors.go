package pac

import "errors"

// Sentinel errors returned by Toe and Signal lifecycle operations. Both
// components otherwise follow the invariant that connect/disconnect/emit
// never fail; these sentinels cover misuse of the lifecycle operations that
// do have a meaningful failure mode (launching twice, connecting to a
// signal that has already been closed).
var (
	// ErrToeAlreadyRunning is returned by Launch when the toe is not in
	// StateNotStarted.
	ErrToeAlreadyRunning = errors.New("pac: toe already running")

	// ErrToeNotRunning is returned by operations that require a running
	// worker goroutine.
	ErrToeNotRunning = errors.New("pac: toe not running")

	// ErrSignalClosed is returned by ConnectErr once the signal has been
	// closed.
	ErrSignalClosed = errors.New("pac: signal closed")
)
