// Package pac provides a small concurrency-and-eventing runtime for
// Presentation-Abstraction-Control style applications, where many
// independent logical activities exchange messages asynchronously, survive
// re-entrant notification, and route work onto specific goroutines.
//
// # Overview
//
// pac is built around four interacting abstractions:
//
//   - Callback[T, R]: a copyable, type-erased, nullable handle to a function
//     of one packed argument type and one return type.
//   - Signal[T, R]: an ordered publish/subscribe dispatcher. Slots connect in
//     order, emit invokes them in that order, and Connection handles support
//     disconnect, block, unblock, and detach.
//   - Forwarder[T, R, T2, R2]: lets user slots of one signature connect to a
//     Signal of another by composing an input transform, a user slot, and an
//     output transform. A forwarder that keeps the signature (T2 is T, R2 is
//     R) is itself a Source and can be wrapped by another forwarder; one that
//     changes the signature cannot.
//   - Toe: a cooperative execution driver. It owns a Context (a FIFO of
//     Runnables) and a goroutine, and supports launch, pause, resume, quit,
//     and a thread-safe AddCallback for cross-goroutine marshalling.
//
// # Core Concepts
//
// Every component is parameterized by a signature, realized in Go as two
// type parameters: T, the packed argument payload (struct{} for no
// arguments), and R, the return type (struct{} for no return value).
//
//	type Callback[T, R any] struct { fn func(T) R }
//
// A Signal's slots are invoked in connection order on Emit. A Toe drains its
// Context's queue on its own goroutine until paused or quit; ToeCallback
// wraps a user Callback so that calling it from any goroutine enqueues the
// call onto a target Toe instead of running it inline.
//
// # Usage Example
//
//	type clickArgs struct{ X, Y int }
//
//	sig := pac.NewSignal[clickArgs, int]("click")
//	conn := sig.ConnectFunc(func(a clickArgs) int { return a.X + a.Y })
//	defer conn.Close()
//
//	results := sig.Emit(clickArgs{X: 1, Y: 2}) // []int{3}
//
// Cross-goroutine delivery:
//
//	toe := pac.NewToe(pac.WithName("worker"))
//	go toe.Launch(pac.LaunchAsync)
//	defer toe.Close()
//
//	marshalled := pac.NewToeCallback(toe, pac.NewCallback(func(a clickArgs) int {
//	    return a.X * a.Y // runs on toe's goroutine
//	}))
//	sig.Connect(marshalled.AsCallback())
//
// # Observability
//
// Signal and Toe carry structured signals (github.com/zoobzio/capitan),
// counters and gauges (github.com/zoobzio/metricz), and spans
// (github.com/zoobzio/tracez). Signal additionally exposes typed hooks
// (github.com/zoobzio/hookz) for connect/disconnect/emit-error
// notifications, independent of the typed T, R dispatch itself.
//
// # Non-goals
//
// pac is not a GUI toolkit, a distributed messaging system, a persistent
// queue, or a priority scheduler. Runnables run to completion cooperatively;
// there is no work stealing, preemption, or backpressure.
package pac
