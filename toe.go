package pac

import (
	"context"
	"sync"
	"time"

	"github.com/petermattis/goid"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// State is the lifecycle state of a Toe.
type State int32

const (
	StateNotStarted State = iota
	StateRunning
	StatePaused
	StateQuitting
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateQuitting:
		return "quitting"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// LaunchMode selects how Launch starts the toe's run loop.
type LaunchMode int

const (
	// LaunchSync runs the loop on the calling goroutine, blocking until
	// the toe stops.
	LaunchSync LaunchMode = iota
	// LaunchAsync starts the loop on a freshly spawned goroutine and
	// returns immediately.
	LaunchAsync
)

const defaultIdlePoll = 10 * time.Millisecond

// Toe is the execution driver: it owns a Context and runs the runnables in
// it, cooperatively, on one goroutine. Arbitrary goroutines may enqueue
// work via AddCallback; only the toe's own goroutine ever pops from the
// queue.
type Toe struct {
	mu   sync.Mutex
	cond *sync.Cond
	ctx  *Context

	pauseme bool
	quitme  bool
	state   State

	name      string
	clock     clockz.Clock
	idlePoll  time.Duration
	done      chan struct{}
	closeOnce sync.Once

	metrics *metricz.Registry
	tracer  *tracez.Tracer
}

// ToeOption configures a Toe at construction.
type ToeOption func(*Toe)

// WithClock installs a clock the idle poll and SleepFor use instead of the
// real one, for deterministic tests.
func WithClock(clock clockz.Clock) ToeOption {
	return func(t *Toe) { t.clock = clock }
}

// WithIdlePoll sets the bound on the empty-queue wait before re-polling for
// quit/pause. Values below 1ms are clamped to 1ms.
func WithIdlePoll(d time.Duration) ToeOption {
	return func(t *Toe) {
		if d < time.Millisecond {
			d = time.Millisecond
		}
		t.idlePoll = d
	}
}

// WithName sets the toe's name, used in its observability signals.
func WithName(name string) ToeOption {
	return func(t *Toe) { t.name = name }
}

// WithContext installs ctx as the toe's context instead of allocating a new
// one.
func WithContext(ctx *Context) ToeOption {
	return func(t *Toe) { t.ctx = ctx }
}

// NewToe constructs a Toe in StateNotStarted. A toe constructed without
// WithContext allocates its own empty Context.
func NewToe(opts ...ToeOption) *Toe {
	registry := metricz.New()
	registry.Gauge(ToeQueueDepth)
	registry.Counter(ToeRunnablesProcessedTotal)

	t := &Toe{
		ctx:      NewContext(),
		clock:    clockz.RealClock,
		idlePoll: defaultIdlePoll,
		done:     make(chan struct{}),
		metrics:  registry,
		tracer:   tracez.New(),
	}
	t.cond = sync.NewCond(&t.mu)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the toe's current lifecycle state.
func (t *Toe) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Launch starts the run loop according to mode. Calling Launch more than
// once returns ErrToeAlreadyRunning.
func (t *Toe) Launch(mode LaunchMode) error {
	t.mu.Lock()
	if t.state != StateNotStarted {
		t.mu.Unlock()
		return ErrToeAlreadyRunning
	}
	t.state = StateRunning
	t.mu.Unlock()

	if mode == LaunchAsync {
		go t.run()
		return nil
	}
	t.run()
	return nil
}

// run is the toe's loop body; it executes on the goroutine that claims
// ownership of the context (the caller of Launch(LaunchSync), or the
// goroutine spawned by Launch(LaunchAsync)).
func (t *Toe) run() {
	t.mu.Lock()
	t.ctx.setOwnerGoroutine(goid.Get())
	t.mu.Unlock()

	capitan.Info(context.Background(), SignalToeLaunched,
		FieldName.Field(t.name), FieldTimestamp.Field(float64(t.clock.Now().Unix())))

	for {
		t.mu.Lock()
		for t.pauseme && !t.quitme {
			t.state = StatePaused
			t.cond.Wait()
		}
		if t.quitme {
			t.mu.Unlock()
			break
		}
		t.state = StateRunning

		entry, ok := t.ctx.popFront()
		t.metrics.Gauge(ToeQueueDepth).Set(float64(t.ctx.count()))
		t.mu.Unlock()

		if !ok {
			t.idle()
			continue
		}

		status := t.runEntry(entry)
		if status == StatusContinuing {
			t.mu.Lock()
			t.ctx.push(entry)
			t.metrics.Gauge(ToeQueueDepth).Set(float64(t.ctx.count()))
			t.mu.Unlock()
		}
	}

	t.mu.Lock()
	t.state = StateStopped
	t.mu.Unlock()
	capitan.Info(context.Background(), SignalToeStopped,
		FieldName.Field(t.name), FieldState.Field(StateStopped.String()))
	close(t.done)
}

// runEntry runs entry outside the toe's mutex, wrapped in a tracing span
// and a processed-count metric.
func (t *Toe) runEntry(entry runnableEntry) Status {
	_, span := t.tracer.StartSpan(context.Background(), ToeRunnableSpan)
	defer span.Finish()
	span.SetTag(TagConnector, t.name)

	status := entry.run()
	t.metrics.Counter(ToeRunnablesProcessedTotal).Inc()
	return status
}

// idle waits, once, for either a wake-up (a push, a pause, or a quit) or
// the configured idle poll bound to elapse, whichever comes first, then
// returns so the caller can recheck the queue and the pause/quit flags.
// This is the idiomatic Go substitute for the original's
// condition_variable.wait_for, since sync.Cond.Wait has no timeout of its
// own: a timer goroutine races the real wake by broadcasting once it fires.
func (t *Toe) idle() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctx.count() != 0 || t.pauseme || t.quitme {
		return
	}

	timedOut := t.clock.After(t.idlePoll)
	stopTimer := make(chan struct{})
	go func() {
		select {
		case <-timedOut:
			t.mu.Lock()
			t.cond.Broadcast()
			t.mu.Unlock()
		case <-stopTimer:
		}
	}()

	t.cond.Wait()
	close(stopTimer)
}

// Pause requests the toe to suspend. If the caller is the toe's own
// goroutine, Pause blocks until Resume (cooperative pause). If called from
// any other goroutine, Pause sets the flag and returns immediately; the
// worker suspends the next time it checks. Pause returns ErrToeNotRunning
// without touching any state if the toe has not been launched, or has
// already stopped.
func (t *Toe) Pause() error {
	t.mu.Lock()
	if t.state == StateNotStarted || t.state == StateStopped {
		t.mu.Unlock()
		return ErrToeNotRunning
	}
	t.pauseme = true
	t.cond.Broadcast()
	onOwnGoroutine := t.ctx.isOwnerGoroutine()
	queueDepth := t.ctx.count()
	t.mu.Unlock()

	capitan.Info(context.Background(), SignalToePaused,
		FieldName.Field(t.name), FieldQueueDepth.Field(queueDepth))

	if !onOwnGoroutine {
		return nil
	}

	t.mu.Lock()
	for t.pauseme && !t.quitme {
		t.cond.Wait()
	}
	t.mu.Unlock()
	return nil
}

// Resume clears the pause flag and wakes the toe's goroutine.
func (t *Toe) Resume() {
	t.mu.Lock()
	t.pauseme = false
	t.cond.Broadcast()
	t.mu.Unlock()
	capitan.Info(context.Background(), SignalToeResumed, FieldName.Field(t.name))
}

// Quit requests the toe's run loop to stop after its current runnable (if
// any) completes, and wakes the worker so a paused or idle worker observes
// the request promptly. The pause flag itself is left as it is.
func (t *Toe) Quit() {
	t.mu.Lock()
	t.quitme = true
	t.state = StateQuitting
	t.cond.Broadcast()
	t.mu.Unlock()
	capitan.Info(context.Background(), SignalToeQuit,
		FieldName.Field(t.name), FieldState.Field(StateQuitting.String()))
}

// Join blocks until the run loop has returned.
func (t *Toe) Join() {
	<-t.done
}

// Close performs Quit followed by Join, satisfying io.Closer. Close is
// idempotent.
func (t *Toe) Close() error {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		started := t.state != StateNotStarted
		t.mu.Unlock()
		if !started {
			close(t.done)
			return
		}
		t.Quit()
		t.Join()
	})
	return nil
}

// SleepFor cooperatively sleeps the toe's own goroutine for d. Called from
// any other goroutine, it is a no-op, matching the original's "sleep_for
// only suspends the toe thread."
func (t *Toe) SleepFor(d time.Duration) {
	if !t.ctx.isOwnerGoroutine() {
		return
	}
	<-t.clock.After(d)
}

// AddCallback enqueues a one-shot runnable binding cb to arg onto t's
// context, and wakes the toe. It is a free function, not a method, because
// Go methods cannot introduce new type parameters beyond the receiver's.
func AddCallback[T, R any](t *Toe, cb Callback[T, R], arg T) {
	r := NewRunnable(cb, arg)
	r.SetOnce()

	t.mu.Lock()
	t.ctx.push(r)
	t.metrics.Gauge(ToeQueueDepth).Set(float64(t.ctx.count()))
	t.cond.Broadcast()
	t.mu.Unlock()
}
