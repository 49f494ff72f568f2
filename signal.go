package pac

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Signal is an ordered multi-subscriber dispatcher typed by one argument
// payload T and one return type R. Slots connect in order; Emit invokes
// them in that same order, skipping blocked slots, and aggregates non-void
// results in visitation order.
//
// A Signal is safe to read concurrently with Emit but, like the original,
// is not designed for concurrent connect/disconnect/emit from multiple
// goroutines at once: all three are expected to happen on a single
// goroutine. Cross-goroutine delivery goes through a ToeCallback.
type Signal[T, R any] struct {
	mu            sync.Mutex
	order         []uint64
	slots         map[uint64]*slot[T, R]
	nextID        uint64
	dispatchDepth int
	closed        bool
	closeOnce     sync.Once

	name    string
	hooks   *hookz.Hooks[SignalEvent]
	metrics *metricz.Registry
	tracer  *tracez.Tracer
}

// SignalOption configures a Signal at construction.
type SignalOption[T, R any] func(*Signal[T, R])

// WithSignalMetrics installs a shared metrics registry instead of the
// signal's own private one.
func WithSignalMetrics[T, R any](registry *metricz.Registry) SignalOption[T, R] {
	return func(s *Signal[T, R]) { s.metrics = registry }
}

// WithSignalTracer installs a shared tracer instead of the signal's own
// private one.
func WithSignalTracer[T, R any](tracer *tracez.Tracer) SignalOption[T, R] {
	return func(s *Signal[T, R]) { s.tracer = tracer }
}

// NewSignal creates an empty Signal identified by name, which appears in
// its observability signals, metrics, and spans.
func NewSignal[T, R any](name string, opts ...SignalOption[T, R]) *Signal[T, R] {
	registry := metricz.New()
	registry.Counter(SignalEmitsTotal)
	registry.Counter(SignalPanicsTotal)
	registry.Gauge(SignalListenerGauge)

	s := &Signal[T, R]{
		slots:   make(map[uint64]*slot[T, R]),
		name:    name,
		hooks:   hookz.New[SignalEvent](),
		metrics: registry,
		tracer:  tracez.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect installs cb as a new slot at the tail of the connection order and
// returns a Connection referring to it.
func (s *Signal[T, R]) Connect(cb Callback[T, R]) *Connection[T, R] {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	sl := newSlot(id, cb)
	s.slots[id] = sl
	s.order = append(s.order, id)
	listenerCount := len(s.order)
	s.mu.Unlock()

	s.metrics.Gauge(SignalListenerGauge).Set(float64(listenerCount))
	capitan.Info(context.Background(), SignalSignalConnected, FieldName.Field(s.name), FieldListenerCount.Field(listenerCount))
	if s.hooks.ListenerCount(SignalHookConnected) > 0 {
		_ = s.hooks.Emit(context.Background(), SignalHookConnected, SignalEvent{ //nolint:errcheck
			Name: s.name, Kind: "connect", ListenerCount: listenerCount,
		})
	}

	return &Connection[T, R]{signal: s, slotID: id}
}

// ConnectFunc is sugar for Connect(NewCallback(fn)).
func (s *Signal[T, R]) ConnectFunc(fn func(T) R) *Connection[T, R] {
	return s.Connect(NewCallback(fn))
}

// ConnectErr is Connect for callers that want to be told a signal has
// already been closed. The plain Connect does not check the closed flag: on
// a closed signal it installs the slot as usual. It stays error-free because
// it also satisfies Source, and a Forwarder composing over Source has
// nowhere to surface an error.
func (s *Signal[T, R]) ConnectErr(cb Callback[T, R]) (*Connection[T, R], error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrSignalClosed
	}
	return s.Connect(cb), nil
}

// ConnectMethod is sugar for s.Connect(NewMethodCallback(owner, method)). It
// is a free function, not a method, because Go methods cannot introduce a
// new type parameter (Owner) beyond the receiver's own.
func ConnectMethod[Owner, T, R any](s *Signal[T, R], owner Owner, method func(Owner, T) R) *Connection[T, R] {
	return s.Connect(NewMethodCallback(owner, method))
}

// disconnect removes the slot identified by id. If a dispatch is currently
// in progress on this signal, removal is deferred via deleteRequested and
// swept once dispatchDepth returns to zero; otherwise the slot is removed
// immediately. Absent ids are a silent no-op, matching the never-fails
// contract shared by connect/disconnect/emit.
func (s *Signal[T, R]) disconnect(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[id]
	if !ok {
		return
	}

	if s.dispatchDepth > 0 {
		sl.deleteRequested.Store(true)
		return
	}
	s.removeLocked(id)
}

// removeLocked erases id from both the order slice and the slot map. Must
// be called with s.mu held.
func (s *Signal[T, R]) removeLocked(id uint64) {
	delete(s.slots, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// sweep erases every slot with deleteRequested set. Must be called with
// s.mu held and dispatchDepth == 0.
func (s *Signal[T, R]) sweep() {
	for _, id := range s.order {
		if sl, ok := s.slots[id]; ok && sl.deleteRequested.Load() {
			delete(s.slots, id)
		}
	}
	if len(s.slots) == len(s.order) {
		return
	}
	kept := s.order[:0:0]
	for _, id := range s.order {
		if _, ok := s.slots[id]; ok {
			kept = append(kept, id)
		}
	}
	s.order = kept
}

// Emit invokes every connected, non-blocked slot with arg in connection
// order and returns their results in that same order. Connections made
// during this call are never visited by it; slots disconnected during this
// call either complete (if already in flight) or are skipped on a later
// visit within the same Emit, and are hard-removed once the outermost Emit
// on this signal returns.
func (s *Signal[T, R]) Emit(arg T) []R {
	return s.EmitCtx(context.Background(), arg)
}

// EmitCtx is Emit with an explicit context, used to parent the emit span.
func (s *Signal[T, R]) EmitCtx(ctx context.Context, arg T) []R {
	ctx, span := s.tracer.StartSpan(ctx, SignalEmitSpan)
	defer span.Finish()
	span.SetTag(TagConnector, s.name)

	s.mu.Lock()
	s.dispatchDepth++
	depth := s.dispatchDepth
	// Cap the snapshot's capacity at its current length so a concurrent
	// append to the live order slice (from a re-entrant Connect) always
	// reallocates instead of mutating memory this snapshot can see.
	snapshot := s.order[:len(s.order):len(s.order)]
	s.mu.Unlock()

	span.SetTag(TagDispatchDepth, fmt.Sprintf("%d", depth))

	defer func() {
		s.mu.Lock()
		s.dispatchDepth--
		if s.dispatchDepth == 0 {
			s.sweep()
		}
		s.mu.Unlock()
	}()

	var results []R
	var zeroR R
	_, isVoid := any(zeroR).(struct{})
	resultsAreMeaningful := !isVoid

	var panicked int
	for _, id := range snapshot {
		s.mu.Lock()
		sl, ok := s.slots[id]
		s.mu.Unlock()
		if !ok || sl.deleteRequested.Load() || sl.blocked.Load() {
			continue
		}

		result, callErr := s.callSlot(sl, arg)
		if callErr != nil {
			panicked++
			span.SetTag(TagError, callErr.Error())
			s.metrics.Counter(SignalPanicsTotal).Inc()
			capitan.Warn(ctx, SignalSignalEmitError,
				FieldName.Field(s.name), FieldError.Field(callErr.Error()), FieldDispatchDepth.Field(depth))
			if s.hooks.ListenerCount(SignalHookEmitError) > 0 {
				_ = s.hooks.Emit(ctx, SignalHookEmitError, SignalEvent{ //nolint:errcheck
					Name: s.name, Kind: "emit-error", Err: callErr,
				})
			}
			continue
		}
		if resultsAreMeaningful {
			results = append(results, result)
		}
	}

	s.metrics.Counter(SignalEmitsTotal).Inc()
	span.SetTag(TagListenerCount, fmt.Sprintf("%d", len(snapshot)))
	return results
}

// callSlot invokes sl's callback, recovering a panic into an error instead
// of letting it unwind through Emit.
func (s *Signal[T, R]) callSlot(sl *slot[T, R], arg T) (result R, err error) {
	defer recoverFromCallbackPanic(s.name, &err)
	result = sl.cb.Call(arg)
	return result, nil
}

// ListenerCount returns the number of currently connected slots, including
// any pending deletion in a dispatch that has not yet swept.
func (s *Signal[T, R]) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Close disconnects every slot currently connected and marks the signal
// closed, so a later ConnectErr reports ErrSignalClosed. Close is
// idempotent.
func (s *Signal[T, R]) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		ids := append([]uint64(nil), s.order...)
		s.closed = true
		s.mu.Unlock()

		for _, id := range ids {
			s.disconnect(id)
		}
		_ = s.hooks.Close() //nolint:errcheck
		capitan.Info(context.Background(), SignalSignalClosed, FieldName.Field(s.name))
	})
	return nil
}
