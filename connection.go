package pac

import (
	"context"
	"sync/atomic"

	"github.com/zoobzio/capitan"
)

// Connection is the handle returned by Signal.Connect. It supports
// disconnecting, temporarily blocking, and detaching a subscription.
//
// Go has no deterministic destructor, so the original's "drop disconnects
// unless detached" is realized as an explicit Close (or Disconnect) call
// the caller is expected to defer, rather than an implicit action on the
// value going out of scope. Detach changes what that explicit Close does.
type Connection[T, R any] struct {
	signal   *Signal[T, R]
	slotID   uint64
	detached atomic.Bool
	done     atomic.Bool
}

// Disconnect removes the underlying slot from its signal. It is idempotent;
// calling it again, or after Detach, is a no-op that returns nil.
func (c *Connection[T, R]) Disconnect() error {
	if c.detached.Load() {
		return nil
	}
	if !c.done.CompareAndSwap(false, true) {
		return nil
	}
	c.signal.disconnect(c.slotID)
	capitan.Info(context.Background(), SignalSignalDisconnected, FieldName.Field(c.signal.name))
	if c.signal.hooks.ListenerCount(SignalHookDisconnected) > 0 {
		_ = c.signal.hooks.Emit(context.Background(), SignalHookDisconnected, SignalEvent{ //nolint:errcheck
			Name: c.signal.name, Kind: "disconnect",
		})
	}
	return nil
}

// Close is an alias for Disconnect, satisfying io.Closer so callers can
// write defer conn.Close() as the idiomatic substitute for the original's
// RAII auto-disconnect.
func (c *Connection[T, R]) Close() error {
	return c.Disconnect()
}

// Block marks the underlying slot so it is skipped by future Emit calls,
// without removing it.
func (c *Connection[T, R]) Block() {
	c.signal.mu.Lock()
	sl, ok := c.signal.slots[c.slotID]
	c.signal.mu.Unlock()
	if !ok {
		return
	}
	sl.blocked.Store(true)
	capitan.Info(context.Background(), SignalConnectionBlocked, FieldName.Field(c.signal.name))
}

// Unblock clears a previously set Block.
func (c *Connection[T, R]) Unblock() {
	c.signal.mu.Lock()
	sl, ok := c.signal.slots[c.slotID]
	c.signal.mu.Unlock()
	if !ok {
		return
	}
	sl.blocked.Store(false)
	capitan.Info(context.Background(), SignalConnectionUnblocked, FieldName.Field(c.signal.name))
}

// Detach marks the connection so that a later Close/Disconnect call does
// nothing. Unlike the original, this never happens implicitly — Go gives
// Connection no drop hook to attach it to.
func (c *Connection[T, R]) Detach() {
	c.detached.Store(true)
}

// ScopedBlock blocks conn and returns a function that unblocks it. The
// idiomatic use is defer pac.ScopedBlock(conn)(), guaranteeing Unblock runs
// on every exit path including a panic, the same guarantee defer gives the
// signal's own dispatch-depth bookkeeping.
func ScopedBlock[T, R any](conn *Connection[T, R]) func() {
	conn.Block()
	return conn.Unblock
}
