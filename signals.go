package pac

import (
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Structured signals emitted via capitan for component lifecycle and
// dispatch events. Signals follow the pattern <component>.<event>.
const (
	// Signal lifecycle and dispatch signals.
	SignalSignalConnected    capitan.Signal = "signal.connected"
	SignalSignalDisconnected capitan.Signal = "signal.disconnected"
	SignalSignalEmitError    capitan.Signal = "signal.emit-error"
	SignalSignalClosed       capitan.Signal = "signal.closed"

	// Connection signals.
	SignalConnectionBlocked   capitan.Signal = "connection.blocked"
	SignalConnectionUnblocked capitan.Signal = "connection.unblocked"

	// Toe lifecycle signals.
	SignalToeLaunched capitan.Signal = "toe.launched"
	SignalToePaused   capitan.Signal = "toe.paused"
	SignalToeResumed  capitan.Signal = "toe.resumed"
	SignalToeQuit     capitan.Signal = "toe.quit"
	SignalToeStopped  capitan.Signal = "toe.stopped"
)

// Common field keys using capitan primitive types.
var (
	FieldName          = capitan.NewStringKey("name")
	FieldError         = capitan.NewStringKey("error")
	FieldTimestamp     = capitan.NewFloat64Key("timestamp")
	FieldListenerCount = capitan.NewIntKey("listener_count")
	FieldDispatchDepth = capitan.NewIntKey("dispatch_depth")
	FieldQueueDepth    = capitan.NewIntKey("queue_depth")
	FieldState         = capitan.NewStringKey("state")
)

// Metric keys for Signal observability.
const (
	SignalEmitsTotal    = metricz.Key("signal.emits.total")
	SignalListenerGauge = metricz.Key("signal.listener_count")
	SignalPanicsTotal   = metricz.Key("signal.panics.total")
)

// Metric keys for Toe observability.
const (
	ToeQueueDepth              = metricz.Key("toe.queue_depth")
	ToeRunnablesProcessedTotal = metricz.Key("toe.runnables_processed.total")
)

// Span names.
const (
	SignalEmitSpan  = tracez.Key("signal.emit")
	ToeRunnableSpan = tracez.Key("toe.runnable")
)

// Span tags.
const (
	TagConnector     = tracez.Tag("pac.connector")
	TagListenerCount = tracez.Tag("pac.listener_count")
	TagDispatchDepth = tracez.Tag("pac.dispatch_depth")
	TagError         = tracez.Tag("pac.error")
)

// SignalEvent is emitted via hookz for hosts that want to observe a
// Signal's own lifecycle (connect/disconnect/panic) without participating
// in its typed T, R dispatch.
type SignalEvent struct {
	Name          string
	Kind          string // "connect", "disconnect", "emit-error"
	ListenerCount int
	Err           error
}

// Hook event keys for SignalEvent.
const (
	SignalHookConnected    = hookz.Key("signal.connected")
	SignalHookDisconnected = hookz.Key("signal.disconnected")
	SignalHookEmitError    = hookz.Key("signal.emit-error")
)
