package ulog

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoSink is returned by New when Config.Sink is nil; there is no
// meaningful default transport to fall back to.
var ErrNoSink = errors.New("ulog: sink not configured")

// Config describes how to construct an Engine. Every field except
// Sink is optional: a zero value requests the documented default,
// the same zero-value-means-default convention used throughout this
// package's hardware configuration structs.
type Config struct {
	// Sink is the transport frames are written to. Required.
	Sink Sink

	// Level is the maximum severity compiled into the running
	// engine; calls above it never register a metadata record and
	// never reach the queue. Zero selects DefaultLevel, which is
	// LevelInfo in release builds and LevelDebug3 under the
	// ulog_debug build tag. Since LevelError is itself zero, there is
	// no way to request an ERROR-only engine through this field; ask
	// for LevelWarn if ERROR-only filtering matters.
	Level Level

	// MaxStrLen bounds a logged string argument before truncation.
	// Zero selects 16.
	MaxStrLen int

	// Critical guards the ring buffer and the transmitter's
	// dequeue-frame-send handoff. Zero selects a MutexCritical,
	// suitable for hosted builds where call sites are goroutines
	// rather than interrupt handlers.
	Critical Critical

	// Notifier wakes the transmit scheduler. Zero selects a
	// ChanNotifier.
	Notifier Notifier
}

const defaultMaxStrLen = 16

// Engine owns one ring buffer, one Transmitter, and the configuration
// every LogN call checks before it registers a call site. Most
// programs construct a single Engine and install it with SetEngine;
// tests construct extra ones to point at a ulogtest sink without
// disturbing global state.
type Engine struct {
	level     Level
	maxStrLen int
	notifier  Notifier
	q         *queue
	tx        *Transmitter
}

// New constructs an Engine and sends its START control frame via
// cfg.Sink before returning, so the decoder on the other end of the
// link can discard whatever was on the wire before this process
// existed.
func New(cfg Config) (*Engine, error) {
	if cfg.Sink == nil {
		return nil, ErrNoSink
	}
	if cfg.Level == 0 {
		cfg.Level = DefaultLevel
	}
	if cfg.MaxStrLen == 0 {
		cfg.MaxStrLen = defaultMaxStrLen
	}
	if cfg.Critical == nil {
		cfg.Critical = &MutexCritical{}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NewChanNotifier()
	}

	q := newQueue(cfg.Critical)
	tx := newTransmitter(cfg.Critical, q, cfg.Sink, cfg.Notifier)

	e := &Engine{
		level:     cfg.Level,
		maxStrLen: cfg.MaxStrLen,
		notifier:  cfg.Notifier,
		q:         q,
		tx:        tx,
	}

	if err := tx.bootstrap(); err != nil {
		return nil, fmt.Errorf("ulog: bootstrap: %w", err)
	}
	return e, nil
}

// Enabled reports whether level would currently reach the wire. It is
// exposed so a caller can skip expensive argument preparation around
// a log call whose level is compiled out, the same role __ULOG_LEVEL__
// macro guards play in the original.
func (e *Engine) Enabled(level Level) bool {
	return level <= e.level
}

// enqueueCall admits every packet produced by one log call and wakes
// the transmit scheduler exactly once, regardless of how many packets
// the call produced.
func (e *Engine) enqueueCall(packets []packet) {
	for _, p := range packets {
		e.q.push(p)
	}
	e.notifier.Signal()
}

// Flush drains the queue and any pending overrun report. It may
// busy-wait on a slow sink; see Transmitter.flush.
func (e *Engine) Flush() {
	e.tx.flush()
}

// OnSendComplete forwards to the underlying Transmitter; see
// Transmitter.OnSendComplete.
func (e *Engine) OnSendComplete() {
	e.tx.OnSendComplete()
}

// Run drives the transmit scheduler until ctx is done: it blocks on
// the configured Notifier and calls transmitOnce once per wake-up.
// This is the cooperative loop the original's background transmit
// thread and its wait on a condition variable stand in for; a
// bare-metal port instead calls Flush or transmitOnce directly from
// an idle hook or ISR-bell handler and never calls Run at all.
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.notifier.Notify():
			e.tx.transmitOnce()
		}
	}
}

// Close flushes any queued packets and pending overrun report. It
// does not close the underlying Sink; ownership of the Sink's
// lifecycle belongs to whoever constructed it, and this package never
// tears down a caller-supplied port.
func (e *Engine) Close() error {
	e.Flush()
	return nil
}

// defaultEngine is the Engine every LogN call uses. It is nil until
// SetEngine is called, at which
// point every LogN call that isn't already filtered out by level
// starts reaching the wire.
var defaultEngine *Engine

// SetEngine installs e as the engine every LogN call uses. Passing
// nil disables logging entirely: calls return immediately without
// registering a call site, the same effect as never having compiled
// them in. SetEngine is meant to be called once during startup, not
// toggled at runtime from multiple goroutines.
func SetEngine(e *Engine) {
	defaultEngine = e
}

func currentEngine() *Engine {
	return defaultEngine
}
