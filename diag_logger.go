package ulog

// DiagLogger receives the engine's own operational diagnostics —
// the queue entering drain-mode, a failed sink send — which are
// deliberately kept off the wire protocol itself: the wire carries
// only registered call-site records and their packets, never the
// engine's commentary on its own health.
type DiagLogger interface {
	Warn(msg string)
	Error(msg string)
}

var diagLogger DiagLogger = &nopDiagLogger{}

// SetDiagLogger installs l as the destination for the engine's
// internal diagnostics. Passing nil restores the no-op default. It
// is meant to be called once during startup.
func SetDiagLogger(l DiagLogger) {
	if l == nil {
		diagLogger = &nopDiagLogger{}
		return
	}
	diagLogger = l
}

type nopDiagLogger struct{}

func (*nopDiagLogger) Warn(string)  {}
func (*nopDiagLogger) Error(string) {}
