//go:build ulog_debug

package ulog

// DefaultLevel is the engine's threshold when Config.Level is left
// zero-valued. Debug builds (tag ulog_debug) favour maximum detail,
// mirroring the original's NDEBUG-gated default.
const DefaultLevel = LevelDebug3
