//go:build !tinygo

package ulog

import "log"

func init() {
	diagLogger = &stdDiagLogger{}
}

// stdDiagLogger is the default DiagLogger on hosted builds.
type stdDiagLogger struct{}

func (l *stdDiagLogger) Warn(msg string)  { log.Print("[ulog WARN]  " + msg) }
func (l *stdDiagLogger) Error(msg string) { log.Print("[ulog ERROR] " + msg) }
