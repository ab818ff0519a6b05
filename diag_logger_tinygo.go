//go:build tinygo

package ulog

import "machine"

func init() {
	diagLogger = &serialDiagLogger{}
}

// serialDiagLogger is the default DiagLogger under TinyGo, writing
// directly to machine.Serial to avoid pulling in the fmt/log stack on
// a target this package exists to be small on.
type serialDiagLogger struct{}

func (l *serialDiagLogger) write(level, msg string) {
	machine.Serial.Write([]byte(level))
	machine.Serial.Write([]byte(msg))
	machine.Serial.Write([]byte("\r\n"))
}

func (l *serialDiagLogger) Warn(msg string)  { l.write("[ulog WARN]  ", msg) }
func (l *serialDiagLogger) Error(msg string) { l.write("[ulog ERROR] ", msg) }
