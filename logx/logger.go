// Package logx defines the level-tagged logging collaborator the decoder calls
// out to for non-fatal conditions: a pure side-effect sink with no
// control-flow consequences.
package logx

import "fmt"

// Logger receives level-tagged diagnostic messages from the decoder. None of
// its methods return an error or otherwise influence decoding; a Logger is
// purely an observability hook.
type Logger interface {
	Debug(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
}

// NopLogger discards every message. It is the default used when a caller
// does not supply its own Logger.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any)   {}
func (NopLogger) Warning(string, ...any) {}
func (NopLogger) Error(string, ...any)   {}

// PrintLogger writes messages to an io.Writer-like Printf function, useful for
// quick diagnostics (e.g. log.Printf) without pulling in a structured logging
// dependency.
type PrintLogger struct {
	Printf func(format string, args ...any)
}

func (l PrintLogger) Debug(format string, args ...any) {
	l.Printf("DEBUG "+format, args...)
}

func (l PrintLogger) Warning(format string, args ...any) {
	l.Printf("WARN "+format, args...)
}

func (l PrintLogger) Error(format string, args ...any) {
	l.Printf("ERROR "+format, args...)
}

// Sprintf is a small helper used by callers constructing ad-hoc PrintLoggers
// from fmt.Println-style sinks.
func Sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
