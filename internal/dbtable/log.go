package dbtable

import (
	"fmt"
	"log"
	"log/slog"
	"os"
)

// diagLogger is an advisory diagnostics side channel: human-readable
// messages that are never part of the contract a returned error
// already carries. The default sink is the stdlib log package writing
// to stderr; a host may instead install a structured *slog.Logger via
// Engine.WithLogger for log correlation against a Transaction's
// TraceID.
type diagLogger struct {
	std *log.Logger
	slg *slog.Logger
}

func newDiagLogger() *diagLogger {
	return &diagLogger{std: log.New(os.Stderr, "", log.LstdFlags)}
}

func (d *diagLogger) Printf(format string, args ...any) {
	if d.slg != nil {
		d.slg.Info(fmt.Sprintf(format, args...))
		return
	}
	d.std.Printf(format, args...)
}
