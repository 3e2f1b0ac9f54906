package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologAdapter implements Logger on a zerolog.Logger. Every entry carries a component
// field next to the caller's fields.
type ZerologAdapter struct {
	zl zerolog.Logger
}

func NewZerolog(w io.Writer, level zerolog.Level) *ZerologAdapter {
	return &ZerologAdapter{
		zl: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// NewConsoleLogger writes human-readable lines to stderr.
func NewConsoleLogger(level zerolog.Level) *ZerologAdapter {
	return NewZerolog(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}, level)
}

// New builds a stderr logger in the requested format.
func New(format Format, level zerolog.Level) *ZerologAdapter {
	if format == FormatJSON {
		return NewZerolog(os.Stderr, level)
	}
	return NewConsoleLogger(level)
}

func NewNop() *ZerologAdapter {
	return &ZerologAdapter{zl: zerolog.Nop()}
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	tag(z.zl.Debug(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	tag(z.zl.Info(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	tag(z.zl.Warn(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	tag(z.zl.Error().Err(err), component, fields).Msg("operation failed")
}

func tag(e *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	e = e.Str("component", component)
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	return e
}
