package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZeroLogger implements Logger on top of zerolog.
type ZeroLogger struct {
	zlog *zerolog.Logger
}

// Ensure ZeroLogger implements the interface
var _ Logger = (*ZeroLogger)(nil)

// New creates a ZeroLogger at the given level. If pretty is true the output
// is console-formatted for human readability; otherwise it is JSON.
// Unknown levels fall back to info.
func New(level string, pretty bool) *ZeroLogger {
	var l zerolog.Logger

	if pretty {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		l = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zLevel = zerolog.InfoLevel
	}
	l = l.Level(zLevel)

	return &ZeroLogger{zlog: &l}
}

// Nop returns a logger that discards everything. Used as the default when
// the caller does not supply a logger.
func Nop() *ZeroLogger {
	l := zerolog.Nop()
	return &ZeroLogger{zlog: &l}
}

func (z *ZeroLogger) Debug() LogEvent { return &zerologEvent{event: z.zlog.Debug()} }
func (z *ZeroLogger) Info() LogEvent  { return &zerologEvent{event: z.zlog.Info()} }
func (z *ZeroLogger) Warn() LogEvent  { return &zerologEvent{event: z.zlog.Warn()} }
func (z *ZeroLogger) Error() LogEvent { return &zerologEvent{event: z.zlog.Error()} }

// WithFields returns a child logger with the given fields attached to every event.
func (z *ZeroLogger) WithFields(fields map[string]any) Logger {
	ctx := z.zlog.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	l := ctx.Logger()
	return &ZeroLogger{zlog: &l}
}

// zerologEvent adapts *zerolog.Event to the LogEvent interface.
type zerologEvent struct {
	event *zerolog.Event
}

func (e *zerologEvent) Msg(msg string)                  { e.event.Msg(msg) }
func (e *zerologEvent) Msgf(format string, args ...any) { e.event.Msgf(format, args...) }

func (e *zerologEvent) Err(err error) LogEvent {
	e.event = e.event.Err(err)
	return e
}

func (e *zerologEvent) Str(key, value string) LogEvent {
	e.event = e.event.Str(key, value)
	return e
}

func (e *zerologEvent) Int(key string, value int) LogEvent {
	e.event = e.event.Int(key, value)
	return e
}

func (e *zerologEvent) Dur(key string, d time.Duration) LogEvent {
	e.event = e.event.Dur(key, d)
	return e
}

func (e *zerologEvent) Interface(key string, i any) LogEvent {
	e.event = e.event.Interface(key, i)
	return e
}

func (e *zerologEvent) Bytes(key string, val []byte) LogEvent {
	e.event = e.event.Bytes(key, val)
	return e
}
