package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Field is a single structured logging attribute.
type Field struct {
	Key   string
	Value any
}

// String constructs a string-valued Field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int constructs an int-valued Field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 constructs a uint64-valued Field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 constructs a float64-valued Field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err constructs an error-valued Field under the conventional "error" key.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err}
}

// Logger is the structured logging interface every component in this
// repository logs through, so call sites never depend on zerolog (or
// any other backend) directly.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Debug(msg string, fields ...Field)
	Printf(format string, args ...any)
	Println(args ...any)
}

// ZerologAdapter implements Logger on top of rs/zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an already-configured zerolog.Logger.
func NewZerologAdapter(zl zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: zl}
}

// NewLogger builds a ZerologAdapter writing JSON lines to w, tagged with
// component.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return NewZerologAdapter(zl)
}

// NewDefaultLogger builds a ZerologAdapter writing to stderr.
func NewDefaultLogger() *ZerologAdapter {
	return NewLogger(os.Stderr, "bigpi")
}

func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// Info logs an info-level message with the given structured fields.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(a.logger.Info(), fields).Msg(msg)
}

// Error logs an error-level message, attaching err under the "error" key
// when non-nil.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	e := a.logger.Error()
	if err != nil {
		e = e.Err(err)
	}
	applyFields(e, fields).Msg(msg)
}

// Debug logs a debug-level message with the given structured fields.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Printf logs a formatted info-level message, for call sites migrating
// from *log.Logger.
func (a *ZerologAdapter) Printf(format string, args ...any) {
	a.logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Println logs a space-joined info-level message.
func (a *ZerologAdapter) Println(args ...any) {
	a.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// StdLoggerAdapter implements Logger on top of the standard library's
// *log.Logger, for contexts (tests, CLI fallback) that want plain text
// rather than structured JSON.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps an existing *log.Logger.
func NewStdLoggerAdapter(l *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: l}
}

func formatLine(level, msg string, err error, fields []Field) string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(level)
	sb.WriteString("] ")
	sb.WriteString(msg)
	if err != nil {
		fmt.Fprintf(&sb, " error=%v", err)
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key, f.Value)
	}
	return sb.String()
}

// Info logs an info-level message.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	a.logger.Println(formatLine("INFO", msg, nil, fields))
}

// Error logs an error-level message.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	a.logger.Println(formatLine("ERROR", msg, err, fields))
}

// Debug logs a debug-level message.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	a.logger.Println(formatLine("DEBUG", msg, nil, fields))
}

// Printf logs a formatted message with no level prefix.
func (a *StdLoggerAdapter) Printf(format string, args ...any) {
	a.logger.Printf(format, args...)
}

// Println logs a space-joined message with no level prefix.
func (a *StdLoggerAdapter) Println(args ...any) {
	a.logger.Println(args...)
}
