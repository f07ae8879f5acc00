// Package stdlogger adapts the global zerolog logger to printf style logger
// interfaces, such as the writer of the gorm logger.
package stdlogger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to zerolog.
type Logger struct {
	component string
}

// New returns a Logger tagged with component.
func New(component ...string) *Logger {
	l := &Logger{}
	if len(component) > 0 {
		l.component = component[0]
	}

	return l
}

// Printf logs at info level. It satisfies gorm's logger.Writer.
func (l *Logger) Printf(format string, args ...any) {
	l.emit(zerolog.InfoLevel, format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	l.emit(zerolog.DebugLevel, format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.emit(zerolog.InfoLevel, format, args...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, args ...any) {
	l.emit(zerolog.WarnLevel, format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.emit(zerolog.ErrorLevel, format, args...)
}

func (l *Logger) emit(level zerolog.Level, format string, args ...any) {
	ev := log.WithLevel(level)
	if l.component != "" {
		ev = ev.Str("component", l.component)
	}

	// gorm formats multi line messages
	ev.Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
