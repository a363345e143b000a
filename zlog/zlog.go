// Package zlog adapts github.com/rs/zerolog to the grasp.Logger interface,
// so callers who want structured logging don't have to hand-write an
// adapter themselves.
package zlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger, implementing grasp.Logger without the
// core package importing zerolog directly.
type Logger struct {
	logger zerolog.Logger
}

// Option configures a Logger at construction time.
type Option func(*zerolog.Logger)

// WithOutput sets the destination writer; the default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(l *zerolog.Logger) {
		*l = l.Output(w)
	}
}

// WithLevel sets the minimum level that is actually emitted.
func WithLevel(level zerolog.Level) Option {
	return func(l *zerolog.Logger) {
		*l = l.Level(level)
	}
}

// New builds a Logger writing JSON lines with a timestamp field, at info
// level by default, to os.Stdout unless overridden.
func New(opts ...Option) *Logger {
	zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zl = zl.Level(zerolog.InfoLevel)
	for _, opt := range opts {
		opt(&zl)
	}
	return &Logger{logger: zl}
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logger.Info().Msgf(format, args...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}
