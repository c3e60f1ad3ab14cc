// Package logger wraps a zap SugaredLogger for the props command.
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Named(name string) Logger

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	Sync() error
}

// New returns a human-readable logger writing to w. Debug messages are
// only emitted when verbose is set.
func New(w io.Writer, verbose bool) Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), level)
	return &wrapper{base: zap.New(core).Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &wrapper{base: zap.NewNop().Sugar()}
}

type wrapper struct {
	base *zap.SugaredLogger
}

func (w *wrapper) Named(name string) Logger {
	return &wrapper{base: w.base.Named(name)}
}

func (w *wrapper) Debugf(format string, args ...any) { w.base.Debugf(format, args...) }
func (w *wrapper) Infof(format string, args ...any)  { w.base.Infof(format, args...) }
func (w *wrapper) Warnf(format string, args ...any)  { w.base.Warnf(format, args...) }
func (w *wrapper) Errorf(format string, args ...any) { w.base.Errorf(format, args...) }

func (w *wrapper) Sync() error { return w.base.Sync() }
