package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nikmy/datamaps/pkg/environment"
	"github.com/nikmy/datamaps/pkg/errors"
)

type Logger interface {
	With(label string) Logger

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Panicf(format string, args ...any)

	Debug(err error)
	Info(err error)
	Warn(err error)
	Error(err error)
	Panic(err error)
}

func New(env environment.Env) (Logger, error) {
	var logger *zap.Logger
	var err error

	switch env {
	case environment.Production:
		logger, err = zap.NewProduction()
	default:
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, errors.WrapFail(err, "init logger")
	}

	return &wrapper{base: logger.Sugar()}, nil
}

type wrapper struct {
	base *zap.SugaredLogger
}

func (w *wrapper) With(label string) Logger {
	return &wrapper{w.base.Named(label)}
}

func (w *wrapper) enabled(lvl zapcore.Level) bool {
	return w.base.Desugar().Core().Enabled(lvl)
}

func (w *wrapper) logErr(lvl zapcore.Level, err error) {
	if err == nil || !w.enabled(lvl) {
		return
	}

	switch lvl {
	case zap.DebugLevel:
		w.base.Debugf("%s", err)
	case zap.InfoLevel:
		w.base.Infof("%s", err)
	case zap.WarnLevel:
		w.base.Warnf("%s", err)
	case zap.ErrorLevel:
		w.base.Errorf("%s", err)
	default:
		_ = w.base.Sync()
		w.base.Panicf("%s", err)
	}
}

func (w *wrapper) Debug(err error) { w.logErr(zap.DebugLevel, err) }
func (w *wrapper) Info(err error)  { w.logErr(zap.InfoLevel, err) }
func (w *wrapper) Warn(err error)  { w.logErr(zap.WarnLevel, err) }
func (w *wrapper) Error(err error) { w.logErr(zap.ErrorLevel, err) }
func (w *wrapper) Panic(err error) { w.logErr(zap.PanicLevel, err) }

func (w *wrapper) Debugf(format string, args ...any) {
	if w.enabled(zap.DebugLevel) {
		w.base.Debugf(format, args...)
	}
}

func (w *wrapper) Infof(format string, args ...any) {
	if w.enabled(zap.InfoLevel) {
		w.base.Infof(format, args...)
	}
}

func (w *wrapper) Warnf(format string, args ...any) {
	if w.enabled(zap.WarnLevel) {
		w.base.Warnf(format, args...)
	}
}

func (w *wrapper) Errorf(format string, args ...any) {
	if w.enabled(zap.ErrorLevel) {
		w.base.Errorf(format, args...)
	}
}

func (w *wrapper) Panicf(format string, args ...any) {
	_ = w.base.Sync()
	w.base.Panicf(format, args...)
}
