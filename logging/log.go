// Package logging provides the process-wide zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// log backs the package-level helpers and skips their frame when reporting
// the caller; holder is handed to components that log directly.
var log *zap.SugaredLogger
var holder *zap.SugaredLogger

// Options controls logger construction
type Options struct {
	Debug bool
	// File, when set, receives a JSON copy of every entry with size-based rotation
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init initializes the package-level logger
func Init(opts Options) error {
	var cfg zap.Config
	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	if opts.File != "" {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(newRotator(opts)),
			cfg.Level,
		)
		zapLogger = zapLogger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	setLoggers(zapLogger)
	return nil
}

func setLoggers(base *zap.Logger) {
	holder = base.Sugar()
	log = base.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func newRotator(opts Options) *lumberjack.Logger {
	r := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	if r.MaxSize <= 0 {
		r.MaxSize = 10
	}
	if r.MaxBackups <= 0 {
		r.MaxBackups = 5
	}
	if r.MaxAge <= 0 {
		r.MaxAge = 28
	}
	return r
}

func ensure() {
	if log == nil {
		// Fallback logger if not initialized
		base, _ := zap.NewProduction()
		setLoggers(base)
	}
}

// Logger returns the sugared logger for components that keep their own reference
func Logger() *zap.SugaredLogger {
	ensure()
	return holder
}

// Sync flushes any buffered log entries
func Sync() {
	if holder != nil {
		_ = holder.Sync()
	}
}

func Infow(msg string, keysAndValues ...interface{}) {
	ensure()
	log.Infow(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	ensure()
	log.Warnw(msg, keysAndValues...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	ensure()
	log.Errorw(msg, keysAndValues...)
}
