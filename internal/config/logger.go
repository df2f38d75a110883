package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const appName = "vibary"

// ConsoleLogger returns the logger of the command line tools: info and
// warnings go to stdout, errors to stderr.
func (c LoggingConfig) ConsoleLogger() (*zap.Logger, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	lowPriority, err := lowLevels(c.Level)
	if err != nil {
		return nil, err
	}
	if lowPriority == nil {
		return zap.NewNop(), nil
	}
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stdout), lowPriority),
		zapcore.NewCore(consoleEnc{zapcore.NewConsoleEncoder(ec)}, zapcore.Lock(os.Stderr), highPriority),
	)
	return zap.New(core).Named(appName), nil
}

// FileLogger returns a logger writing to path. The interactive journey uses
// it because it owns the terminal. The returned close function flushes and
// closes the file.
func (c LoggingConfig) FileLogger(path string) (*zap.Logger, func() error, error) {
	var level zapcore.Level
	switch c.Level {
	case "none":
		return zap.NewNop(), func() error { return nil }, nil
	case "normal":
		level = zapcore.InfoLevel
	case "debug":
		level = zapcore.DebugLevel
	default:
		return nil, nil, fmt.Errorf("unknown log level %q", c.Level)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("unable to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to access file log destination (%s): %w", path, err)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), zap.NewAtomicLevelAt(level))
	log := zap.New(core, zap.AddCaller()).Named(appName)
	closeFn := func() error {
		_ = log.Sync()
		return f.Close()
	}
	return log, closeFn, nil
}

func lowLevels(level string) (zapcore.LevelEnabler, error) {
	switch level {
	case "none":
		return nil, nil
	case "normal":
		return zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return zapcore.InfoLevel <= lvl && lvl < zapcore.ErrorLevel
		}), nil
	case "debug":
		return zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return zapcore.DebugLevel <= lvl && lvl < zapcore.ErrorLevel
		}), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
}

// consoleEnc prints only the top message of errors on the console.
type consoleEnc struct {
	zapcore.Encoder
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
