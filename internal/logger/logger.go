package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used across the module. Packages take the
// interface so tests can pass NewNop().
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)

	Infof(template string, args ...any)
	Errorf(template string, args ...any)

	With(fields ...zap.Field) Logger
	Sync() error
}

type loggerImpl struct {
	base    *zap.Logger
	sugared *zap.SugaredLogger
}

// New builds a zap-backed logger. pretty selects the colored development
// encoder, otherwise JSON production output is used.
func New(level string, pretty bool) (Logger, error) {
	var cfg zap.Config
	if pretty {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	if lvl := parseLevel(level); lvl != nil {
		cfg.Level = zap.NewAtomicLevelAt(*lvl)
	}

	base, err := cfg.Build(zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		return nil, err
	}
	return Wrap(base), nil
}

// Wrap adapts an existing zap logger.
func Wrap(base *zap.Logger) Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return &loggerImpl{base: base, sugared: base.Sugar()}
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return Wrap(zap.NewNop())
}

func parseLevel(lvl string) *zapcore.Level {
	var l zapcore.Level
	switch lvl {
	case "debug":
		l = zapcore.DebugLevel
	case "info":
		l = zapcore.InfoLevel
	case "warn":
		l = zapcore.WarnLevel
	case "error":
		l = zapcore.ErrorLevel
	default:
		return nil
	}
	return &l
}

func (l *loggerImpl) Debug(msg string, fields ...zap.Field) { l.base.Debug(msg, fields...) }
func (l *loggerImpl) Info(msg string, fields ...zap.Field)  { l.base.Info(msg, fields...) }
func (l *loggerImpl) Warn(msg string, fields ...zap.Field)  { l.base.Warn(msg, fields...) }
func (l *loggerImpl) Error(msg string, fields ...zap.Field) { l.base.Error(msg, fields...) }

func (l *loggerImpl) Infof(t string, args ...any)  { l.sugared.Infof(t, args...) }
func (l *loggerImpl) Errorf(t string, args ...any) { l.sugared.Errorf(t, args...) }

func (l *loggerImpl) With(fields ...zap.Field) Logger {
	return Wrap(l.base.With(fields...))
}

func (l *loggerImpl) Sync() error { return l.base.Sync() }

// Field constructors re-exported from zap so callers do not import it directly.
func String(key, val string) zap.Field                 { return zap.String(key, val) }
func Int(key string, val int) zap.Field                { return zap.Int(key, val) }
func Bool(key string, val bool) zap.Field              { return zap.Bool(key, val) }
func Duration(key string, val time.Duration) zap.Field { return zap.Duration(key, val) }
func Error(err error) zap.Field                        { return zap.Error(err) }
