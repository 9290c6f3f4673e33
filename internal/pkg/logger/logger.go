package logger

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var global atomic.Pointer[zap.SugaredLogger]

func init() {
	global.Store(zap.NewNop().Sugar())
}

// Init builds the process logger. Unknown levels fall back to info, unknown
// formats to json.
func Init(cfg Config) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.TimeKey = "ts"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("zap build: %w", err)
	}

	SetLogger(l)
	return nil
}

func SetLogger(l *zap.Logger) {
	global.Store(l.Sugar())
}

func Sync() {
	_ = global.Load().Sync()
}

type fieldsKey struct{}

// WithFields returns a context whose log lines carry the given key-value pairs.
func WithFields(ctx context.Context, keysAndValues ...interface{}) context.Context {
	prev, _ := ctx.Value(fieldsKey{}).([]interface{})
	fields := make([]interface{}, 0, len(prev)+len(keysAndValues))
	fields = append(fields, prev...)
	fields = append(fields, keysAndValues...)
	return context.WithValue(ctx, fieldsKey{}, fields)
}

func fromContext(ctx context.Context) *zap.SugaredLogger {
	l := global.Load()
	if ctx == nil {
		return l
	}
	if fields, ok := ctx.Value(fieldsKey{}).([]interface{}); ok && len(fields) > 0 {
		return l.With(fields...)
	}
	return l
}

func Debug(ctx context.Context, msg string) {
	fromContext(ctx).Debug(msg)
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Debugf(format, args...)
}

func Info(ctx context.Context, msg string) {
	fromContext(ctx).Info(msg)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Infof(format, args...)
}

func Warn(ctx context.Context, msg string) {
	fromContext(ctx).Warn(msg)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Warnf(format, args...)
}

func Error(ctx context.Context, msg string) {
	fromContext(ctx).Error(msg)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Errorf(format, args...)
}

// Fatal logs err and exits the process.
func Fatal(ctx context.Context, err error) {
	fromContext(ctx).Fatal(err)
}
