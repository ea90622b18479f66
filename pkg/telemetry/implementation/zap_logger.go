package implementation

import (
	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
	"go.uber.org/zap"
)

type zapLogger struct {
	l *zap.Logger
}

func NewZapLogger(development bool) (telemetry.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if development {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return &zapLogger{l: l}, nil
}

// NewNopLogger returns a logger that discards everything. Handy in tests.
func NewNopLogger() telemetry.Logger {
	return &zapLogger{l: zap.NewNop()}
}

func toZap(fields []telemetry.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

func (z *zapLogger) Debug(msg string, fields ...telemetry.Field) {
	z.l.Debug(msg, toZap(fields)...)
}

func (z *zapLogger) Info(msg string, fields ...telemetry.Field) {
	z.l.Info(msg, toZap(fields)...)
}

func (z *zapLogger) Warn(msg string, fields ...telemetry.Field) {
	z.l.Warn(msg, toZap(fields)...)
}

func (z *zapLogger) Error(msg string, fields ...telemetry.Field) {
	z.l.Error(msg, toZap(fields)...)
}

func (z *zapLogger) Fatal(msg string, fields ...telemetry.Field) {
	z.l.Fatal(msg, toZap(fields)...)
}

func (z *zapLogger) With(fields ...telemetry.Field) telemetry.Logger {
	return &zapLogger{l: z.l.With(toZap(fields)...)}
}

func (z *zapLogger) sync() {
	_ = z.l.Sync()
}
