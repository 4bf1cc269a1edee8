// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger adapts a *zap.Logger to the Logger interface, matching the
// teacher's direct go.uber.org/zap import in log/nolog.go.
type zapLogger struct {
	l *zap.Logger
}

// NewZap returns a production Logger backed by zap, at the given minimum
// level ("debug", "info", "warn", "error"; unrecognized values fall back to
// "info", matching the --minloglevel CLI flag in SPEC_FULL.md §6).
func NewZap(level string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	l, err := cfg.Build()
	if err != nil {
		// Fall back to zap's example logger rather than fail process
		// bootstrap over a logging misconfiguration.
		l = zap.NewExample()
	}
	return &zapLogger{l: l}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func toFields(kv []any) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, kv[i+1]))
	}
	return fields
}

func (z *zapLogger) With(kv ...any) Logger {
	return &zapLogger{l: z.l.With(toFields(kv)...)}
}

func (z *zapLogger) Debug(msg string, kv ...any) { z.l.Debug(msg, toFields(kv)...) }
func (z *zapLogger) Info(msg string, kv ...any)  { z.l.Info(msg, toFields(kv)...) }
func (z *zapLogger) Warn(msg string, kv ...any)  { z.l.Warn(msg, toFields(kv)...) }
func (z *zapLogger) Error(msg string, kv ...any) { z.l.Error(msg, toFields(kv)...) }
