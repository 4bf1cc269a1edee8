// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logging is the Structured Logging ambient component
// (SPEC_FULL.md §4.8): a small Logger abstraction grounded on the teacher's
// log.NoLog/log.NewNoOpLogger re-export pattern, with a zap-backed
// production implementation.
package logging

// Logger is the minimal structured-logging surface the coordinator and its
// supporting packages depend on. Key-value pairs follow the same
// alternating key, value, key, value convention the teacher's logger.Info
// calls use.
type Logger interface {
	With(kv ...any) Logger
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}
