// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

// noop implements Logger with no side effects; used by every unit test in
// this repository, mirroring the teacher's log.NewNoOpLogger.
type noop struct{}

// NoOp returns a Logger that discards everything.
func NoOp() Logger { return noop{} }

func (noop) With(kv ...any) Logger          { return noop{} }
func (noop) Debug(msg string, kv ...any) {}
func (noop) Info(msg string, kv ...any)  {}
func (noop) Warn(msg string, kv ...any)  {}
func (noop) Error(msg string, kv ...any) {}
