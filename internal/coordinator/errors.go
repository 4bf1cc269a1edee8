// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package coordinator

import (
	"errors"
	"fmt"
)

// ErrScenarioNotStarted is returned (and treated as fatal by the caller)
// when a vehicle attempts to Register before StartScenario has run,
// grounded on the teacher's config package-level sentinel-error style.
var ErrScenarioNotStarted = errors.New("coordinator: scenario not started")

// ProtocolError wraps a fatal protocol violation: an operation observed a
// value inconsistent with the state machine (SPEC_FULL.md §7), such as a
// non-consecutive tick_id or a registration beyond scenario capacity.
type ProtocolError struct {
	Op       string
	Observed any
	Expected any
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("coordinator: protocol violation in %s: observed %v, expected %v", e.Op, e.Observed, e.Expected)
}

func (e *ProtocolError) Unwrap() error { return errProtocolViolation }

var errProtocolViolation = errors.New("coordinator: protocol violation")
