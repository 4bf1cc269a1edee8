// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package health is the Health ambient component (SPEC_FULL.md §4.10),
// grounded directly on the teacher's api/health package.
package health

import (
	"context"
	"time"
)

// Checkable is implemented by any component that can report its own health,
// matching the teacher's api/health.Checkable.
type Checkable interface {
	Health(context.Context) (interface{}, error)
}

// Check is an individual named health check result.
type Check struct {
	Name     string                 `json:"name"`
	Healthy  bool                   `json:"healthy"`
	Error    string                 `json:"error,omitempty"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Duration time.Duration          `json:"duration"`
}

// Report aggregates every Check run against the coordinator.
type Report struct {
	Healthy  bool                   `json:"healthy"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Checks   []Check                `json:"checks,omitempty"`
	Duration time.Duration          `json:"duration"`
}

// Checker is a single named check function; Run produces a Check, timing
// the call and recording a non-nil error into Check.Error.
type Checker struct {
	Name string
	Func func(context.Context) (interface{}, error)
}

// Run executes the check and returns a timed Check result.
func (c Checker) Run(ctx context.Context) Check {
	start := time.Now()
	details, err := c.Func(ctx)
	check := Check{
		Name:     c.Name,
		Healthy:  err == nil,
		Duration: time.Since(start),
	}
	if err != nil {
		check.Error = err.Error()
	}
	if m, ok := details.(map[string]interface{}); ok {
		check.Details = m
	}
	return check
}

// RunAll runs every checker and folds the results into a single Report.
func RunAll(ctx context.Context, checkers ...Checker) Report {
	start := time.Now()
	report := Report{Healthy: true, Checks: make([]Check, 0, len(checkers))}
	for _, c := range checkers {
		check := c.Run(ctx)
		report.Checks = append(report.Checks, check)
		if !check.Healthy {
			report.Healthy = false
		}
	}
	report.Duration = time.Since(start)
	return report
}
