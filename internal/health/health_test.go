// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunAll_HealthyWhenEveryCheckPasses(t *testing.T) {
	report := RunAll(context.Background(),
		Checker{Name: "a", Func: func(context.Context) (interface{}, error) { return nil, nil }},
		Checker{Name: "b", Func: func(context.Context) (interface{}, error) { return nil, nil }},
	)
	require.True(t, report.Healthy)
	require.Len(t, report.Checks, 2)
}

func TestRunAll_UnhealthyWhenAnyCheckFails(t *testing.T) {
	wantErr := errors.New("scenario not started")
	report := RunAll(context.Background(),
		Checker{Name: "a", Func: func(context.Context) (interface{}, error) { return nil, nil }},
		Checker{Name: "b", Func: func(context.Context) (interface{}, error) { return nil, wantErr }},
	)
	require.False(t, report.Healthy)
	require.Equal(t, wantErr.Error(), report.Checks[1].Error)
}
