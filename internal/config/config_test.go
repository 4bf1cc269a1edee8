// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_DefaultsMatchOperatorSurface(t *testing.T) {
	cfg, err := NewBuilder().Build()
	require.NoError(t, err)

	require.EqualValues(t, 50051, cfg.Port)
	require.EqualValues(t, 1, cfg.NumPorts)
	require.EqualValues(t, 50101, cfg.PushBasePort)
	require.EqualValues(t, 50061, cfg.SimulatorPushPort)
	require.Equal(t, "info", cfg.MinLogLevel)
}

func TestBuilder_RejectsZeroNumPorts(t *testing.T) {
	_, err := NewBuilder().WithNumPorts(0).Build()
	require.ErrorIs(t, err, ErrInvalidNumPorts)
}

func TestBuilder_RejectsNonPositiveWorkerPoolSize(t *testing.T) {
	_, err := NewBuilder().WithPushWorkerPoolSize(0).Build()
	require.ErrorIs(t, err, ErrInvalidWorkerPoolSize)
}

func TestBuilder_FirstErrorWins(t *testing.T) {
	_, err := NewBuilder().WithNumPorts(0).WithPushWorkerPoolSize(0).Build()
	require.ErrorIs(t, err, ErrInvalidNumPorts)
}
