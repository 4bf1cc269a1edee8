// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ecloud/pkg/ecloudpb"
)

func TestMarkReplied_DedupesDuplicateReply(t *testing.T) {
	s := New(4)

	first := s.MarkReplied(0)
	require.True(t, first)

	second := s.MarkReplied(0)
	require.False(t, second)

	require.True(t, s.HasReplied(0))
	require.False(t, s.HasReplied(1))
}

func TestReset_ClearsBitmapAndCounters(t *testing.T) {
	s := New(4)
	s.MarkReplied(0)
	s.IncReplied()
	s.AppendPending([]byte("x"))
	s.RecordTimestamp(&ecloudpb.Timestamps{VehicleIndex: 0})

	s.Reset(1, ecloudpb.Command_TICK, nil, 4)

	require.False(t, s.HasReplied(0))
	replied, completed := s.Counts()
	require.Zero(t, replied)
	require.Zero(t, completed)
	require.Zero(t, s.PendingLen())
	require.Empty(t, s.Timestamps())
	require.EqualValues(t, 1, s.TickID())
}

func TestDrain_ReturnsSubmissionOrderAndZeroesRepliedCount(t *testing.T) {
	s := New(4)
	s.AppendPending([]byte("a"))
	s.AppendPending([]byte("b"))
	s.IncReplied()
	s.IncReplied()

	out := s.Drain()
	require.Equal(t, [][]byte{[]byte("a"), []byte("b")}, out)

	replied, completed := s.Counts()
	require.Zero(t, replied)
	require.Zero(t, completed, "Drain must not touch completed_count")
	require.Zero(t, s.PendingLen())
}

func TestCounts_ReportsIndependentAtomics(t *testing.T) {
	s := New(4)
	s.IncReplied()
	s.IncReplied()
	s.IncCompleted()

	replied, completed := s.Counts()
	require.EqualValues(t, 2, replied)
	require.EqualValues(t, 1, completed)
}

func TestArrive_FiresExactlyOnceAtZero(t *testing.T) {
	s := New(4)
	s.Reset(1, ecloudpb.Command_TICK, nil, 3)

	require.EqualValues(t, 2, s.Arrive())
	require.EqualValues(t, 1, s.Arrive())

	var wg sync.WaitGroup
	zeroes := int32(0)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Arrive() == 0 {
				atomic.AddInt32(&zeroes, 1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, zeroes, "exactly one concurrent Arrive must observe the transition to zero")
}
