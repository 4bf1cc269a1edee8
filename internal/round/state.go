// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package round implements the Round State component (SPEC_FULL.md §4.3):
// the authoritative, thread-safe state of the round currently in flight.
// It is grounded on the teacher's discipline of splitting contended state
// across independent locks (poll.set keeps a single map behind one mutex;
// this type keeps the reply list and the timestamp list behind two, exactly
// as the reference implementation's mu_/timestamp_mu_ split does) plus
// lock-free atomics for the scalars and the per-vehicle bitmap.
package round

import (
	"sync"
	"sync/atomic"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/luxfi/ecloud/pkg/ecloudpb"
)

// State is the per-round data every RPC handler reads or mutates. It is
// safe for concurrent use.
type State struct {
	tickID        atomic.Int32
	command       atomic.Int32
	smStartTstamp atomic.Pointer[timestamppb.Timestamp]

	repliedCount   atomic.Int32
	completedCount atomic.Int32
	outstanding    atomic.Int32 // vehicles yet to post a first reply this round

	replied []atomic.Bool // per-vehicle-index "has this vehicle replied this round"

	pendingMu sync.Mutex
	pending   [][]byte // opaque serialized VehicleUpdate payloads, submission order

	tsMu sync.Mutex
	ts   []*ecloudpb.Timestamps
}

// New returns a State sized for at most maxCars vehicles. The bitmap is
// fixed size for the process lifetime, mirroring the reference
// implementation's MAX_CARS-sized repliedCars_ array.
func New(maxCars int) *State {
	return &State{replied: make([]atomic.Bool, maxCars)}
}

// Reset zeroes the round for a new tick, per SPEC_FULL.md §4.3. numCars
// seeds outstanding, the single atomic counter Arrive drains down to zero;
// it is the round's expected vehicle count at the moment of reset, not a
// live view of the registry.
func (s *State) Reset(tickID int32, command ecloudpb.Command, smStart *timestamppb.Timestamp, numCars int32) {
	s.pendingMu.Lock()
	s.pending = nil
	s.pendingMu.Unlock()

	s.tsMu.Lock()
	s.ts = nil
	s.tsMu.Unlock()

	for i := range s.replied {
		s.replied[i].Store(false)
	}

	s.repliedCount.Store(0)
	s.completedCount.Store(0)
	s.outstanding.Store(numCars)
	s.tickID.Store(tickID)
	s.command.Store(int32(command))
	s.smStartTstamp.Store(smStart)
}

func (s *State) TickID() int32               { return s.tickID.Load() }
func (s *State) Command() ecloudpb.Command    { return ecloudpb.Command(s.command.Load()) }
func (s *State) SetCommand(c ecloudpb.Command) { s.command.Store(int32(c)) }
func (s *State) SmStartTstamp() *timestamppb.Timestamp { return s.smStartTstamp.Load() }

// MarkReplied sets per_vehicle_replied[i] and reports whether this is the
// first time vehicle i has replied this round (compare-and-set semantics).
// The known reference bug of not gating counter increments on this bit is
// fixed here: callers use the returned bool to decide whether to increment
// a counter (SPEC_FULL.md REDESIGN FLAGS, S7).
func (s *State) MarkReplied(vehicleIndex int32) (first bool) {
	return s.replied[vehicleIndex].CompareAndSwap(false, true)
}

// HasReplied reports per_vehicle_replied[i] for the current round.
func (s *State) HasReplied(vehicleIndex int32) bool {
	return s.replied[vehicleIndex].Load()
}

// IncReplied increments replied_count and returns the new value.
func (s *State) IncReplied() int32 { return s.repliedCount.Add(1) }

// IncCompleted increments completed_count and returns the new value.
func (s *State) IncCompleted() int32 { return s.completedCount.Add(1) }

// Arrive records one vehicle's first reply this round and returns the
// number still outstanding afterward. It is the single atomic step
// completion detection must drive off of: replied_count and completed_count
// are independent atomics, so summing them (two separate loads) after the
// fact lets two concurrent last-arrivals both observe the round total and
// both declare completion. Arrive's atomic.Add has exactly one caller that
// observes the transition to zero, so exactly one caller may fire the
// round-complete push (SPEC_FULL.md §8 invariant 4).
func (s *State) Arrive() (remaining int32) { return s.outstanding.Add(-1) }

// Counts returns (replied_count, completed_count) as of this call.
func (s *State) Counts() (replied, completed int32) {
	return s.repliedCount.Load(), s.completedCount.Load()
}

// AppendPending appends one opaque serialized reply to pending_replies.
func (s *State) AppendPending(payload []byte) {
	s.pendingMu.Lock()
	s.pending = append(s.pending, payload)
	s.pendingMu.Unlock()
}

// Drain atomically swaps out pending_replies and zeroes replied_count,
// per SPEC_FULL.md §4.3. It does NOT touch completed_count or the bitmap:
// those belong to round lifecycle (Reset), not to the drain operation.
func (s *State) Drain() [][]byte {
	s.pendingMu.Lock()
	out := s.pending
	s.pending = nil
	s.pendingMu.Unlock()
	s.repliedCount.Store(0)
	return out
}

// PendingLen reports the current length of pending_replies without
// draining it.
func (s *State) PendingLen() int {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	return len(s.pending)
}

// RecordTimestamp appends one latency record to client_timestamps.
func (s *State) RecordTimestamp(t *ecloudpb.Timestamps) {
	s.tsMu.Lock()
	s.ts = append(s.ts, t)
	s.tsMu.Unlock()
}

// Timestamps returns a copy of client_timestamps as of this call.
func (s *State) Timestamps() []*ecloudpb.Timestamps {
	s.tsMu.Lock()
	defer s.tsMu.Unlock()
	out := make([]*ecloudpb.Timestamps, len(s.ts))
	copy(out, s.ts)
	return out
}
