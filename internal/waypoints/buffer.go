// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package waypoints implements the Edge Waypoint Buffer component
// (SPEC_FULL.md §4.5): a short-lived per-tick store mapping vehicle index
// to its planned waypoint sequence. Readers must observe either the prior
// snapshot in full or the new one in full, never a partial write; this is
// implemented with an atomic pointer swap of the whole map, the same
// technique the teacher's poll/quorum packages reach for instead of a
// read-write mutex when readers must never block a writer.
package waypoints

import (
	"sync/atomic"

	"github.com/luxfi/ecloud/pkg/ecloudpb"
)

// Buffer holds the current edge-waypoint snapshot.
type Buffer struct {
	snapshot atomic.Pointer[map[int32][]byte]
}

// New returns an empty Buffer.
func New() *Buffer {
	b := &Buffer{}
	empty := map[int32][]byte{}
	b.snapshot.Store(&empty)
	return b
}

// Put atomically replaces the entire snapshot with one entry per buffer,
// keyed by its VehicleIndex. Each WaypointBuffer is serialized into the
// opaque bytes vehicles receive back from Get, per SPEC_FULL.md §4.5.
func (b *Buffer) Put(buffers []*ecloudpb.WaypointBuffer) error {
	snapshot := make(map[int32][]byte, len(buffers))
	for _, wb := range buffers {
		payload, err := ecloudpb.Marshal(wb)
		if err != nil {
			return err
		}
		snapshot[wb.VehicleIndex] = payload
	}
	b.snapshot.Store(&snapshot)
	return nil
}

// Get returns the waypoint buffer for vehicleIndex, or an empty buffer if
// none is staged (SPEC_FULL.md §4.5, §7: absence means "no plan update").
// The buffer is parsed into a freshly allocated local value: the reference
// implementation's Client_GetWaypoints dereferences an uninitialized
// pointer here (SPEC_FULL.md §9 bug #2); this is the fix.
func (b *Buffer) Get(vehicleIndex int32) (*ecloudpb.WaypointBuffer, bool) {
	snapshot := *b.snapshot.Load()
	payload, ok := snapshot[vehicleIndex]
	if !ok {
		return &ecloudpb.WaypointBuffer{VehicleIndex: vehicleIndex}, false
	}
	out := new(ecloudpb.WaypointBuffer)
	if err := ecloudpb.Unmarshal(payload, out); err != nil {
		return &ecloudpb.WaypointBuffer{VehicleIndex: vehicleIndex}, false
	}
	return out, true
}
