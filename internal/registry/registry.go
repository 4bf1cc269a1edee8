// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry implements the Peer Registry component (SPEC_FULL.md
// §4.2): the set of known vehicle clients, their assigned indices, push
// handles, and names, plus the simulator's own push handle. Index
// assignment is serialized by a single registration lock, matching the
// reference implementation's registration_mu_ and the teacher's habit
// (poll.set) of guarding a small map with one lock rather than reaching for
// anything more elaborate.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/ecloud/internal/transport"
)

// ErrAtCapacity is returned by AssignVehicleIndex once the registry already
// holds as many vehicles as the scenario declared.
var ErrAtCapacity = errors.New("registry: at vehicle capacity")

type vehicle struct {
	name   string
	pusher transport.Pusher
}

// Registry holds the vehicle set and the simulator's push handle for one
// scenario lifetime. It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	capacity int
	vehicles []vehicle

	simulator transport.Pusher
}

// New returns a Registry with room for at most capacity vehicles. capacity
// is fixed once the scenario starts, per SPEC_FULL.md §4.6.
func New(capacity int) *Registry {
	return &Registry{capacity: capacity}
}

// SetSimulatorPusher installs the simulator's push handle. Called once,
// when the Transport Adapter is wired up.
func (r *Registry) SetSimulatorPusher(p transport.Pusher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.simulator = p
}

// GetSimulatorPusher returns the simulator's push handle.
func (r *Registry) GetSimulatorPusher() transport.Pusher {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.simulator
}

// AssignVehicleIndex allocates the next free index and dials that vehicle's
// push client at vehicleIP:basePort+index via dial, recording name. Indices
// are handed out in strictly increasing order starting at 0 (SPEC_FULL.md
// invariant: indices are dense in [0, N) after registration completes), and
// the index must be known before the address can be formed — vehicle i's
// push listener sits at basePort+i (SPEC_FULL.md §4.2).
func (r *Registry) AssignVehicleIndex(name, vehicleIP string, basePort uint16, dial transport.Dialer) (int32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.vehicles) >= r.capacity {
		return 0, fmt.Errorf("%w: capacity %d", ErrAtCapacity, r.capacity)
	}

	index := int32(len(r.vehicles))
	pushAddr := fmt.Sprintf("%s:%d", vehicleIP, int(basePort)+int(index))
	pusher, err := dial(pushAddr)
	if err != nil {
		return 0, fmt.Errorf("registry: dial vehicle push client at %s: %w", pushAddr, err)
	}

	r.vehicles = append(r.vehicles, vehicle{name: name, pusher: pusher})
	return index, nil
}

// Count reports how many vehicles have registered so far.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.vehicles)
}

// Name returns the display name recorded for vehicleIndex, or "" if unset.
func (r *Registry) Name(vehicleIndex int32) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(vehicleIndex) < 0 || int(vehicleIndex) >= len(r.vehicles) {
		return ""
	}
	return r.vehicles[vehicleIndex].name
}

// GetVehiclePushers returns every registered vehicle's push handle, ordered
// by index.
func (r *Registry) GetVehiclePushers() []transport.Pusher {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]transport.Pusher, len(r.vehicles))
	for i := range r.vehicles {
		out[i] = r.vehicles[i].pusher
	}
	return out
}

// Close tears down every held push connection, including the simulator's.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, v := range r.vehicles {
		if v.pusher != nil {
			if err := v.pusher.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if r.simulator != nil {
		if err := r.simulator.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
