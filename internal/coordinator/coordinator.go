// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package coordinator implements the Tick Coordinator (SPEC_FULL.md §4.4):
// the state machine that drives the registration round and every
// subsequent tick round, fans ticks out to vehicles, and fans replies back
// in to the simulator. It is the central component of this repository;
// every other package exists to support it.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/luxfi/ecloud/internal/config"
	"github.com/luxfi/ecloud/internal/health"
	"github.com/luxfi/ecloud/internal/logging"
	"github.com/luxfi/ecloud/internal/metrics"
	"github.com/luxfi/ecloud/internal/registry"
	"github.com/luxfi/ecloud/internal/round"
	"github.com/luxfi/ecloud/internal/transport"
	"github.com/luxfi/ecloud/internal/waypoints"
	"github.com/luxfi/ecloud/pkg/ecloudpb"
)

// Phase is one state of the coordinator's lifecycle (SPEC_FULL.md §4.4).
type Phase int32

const (
	PhaseUninitialized Phase = iota
	PhaseScenarioSet
	PhaseRegistering
	PhaseReady
	PhaseTicking
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "UNINITIALIZED"
	case PhaseScenarioSet:
		return "SCENARIO_SET"
	case PhaseRegistering:
		return "REGISTERING"
	case PhaseReady:
		return "READY"
	case PhaseTicking:
		return "TICKING"
	case PhaseEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

// Coordinator owns every piece of round-lifetime state and implements
// ecloudpb.EcloudServer. A single value is constructed once in
// cmd/ecloud-server and handed to the transport adapter; there are no
// process-wide singletons (SPEC_FULL.md §9).
type Coordinator struct {
	cfg *config.Config
	log logging.Logger
	mx  *metrics.Metrics
	dial transport.Dialer

	phase atomic.Int32

	mu         sync.Mutex
	scenario   *ecloudpb.SimulationInfo
	numCars    int32
	isEdge     bool
	vehicleIP  string
	command    ecloudpb.Command
	roundStart time.Time

	round     *round.State
	registry  *registry.Registry
	waypoints *waypoints.Buffer

	pool *pushPool
}

// New constructs an idle Coordinator. dial is used to open push
// connections to vehicles and the simulator as they register; it is
// injected so the core never depends on a concrete transport
// (SPEC_FULL.md §4.1).
func New(cfg *config.Config, log logging.Logger, mx *metrics.Metrics, dial transport.Dialer) *Coordinator {
	return &Coordinator{
		cfg:       cfg,
		log:       log,
		mx:        mx,
		dial:      dial,
		round:     round.New(config.MaxCars),
		registry:  registry.New(0),
		waypoints: waypoints.New(),
		pool:      newPushPool(context.Background(), cfg.PushWorkerPoolSize, log, mx),
	}
}

// SetSimulatorPusher wires the simulator's own push handle, opened by the
// Transport Adapter once it knows where to dial the simulator's push port.
func (c *Coordinator) SetSimulatorPusher(p transport.Pusher) {
	c.registry.SetSimulatorPusher(p)
}

func (c *Coordinator) currentPhase() Phase { return Phase(c.phase.Load()) }

// currentCommand and currentRoundStart read the two scenario fields that,
// unlike numCars/isEdge/vehicleIP, are rewritten on every tick rather than
// once at StartScenario, so they stay behind the mutex for their whole
// lifetime rather than relying on a one-time publish fence.
func (c *Coordinator) currentCommand() ecloudpb.Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.command
}

func (c *Coordinator) currentRoundStart() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roundStart
}

// StartScenario arms the coordinator for a new scenario (SPEC_FULL.md
// §4.6): UNINITIALIZED → SCENARIO_SET.
func (c *Coordinator) StartScenario(ctx context.Context, info *ecloudpb.SimulationInfo) (*emptypb.Empty, error) {
	c.mu.Lock()
	c.scenario = info
	c.numCars = info.ExpectedVehicleCount
	c.isEdge = info.IsEdge
	c.vehicleIP = info.VehicleMachineIP
	c.command = ecloudpb.Command_TICK
	c.mu.Unlock()

	reg := registry.New(int(info.ExpectedVehicleCount))
	reg.SetSimulatorPusher(c.registry.GetSimulatorPusher())
	c.registry = reg
	c.round.Reset(0, ecloudpb.Command_TICK, nil, info.ExpectedVehicleCount)
	c.phase.Store(int32(PhaseScenarioSet))

	c.log.Info("scenario started",
		"scenario", info.TestScenario,
		"expected_vehicles", info.ExpectedVehicleCount,
		"is_edge", info.IsEdge)
	return &emptypb.Empty{}, nil
}

// RegisterVehicle assigns the next vehicle index, dials the vehicle's push
// endpoint, and — once every expected vehicle has registered — triggers the
// registration-complete push to the simulator (SPEC_FULL.md §4.4).
func (c *Coordinator) RegisterVehicle(ctx context.Context, in *ecloudpb.RegistrationInfo) (*ecloudpb.SimulationInfo, error) {
	if c.currentPhase() == PhaseUninitialized {
		return nil, ErrScenarioNotStarted
	}
	c.phase.CompareAndSwap(int32(PhaseScenarioSet), int32(PhaseRegistering))

	c.mu.Lock()
	vehicleIP := c.vehicleIP
	scenario := c.scenario
	c.mu.Unlock()

	index, err := c.registry.AssignVehicleIndex(in.ContainerName, vehicleIP, c.cfg.PushBasePort, c.dial)
	if err != nil {
		return nil, &ProtocolError{Op: "RegisterVehicle", Observed: err, Expected: "capacity available"}
	}
	c.mx.VehiclesRegistered.Inc()

	// Register with substate CARLA_UPDATE counts as a replied vehicle for
	// the registration round and contributes a pending_reply (SPEC_FULL.md
	// §4.4). Registration completion is driven off round.Arrive's single
	// atomic decrement, not a separate registry.Count() read, so the last
	// two vehicles to register can't both observe "every vehicle is in" and
	// both fire pushRegistrationComplete.
	if first := c.round.MarkReplied(index); first {
		c.round.IncReplied()
		if c.round.Arrive() == 0 {
			c.phase.Store(int32(PhaseReady))
			c.pushRegistrationComplete()
		}
	}
	if in.VehicleState == ecloudpb.VehicleState_CARLA_UPDATE {
		if payload, err := ecloudpb.Marshal(in); err == nil {
			c.round.AppendPending(payload)
		}
	}

	resp := &ecloudpb.SimulationInfo{
		TestScenario:         scenario.TestScenario,
		Application:          scenario.Application,
		Version:              scenario.Version,
		ExpectedVehicleCount: scenario.ExpectedVehicleCount,
		VehicleIndex:         index,
		IsEdge:               scenario.IsEdge,
	}
	c.log.Debug("vehicle registered", "vehicle_index", index, "name", in.ContainerName)
	return resp, nil
}

// DoTick advances the round (SPEC_FULL.md §4.4): resets Round State and
// fans (tick_id, command, sm_start_tstamp) out to every registered
// vehicle, always ranging from index 0 — fixing the reference
// implementation's uninitialized loop variable (SPEC_FULL.md §9 bug #1).
func (c *Coordinator) DoTick(ctx context.Context, in *ecloudpb.Tick) (*emptypb.Empty, error) {
	current := c.round.TickID()
	if in.TickId != current+1 {
		return nil, &ProtocolError{Op: "DoTick", Observed: in.TickId, Expected: current + 1}
	}

	// After EndScenario every later tick conveys END, whatever the request says.
	ended := c.currentPhase() == PhaseEnded
	command := in.Command
	if ended {
		command = ecloudpb.Command_END
	}

	c.mu.Lock()
	c.command = command
	c.roundStart = time.Now()
	c.mu.Unlock()

	c.round.Reset(in.TickId, command, in.SmStartTstamp, c.numCars)
	if !ended {
		c.phase.Store(int32(PhaseTicking))
	}

	vehicles := c.registry.GetVehiclePushers()
	tick := &ecloudpb.Tick{TickId: in.TickId, Command: command, SmStartTstamp: in.SmStartTstamp}
	for i := range vehicles {
		c.pool.submit(vehicles[i], fmt.Sprintf("vehicle-%d", i), tick)
	}

	c.log.Info("tick started", "tick_id", in.TickId, "command", command.String(), "vehicles", len(vehicles))
	return &emptypb.Empty{}, nil
}

// SendUpdate applies the reply-handling rules of SPEC_FULL.md §4.4.
func (c *Coordinator) SendUpdate(ctx context.Context, in *ecloudpb.VehicleUpdate) (*emptypb.Empty, error) {
	c.recordSendUpdate(in)
	return &emptypb.Empty{}, nil
}

// recordSendUpdate implements the reply bookkeeping for SendUpdate: a
// duplicate reply (per_vehicle_replied[i] already set) is observed but
// neither inflates a counter nor surfaces a second time in pending_replies
// (the fix for SPEC_FULL.md §9 bug #3 / S7). Round completion is driven off
// round.Arrive's single atomic decrement rather than summing replied_count
// and completed_count after the fact — that sum is two independent atomic
// loads, so two concurrent last-arrivals could each read the post-increment
// total and each declare the round complete. Arrive's atomic.Add has
// exactly one caller observe the transition to zero (SPEC_FULL.md §8
// invariant 4, §5 "at most one thread observes complete").
func (c *Coordinator) recordSendUpdate(in *ecloudpb.VehicleUpdate) {
	first := c.round.MarkReplied(in.VehicleIndex)
	if !first {
		c.log.Debug("duplicate reply observed", "vehicle_index", in.VehicleIndex, "tick_id", in.TickId)
		return
	}

	include := c.isEdge ||
		in.VehicleIndex == c.cfg.SpectatorIndex ||
		in.VehicleState == ecloudpb.VehicleState_TICK_DONE ||
		in.VehicleState == ecloudpb.VehicleState_DEBUG_INFO_UPDATE
	if include {
		if payload, err := ecloudpb.Marshal(in); err == nil {
			c.round.AppendPending(payload)
		}
	}

	switch in.VehicleState {
	case ecloudpb.VehicleState_TICK_OK:
		c.round.IncReplied()
		c.round.RecordTimestamp(&ecloudpb.Timestamps{
			VehicleIndex:      in.VehicleIndex,
			SmStartTstamp:     c.round.SmStartTstamp(),
			ClientStartTstamp: in.ClientStartTstamp,
			ClientEndTstamp:   in.ClientEndTstamp,
			EcloudRcvTstamp:   timestamppb.Now(),
		})
	case ecloudpb.VehicleState_TICK_DONE, ecloudpb.VehicleState_DEBUG_INFO_UPDATE:
		c.round.IncCompleted()
	}

	if c.round.Arrive() == 0 {
		c.pushRoundComplete()
	}
}

// GetVehicleUpdates drains pending_replies for the simulator to consume.
func (c *Coordinator) GetVehicleUpdates(ctx context.Context, _ *emptypb.Empty) (*ecloudpb.EcloudResponse, error) {
	payloads := c.round.Drain()
	updates := make([]*ecloudpb.VehicleUpdate, 0, len(payloads))
	for _, payload := range payloads {
		u := new(ecloudpb.VehicleUpdate)
		if err := ecloudpb.Unmarshal(payload, u); err != nil {
			continue
		}
		updates = append(updates, u)
	}
	return &ecloudpb.EcloudResponse{VehicleUpdate: updates}, nil
}

// PushEdgeWaypoints replaces the edge-waypoint snapshot (SPEC_FULL.md §4.5).
func (c *Coordinator) PushEdgeWaypoints(ctx context.Context, in *ecloudpb.EdgeWaypoints) (*emptypb.Empty, error) {
	if err := c.waypoints.Put(in.AllWaypointBuffers); err != nil {
		return nil, fmt.Errorf("coordinator: put edge waypoints: %w", err)
	}
	return &emptypb.Empty{}, nil
}

// GetWaypoints returns the current waypoint buffer for one vehicle.
func (c *Coordinator) GetWaypoints(ctx context.Context, in *ecloudpb.WaypointRequest) (*ecloudpb.WaypointBuffer, error) {
	buf, _ := c.waypoints.Get(in.VehicleIndex)
	return buf, nil
}

// EndScenario sets command=END; it does not itself tick vehicles — the
// next DoTick propagates END (SPEC_FULL.md §4.6).
func (c *Coordinator) EndScenario(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	c.mu.Lock()
	c.command = ecloudpb.Command_END
	c.mu.Unlock()
	c.round.SetCommand(ecloudpb.Command_END)
	c.phase.Store(int32(PhaseEnded))
	c.log.Info("scenario ended")
	return &emptypb.Empty{}, nil
}

// pushRegistrationComplete pushes a single PushTick(tick_id=1, command,
// sm_start_tstamp) to the simulator once every vehicle has registered,
// preserving the reference implementation's tick_id=1 placeholder verbatim
// for wire compatibility (SPEC_FULL.md §9 open question, decided).
func (c *Coordinator) pushRegistrationComplete() {
	c.mx.TicksCompleted.Inc()
	tick := &ecloudpb.Tick{TickId: 1, Command: c.currentCommand(), SmStartTstamp: c.round.SmStartTstamp()}
	c.pool.submit(c.registry.GetSimulatorPusher(), "simulator", tick)
}

// pushRoundComplete pushes a single PushTick carrying the round's
// timestamp vector to the simulator exactly once per completed round
// (invariant 4, SPEC_FULL.md §8).
func (c *Coordinator) pushRoundComplete() {
	c.mx.TicksCompleted.Inc()
	if start := c.currentRoundStart(); !start.IsZero() {
		c.mx.RoundDuration.Observe(time.Since(start).Seconds())
	}
	tick := &ecloudpb.Tick{TickId: 1, Command: c.currentCommand(), Timestamps: c.round.Timestamps()}
	c.pool.submit(c.registry.GetSimulatorPusher(), "simulator", tick)
}

// Health reports the coordinator's current phase (SPEC_FULL.md §4.10, S8).
func (c *Coordinator) Health(ctx context.Context) (interface{}, error) {
	phase := c.currentPhase()
	replied, completed := c.round.Counts()
	report := health.RunAll(ctx, health.Checker{
		Name: "scenario",
		Func: func(context.Context) (interface{}, error) {
			details := map[string]interface{}{
				"phase":            phase.String(),
				"tick_id":          c.round.TickID(),
				"replied_count":    replied,
				"completed_count":  completed,
				"vehicles_registered": c.registry.Count(),
			}
			if phase == PhaseUninitialized {
				return details, ErrScenarioNotStarted
			}
			return details, nil
		},
	})
	return &report, nil
}
