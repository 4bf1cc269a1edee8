// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ecloudpb holds the wire messages and service interfaces for the
// ecloud tick-synchronization protocol. It plays the role a protoc-generated
// package would play, but is hand-written: the wire format is explicitly
// opaque to the coordinator core (see SPEC_FULL.md §4.1), so the messages
// here are plain structs rather than descriptor-backed proto.Message types,
// matching the same simplification the teacher applies in
// utils/networking/grpc/proto/pb/validatorstate.
package ecloudpb

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// VehicleState mirrors the VehicleState enum carried on Register and
// SendUpdate requests.
type VehicleState int32

const (
	VehicleState_REGISTERING      VehicleState = 0
	VehicleState_CARLA_UPDATE     VehicleState = 1
	VehicleState_TICK_OK          VehicleState = 2
	VehicleState_TICK_DONE        VehicleState = 3
	VehicleState_DEBUG_INFO_UPDATE VehicleState = 4
)

func (s VehicleState) String() string {
	switch s {
	case VehicleState_REGISTERING:
		return "REGISTERING"
	case VehicleState_CARLA_UPDATE:
		return "CARLA_UPDATE"
	case VehicleState_TICK_OK:
		return "TICK_OK"
	case VehicleState_TICK_DONE:
		return "TICK_DONE"
	case VehicleState_DEBUG_INFO_UPDATE:
		return "DEBUG_INFO_UPDATE"
	default:
		return "UNKNOWN"
	}
}

// Command is the scenario-defined instruction carried on every Tick.
type Command int32

const (
	Command_TICK Command = 0
	Command_END  Command = 1
)

func (c Command) String() string {
	switch c {
	case Command_TICK:
		return "TICK"
	case Command_END:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// SimulationInfo is both the StartScenario request and the RegisterVehicle
// response: it carries the scenario payload the vehicle needs to configure
// itself, plus (in the RegisterVehicle response case) the assigned index.
type SimulationInfo struct {
	TestScenario         string `json:"test_scenario,omitempty"`
	Application          string `json:"application,omitempty"`
	Version              string `json:"version,omitempty"`
	ExpectedVehicleCount int32  `json:"expected_vehicle_count,omitempty"`
	VehicleIndex         int32  `json:"vehicle_index,omitempty"`
	IsEdge               bool   `json:"is_edge,omitempty"`
	VehicleMachineIP     string `json:"vehicle_machine_ip,omitempty"`
}

// RegistrationInfo is the Register request.
type RegistrationInfo struct {
	ContainerName string       `json:"container_name,omitempty"`
	VehicleState  VehicleState `json:"vehicle_state,omitempty"`
	ActorID       int32        `json:"actor_id,omitempty"`
	Vid           string       `json:"vid,omitempty"`
	VehicleIndex  int32        `json:"vehicle_index,omitempty"`
}

// Timestamps is one latency record: vehicle index plus the five wall-clock
// readings taken along the round-trip.
type Timestamps struct {
	VehicleIndex      int32                  `json:"vehicle_index,omitempty"`
	SmStartTstamp     *timestamppb.Timestamp `json:"sm_start_tstamp,omitempty"`
	ClientStartTstamp *timestamppb.Timestamp `json:"client_start_tstamp,omitempty"`
	ClientEndTstamp   *timestamppb.Timestamp `json:"client_end_tstamp,omitempty"`
	EcloudRcvTstamp   *timestamppb.Timestamp `json:"ecloud_rcv_tstamp,omitempty"`
	EcloudSndTstamp   *timestamppb.Timestamp `json:"ecloud_snd_tstamp,omitempty"`
}

// Tick is both the DoTick request and the PushTick payload.
type Tick struct {
	TickId        int32                  `json:"tick_id,omitempty"`
	Command       Command                `json:"command,omitempty"`
	SmStartTstamp *timestamppb.Timestamp `json:"sm_start_tstamp,omitempty"`
	Timestamps    []*Timestamps          `json:"timestamps,omitempty"`
}

// VehicleUpdate is the SendUpdate request, and also the element type stored
// (serialized) in pending_replies and returned by GetVehicleUpdates.
type VehicleUpdate struct {
	VehicleIndex      int32                  `json:"vehicle_index,omitempty"`
	TickId            int32                  `json:"tick_id,omitempty"`
	VehicleState      VehicleState           `json:"vehicle_state,omitempty"`
	ClientStartTstamp *timestamppb.Timestamp `json:"client_start_tstamp,omitempty"`
	ClientEndTstamp   *timestamppb.Timestamp `json:"client_end_tstamp,omitempty"`
	DebugInfo         []byte                 `json:"debug_info,omitempty"`
}

// EcloudResponse is the GetVehicleUpdates response.
type EcloudResponse struct {
	VehicleUpdate []*VehicleUpdate `json:"vehicle_update,omitempty"`
}

// Waypoint is a single planned trajectory point. Transform/Location/Rotation
// from the original wire format are flattened here since nothing in this
// core inspects their contents; they are opaque cargo to vehicles.
type Waypoint struct {
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Z     float64 `json:"z,omitempty"`
	Roll  float64 `json:"roll,omitempty"`
	Pitch float64 `json:"pitch,omitempty"`
	Yaw   float64 `json:"yaw,omitempty"`
}

// WaypointBuffer is both one entry of an EdgeWaypoints push and the
// GetWaypoints response.
type WaypointBuffer struct {
	VehicleIndex   int32       `json:"vehicle_index,omitempty"`
	WaypointBuffer []*Waypoint `json:"waypoint_buffer,omitempty"`
}

// WaypointRequest is the GetWaypoints request.
type WaypointRequest struct {
	VehicleIndex int32 `json:"vehicle_index,omitempty"`
}

// EdgeWaypoints is the PushEdgeWaypoints request: the full per-tick
// snapshot, one buffer per vehicle that has a plan this tick.
type EdgeWaypoints struct {
	AllWaypointBuffers []*WaypointBuffer `json:"all_waypoint_buffers,omitempty"`
}
