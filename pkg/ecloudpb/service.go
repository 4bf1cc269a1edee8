// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ecloudpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// EcloudServer is implemented by the tick coordinator. It serves every
// operation the simulator and the vehicle clients call inbound.
type EcloudServer interface {
	StartScenario(context.Context, *SimulationInfo) (*emptypb.Empty, error)
	DoTick(context.Context, *Tick) (*emptypb.Empty, error)
	GetVehicleUpdates(context.Context, *emptypb.Empty) (*EcloudResponse, error)
	PushEdgeWaypoints(context.Context, *EdgeWaypoints) (*emptypb.Empty, error)
	EndScenario(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	RegisterVehicle(context.Context, *RegistrationInfo) (*SimulationInfo, error)
	SendUpdate(context.Context, *VehicleUpdate) (*emptypb.Empty, error)
	GetWaypoints(context.Context, *WaypointRequest) (*WaypointBuffer, error)
}

// EcloudClient is the client-side counterpart, used by the simulator and by
// vehicle clients. It is also what the integration tests in this repo use to
// exercise a live coordinator over a real network connection.
type EcloudClient interface {
	StartScenario(ctx context.Context, in *SimulationInfo, opts ...grpc.CallOption) (*emptypb.Empty, error)
	DoTick(ctx context.Context, in *Tick, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetVehicleUpdates(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*EcloudResponse, error)
	PushEdgeWaypoints(ctx context.Context, in *EdgeWaypoints, opts ...grpc.CallOption) (*emptypb.Empty, error)
	EndScenario(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	RegisterVehicle(ctx context.Context, in *RegistrationInfo, opts ...grpc.CallOption) (*SimulationInfo, error)
	SendUpdate(ctx context.Context, in *VehicleUpdate, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetWaypoints(ctx context.Context, in *WaypointRequest, opts ...grpc.CallOption) (*WaypointBuffer, error)
}

// PushServer is implemented by a peer (simulator or vehicle client) that
// accepts the coordinator's outbound PushTick notification. The core never
// implements this side; it is declared here only so the gRPC plumbing and
// the test harness in this repo can stand in for a peer.
type PushServer interface {
	PushTick(context.Context, *Tick) (*emptypb.Empty, error)
}

// PushClient is the coordinator's view of a peer's push endpoint: the
// abstract "Push(addr, message)" channel from SPEC_FULL.md §4.1.
type PushClient interface {
	PushTick(ctx context.Context, in *Tick, opts ...grpc.CallOption) (*emptypb.Empty, error)
}
