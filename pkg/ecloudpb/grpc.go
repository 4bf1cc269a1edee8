// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ecloudpb

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/emptypb"
)

// jsonCodec marshals the plain structs in this package over real gRPC
// framing. protoc-gen-go-grpc output normally relies on proto.Message
// reflection to do this; since the wire format is explicitly opaque to the
// coordinator core (SPEC_FULL.md §4.1), a registered JSON codec stands in
// for it without requiring a protoc step.
type jsonCodec struct{}

const codecName = "ecloudjson"

func (jsonCodec) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
func (jsonCodec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOptions returns the per-call options every ecloud client call
// needs so requests are framed with the package's codec.
func CallOptions() []grpc.CallOption {
	return []grpc.CallOption{grpc.ForceCodec(jsonCodec{})}
}

// ServerCodec returns the server option that makes an *grpc.Server decode
// with the package's codec regardless of the content-subtype a peer sends.
func ServerCodec() grpc.ServerOption {
	return grpc.ForceServerCodec(jsonCodec{})
}

const (
	ecloudServiceName = "ecloud.Ecloud"
	pushServiceName   = "ecloud.EcloudPush"
)

// EcloudServiceDesc is the ServiceDesc protoc-gen-go-grpc would otherwise
// generate for the inbound simulator/vehicle-facing RPCs.
var EcloudServiceDesc = grpc.ServiceDesc{
	ServiceName: ecloudServiceName,
	HandlerType: (*EcloudServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "StartScenario", Handler: _Ecloud_StartScenario_Handler},
		{MethodName: "DoTick", Handler: _Ecloud_DoTick_Handler},
		{MethodName: "GetVehicleUpdates", Handler: _Ecloud_GetVehicleUpdates_Handler},
		{MethodName: "PushEdgeWaypoints", Handler: _Ecloud_PushEdgeWaypoints_Handler},
		{MethodName: "EndScenario", Handler: _Ecloud_EndScenario_Handler},
		{MethodName: "RegisterVehicle", Handler: _Ecloud_RegisterVehicle_Handler},
		{MethodName: "SendUpdate", Handler: _Ecloud_SendUpdate_Handler},
		{MethodName: "GetWaypoints", Handler: _Ecloud_GetWaypoints_Handler},
	},
	Metadata: "ecloud.proto",
}

// PushServiceDesc is the ServiceDesc for the outbound push RPC. The
// coordinator never registers this (it only dials it); it is provided so
// test doubles standing in for a simulator or vehicle client can.
var PushServiceDesc = grpc.ServiceDesc{
	ServiceName: pushServiceName,
	HandlerType: (*PushServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PushTick", Handler: _Push_PushTick_Handler},
	},
	Metadata: "ecloud.proto",
}

func RegisterEcloudServer(s grpc.ServiceRegistrar, srv EcloudServer) {
	s.RegisterService(&EcloudServiceDesc, srv)
}

func RegisterPushServer(s grpc.ServiceRegistrar, srv PushServer) {
	s.RegisterService(&PushServiceDesc, srv)
}

func _Ecloud_StartScenario_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SimulationInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EcloudServer).StartScenario(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ecloudServiceName + "/StartScenario"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EcloudServer).StartScenario(ctx, req.(*SimulationInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ecloud_DoTick_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Tick)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EcloudServer).DoTick(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ecloudServiceName + "/DoTick"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EcloudServer).DoTick(ctx, req.(*Tick))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ecloud_GetVehicleUpdates_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EcloudServer).GetVehicleUpdates(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ecloudServiceName + "/GetVehicleUpdates"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EcloudServer).GetVehicleUpdates(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ecloud_PushEdgeWaypoints_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EdgeWaypoints)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EcloudServer).PushEdgeWaypoints(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ecloudServiceName + "/PushEdgeWaypoints"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EcloudServer).PushEdgeWaypoints(ctx, req.(*EdgeWaypoints))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ecloud_EndScenario_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EcloudServer).EndScenario(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ecloudServiceName + "/EndScenario"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EcloudServer).EndScenario(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ecloud_RegisterVehicle_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RegistrationInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EcloudServer).RegisterVehicle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ecloudServiceName + "/RegisterVehicle"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EcloudServer).RegisterVehicle(ctx, req.(*RegistrationInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ecloud_SendUpdate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(VehicleUpdate)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EcloudServer).SendUpdate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ecloudServiceName + "/SendUpdate"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EcloudServer).SendUpdate(ctx, req.(*VehicleUpdate))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ecloud_GetWaypoints_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(WaypointRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EcloudServer).GetWaypoints(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ecloudServiceName + "/GetWaypoints"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EcloudServer).GetWaypoints(ctx, req.(*WaypointRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Push_PushTick_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Tick)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PushServer).PushTick(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + pushServiceName + "/PushTick"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PushServer).PushTick(ctx, req.(*Tick))
	}
	return interceptor(ctx, in, info, handler)
}

// ecloudClient and pushClient are the client-stub halves of the generated
// package: thin wrappers around (*grpc.ClientConn).Invoke.

type ecloudClient struct {
	cc *grpc.ClientConn
}

// NewEcloudClient returns a client for the inbound simulator/vehicle-facing
// service, for use by test harnesses standing in for those peers.
func NewEcloudClient(cc *grpc.ClientConn) EcloudClient {
	return &ecloudClient{cc: cc}
}

func (c *ecloudClient) StartScenario(ctx context.Context, in *SimulationInfo, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, "/"+ecloudServiceName+"/StartScenario", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ecloudClient) DoTick(ctx context.Context, in *Tick, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, "/"+ecloudServiceName+"/DoTick", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ecloudClient) GetVehicleUpdates(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*EcloudResponse, error) {
	out := new(EcloudResponse)
	if err := c.cc.Invoke(ctx, "/"+ecloudServiceName+"/GetVehicleUpdates", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ecloudClient) PushEdgeWaypoints(ctx context.Context, in *EdgeWaypoints, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, "/"+ecloudServiceName+"/PushEdgeWaypoints", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ecloudClient) EndScenario(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, "/"+ecloudServiceName+"/EndScenario", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ecloudClient) RegisterVehicle(ctx context.Context, in *RegistrationInfo, opts ...grpc.CallOption) (*SimulationInfo, error) {
	out := new(SimulationInfo)
	if err := c.cc.Invoke(ctx, "/"+ecloudServiceName+"/RegisterVehicle", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ecloudClient) SendUpdate(ctx context.Context, in *VehicleUpdate, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, "/"+ecloudServiceName+"/SendUpdate", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ecloudClient) GetWaypoints(ctx context.Context, in *WaypointRequest, opts ...grpc.CallOption) (*WaypointBuffer, error) {
	out := new(WaypointBuffer)
	if err := c.cc.Invoke(ctx, "/"+ecloudServiceName+"/GetWaypoints", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type pushClient struct {
	cc *grpc.ClientConn
}

// NewPushClient returns the coordinator's outbound Push(addr, message)
// channel (SPEC_FULL.md §4.1) to a single peer identified by cc's target.
func NewPushClient(cc *grpc.ClientConn) PushClient {
	return &pushClient{cc: cc}
}

func (c *pushClient) PushTick(ctx context.Context, in *Tick, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, "/"+pushServiceName+"/PushTick", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
