// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package grpcadapter

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/luxfi/ecloud/internal/transport"
	"github.com/luxfi/ecloud/pkg/ecloudpb"
)

// pusher adapts an ecloudpb.PushClient dialed over a real *grpc.ClientConn
// to the core's abstract transport.Pusher interface.
type pusher struct {
	conn   *grpc.ClientConn
	client ecloudpb.PushClient
}

func (p *pusher) PushTick(ctx context.Context, tick *ecloudpb.Tick) error {
	_, err := p.client.PushTick(ctx, tick, ecloudpb.CallOptions()...)
	return err
}

func (p *pusher) Close() error { return p.conn.Close() }

// Dial is a transport.Dialer that opens a plaintext gRPC connection to
// addr, matching the teacher's grpcutils.Dial (insecure credentials, no
// TLS — there is no peer authentication in this protocol, per
// SPEC_FULL.md's non-goals).
func Dial(addr string) (transport.Pusher, error) {
	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &pusher{conn: conn, client: ecloudpb.NewPushClient(conn)}, nil
}
