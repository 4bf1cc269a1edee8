// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package grpcadapter is the concrete Transport Adapter binding the
// abstract core to real google.golang.org/grpc, grounded on the teacher's
// networking/grpc/grpcutils helpers. It is the only package in this
// repository that imports a concrete network transport; everything under
// internal/coordinator depends only on internal/transport's interfaces.
package grpcadapter

import (
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"github.com/luxfi/ecloud/internal/config"
	"github.com/luxfi/ecloud/internal/logging"
	"github.com/luxfi/ecloud/pkg/ecloudpb"
)

// ServerCloser gracefully stops every server it has been handed, exactly as
// the teacher's grpcutils.ServerCloser does for its own fleet of listeners.
type ServerCloser struct {
	servers []*grpc.Server
}

func (s *ServerCloser) Add(server *grpc.Server) {
	s.servers = append(s.servers, server)
}

func (s *ServerCloser) Close() {
	for _, srv := range s.servers {
		srv.GracefulStop()
	}
}

// Serve binds cfg.NumPorts sibling listeners starting at cfg.Port, stride
// 2 (SPEC_FULL.md §6), and serves ecloudSrv on all of them with the
// package's forced JSON codec and the configured keepalive policy. Each
// server runs in its own goroutine; Serve returns as soon as every
// listener is bound, and the servers keep running until the returned
// ServerCloser is closed.
func Serve(cfg *config.Config, log logging.Logger, ecloudSrv ecloudpb.EcloudServer) (*ServerCloser, error) {
	closer := &ServerCloser{}
	kap := keepalive.ServerParameters{
		Time:    cfg.KeepaliveTime,
		Timeout: cfg.KeepaliveTimeout,
	}
	kep := keepalive.EnforcementPolicy{MinTime: cfg.KeepaliveTime / 2, PermitWithoutStream: true}

	for i := 0; i < int(cfg.NumPorts); i++ {
		port := cfg.Port + uint16(2*i)
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			closer.Close()
			return nil, fmt.Errorf("grpcadapter: listen on port %d: %w", port, err)
		}

		srv := grpc.NewServer(
			ecloudpb.ServerCodec(),
			grpc.KeepaliveParams(kap),
			grpc.KeepaliveEnforcementPolicy(kep),
		)
		ecloudpb.RegisterEcloudServer(srv, ecloudSrv)
		closer.Add(srv)

		log.Info("listening", "port", port)
		go func(srv *grpc.Server, lis net.Listener, port uint16) {
			if err := srv.Serve(lis); err != nil {
				log.Error("server exited", "port", port, "error", err)
			}
		}(srv, lis, port)
	}
	return closer, nil
}
