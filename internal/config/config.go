// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config is the Server Config ambient component (SPEC_FULL.md
// §4.7): static process configuration built with a fluent builder, grounded
// on the teacher's config.Builder.
package config

import "time"

// MaxCars is the hard compile-time cap on scenario size (SPEC_FULL.md §6).
const MaxCars = 512

// Config holds the server's static settings. The admin HTTP flags of
// cmd/ecloud-server are not part of it.
type Config struct {
	Port     uint16
	NumPorts uint16

	PushBasePort      uint16
	SimulatorPushPort uint16

	PushWorkerPoolSize int
	SpectatorIndex     int32

	KeepaliveTime    time.Duration
	KeepaliveTimeout time.Duration

	MinLogLevel string
}

// Builder provides a fluent interface for constructing a Config, in the
// same style as the teacher's config.Builder.
type Builder struct {
	cfg *Config
	err error
}

// NewBuilder returns a Builder seeded with SPEC_FULL.md §6's defaults.
func NewBuilder() *Builder {
	return &Builder{
		cfg: &Config{
			Port:               50051,
			NumPorts:           1,
			PushBasePort:       50101,
			SimulatorPushPort:  50061,
			PushWorkerPoolSize: 32,
			SpectatorIndex:     0,
			KeepaliveTime:      10 * time.Minute,
			KeepaliveTimeout:   20 * time.Second,
			MinLogLevel:        "info",
		},
	}
}

func (b *Builder) WithPort(port uint16) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.Port = port
	return b
}

func (b *Builder) WithNumPorts(numPorts uint16) *Builder {
	if b.err != nil {
		return b
	}
	if numPorts == 0 {
		b.err = ErrInvalidNumPorts
		return b
	}
	b.cfg.NumPorts = numPorts
	return b
}

func (b *Builder) WithPushBasePort(port uint16) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.PushBasePort = port
	return b
}

func (b *Builder) WithSimulatorPushPort(port uint16) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.SimulatorPushPort = port
	return b
}

func (b *Builder) WithPushWorkerPoolSize(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n <= 0 {
		b.err = ErrInvalidWorkerPoolSize
		return b
	}
	b.cfg.PushWorkerPoolSize = n
	return b
}

func (b *Builder) WithSpectatorIndex(index int32) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.SpectatorIndex = index
	return b
}

func (b *Builder) WithMinLogLevel(level string) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.MinLogLevel = level
	return b
}

// Build validates and returns the Config, or the first error recorded by
// the chain of With* calls.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.cfg.NumPorts == 0 {
		return nil, ErrInvalidNumPorts
	}
	if b.cfg.PushWorkerPoolSize <= 0 {
		return nil, ErrInvalidWorkerPoolSize
	}
	cfg := *b.cfg
	return &cfg, nil
}
