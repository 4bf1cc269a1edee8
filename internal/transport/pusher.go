// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package transport declares the abstract channels the coordinator core
// depends on (SPEC_FULL.md §4.1): an outbound push channel to a single peer,
// and a dialer that builds one for a given address. The core never imports
// a concrete transport; internal/transport/grpcadapter supplies the one
// this repository ships.
package transport

import (
	"context"

	"github.com/luxfi/ecloud/pkg/ecloudpb"
)

// Pusher is a fire-and-await, one-way-semantics notification channel to a
// single peer. Implementations MUST be safe for concurrent use: the
// coordinator issues pushes to many peers in parallel.
type Pusher interface {
	// PushTick delivers one Tick notification and reports whether the peer
	// accepted it. A non-nil error is always logged and swallowed by the
	// caller — see SPEC_FULL.md §7 (transport push failure is non-fatal).
	PushTick(ctx context.Context, tick *ecloudpb.Tick) error

	// Close releases any connection resources held for this peer.
	Close() error
}

// Dialer builds a Pusher bound to addr. Implementations may cache
// connections; each call may return a fresh Pusher or a shared one, at the
// implementation's discretion.
type Dialer func(addr string) (Pusher, error)
