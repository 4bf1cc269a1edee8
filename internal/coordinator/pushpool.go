// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package coordinator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/luxfi/ecloud/internal/logging"
	"github.com/luxfi/ecloud/internal/metrics"
	"github.com/luxfi/ecloud/internal/transport"
	"github.com/luxfi/ecloud/pkg/ecloudpb"
)

// pushPool fans outbound PushTick calls out to a bounded number of
// in-flight goroutines, replacing the reference implementation's detached
// goroutine-per-push (SPEC_FULL.md §5, REDESIGN FLAGS). A full pool blocks
// the submitting call briefly rather than growing unbounded.
type pushPool struct {
	group *errgroup.Group
	log   logging.Logger
	mx    *metrics.Metrics
}

func newPushPool(ctx context.Context, size int, log logging.Logger, mx *metrics.Metrics) *pushPool {
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(size)
	return &pushPool{group: group, log: log, mx: mx}
}

// submit enqueues one push. Failures are logged and counted, never
// returned to the errgroup: a failed push must not cancel sibling pushes
// or the group's context, per SPEC_FULL.md §7 (transport push failure is
// non-fatal).
func (p *pushPool) submit(pusher transport.Pusher, name string, tick *ecloudpb.Tick) {
	p.group.Go(func() error {
		if pusher == nil {
			return nil
		}
		if err := pusher.PushTick(context.Background(), tick); err != nil {
			p.mx.PushFailures.Inc()
			p.log.Warn("push failed", "peer", name, "error", err)
		}
		return nil
	})
}

// wait blocks until every submitted push in this pool has finished. The
// coordinator does not call this on the hot path (pushes must not block
// the RPC handler); it exists for orderly shutdown and tests.
func (p *pushPool) wait() error {
	return p.group.Wait()
}
