// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package coordinator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/luxfi/ecloud/internal/config"
	"github.com/luxfi/ecloud/internal/logging"
	"github.com/luxfi/ecloud/internal/metrics"
	"github.com/luxfi/ecloud/internal/transport"
	"github.com/luxfi/ecloud/pkg/ecloudpb"
)

type recordingPusher struct {
	mu    sync.Mutex
	ticks []*ecloudpb.Tick
}

func (p *recordingPusher) PushTick(_ context.Context, t *ecloudpb.Tick) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ticks = append(p.ticks, t)
	return nil
}

func (p *recordingPusher) Close() error { return nil }

func (p *recordingPusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ticks)
}

func newTestCoordinator(t *testing.T) (*Coordinator, *metrics.Metrics) {
	t.Helper()
	cfg, err := config.NewBuilder().WithPushWorkerPoolSize(8).Build()
	require.NoError(t, err)

	mx, err := metrics.New("test", prometheus.NewRegistry())
	require.NoError(t, err)

	dial := func(addr string) (transport.Pusher, error) {
		return &recordingPusher{}, nil
	}

	c := New(cfg, logging.NoOp(), mx, dial)
	return c, mx
}

// waitFor polls until cond returns true or the deadline elapses; pushes run
// on the bounded worker pool so assertions about them must not race.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	require.True(t, cond(), "condition never became true")
}

func TestS1_TwoVehicleHappyPath(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t)

	simPusher := &recordingPusher{}
	c.SetSimulatorPusher(simPusher)

	_, err := c.StartScenario(ctx, &ecloudpb.SimulationInfo{ExpectedVehicleCount: 2})
	require.NoError(t, err)

	info0, err := c.RegisterVehicle(ctx, &ecloudpb.RegistrationInfo{ContainerName: "v0", VehicleState: ecloudpb.VehicleState_REGISTERING})
	require.NoError(t, err)
	require.EqualValues(t, 0, info0.VehicleIndex)

	info1, err := c.RegisterVehicle(ctx, &ecloudpb.RegistrationInfo{ContainerName: "v1", VehicleState: ecloudpb.VehicleState_REGISTERING})
	require.NoError(t, err)
	require.EqualValues(t, 1, info1.VehicleIndex)

	waitFor(t, func() bool { return simPusher.count() == 1 })

	_, err = c.DoTick(ctx, &ecloudpb.Tick{TickId: 1, Command: ecloudpb.Command_TICK})
	require.NoError(t, err)

	_, err = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: 0, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_OK})
	require.NoError(t, err)
	_, err = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: 1, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_OK})
	require.NoError(t, err)

	waitFor(t, func() bool { return simPusher.count() == 2 })

	resp, err := c.GetVehicleUpdates(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, resp.VehicleUpdate, 1)
}

func TestS2_CompletionViaTickDone(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t)
	simPusher := &recordingPusher{}
	c.SetSimulatorPusher(simPusher)

	_, err := c.StartScenario(ctx, &ecloudpb.SimulationInfo{ExpectedVehicleCount: 3})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := c.RegisterVehicle(ctx, &ecloudpb.RegistrationInfo{ContainerName: "v"})
		require.NoError(t, err)
	}
	waitFor(t, func() bool { return simPusher.count() == 1 })

	_, err = c.DoTick(ctx, &ecloudpb.Tick{TickId: 1, Command: ecloudpb.Command_TICK})
	require.NoError(t, err)

	_, _ = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: 0, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_OK})
	_, _ = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: 1, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_OK})
	_, _ = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: 2, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_DONE})

	waitFor(t, func() bool { return simPusher.count() == 2 })
	require.Equal(t, 2, simPusher.count(), "push must fire exactly once per completed round")
}

func TestS4_SpectatorReplyAlwaysIncluded(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t)
	c.SetSimulatorPusher(&recordingPusher{})

	_, err := c.StartScenario(ctx, &ecloudpb.SimulationInfo{ExpectedVehicleCount: 2, IsEdge: false})
	require.NoError(t, err)
	_, err = c.RegisterVehicle(ctx, &ecloudpb.RegistrationInfo{ContainerName: "v0"})
	require.NoError(t, err)
	_, err = c.RegisterVehicle(ctx, &ecloudpb.RegistrationInfo{ContainerName: "v1"})
	require.NoError(t, err)

	_, err = c.DoTick(ctx, &ecloudpb.Tick{TickId: 1, Command: ecloudpb.Command_TICK})
	require.NoError(t, err)

	_, _ = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: 0, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_OK})
	_, _ = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: 1, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_OK})

	resp, err := c.GetVehicleUpdates(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, resp.VehicleUpdate, 1)
	require.EqualValues(t, 0, resp.VehicleUpdate[0].VehicleIndex)
}

func TestS5_EndScenarioPropagatesOnNextTick(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t)
	c.SetSimulatorPusher(&recordingPusher{})

	_, err := c.StartScenario(ctx, &ecloudpb.SimulationInfo{ExpectedVehicleCount: 1})
	require.NoError(t, err)
	_, err = c.RegisterVehicle(ctx, &ecloudpb.RegistrationInfo{ContainerName: "v0"})
	require.NoError(t, err)

	_, err = c.EndScenario(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	_, err = c.DoTick(ctx, &ecloudpb.Tick{TickId: 1, Command: ecloudpb.Command_TICK})
	require.NoError(t, err)
	require.Equal(t, ecloudpb.Command_END, c.command)
}

func TestS6_NonConsecutiveTickRejected(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t)
	c.SetSimulatorPusher(&recordingPusher{})

	_, err := c.StartScenario(ctx, &ecloudpb.SimulationInfo{ExpectedVehicleCount: 1})
	require.NoError(t, err)

	_, err = c.DoTick(ctx, &ecloudpb.Tick{TickId: 1, Command: ecloudpb.Command_TICK})
	require.NoError(t, err)

	_, err = c.DoTick(ctx, &ecloudpb.Tick{TickId: 3, Command: ecloudpb.Command_TICK})
	require.Error(t, err)
	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
}

func TestS7_DuplicateReplyDoesNotInflateCounters(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t)
	simPusher := &recordingPusher{}
	c.SetSimulatorPusher(simPusher)

	_, err := c.StartScenario(ctx, &ecloudpb.SimulationInfo{ExpectedVehicleCount: 2})
	require.NoError(t, err)
	_, _ = c.RegisterVehicle(ctx, &ecloudpb.RegistrationInfo{ContainerName: "v0"})
	_, _ = c.RegisterVehicle(ctx, &ecloudpb.RegistrationInfo{ContainerName: "v1"})
	waitFor(t, func() bool { return simPusher.count() == 1 })

	_, err = c.DoTick(ctx, &ecloudpb.Tick{TickId: 1, Command: ecloudpb.Command_TICK})
	require.NoError(t, err)

	_, _ = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: 0, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_OK})
	_, _ = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: 0, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_OK})

	replied, _ := c.round.Counts()
	require.EqualValues(t, 1, replied, "duplicate reply from vehicle 0 must not be counted twice")

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, simPusher.count(), "round must not complete from a duplicate reply alone")

	_, err = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: 1, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_OK})
	require.NoError(t, err)
	waitFor(t, func() bool { return simPusher.count() == 2 })
}

func TestConcurrentLastRepliesCompleteRoundExactlyOnce(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t)
	simPusher := &recordingPusher{}
	c.SetSimulatorPusher(simPusher)

	const n = 16
	_, err := c.StartScenario(ctx, &ecloudpb.SimulationInfo{ExpectedVehicleCount: n})
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := c.RegisterVehicle(ctx, &ecloudpb.RegistrationInfo{ContainerName: "v"})
		require.NoError(t, err)
	}
	waitFor(t, func() bool { return simPusher.count() == 1 })

	_, err = c.DoTick(ctx, &ecloudpb.Tick{TickId: 1, Command: ecloudpb.Command_TICK})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(index int32) {
			defer wg.Done()
			_, _ = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: index, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_OK})
		}(int32(i))
	}
	wg.Wait()

	waitFor(t, func() bool { return simPusher.count() == 2 })
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, 2, simPusher.count(), "concurrent last replies must complete the round exactly once")
}

func TestS8_HealthAndMetrics(t *testing.T) {
	ctx := context.Background()
	c, mx := newTestCoordinator(t)
	c.SetSimulatorPusher(&recordingPusher{})

	report, err := c.Health(ctx)
	require.NoError(t, err)
	require.NotNil(t, report)

	_, err = c.StartScenario(ctx, &ecloudpb.SimulationInfo{ExpectedVehicleCount: 1})
	require.NoError(t, err)
	_, err = c.RegisterVehicle(ctx, &ecloudpb.RegistrationInfo{ContainerName: "v0"})
	require.NoError(t, err)

	_, err = c.DoTick(ctx, &ecloudpb.Tick{TickId: 1, Command: ecloudpb.Command_TICK})
	require.NoError(t, err)
	_, err = c.SendUpdate(ctx, &ecloudpb.VehicleUpdate{VehicleIndex: 0, TickId: 1, VehicleState: ecloudpb.VehicleState_TICK_DONE})
	require.NoError(t, err)

	require.EqualValues(t, PhaseTicking, c.currentPhase())
	require.Equal(t, float64(2), testutil.ToFloat64(mx.TicksCompleted),
		"one push for registration-complete, one for the completed tick round")
}
