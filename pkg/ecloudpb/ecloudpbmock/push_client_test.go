// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ecloudpbmock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/luxfi/ecloud/pkg/ecloudpb"
)

func TestMockPushClient_PushTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockPushClient(ctrl)

	tick := &ecloudpb.Tick{TickId: 1, Command: ecloudpb.Command_TICK}
	client.EXPECT().PushTick(gomock.Any(), tick).Return(&emptypb.Empty{}, nil)

	_, err := client.PushTick(context.Background(), tick)
	require.NoError(t, err)
}

func TestMockPushClient_PushTick_PropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockPushClient(ctrl)

	wantErr := errors.New("peer unreachable")
	client.EXPECT().PushTick(gomock.Any(), gomock.Any()).Return(nil, wantErr)

	_, err := client.PushTick(context.Background(), &ecloudpb.Tick{})
	require.ErrorIs(t, err, wantErr)
}
