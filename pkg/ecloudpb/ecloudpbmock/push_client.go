// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ecloudpbmock contains a hand-written stand-in for the output of
// `mockgen -destination=push_client.go -package=ecloudpbmock
// github.com/luxfi/ecloud/pkg/ecloudpb PushClient`, in the same shape the
// teacher re-exports from go.uber.org/mock-generated packages
// (validator/validatorsmock/state.go).
package ecloudpbmock

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/luxfi/ecloud/pkg/ecloudpb"
)

// MockPushClient is a mock of the ecloudpb.PushClient interface.
type MockPushClient struct {
	ctrl     *gomock.Controller
	recorder *MockPushClientMockRecorder
}

// MockPushClientMockRecorder is the recorder for MockPushClient.
type MockPushClientMockRecorder struct {
	mock *MockPushClient
}

// NewMockPushClient creates a new mock instance.
func NewMockPushClient(ctrl *gomock.Controller) *MockPushClient {
	mock := &MockPushClient{ctrl: ctrl}
	mock.recorder = &MockPushClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPushClient) EXPECT() *MockPushClientMockRecorder {
	return m.recorder
}

// PushTick mocks base method.
func (m *MockPushClient) PushTick(ctx context.Context, in *ecloudpb.Tick, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	m.ctrl.T.Helper()
	varargs := []interface{}{ctx, in}
	for _, a := range opts {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "PushTick", varargs...)
	ret0, _ := ret[0].(*emptypb.Empty)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PushTick indicates an expected call of PushTick.
func (mr *MockPushClientMockRecorder) PushTick(ctx, in interface{}, opts ...interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]interface{}{ctx, in}, opts...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PushTick", reflect.TypeOf((*MockPushClient)(nil).PushTick), varargs...)
}
