package node_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appnode "nodal/internal/application/node"
	"nodal/internal/domain/node"
)

func TestHeartbeatUseCase_NodeNotFound(t *testing.T) {
	nodes := new(mockNodeRepository)
	cache := new(mockNodesCacheInvalidator)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(nil, nil)

	uc := appnode.NewHeartbeatUseCase(nodes, cache)
	err := uc.Execute(context.Background(), appnode.HeartbeatRequest{NodeID: 1, Secret: "s", Status: "online"})

	assert.ErrorContains(t, err, "node not found")
	nodes.AssertExpectations(t)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestHeartbeatUseCase_InvalidSecret(t *testing.T) {
	nodes := new(mockNodeRepository)
	cache := new(mockNodesCacheInvalidator)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(&node.Node{ID: 1, Secret: "correct", Status: node.StatusOffline}, nil)

	uc := appnode.NewHeartbeatUseCase(nodes, cache)
	err := uc.Execute(context.Background(), appnode.HeartbeatRequest{NodeID: 1, Secret: "wrong", Status: "online"})

	assert.ErrorContains(t, err, "invalid node secret")
	nodes.AssertExpectations(t)
}

func TestHeartbeatUseCase_StatusTransitionInvalidatesCache(t *testing.T) {
	nodes := new(mockNodeRepository)
	cache := new(mockNodesCacheInvalidator)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(&node.Node{ID: 1, Secret: "s", Status: node.StatusOffline}, nil)
	nodes.On("UpdateHeartbeat", mock.Anything, uint(1), node.StatusOnline, mock.Anything, mock.Anything).Return(nil)
	cache.On("Invalidate", mock.Anything).Return(nil)

	uc := appnode.NewHeartbeatUseCase(nodes, cache)
	err := uc.Execute(context.Background(), appnode.HeartbeatRequest{NodeID: 1, Secret: "s", Status: "online"})

	assert.NoError(t, err)
	nodes.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestHeartbeatUseCase_CacheInvalidationFailureIsSwallowed(t *testing.T) {
	nodes := new(mockNodeRepository)
	cache := new(mockNodesCacheInvalidator)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(&node.Node{ID: 1, Secret: "s", Status: node.StatusOffline}, nil)
	nodes.On("UpdateHeartbeat", mock.Anything, uint(1), node.StatusOnline, mock.Anything, mock.Anything).Return(nil)
	cache.On("Invalidate", mock.Anything).Return(assert.AnError)

	uc := appnode.NewHeartbeatUseCase(nodes, cache)
	err := uc.Execute(context.Background(), appnode.HeartbeatRequest{NodeID: 1, Secret: "s", Status: "online"})

	assert.NoError(t, err)
	nodes.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestHeartbeatUseCase_NoTransitionSkipsCache(t *testing.T) {
	nodes := new(mockNodeRepository)
	cache := new(mockNodesCacheInvalidator)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(&node.Node{ID: 1, Secret: "s", Status: node.StatusOnline}, nil)
	nodes.On("UpdateHeartbeat", mock.Anything, uint(1), node.StatusOnline, mock.Anything, mock.Anything).Return(nil)

	uc := appnode.NewHeartbeatUseCase(nodes, cache)
	err := uc.Execute(context.Background(), appnode.HeartbeatRequest{NodeID: 1, Secret: "s", Status: "online"})

	assert.NoError(t, err)
	nodes.AssertExpectations(t)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}
