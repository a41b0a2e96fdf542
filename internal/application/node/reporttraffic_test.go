package node_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appnode "nodal/internal/application/node"
	"nodal/internal/domain/node"
	domaintraffic "nodal/internal/domain/traffic"
)

func TestReportTrafficUseCase_NodeNotFound(t *testing.T) {
	nodes := new(mockNodeRepository)
	publisher := new(mockTrafficPublisher)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(nil, nil)

	uc := appnode.NewReportTrafficUseCase(nodes, publisher)
	err := uc.Execute(context.Background(), 1, "secret", nil)

	assert.ErrorContains(t, err, "node not found")
	nodes.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestReportTrafficUseCase_InvalidSecret(t *testing.T) {
	nodes := new(mockNodeRepository)
	publisher := new(mockTrafficPublisher)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(&node.Node{ID: 1, Secret: "correct"}, nil)

	uc := appnode.NewReportTrafficUseCase(nodes, publisher)
	err := uc.Execute(context.Background(), 1, "wrong", nil)

	assert.ErrorContains(t, err, "invalid node secret")
	nodes.AssertExpectations(t)
}

func TestReportTrafficUseCase_SkipsZeroSamples(t *testing.T) {
	nodes := new(mockNodeRepository)
	publisher := new(mockTrafficPublisher)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(&node.Node{ID: 1, Secret: "s"}, nil)

	uc := appnode.NewReportTrafficUseCase(nodes, publisher)
	err := uc.Execute(context.Background(), 1, "s", []appnode.TrafficSample{
		{UserID: 10, Upload: 0, Download: 0},
	})

	assert.NoError(t, err)
	nodes.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestReportTrafficUseCase_PublishesNonZeroSamples(t *testing.T) {
	nodes := new(mockNodeRepository)
	publisher := new(mockTrafficPublisher)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(&node.Node{ID: 1, Secret: "s"}, nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(tuple domaintraffic.Tuple) bool {
		return tuple.NodeID == 1 && tuple.UserID == 10 && tuple.Upload == 100 && tuple.Download == 200
	})).Return("stream-id-1", nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(tuple domaintraffic.Tuple) bool {
		return tuple.NodeID == 1 && tuple.UserID == 11
	})).Return("stream-id-2", nil)

	uc := appnode.NewReportTrafficUseCase(nodes, publisher)
	err := uc.Execute(context.Background(), 1, "s", []appnode.TrafficSample{
		{UserID: 10, Upload: 100, Download: 200},
		{UserID: 11, Upload: 0, Download: 50},
	})

	assert.NoError(t, err)
	nodes.AssertExpectations(t)
	publisher.AssertExpectations(t)
	publisher.AssertNumberOfCalls(t, "Publish", 2)
}

func TestReportTrafficUseCase_PublishError(t *testing.T) {
	nodes := new(mockNodeRepository)
	publisher := new(mockTrafficPublisher)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(&node.Node{ID: 1, Secret: "s"}, nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return("", assert.AnError)

	uc := appnode.NewReportTrafficUseCase(nodes, publisher)
	err := uc.Execute(context.Background(), 1, "s", []appnode.TrafficSample{
		{UserID: 10, Upload: 5, Download: 5},
	})

	assert.ErrorContains(t, err, "publish traffic tuple")
}
