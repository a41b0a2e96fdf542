package node_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appnode "nodal/internal/application/node"
	"nodal/internal/domain/node"
	domainuser "nodal/internal/domain/user"
)

func TestGetConfigUseCase_NodeNotFound(t *testing.T) {
	nodes := new(mockNodeRepository)
	users := new(mockUserRepository)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(nil, nil)

	uc := appnode.NewGetConfigUseCase(nodes, users)
	_, err := uc.Execute(context.Background(), 1, "secret")

	assert.ErrorContains(t, err, "node not found")
	nodes.AssertExpectations(t)
}

func TestGetConfigUseCase_InvalidSecret(t *testing.T) {
	nodes := new(mockNodeRepository)
	users := new(mockUserRepository)
	nodes.On("GetByID", mock.Anything, uint(1)).Return(&node.Node{ID: 1, Secret: "correct"}, nil)

	uc := appnode.NewGetConfigUseCase(nodes, users)
	_, err := uc.Execute(context.Background(), 1, "wrong")

	assert.ErrorContains(t, err, "invalid node secret")
	nodes.AssertExpectations(t)
}

func TestGetConfigUseCase_Success(t *testing.T) {
	nodes := new(mockNodeRepository)
	users := new(mockUserRepository)
	n := &node.Node{
		ID:       1,
		Name:     "sg-1",
		Host:     "sg1.example.com",
		Port:     443,
		Protocol: node.ProtocolVLESS,
		Secret:   "shh",
		Config:   map[string]any{"flow": "xtls-rprx-vision"},
		MaxUsers: 100,
	}
	nodes.On("GetByID", mock.Anything, uint(1)).Return(n, nil)
	users.On("ListActiveEntitled", mock.Anything, mock.Anything).Return([]domainuser.ActiveEntitledUser{
		{ID: 10, Email: "a@example.com"},
		{ID: 11, Email: "b@example.com"},
	}, nil)

	uc := appnode.NewGetConfigUseCase(nodes, users)
	result, err := uc.Execute(context.Background(), 1, "shh")

	assert.NoError(t, err)
	assert.Equal(t, n.Name, result.Name)
	assert.Equal(t, string(node.ProtocolVLESS), result.Protocol)
	assert.Len(t, result.Users, 2)
	assert.Equal(t, uint(10), result.Users[0].ID)
	nodes.AssertExpectations(t)
	users.AssertExpectations(t)
}
