package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainnode "nodal/internal/domain/node"
)

func TestValidatePort(t *testing.T) {
	assert.Error(t, domainnode.ValidatePort(0))
	assert.NoError(t, domainnode.ValidatePort(1))
	assert.NoError(t, domainnode.ValidatePort(65535))
	assert.Error(t, domainnode.ValidatePort(65536))
}

func TestProtocol_Valid(t *testing.T) {
	valid := []domainnode.Protocol{
		domainnode.ProtocolShadowsocks,
		domainnode.ProtocolVMess,
		domainnode.ProtocolTrojan,
		domainnode.ProtocolHysteria2,
		domainnode.ProtocolVLESS,
	}
	for _, p := range valid {
		assert.True(t, p.Valid(), "expected %s to be valid", p)
	}
	assert.False(t, domainnode.Protocol("wireguard").Valid())
}

func TestNode_IsOnline(t *testing.T) {
	n := &domainnode.Node{Status: domainnode.StatusOnline}
	assert.True(t, n.IsOnline())

	n.Status = domainnode.StatusOffline
	assert.False(t, n.IsOnline())
}
