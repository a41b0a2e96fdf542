package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainnode "nodal/internal/domain/node"
	"nodal/internal/domain/node/valueobjects"
)

func TestNode_CredentialKey(t *testing.T) {
	assert.Equal(t, "uuid", (&domainnode.Node{Protocol: domainnode.ProtocolVMess}).CredentialKey())
	assert.Equal(t, "uuid", (&domainnode.Node{Protocol: domainnode.ProtocolVLESS}).CredentialKey())
	assert.Equal(t, "password", (&domainnode.Node{Protocol: domainnode.ProtocolShadowsocks}).CredentialKey())
	assert.Equal(t, "password", (&domainnode.Node{Protocol: domainnode.ProtocolTrojan}).CredentialKey())
}

func TestNode_EffectiveProtocolConfig_FillsSecretIntoCredentialSlot(t *testing.T) {
	n := &domainnode.Node{
		Protocol: domainnode.ProtocolShadowsocks,
		Secret:   "supersecretpw",
		Config:   map[string]any{"cipher": valueobjects.CipherChacha20IETF},
	}

	cfg, err := n.EffectiveProtocolConfig()
	require.NoError(t, err)

	ss, ok := cfg.(valueobjects.ShadowsocksConfig)
	require.True(t, ok)
	assert.Equal(t, "supersecretpw", ss.Password())
	assert.Equal(t, valueobjects.CipherChacha20IETF, ss.Cipher())
}

func TestNode_EffectiveProtocolConfig_PrefersExplicitConfigValue(t *testing.T) {
	n := &domainnode.Node{
		Protocol: domainnode.ProtocolShadowsocks,
		Secret:   "nodesecretvalue",
		Config:   map[string]any{"password": "explicit-password", "cipher": valueobjects.CipherAES256GCM},
	}

	cfg, err := n.EffectiveProtocolConfig()
	require.NoError(t, err)

	ss, ok := cfg.(valueobjects.ShadowsocksConfig)
	require.True(t, ok)
	assert.Equal(t, "explicit-password", ss.Password())
}

func TestNode_EffectiveProtocolConfig_VMess_FillsSecretIntoCredentialSlot(t *testing.T) {
	n := &domainnode.Node{
		Protocol: domainnode.ProtocolVMess,
		Secret:   "550e8400-e29b-41d4-a716-446655440000",
		Config:   map[string]any{"security": valueobjects.SecurityAuto},
	}

	cfg, err := n.EffectiveProtocolConfig()
	require.NoError(t, err)

	vmess, ok := cfg.(valueobjects.VMessConfig)
	require.True(t, ok)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", vmess.UUID())
}

func TestNode_EffectiveProtocolConfig_VMess_PrefersExplicitConfigValue(t *testing.T) {
	n := &domainnode.Node{
		Protocol: domainnode.ProtocolVMess,
		Secret:   "node-secret-uuid",
		Config:   map[string]any{"uuid": "explicit-uuid", "security": valueobjects.SecurityAuto},
	}

	cfg, err := n.EffectiveProtocolConfig()
	require.NoError(t, err)

	vmess, ok := cfg.(valueobjects.VMessConfig)
	require.True(t, ok)
	assert.Equal(t, "explicit-uuid", vmess.UUID())
}

func TestNode_EffectiveProtocolConfig_VLESS_FillsSecretIntoCredentialSlot(t *testing.T) {
	n := &domainnode.Node{
		Protocol: domainnode.ProtocolVLESS,
		Secret:   "550e8400-e29b-41d4-a716-446655440000",
		Config:   map[string]any{"security": valueobjects.VLESSSecurityNone},
	}

	cfg, err := n.EffectiveProtocolConfig()
	require.NoError(t, err)

	vless, ok := cfg.(valueobjects.VLESSConfig)
	require.True(t, ok)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", vless.UUID())
}

func TestNode_EffectiveProtocolConfig_VLESS_PrefersExplicitConfigValue(t *testing.T) {
	n := &domainnode.Node{
		Protocol: domainnode.ProtocolVLESS,
		Secret:   "node-secret-uuid",
		Config:   map[string]any{"uuid": "explicit-uuid", "security": valueobjects.VLESSSecurityNone},
	}

	cfg, err := n.EffectiveProtocolConfig()
	require.NoError(t, err)

	vless, ok := cfg.(valueobjects.VLESSConfig)
	require.True(t, ok)
	assert.Equal(t, "explicit-uuid", vless.UUID())
}

func TestNode_DecodeProtocolConfig_VLESS(t *testing.T) {
	n := &domainnode.Node{
		Protocol: domainnode.ProtocolVLESS,
		Config: map[string]any{
			"uuid":     "550e8400-e29b-41d4-a716-446655440000",
			"flow":     "xtls-rprx-vision",
			"security": valueobjects.VLESSSecurityNone,
		},
	}

	cfg, err := n.DecodeProtocolConfig()
	require.NoError(t, err)

	vless, ok := cfg.(valueobjects.VLESSConfig)
	require.True(t, ok)
	assert.Equal(t, "xtls-rprx-vision", vless.Flow())
}

func TestNode_DecodeProtocolConfig_UnsupportedProtocol(t *testing.T) {
	n := &domainnode.Node{Protocol: domainnode.Protocol("wireguard")}
	_, err := n.DecodeProtocolConfig()
	assert.ErrorContains(t, err, "unsupported protocol")
}
