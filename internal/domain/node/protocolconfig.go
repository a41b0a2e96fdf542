package node

import (
	"fmt"

	"nodal/internal/domain/node/valueobjects"
)

// CredentialKey returns the config map key that holds the protocol's
// shared secret slot: "password" for the PSK-based protocols, "uuid" for
// the ID-based ones (spec.md §4.1 step 6).
func (n *Node) CredentialKey() string {
	switch n.Protocol {
	case ProtocolVMess, ProtocolVLESS:
		return "uuid"
	default:
		return "password"
	}
}

// EffectiveProtocolConfig decodes the typed value object matching
// n.Protocol, merging n.Secret into the credential slot CredentialKey
// identifies unless n.Config already supplies a value there (spec.md §4.1
// step 6: "unless config already supplies one").
func (n *Node) EffectiveProtocolConfig() (any, error) {
	key := n.CredentialKey()
	if str(n.Config, key) != "" {
		return n.DecodeProtocolConfig()
	}
	merged := make(map[string]any, len(n.Config)+1)
	for k, v := range n.Config {
		merged[k] = v
	}
	merged[key] = n.Secret
	effective := *n
	effective.Config = merged
	return effective.DecodeProtocolConfig()
}

// DecodeProtocolConfig builds the typed value object matching n.Protocol out
// of n.Config's opaque map, so renderers never touch the map directly.
func (n *Node) DecodeProtocolConfig() (any, error) {
	switch n.Protocol {
	case ProtocolShadowsocks:
		return valueobjects.NewShadowsocksConfig(
			str(n.Config, "password"),
			strOr(n.Config, "cipher", valueobjects.CipherAES256GCM),
			str(n.Config, "plugin"),
			str(n.Config, "plugin_opts"),
		)
	case ProtocolVMess:
		return valueobjects.NewVMessConfig(
			str(n.Config, "uuid"),
			intOr(n.Config, "alter_id", 0),
			strOr(n.Config, "security", valueobjects.SecurityAuto),
			strOr(n.Config, "transport", valueobjects.VMessTransportTCP),
			str(n.Config, "host"),
			str(n.Config, "path"),
			str(n.Config, "service_name"),
			boolOf(n.Config, "tls"),
			str(n.Config, "sni"),
			boolOf(n.Config, "allow_insecure"),
		)
	case ProtocolTrojan:
		return valueobjects.NewTrojanConfig(
			str(n.Config, "password"),
			str(n.Config, "sni"),
			boolOf(n.Config, "allow_insecure"),
			str(n.Config, "fingerprint"),
			strSlice(n.Config, "alpn"),
		)
	case ProtocolHysteria2:
		return valueobjects.NewHysteria2Config(
			str(n.Config, "password"),
			strOr(n.Config, "congestion_control", valueobjects.CongestionControlBBR),
			str(n.Config, "obfs"),
			str(n.Config, "obfs_password"),
			intPtr(n.Config, "up_mbps"),
			intPtr(n.Config, "down_mbps"),
			str(n.Config, "sni"),
			boolOf(n.Config, "allow_insecure"),
			str(n.Config, "fingerprint"),
		)
	case ProtocolVLESS:
		return valueobjects.NewVLESSConfig(
			str(n.Config, "uuid"),
			strOr(n.Config, "transport", valueobjects.VLESSTransportTCP),
			str(n.Config, "flow"),
			strOr(n.Config, "security", valueobjects.VLESSSecurityNone),
			str(n.Config, "sni"),
			str(n.Config, "fingerprint"),
			boolOf(n.Config, "allow_insecure"),
			str(n.Config, "host"),
			str(n.Config, "path"),
			str(n.Config, "service_name"),
			str(n.Config, "public_key"),
			str(n.Config, "short_id"),
			str(n.Config, "spider_x"),
		)
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", n.Protocol)
	}
}

func str(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func strOr(m map[string]any, key, def string) string {
	if v := str(m, key); v != "" {
		return v
	}
	return def
}

func boolOf(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func intOr(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func intPtr(m map[string]any, key string) *int {
	switch v := m[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		return &v
	}
	return nil
}

func strSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
