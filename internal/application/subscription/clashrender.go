package subscription

import (
	"fmt"
	"sort"

	"nodal/internal/domain/node"
	"nodal/internal/domain/node/valueobjects"
)

// clashDocument mirrors the three top-level keys spec.md §6 fixes for the
// Clash-compatible subscription body.
type clashDocument struct {
	Proxies     []map[string]any `yaml:"proxies"`
	ProxyGroups []map[string]any `yaml:"proxy-groups"`
	Rules       []string         `yaml:"rules"`
}

// emptyConfigSentinel is the literal body spec.md §4.1 step 4/5 fixes for
// an expired or quota-exhausted subscription.
const emptyConfigSentinel = "proxies: []\nproxy-groups: []\nrules: []\n"

// RenderClashDocument exposes renderClash to callers outside this package
// (the admin clash preview endpoints), which need the proxies/groups/rules
// split rather than a single rendered YAML body.
func RenderClashDocument(nodes []*node.Node) (proxies, proxyGroups []map[string]any, rules []string, err error) {
	doc, err := renderClash(nodes)
	if err != nil {
		return nil, nil, nil, err
	}
	return doc.Proxies, doc.ProxyGroups, doc.Rules, nil
}

// renderClash builds the Clash document for the given clash-eligible nodes
// (spec.md §4.1 steps 6-7), ordered by (sort_order asc, name asc).
func renderClash(nodes []*node.Node) (clashDocument, error) {
	sorted := make([]*node.Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return sorted[i].Name < sorted[j].Name
	})

	proxies := make([]map[string]any, 0, len(sorted))
	names := make([]string, 0, len(sorted))
	for _, n := range sorted {
		proxy, err := buildProxy(n)
		if err != nil {
			return clashDocument{}, fmt.Errorf("render node %d: %w", n.ID, err)
		}
		proxies = append(proxies, proxy)
		names = append(names, n.Name)
	}

	groups := []map[string]any{
		{"name": "Proxy", "type": "select", "proxies": names},
		{"name": "Auto", "type": "url-test", "proxies": names, "url": "http://www.gstatic.com/generate_204", "interval": 300},
	}

	return clashDocument{
		Proxies:     proxies,
		ProxyGroups: groups,
		Rules:       []string{"MATCH,Proxy"},
	}, nil
}

func buildProxy(n *node.Node) (map[string]any, error) {
	cfg, err := n.EffectiveProtocolConfig()
	if err != nil {
		return nil, err
	}

	base := map[string]any{
		"name":   n.Name,
		"server": n.Host,
		"port":   n.Port,
		"udp":    true,
	}

	switch vo := cfg.(type) {
	case valueobjects.ShadowsocksConfig:
		base["type"] = "ss"
		base["cipher"] = vo.Cipher()
		base["password"] = vo.Password()
		if vo.Plugin() != "" {
			base["plugin"] = vo.Plugin()
			base["plugin-opts"] = vo.PluginOpts()
		}
	case valueobjects.VMessConfig:
		base["type"] = "vmess"
		base["uuid"] = vo.UUID()
		base["alterId"] = vo.AlterID()
		base["cipher"] = vo.Security()
		base["tls"] = vo.TLS()
		if vo.SNI() != "" {
			base["servername"] = vo.SNI()
		}
		base["skip-cert-verify"] = vo.AllowInsecure()
		applyTransport(base, vo.TransportType(), vo.Host(), vo.Path(), vo.ServiceName())
	case valueobjects.TrojanConfig:
		base["type"] = "trojan"
		base["password"] = vo.Password()
		base["sni"] = vo.SNI()
		base["skip-cert-verify"] = vo.AllowInsecure()
		if len(vo.ALPN()) > 0 {
			base["alpn"] = vo.ALPN()
		}
	case valueobjects.Hysteria2Config:
		base["type"] = "hysteria2"
		base["password"] = vo.Password()
		if vo.SNI() != "" {
			base["sni"] = vo.SNI()
		}
		base["skip-cert-verify"] = vo.AllowInsecure()
		if vo.Obfs() != "" {
			base["obfs"] = vo.Obfs()
			base["obfs-password"] = vo.ObfsPassword()
		}
		if vo.UpMbps() != nil {
			base["up"] = *vo.UpMbps()
		}
		if vo.DownMbps() != nil {
			base["down"] = *vo.DownMbps()
		}
	case valueobjects.VLESSConfig:
		base["type"] = "vless"
		base["uuid"] = vo.UUID()
		base["tls"] = vo.Security() == valueobjects.VLESSSecurityTLS || vo.Security() == valueobjects.VLESSSecurityReality
		if vo.Flow() != "" {
			base["flow"] = vo.Flow()
		}
		if vo.SNI() != "" {
			base["servername"] = vo.SNI()
		}
		base["skip-cert-verify"] = vo.AllowInsecure()
		if vo.Security() == valueobjects.VLESSSecurityReality {
			base["reality-opts"] = map[string]any{
				"public-key": vo.PublicKey(),
				"short-id":   vo.ShortID(),
			}
		}
		applyTransport(base, vo.TransportType(), vo.Host(), vo.Path(), vo.ServiceName())
	default:
		return nil, fmt.Errorf("unrenderable protocol config %T", cfg)
	}

	return base, nil
}

// applyTransport adds Clash's network/ws-opts/grpc-opts keys shared by the
// WebSocket- and gRPC-capable protocols (vmess, vless).
func applyTransport(base map[string]any, transport, host, path, serviceName string) {
	switch transport {
	case "ws":
		base["network"] = "ws"
		opts := map[string]any{}
		if path != "" {
			opts["path"] = path
		}
		if host != "" {
			opts["headers"] = map[string]any{"Host": host}
		}
		base["ws-opts"] = opts
	case "grpc":
		base["network"] = "grpc"
		base["grpc-opts"] = map[string]any{"grpc-service-name": serviceName}
	case "http":
		base["network"] = "http"
	}
}
