package valueobjects

import (
	"fmt"
	"net/url"
	"strings"
)

// TrojanConfig is the immutable value object for a trojan listener.
type TrojanConfig struct {
	password      string
	sni           string
	allowInsecure bool
	fingerprint   string
	alpn          []string
}

func NewTrojanConfig(password, sni string, allowInsecure bool, fingerprint string, alpn []string) (TrojanConfig, error) {
	if len(password) < 8 {
		return TrojanConfig{}, fmt.Errorf("password must be at least 8 characters long")
	}
	if sni == "" {
		return TrojanConfig{}, fmt.Errorf("sni is required for trojan")
	}
	return TrojanConfig{
		password:      password,
		sni:           sni,
		allowInsecure: allowInsecure,
		fingerprint:   fingerprint,
		alpn:          alpn,
	}, nil
}

func (tc TrojanConfig) Password() string    { return tc.password }
func (tc TrojanConfig) SNI() string         { return tc.sni }
func (tc TrojanConfig) AllowInsecure() bool { return tc.allowInsecure }
func (tc TrojanConfig) Fingerprint() string { return tc.fingerprint }
func (tc TrojanConfig) ALPN() []string      { return tc.alpn }

// ToURI generates a trojan URI: trojan://password@host:port?sni=xxx#remarks
func (tc TrojanConfig) ToURI(serverAddr string, serverPort uint16, remarks string) string {
	uri := fmt.Sprintf("trojan://%s@%s:%d", url.QueryEscape(tc.password), serverAddr, serverPort)

	var params []string
	params = append(params, "sni="+url.QueryEscape(tc.sni))
	if tc.allowInsecure {
		params = append(params, "allowInsecure=1")
	}
	if tc.fingerprint != "" {
		params = append(params, "fp="+url.QueryEscape(tc.fingerprint))
	}
	if len(tc.alpn) > 0 {
		params = append(params, "alpn="+url.QueryEscape(strings.Join(tc.alpn, ",")))
	}
	uri += "?" + strings.Join(params, "&")

	if remarks != "" {
		uri += "#" + url.QueryEscape(remarks)
	}
	return uri
}

func (tc TrojanConfig) String() string {
	parts := []string{fmt.Sprintf("sni=%s", tc.sni)}
	if tc.allowInsecure {
		parts = append(parts, "allowInsecure=true")
	}
	if tc.fingerprint != "" {
		parts = append(parts, fmt.Sprintf("fingerprint=%s", tc.fingerprint))
	}
	return strings.Join(parts, ", ")
}

func (tc TrojanConfig) Equals(other TrojanConfig) bool {
	if tc.password != other.password || tc.sni != other.sni ||
		tc.allowInsecure != other.allowInsecure || tc.fingerprint != other.fingerprint {
		return false
	}
	if len(tc.alpn) != len(other.alpn) {
		return false
	}
	for i := range tc.alpn {
		if tc.alpn[i] != other.alpn[i] {
			return false
		}
	}
	return true
}
