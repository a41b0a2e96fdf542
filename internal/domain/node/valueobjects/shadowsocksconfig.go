package valueobjects

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	CipherAES128GCM     = "aes-128-gcm"
	CipherAES256GCM     = "aes-256-gcm"
	CipherChacha20IETF  = "chacha20-ietf-poly1305"
	Cipher2022Blake3AES = "2022-blake3-aes-256-gcm"
)

var validShadowsocksCiphers = map[string]bool{
	CipherAES128GCM:     true,
	CipherAES256GCM:     true,
	CipherChacha20IETF:  true,
	Cipher2022Blake3AES: true,
}

// ShadowsocksConfig is the immutable value object for a shadowsocks listener.
type ShadowsocksConfig struct {
	password   string
	cipher     string
	plugin     string
	pluginOpts string
}

func NewShadowsocksConfig(password, cipher, plugin, pluginOpts string) (ShadowsocksConfig, error) {
	if len(password) < 8 {
		return ShadowsocksConfig{}, fmt.Errorf("password must be at least 8 characters long")
	}
	if !validShadowsocksCiphers[cipher] {
		return ShadowsocksConfig{}, fmt.Errorf("unsupported cipher: %s", cipher)
	}
	return ShadowsocksConfig{
		password:   password,
		cipher:     cipher,
		plugin:     plugin,
		pluginOpts: pluginOpts,
	}, nil
}

func (sc ShadowsocksConfig) Password() string   { return sc.password }
func (sc ShadowsocksConfig) Cipher() string     { return sc.cipher }
func (sc ShadowsocksConfig) Plugin() string     { return sc.plugin }
func (sc ShadowsocksConfig) PluginOpts() string { return sc.pluginOpts }

// ToURI generates an SS URI string: ss://base64(cipher:password)@host:port#remarks
func (sc ShadowsocksConfig) ToURI(serverAddr string, serverPort uint16, remarks string) string {
	userinfo := base64RawURLEncode(fmt.Sprintf("%s:%s", sc.cipher, sc.password))
	uri := fmt.Sprintf("ss://%s@%s:%d", userinfo, serverAddr, serverPort)
	if sc.plugin != "" {
		q := "plugin=" + url.QueryEscape(sc.plugin)
		if sc.pluginOpts != "" {
			q += url.QueryEscape(";" + sc.pluginOpts)
		}
		uri += "?" + q
	}
	if remarks != "" {
		uri += "#" + url.QueryEscape(remarks)
	}
	return uri
}

func (sc ShadowsocksConfig) String() string {
	parts := []string{fmt.Sprintf("cipher=%s", sc.cipher)}
	if sc.plugin != "" {
		parts = append(parts, fmt.Sprintf("plugin=%s", sc.plugin))
	}
	return strings.Join(parts, ", ")
}

func (sc ShadowsocksConfig) Equals(other ShadowsocksConfig) bool {
	return sc.password == other.password && sc.cipher == other.cipher &&
		sc.plugin == other.plugin && sc.pluginOpts == other.pluginOpts
}
