package valueobjects

import "encoding/base64"

func base64RawURLEncode(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}
