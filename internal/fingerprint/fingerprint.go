package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// FromHeaders derives a device fingerprint from the User-Agent and
// Accept-Language header values. Missing headers are treated as empty
// strings. The result is a 64-char hex SHA-256 digest, stable for
// identical inputs.
//
// This is a coarse, spoofable similarity signal for quota bucketing,
// not a security identity: any client can forge both headers.
func FromHeaders(userAgent, acceptLanguage string) string {
	sum := sha256.Sum256([]byte(userAgent + "|" + acceptLanguage))
	return hex.EncodeToString(sum[:])
}

// ClientIP resolves the client address, preferring the first entry of
// the X-Forwarded-For header when present (trust-the-proxy: the value
// is not authenticated), then the transport peer address, then loopback.
func ClientIP(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		if first, _, found := strings.Cut(forwardedFor, ","); found || first != "" {
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	if remoteAddr != "" {
		return remoteAddr
	}
	return "127.0.0.1"
}
