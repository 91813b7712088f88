package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

const signatureMaxAge = 5 * time.Minute

// Sign produces the hex HMAC-SHA256 an admin client must attach to a
// request, binding method, path and a unix timestamp so a captured
// signature cannot be replayed elsewhere or later.
func Sign(secret, method, path string, ts int64) string {
	msg := method + "\n" + path + "\n" + strconv.FormatInt(ts, 10)
	return hex.EncodeToString(hmacSHA256([]byte(secret), []byte(msg)))
}

// Verify checks an admin request signature against the shared secret.
func Verify(secret, method, path, timestamp, signature string) error {
	if signature == "" {
		return fmt.Errorf("missing signature")
	}
	if timestamp == "" {
		return fmt.Errorf("missing timestamp")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}
	skew := time.Since(time.Unix(ts, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > signatureMaxAge {
		return fmt.Errorf("signature expired")
	}

	want := Sign(secret, method, path, ts)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}

func hmacSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}
