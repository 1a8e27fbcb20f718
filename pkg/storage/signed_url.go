package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignedURLSigner creates and validates signed download tokens.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl}
}

// Generate returns a signed token referencing the job and file path.
func (s *SignedURLSigner) Generate(jobID, relPath string) (string, time.Time, error) {
	if jobID == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("job id and path are required")
	}
	expiresAt := time.Now().Add(s.ttl).UTC()
	payload := fmt.Sprintf("%s|%s|%d", jobID, relPath, expiresAt.Unix())
	token := base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + s.sign(payload)
	return token, expiresAt, nil
}

// Parse validates the token and returns its components. Expired tokens fail
// unless allowExpired is set (used by cleanup).
func (s *SignedURLSigner) Parse(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", "", time.Time{}, fmt.Errorf("malformed token")
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("decode token: %w", err)
	}
	payload := string(raw)
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[1])) {
		return "", "", time.Time{}, fmt.Errorf("signature mismatch")
	}
	fields := strings.SplitN(payload, "|", 3)
	if len(fields) != 3 {
		return "", "", time.Time{}, fmt.Errorf("malformed payload")
	}
	unix, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("malformed expiry: %w", err)
	}
	expiresAt = time.Unix(unix, 0).UTC()
	if !allowExpired && time.Now().After(expiresAt) {
		return "", "", time.Time{}, fmt.Errorf("token expired")
	}
	return fields[0], fields[1], expiresAt, nil
}

func (s *SignedURLSigner) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
