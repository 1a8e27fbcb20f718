package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLRoundTrip(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)

	token, expiresAt, err := signer.Generate("job-1", "ledgers/job-1.csv")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	jobID, relPath, parsedExpiry, err := signer.Parse(token, false)
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
	assert.Equal(t, "ledgers/job-1.csv", relPath)
	assert.Equal(t, expiresAt.Unix(), parsedExpiry.Unix())
}

func TestSignedURLRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("job-1", "ledgers/job-1.csv")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token+"x", false)
	assert.Error(t, err)

	other := NewSignedURLSigner("other-secret", time.Hour)
	_, _, _, err = other.Parse(token, false)
	assert.Error(t, err)
}

func TestSignedURLExpiry(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Nanosecond)
	token, _, err := signer.Generate("job-1", "ledgers/job-1.csv")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, _, _, err = signer.Parse(token, false)
	assert.Error(t, err)

	_, _, _, err = signer.Parse(token, true)
	assert.NoError(t, err)
}
