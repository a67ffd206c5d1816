package idempotency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "herald:lock:mainnet:840000", lockKey("mainnet", 840_000))
	assert.Equal(t, "herald:processed:mainnet:840000", processedKey("mainnet", 840_000))
}

func TestNewLocker_options(t *testing.T) {
	a, err := NewLocker(nil, "mainnet")
	require.NoError(t, err)
	assert.Equal(t, DefaultLockTTL, a.lockTTL)
	assert.Equal(t, DefaultProcessedTTL, a.processedTTL)

	b, err := NewLocker(nil, "mainnet", WithLockTTL(time.Second), WithProcessedTTL(time.Hour), WithLockTTL(0))
	require.NoError(t, err)
	assert.Equal(t, time.Second, b.lockTTL)
	assert.Equal(t, time.Hour, b.processedTTL)
	assert.NotEqual(t, a.owner, b.owner)
}
