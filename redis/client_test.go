package redis

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mediscreen.com/prescreen/types"
	"os"
	"testing"
	"time"
)

func TestCallRecordKey(t *testing.T) {
	assert.Equal(t, "call:CA123", CallRecordKey("CA123"))
}

func TestReadEnvironment(t *testing.T) {
	t.Setenv("PRESCREEN_REDIS_HOST", "localhost")
	t.Setenv("PRESCREEN_REDIS_PORT", "6379")
	cfg, err := readEnvironment()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.LockExpirationSeconds)
	assert.Equal(t, 720, cfg.RecordTTLHours)
	assert.False(t, cfg.HAMode)
}

func TestUniversalOptions(t *testing.T) {
	cfg := &Config{
		Host:                    "redis.local",
		Port:                    "6379",
		HASentinelPort:          "26379",
		HASentinelMasterName:    "calls",
		HASentinelSocketTimeout: 0.5,
		Password:                "secret",
	}
	options := cfg.universalOptions(2)
	assert.Equal(t, []string{"redis.local:6379"}, options.Addrs)
	assert.Equal(t, 2, options.DB)
	assert.Empty(t, options.MasterName)
	assert.Empty(t, options.Password)

	cfg.HAMode = true
	cfg.AuthRequired = true
	options = cfg.universalOptions(0)
	assert.Equal(t, []string{"redis.local:26379"}, options.Addrs)
	assert.Equal(t, "calls", options.MasterName)
	assert.Equal(t, 500*time.Millisecond, options.ReadTimeout)
	assert.Equal(t, "secret", options.Password)
}

// Needs a live server: PRESCREEN_REDIS_HOST=localhost PRESCREEN_REDIS_PORT=6379
func TestCallRecordRoundTrip(t *testing.T) {
	if _, ok := os.LookupEnv("PRESCREEN_REDIS_HOST"); !ok {
		t.Skip("PRESCREEN_REDIS_HOST is not set")
	}
	ctx := context.Background()
	client, err := NewClient(0)
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.Ping(ctx))

	record := types.CallRecord{
		RecordID:  "r-1",
		CallSid:   "CA-redis-test",
		StartTime: time.Now().UTC().Truncate(time.Second),
		Summary:   types.Summary{TrialName: "Test", Eligible: true},
	}
	require.NoError(t, client.SaveCallRecord(ctx, record))
	got, err := client.GetCallRecord(ctx, record.CallSid)
	require.NoError(t, err)
	assert.Equal(t, record.RecordID, got.RecordID)
	assert.True(t, got.Summary.Eligible)

	_, err = client.GetCallRecord(ctx, "CA-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
