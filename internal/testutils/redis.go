// Package testutils holds helpers shared by tests across packages
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/onemillion/internal/redis"
)

// CreateTestRedisClient returns a client backed by a fresh miniredis
func CreateTestRedisClient(t *testing.T) (redis.Client, func()) {
	client, _, cleanup := CreateTestRedisServer(t)
	return client, cleanup
}

// CreateTestRedisServer also hands back the miniredis so a test can seed raw
// keys or close it to simulate an outage. Cleanup is safe to call twice.
func CreateTestRedisServer(t *testing.T) (redis.Client, *miniredis.Miniredis, func()) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := redis.NewClient(&redis.Config{Addr: mr.Addr()})
	require.NoError(t, err)

	return client, mr, func() {
		_ = client.Close()
		mr.Close()
	}
}
