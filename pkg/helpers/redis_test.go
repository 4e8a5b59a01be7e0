package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "user:session:user-1", SessionKey("user-1"))
}

func TestRedisJSONHelpersSurfaceConnectionErrors(t *testing.T) {
	// Port 1 is never listening; both helpers must report the failure instead
	// of treating it as a missing key.
	rdb := NewRedisClient("127.0.0.1:1", "", 0)
	defer func() { _ = rdb.Close() }()
	ctx := context.Background()

	err := RedisSetJSON(ctx, rdb, SessionKey("user-1"), Session{SID: "sid-1"}, time.Minute)
	require.Error(t, err)

	var sess Session
	ok, err := RedisGetJSON(ctx, rdb, SessionKey("user-1"), &sess)
	assert.False(t, ok)
	require.Error(t, err)
}

func TestRedisSetJSONRejectsUnmarshalableValue(t *testing.T) {
	rdb := NewRedisClient("127.0.0.1:1", "", 0)
	defer func() { _ = rdb.Close() }()

	// Marshal failure is reported before any network traffic.
	err := RedisSetJSON(context.Background(), rdb, "k", make(chan int), time.Minute)
	require.Error(t, err)
}
