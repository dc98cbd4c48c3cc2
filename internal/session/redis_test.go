package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_RoundTrip(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)
	ctx := context.Background()

	pair := TokenPair{Access: "a", Refresh: "r"}
	raw, err := json.Marshal(pair)
	require.NoError(t, err)

	mock.ExpectSet(redisKeyPrefix+"sid", raw, SessionTTL).SetVal("OK")
	require.NoError(t, store.Set(ctx, "sid", pair))

	mock.ExpectGet(redisKeyPrefix + "sid").SetVal(string(raw))
	got, ok, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pair, got)

	mock.ExpectDel(redisKeyPrefix + "sid").SetVal(1)
	require.NoError(t, store.Delete(ctx, "sid"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_MissingKey(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)

	mock.ExpectGet(redisKeyPrefix + "nope").RedisNil()
	_, ok, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}
