package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopstack/storefront-platform/internal/cache"
	"github.com/shopstack/storefront-platform/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestData struct {
	Field1 string `json:"field1"`
	Field2 int    `json:"field2"`
}

func setup(t *testing.T) (cache.Cache, redismock.ClientMock, *config.CacheConfig) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{
		DefaultTTL: 10 * time.Minute,
	}
	redisCache := cache.NewRedisCache(client, cfg)

	return redisCache, mock, cfg
}

func TestNewRedisCache(t *testing.T) {
	redisCache, _, _ := setup(t)
	assert.NotNil(t, redisCache, "NewRedisCache should return a non-nil Cache instance")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "product:abc", cache.Key(cache.ProductKeyPrefix, "abc"))
	assert.Equal(t, "category:1", cache.Key(cache.CategoryKeyPrefix, "1"))
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	testKey := "test:get"
	testValue := TestData{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		redisCache, mock, _ := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetVal(string(jsonData))

		found, err := redisCache.Get(ctx, testKey, &result)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, testValue, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		redisCache, mock, _ := setup(t)

		var result TestData

		mock.ExpectGet(testKey).RedisNil()

		found, err := redisCache.Get(ctx, testKey, &result)

		require.NoError(t, err, "a cache miss is not an error")
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock, _ := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetErr(errors.New("redis down"))

		found, err := redisCache.Get(ctx, testKey, &result)

		assert.Error(t, err)
		assert.False(t, found)
	})

	t.Run("Failure - Corrupt Payload", func(t *testing.T) {
		redisCache, mock, _ := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetVal("{not json")

		found, err := redisCache.Get(ctx, testKey, &result)

		assert.Error(t, err)
		assert.False(t, found)
	})
}

func TestSet(t *testing.T) {
	ctx := t.Context()
	testKey := "test:set"
	testValue := TestData{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Explicit TTL", func(t *testing.T) {
		redisCache, mock, _ := setup(t)

		mock.ExpectSet(testKey, jsonData, time.Minute).SetVal("OK")

		err := redisCache.Set(ctx, testKey, testValue, time.Minute)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Zero TTL Falls Back To Default", func(t *testing.T) {
		redisCache, mock, cfg := setup(t)

		mock.ExpectSet(testKey, jsonData, cfg.DefaultTTL).SetVal("OK")

		err := redisCache.Set(ctx, testKey, testValue, 0)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock, _ := setup(t)

		mock.ExpectSet(testKey, jsonData, time.Minute).SetErr(errors.New("redis down"))

		err := redisCache.Set(ctx, testKey, testValue, time.Minute)

		assert.Error(t, err)
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()
	testKey := "test:delete"

	t.Run("Success", func(t *testing.T) {
		redisCache, mock, _ := setup(t)

		mock.ExpectDel(testKey).SetVal(1)

		err := redisCache.Delete(ctx, testKey)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock, _ := setup(t)

		mock.ExpectDel(testKey).SetErr(errors.New("redis down"))

		err := redisCache.Delete(ctx, testKey)

		assert.Error(t, err)
	})
}
