package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	a := Key("SELECT * FROM person", 10)

	assert.True(t, strings.HasPrefix(a, keyPrefix))
	assert.Equal(t, a, Key("SELECT * FROM person", 10))
	assert.NotEqual(t, a, Key("SELECT * FROM person", 5))
	assert.NotEqual(t, a, Key("SELECT * FROM people", 10))
}

func TestRedisSearchCache_UnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	c := NewRedisSearchCache(rdb, 0)
	assert.Equal(t, DefaultTTL, c.ttl)

	_, hit, err := c.Get(context.Background(), "q", 1)
	assert.Error(t, err)
	assert.False(t, hit)

	assert.Error(t, c.Set(context.Background(), "q", 1, nil))
}
