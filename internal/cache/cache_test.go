package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside(t *testing.T) {
	ctx := context.Background()

	t.Run("miss fetches and populates", func(t *testing.T) {
		withTestRedis(t)
		calls := 0

		var got payload
		err := Aside(ctx, "k", &got, time.Minute, func() error {
			calls++
			got = payload{Name: "fresh"}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh", got.Name)
		assert.Equal(t, 1, calls)

		// Second read hits the cache
		var again payload
		err = Aside(ctx, "k", &again, time.Minute, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh", again.Name)
		assert.Equal(t, 1, calls)
	})

	t.Run("fetch error propagates and nothing is stored", func(t *testing.T) {
		mr := withTestRedis(t)

		var got payload
		err := Aside(ctx, "bad", &got, time.Minute, func() error {
			return errors.New("db down")
		})
		assert.Error(t, err)
		assert.False(t, mr.Exists("bad"))
	})

	t.Run("nil client degrades to plain fetch", func(t *testing.T) {
		SetClient(nil)
		calls := 0

		var got payload
		for i := 0; i < 2; i++ {
			err := Aside(ctx, "k", &got, time.Minute, func() error {
				calls++
				got = payload{Name: "direct"}
				return nil
			})
			require.NoError(t, err)
		}
		assert.Equal(t, 2, calls)
	})
}

func TestInvalidate(t *testing.T) {
	mr := withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ProfileKey(3), payload{Name: "p"}, time.Minute))
	require.NoError(t, SetJSON(ctx, ProfileListKey(), []payload{}, time.Minute))

	InvalidateProfile(ctx, 3)
	assert.False(t, mr.Exists(ProfileKey(3)))
	assert.False(t, mr.Exists(ProfileListKey()))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "user:7", UserKey(7))
	assert.Equal(t, "profile:user:7", ProfileKey(7))
	assert.Equal(t, "github:repos:jane", GithubKey("jane"))
}
