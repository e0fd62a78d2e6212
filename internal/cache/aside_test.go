package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/cache"
)

var errFakeMiss = errors.New("cache miss")

// fakeCache implements just the cache.Cache surface FetchWith touches; the
// embedded interface panics on anything else.
type fakeCache struct {
	cache.Cache

	store    map[string]string
	sets     int
	readErr  error
	writeErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]string{}}
}

func (f *fakeCache) GetCtx(ctx context.Context, key string, val any) error {
	if f.readErr != nil {
		return f.readErr
	}
	raw, ok := f.store[key]
	if !ok {
		return errFakeMiss
	}
	return json.Unmarshal([]byte(raw), val)
}

func (f *fakeCache) SetWithExpireCtx(ctx context.Context, key string, val any, ttl time.Duration) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	f.store[key] = string(raw)
	f.sets++
	return nil
}

func (f *fakeCache) IsNotFound(err error) bool {
	return errors.Is(err, errFakeMiss)
}

type payload struct {
	Value string `json:"value"`
}

func TestFetchWithPopulatesThenServesFromCache(t *testing.T) {
	fake := newFakeCache()
	fetches := 0
	fetch := func(ctx context.Context) (payload, error) {
		fetches++
		return payload{Value: "fresh"}, nil
	}

	got, err := FetchWith(context.Background(), fake, "k", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Value)

	got, err = FetchWith(context.Background(), fake, "k", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Value)

	// The producer ran once; the second call was a cache hit.
	assert.Equal(t, 1, fetches)
	assert.Equal(t, 1, fake.sets)
}

func TestFetchWithNilCacheDegradesToFetch(t *testing.T) {
	got, err := FetchWith(context.Background(), nil, "k", time.Minute, func(ctx context.Context) (string, error) {
		return "direct", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", got)
}

func TestFetchWithZeroTTLBypassesCache(t *testing.T) {
	fake := newFakeCache()
	_, err := FetchWith(context.Background(), fake, "k", 0, func(ctx context.Context) (string, error) {
		return "direct", nil
	})
	require.NoError(t, err)
	assert.Empty(t, fake.store)
}

func TestFetchWithCacheFailuresDegradeToFetch(t *testing.T) {
	fake := newFakeCache()
	fake.readErr = errors.New("redis down")
	fake.writeErr = errors.New("redis down")

	got, err := FetchWith(context.Background(), fake, "k", time.Minute, func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
}

func TestFetchWithFetchErrorNotStored(t *testing.T) {
	fake := newFakeCache()
	wantErr := errors.New("upstream down")

	_, err := FetchWith(context.Background(), fake, "k", time.Minute, func(ctx context.Context) (string, error) {
		return "", wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Empty(t, fake.store)
}
