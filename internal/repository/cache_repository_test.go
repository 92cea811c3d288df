package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest map[string]int
	assert.ErrorIs(t, repo.Get(ctx, "insights:report", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "insights:report", map[string]int{"a": 1}, time.Minute))
}

func TestCacheEntryRoundTrip(t *testing.T) {
	raw, err := encodeCacheEntry(map[string]int{"<18": 2}, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.JSONEq(t, `{"format":1,"stored_at":"2024-03-01T00:00:00Z","payload":{"<18":2}}`, string(raw))

	var out map[string]int
	require.NoError(t, decodeCacheEntry(raw, &out))
	assert.Equal(t, map[string]int{"<18": 2}, out)
}

func TestCacheEntryRejectsForeignFormats(t *testing.T) {
	var out map[string]int
	assert.Error(t, decodeCacheEntry([]byte(`{"format":0,"payload":{"a":1}}`), &out))
	assert.Error(t, decodeCacheEntry([]byte(`{"<18":2}`), &out))
	assert.Error(t, decodeCacheEntry([]byte(`not json`), &out))
}
