package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
)

func TestCatalogServiceListEmpty(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo(), nil, nil)

	services, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, services)
	assert.Empty(t, services)
}

func TestCatalogServiceGetMissingIsNil(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo(models.Service{ID: "tax", Name: "Tax"}), nil, nil)

	got, err := svc.Get(context.Background(), "passport")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.Get(context.Background(), "tax")
	require.NoError(t, err)
	assert.Equal(t, "Tax", got.Name)
}

func TestCatalogServiceUpsertRequiresID(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo, nil, nil)

	err := svc.Upsert(context.Background(), models.Service{Name: "Nameless"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, "id required", appErrors.FromError(err).Message)
	assert.Zero(t, repo.upserts)
}

func TestCatalogServiceUpsertReplacesWholeRecord(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, models.Service{ID: "x", Name: "A", Extra: map[string]interface{}{"fee": "10"}}))
	require.NoError(t, svc.Upsert(ctx, models.Service{ID: "x", Name: "B"}))

	services, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "B", services[0].Name)
	assert.Empty(t, services[0].Extra)
}

func TestCatalogServiceUpsertStripsNULBytes(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo, nil, nil)

	require.NoError(t, svc.Upsert(context.Background(), models.Service{
		ID:    "tax\x00",
		Name:  "Tax\x00 office",
		Extra: map[string]interface{}{"note\x00": "bring\x00 ktp"},
	}))

	got, err := svc.Get(context.Background(), "tax")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Tax office", got.Name)
	assert.Equal(t, map[string]interface{}{"note": "bring ktp"}, got.Extra)
}

func TestCatalogServiceUpsertRejectsNULOnlyID(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo, nil, nil)

	err := svc.Upsert(context.Background(), models.Service{ID: "\x00"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Zero(t, repo.upserts)
}

func TestCatalogServiceDeleteIsIdempotent(t *testing.T) {
	repo := newFakeServiceRepo(models.Service{ID: "x"})
	svc := NewCatalogService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "x"))
	require.NoError(t, svc.Delete(context.Background(), "x"))

	got, err := svc.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCatalogServiceStoreErrors(t *testing.T) {
	repo := newFakeServiceRepo()
	repo.err = errors.New("db gone")
	svc := NewCatalogService(repo, nil, nil)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrStoreUnavailable)
	assert.ErrorIs(t, svc.Delete(context.Background(), "x"), appErrors.ErrStoreUnavailable)
}
