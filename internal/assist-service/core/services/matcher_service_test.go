package services

import (
	"context"
	"testing"

	"road-assist/internal/assist-service/core/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	centerLat = 51.1290
	centerLon = 71.4305
)

func matchableProvider(id string, lat, lon float64) model.Provider {
	return model.Provider{
		ID:             id,
		UserID:         "user-of-" + id,
		Name:           "Provider " + id,
		Latitude:       &lat,
		Longitude:      &lon,
		IsAvailable:    true,
		ApprovalStatus: model.ApprovalApproved,
		ServiceTypes:   model.ServiceTypes{"towing"},
	}
}

func TestFindProvidersOrdersByDistance(t *testing.T) {
	near := matchableProvider("p-near", centerLat+0.01, centerLon)
	mid := matchableProvider("p-mid", centerLat+0.05, centerLon)
	far := matchableProvider("p-far", centerLat+0.2, centerLon)

	repo := newFakeProviderRepo(far, near, mid)
	ms := NewMatcherService(context.Background(), testLogger(t), repo, nil)

	res, err := ms.FindProviders(centerLat, centerLon, "")
	require.NoError(t, err)

	require.Equal(t, 3, res.Count)
	assert.Equal(t, "p-near", res.Providers[0].ProviderId)
	assert.Equal(t, "p-mid", res.Providers[1].ProviderId)
	assert.Equal(t, "p-far", res.Providers[2].ProviderId)

	for i := 1; i < len(res.Providers); i++ {
		assert.LessOrEqual(t, res.Providers[i-1].DistanceKm, res.Providers[i].DistanceKm)
	}
}

func TestFindProvidersTiesBreakOnId(t *testing.T) {
	a := matchableProvider("p-a", centerLat+0.01, centerLon)
	b := matchableProvider("p-b", centerLat+0.01, centerLon)

	repo := newFakeProviderRepo(b, a)
	ms := NewMatcherService(context.Background(), testLogger(t), repo, nil)

	res, err := ms.FindProviders(centerLat, centerLon, "")
	require.NoError(t, err)

	require.Equal(t, 2, res.Count)
	assert.Equal(t, "p-a", res.Providers[0].ProviderId)
	assert.Equal(t, "p-b", res.Providers[1].ProviderId)
}

func TestFindProvidersExcludesIneligible(t *testing.T) {
	ok := matchableProvider("p-ok", centerLat+0.01, centerLon)

	unavailable := matchableProvider("p-unavailable", centerLat+0.01, centerLon)
	unavailable.IsAvailable = false

	unapproved := matchableProvider("p-unapproved", centerLat+0.01, centerLon)
	unapproved.ApprovalStatus = model.ApprovalPending

	noLocation := matchableProvider("p-no-location", 0, 0)
	noLocation.Latitude = nil
	noLocation.Longitude = nil

	repo := newFakeProviderRepo(ok, unavailable, unapproved, noLocation)
	ms := NewMatcherService(context.Background(), testLogger(t), repo, nil)

	res, err := ms.FindProviders(centerLat, centerLon, "")
	require.NoError(t, err)

	require.Equal(t, 1, res.Count)
	assert.Equal(t, "p-ok", res.Providers[0].ProviderId)
}

func TestFindProvidersRespectsCoverageRadius(t *testing.T) {
	// ~0.5 degrees of latitude is ~55km, beyond the 50km default
	beyondDefault := matchableProvider("p-beyond", centerLat+0.5, centerLon)

	// same spot but with a wide personal radius
	wide := matchableProvider("p-wide", centerLat+0.5, centerLon)
	wide.CoverageRadiusKm = 100

	// nearby provider with a tiny radius that still covers the caller
	tight := matchableProvider("p-tight", centerLat+0.01, centerLon)
	tight.CoverageRadiusKm = 5

	repo := newFakeProviderRepo(beyondDefault, wide, tight)
	ms := NewMatcherService(context.Background(), testLogger(t), repo, nil)

	res, err := ms.FindProviders(centerLat, centerLon, "")
	require.NoError(t, err)

	require.Equal(t, 2, res.Count)
	assert.Equal(t, "p-tight", res.Providers[0].ProviderId)
	assert.Equal(t, "p-wide", res.Providers[1].ProviderId)
}

func TestFindProvidersFiltersByServiceType(t *testing.T) {
	tow := matchableProvider("p-tow", centerLat+0.01, centerLon)

	fuel := matchableProvider("p-fuel", centerLat+0.01, centerLon)
	fuel.ServiceTypes = model.ServiceTypes{"fuel_delivery"}

	repo := newFakeProviderRepo(tow, fuel)
	ms := NewMatcherService(context.Background(), testLogger(t), repo, nil)

	res, err := ms.FindProviders(centerLat, centerLon, "fuel_delivery")
	require.NoError(t, err)

	require.Equal(t, 1, res.Count)
	assert.Equal(t, "p-fuel", res.Providers[0].ProviderId)
}

func TestFindProvidersEmptyDirectoryIsNotAnError(t *testing.T) {
	ms := NewMatcherService(context.Background(), testLogger(t), newFakeProviderRepo(), nil)

	res, err := ms.FindProviders(centerLat, centerLon, "towing")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.NotNil(t, res.Providers)
	assert.Empty(t, res.Providers)
}

func TestFindProvidersRoundsDistanceToTwoDecimals(t *testing.T) {
	p := matchableProvider("p-1", centerLat+0.0137, centerLon+0.0221)
	repo := newFakeProviderRepo(p)
	ms := NewMatcherService(context.Background(), testLogger(t), repo, nil)

	res, err := ms.FindProviders(centerLat, centerLon, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)

	d := res.Providers[0].DistanceKm
	assert.InDelta(t, d, round2(d), 1e-12)
}

func TestFindProvidersServesSecondCallFromCache(t *testing.T) {
	p := matchableProvider("p-1", centerLat+0.01, centerLon)
	repo := newFakeProviderRepo(p)
	cache := newFakeCache()
	ms := NewMatcherService(context.Background(), testLogger(t), repo, cache)

	first, err := ms.FindProviders(centerLat, centerLon, "towing")
	require.NoError(t, err)

	// the directory changes under the cache; the cached answer wins
	repo.mu.Lock()
	delete(repo.providers, "p-1")
	repo.mu.Unlock()

	second, err := ms.FindProviders(centerLat, centerLon, "towing")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)
}

func TestFindProvidersDifferentQueriesMissCache(t *testing.T) {
	p := matchableProvider("p-1", centerLat+0.01, centerLon)
	cache := newFakeCache()
	ms := NewMatcherService(context.Background(), testLogger(t), newFakeProviderRepo(p), cache)

	_, err := ms.FindProviders(centerLat, centerLon, "towing")
	require.NoError(t, err)
	_, err = ms.FindProviders(centerLat+1, centerLon, "towing")
	require.NoError(t, err)
	_, err = ms.FindProviders(centerLat, centerLon, "fuel_delivery")
	require.NoError(t, err)

	assert.Equal(t, 0, cache.hits)
	assert.Len(t, cache.entries, 3)
}
