package search

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"bloodlink/internal/store"
	"bloodlink/internal/utils"
	"bloodlink/pkg/types"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFinder struct {
	donors []*types.Donor
	err    error
	calls  int
}

func (f *countingFinder) FindWithCoordinates(_ context.Context, bloodGroup *types.BloodGroup) ([]*types.Donor, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*types.Donor, 0, len(f.donors))
	for _, d := range f.donors {
		if bloodGroup != nil && d.BloodGroup != *bloodGroup {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func donorAt(id string, group types.BloodGroup, lat, lon float64) *types.Donor {
	return &types.Donor{
		ID:          id,
		Name:        id,
		BloodGroup:  group,
		City:        "Bengaluru",
		Phone:       "555-0100",
		Latitude:    utils.Ptr(lat),
		Longitude:   utils.Ptr(lon),
		IsAvailable: true,
	}
}

func newService(t *testing.T, finder DonorFinder) *Service {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return New(finder, logger)
}

func TestFindNearby_BengaluruScenario(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()

	donors := store.NewMemoryDonorStore()
	for _, d := range []*types.Donor{
		donorAt("a-pos", types.BloodGroupAPositive, 12.9716, 77.5946),
		donorAt("o-neg", types.BloodGroupONegative, 12.9750, 77.5930),
	} {
		_, err := donors.Insert(ctx, d)
		require.NoError(t, err)
	}

	svc := New(donors, logger)

	results, err := svc.FindNearby(ctx, types.GeoQuery{Latitude: 12.9716, Longitude: 77.5946, RadiusKm: 5})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a-pos", results[0].ID, "donor at the origin is nearest")
	assert.Zero(t, results[0].DistanceKm)
	assert.Equal(t, "o-neg", results[1].ID)
	assert.InDelta(t, 0.41, results[1].DistanceKm, 0.05)

	group := types.BloodGroupAPositive
	results, err = svc.FindNearby(ctx, types.GeoQuery{Latitude: 12.9716, Longitude: 77.5946, RadiusKm: 5, BloodGroup: &group})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a-pos", results[0].ID)
}

func TestFindNearby_EmptyStore(t *testing.T) {
	svc := newService(t, &countingFinder{})

	results, err := svc.FindNearby(context.Background(), types.GeoQuery{Latitude: 0, Longitude: 0, RadiusKm: 10})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFindNearby_InvalidQueriesFailFast(t *testing.T) {
	finder := &countingFinder{donors: []*types.Donor{donorAt("x", types.BloodGroupAPositive, 0, 0)}}
	svc := newService(t, finder)
	bad := types.BloodGroup("Q+")

	tests := []struct {
		name string
		q    types.GeoQuery
	}{
		{name: "zero radius", q: types.GeoQuery{RadiusKm: 0}},
		{name: "negative radius", q: types.GeoQuery{RadiusKm: -1}},
		{name: "nan radius", q: types.GeoQuery{RadiusKm: math.NaN()}},
		{name: "infinite radius", q: types.GeoQuery{RadiusKm: math.Inf(1)}},
		{name: "latitude too high", q: types.GeoQuery{Latitude: 90.5, RadiusKm: 1}},
		{name: "latitude too low", q: types.GeoQuery{Latitude: -91, RadiusKm: 1}},
		{name: "longitude out of range", q: types.GeoQuery{Longitude: 181, RadiusKm: 1}},
		{name: "unknown blood group", q: types.GeoQuery{RadiusKm: 1, BloodGroup: &bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FindNearby(context.Background(), tt.q)
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
		})
	}

	assert.Zero(t, finder.calls, "validation must run before the store is read")
}

func TestFindNearby_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("malformed stored record")
	svc := newService(t, &countingFinder{err: boom})

	_, err := svc.FindNearby(context.Background(), types.GeoQuery{RadiusKm: 1})
	assert.ErrorIs(t, err, boom)
}

func TestFindNearby_SkipsPartialCoordinates(t *testing.T) {
	latOnly := donorAt("lat-only", types.BloodGroupAPositive, 0, 0)
	latOnly.Longitude = nil
	lonOnly := donorAt("lon-only", types.BloodGroupAPositive, 0, 0)
	lonOnly.Latitude = nil

	svc := newService(t, &countingFinder{donors: []*types.Donor{latOnly, lonOnly, donorAt("full", types.BloodGroupAPositive, 0, 0)}})

	results, err := svc.FindNearby(context.Background(), types.GeoQuery{RadiusKm: 20000})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "full", results[0].ID)
}

func TestFindNearby_RadiusAndOrderingProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	donors := make([]*types.Donor, 0, 500)
	for i := 0; i < 500; i++ {
		donors = append(donors, donorAt(
			utils.NanoIDSize(8),
			types.AllBloodGroups[rng.Intn(len(types.AllBloodGroups))],
			12.9716+(rng.Float64()-0.5),
			77.5946+(rng.Float64()-0.5),
		))
	}
	svc := newService(t, &countingFinder{donors: donors})

	for _, radius := range []float64{0.5, 5, 20, 50} {
		results, err := svc.FindNearby(context.Background(), types.GeoQuery{Latitude: 12.9716, Longitude: 77.5946, RadiusKm: radius})
		require.NoError(t, err)

		for i, r := range results {
			assert.LessOrEqual(t, r.DistanceKm, radius)
			if i > 0 {
				assert.LessOrEqual(t, results[i-1].DistanceKm, r.DistanceKm)
			}
		}
	}
}

func TestFindNearby_TiesKeepStoreOrder(t *testing.T) {
	donors := []*types.Donor{
		donorAt("first", types.BloodGroupAPositive, 1, 1),
		donorAt("second", types.BloodGroupAPositive, 1, 1),
		donorAt("origin", types.BloodGroupAPositive, 0, 0),
		donorAt("third", types.BloodGroupAPositive, 1, 1),
	}
	svc := newService(t, &countingFinder{donors: donors})

	results, err := svc.FindNearby(context.Background(), types.GeoQuery{RadiusKm: 500})
	require.NoError(t, err)
	require.Len(t, results, 4)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"origin", "first", "second", "third"}, ids)
}

func TestMatchRequest(t *testing.T) {
	unavailable := donorAt("busy", types.BloodGroupONegative, 12.9716, 77.5946)
	unavailable.IsAvailable = false

	svc := newService(t, &countingFinder{donors: []*types.Donor{
		unavailable,
		donorAt("near", types.BloodGroupONegative, 12.9750, 77.5930),
		donorAt("wrong-group", types.BloodGroupAPositive, 12.9716, 77.5946),
		donorAt("far", types.BloodGroupONegative, 13.5, 78.5),
	}})

	request := &types.BloodRequest{
		ID:         "req-1",
		BloodGroup: types.BloodGroupONegative,
		Latitude:   utils.Ptr(12.9716),
		Longitude:  utils.Ptr(77.5946),
	}

	results, err := svc.MatchRequest(context.Background(), request, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "near", results[0].ID)

	request.Latitude = nil
	_, err = svc.MatchRequest(context.Background(), request, 10)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}
