// Package search finds donors within a radius of a point.
package search

import (
	"context"
	"fmt"
	"math"
	"slices"

	"bloodlink/internal/geo"
	"bloodlink/pkg/types"

	"github.com/sirupsen/logrus"
)

// DonorFinder is the part of the donor store the search reads from.
type DonorFinder interface {
	FindWithCoordinates(ctx context.Context, bloodGroup *types.BloodGroup) ([]*types.Donor, error)
}

type Service struct {
	donors DonorFinder
	logger logrus.FieldLogger
}

func New(donors DonorFinder, logger logrus.FieldLogger) *Service {
	return &Service{
		donors: donors,
		logger: logger.WithField("component", "search"),
	}
}

// FindNearby returns donors within q.RadiusKm of the query origin, nearest
// first. Donors at equal distance keep store order. Invalid queries fail
// with types.ErrInvalidArgument before the store is read.
func (s *Service) FindNearby(ctx context.Context, q types.GeoQuery) ([]*types.SearchResult, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	candidates, err := s.donors.FindWithCoordinates(ctx, q.BloodGroup)
	if err != nil {
		return nil, fmt.Errorf("find nearby donors: %w", err)
	}

	origin := geo.Point{Latitude: q.Latitude, Longitude: q.Longitude}

	results := make([]*types.SearchResult, 0, len(candidates))
	for _, d := range candidates {
		lat, lon, ok := d.Coordinates()
		if !ok {
			continue
		}
		if q.AvailableOnly && !d.IsAvailable {
			continue
		}

		dist := geo.Distance(origin, geo.Point{Latitude: lat, Longitude: lon})
		if dist <= q.RadiusKm {
			results = append(results, &types.SearchResult{Donor: d, DistanceKm: dist})
		}
	}

	slices.SortStableFunc(results, func(a, b *types.SearchResult) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		}
		return 0
	})

	s.logger.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"matched":    len(results),
		"radius_km":  q.RadiusKm,
	}).Debug("nearby donor search")

	return results, nil
}

// MatchRequest searches around a blood request's location for available
// donors of the requested blood group.
func (s *Service) MatchRequest(ctx context.Context, request *types.BloodRequest, radiusKm float64) ([]*types.SearchResult, error) {
	lat, lon, ok := request.Coordinates()
	if !ok {
		return nil, fmt.Errorf("%w: blood request %s has no location", types.ErrInvalidArgument, request.ID)
	}

	group := request.BloodGroup
	return s.FindNearby(ctx, types.GeoQuery{
		Latitude:      lat,
		Longitude:     lon,
		RadiusKm:      radiusKm,
		BloodGroup:    &group,
		AvailableOnly: true,
	})
}

func validateQuery(q types.GeoQuery) error {
	if math.IsNaN(q.RadiusKm) || math.IsInf(q.RadiusKm, 0) || q.RadiusKm <= 0 {
		return fmt.Errorf("%w: radius must be a positive number of kilometers", types.ErrInvalidArgument)
	}

	if err := (geo.Point{Latitude: q.Latitude, Longitude: q.Longitude}).Validate(); err != nil {
		return err
	}

	if q.BloodGroup != nil && !q.BloodGroup.Valid() {
		return fmt.Errorf("%w: unknown blood group %q", types.ErrInvalidArgument, *q.BloodGroup)
	}

	return nil
}
