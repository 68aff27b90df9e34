// Package stats aggregates donor and blood request counts for the admin dashboard.
package stats

import (
	"context"
	"fmt"

	"bloodlink/pkg/types"
)

type DonorLister interface {
	ListAll(ctx context.Context) ([]*types.Donor, error)
}

type RequestLister interface {
	List(ctx context.Context) ([]*types.BloodRequest, error)
}

type ModeReporter interface {
	StorageMode() types.StorageMode
}

type Service struct {
	donors   DonorLister
	requests RequestLister
	mode     ModeReporter
}

func New(donors DonorLister, requests RequestLister, mode ModeReporter) *Service {
	return &Service{donors: donors, requests: requests, mode: mode}
}

func (s *Service) Compute(ctx context.Context) (*types.Stats, error) {
	donors, err := s.donors.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}

	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}

	out := &types.Stats{
		TotalDonors:        len(donors),
		DonorsByBloodGroup: make(map[types.BloodGroup]int, len(types.AllBloodGroups)),
		DonorsByCity:       make(map[string]int),
		TotalRequests:      len(requests),
		RequestsByStatus:   make(map[types.RequestStatus]int, len(types.AllRequestStatuses)),
		StorageMode:        s.mode.StorageMode(),
	}

	for _, g := range types.AllBloodGroups {
		out.DonorsByBloodGroup[g] = 0
	}
	for _, st := range types.AllRequestStatuses {
		out.RequestsByStatus[st] = 0
	}

	for _, d := range donors {
		out.DonorsByBloodGroup[d.BloodGroup]++
		out.DonorsByCity[d.City]++
		if d.IsAvailable {
			out.AvailableDonors++
		}
		if d.HasCoordinates() {
			out.DonorsWithLocation++
		}
	}

	for _, r := range requests {
		out.RequestsByStatus[r.Status]++
		if r.IsUrgent() {
			out.UrgentPendingRequests++
		}
	}

	return out, nil
}
