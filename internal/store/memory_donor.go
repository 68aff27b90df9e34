package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bloodlink/internal/utils"
	"bloodlink/pkg/types"
)

// MemoryDonorStore is a process-local donor collection. Safe for concurrent use.
type MemoryDonorStore struct {
	mu     sync.RWMutex
	donors []*types.Donor
	byID   map[string]int
}

func NewMemoryDonorStore() *MemoryDonorStore {
	return &MemoryDonorStore{byID: make(map[string]int)}
}

func (s *MemoryDonorStore) Insert(_ context.Context, donor *types.Donor) (*types.Donor, error) {
	now := time.Now().UTC()
	if donor.ID == "" {
		donor.ID = utils.NanoID()
	}
	donor.CreatedAt = now
	donor.UpdatedAt = now

	stored := donor.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[stored.ID]; ok {
		return nil, fmt.Errorf("%w: donor %s", types.ErrAlreadyExists, stored.ID)
	}

	s.byID[stored.ID] = len(s.donors)
	s.donors = append(s.donors, stored)

	return stored.Clone(), nil
}

func (s *MemoryDonorStore) ListAll(_ context.Context) ([]*types.Donor, error) {
	return s.filter(func(*types.Donor) bool { return true }), nil
}

func (s *MemoryDonorStore) FindByAttributes(_ context.Context, filter types.DonorFilter) ([]*types.Donor, error) {
	return s.filter(filter.Matches), nil
}

func (s *MemoryDonorStore) FindWithCoordinates(_ context.Context, bloodGroup *types.BloodGroup) ([]*types.Donor, error) {
	filter := types.DonorFilter{BloodGroup: bloodGroup}
	return s.filter(func(d *types.Donor) bool {
		return d.HasCoordinates() && filter.Matches(d)
	}), nil
}

func (s *MemoryDonorStore) Donor(_ context.Context, donorID string) (*types.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[donorID]
	if !ok {
		return nil, types.ErrDonorNotFound
	}

	return s.donors[i].Clone(), nil
}

func (s *MemoryDonorStore) SetAvailability(_ context.Context, donorID string, available bool) (*types.Donor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[donorID]
	if !ok {
		return nil, types.ErrDonorNotFound
	}

	s.donors[i].IsAvailable = available
	s.donors[i].UpdatedAt = time.Now().UTC()

	return s.donors[i].Clone(), nil
}

// Len is the number of stored donors.
func (s *MemoryDonorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.donors)
}

func (s *MemoryDonorStore) filter(keep func(*types.Donor) bool) []*types.Donor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Donor, 0, len(s.donors))
	for _, d := range s.donors {
		if keep(d) {
			out = append(out, d.Clone())
		}
	}
	return out
}
