package store

import (
	"context"
	"fmt"

	"bloodlink/pkg/types"

	"github.com/sirupsen/logrus"
)

// FallbackDonorStore serves donors from Postgres while the connectivity
// state says it is reachable and from memory otherwise. Writes taken in
// memory are not copied back to Postgres when it returns.
type FallbackDonorStore struct {
	durable DonorStore
	memory  DonorStore
	fb      fallback
}

// NewFallbackDonorStore wires the two backings. durable may be nil, in which
// case every call is served from memory.
func NewFallbackDonorStore(durable DonorStore, memory DonorStore, state ConnectivityState, logger logrus.FieldLogger) *FallbackDonorStore {
	return &FallbackDonorStore{
		durable: durable,
		memory:  memory,
		fb: fallback{
			state:      state,
			logger:     logger.WithField("store", "donors"),
			hasDurable: durable != nil,
		},
	}
}

// Insert validates the donor before any backing is touched.
func (s *FallbackDonorStore) Insert(ctx context.Context, donor *types.Donor) (*types.Donor, error) {
	if err := types.Validate(donor); err != nil {
		return nil, fmt.Errorf("insert donor: %w", err)
	}

	return withFallback(ctx, s.fb, "insert donor",
		func(ctx context.Context) (*types.Donor, error) { return s.durable.Insert(ctx, donor) },
		func(ctx context.Context) (*types.Donor, error) { return s.memory.Insert(ctx, donor) },
	)
}

func (s *FallbackDonorStore) ListAll(ctx context.Context) ([]*types.Donor, error) {
	return withFallback(ctx, s.fb, "list donors",
		func(ctx context.Context) ([]*types.Donor, error) { return s.durable.ListAll(ctx) },
		s.memory.ListAll,
	)
}

func (s *FallbackDonorStore) FindByAttributes(ctx context.Context, filter types.DonorFilter) ([]*types.Donor, error) {
	return withFallback(ctx, s.fb, "search donors",
		func(ctx context.Context) ([]*types.Donor, error) { return s.durable.FindByAttributes(ctx, filter) },
		func(ctx context.Context) ([]*types.Donor, error) { return s.memory.FindByAttributes(ctx, filter) },
	)
}

func (s *FallbackDonorStore) FindWithCoordinates(ctx context.Context, bloodGroup *types.BloodGroup) ([]*types.Donor, error) {
	return withFallback(ctx, s.fb, "find located donors",
		func(ctx context.Context) ([]*types.Donor, error) { return s.durable.FindWithCoordinates(ctx, bloodGroup) },
		func(ctx context.Context) ([]*types.Donor, error) { return s.memory.FindWithCoordinates(ctx, bloodGroup) },
	)
}

func (s *FallbackDonorStore) Donor(ctx context.Context, donorID string) (*types.Donor, error) {
	return withFallback(ctx, s.fb, "fetch donor",
		func(ctx context.Context) (*types.Donor, error) { return s.durable.Donor(ctx, donorID) },
		func(ctx context.Context) (*types.Donor, error) { return s.memory.Donor(ctx, donorID) },
	)
}

func (s *FallbackDonorStore) SetAvailability(ctx context.Context, donorID string, available bool) (*types.Donor, error) {
	return withFallback(ctx, s.fb, "set donor availability",
		func(ctx context.Context) (*types.Donor, error) { return s.durable.SetAvailability(ctx, donorID, available) },
		func(ctx context.Context) (*types.Donor, error) { return s.memory.SetAvailability(ctx, donorID, available) },
	)
}
