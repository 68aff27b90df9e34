package store

import (
	"context"
	"fmt"

	"bloodlink/pkg/types"

	"github.com/sirupsen/logrus"
)

// FallbackRequestStore mirrors FallbackDonorStore for blood requests.
type FallbackRequestStore struct {
	durable RequestStore
	memory  RequestStore
	fb      fallback
}

func NewFallbackRequestStore(durable RequestStore, memory RequestStore, state ConnectivityState, logger logrus.FieldLogger) *FallbackRequestStore {
	return &FallbackRequestStore{
		durable: durable,
		memory:  memory,
		fb: fallback{
			state:      state,
			logger:     logger.WithField("store", "blood_requests"),
			hasDurable: durable != nil,
		},
	}
}

func (s *FallbackRequestStore) Create(ctx context.Context, request *types.BloodRequest) (*types.BloodRequest, error) {
	request.ApplyDefaults()
	if err := types.Validate(request); err != nil {
		return nil, fmt.Errorf("create blood request: %w", err)
	}

	return withFallback(ctx, s.fb, "create blood request",
		func(ctx context.Context) (*types.BloodRequest, error) { return s.durable.Create(ctx, request) },
		func(ctx context.Context) (*types.BloodRequest, error) { return s.memory.Create(ctx, request) },
	)
}

func (s *FallbackRequestStore) List(ctx context.Context) ([]*types.BloodRequest, error) {
	return withFallback(ctx, s.fb, "list blood requests",
		func(ctx context.Context) ([]*types.BloodRequest, error) { return s.durable.List(ctx) },
		s.memory.List,
	)
}

func (s *FallbackRequestStore) ListByStatus(ctx context.Context, status types.RequestStatus) ([]*types.BloodRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown request status %q", types.ErrInvalidArgument, status)
	}

	return withFallback(ctx, s.fb, "list blood requests by status",
		func(ctx context.Context) ([]*types.BloodRequest, error) { return s.durable.ListByStatus(ctx, status) },
		func(ctx context.Context) ([]*types.BloodRequest, error) { return s.memory.ListByStatus(ctx, status) },
	)
}

func (s *FallbackRequestStore) Urgent(ctx context.Context) ([]*types.BloodRequest, error) {
	return withFallback(ctx, s.fb, "list urgent blood requests",
		func(ctx context.Context) ([]*types.BloodRequest, error) { return s.durable.Urgent(ctx) },
		s.memory.Urgent,
	)
}

func (s *FallbackRequestStore) Request(ctx context.Context, requestID string) (*types.BloodRequest, error) {
	return withFallback(ctx, s.fb, "fetch blood request",
		func(ctx context.Context) (*types.BloodRequest, error) { return s.durable.Request(ctx, requestID) },
		func(ctx context.Context) (*types.BloodRequest, error) { return s.memory.Request(ctx, requestID) },
	)
}

func (s *FallbackRequestStore) UpdateStatus(ctx context.Context, requestID string, status types.RequestStatus) (*types.BloodRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown request status %q", types.ErrInvalidArgument, status)
	}

	return withFallback(ctx, s.fb, "update blood request status",
		func(ctx context.Context) (*types.BloodRequest, error) { return s.durable.UpdateStatus(ctx, requestID, status) },
		func(ctx context.Context) (*types.BloodRequest, error) { return s.memory.UpdateStatus(ctx, requestID, status) },
	)
}

func (s *FallbackRequestStore) Rate(ctx context.Context, requestID string, rating *float64, feedback *string) (*types.BloodRequest, error) {
	if rating != nil && (*rating < 0 || *rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 0 and 5", types.ErrInvalidArgument)
	}

	return withFallback(ctx, s.fb, "rate blood request",
		func(ctx context.Context) (*types.BloodRequest, error) { return s.durable.Rate(ctx, requestID, rating, feedback) },
		func(ctx context.Context) (*types.BloodRequest, error) { return s.memory.Rate(ctx, requestID, rating, feedback) },
	)
}

func (s *FallbackRequestStore) Delete(ctx context.Context, requestID string) error {
	_, err := withFallback(ctx, s.fb, "delete blood request",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, s.durable.Delete(ctx, requestID) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, s.memory.Delete(ctx, requestID) },
	)
	return err
}
