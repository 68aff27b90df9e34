package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"bloodlink/internal/utils"
	"bloodlink/pkg/types"
)

// MemoryRequestStore keeps blood requests in process memory.
type MemoryRequestStore struct {
	mu       sync.RWMutex
	requests map[string]*types.BloodRequest
}

func NewMemoryRequestStore() *MemoryRequestStore {
	return &MemoryRequestStore{requests: make(map[string]*types.BloodRequest)}
}

func (s *MemoryRequestStore) Create(_ context.Context, request *types.BloodRequest) (*types.BloodRequest, error) {
	now := time.Now().UTC()
	if request.ID == "" {
		request.ID = utils.NanoID()
	}
	request.CreatedAt = now
	request.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[request.ID]; ok {
		return nil, fmt.Errorf("%w: blood request %s", types.ErrAlreadyExists, request.ID)
	}

	s.requests[request.ID] = request.Clone()

	return request.Clone(), nil
}

func (s *MemoryRequestStore) List(_ context.Context) ([]*types.BloodRequest, error) {
	return s.filter(func(*types.BloodRequest) bool { return true }), nil
}

func (s *MemoryRequestStore) ListByStatus(_ context.Context, status types.RequestStatus) ([]*types.BloodRequest, error) {
	return s.filter(func(r *types.BloodRequest) bool { return r.Status == status }), nil
}

func (s *MemoryRequestStore) Urgent(_ context.Context) ([]*types.BloodRequest, error) {
	return s.filter((*types.BloodRequest).IsUrgent), nil
}

func (s *MemoryRequestStore) Request(_ context.Context, requestID string) (*types.BloodRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[requestID]
	if !ok {
		return nil, types.ErrRequestNotFound
	}
	return r.Clone(), nil
}

func (s *MemoryRequestStore) UpdateStatus(_ context.Context, requestID string, status types.RequestStatus) (*types.BloodRequest, error) {
	return s.update(requestID, func(r *types.BloodRequest) {
		r.Status = status
	})
}

func (s *MemoryRequestStore) Rate(_ context.Context, requestID string, rating *float64, feedback *string) (*types.BloodRequest, error) {
	return s.update(requestID, func(r *types.BloodRequest) {
		r.Rating = rating
		r.Feedback = feedback
	})
}

func (s *MemoryRequestStore) Delete(_ context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[requestID]; !ok {
		return types.ErrRequestNotFound
	}
	delete(s.requests, requestID)
	return nil
}

func (s *MemoryRequestStore) update(requestID string, apply func(*types.BloodRequest)) (*types.BloodRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[requestID]
	if !ok {
		return nil, types.ErrRequestNotFound
	}

	apply(r)
	r.UpdatedAt = time.Now().UTC()
	// detach pointers handed in by the caller
	*r = *r.Clone()

	return r.Clone(), nil
}

// filter returns matching requests newest first.
func (s *MemoryRequestStore) filter(keep func(*types.BloodRequest) bool) []*types.BloodRequest {
	s.mu.RLock()
	out := make([]*types.BloodRequest, 0, len(s.requests))
	for _, r := range s.requests {
		if keep(r) {
			out = append(out, r.Clone())
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b *types.BloodRequest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return out
}
