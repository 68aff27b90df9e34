package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bloodlink/internal/utils"
	"bloodlink/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bloodRequestTableName = "blood_requests"

var bloodRequestColumns = utils.Columns(types.BloodRequest{})

type BloodRequestRepository struct {
	pool *pgxpool.Pool
}

func NewBloodRequestRepository(pool *pgxpool.Pool) *BloodRequestRepository {
	return &BloodRequestRepository{pool: pool}
}

func (r *BloodRequestRepository) Create(ctx context.Context, request *types.BloodRequest) (*types.BloodRequest, error) {
	now := time.Now().UTC()
	if request.ID == "" {
		request.ID = utils.NanoID()
	}
	request.CreatedAt = now
	request.UpdatedAt = now

	query, args, err := psql().
		Insert(bloodRequestTableName).
		SetMap(utils.ColumnValues(request)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert blood request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to create blood request")
	}

	return request, nil
}

func (r *BloodRequestRepository) List(ctx context.Context) ([]*types.BloodRequest, error) {
	return r.selectRequests(ctx, "list blood requests", nil)
}

func (r *BloodRequestRepository) ListByStatus(ctx context.Context, status types.RequestStatus) ([]*types.BloodRequest, error) {
	return r.selectRequests(ctx, "list blood requests by status", sq.Eq{"status": status})
}

func (r *BloodRequestRepository) Urgent(ctx context.Context) ([]*types.BloodRequest, error) {
	return r.selectRequests(ctx, "list urgent blood requests", sq.Eq{
		"status":  types.RequestStatusPending,
		"urgency": []types.RequestUrgency{types.RequestUrgencyCritical, types.RequestUrgencyHigh},
	})
}

func (r *BloodRequestRepository) selectRequests(ctx context.Context, op string, where sq.Sqlizer) ([]*types.BloodRequest, error) {
	builder := psql().
		Select(bloodRequestColumns...).
		From(bloodRequestTableName).
		OrderBy("created_at DESC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s query: %w", op, err)
	}

	requests := make([]*types.BloodRequest, 0)
	err = pgxscan.Select(ctx, r.pool, &requests, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to "+op)
	}

	return requests, nil
}

func (r *BloodRequestRepository) Request(ctx context.Context, requestID string) (*types.BloodRequest, error) {
	query, args, err := psql().
		Select(bloodRequestColumns...).
		From(bloodRequestTableName).
		Where(sq.Eq{"id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate blood request query: %w", err)
	}

	var request types.BloodRequest
	err = pgxscan.Get(ctx, r.pool, &request, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrRequestNotFound
		}
		return nil, wrapDBError(err, "failed to fetch blood request")
	}

	return &request, nil
}

func (r *BloodRequestRepository) UpdateStatus(ctx context.Context, requestID string, status types.RequestStatus) (*types.BloodRequest, error) {
	return r.update(ctx, requestID, "update blood request status", map[string]any{
		"status": status,
	})
}

func (r *BloodRequestRepository) Rate(ctx context.Context, requestID string, rating *float64, feedback *string) (*types.BloodRequest, error) {
	return r.update(ctx, requestID, "rate blood request", map[string]any{
		"rating":   rating,
		"feedback": feedback,
	})
}

func (r *BloodRequestRepository) update(ctx context.Context, requestID, op string, fields map[string]any) (*types.BloodRequest, error) {
	fields["updated_at"] = time.Now().UTC()

	query, args, err := psql().
		Update(bloodRequestTableName).
		SetMap(fields).
		Where(sq.Eq{"id": requestID}).
		Suffix("RETURNING " + strings.Join(bloodRequestColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s query for request %s: %w", op, requestID, err)
	}

	var request types.BloodRequest
	err = pgxscan.Get(ctx, r.pool, &request, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrRequestNotFound
		}
		return nil, wrapDBError(err, "failed to "+op)
	}

	return &request, nil
}

func (r *BloodRequestRepository) Delete(ctx context.Context, requestID string) error {
	query, args, err := psql().
		Delete(bloodRequestTableName).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete blood request query for request %s: %w", requestID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return wrapDBError(err, "failed to delete blood request")
	}

	if tag.RowsAffected() == 0 {
		return types.ErrRequestNotFound
	}

	return nil
}
