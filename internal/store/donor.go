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

const donorTableName = "donors"

var donorColumns = utils.Columns(types.Donor{})

type DonorRepository struct {
	pool *pgxpool.Pool
}

func NewDonorRepository(pool *pgxpool.Pool) *DonorRepository {
	return &DonorRepository{pool: pool}
}

func (r *DonorRepository) Insert(ctx context.Context, donor *types.Donor) (*types.Donor, error) {
	now := time.Now().UTC()
	if donor.ID == "" {
		donor.ID = utils.NanoID()
	}
	donor.CreatedAt = now
	donor.UpdatedAt = now

	query, args, err := psql().
		Insert(donorTableName).
		SetMap(utils.ColumnValues(donor)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert donor query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to insert donor")
	}

	return donor, nil
}

func (r *DonorRepository) ListAll(ctx context.Context) ([]*types.Donor, error) {
	return r.selectDonors(ctx, "list donors", nil)
}

func (r *DonorRepository) FindByAttributes(ctx context.Context, filter types.DonorFilter) ([]*types.Donor, error) {
	where := sq.Eq{}
	if filter.BloodGroup != nil {
		where["blood_group"] = *filter.BloodGroup
	}
	if filter.City != nil {
		where["city"] = *filter.City
	}

	if len(where) == 0 {
		return r.selectDonors(ctx, "search donors", nil)
	}

	return r.selectDonors(ctx, "search donors", where)
}

func (r *DonorRepository) FindWithCoordinates(ctx context.Context, bloodGroup *types.BloodGroup) ([]*types.Donor, error) {
	where := sq.And{
		sq.NotEq{"latitude": nil},
		sq.NotEq{"longitude": nil},
	}
	if bloodGroup != nil {
		where = append(where, sq.Eq{"blood_group": *bloodGroup})
	}

	return r.selectDonors(ctx, "find located donors", where)
}

func (r *DonorRepository) selectDonors(ctx context.Context, op string, where sq.Sqlizer) ([]*types.Donor, error) {
	builder := psql().
		Select(donorColumns...).
		From(donorTableName).
		OrderBy("created_at ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s query: %w", op, err)
	}

	donors := make([]*types.Donor, 0)
	err = pgxscan.Select(ctx, r.pool, &donors, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to "+op)
	}

	return donors, nil
}

func (r *DonorRepository) Donor(ctx context.Context, donorID string) (*types.Donor, error) {
	query, args, err := psql().
		Select(donorColumns...).
		From(donorTableName).
		Where(sq.Eq{"id": donorID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donor query: %w", err)
	}

	var donor types.Donor
	err = pgxscan.Get(ctx, r.pool, &donor, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonorNotFound
		}
		return nil, wrapDBError(err, "failed to fetch donor")
	}

	return &donor, nil
}

func (r *DonorRepository) SetAvailability(ctx context.Context, donorID string, available bool) (*types.Donor, error) {
	query, args, err := psql().
		Update(donorTableName).
		Set("is_available", available).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": donorID}).
		Suffix("RETURNING " + strings.Join(donorColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update donor availability query for donor %s: %w", donorID, err)
	}

	var donor types.Donor
	err = pgxscan.Get(ctx, r.pool, &donor, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonorNotFound
		}
		return nil, wrapDBError(err, "failed to update donor availability")
	}

	return &donor, nil
}
