package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"bloodlink/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// DonorStore is the donor collection. Implementations: DonorRepository
// (Postgres), MemoryDonorStore and FallbackDonorStore which picks between
// the two per call.
type DonorStore interface {
	Insert(ctx context.Context, donor *types.Donor) (*types.Donor, error)
	ListAll(ctx context.Context) ([]*types.Donor, error)
	FindByAttributes(ctx context.Context, filter types.DonorFilter) ([]*types.Donor, error)
	FindWithCoordinates(ctx context.Context, bloodGroup *types.BloodGroup) ([]*types.Donor, error)
	Donor(ctx context.Context, donorID string) (*types.Donor, error)
	SetAvailability(ctx context.Context, donorID string, available bool) (*types.Donor, error)
}

type RequestStore interface {
	Create(ctx context.Context, request *types.BloodRequest) (*types.BloodRequest, error)
	List(ctx context.Context) ([]*types.BloodRequest, error)
	ListByStatus(ctx context.Context, status types.RequestStatus) ([]*types.BloodRequest, error)
	Urgent(ctx context.Context) ([]*types.BloodRequest, error)
	Request(ctx context.Context, requestID string) (*types.BloodRequest, error)
	UpdateStatus(ctx context.Context, requestID string, status types.RequestStatus) (*types.BloodRequest, error)
	Rate(ctx context.Context, requestID string, rating *float64, feedback *string) (*types.BloodRequest, error)
	Delete(ctx context.Context, requestID string) error
}

// ConnectivityState is the slice of connectivity.Monitor the fallback stores need.
type ConnectivityState interface {
	Connected() bool
	MarkDisconnected(err error)
}

// wrapDBError tags connection-level failures with ErrBackingUnavailable so
// fallback stores can tell an outage apart from a bad query.
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if isConnectionError(err) {
		return fmt.Errorf("%s: %w: %w", msg, types.ErrBackingUnavailable, err)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", msg, types.ErrAlreadyExists, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	if pgconn.Timeout(err) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	// Class 08 is connection exception; 57P0x covers server shutdown.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0")
	}

	return strings.Contains(err.Error(), "closed pool")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type fallback struct {
	state      ConnectivityState
	logger     logrus.FieldLogger
	hasDurable bool
}

// withFallback serves op from durable while connected and from memory
// otherwise. A durable call failing with ErrBackingUnavailable flips the
// state and is retried once against memory; any other error is returned.
// A failure caused by the caller's own context ending leaves the state alone.
func withFallback[T any](ctx context.Context, f fallback, op string, durable, memory func(context.Context) (T, error)) (T, error) {
	if f.hasDurable && f.state.Connected() {
		out, err := durable(ctx)
		if err == nil || !errors.Is(err, types.ErrBackingUnavailable) {
			return out, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, fmt.Errorf("%s: %w", op, ctxErr)
		}

		f.state.MarkDisconnected(err)
		f.logger.WithError(err).WithField("op", op).Warn("durable store unavailable, serving from memory")
	}

	return memory(ctx)
}
