package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/comida-compartida/donation-service/internal/apperrors"
	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

type PickupRequestRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewPickupRequestRepository(db *sqlx.DB, log *slog.Logger) *PickupRequestRepository {
	return &PickupRequestRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var requestColumns = []string{
	"id", "publication_id", "beneficiary_id", "donor_id",
	"pickup_date", "pickup_time", "notes", "status", "created_at",
}

func (r *PickupRequestRepository) CreateRequest(ctx context.Context, tx *sqlx.Tx, req *domain.PickupRequest) error {
	const op = "internal.repository.postgres.CreateRequest"

	query, args, err := r.sq.Insert("pickup_requests").
		Columns(requestColumns...).
		Values(
			req.ID, req.PublicationID, req.BeneficiaryID, req.DonorID,
			req.PickupDate, req.PickupTime, req.Notes, req.Status, req.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *PickupRequestRepository) GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, requestID string) (*domain.PickupRequest, error) {
	const op = "internal.repository.postgres.GetRequestByIDWithLock"

	query, args, err := r.sq.Select(requestColumns...).
		From("pickup_requests").
		Where(sq.Eq{"id": requestID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var req domain.PickupRequest
	if err := tx.GetContext(ctx, &req, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: pickup request with id '%s'", op, apperrors.ErrNotFound, requestID)
		}

		return nil, fmt.Errorf("%s: failed to get request with lock: %w", op, err)
	}

	return &req, nil
}

func (r *PickupRequestRepository) UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, requestID string, status domain.RequestStatus) error {
	const op = "internal.repository.postgres.UpdateRequestStatus"

	query, args, err := r.sq.Update("pickup_requests").
		Set("status", status).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: pickup request with id '%s'", op, apperrors.ErrNotFound, requestID)
	}

	return nil
}

func (r *PickupRequestRepository) ListForActor(ctx context.Context, actorID string) ([]domain.PickupRequest, error) {
	const op = "internal.repository.postgres.ListForActor"

	query, args, err := r.sq.Select(requestColumns...).
		From("pickup_requests").
		Where(sq.Or{sq.Eq{"donor_id": actorID}, sq.Eq{"beneficiary_id": actorID}}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var reqs []domain.PickupRequest
	if err := r.db.SelectContext(ctx, &reqs, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return reqs, nil
}

func (r *PickupRequestRepository) ExistsDeliveredBetween(ctx context.Context, beneficiaryID, donorID string) (bool, error) {
	const op = "internal.repository.postgres.ExistsDeliveredBetween"

	query, args, err := r.sq.Select("COUNT(1)").
		From("pickup_requests").
		Where(sq.Eq{
			"beneficiary_id": beneficiaryID,
			"donor_id":       donorID,
			"status":         domain.RequestDelivered,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return count > 0, nil
}
