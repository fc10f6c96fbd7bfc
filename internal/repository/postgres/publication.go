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

type PublicationRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewPublicationRepository(db *sqlx.DB, log *slog.Logger) *PublicationRepository {
	return &PublicationRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var publicationColumns = []string{
	"id", "donor_id", "donor_name", "donor_business", "food_name", "quantity",
	"unit", "condition", "expiration_date", "location_text", "lat", "lng",
	"photo_url", "description", "status", "created_at",
}

func (r *PublicationRepository) CreatePublication(ctx context.Context, tx *sqlx.Tx, pub *domain.Publication) error {
	const op = "internal.repository.postgres.CreatePublication"

	query, args, err := r.sq.Insert("publications").
		Columns(publicationColumns...).
		Values(
			pub.ID, pub.DonorID, pub.DonorName, pub.DonorBusiness, pub.FoodName,
			pub.Quantity, pub.Unit, pub.Condition, pub.ExpirationDate,
			pub.LocationText, pub.Lat, pub.Lng, pub.PhotoURL, pub.Description,
			pub.Status, pub.CreatedAt,
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

func (r *PublicationRepository) GetPublicationByID(ctx context.Context, publicationID string) (*domain.Publication, error) {
	const op = "internal.repository.postgres.GetPublicationByID"

	query, args, err := r.sq.Select(publicationColumns...).
		From("publications").
		Where(sq.Eq{"id": publicationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var pub domain.Publication
	if err := r.db.GetContext(ctx, &pub, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: publication with id '%s'", op, apperrors.ErrNotFound, publicationID)
		}

		return nil, fmt.Errorf("%s: failed to get publication: %w", op, err)
	}

	return &pub, nil
}

func (r *PublicationRepository) GetPublicationByIDWithLock(ctx context.Context, tx *sqlx.Tx, publicationID string) (*domain.Publication, error) {
	const op = "internal.repository.postgres.GetPublicationByIDWithLock"

	query, args, err := r.sq.Select(publicationColumns...).
		From("publications").
		Where(sq.Eq{"id": publicationID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var pub domain.Publication
	if err := tx.GetContext(ctx, &pub, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: publication with id '%s'", op, apperrors.ErrNotFound, publicationID)
		}

		return nil, fmt.Errorf("%s: failed to get publication with lock: %w", op, err)
	}

	return &pub, nil
}

func (r *PublicationRepository) ListAvailable(ctx context.Context) ([]domain.Publication, error) {
	const op = "internal.repository.postgres.ListAvailable"

	query, args, err := r.sq.Select(publicationColumns...).
		From("publications").
		Where(sq.Eq{"status": domain.PublicationAvailable}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var pubs []domain.Publication
	if err := r.db.SelectContext(ctx, &pubs, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return pubs, nil
}

func (r *PublicationRepository) ListByDonor(ctx context.Context, donorID string) ([]domain.Publication, error) {
	const op = "internal.repository.postgres.ListByDonor"

	query, args, err := r.sq.Select(publicationColumns...).
		From("publications").
		Where(sq.Eq{"donor_id": donorID}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var pubs []domain.Publication
	if err := r.db.SelectContext(ctx, &pubs, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return pubs, nil
}

// UpdatePublicationStatus applies a guarded status transition. The update only
// matches a row holding the expected prior status, so a lost race surfaces as
// zero rows affected and is reported as a transition error.
func (r *PublicationRepository) UpdatePublicationStatus(ctx context.Context, tx *sqlx.Tx, publicationID string, from, to domain.PublicationStatus) error {
	const op = "internal.repository.postgres.UpdatePublicationStatus"

	query, args, err := r.sq.Update("publications").
		Set("status", to).
		Where(sq.Eq{"id": publicationID, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get rows affected: %w", op, err)
	}

	if rowsAffected == 0 {
		current, err := r.GetPublicationByIDWithLock(ctx, tx, publicationID)
		if err != nil {
			return err
		}

		return fmt.Errorf("%s: %w", op, &apperrors.TransitionError{
			Entity: "publication",
			From:   string(current.Status),
			To:     string(to),
		})
	}

	return nil
}

func (r *PublicationRepository) DeletePublication(ctx context.Context, tx *sqlx.Tx, publicationID string) error {
	const op = "internal.repository.postgres.DeletePublication"

	query, args, err := r.sq.Delete("publications").
		Where(sq.Eq{"id": publicationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: publication with id '%s'", op, apperrors.ErrNotFound, publicationID)
	}

	return nil
}
