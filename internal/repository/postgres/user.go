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
	"github.com/lib/pq"
)

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var userColumns = []string{
	"id", "name", "email", "phone", "address", "lat", "lng", "role",
	"business_name", "tax_id", "rating", "total_donations", "created_at",
}

func (r *UserRepository) CreateUser(ctx context.Context, tx *sqlx.Tx, user *domain.User) error {
	const op = "internal.repository.postgres.CreateUser"

	query, args, err := r.sq.Insert("users").
		Columns(userColumns...).
		Values(
			user.ID, user.Name, user.Email, user.Phone, user.Address,
			user.Lat, user.Lng, user.Role, user.BusinessName, user.TaxID,
			user.Rating, user.TotalDonations, user.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &apperrors.EmailTakenError{Email: user.Email}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByID"

	query, args, err := r.sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := sqlx.GetContext(ctx, ext, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return &user, nil
}

func (r *UserRepository) SetRole(ctx context.Context, userID string, role domain.Role) error {
	const op = "internal.repository.postgres.SetRole"

	query, args, err := r.sq.Update("users").
		Set("role", role).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, userID)
	}

	return nil
}

func (r *UserRepository) IncrementTotalDonations(ctx context.Context, tx *sqlx.Tx, donorID string) error {
	const op = "internal.repository.postgres.IncrementTotalDonations"

	query, args, err := r.sq.Update("users").
		Set("total_donations", sq.Expr("total_donations + 1")).
		Where(sq.Eq{"id": donorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, donorID)
	}

	return nil
}
