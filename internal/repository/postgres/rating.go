package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

type RatingRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewRatingRepository(db *sqlx.DB, log *slog.Logger) *RatingRepository {
	return &RatingRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *RatingRepository) CreateRating(ctx context.Context, rating *domain.Rating) error {
	const op = "internal.repository.postgres.CreateRating"

	query, args, err := r.sq.Insert("ratings").
		Columns("id", "donor_id", "beneficiary_id", "stars", "comment", "created_at").
		Values(rating.ID, rating.DonorID, rating.BeneficiaryID, rating.Stars, rating.Comment, rating.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *RatingRepository) GetStarsForDonor(ctx context.Context, donorID string) ([]int, error) {
	const op = "internal.repository.postgres.GetStarsForDonor"

	query, args, err := r.sq.Select("stars").
		From("ratings").
		Where(sq.Eq{"donor_id": donorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var stars []int
	if err := r.db.SelectContext(ctx, &stars, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return stars, nil
}
