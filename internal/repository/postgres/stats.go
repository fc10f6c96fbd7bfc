package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

type StatsRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewStatsRepository(db *sqlx.DB, log *slog.Logger) *StatsRepository {
	return &StatsRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *StatsRepository) GetOverview(ctx context.Context) (*domain.Stats, error) {
	const op = "internal.repository.postgres.GetOverview"

	query := `
		SELECT
			(SELECT COUNT(1) FROM publications WHERE status = 'available') AS active_publications,
			(SELECT COUNT(1) FROM publications WHERE status = 'completed') AS completed_donations,
			(SELECT COUNT(1) FROM pickup_requests WHERE status = 'pending') AS pending_requests,
			(SELECT COUNT(1) FROM users) AS registered_users`

	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &stats, nil
}
