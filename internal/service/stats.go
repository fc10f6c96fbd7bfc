package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/comida-compartida/donation-service/internal/repository"
)

type StatsService interface {
	Overview(ctx context.Context) (*domain.Stats, error)
}

type StatsServiceImpl struct {
	log   *slog.Logger
	stats repository.StatsRepository
}

func NewStatsService(log *slog.Logger, stats repository.StatsRepository) *StatsServiceImpl {
	return &StatsServiceImpl{
		log:   log,
		stats: stats,
	}
}

func (s *StatsServiceImpl) Overview(ctx context.Context) (*domain.Stats, error) {
	const op = "internal.service.stats.Overview"

	stats, err := s.stats.GetOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get overview: %w", op, err)
	}

	return stats, nil
}
