package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/comida-compartida/donation-service/internal/apperrors"
	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/comida-compartida/donation-service/internal/repository"
	"github.com/google/uuid"
)

type RatingService interface {
	Rate(ctx context.Context, actor domain.Actor, donorID string, stars int, comment *string) (*domain.Rating, error)
	AverageFor(ctx context.Context, donorID string) (float64, error)
}

type RatingServiceImpl struct {
	log      *slog.Logger
	ratings  repository.RatingRepository
	requests repository.PickupRequestRepository
}

func NewRatingService(
	log *slog.Logger,
	ratings repository.RatingRepository,
	requests repository.PickupRequestRepository,
) *RatingServiceImpl {
	return &RatingServiceImpl{
		log:      log,
		ratings:  ratings,
		requests: requests,
	}
}

// Rate appends a rating from a beneficiary to a donor. A delivered pickup
// request between the two must exist; ratings are never updated or deleted.
func (s *RatingServiceImpl) Rate(ctx context.Context, actor domain.Actor, donorID string, stars int, comment *string) (*domain.Rating, error) {
	const op = "internal.service.rating.Rate"
	log := s.log.With(
		slog.String("op", op),
		slog.String("beneficiary_id", actor.ID),
		slog.String("donor_id", donorID),
	)

	if actor.Role != domain.RoleBeneficiary {
		return nil, fmt.Errorf("%s: %w: only beneficiaries may rate donors", op, apperrors.ErrForbidden)
	}

	if stars < 1 || stars > 5 {
		return nil, fmt.Errorf("%w: stars must be between 1 and 5", apperrors.ErrValidation)
	}

	eligible, err := s.requests.ExistsDeliveredBetween(ctx, actor.ID, donorID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to check eligibility: %w", op, err)
	}

	if !eligible {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNotEligible)
	}

	rating := &domain.Rating{
		ID:            uuid.NewString(),
		DonorID:       donorID,
		BeneficiaryID: actor.ID,
		Stars:         stars,
		Comment:       comment,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.ratings.CreateRating(ctx, rating); err != nil {
		return nil, fmt.Errorf("%s: failed to create rating: %w", op, err)
	}

	log.Info("rating submitted", slog.Int("stars", stars))

	return rating, nil
}

// AverageFor folds a donor's ratings into the arithmetic mean of their stars.
// A donor without ratings gets the fixed new-donor floor of 5.0; this is a
// contract, not an empty-mean convention.
func (s *RatingServiceImpl) AverageFor(ctx context.Context, donorID string) (float64, error) {
	const op = "internal.service.rating.AverageFor"

	stars, err := s.ratings.GetStarsForDonor(ctx, donorID)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get ratings: %w", op, err)
	}

	if len(stars) == 0 {
		return newDonorRating, nil
	}

	var sum int
	for _, s := range stars {
		sum += s
	}

	return float64(sum) / float64(len(stars)), nil
}
