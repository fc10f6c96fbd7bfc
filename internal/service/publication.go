package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/comida-compartida/donation-service/internal/apperrors"
	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/comida-compartida/donation-service/internal/geocode"
	"github.com/comida-compartida/donation-service/internal/repository"
	"github.com/comida-compartida/donation-service/pkg/logger/sl"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PublishInput struct {
	FoodName       string
	Quantity       float64
	Unit           string
	Condition      domain.FoodCondition
	ExpirationDate *time.Time
	Location       string
	PhotoURL       *string
	Description    *string
}

type PublicationService interface {
	Publish(ctx context.Context, actor domain.Actor, input PublishInput) (*domain.Publication, error)
	Remove(ctx context.Context, actor domain.Actor, publicationID string) error
	ListByDonor(ctx context.Context, donorID string) ([]domain.Publication, error)
	ListAvailable(ctx context.Context) ([]domain.Publication, error)
}

type PublicationServiceImpl struct {
	db       Transactor
	sqlDB    *sqlx.DB
	log      *slog.Logger
	pubCmd   repository.PublicationCommandRepository
	pubQuery repository.PublicationQueryRepository
	users    repository.UserRepository
	resolver geocode.Resolver
}

func NewPublicationService(
	db Transactor,
	sqlDB *sqlx.DB,
	log *slog.Logger,
	pubCmd repository.PublicationCommandRepository,
	pubQuery repository.PublicationQueryRepository,
	users repository.UserRepository,
	resolver geocode.Resolver,
) *PublicationServiceImpl {
	return &PublicationServiceImpl{
		db:       db,
		sqlDB:    sqlDB,
		log:      log,
		pubCmd:   pubCmd,
		pubQuery: pubQuery,
		users:    users,
		resolver: resolver,
	}
}

func (s *PublicationServiceImpl) Publish(ctx context.Context, actor domain.Actor, input PublishInput) (*domain.Publication, error) {
	const op = "internal.service.publication.Publish"
	log := s.log.With(slog.String("op", op), slog.String("donor_id", actor.ID))

	if actor.Role != domain.RoleDonor {
		return nil, fmt.Errorf("%s: %w: only donors may publish food", op, apperrors.ErrForbidden)
	}

	if input.FoodName == "" {
		return nil, fmt.Errorf("%w: food name is required", apperrors.ErrValidation)
	}

	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", apperrors.ErrValidation)
	}

	if input.Location == "" {
		return nil, fmt.Errorf("%w: location is required", apperrors.ErrValidation)
	}

	if _, err := domain.ParseFoodCondition(string(input.Condition)); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	donor, err := s.users.GetUserByID(ctx, s.sqlDB, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get donor: %w", op, err)
	}

	pub := &domain.Publication{
		ID:             uuid.NewString(),
		DonorID:        donor.ID,
		DonorName:      donor.Name,
		DonorBusiness:  donor.BusinessName,
		FoodName:       input.FoodName,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		Condition:      input.Condition,
		ExpirationDate: input.ExpirationDate,
		LocationText:   input.Location,
		PhotoURL:       input.PhotoURL,
		Description:    input.Description,
		Status:         domain.PublicationAvailable,
		CreatedAt:      time.Now().UTC(),
	}

	// Geocoding failure is non-fatal: the publication is stored without
	// coordinates and simply sits out distance filtering and ranking.
	coords, err := s.resolver.Resolve(ctx, input.Location)
	if err != nil {
		log.Warn("geocoding failed, publishing without coordinates", sl.Err(err))
	} else if coords != nil {
		pub.Lat = &coords.Lat
		pub.Lng = &coords.Lng
	}

	err = runInTx(ctx, s.db, s.log, op, func(tx *sqlx.Tx) error {
		if err := s.pubCmd.CreatePublication(ctx, tx, pub); err != nil {
			return err
		}

		return s.users.IncrementTotalDonations(ctx, tx, donor.ID)
	})
	if err != nil {
		return nil, err
	}

	log.Info("publication created",
		slog.String("publication_id", pub.ID),
		slog.Bool("has_coordinates", pub.Coordinates() != nil),
	)

	return pub, nil
}

func (s *PublicationServiceImpl) Remove(ctx context.Context, actor domain.Actor, publicationID string) error {
	const op = "internal.service.publication.Remove"

	err := runInTx(ctx, s.db, s.log, op, func(tx *sqlx.Tx) error {
		pub, err := s.pubCmd.GetPublicationByIDWithLock(ctx, tx, publicationID)
		if err != nil {
			return fmt.Errorf("%s: failed to get publication: %w", op, err)
		}

		if actor.ID != pub.DonorID && actor.Role != domain.RoleAdministrator {
			return fmt.Errorf("%s: %w: only the owning donor or an administrator may remove a publication", op, apperrors.ErrForbidden)
		}

		return s.pubCmd.DeletePublication(ctx, tx, publicationID)
	})
	if err != nil {
		return err
	}

	s.log.Info("publication removed",
		slog.String("op", op),
		slog.String("publication_id", publicationID),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

func (s *PublicationServiceImpl) ListByDonor(ctx context.Context, donorID string) ([]domain.Publication, error) {
	const op = "internal.service.publication.ListByDonor"

	pubs, err := s.pubQuery.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list publications: %w", op, err)
	}

	return pubs, nil
}

func (s *PublicationServiceImpl) ListAvailable(ctx context.Context) ([]domain.Publication, error) {
	const op = "internal.service.publication.ListAvailable"

	pubs, err := s.pubQuery.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list available publications: %w", op, err)
	}

	return pubs, nil
}
