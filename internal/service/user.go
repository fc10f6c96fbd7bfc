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

// newDonorRating is the "new donor" floor every account starts with. The
// rating aggregator returns the same value for donors without ratings.
const newDonorRating = 5.0

type RegisterInput struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	Role         domain.Role
	BusinessName *string
	TaxID        *string
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	SetRole(ctx context.Context, actor domain.Actor, userID string, role domain.Role) error
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}

type UserServiceImpl struct {
	db       Transactor
	sqlDB    *sqlx.DB
	log      *slog.Logger
	users    repository.UserRepository
	resolver geocode.Resolver
}

func NewUserService(
	db Transactor,
	sqlDB *sqlx.DB,
	log *slog.Logger,
	users repository.UserRepository,
	resolver geocode.Resolver,
) *UserServiceImpl {
	return &UserServiceImpl{
		db:       db,
		sqlDB:    sqlDB,
		log:      log,
		users:    users,
		resolver: resolver,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	const op = "internal.service.user.Register"
	log := s.log.With(slog.String("op", op), slog.String("email", input.Email))

	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}

	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}

	if _, err := domain.ParseRole(string(input.Role)); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	user := &domain.User{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		Role:           input.Role,
		BusinessName:   input.BusinessName,
		TaxID:          input.TaxID,
		Rating:         newDonorRating,
		TotalDonations: 0,
		CreatedAt:      time.Now().UTC(),
	}

	// Geocoding is optional enrichment: a failed or missing resolution just
	// leaves the account without home coordinates.
	if coords := s.resolve(ctx, log, input.Address); coords != nil {
		user.Lat = &coords.Lat
		user.Lng = &coords.Lng
	}

	err := runInTx(ctx, s.db, s.log, op, func(tx *sqlx.Tx) error {
		return s.users.CreateUser(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))

	return user, nil
}

func (s *UserServiceImpl) SetRole(ctx context.Context, actor domain.Actor, userID string, role domain.Role) error {
	const op = "internal.service.user.SetRole"

	if actor.Role != domain.RoleAdministrator {
		return fmt.Errorf("%s: %w: only an administrator may reassign roles", op, apperrors.ErrForbidden)
	}

	if _, err := domain.ParseRole(string(role)); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.users.SetRole(ctx, userID, role); err != nil {
		return fmt.Errorf("%s: failed to set role: %w", op, err)
	}

	s.log.Info("role reassigned",
		slog.String("op", op),
		slog.String("user_id", userID),
		slog.String("role", string(role)),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	const op = "internal.service.user.GetByID"

	user, err := s.users.GetUserByID(ctx, s.sqlDB, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return user, nil
}

func (s *UserServiceImpl) resolve(ctx context.Context, log *slog.Logger, address string) *domain.Coordinates {
	if address == "" {
		return nil
	}

	coords, err := s.resolver.Resolve(ctx, address)
	if err != nil {
		log.Warn("geocoding failed, continuing without coordinates", sl.Err(err))
		return nil
	}

	return coords
}
