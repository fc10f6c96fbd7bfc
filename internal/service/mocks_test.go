package service

import (
	"context"
	"database/sql"

	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/comida-compartida/donation-service/internal/geocode"
	"github.com/comida-compartida/donation-service/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) CreateUser(ctx context.Context, tx *sqlx.Tx, user *domain.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error) {
	args := m.Called(ctx, ext, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) SetRole(ctx context.Context, userID string, role domain.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *UserRepositoryMock) IncrementTotalDonations(ctx context.Context, tx *sqlx.Tx, donorID string) error {
	args := m.Called(ctx, tx, donorID)
	return args.Error(0)
}

type PublicationQueryRepositoryMock struct {
	mock.Mock
}

var _ repository.PublicationQueryRepository = (*PublicationQueryRepositoryMock)(nil)

func (m *PublicationQueryRepositoryMock) GetPublicationByID(ctx context.Context, publicationID string) (*domain.Publication, error) {
	args := m.Called(ctx, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Publication), args.Error(1)
}

func (m *PublicationQueryRepositoryMock) ListAvailable(ctx context.Context) ([]domain.Publication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Publication), args.Error(1)
}

func (m *PublicationQueryRepositoryMock) ListByDonor(ctx context.Context, donorID string) ([]domain.Publication, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Publication), args.Error(1)
}

type PublicationCommandRepositoryMock struct {
	mock.Mock
}

var _ repository.PublicationCommandRepository = (*PublicationCommandRepositoryMock)(nil)

func (m *PublicationCommandRepositoryMock) CreatePublication(ctx context.Context, tx *sqlx.Tx, pub *domain.Publication) error {
	args := m.Called(ctx, tx, pub)
	return args.Error(0)
}

func (m *PublicationCommandRepositoryMock) GetPublicationByIDWithLock(ctx context.Context, tx *sqlx.Tx, publicationID string) (*domain.Publication, error) {
	args := m.Called(ctx, tx, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Publication), args.Error(1)
}

func (m *PublicationCommandRepositoryMock) UpdatePublicationStatus(ctx context.Context, tx *sqlx.Tx, publicationID string, from, to domain.PublicationStatus) error {
	args := m.Called(ctx, tx, publicationID, from, to)
	return args.Error(0)
}

func (m *PublicationCommandRepositoryMock) DeletePublication(ctx context.Context, tx *sqlx.Tx, publicationID string) error {
	args := m.Called(ctx, tx, publicationID)
	return args.Error(0)
}

type PickupRequestRepositoryMock struct {
	mock.Mock
}

var _ repository.PickupRequestRepository = (*PickupRequestRepositoryMock)(nil)

func (m *PickupRequestRepositoryMock) CreateRequest(ctx context.Context, tx *sqlx.Tx, req *domain.PickupRequest) error {
	args := m.Called(ctx, tx, req)
	return args.Error(0)
}

func (m *PickupRequestRepositoryMock) GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, requestID string) (*domain.PickupRequest, error) {
	args := m.Called(ctx, tx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.PickupRequest), args.Error(1)
}

func (m *PickupRequestRepositoryMock) UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, requestID string, status domain.RequestStatus) error {
	args := m.Called(ctx, tx, requestID, status)
	return args.Error(0)
}

func (m *PickupRequestRepositoryMock) ListForActor(ctx context.Context, actorID string) ([]domain.PickupRequest, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.PickupRequest), args.Error(1)
}

func (m *PickupRequestRepositoryMock) ExistsDeliveredBetween(ctx context.Context, beneficiaryID, donorID string) (bool, error) {
	args := m.Called(ctx, beneficiaryID, donorID)
	return args.Bool(0), args.Error(1)
}

type RatingRepositoryMock struct {
	mock.Mock
}

var _ repository.RatingRepository = (*RatingRepositoryMock)(nil)

func (m *RatingRepositoryMock) CreateRating(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *RatingRepositoryMock) GetStarsForDonor(ctx context.Context, donorID string) ([]int, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]int), args.Error(1)
}

type StatsRepositoryMock struct {
	mock.Mock
}

var _ repository.StatsRepository = (*StatsRepositoryMock)(nil)

func (m *StatsRepositoryMock) GetOverview(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Stats), args.Error(1)
}

type ResolverMock struct {
	mock.Mock
}

var _ geocode.Resolver = (*ResolverMock)(nil)

func (m *ResolverMock) Resolve(ctx context.Context, address string) (*domain.Coordinates, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Coordinates), args.Error(1)
}

type TransactorMock struct {
	mock.Mock
}

var _ Transactor = (*TransactorMock)(nil)

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}
