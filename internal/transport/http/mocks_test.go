package http

import (
	"context"

	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/comida-compartida/donation-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type UserServiceMock struct {
	mock.Mock
}

var _ service.UserService = (*UserServiceMock)(nil)

func (m *UserServiceMock) Register(ctx context.Context, input service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) SetRole(ctx context.Context, actor domain.Actor, userID string, role domain.Role) error {
	args := m.Called(ctx, actor, userID, role)
	return args.Error(0)
}

func (m *UserServiceMock) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

type PublicationServiceMock struct {
	mock.Mock
}

var _ service.PublicationService = (*PublicationServiceMock)(nil)

func (m *PublicationServiceMock) Publish(ctx context.Context, actor domain.Actor, input service.PublishInput) (*domain.Publication, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Publication), args.Error(1)
}

func (m *PublicationServiceMock) Remove(ctx context.Context, actor domain.Actor, publicationID string) error {
	args := m.Called(ctx, actor, publicationID)
	return args.Error(0)
}

func (m *PublicationServiceMock) ListByDonor(ctx context.Context, donorID string) ([]domain.Publication, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Publication), args.Error(1)
}

func (m *PublicationServiceMock) ListAvailable(ctx context.Context) ([]domain.Publication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Publication), args.Error(1)
}

type SearchServiceMock struct {
	mock.Mock
}

var _ service.SearchService = (*SearchServiceMock)(nil)

func (m *SearchServiceMock) Search(ctx context.Context, query service.SearchQuery) ([]domain.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.SearchResult), args.Error(1)
}

type PickupServiceMock struct {
	mock.Mock
}

var _ service.PickupService = (*PickupServiceMock)(nil)

func (m *PickupServiceMock) Request(ctx context.Context, actor domain.Actor, input service.RequestPickupInput) (*domain.PickupRequest, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.PickupRequest), args.Error(1)
}

func (m *PickupServiceMock) Advance(ctx context.Context, actor domain.Actor, requestID string, target domain.RequestStatus) (*domain.PickupRequest, error) {
	args := m.Called(ctx, actor, requestID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.PickupRequest), args.Error(1)
}

func (m *PickupServiceMock) ListForActor(ctx context.Context, actor domain.Actor) ([]domain.PickupRequest, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.PickupRequest), args.Error(1)
}

type RatingServiceMock struct {
	mock.Mock
}

var _ service.RatingService = (*RatingServiceMock)(nil)

func (m *RatingServiceMock) Rate(ctx context.Context, actor domain.Actor, donorID string, stars int, comment *string) (*domain.Rating, error) {
	args := m.Called(ctx, actor, donorID, stars, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *RatingServiceMock) AverageFor(ctx context.Context, donorID string) (float64, error) {
	args := m.Called(ctx, donorID)
	return args.Get(0).(float64), args.Error(1)
}

type StatsServiceMock struct {
	mock.Mock
}

var _ service.StatsService = (*StatsServiceMock)(nil)

func (m *StatsServiceMock) Overview(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Stats), args.Error(1)
}
