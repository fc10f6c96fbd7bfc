// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"

	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

// UserRepository defines the contract for user data operations.
type UserRepository interface {
	// CreateUser inserts a new user record. It returns an
	// apperrors.EmailTakenError when the email is already registered.
	CreateUser(ctx context.Context, tx *sqlx.Tx, user *domain.User) error

	// GetUserByID retrieves a user by id. The ext argument allows execution
	// within a transaction (*sqlx.Tx) or directly on a DB connection (*sqlx.DB).
	// It returns apperrors.ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error)

	// SetRole reassigns a user's role. Returns apperrors.ErrNotFound for an
	// unknown user. The permission check (administrator only) lives in the
	// service layer.
	SetRole(ctx context.Context, userID string, role domain.Role) error

	// IncrementTotalDonations bumps the donor's donation counter. Intended to
	// run inside the publish transaction.
	IncrementTotalDonations(ctx context.Context, tx *sqlx.Tx, donorID string) error
}

// PublicationQueryRepository defines read-only publication projections,
// following the CQRS split used across the write side.
type PublicationQueryRepository interface {
	// GetPublicationByID retrieves a publication without locking.
	// Returns apperrors.ErrNotFound if the publication is not found.
	GetPublicationByID(ctx context.Context, publicationID string) (*domain.Publication, error)

	// ListAvailable returns every publication still in the available status,
	// newest first. Reserved and completed publications are never returned.
	ListAvailable(ctx context.Context) ([]domain.Publication, error)

	// ListByDonor returns all publications owned by a donor, newest first,
	// regardless of status.
	ListByDonor(ctx context.Context, donorID string) ([]domain.Publication, error)
}

// PublicationCommandRepository defines the write and locking operations on
// publications. All methods are expected to be executed within a transaction.
type PublicationCommandRepository interface {
	// CreatePublication inserts a new publication record.
	CreatePublication(ctx context.Context, tx *sqlx.Tx, pub *domain.Publication) error

	// GetPublicationByIDWithLock retrieves a publication and acquires a
	// row-level lock ("FOR UPDATE"). This serializes concurrent
	// inspect-then-write mutations against the same publication.
	// It returns apperrors.ErrNotFound if the publication is not found.
	GetPublicationByIDWithLock(ctx context.Context, tx *sqlx.Tx, publicationID string) (*domain.Publication, error)

	// UpdatePublicationStatus moves a publication from the expected prior
	// status to the target one. When no row matches both id and prior status
	// it returns apperrors.ErrNotFound for an unknown id, or an
	// apperrors.TransitionError when the publication exists in another status.
	UpdatePublicationStatus(ctx context.Context, tx *sqlx.Tx, publicationID string, from, to domain.PublicationStatus) error

	// DeletePublication removes a publication record.
	// Returns apperrors.ErrNotFound when the id is unknown.
	DeletePublication(ctx context.Context, tx *sqlx.Tx, publicationID string) error
}

// PickupRequestRepository defines the contract for pickup request data.
type PickupRequestRepository interface {
	// CreateRequest inserts a new pickup request record.
	CreateRequest(ctx context.Context, tx *sqlx.Tx, req *domain.PickupRequest) error

	// GetRequestByIDWithLock retrieves a request and locks its row for the
	// duration of the transaction.
	// It returns apperrors.ErrNotFound if the request is not found.
	GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, requestID string) (*domain.PickupRequest, error)

	// UpdateRequestStatus sets the status of a request. Transition legality is
	// checked by the fulfillment service against the domain transition table.
	UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, requestID string, status domain.RequestStatus) error

	// ListForActor returns requests where the actor is either the donor or the
	// beneficiary, newest first.
	ListForActor(ctx context.Context, actorID string) ([]domain.PickupRequest, error)

	// ExistsDeliveredBetween reports whether at least one delivered request
	// links the beneficiary to the donor. Gates rating submission.
	ExistsDeliveredBetween(ctx context.Context, beneficiaryID, donorID string) (bool, error)
}

// RatingRepository defines the contract for the append-only rating log.
type RatingRepository interface {
	// CreateRating appends a rating. There is no update or delete path.
	CreateRating(ctx context.Context, rating *domain.Rating) error

	// GetStarsForDonor returns the raw star values of every rating received by
	// the donor. The aggregator folds them into the average.
	GetStarsForDonor(ctx context.Context, donorID string) ([]int, error)
}

// StatsRepository provides the aggregate counters for the overview dashboard.
type StatsRepository interface {
	GetOverview(ctx context.Context) (*domain.Stats, error)
}
