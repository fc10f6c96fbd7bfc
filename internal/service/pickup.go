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
	"github.com/jmoiron/sqlx"
)

type RequestPickupInput struct {
	PublicationID string
	PickupDate    string
	PickupTime    string
	Notes         *string
}

type PickupService interface {
	Request(ctx context.Context, actor domain.Actor, input RequestPickupInput) (*domain.PickupRequest, error)
	Advance(ctx context.Context, actor domain.Actor, requestID string, target domain.RequestStatus) (*domain.PickupRequest, error)
	ListForActor(ctx context.Context, actor domain.Actor) ([]domain.PickupRequest, error)
}

// PickupServiceImpl is the fulfillment state machine. It is the only component
// that mutates publication status, and every inspect-then-write runs inside a
// transaction holding the publication row lock so two concurrent requests
// against the same publication cannot both succeed.
type PickupServiceImpl struct {
	db       Transactor
	log      *slog.Logger
	requests repository.PickupRequestRepository
	pubCmd   repository.PublicationCommandRepository
}

func NewPickupService(
	db Transactor,
	log *slog.Logger,
	requests repository.PickupRequestRepository,
	pubCmd repository.PublicationCommandRepository,
) *PickupServiceImpl {
	return &PickupServiceImpl{
		db:       db,
		log:      log,
		requests: requests,
		pubCmd:   pubCmd,
	}
}

func (s *PickupServiceImpl) Request(ctx context.Context, actor domain.Actor, input RequestPickupInput) (*domain.PickupRequest, error) {
	const op = "internal.service.pickup.Request"
	log := s.log.With(
		slog.String("op", op),
		slog.String("beneficiary_id", actor.ID),
		slog.String("publication_id", input.PublicationID),
	)

	if actor.Role != domain.RoleBeneficiary {
		return nil, fmt.Errorf("%s: %w: only beneficiaries may request pickups", op, apperrors.ErrForbidden)
	}

	if input.PickupDate == "" || input.PickupTime == "" {
		return nil, fmt.Errorf("%w: pickup date and time are required", apperrors.ErrValidation)
	}

	req := &domain.PickupRequest{
		ID:            uuid.NewString(),
		PublicationID: input.PublicationID,
		BeneficiaryID: actor.ID,
		PickupDate:    input.PickupDate,
		PickupTime:    input.PickupTime,
		Notes:         input.Notes,
		Status:        domain.RequestPending,
		CreatedAt:     time.Now().UTC(),
	}

	err := runInTx(ctx, s.db, s.log, op, func(tx *sqlx.Tx) error {
		pub, err := s.pubCmd.GetPublicationByIDWithLock(ctx, tx, input.PublicationID)
		if err != nil {
			return fmt.Errorf("%s: failed to get publication: %w", op, err)
		}

		if pub.Status != domain.PublicationAvailable {
			return fmt.Errorf("%s: %w", op, &apperrors.PublicationNotAvailableError{
				PublicationID: pub.ID,
				Status:        string(pub.Status),
			})
		}

		req.DonorID = pub.DonorID

		if err := s.requests.CreateRequest(ctx, tx, req); err != nil {
			return fmt.Errorf("%s: failed to create request: %w", op, err)
		}

		// Reserving inside the same transaction is what keeps at most one
		// active request per publication.
		return s.pubCmd.UpdatePublicationStatus(ctx, tx, pub.ID, domain.PublicationAvailable, domain.PublicationReserved)
	})
	if err != nil {
		return nil, err
	}

	log.Info("pickup requested", slog.String("request_id", req.ID))

	return req, nil
}

func (s *PickupServiceImpl) Advance(ctx context.Context, actor domain.Actor, requestID string, target domain.RequestStatus) (*domain.PickupRequest, error) {
	const op = "internal.service.pickup.Advance"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", requestID),
		slog.String("target", string(target)),
	)

	if _, err := domain.ParseRequestStatus(string(target)); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var req *domain.PickupRequest

	err := runInTx(ctx, s.db, s.log, op, func(tx *sqlx.Tx) error {
		var err error

		req, err = s.requests.GetRequestByIDWithLock(ctx, tx, requestID)
		if err != nil {
			return fmt.Errorf("%s: failed to get request: %w", op, err)
		}

		if actor.ID != req.DonorID {
			return fmt.Errorf("%s: %w: only the request's donor may advance it", op, apperrors.ErrForbidden)
		}

		if !req.Status.CanTransitionTo(target) {
			return fmt.Errorf("%s: %w", op, &apperrors.TransitionError{
				Entity: "pickup request",
				From:   string(req.Status),
				To:     string(target),
			})
		}

		if err := s.requests.UpdateRequestStatus(ctx, tx, requestID, target); err != nil {
			return fmt.Errorf("%s: failed to update request status: %w", op, err)
		}

		if target == domain.RequestDelivered {
			// Delivery completes the publication in the same transaction, so
			// the cascade is applied as a unit or not at all.
			err := s.pubCmd.UpdatePublicationStatus(ctx, tx, req.PublicationID, domain.PublicationReserved, domain.PublicationCompleted)
			if err != nil {
				return fmt.Errorf("%s: failed to complete publication: %w", op, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	req.Status = target

	log.Info("pickup request advanced", slog.String("status", string(req.Status)))

	return req, nil
}

func (s *PickupServiceImpl) ListForActor(ctx context.Context, actor domain.Actor) ([]domain.PickupRequest, error) {
	const op = "internal.service.pickup.ListForActor"

	reqs, err := s.requests.ListForActor(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list requests: %w", op, err)
	}

	return reqs, nil
}
