// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service
// methods, and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/comida-compartida/donation-service/internal/apperrors"
	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/comida-compartida/donation-service/internal/service"
	"github.com/comida-compartida/donation-service/internal/validation"
	"github.com/comida-compartida/donation-service/pkg/logger/sl"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the dependencies for the HTTP server, including the logger and
// service interfaces.
type Server struct {
	log                *slog.Logger
	userService        service.UserService
	publicationService service.PublicationService
	searchService      service.SearchService
	pickupService      service.PickupService
	ratingService      service.RatingService
	statsService       service.StatsService
}

func NewServer(
	log *slog.Logger,
	us service.UserService,
	ps service.PublicationService,
	ss service.SearchService,
	pks service.PickupService,
	rs service.RatingService,
	sts service.StatsService,
) *Server {
	return &Server{
		log:                log,
		userService:        us,
		publicationService: ps,
		searchService:      ss,
		pickupService:      pks,
		ratingService:      rs,
		statsService:       sts,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)
	mux.Use(s.actorIdentity)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/users/register", s.PostUsersRegister)
	mux.Post("/users/set-role", s.PostUsersSetRole)

	mux.Post("/publications", s.PostPublications)
	mux.Get("/publications/search", s.GetPublicationsSearch)
	mux.Get("/publications/mine", s.GetPublicationsMine)
	mux.Delete("/publications/{publicationID}", s.DeletePublications)

	mux.Post("/pickups", s.PostPickups)
	mux.Post("/pickups/{requestID}/advance", s.PostPickupsAdvance)
	mux.Get("/pickups/mine", s.GetPickupsMine)

	mux.Post("/ratings", s.PostRatings)
	mux.Get("/donors/{donorID}/rating", s.GetDonorRating)

	mux.Get("/stats", s.GetStats)

	return mux
}

func (s *Server) PostUsersRegister(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostUsersRegister"

	var req registerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	user, err := s.userService.Register(r.Context(), service.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         domain.Role(req.Role),
		BusinessName: req.BusinessName,
		TaxID:        req.TaxID,
	})
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*userResponse{"user": toUserResponse(user)})
}

func (s *Server) PostUsersSetRole(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostUsersSetRole"

	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}

	var req setRoleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	if err := s.userService.SetRole(r.Context(), actor, req.UserID, domain.Role(req.Role)); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"user_id": req.UserID, "role": req.Role})
}

func (s *Server) PostPublications(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostPublications"

	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}

	var req publishRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	input := service.PublishInput{
		FoodName:    req.FoodName,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Condition:   domain.FoodCondition(req.Condition),
		Location:    req.Location,
		PhotoURL:    req.PhotoURL,
		Description: req.Description,
	}

	if req.ExpirationDate != nil {
		expiration, err := time.Parse("2006-01-02", *req.ExpirationDate)
		if err != nil {
			s.handleServiceError(w, op, fmt.Errorf("%w: invalid expiration_date", apperrors.ErrValidation))
			return
		}

		input.ExpirationDate = &expiration
	}

	pub, err := s.publicationService.Publish(r.Context(), actor, input)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*publicationResponse{"publication": toPublicationResponse(pub, nil)})
}

func (s *Server) GetPublicationsSearch(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetPublicationsSearch"

	query, err := parseSearchQuery(r)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	results, err := s.searchService.Search(r.Context(), query)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	responses := make([]*publicationResponse, len(results))
	for i, result := range results {
		pub := result.Publication
		responses[i] = toPublicationResponse(&pub, result.DistanceKm)
	}

	s.respond(w, http.StatusOK, map[string][]*publicationResponse{"publications": responses})
}

func (s *Server) GetPublicationsMine(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetPublicationsMine"

	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}

	pubs, err := s.publicationService.ListByDonor(r.Context(), actor.ID)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	responses := make([]*publicationResponse, len(pubs))
	for i := range pubs {
		responses[i] = toPublicationResponse(&pubs[i], nil)
	}

	s.respond(w, http.StatusOK, map[string][]*publicationResponse{"publications": responses})
}

func (s *Server) DeletePublications(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.DeletePublications"

	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}

	publicationID := chi.URLParam(r, "publicationID")

	if err := s.publicationService.Remove(r.Context(), actor, publicationID); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) PostPickups(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostPickups"

	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}

	var req requestPickupRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	pickup, err := s.pickupService.Request(r.Context(), actor, service.RequestPickupInput{
		PublicationID: req.PublicationID,
		PickupDate:    req.PickupDate,
		PickupTime:    req.PickupTime,
		Notes:         req.Notes,
	})
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*pickupRequestResponse{"request": toPickupRequestResponse(pickup)})
}

func (s *Server) PostPickupsAdvance(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostPickupsAdvance"

	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}

	var req advanceRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	requestID := chi.URLParam(r, "requestID")

	pickup, err := s.pickupService.Advance(r.Context(), actor, requestID, domain.RequestStatus(req.TargetStatus))
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*pickupRequestResponse{"request": toPickupRequestResponse(pickup)})
}

func (s *Server) GetPickupsMine(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetPickupsMine"

	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}

	pickups, err := s.pickupService.ListForActor(r.Context(), actor)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	responses := make([]*pickupRequestResponse, len(pickups))
	for i := range pickups {
		responses[i] = toPickupRequestResponse(&pickups[i])
	}

	s.respond(w, http.StatusOK, map[string][]*pickupRequestResponse{"requests": responses})
}

func (s *Server) PostRatings(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostRatings"

	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}

	var req rateRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	rating, err := s.ratingService.Rate(r.Context(), actor, req.DonorID, req.Stars, req.Comment)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*ratingResponse{"rating": toRatingResponse(rating)})
}

func (s *Server) GetDonorRating(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetDonorRating"

	donorID := chi.URLParam(r, "donorID")

	average, err := s.ratingService.AverageFor(r.Context(), donorID)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"donor_id": donorID,
		"average":  average,
	})
}

func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetStats"

	stats, err := s.statsService.Overview(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]int{
		"active_publications": stats.ActivePublications,
		"completed_donations": stats.CompletedDonations,
		"pending_requests":    stats.PendingRequests,
		"registered_users":    stats.RegisteredUsers,
	})
}

func parseSearchQuery(r *http.Request) (service.SearchQuery, error) {
	q := r.URL.Query()

	query := service.SearchQuery{
		Keyword: q.Get("keyword"),
		Sort:    service.SortOrder(q.Get("sort")),
	}

	if raw := q.Get("condition"); raw != "" {
		condition, err := domain.ParseFoodCondition(raw)
		if err != nil {
			return service.SearchQuery{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}

		query.Condition = &condition
	}

	if raw := q.Get("max_distance_km"); raw != "" {
		maxDistance, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxDistance < 0 {
			return service.SearchQuery{}, fmt.Errorf("%w: invalid max_distance_km '%s'", apperrors.ErrValidation, raw)
		}

		query.MaxDistanceKm = &maxDistance
	}

	rawLat, rawLng := q.Get("lat"), q.Get("lng")
	if rawLat != "" || rawLng != "" {
		lat, latErr := strconv.ParseFloat(rawLat, 64)
		lng, lngErr := strconv.ParseFloat(rawLng, 64)

		if latErr != nil || lngErr != nil {
			return service.SearchQuery{}, fmt.Errorf("%w: lat and lng must both be valid numbers", apperrors.ErrValidation)
		}

		query.Origin = &domain.Coordinates{Lat: lat, Lng: lng}
	}

	return query, nil
}

// respond is a helper function to encode data to JSON and write it to the response.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// decodeAndValidate deserializes a JSON request body into a struct and then
// runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var validationErr *validation.ValidationError

	switch {
	case errors.As(err, &validationErr):
		wrappedErr := fmt.Errorf("%w: %s", apperrors.ErrValidation, validationErr.Error())
		s.respondError(w, http.StatusBadRequest, wrappedErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, apperrors.ErrValidation):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, apperrors.ErrForbidden):
		s.respondError(w, http.StatusForbidden, "operation not permitted for this actor")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrNotEligible):
		s.respondError(w, http.StatusConflict, apperrors.ErrNotEligible.Error())
	case errors.Is(err, apperrors.ErrConflict):
		s.respondError(w, http.StatusConflict, err.Error())
	default:
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
