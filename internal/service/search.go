package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/comida-compartida/donation-service/internal/apperrors"
	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/comida-compartida/donation-service/internal/geo"
	"github.com/comida-compartida/donation-service/internal/repository"
)

type SortOrder string

const (
	SortRecency  SortOrder = "recency"
	SortDistance SortOrder = "distance"
)

type SearchQuery struct {
	Keyword       string
	Condition     *domain.FoodCondition
	MaxDistanceKm *float64
	Sort          SortOrder
	Origin        *domain.Coordinates
}

type SearchService interface {
	Search(ctx context.Context, query SearchQuery) ([]domain.SearchResult, error)
}

type SearchServiceImpl struct {
	log      *slog.Logger
	pubQuery repository.PublicationQueryRepository
}

func NewSearchService(log *slog.Logger, pubQuery repository.PublicationQueryRepository) *SearchServiceImpl {
	return &SearchServiceImpl{
		log:      log,
		pubQuery: pubQuery,
	}
}

// Search answers "what is available near me". Only available publications are
// discoverable; candidates without coordinates carry an unknown distance, pass
// every distance filter and rank after all known distances. The result is
// recomputed on every call, there is no incremental index.
func (s *SearchServiceImpl) Search(ctx context.Context, query SearchQuery) ([]domain.SearchResult, error) {
	const op = "internal.service.search.Search"

	if query.Sort == "" {
		query.Sort = SortRecency
	}

	if query.Sort != SortRecency && query.Sort != SortDistance {
		return nil, fmt.Errorf("%w: unknown sort order '%s'", apperrors.ErrValidation, query.Sort)
	}

	if query.Sort == SortDistance && query.Origin == nil {
		return nil, fmt.Errorf("%w: distance sort requires an origin", apperrors.ErrValidation)
	}

	pubs, err := s.pubQuery.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list available publications: %w", op, err)
	}

	results := make([]domain.SearchResult, 0, len(pubs))
	for _, pub := range pubs {
		result := domain.SearchResult{Publication: pub}

		if query.Origin != nil {
			if coords := pub.Coordinates(); coords != nil {
				d := geo.DistanceKm(*query.Origin, *coords)
				result.DistanceKm = &d
			}
		}

		if !matches(result, query) {
			continue
		}

		results = append(results, result)
	}

	sortResults(results, query.Sort)

	return results, nil
}

// matches applies the filters in order: keyword, condition, max distance.
func matches(result domain.SearchResult, query SearchQuery) bool {
	pub := result.Publication

	if query.Keyword != "" {
		keyword := strings.ToLower(query.Keyword)
		foodName := strings.ToLower(pub.FoodName)
		donorName := strings.ToLower(pub.DonorName)

		if !strings.Contains(foodName, keyword) && !strings.Contains(donorName, keyword) {
			return false
		}
	}

	if query.Condition != nil && pub.Condition != *query.Condition {
		return false
	}

	// Unknown distance always passes the distance filter.
	if query.MaxDistanceKm != nil && result.DistanceKm != nil && *result.DistanceKm > *query.MaxDistanceKm {
		return false
	}

	return true
}

func sortResults(results []domain.SearchResult, order SortOrder) {
	switch order {
	case SortDistance:
		sort.SliceStable(results, func(i, j int) bool {
			return distanceOrInf(results[i]) < distanceOrInf(results[j])
		})
	case SortRecency:
		fallthrough
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Publication.CreatedAt.After(results[j].Publication.CreatedAt)
		})
	}
}

// distanceOrInf ranks unknown-distance candidates after every known one.
func distanceOrInf(r domain.SearchResult) float64 {
	if r.DistanceKm == nil {
		return math.Inf(1)
	}

	return *r.DistanceKm
}
