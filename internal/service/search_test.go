package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/comida-compartida/donation-service/internal/apperrors"
	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchServiceImpl_Search(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	origin := domain.Coordinates{Lat: 0, Lng: 0}

	floatPtr := func(f float64) *float64 { return &f }
	condPtr := func(c domain.FoodCondition) *domain.FoodCondition { return &c }

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Roughly 2 km and 8 km north of the origin; the third candidate never
	// geocoded and has no coordinates at all.
	nearby := domain.Publication{
		ID:        "pub-near",
		DonorName: "Panaderia La Espiga",
		FoodName:  "Rice",
		Condition: domain.ConditionNew,
		Lat:       floatPtr(0.018),
		Lng:       floatPtr(0),
		Status:    domain.PublicationAvailable,
		CreatedAt: base,
	}
	faraway := domain.Publication{
		ID:        "pub-far",
		DonorName: "Colmado Rosa",
		FoodName:  "Rice",
		Condition: domain.ConditionUsed,
		Lat:       floatPtr(0.072),
		Lng:       floatPtr(0),
		Status:    domain.PublicationAvailable,
		CreatedAt: base.Add(time.Hour),
	}
	unlocated := domain.Publication{
		ID:        "pub-unlocated",
		DonorName: "Juan Diaz",
		FoodName:  "Rice",
		Condition: domain.ConditionNew,
		Status:    domain.PublicationAvailable,
		CreatedAt: base.Add(2 * time.Hour),
	}

	allPubs := []domain.Publication{nearby, faraway, unlocated}

	testCases := []struct {
		name          string
		query         SearchQuery
		available     []domain.Publication
		expectedIDs   []string
		expectedError error
	}{
		{
			name:        "Default sort is recency, newest first",
			query:       SearchQuery{},
			available:   allPubs,
			expectedIDs: []string{"pub-unlocated", "pub-far", "pub-near"},
		},
		{
			name: "Condition and distance filters compose, unknown distance passes and ranks last",
			query: SearchQuery{
				Condition:     condPtr(domain.ConditionNew),
				MaxDistanceKm: floatPtr(5),
				Sort:          SortDistance,
				Origin:        &origin,
			},
			available:   allPubs,
			expectedIDs: []string{"pub-near", "pub-unlocated"},
		},
		{
			name: "Distance sort orders by proximity",
			query: SearchQuery{
				Sort:   SortDistance,
				Origin: &origin,
			},
			available:   allPubs,
			expectedIDs: []string{"pub-near", "pub-far", "pub-unlocated"},
		},
		{
			name: "Keyword matches food name case-insensitively",
			query: SearchQuery{
				Keyword: "RICE",
			},
			available:   []domain.Publication{nearby},
			expectedIDs: []string{"pub-near"},
		},
		{
			name: "Keyword matches donor name",
			query: SearchQuery{
				Keyword: "colmado",
			},
			available:   allPubs,
			expectedIDs: []string{"pub-far"},
		},
		{
			name: "Keyword with no match yields empty result",
			query: SearchQuery{
				Keyword: "plantains",
			},
			available:   allPubs,
			expectedIDs: []string{},
		},
		{
			name: "Max distance without origin filters nothing",
			query: SearchQuery{
				MaxDistanceKm: floatPtr(1),
			},
			available:   allPubs,
			expectedIDs: []string{"pub-unlocated", "pub-far", "pub-near"},
		},
		{
			name: "Failure: Distance sort requires an origin",
			query: SearchQuery{
				Sort: SortDistance,
			},
			expectedError: apperrors.ErrValidation,
		},
		{
			name: "Failure: Unknown sort order",
			query: SearchQuery{
				Sort: SortOrder("popularity"),
			},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pubQuery := new(PublicationQueryRepositoryMock)
			if tc.expectedError == nil {
				pubQuery.On("ListAvailable", ctx).Return(tc.available, nil)
			}

			service := NewSearchService(logger, pubQuery)

			results, err := service.Search(ctx, tc.query)

			if tc.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)

				ids := make([]string, 0, len(results))
				for _, r := range results {
					ids = append(ids, r.Publication.ID)
				}
				assert.Equal(t, tc.expectedIDs, ids)
			}

			pubQuery.AssertExpectations(t)
		})
	}
}

func TestSearchServiceImpl_Search_DistanceAnnotation(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	floatPtr := func(f float64) *float64 { return &f }

	pubQuery := new(PublicationQueryRepositoryMock)
	pubQuery.On("ListAvailable", ctx).Return([]domain.Publication{
		{ID: "pub-near", Lat: floatPtr(0.018), Lng: floatPtr(0), Status: domain.PublicationAvailable},
		{ID: "pub-unlocated", Status: domain.PublicationAvailable},
	}, nil)

	service := NewSearchService(logger, pubQuery)

	results, err := service.Search(ctx, SearchQuery{
		Sort:   SortDistance,
		Origin: &domain.Coordinates{Lat: 0, Lng: 0},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.NotNil(t, results[0].DistanceKm)
	assert.InDelta(t, 2.0, *results[0].DistanceKm, 0.05)
	assert.Nil(t, results[1].DistanceKm)
}

func TestSearchServiceImpl_Search_RepositoryError(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	pubQuery := new(PublicationQueryRepositoryMock)
	pubQuery.On("ListAvailable", ctx).Return(nil, errors.New("connection refused"))

	service := NewSearchService(logger, pubQuery)

	_, err := service.Search(ctx, SearchQuery{})
	assert.Error(t, err)
	pubQuery.AssertExpectations(t)
}
