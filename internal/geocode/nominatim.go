// package geocode resolves free-text addresses to coordinates through the
// Nominatim (OpenStreetMap) search API. Resolution is best effort: the caller
// treats a miss, an error or a timeout as "no coordinates", never as a failure
// of the surrounding operation.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/comida-compartida/donation-service/internal/config"
	"github.com/comida-compartida/donation-service/internal/domain"
)

// Resolver maps an address to coordinates. A nil result with a nil error means
// the address did not resolve.
type Resolver interface {
	Resolve(ctx context.Context, address string) (*domain.Coordinates, error)
}

type NominatimResolver struct {
	baseURL   string
	userAgent string
	client    *http.Client

	// Successful lookups are cached: the original geocodes the same address on
	// every publish, and Nominatim rate-limits aggressively.
	mu    sync.RWMutex
	cache map[string]domain.Coordinates
}

func NewNominatimResolver(cfg config.Geocoder) *NominatimResolver {
	return &NominatimResolver{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		cache:     make(map[string]domain.Coordinates),
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (r *NominatimResolver) Resolve(ctx context.Context, address string) (*domain.Coordinates, error) {
	const op = "internal.geocode.Resolve"

	if address == "" {
		return nil, nil
	}

	r.mu.RLock()
	cached, ok := r.cache[address]
	r.mu.RUnlock()

	if ok {
		coords := cached
		return &coords, nil
	}

	reqURL := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", r.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid latitude '%s': %w", op, results[0].Lat, err)
	}

	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid longitude '%s': %w", op, results[0].Lon, err)
	}

	coords := domain.Coordinates{Lat: lat, Lng: lng}

	r.mu.Lock()
	r.cache[address] = coords
	r.mu.Unlock()

	return &coords, nil
}

// Disabled is a Resolver that never resolves. Used when geocoding is turned
// off in config; publications are stored without coordinates.
type Disabled struct{}

func (Disabled) Resolve(context.Context, string) (*domain.Coordinates, error) {
	return nil, nil
}
