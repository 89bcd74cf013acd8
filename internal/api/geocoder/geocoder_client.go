package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/tripmate-api/internal/cache"
	"github.com/FACorreiaa/tripmate-api/internal/types"
)

// sharedLookupTimeout bounds a lookup that is no longer tied to any request.
const sharedLookupTimeout = 30 * time.Second

var _ Geocoder = (*Client)(nil)

// Geocoder resolves free text to a coordinate. A false result means no data.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (types.Coordinate, bool)
}

// Client talks to a Nominatim compatible search endpoint.
type Client struct {
	logger        *slog.Logger
	httpClient    *http.Client
	baseURL       string
	countrySuffix string
	cache         *cache.Namespace[types.Coordinate]
	limiter       *rate.Limiter
	group         singleflight.Group
}

type Config struct {
	BaseURL           string
	CountrySuffix     string
	RequestsPerSecond float64 // <= 0 disables throttling
}

func NewClient(cfg Config, httpClient *http.Client, geoCache *cache.Namespace[types.Coordinate], logger *slog.Logger) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Client{
		logger:        logger,
		httpClient:    httpClient,
		baseURL:       cfg.BaseURL,
		countrySuffix: cfg.CountrySuffix,
		cache:         geoCache,
		limiter:       limiter,
	}
}

// Geocode returns the first match for query. Failures of any kind are logged
// and reported as a miss; they are never returned to the caller.
func (c *Client) Geocode(ctx context.Context, query string) (types.Coordinate, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return types.Coordinate{}, false
	}
	if coord, ok := c.cache.Get(q); ok {
		return coord, true
	}

	ctx, span := otel.Tracer("GeocoderClient").Start(ctx, "Geocode", trace.WithAttributes(
		attribute.String("geocode.query", q),
	))
	defer span.End()

	// Waiters share one lookup, so it must outlive the caller that started it.
	key := cache.NormalizeKey(q)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()
		return c.Lookup(lctx, q)
	})
	if err != nil {
		l := c.logger.With(slog.String("query", q))
		if errors.Is(err, types.ErrNoResult) {
			l.DebugContext(ctx, "Geocoder returned no result")
		} else {
			l.WarnContext(ctx, "Geocoder lookup failed", slog.Any("error", err))
			span.RecordError(err)
		}
		span.SetStatus(codes.Error, "no coordinate")
		return types.Coordinate{}, false
	}

	coord := v.(types.Coordinate)
	c.cache.Set(q, coord)
	span.SetStatus(codes.Ok, "coordinate resolved")
	return coord, true
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup performs one uncached search and returns the first coordinate.
func (c *Client) Lookup(ctx context.Context, query string) (types.Coordinate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return types.Coordinate{}, fmt.Errorf("geocoder throttle: %w", err)
	}

	params := url.Values{}
	params.Set("q", query+c.countrySuffix)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return types.Coordinate{}, fmt.Errorf("failed to build geocoder request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Coordinate{}, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Coordinate{}, fmt.Errorf("%w: geocoder status %d", types.ErrBadStatus, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return types.Coordinate{}, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	if len(results) == 0 {
		return types.Coordinate{}, types.ErrNoResult
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if err := errors.Join(errLat, errLon); err != nil {
		return types.Coordinate{}, fmt.Errorf("invalid geocoder coordinate: %w", err)
	}
	coord := types.Coordinate{Lat: lat, Lon: lon}
	if !coord.Valid() {
		return types.Coordinate{}, fmt.Errorf("invalid geocoder coordinate %s", coord)
	}
	return coord, nil
}

// Name and Check make the client usable by the diagnostics endpoint.
func (c *Client) Name() string { return "nominatim" }

func (c *Client) Check(ctx context.Context) error {
	_, err := c.Lookup(ctx, "Sedona")
	return err
}
