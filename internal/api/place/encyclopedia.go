package place

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripmate-api/internal/types"
)

// Encyclopedia summarises a titled article.
type Encyclopedia interface {
	Summary(ctx context.Context, title string) (types.Enrichment, bool)
}

var _ Encyclopedia = (*EncyclopediaClient)(nil)

// EncyclopediaClient reads the Wikipedia REST page summary endpoint.
type EncyclopediaClient struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
}

func NewEncyclopediaClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *EncyclopediaClient {
	return &EncyclopediaClient{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type wikiSummary struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	Description string `json:"description"`
	Thumbnail   *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	Coordinates *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coordinates"`
}

func (c *EncyclopediaClient) Summary(ctx context.Context, title string) (types.Enrichment, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return types.Enrichment{}, false
	}
	ctx, span := otel.Tracer("EncyclopediaClient").Start(ctx, "Summary", trace.WithAttributes(
		attribute.String("encyclopedia.title", title),
	))
	defer span.End()

	l := c.logger.With(slog.String("title", title))
	ws, err := c.fetch(ctx, title)
	if errors.Is(err, types.ErrNoResult) {
		l.DebugContext(ctx, "No encyclopedia article")
		return types.Enrichment{}, false
	}
	if err != nil {
		l.WarnContext(ctx, "Encyclopedia lookup failed", slog.Any("error", err))
		span.RecordError(err)
		return types.Enrichment{}, false
	}

	e := types.Enrichment{Summary: strings.TrimSpace(ws.Extract)}
	if e.Summary == "" {
		e.Summary = strings.TrimSpace(ws.Description)
	}
	if ws.Thumbnail != nil {
		e.ImageURL = ws.Thumbnail.Source
	}
	if ws.Coordinates != nil {
		coord := types.Coordinate{Lat: ws.Coordinates.Lat, Lon: ws.Coordinates.Lon}
		if coord.Valid() {
			e.Coordinate = &coord
		}
	}
	if e.Summary == "" && e.ImageURL == "" && e.Coordinate == nil {
		l.DebugContext(ctx, "Encyclopedia returned an empty summary")
		return types.Enrichment{}, false
	}
	return e, true
}

func (c *EncyclopediaClient) fetch(ctx context.Context, title string) (*wikiSummary, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build encyclopedia request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("encyclopedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, types.ErrNoResult
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: encyclopedia status %d", types.ErrBadStatus, resp.StatusCode)
	}

	var ws wikiSummary
	if err := json.NewDecoder(resp.Body).Decode(&ws); err != nil {
		return nil, fmt.Errorf("failed to decode encyclopedia response: %w", err)
	}
	return &ws, nil
}

func (c *EncyclopediaClient) Name() string { return "wikipedia" }

func (c *EncyclopediaClient) Check(ctx context.Context) error {
	_, err := c.fetch(ctx, "Sedona")
	return err
}
