package place

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel"

	"github.com/FACorreiaa/tripmate-api/internal/types"
)

// Forecaster produces a one-line weather brief for a coordinate.
type Forecaster interface {
	Brief(ctx context.Context, coord types.Coordinate) (string, bool)
}

var _ Forecaster = (*ForecastClient)(nil)

// ForecastClient reads daily temperatures from Open-Meteo.
type ForecastClient struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	days       int
}

func NewForecastClient(baseURL string, days int, httpClient *http.Client, logger *slog.Logger) *ForecastClient {
	if days <= 0 {
		days = 3
	}
	return &ForecastClient{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    baseURL,
		days:       days,
	}
}

type dailyForecast struct {
	Daily struct {
		Time    []string   `json:"time"`
		TempMax []*float64 `json:"temperature_2m_max"`
		TempMin []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (c *ForecastClient) Brief(ctx context.Context, coord types.Coordinate) (string, bool) {
	if !coord.Valid() {
		return "", false
	}
	ctx, span := otel.Tracer("ForecastClient").Start(ctx, "Brief")
	defer span.End()

	f, err := c.fetch(ctx, coord)
	if err != nil {
		c.logger.WarnContext(ctx, "Forecast lookup failed", slog.String("coordinate", coord.String()), slog.Any("error", err))
		span.RecordError(err)
		return "", false
	}
	if len(f.Daily.TempMax) == 0 || len(f.Daily.TempMin) == 0 || f.Daily.TempMax[0] == nil || f.Daily.TempMin[0] == nil {
		return "", false
	}
	return FormatBrief(*f.Daily.TempMax[0], *f.Daily.TempMin[0]), true
}

// FormatBrief renders the first forecast day, rounded to whole degrees.
func FormatBrief(high, low float64) string {
	return fmt.Sprintf("Forecast: high %d°C / low %d°C.", int(math.Round(high)), int(math.Round(low)))
}

func (c *ForecastClient) fetch(ctx context.Context, coord types.Coordinate) (*dailyForecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	params.Set("daily", "temperature_2m_max,temperature_2m_min")
	params.Set("forecast_days", strconv.Itoa(c.days))
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: forecast status %d", types.ErrBadStatus, resp.StatusCode)
	}
	var f dailyForecast
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}
	return &f, nil
}

func (c *ForecastClient) Name() string { return "open-meteo" }

func (c *ForecastClient) Check(ctx context.Context) error {
	_, err := c.fetch(ctx, types.Coordinate{Lat: 34.8697, Lon: -111.7610})
	return err
}
