package container

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/FACorreiaa/tripmate-api/config"
	"github.com/FACorreiaa/tripmate-api/internal/api/chat"
	"github.com/FACorreiaa/tripmate-api/internal/api/diag"
	"github.com/FACorreiaa/tripmate-api/internal/api/geocoder"
	"github.com/FACorreiaa/tripmate-api/internal/api/place"
	"github.com/FACorreiaa/tripmate-api/internal/api/poi"
	"github.com/FACorreiaa/tripmate-api/internal/cache"
	"github.com/FACorreiaa/tripmate-api/internal/httpclient"
	"github.com/FACorreiaa/tripmate-api/internal/types"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *slog.Logger
	Cache        *cache.Cache
	Directory    poi.Directory
	POIHandler   *poi.POIHandler
	PlaceHandler *place.PlaceHandler
	ChatHandler  *chat.ChatHandler
	DiagHandler  *diag.DiagHandler
}

// NewContainer wires clients, services and handlers around one shared cache.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	up := cfg.Upstream
	newClient := func(name string, timeout time.Duration) *http.Client {
		return httpclient.New(httpclient.Options{
			Name:          name,
			UserAgent:     up.UserAgent,
			Timeout:       timeout,
			Attempts:      up.Retry.Attempts,
			BackoffFactor: up.Retry.BackoffFactor,
			Logger:        logger,
		})
	}

	store := cache.New()
	geoCache := cache.NewNamespace[types.Coordinate](store, cache.NamespaceGeo, cfg.Cache.GeoTTL)
	destCache := cache.NewNamespace[types.StateAttractions](store, cache.NamespaceDestinations, cfg.Cache.DestinationsTTL)
	placeCache := cache.NewNamespace[types.PlaceDetails](store, cache.NamespacePlace, cfg.Cache.PlaceTTL)

	// Initialize clients
	geo := geocoder.NewClient(geocoder.Config{
		BaseURL:           up.Geocoder.URL,
		CountrySuffix:     up.Geocoder.CountrySuffix,
		RequestsPerSecond: up.Geocoder.RequestsPerSecond,
	}, newClient("nominatim", up.Geocoder.Timeout), geoCache, logger.With(slog.String("component", "geocoder")))

	directory, err := newDirectory(up.Directory, newClient, logger)
	if err != nil {
		return nil, err
	}
	if !directory.Configured() {
		logger.Warn("POI directory not configured, attraction lists will be empty", slog.String("directory", directory.Name()))
	}

	encyclopedia := place.NewEncyclopediaClient(up.Encyclopedia.URL, newClient("wikipedia", up.Encyclopedia.Timeout), logger)
	forecast := place.NewForecastClient(up.Forecast.URL, up.Forecast.Days, newClient("open-meteo", up.Forecast.Timeout), logger)

	// Initialize services
	poiService := poi.NewServiceImpl(geo, directory, destCache, cfg.Ranking.TargetCount, logger.With(slog.String("component", "poi")))
	placeService := place.NewServiceImpl(encyclopedia, forecast, geo, poiService, placeCache, logger.With(slog.String("component", "place")))
	chatService := chat.NewServiceImpl(poiService, placeService, logger.With(slog.String("component", "chat")))

	checkers := []diag.Checker{encyclopedia, geo, forecast}
	if c, ok := directory.(diag.Checker); ok && directory.Configured() {
		checkers = append(checkers, c)
	}
	diagService := diag.NewDiagService(checkers, up.Directory.APIKey != "", logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Cache:        store,
		Directory:    directory,
		POIHandler:   poi.NewPOIHandler(poiService, logger),
		PlaceHandler: place.NewPlaceHandler(placeService, logger),
		ChatHandler:  chat.NewChatHandler(chatService, logger),
		DiagHandler:  diag.NewDiagHandler(diagService, cfg.Version, logger),
	}, nil
}

func newDirectory(cfg config.DirectoryConfig, newClient func(string, time.Duration) *http.Client, logger *slog.Logger) (poi.Directory, error) {
	l := logger.With(slog.String("component", "directory"))
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "opentripmap":
		return poi.NewOpenTripMapDirectory(cfg.URL, cfg.APIKey, newClient("opentripmap", cfg.Timeout), l), nil
	case "overpass":
		return poi.NewOverpassDirectory(cfg.OverpassURL, newClient("overpass", cfg.Timeout), l), nil
	default:
		return nil, fmt.Errorf("unknown directory provider %q", cfg.Provider)
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Cache != nil {
		c.Cache.Flush()
	}
}
