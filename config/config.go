package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type RetryConfig struct {
	Attempts      int     `mapstructure:"attempts"`
	BackoffFactor float64 `mapstructure:"backoffFactor"`
}

type GeocoderConfig struct {
	URL               string        `mapstructure:"url"`
	CountrySuffix     string        `mapstructure:"countrySuffix"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requestsPerSecond"`
}

type DirectoryConfig struct {
	Provider    string        `mapstructure:"provider"`
	URL         string        `mapstructure:"url"`
	APIKey      string        `mapstructure:"apiKey"`
	Timeout     time.Duration `mapstructure:"timeout"`
	OverpassURL string        `mapstructure:"overpassURL"`
}

type EncyclopediaConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ForecastConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Days    int           `mapstructure:"days"`
}

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort           string        `mapstructure:"HTTPPort"`
		Timeout            time.Duration `mapstructure:"HTTPTimeout"`
		RateLimitPerMinute int           `mapstructure:"rateLimitPerMinute"`
		AllowedOrigins     []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Upstream struct {
		UserAgent    string             `mapstructure:"userAgent"`
		Retry        RetryConfig        `mapstructure:"retry"`
		Geocoder     GeocoderConfig     `mapstructure:"geocoder"`
		Directory    DirectoryConfig    `mapstructure:"directory"`
		Encyclopedia EncyclopediaConfig `mapstructure:"encyclopedia"`
		Forecast     ForecastConfig     `mapstructure:"forecast"`
	} `mapstructure:"upstream"`
	Cache struct {
		GeoTTL          time.Duration `mapstructure:"geoTTL"`
		DestinationsTTL time.Duration `mapstructure:"destinationsTTL"`
		PlaceTTL        time.Duration `mapstructure:"placeTTL"`
	} `mapstructure:"cache"`
	Ranking struct {
		TargetCount int `mapstructure:"targetCount"`
	} `mapstructure:"ranking"`
	Observability struct {
		ServiceName    string `mapstructure:"serviceName"`
		MetricsEnabled bool   `mapstructure:"metricsEnabled"`
	} `mapstructure:"observability"`
	Version string `mapstructure:"version"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Environment overrides: upstream.directory.apiKey -> UPSTREAM_DIRECTORY_APIKEY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("upstream.directory.apiKey", "OPEN_TRIPMAP_KEY", "UPSTREAM_DIRECTORY_APIKEY")
	_ = v.BindEnv("server.HTTPPort", "PORT", "SERVER_HTTPPORT")
	_ = v.BindEnv("mode", "APP_ENV")
	_ = v.BindEnv("version", "RENDER_GIT_COMMIT")
	v.SetDefault("version", "dev")

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	config.Upstream.Directory.APIKey = strings.TrimSpace(config.Upstream.Directory.APIKey)
	return config, nil
}
