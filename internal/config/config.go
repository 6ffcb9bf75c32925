package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Datasets  DatasetsConfig
	Mapbox    MapboxConfig
	Mapillary MapillaryConfig
	Overpass  OverpassConfig
	Analysis  AnalysisConfig
}

type ServerConfig struct {
	Host                 string
	Port                 int
	Env                  string
	SlowRequestThreshold time.Duration
	AllowOrigins         string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	OverpassTTL  time.Duration
	MapillaryTTL time.Duration
	IsochroneTTL time.Duration
}

type LogConfig struct {
	Level string
}

// DatasetsConfig - источники GeoJSON датасетов (детсады, ДТП, школы)
type DatasetsConfig struct {
	KindergartensURL string
	AccidentsURL     string
	SchoolsURL       string
	Timeout          time.Duration
	RefreshInterval  time.Duration
}

type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec float64
}

type MapillaryConfig struct {
	AccessToken    string
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec float64
}

type OverpassConfig struct {
	Endpoint    string
	Timeout     time.Duration
	MaxParallel int
}

// AnalysisConfig - параметры пространственного анализа маршрутов и окружения
type AnalysisConfig struct {
	SegmentBufferMeters   float64
	DangerousWeight       float64
	PlaygroundRadiusMeter int
}

func setDefaults() {
	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_ENV", "development")
	viper.SetDefault("API_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("SLOW_REQUEST_THRESHOLD_MS", 200)
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)

	viper.SetDefault("CACHE_OVERPASS_TTL", 3600)
	viper.SetDefault("CACHE_MAPILLARY_TTL", 3600)
	viper.SetDefault("CACHE_ISOCHRONE_TTL", 900)

	viper.SetDefault("DATASET_KINDERGARTENS_URL", "https://raw.githubusercontent.com/gkankia/kindergarten-tbilisi/main/kindergartens_tbilisi_1.geojson")
	viper.SetDefault("DATASET_ACCIDENTS_URL", "https://raw.githubusercontent.com/axis-Z/urbanyxv1/main/data/car_crashes.geojson")
	viper.SetDefault("DATASET_SCHOOLS_URL", "https://raw.githubusercontent.com/axis-Z/urbanyxv1/main/data/schools.geojson")
	viper.SetDefault("DATASET_TIMEOUT", 30)
	viper.SetDefault("DATASET_REFRESH_INTERVAL", 0)

	viper.SetDefault("MAPBOX_BASE_URL", "https://api.mapbox.com")
	viper.SetDefault("MAPBOX_REQUEST_TIMEOUT", 15)
	viper.SetDefault("MAPBOX_REQUESTS_PER_SEC", 5)

	viper.SetDefault("MAPILLARY_BASE_URL", "https://graph.mapillary.com")
	viper.SetDefault("MAPILLARY_REQUEST_TIMEOUT", 15)
	viper.SetDefault("MAPILLARY_REQUESTS_PER_SEC", 2)

	viper.SetDefault("OVERPASS_ENDPOINT", "https://overpass-api.de/api/interpreter")
	viper.SetDefault("OVERPASS_TIMEOUT", 25)
	viper.SetDefault("OVERPASS_MAX_PARALLEL", 2)

	viper.SetDefault("ANALYSIS_SEGMENT_BUFFER_M", 20)
	viper.SetDefault("ANALYSIS_DANGEROUS_WEIGHT", 4)
	viper.SetDefault("ANALYSIS_PLAYGROUND_RADIUS_M", 500)
}

func Load() (*Config, error) {
	setDefaults()
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env необязателен: без него работаем на переменных окружения
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:                 viper.GetString("API_HOST"),
			Port:                 viper.GetInt("API_PORT"),
			Env:                  viper.GetString("API_ENV"),
			SlowRequestThreshold: time.Duration(viper.GetInt("SLOW_REQUEST_THRESHOLD_MS")) * time.Millisecond,
			AllowOrigins:         viper.GetString("API_ALLOW_ORIGINS"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			OverpassTTL:  time.Duration(viper.GetInt("CACHE_OVERPASS_TTL")) * time.Second,
			MapillaryTTL: time.Duration(viper.GetInt("CACHE_MAPILLARY_TTL")) * time.Second,
			IsochroneTTL: time.Duration(viper.GetInt("CACHE_ISOCHRONE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Datasets: DatasetsConfig{
			KindergartensURL: viper.GetString("DATASET_KINDERGARTENS_URL"),
			AccidentsURL:     viper.GetString("DATASET_ACCIDENTS_URL"),
			SchoolsURL:       viper.GetString("DATASET_SCHOOLS_URL"),
			Timeout:          time.Duration(viper.GetInt("DATASET_TIMEOUT")) * time.Second,
			RefreshInterval:  time.Duration(viper.GetInt("DATASET_REFRESH_INTERVAL")) * time.Second,
		},
		Mapbox: MapboxConfig{
			AccessToken:    viper.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        viper.GetString("MAPBOX_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("MAPBOX_REQUEST_TIMEOUT")) * time.Second,
			RequestsPerSec: viper.GetFloat64("MAPBOX_REQUESTS_PER_SEC"),
		},
		Mapillary: MapillaryConfig{
			AccessToken:    viper.GetString("MAPILLARY_ACCESS_TOKEN"),
			BaseURL:        viper.GetString("MAPILLARY_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("MAPILLARY_REQUEST_TIMEOUT")) * time.Second,
			RequestsPerSec: viper.GetFloat64("MAPILLARY_REQUESTS_PER_SEC"),
		},
		Overpass: OverpassConfig{
			Endpoint:    viper.GetString("OVERPASS_ENDPOINT"),
			Timeout:     time.Duration(viper.GetInt("OVERPASS_TIMEOUT")) * time.Second,
			MaxParallel: viper.GetInt("OVERPASS_MAX_PARALLEL"),
		},
		Analysis: AnalysisConfig{
			SegmentBufferMeters:   viper.GetFloat64("ANALYSIS_SEGMENT_BUFFER_M"),
			DangerousWeight:       viper.GetFloat64("ANALYSIS_DANGEROUS_WEIGHT"),
			PlaygroundRadiusMeter: viper.GetInt("ANALYSIS_PLAYGROUND_RADIUS_M"),
		},
	}

	if cfg.Mapbox.AccessToken == "" {
		return nil, fmt.Errorf("MAPBOX_ACCESS_TOKEN is required")
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Addr - host:port для go-redis
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
