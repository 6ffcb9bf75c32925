package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/urbanyx-service/internal/config"
	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/domain/repository"
	apperrors "github.com/urbanyx-service/internal/pkg/errors"
)

const mphToKmh = 1.609344

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// NewMapboxClient создает новый клиент для Directions и Isochrone API
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.DirectionsRepository {
	c := &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
	if cfg.RequestsPerSec > 0 {
		burst := int(cfg.RequestsPerSec)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), burst)
	}
	return c
}

type maxSpeed struct {
	Speed   float64 `json:"speed"`
	Unit    string  `json:"unit"`
	Unknown bool    `json:"unknown"`
	None    bool    `json:"none"`
}

type directionsResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry *geojson.Geometry `json:"geometry"`
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
		Legs     []struct {
			Annotation struct {
				MaxSpeed []maxSpeed `json:"maxspeed"`
			} `json:"annotation"`
		} `json:"legs"`
	} `json:"routes"`
}

func coordinate(p domain.GeoPoint) string {
	return strconv.FormatFloat(p.Lon, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lat, 'f', 6, 64)
}

// GetRoute возвращает маршрут с геометрией и ограничениями скорости по участкам
func (c *client) GetRoute(ctx context.Context, from, to domain.GeoPoint, mode domain.TravelMode) (*domain.Route, error) {
	path := fmt.Sprintf("/directions/v5/mapbox/%s/%s;%s", mode, coordinate(from), coordinate(to))
	query := url.Values{}
	query.Set("geometries", "geojson")
	query.Set("annotations", "maxspeed")
	query.Set("overview", "full")

	var resp directionsResponse
	if err := c.getJSON(ctx, path, query, &resp); err != nil {
		return nil, err
	}

	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		c.logger.Warn("Mapbox Directions returned no route",
			zap.String("code", resp.Code),
			zap.String("message", resp.Message),
			zap.String("mode", string(mode)))
		if resp.Code == "" || resp.Code == "Ok" || resp.Code == "NoRoute" || resp.Code == "NoSegment" {
			return nil, apperrors.ErrRouteNotFound
		}
		return nil, fmt.Errorf("mapbox API returned code %s: %w", resp.Code, apperrors.ErrUpstreamUnavailable)
	}

	r := resp.Routes[0]
	var line orb.LineString
	if r.Geometry != nil {
		if ls, ok := r.Geometry.Coordinates.(orb.LineString); ok {
			line = ls
		}
	}
	if len(line) == 0 {
		return nil, apperrors.ErrRouteNotFound
	}

	route := &domain.Route{
		Geometry:        line,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		MaxSpeedsKmh:    make([]float64, 0),
	}
	for _, leg := range r.Legs {
		for _, ms := range leg.Annotation.MaxSpeed {
			if ms.Unknown || ms.None || ms.Speed <= 0 {
				continue
			}
			speed := ms.Speed
			if ms.Unit == "mph" {
				speed *= mphToKmh
			}
			route.MaxSpeedsKmh = append(route.MaxSpeedsKmh, speed)
		}
	}

	c.logger.Debug("Mapbox Directions API call successful",
		zap.Int("points", len(line)),
		zap.Float64("distance_m", route.DistanceMeters),
		zap.Int("speed_annotations", len(route.MaxSpeedsKmh)))

	return route, nil
}

// GetIsochrone возвращает полигон зоны достижимости за minutes минут
func (c *client) GetIsochrone(ctx context.Context, center domain.GeoPoint, mode domain.TravelMode, minutes int) (*domain.Isochrone, error) {
	path := fmt.Sprintf("/isochrone/v1/mapbox/%s/%s", mode, coordinate(center))
	query := url.Values{}
	query.Set("contours_minutes", strconv.Itoa(minutes))
	query.Set("polygons", "true")

	body, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		c.logger.Error("Failed to decode isochrone", zap.Error(err))
		return nil, fmt.Errorf("failed to decode isochrone: %w", err)
	}

	for _, f := range fc.Features {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			return &domain.Isochrone{Mode: mode, Minutes: minutes, Geometry: f.Geometry}, nil
		}
	}

	c.logger.Warn("Mapbox Isochrone returned no polygon", zap.Int("features", len(fc.Features)))
	return nil, fmt.Errorf("isochrone has no polygon: %w", apperrors.ErrUpstreamUnavailable)
}

func (c *client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("Calling Mapbox API", zap.String("path", path), zap.String("query", query.Encode()))

	query.Set("access_token", c.accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %v: %w", err, apperrors.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Directions отвечает 404 с code=NoRoute, тело разбирается выше
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnprocessableEntity {
		c.logger.Warn("Mapbox API returned no result",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return body, nil
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d: %w", resp.StatusCode, apperrors.ErrUpstreamUnavailable)
	}

	return body, nil
}
