package mapillary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/urbanyx-service/internal/config"
	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/domain/repository"
	apperrors "github.com/urbanyx-service/internal/pkg/errors"
)

const (
	imageFields = "id,geometry,captured_at,thumb_1024_url,compass_angle"
	imageLimit  = 2000
)

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// NewMapillaryClient создает клиент Mapillary Graph API
func NewMapillaryClient(cfg *config.MapillaryConfig, logger *zap.Logger) repository.StreetImageryRepository {
	c := &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
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

type imagesResponse struct {
	Data []struct {
		ID       string `json:"id"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		CapturedAt   int64    `json:"captured_at"`
		Thumb1024URL string   `json:"thumb_1024_url"`
		CompassAngle *float64 `json:"compass_angle"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func formatBBox(b domain.BoundingBox) string {
	parts := []float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
	out := make([]string, len(parts))
	for i, v := range parts {
		out[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(out, ",")
}

// FindImages возвращает снимки внутри bbox без сортировки и фильтрации по расстоянию
func (c *client) FindImages(ctx context.Context, bbox domain.BoundingBox) ([]domain.StreetImage, error) {
	if c.accessToken == "" {
		c.logger.Warn("Mapillary access token is not configured")
		return []domain.StreetImage{}, nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	query := url.Values{}
	query.Set("fields", imageFields)
	query.Set("bbox", formatBBox(bbox))
	query.Set("limit", strconv.Itoa(imageLimit))

	c.logger.Debug("Calling Mapillary API", zap.String("bbox", query.Get("bbox")))

	query.Set("access_token", c.accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/images?"+query.Encode(), nil)
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

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Mapillary API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapillary API error: status %d: %w", resp.StatusCode, apperrors.ErrUpstreamUnavailable)
	}

	var data imagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if data.Error != nil {
		c.logger.Error("Mapillary API returned error payload",
			zap.String("type", data.Error.Type),
			zap.String("message", data.Error.Message))
		return nil, fmt.Errorf("mapillary API error: %s: %w", data.Error.Message, apperrors.ErrUpstreamUnavailable)
	}

	images := make([]domain.StreetImage, 0, len(data.Data))
	for _, img := range data.Data {
		if len(img.Geometry.Coordinates) < 2 {
			continue
		}
		image := domain.StreetImage{
			ID:           img.ID,
			Source:       "mapillary",
			Location:     domain.GeoPoint{Lat: img.Geometry.Coordinates[1], Lon: img.Geometry.Coordinates[0]},
			ThumbnailURL: img.Thumb1024URL,
			URL:          "https://www.mapillary.com/app/?pKey=" + img.ID,
		}
		if img.CompassAngle != nil {
			image.CompassAngle = *img.CompassAngle
		}
		if img.CapturedAt > 0 {
			captured := time.UnixMilli(img.CapturedAt).UTC()
			image.CapturedAt = &captured
		}
		images = append(images, image)
	}

	c.logger.Debug("Mapillary API call successful", zap.Int("images", len(images)))
	return images, nil
}
