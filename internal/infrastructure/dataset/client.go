package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/analysis"
	"github.com/urbanyx-service/internal/config"
	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/domain/repository"
	apperrors "github.com/urbanyx-service/internal/pkg/errors"
)

const crashTypeKey = "crash_type"

type client struct {
	httpClient *http.Client
	cfg        *config.DatasetsConfig
	logger     *zap.Logger
}

// NewDatasetClient создает загрузчик GeoJSON датасетов детсадов, ДТП и школ
func NewDatasetClient(cfg *config.DatasetsConfig, logger *zap.Logger) repository.DatasetSource {
	return &client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

func (c *client) FetchKindergartens(ctx context.Context) ([]domain.Kindergarten, error) {
	fc, err := c.fetch(ctx, domain.DatasetKindergartens, c.cfg.KindergartensURL)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Kindergarten, 0, len(fc.Features))
	for i, f := range fc.Features {
		loc, ok := featureLocation(f)
		if !ok {
			continue
		}
		props := domain.TaggedRecord(f.Properties)
		name, _ := analysis.LookupString(props, analysis.NameKeys)
		result = append(result, domain.Kindergarten{
			ID:         featureID(f, i),
			Name:       name,
			Location:   loc,
			Properties: props,
		})
	}

	c.logger.Info("Kindergartens dataset fetched",
		zap.Int("features", len(fc.Features)),
		zap.Int("records", len(result)))
	return result, nil
}

func (c *client) FetchAccidents(ctx context.Context) ([]domain.AccidentRecord, error) {
	fc, err := c.fetch(ctx, domain.DatasetAccidents, c.cfg.AccidentsURL)
	if err != nil {
		return nil, err
	}

	result := make([]domain.AccidentRecord, 0, len(fc.Features))
	for i, f := range fc.Features {
		loc, ok := featureLocation(f)
		if !ok {
			continue
		}
		crashType, _ := f.Properties[crashTypeKey].(string)
		severity, weight := domain.ClassifyCrash(crashType)
		result = append(result, domain.AccidentRecord{
			ID:       featureID(f, i),
			Location: loc,
			Severity: severity,
			Weight:   weight,
		})
	}

	c.logger.Info("Accidents dataset fetched",
		zap.Int("features", len(fc.Features)),
		zap.Int("records", len(result)))
	return result, nil
}

func (c *client) FetchSchools(ctx context.Context) ([]domain.School, error) {
	fc, err := c.fetch(ctx, domain.DatasetSchools, c.cfg.SchoolsURL)
	if err != nil {
		return nil, err
	}

	result := make([]domain.School, 0, len(fc.Features))
	for i, f := range fc.Features {
		loc, ok := featureLocation(f)
		if !ok {
			continue
		}
		props := domain.TaggedRecord(f.Properties)
		name, _ := analysis.LookupString(props, analysis.NameKeys)
		result = append(result, domain.School{
			ID:         featureID(f, i),
			Name:       name,
			Location:   loc,
			Properties: props,
		})
	}

	c.logger.Info("Schools dataset fetched",
		zap.Int("features", len(fc.Features)),
		zap.Int("records", len(result)))
	return result, nil
}

func (c *client) fetch(ctx context.Context, kind domain.DatasetKind, url string) (*geojson.FeatureCollection, error) {
	if url == "" {
		return nil, fmt.Errorf("dataset %s: url is not configured", kind)
	}

	c.logger.Debug("Fetching dataset", zap.String("kind", string(kind)), zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("Failed to fetch dataset", zap.String("kind", string(kind)), zap.Error(err))
		return nil, fmt.Errorf("dataset %s: %v: %w", kind, err, apperrors.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Dataset source returned error",
			zap.String("kind", string(kind)),
			zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("dataset %s: status %d: %w", kind, resp.StatusCode, apperrors.ErrUpstreamUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: failed to read body: %w", kind, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		c.logger.Error("Failed to decode dataset", zap.String("kind", string(kind)), zap.Error(err))
		return nil, fmt.Errorf("dataset %s: failed to decode geojson: %w", kind, err)
	}
	return fc, nil
}

// featureLocation: точка как есть, для прочих геометрий - центроид
func featureLocation(f *geojson.Feature) (domain.GeoPoint, bool) {
	if f == nil || f.Geometry == nil {
		return domain.GeoPoint{}, false
	}

	var p orb.Point
	switch g := f.Geometry.(type) {
	case orb.Point:
		p = g
	case orb.MultiPoint:
		if len(g) == 0 {
			return domain.GeoPoint{}, false
		}
		p = g[0]
	default:
		if g.Dimensions() < 0 {
			return domain.GeoPoint{}, false
		}
		p, _ = planar.CentroidArea(g)
	}

	loc := domain.PointFromOrb(p)
	if !loc.Valid() || (loc.Lat == 0 && loc.Lon == 0) {
		return domain.GeoPoint{}, false
	}
	return loc, true
}

func featureID(f *geojson.Feature, index int) string {
	switch id := f.ID.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	if v, ok := f.Properties["id"]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return strconv.Itoa(index)
}
