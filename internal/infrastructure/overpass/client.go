package overpass

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/serjvanilla/go-overpass"
	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/config"
	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/domain/repository"
	apperrors "github.com/urbanyx-service/internal/pkg/errors"
)

const playgroundQuery = `[out:json][timeout:25];
(
  way["leisure"="playground"](around:%[1]d,%[2]s,%[3]s);
  node["leisure"="playground"](around:%[1]d,%[2]s,%[3]s);
  way["leisure"="park"](around:%[1]d,%[2]s,%[3]s);
  node["playground"](around:%[1]d,%[2]s,%[3]s);
  way["amenity"="kindergarten"]["playground"="yes"](around:%[1]d,%[2]s,%[3]s);
);
out body;
>;
out skel qt;`

type client struct {
	client *overpass.Client
	logger *zap.Logger
}

// NewOverpassClient создает клиент Overpass API для поиска площадок
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.PlaygroundRepository {
	maxParallel := cfg.MaxParallel
	if maxParallel <= 0 {
		maxParallel = 2
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	c := overpass.NewWithSettings(cfg.Endpoint, maxParallel, httpClient)
	return &client{
		client: &c,
		logger: logger,
	}
}

// BuildPlaygroundQuery - запрос площадок, парков и садов с площадкой в радиусе от точки
func BuildPlaygroundQuery(center domain.GeoPoint, radiusMeters int) string {
	return fmt.Sprintf(playgroundQuery,
		radiusMeters,
		strconv.FormatFloat(center.Lat, 'f', 6, 64),
		strconv.FormatFloat(center.Lon, 'f', 6, 64))
}

func (c *client) FindPlaygrounds(ctx context.Context, center domain.GeoPoint, radiusMeters int) ([]domain.OSMElement, error) {
	query := BuildPlaygroundQuery(center, radiusMeters)

	c.logger.Debug("Calling Overpass API",
		zap.Float64("lat", center.Lat),
		zap.Float64("lon", center.Lon),
		zap.Int("radius_m", radiusMeters))

	type queryResult struct {
		result overpass.Result
		err    error
	}
	done := make(chan queryResult, 1)
	go func() {
		res, err := c.client.Query(query)
		done <- queryResult{result: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case qr := <-done:
		if qr.err != nil {
			c.logger.Error("Overpass query failed", zap.Error(qr.err))
			return nil, fmt.Errorf("overpass query failed: %v: %w", qr.err, apperrors.ErrUpstreamUnavailable)
		}
		elements := convertToOSMElements(&qr.result)
		c.logger.Debug("Overpass API call successful", zap.Int("elements", len(elements)))
		return elements, nil
	}
}

// convertToOSMElements переводит результат в плоский список; путь получает
// среднюю точку своих узлов, пути без узлов пропускаются
func convertToOSMElements(result *overpass.Result) []domain.OSMElement {
	elements := make([]domain.OSMElement, 0, len(result.Nodes)+len(result.Ways))

	for _, node := range result.Nodes {
		if node == nil {
			continue
		}
		elements = append(elements, domain.OSMElement{
			ID:       node.ID,
			Type:     string(overpass.ElementTypeNode),
			Location: domain.GeoPoint{Lat: node.Lat, Lon: node.Lon},
			Tags:     node.Tags,
		})
	}

	for _, way := range result.Ways {
		if way == nil {
			continue
		}
		var lat, lon float64
		count := 0
		for _, node := range way.Nodes {
			if node == nil {
				continue
			}
			lat += node.Lat
			lon += node.Lon
			count++
		}
		if count == 0 {
			continue
		}
		elements = append(elements, domain.OSMElement{
			ID:       way.ID,
			Type:     string(overpass.ElementTypeWay),
			Location: domain.GeoPoint{Lat: lat / float64(count), Lon: lon / float64(count)},
			Tags:     way.Tags,
		})
	}

	sort.Slice(elements, func(i, j int) bool {
		if elements[i].Type != elements[j].Type {
			return elements[i].Type < elements[j].Type
		}
		return elements[i].ID < elements[j].ID
	})
	return elements
}
