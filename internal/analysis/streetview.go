package analysis

import (
	"sort"

	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/pkg/utils"
)

const (
	// StreetViewBufferDegrees - половина стороны bbox поиска (~250 м)
	StreetViewBufferDegrees = 0.0025

	StreetViewMinDistance = 30.0
	StreetViewMaxDistance = 270.0

	// минимальное расстояние между выбранными снимками, м
	streetViewSeparation = 30.0
	streetViewMaxImages  = 5
)

// StreetViewTargets - опорные расстояния, к ближайшему из которых привязывается снимок
var StreetViewTargets = []int{50, 100, 150, 200, 250}

type distanceRange struct {
	min, max float64
}

var streetViewRanges = []distanceRange{
	{25, 75},
	{75, 125},
	{125, 175},
	{175, 225},
	{225, 275},
}

// StreetViewBounds - bbox вокруг точки для запроса снимков
func StreetViewBounds(center domain.GeoPoint) domain.BoundingBox {
	return domain.BoundingBox{
		MinLat: center.Lat - StreetViewBufferDegrees,
		MinLon: center.Lon - StreetViewBufferDegrees,
		MaxLat: center.Lat + StreetViewBufferDegrees,
		MaxLon: center.Lon + StreetViewBufferDegrees,
	}
}

// PrepareStreetImages дополняет сырые снимки расстоянием, азимутом и ссылкой,
// оставляя только те, что на 30..270 м от центра. Результат отсортирован по расстоянию.
func PrepareStreetImages(center domain.GeoPoint, raw []domain.StreetImage) []domain.StreetImage {
	images := make([]domain.StreetImage, 0, len(raw))
	for _, img := range raw {
		img.Distance = utils.DistanceMeters(center.Lat, center.Lon, img.Location.Lat, img.Location.Lon)
		if img.Distance < StreetViewMinDistance || img.Distance > StreetViewMaxDistance {
			continue
		}
		img.Bearing = utils.BearingDegrees(center.Lat, center.Lon, img.Location.Lat, img.Location.Lon)
		img.Direction = string(utils.CardinalDirection(img.Bearing))
		img.TargetDistance = nearestTarget(img.Distance)
		if img.Source == "" {
			img.Source = "mapillary"
		}
		if img.URL == "" && img.Source == "mapillary" {
			img.URL = "https://www.mapillary.com/app/?pKey=" + img.ID
		}
		images = append(images, img)
	}
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Distance < images[j].Distance
	})
	return images
}

func nearestTarget(distance float64) int {
	best := StreetViewTargets[0]
	for _, t := range StreetViewTargets[1:] {
		if abs(float64(t)-distance) < abs(float64(best)-distance) {
			best = t
		}
	}
	return best
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// SelectStreetImages выбирает до пяти снимков: сначала по одному на каждый
// диапазон расстояний, затем добирает ближайшими. Любые два выбранных снимка
// находятся не ближе 30 м друг к другу. images должны быть отсортированы по расстоянию.
func SelectStreetImages(images []domain.StreetImage) []domain.StreetImage {
	selected := make([]domain.StreetImage, 0, streetViewMaxImages)

	farEnough := func(c domain.StreetImage) bool {
		for _, s := range selected {
			if utils.DistanceMeters(s.Location.Lat, s.Location.Lon, c.Location.Lat, c.Location.Lon) < streetViewSeparation {
				return false
			}
		}
		return true
	}

	for _, r := range streetViewRanges {
		for _, c := range images {
			if c.Distance < r.min || c.Distance > r.max {
				continue
			}
			if farEnough(c) {
				selected = append(selected, c)
				break
			}
		}
	}

	for _, c := range images {
		if len(selected) >= streetViewMaxImages {
			break
		}
		if farEnough(c) {
			selected = append(selected, c)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Distance < selected[j].Distance
	})
	return selected
}
