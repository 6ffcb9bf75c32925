package domain

import "time"

// StreetImage - снимок уличной панорамы
type StreetImage struct {
	ID             string     `json:"id"`
	Source         string     `json:"source"`
	Location       GeoPoint   `json:"location"`
	Distance       float64    `json:"distance_m"`
	Bearing        float64    `json:"bearing"`
	Direction      string     `json:"direction"`
	ThumbnailURL   string     `json:"thumbnail_url"`
	CapturedAt     *time.Time `json:"captured_at"`
	CompassAngle   float64    `json:"compass_angle"`
	URL            string     `json:"url"`
	TargetDistance int        `json:"target_distance_m"`
}
