package scene

import (
	"math"

	"github.com/spacecanva/spacecanva/internal/catalog"
)

// Vec3 is a point in scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Project converts right ascension and declination (degrees) and distance
// (parsecs) to scene coordinates. The distance is capped at MaxDistance
// and then multiplied by DistanceScale.
func Project(ra, dec, dist float64, cfg Config) Vec3 {
	raRad := ra * math.Pi / 180
	decRad := dec * math.Pi / 180
	d := math.Min(dist, cfg.MaxDistance) * cfg.DistanceScale

	return Vec3{
		X: d * math.Cos(decRad) * math.Cos(raRad),
		Y: d * math.Sin(decRad),
		Z: d * math.Cos(decRad) * math.Sin(raRad),
	}
}

// Placeable reports whether p has coordinates and a distance within range.
func Placeable(p catalog.Exoplanet, cfg Config) bool {
	dist := p.Distance()
	return p.RA != nil && p.Dec != nil && dist != nil && *dist <= cfg.MaxDistance
}

// Place builds markers for planets. At most cfg.Limit planets are
// considered; entries without RA, Dec or distance, or farther than
// MaxDistance, are left out. A planet named selected is flagged.
func Place(planets []catalog.Exoplanet, cfg Config, selected string) []Marker {
	planets = catalog.Limit(planets, cfg.Limit)

	markers := make([]Marker, 0, len(planets))
	for _, p := range planets {
		if !Placeable(p, cfg) {
			continue
		}
		markers = append(markers, NewMarker(p, cfg, selected != "" && p.Name == selected))
	}
	return markers
}
