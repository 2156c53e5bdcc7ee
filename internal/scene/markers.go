package scene

import (
	"math"

	"github.com/spacecanva/spacecanva/internal/catalog"
)

// Bucket names a temperature band.
type Bucket string

const (
	BucketUnknown   Bucket = ""
	BucketCold      Bucket = "cold"
	BucketTemperate Bucket = "temperate"
	BucketWarm      Bucket = "warm"
	BucketHot       Bucket = "hot"
)

// Band edges in Kelvin.
const (
	freezingK = 273
	boilingK  = 373
	hotK      = 1000
)

// Marker colors.
const (
	ColorCold      = "#4a90e2"
	ColorTemperate = "#7ed321"
	ColorWarm      = "#f5a623"
	ColorHot       = "#d0021b"
	ColorDefault   = "#ffffff"
)

const (
	defaultSize   = 0.3
	minSize       = 0.1
	maxSize       = 2
	selectedScale = 1.5
	orbitScale    = 0.01
	orbitWidth    = 0.01
)

// BucketFor classifies an equilibrium temperature in Kelvin.
func BucketFor(temp float64) Bucket {
	switch {
	case temp < freezingK:
		return BucketCold
	case temp < boilingK:
		return BucketTemperate
	case temp < hotK:
		return BucketWarm
	default:
		return BucketHot
	}
}

// Color returns the hex color of the bucket.
func (b Bucket) Color() string {
	switch b {
	case BucketCold:
		return ColorCold
	case BucketTemperate:
		return ColorTemperate
	case BucketWarm:
		return ColorWarm
	case BucketHot:
		return ColorHot
	default:
		return ColorDefault
	}
}

// Color returns the marker color of p: its temperature band when
// temperature coloring is on and the temperature is known, white otherwise.
func Color(p catalog.Exoplanet, cfg Config) string {
	if !cfg.TemperatureColor || p.EqTemperature == nil {
		return ColorDefault
	}
	return BucketFor(*p.EqTemperature).Color()
}

// Size returns the marker radius of p.
func Size(p catalog.Exoplanet, cfg Config) float64 {
	if p.RadiusEarth == nil {
		return defaultSize
	}
	return math.Max(minSize, math.Min(maxSize, *p.RadiusEarth*cfg.PlanetSizeScale))
}

// Ring is an orbit annulus drawn around a marker.
type Ring struct {
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

// OrbitRing returns the orbit annulus of p, or nil when orbit lines are off
// or the semi-major axis is unknown.
func OrbitRing(p catalog.Exoplanet, cfg Config) *Ring {
	if !cfg.OrbitLines || p.SemiMajorAxis == nil {
		return nil
	}
	inner := *p.SemiMajorAxis * orbitScale
	return &Ring{Inner: inner, Outer: inner + orbitWidth}
}

// Marker is one placed planet.
type Marker struct {
	Name     string   `json:"name"`
	Host     string   `json:"host"`
	Position Vec3     `json:"position"`
	Color    string   `json:"color"`
	Size     float64  `json:"size"`
	Bucket   Bucket   `json:"bucket,omitempty"`
	Orbit    *Ring    `json:"orbit,omitempty"`
	Selected bool     `json:"selected"`
	Scale    float64  `json:"scale"`
	Distance float64  `json:"distance"`
	Temp     *float64 `json:"temperature,omitempty"`
}

// NewMarker styles p. The caller must have checked Placeable.
func NewMarker(p catalog.Exoplanet, cfg Config, selected bool) Marker {
	dist := *p.Distance()
	m := Marker{
		Name:     p.Name,
		Host:     p.Host,
		Position: Project(*p.RA, *p.Dec, dist, cfg),
		Color:    Color(p, cfg),
		Size:     Size(p, cfg),
		Orbit:    OrbitRing(p, cfg),
		Selected: selected,
		Scale:    1,
		Distance: dist,
		Temp:     p.EqTemperature,
	}
	if p.EqTemperature != nil {
		m.Bucket = BucketFor(*p.EqTemperature)
	}
	if selected {
		m.Scale = selectedScale
	}
	return m
}
