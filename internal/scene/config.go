// Package scene places catalog planets in a 3D scene: equatorial
// coordinates are projected to Cartesian space and each planet gets a
// temperature color, a radius-derived size and an optional orbit ring.
package scene

// Config controls placement and styling.
type Config struct {
	MaxDistance      float64 `json:"max_distance" yaml:"max_distance" koanf:"max_distance"`                // parsecs
	DistanceScale    float64 `json:"distance_scale" yaml:"distance_scale" koanf:"distance_scale"`          // scene units per parsec
	PlanetSizeScale  float64 `json:"planet_size_scale" yaml:"planet_size_scale" koanf:"planet_size_scale"` // scene units per Earth radius
	TemperatureColor bool    `json:"temperature_color" yaml:"temperature_color" koanf:"temperature_color"`
	OrbitLines       bool    `json:"orbit_lines" yaml:"orbit_lines" koanf:"orbit_lines"`
	Limit            int     `json:"limit" yaml:"limit" koanf:"limit"` // planets considered; 0 means all
}

// DefaultConfig returns the viewer's stock settings.
func DefaultConfig() Config {
	return Config{
		MaxDistance:      1000,
		DistanceScale:    0.1,
		PlanetSizeScale:  0.3,
		TemperatureColor: true,
		OrbitLines:       true,
		Limit:            1000,
	}
}
