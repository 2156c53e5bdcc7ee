// Package catalog fetches and filters exoplanet records from the archive proxy.
package catalog

// StatusConfirmed is the planet status of confirmed detections.
const StatusConfirmed = "Confirmed"

// Exoplanet is one catalog row. Optional numeric columns are pointers so a
// zero value can be told apart from a missing one.
type Exoplanet struct {
	Name   string `mapstructure:"pl_name" json:"pl_name"`
	Host   string `mapstructure:"hostname" json:"hostname"`
	Status string `mapstructure:"pl_status" json:"pl_status,omitempty"`

	OrbitalPeriod  *float64 `mapstructure:"pl_orbper" json:"pl_orbper,omitempty"`
	SemiMajorAxis  *float64 `mapstructure:"pl_orbsmax" json:"pl_orbsmax,omitempty"`
	Eccentricity   *float64 `mapstructure:"pl_orbeccen" json:"pl_orbeccen,omitempty"`
	RadiusEarth    *float64 `mapstructure:"pl_rade" json:"pl_rade,omitempty"`
	RadiusJupiter  *float64 `mapstructure:"pl_radj" json:"pl_radj,omitempty"`
	MassEarth      *float64 `mapstructure:"pl_masse" json:"pl_masse,omitempty"`
	MassJupiter    *float64 `mapstructure:"pl_massj" json:"pl_massj,omitempty"`
	EqTemperature  *float64 `mapstructure:"pl_eqt" json:"pl_eqt,omitempty"`
	Insolation     *float64 `mapstructure:"pl_insol" json:"pl_insol,omitempty"`
	Density        *float64 `mapstructure:"pl_dens" json:"pl_dens,omitempty"`
	Locale         string   `mapstructure:"pl_locale" json:"pl_locale,omitempty"`
	DiscMethod     string   `mapstructure:"pl_discmethod" json:"pl_discmethod,omitempty"`
	DiscYear       *int     `mapstructure:"pl_disc" json:"pl_disc,omitempty"`
	TransitDur     *float64 `mapstructure:"pl_trandur" json:"pl_trandur,omitempty"`
	TransitDepth   *float64 `mapstructure:"pl_trandep" json:"pl_trandep,omitempty"`
	ImpactParam    *float64 `mapstructure:"pl_imppar" json:"pl_imppar,omitempty"`
	RA             *float64 `mapstructure:"ra" json:"ra,omitempty"`
	Dec            *float64 `mapstructure:"dec" json:"dec,omitempty"`
	StarDistance   *float64 `mapstructure:"st_dist" json:"st_dist,omitempty"`
	SystemDistance *float64 `mapstructure:"sy_dist" json:"sy_dist,omitempty"`
	StarTemp       *float64 `mapstructure:"st_teff" json:"st_teff,omitempty"`
	StarRadius     *float64 `mapstructure:"st_rad" json:"st_rad,omitempty"`
	StarMass       *float64 `mapstructure:"st_mass" json:"st_mass,omitempty"`
	StarLogG       *float64 `mapstructure:"st_logg" json:"st_logg,omitempty"`
	SpectralType   string   `mapstructure:"st_spectype" json:"st_spectype,omitempty"`
	PlanetCount    *int     `mapstructure:"sy_pnum" json:"sy_pnum,omitempty"`

	// Extra holds every column without a dedicated field.
	Extra map[string]any `mapstructure:",remain" json:"extra,omitempty"`
}

// Distance returns the distance in parsecs, preferring the stellar distance
// column and falling back to the system distance.
func (p Exoplanet) Distance() *float64 {
	if p.StarDistance != nil {
		return p.StarDistance
	}
	return p.SystemDistance
}

// IsConfirmed reports whether the planet's status is Confirmed.
func (p Exoplanet) IsConfirmed() bool {
	return p.Status == StatusConfirmed
}

// Float returns a pointer to v. Handy for building records in code.
func Float(v float64) *float64 { return &v }
