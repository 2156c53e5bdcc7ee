package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spacecanva/spacecanva/internal/catalog"
	"github.com/spacecanva/spacecanva/internal/scene"
)

// Hit is one search result.
type Hit struct {
	Name       string  `json:"name"`
	Host       string  `json:"host"`
	Method     string  `json:"discovery_method,omitempty"`
	Bucket     string  `json:"bucket,omitempty"`
	Distance   float64 `json:"distance,omitempty"`
	Content    string  `json:"content"`
	Similarity float32 `json:"similarity"`
}

// Filter narrows a search to exact metadata values. Empty fields match
// anything.
type Filter struct {
	Bucket string
	Method string
}

// Describe renders a planet as the text that gets embedded.
func Describe(p catalog.Exoplanet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is an exoplanet orbiting the star %s.", p.Name, p.Host)
	if p.DiscMethod != "" {
		fmt.Fprintf(&b, " Discovered by %s", strings.ToLower(p.DiscMethod))
		if p.DiscYear != nil {
			fmt.Fprintf(&b, " in %d", *p.DiscYear)
		}
		b.WriteString(".")
	}
	if p.RadiusEarth != nil {
		fmt.Fprintf(&b, " Radius %.2f Earth radii (%s).", *p.RadiusEarth, sizeClass(*p.RadiusEarth))
	}
	if p.EqTemperature != nil {
		fmt.Fprintf(&b, " Equilibrium temperature %.0f K, %s.", *p.EqTemperature, scene.BucketFor(*p.EqTemperature))
	}
	if d := p.Distance(); d != nil {
		fmt.Fprintf(&b, " Distance %.1f parsecs.", *d)
	}
	if p.OrbitalPeriod != nil {
		fmt.Fprintf(&b, " Orbital period %.2f days.", *p.OrbitalPeriod)
	}
	if p.SpectralType != "" {
		fmt.Fprintf(&b, " Host spectral type %s.", p.SpectralType)
	}
	return b.String()
}

func sizeClass(radius float64) string {
	switch {
	case radius < 1.25:
		return "earth-sized"
	case radius < 2:
		return "super-earth"
	case radius < 6:
		return "neptune-like"
	default:
		return "gas giant"
	}
}

func metadata(p catalog.Exoplanet) map[string]string {
	md := map[string]string{
		"name":   p.Name,
		"host":   p.Host,
		"method": strings.ToLower(p.DiscMethod),
	}
	if p.EqTemperature != nil {
		md["bucket"] = string(scene.BucketFor(*p.EqTemperature))
	}
	if d := p.Distance(); d != nil {
		md["distance"] = strconv.FormatFloat(*d, 'f', -1, 64)
	}
	return md
}

func hitFromMetadata(md map[string]string, content string, similarity float32) Hit {
	dist, _ := strconv.ParseFloat(md["distance"], 64)
	return Hit{
		Name:       md["name"],
		Host:       md["host"],
		Method:     md["method"],
		Bucket:     md["bucket"],
		Distance:   dist,
		Content:    content,
		Similarity: similarity,
	}
}

func (f *Filter) where() map[string]string {
	if f == nil {
		return nil
	}
	where := make(map[string]string)
	if f.Bucket != "" {
		where["bucket"] = strings.ToLower(f.Bucket)
	}
	if f.Method != "" {
		where["method"] = strings.ToLower(f.Method)
	}
	if len(where) == 0 {
		return nil
	}
	return where
}

// FormatHits renders hits as human-readable text.
func FormatHits(hits []Hit) string {
	if len(hits) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n\n", len(hits))
	for i, h := range hits {
		fmt.Fprintf(&sb, "--- %d. %s (similarity: %.4f) ---\n", i+1, h.Name, h.Similarity)
		sb.WriteString(h.Content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
