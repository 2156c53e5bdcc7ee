// Package viz separates display prose from the structured visualization
// blocks a chat model embeds in its answers.
package viz

// Kind identifies the shape of a visualization payload.
type Kind string

const (
	KindChart  Kind = "chart"
	KindTable  Kind = "table"
	KindGauge  Kind = "gauge"
	KindCustom Kind = "custom"
)

// Valid reports whether k is one of the four known shapes.
func (k Kind) Valid() bool {
	switch k {
	case KindChart, KindTable, KindGauge, KindCustom:
		return true
	}
	return false
}

// Point is a single labelled chart sample.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Color string  `json:"color,omitempty"`
}

// Data carries the union of fields used by all visualization kinds. Every
// field is optional; renderers apply defaults at the call site.
type Data struct {
	Title           string   `json:"title,omitempty"`
	Points          []Point  `json:"points,omitempty"`
	Columns         []string `json:"columns,omitempty"`
	Rows            [][]any  `json:"rows,omitempty"` // cells are string or float64
	Value           *float64 `json:"value,omitempty"`
	Min             *float64 `json:"min,omitempty"`
	Max             *float64 `json:"max,omitempty"`
	Label           string   `json:"label,omitempty"`
	Unit            string   `json:"unit,omitempty"`
	CustomComponent string   `json:"customComponent,omitempty"`
}

// Visualization is one decoded block.
type Visualization struct {
	Type Kind `json:"type"`
	Data Data `json:"data"`
}

// Result is the outcome of Extract.
type Result struct {
	Text           string          `json:"text"`
	Visualizations []Visualization `json:"visualizations"`
}

const (
	defaultGaugeMin = 0
	defaultGaugeMax = 100
)

// GaugeBounds returns the gauge range, defaulting to [0, 100].
func (d Data) GaugeBounds() (min, max float64) {
	min, max = defaultGaugeMin, defaultGaugeMax
	if d.Min != nil {
		min = *d.Min
	}
	if d.Max != nil {
		max = *d.Max
	}
	return min, max
}

// DisplayTitle returns the title, or a generic one for kind when unset.
func (d Data) DisplayTitle(kind Kind) string {
	if d.Title != "" {
		return d.Title
	}
	if kind == KindGauge && d.Label != "" {
		return d.Label
	}
	switch kind {
	case KindChart:
		return "Chart"
	case KindTable:
		return "Data Table"
	case KindGauge:
		return "Measurement"
	default:
		return "Visualization"
	}
}
