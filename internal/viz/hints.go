package viz

import "strings"

// Hints is a keyword heuristic describing which widgets suit an answer.
type Hints struct {
	ShowChart          bool     `json:"show_chart"`
	ShowTable          bool     `json:"show_table"`
	ShowComponent      bool     `json:"show_component"`
	SuggestedComponent string   `json:"suggested_component,omitempty"`
	ChartType          string   `json:"chart_type,omitempty"`
	Keywords           []string `json:"keywords"`
}

var (
	chartKeywords = []string{"graph", "chart", "plot", "diagram", "visualization", "data points", "trend"}
	tableKeywords = []string{"table", "list", "data", "comparison", "compare", "statistics"}
)

// AnalyzeForUI inspects answer text for widget cues.
func AnalyzeForUI(text string) Hints {
	lower := strings.ToLower(text)
	h := Hints{
		ShowChart: containsAny(lower, chartKeywords...),
		ShowTable: containsAny(lower, tableKeywords...),
		Keywords:  []string{},
	}

	if containsAny(lower, "temperature", "temp") {
		h.SuggestedComponent = "TemperatureGauge"
		h.Keywords = append(h.Keywords, "temperature")
	}
	if containsAny(lower, "distance", "parsec", "light year") {
		h.Keywords = append(h.Keywords, "distance")
	}
	if containsAny(lower, "star", "stellar") {
		h.Keywords = append(h.Keywords, "stellar")
	}

	h.ShowComponent = h.SuggestedComponent != ""
	if h.ShowChart {
		h.ChartType = "scatter"
	}
	return h
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
