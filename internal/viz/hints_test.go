package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeForUI(t *testing.T) {
	h := AnalyzeForUI("The plot shows the stellar temperature trend at 4.2 parsec distance.")
	assert.True(t, h.ShowChart)
	assert.Equal(t, "scatter", h.ChartType)
	assert.True(t, h.ShowComponent)
	assert.Equal(t, "TemperatureGauge", h.SuggestedComponent)
	assert.Equal(t, []string{"temperature", "distance", "stellar"}, h.Keywords)
}

func TestAnalyzeForUINoCues(t *testing.T) {
	h := AnalyzeForUI("Hello there.")
	assert.False(t, h.ShowChart)
	assert.False(t, h.ShowTable)
	assert.False(t, h.ShowComponent)
	assert.Empty(t, h.ChartType)
	assert.Empty(t, h.Keywords)
}

func TestRenderProse(t *testing.T) {
	out, err := RenderProse("**Io** is a moon.\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Io</strong>")
	assert.NotContains(t, out, "<script>")
}
