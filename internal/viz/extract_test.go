package viz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(payload string) string {
	return StartMarker + "\n" + payload + "\n" + EndMarker
}

const (
	tablePayload = `{"type": "table", "data": {"title": "Io - Key Properties", "columns": ["Property", "Value"], "rows": [["Diameter", "3643"], ["Volcanoes", 400]]}}`
	gaugePayload = `{"type": "gauge", "data": {"value": 130, "min": 0, "max": 300, "label": "Io Surface Temperature", "unit": "K"}}`
	chartPayload = `{"type": "chart", "data": {"title": "HR", "points": [{"x": 3.8, "y": 4.2, "label": "O-type stars", "color": "#9b59b6"}]}}`
)

func TestExtractNoMarkersReturnsTextUnchanged(t *testing.T) {
	inputs := []string{
		"",
		"Io is the most volcanically active body.",
		"  line one\n\n\n   line two  \n",
		"a dangling ---END--- marker",
	}
	for _, in := range inputs {
		res := Extract(in)
		assert.Equal(t, in, res.Text)
		assert.Empty(t, res.Visualizations)
	}
}

func TestExtractPreservesOrderAndStripsBlocks(t *testing.T) {
	text := "Io orbits Jupiter.\n\n" +
		block(tablePayload) + "\n\n" +
		"It is hot underground.\n" +
		block(gaugePayload) + "\n" +
		block(chartPayload) + "\n"

	res := Extract(text)

	require.Len(t, res.Visualizations, 3)
	assert.Equal(t, KindTable, res.Visualizations[0].Type)
	assert.Equal(t, KindGauge, res.Visualizations[1].Type)
	assert.Equal(t, KindChart, res.Visualizations[2].Type)

	assert.Equal(t, "Io orbits Jupiter.\nIt is hot underground.", res.Text)
	assert.NotContains(t, res.Text, StartMarker)
	assert.NotContains(t, res.Text, EndMarker)
	assert.NotContains(t, res.Text, `"type"`)
}

func TestExtractDecodesFields(t *testing.T) {
	res := Extract("x " + block(tablePayload) + " " + block(gaugePayload))
	require.Len(t, res.Visualizations, 2)

	table := res.Visualizations[0].Data
	assert.Equal(t, "Io - Key Properties", table.Title)
	assert.Equal(t, []string{"Property", "Value"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "3643", table.Rows[0][1])
	assert.Equal(t, 400.0, table.Rows[1][1])

	gauge := res.Visualizations[1].Data
	require.NotNil(t, gauge.Value)
	assert.Equal(t, 130.0, *gauge.Value)
	min, max := gauge.GaugeBounds()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 300.0, max)
	assert.Equal(t, "K", gauge.Unit)
}

func TestExtractSkipsMalformedBlock(t *testing.T) {
	for n := 2; n <= 5; n++ {
		for bad := 0; bad < n; bad++ {
			var parts []string
			for i := 0; i < n; i++ {
				payload := fmt.Sprintf(`{"type": "gauge", "data": {"value": %d}}`, i)
				if i == bad {
					payload = `{"type": "gauge", "data": {"value": ` // truncated
				}
				parts = append(parts, fmt.Sprintf("para %d", i), block(payload))
			}

			res := Extract(strings.Join(parts, "\n"))
			require.Len(t, res.Visualizations, n-1, "n=%d bad=%d", n, bad)

			want := 0
			for _, v := range res.Visualizations {
				if want == bad {
					want++
				}
				assert.Equal(t, float64(want), *v.Data.Value)
				want++
			}
			assert.NotContains(t, res.Text, StartMarker)
		}
	}
}

func TestExtractRejectsUnknownType(t *testing.T) {
	res := Extract(block(`{"type": "hologram", "data": {}}`) + block(gaugePayload))
	require.Len(t, res.Visualizations, 1)
	assert.Equal(t, KindGauge, res.Visualizations[0].Type)
}

func TestExtractUnterminatedMarkerLeavesRest(t *testing.T) {
	text := "intro\n" + block(gaugePayload) + "\nmiddle\n" + StartMarker + "\n{\"type\": \"table\"}\ntrailing"
	res := Extract(text)

	require.Len(t, res.Visualizations, 1)
	assert.Contains(t, res.Text, StartMarker)
	assert.Contains(t, res.Text, "trailing")
	assert.NotContains(t, res.Text, EndMarker)
}

func TestExtractKeepsRepeatedKinds(t *testing.T) {
	text := block(`{"type": "custom", "data": {"title": "A", "customComponent": "<div class='a'>A</div>"}}`) +
		block(`{"type": "custom", "data": {"title": "B", "customComponent": "<div class='b'>B</div>"}}`)
	res := Extract(text)

	require.Len(t, res.Visualizations, 2)
	assert.Equal(t, "A", res.Visualizations[0].Data.Title)
	assert.Equal(t, "B", res.Visualizations[1].Data.Title)
	assert.Equal(t, "", res.Text)
}

func TestExtractDelimiterInsidePayloadDropsBlock(t *testing.T) {
	// The nearest end marker wins, so a literal end marker inside a JSON
	// string truncates the payload and the block is skipped.
	text := block(`{"type": "custom", "data": {"customComponent": "` + EndMarker + `"}}`)
	res := Extract(text)
	assert.Empty(t, res.Visualizations)
	assert.NotContains(t, res.Text, StartMarker)
}

func TestDisplayTitleDefaults(t *testing.T) {
	assert.Equal(t, "Chart", Data{}.DisplayTitle(KindChart))
	assert.Equal(t, "Data Table", Data{}.DisplayTitle(KindTable))
	assert.Equal(t, "Solar Temperature", Data{Label: "Solar Temperature"}.DisplayTitle(KindGauge))
	assert.Equal(t, "Mine", Data{Title: "Mine"}.DisplayTitle(KindCustom))
}
