package viz

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/logging"
)

// Markers delimiting a visualization block inside model output.
const (
	StartMarker = "---VISUALIZATION---"
	EndMarker   = "---END---"
)

// span is the byte range of one marker-delimited block, markers included.
type span struct {
	start, end int
	body       string
}

// Extractor splits model output into prose and visualization blocks.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor returns an Extractor that logs skipped blocks to logger.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logging.OrNop(logger)}
}

// Extract is a convenience wrapper around an Extractor without logging.
func Extract(text string) Result {
	return NewExtractor(nil).Extract(text)
}

// Extract locates every marker-delimited block, decodes each independently
// and returns the remaining prose. Blocks that fail to decode are dropped;
// their spans are still removed from the prose.
func (e *Extractor) Extract(text string) Result {
	spans := scanSpans(text)
	if len(spans) == 0 {
		return Result{Text: text, Visualizations: []Visualization{}}
	}

	visualizations := make([]Visualization, 0, len(spans))
	for i, sp := range spans {
		v, err := decodeBlock(sp.body)
		if err != nil {
			e.logger.Warn("skipping visualization block",
				zap.Int("index", i),
				zap.Error(err),
				zap.String("payload", sp.body))
			continue
		}
		visualizations = append(visualizations, v)
	}

	return Result{
		Text:           cleanProse(removeSpans(text, spans)),
		Visualizations: visualizations,
	}
}

// scanSpans finds non-overlapping start/end pairs left to right. A start
// marker without a following end marker stops the scan.
func scanSpans(text string) []span {
	var spans []span
	pos := 0
	for pos < len(text) {
		s := strings.Index(text[pos:], StartMarker)
		if s < 0 {
			break
		}
		s += pos
		bodyStart := s + len(StartMarker)

		e := strings.Index(text[bodyStart:], EndMarker)
		if e < 0 {
			break
		}
		e += bodyStart

		spans = append(spans, span{
			start: s,
			end:   e + len(EndMarker),
			body:  strings.TrimSpace(text[bodyStart:e]),
		})
		pos = e + len(EndMarker)
	}
	return spans
}

func decodeBlock(body string) (Visualization, error) {
	var v Visualization
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return Visualization{}, fmt.Errorf("decoding visualization: %w", err)
	}
	if !v.Type.Valid() {
		return Visualization{}, fmt.Errorf("unknown visualization type %q", v.Type)
	}
	return v, nil
}

func removeSpans(text string, spans []span) string {
	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, sp := range spans {
		b.WriteString(text[prev:sp.start])
		prev = sp.end
	}
	b.WriteString(text[prev:])
	return b.String()
}

// cleanProse trims each line, drops empty ones and trims the result.
func cleanProse(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
