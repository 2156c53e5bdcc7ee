package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReporterHonorsCI(t *testing.T) {
	t.Setenv("CI", "true")
	r := NewReporter("Indexing exoplanets")
	ci, ok := r.(*CIReporter)
	assert.True(t, ok)
	assert.Equal(t, "Indexing exoplanets", ci.description)

	var buf bytes.Buffer
	ci.out = &buf
	ci.Start(3)
	ci.Update(1, "Kepler-22 b")
	ci.Finish()
	assert.Equal(t, 3, ci.total)
	assert.Equal(t, "Indexing exoplanets: 3 planets\n[1/3] Kepler-22 b\nIndexing exoplanets: done\n", buf.String())
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	_, ok := NewReporter("x").(*TerminalReporter)
	assert.True(t, ok)
}

func TestNop(t *testing.T) {
	var r Reporter = Nop{}
	r.Start(1)
	r.Update(1, "")
	r.Finish()
}
