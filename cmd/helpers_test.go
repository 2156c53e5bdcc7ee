package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spacecanva/spacecanva/internal/catalog"
)

func TestCatalogTTL(t *testing.T) {
	assert.Equal(t, catalog.NoExpiry, catalogTTL(0))
	assert.Equal(t, 30*time.Minute, catalogTTL(30*time.Minute))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Kepler-22 b", truncate("Kepler-22 b", 20))
	assert.Equal(t, "Kepler-...", truncate("Kepler-22 b", 7))
	assert.Equal(t, "α Cen...", truncate("α Centauri Bb", 5))
	assert.Equal(t, "日本語", truncate("日本語", 3))
	assert.Equal(t, "日本語...", truncate("日本語です", 3))
}
