package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushRecentFileDedupesAndOrdersMostRecentFirst(t *testing.T) {
	s := Default()
	s.PushRecentFile("a.tiles")
	s.PushRecentFile("b.tiles")
	s.PushRecentFile("a.tiles")
	assert.Equal(t, []string{"a.tiles", "b.tiles"}, s.RecentFiles)
}

func TestPushRecentFileTrimsToMax(t *testing.T) {
	s := Default()
	s.MaxRecentFiles = 2
	s.PushRecentFile("a.tiles")
	s.PushRecentFile("b.tiles")
	s.PushRecentFile("c.tiles")
	assert.Equal(t, []string{"c.tiles", "b.tiles"}, s.RecentFiles)
}

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	d := Default()
	assert.Equal(t, 500, d.DefaultTileSize)
	assert.Equal(t, "#000000", d.DefaultBrushColor)
}
