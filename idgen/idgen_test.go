package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorNextIsMonotonicPerKind(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, ID("ent-000001"), g.Next("ent"))
	assert.Equal(t, ID("ent-000002"), g.Next("ent"))
	assert.Equal(t, ID("layer-000001"), g.Next("layer"))
	assert.Equal(t, ID("ent-000003"), g.Next("ent"))
}

func TestIDEmpty(t *testing.T) {
	var id ID
	assert.True(t, id.Empty())
	assert.False(t, ID("ent-000001").Empty())
}
