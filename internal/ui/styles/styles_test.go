package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoColorRendering(t *testing.T) {
	Configure(true, false)
	t.Cleanup(func() { Configure(false, false) })

	assert.True(t, NoColor())
	assert.Equal(t, "yes", Bool(true))
	assert.Equal(t, "no", Bool(false))
	assert.Equal(t, "[3]", PageNumber(3, true))
	assert.Equal(t, "4", PageNumber(4, false))
	assert.Equal(t, "+", ExpandMarker(false))
	assert.Equal(t, "-", ExpandMarker(true))
	assert.Equal(t, "+ guardado", SuccessMsg("guardado"))
	assert.Equal(t, "Error: boom", ErrorMsg("boom"))
	assert.Equal(t, "Nombre", Header("Nombre", true))
}

func TestAccessibleMarkers(t *testing.T) {
	Configure(false, true)
	t.Cleanup(func() { Configure(false, false) })

	assert.True(t, IsAccessible())
	assert.Equal(t, "-", ExpandMarker(true))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", Indent("a\n\nb", 2))
}
