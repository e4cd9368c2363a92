package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapToPixels_Origin(t *testing.T) {
	x, y := MapToPixels(0, 0, 1440, 900)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestMapToPixels_Center(t *testing.T) {
	x, y := MapToPixels(500, 500, 1440, 900)
	assert.Equal(t, 720, x)
	assert.Equal(t, 450, y)
}

func TestMapToPixels_MaxStaysInsideViewport(t *testing.T) {
	x, y := MapToPixels(999, 999, 1440, 900)
	assert.Less(t, x, 1440)
	assert.Less(t, y, 900)
	// Within integer rounding of the far corner.
	assert.GreaterOrEqual(t, x, 1440-2)
	assert.GreaterOrEqual(t, y, 900-2)
}

func TestMapToPixels_MonotonicPerAxis(t *testing.T) {
	prevX, prevY := -1, -1
	for n := 0; n <= 999; n += 111 {
		x, y := MapToPixels(n, n, 1440, 900)
		assert.Greater(t, x, prevX, "x must grow with normX")
		assert.Greater(t, y, prevY, "y must grow with normY")
		prevX, prevY = x, y
	}
}

func TestMapToPixels_ClampsOutOfRangeInput(t *testing.T) {
	x, y := MapToPixels(-50, 2000, 1000, 1000)
	assert.Equal(t, 0, x)
	assert.Equal(t, 999, y)
}
