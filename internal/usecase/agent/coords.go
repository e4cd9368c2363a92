package agent

// The reasoning service addresses the screen on a fixed 0-999 grid per axis,
// independent of the actual viewport.
const (
	normGrid = 1000
	normMax  = normGrid - 1
)

// MapToPixels converts normalized grid coordinates to pixel coordinates for
// the given viewport. Inputs outside [0, 999] are clamped to the grid so a
// stray model output still lands inside the viewport.
func MapToPixels(normX, normY, viewportW, viewportH int) (int, int) {
	normX = clampNorm(normX)
	normY = clampNorm(normY)
	return normX * viewportW / normGrid, normY * viewportH / normGrid
}

func clampNorm(n int) int {
	if n < 0 {
		return 0
	}
	if n > normMax {
		return normMax
	}
	return n
}
