package ocean

import "fmt"

// minSpacing is the smallest allowed cell size in meters. Finer grids sit
// below the spectrum's useful resolution and destabilize the synthesis.
const minSpacing = 0.02

// GridDimensionError reports a grid dimension that is not a power of two of
// at least 2. The transform grid cannot be built from it.
type GridDimensionError struct {
	Dim int
}

func (e *GridDimensionError) Error() string {
	return fmt.Sprintf("ocean: grid dimension %d is not a power of two (>= 2)", e.Dim)
}

// GridSpacingError reports a tile whose meter size divided by its vertex
// stride falls under the minimum cell spacing.
type GridSpacingError struct {
	Spacing float64
}

func (e *GridSpacingError) Error() string {
	return fmt.Sprintf("ocean: cell spacing %.4fm is under the %.2fm minimum; grow the tile or coarsen the grid", e.Spacing, minSpacing)
}
