package core

import (
	"errors"
	"fmt"
)

// ErrEmptyMap is returned by NewGrid for a description with no rows.
var ErrEmptyMap = errors.New("map description has no rows")

// InvalidMapCharacterError reports an unrecognized glyph in a map
// description, with its position in the parsed grid.
type InvalidMapCharacterError struct {
	Char rune
	Pos  Pos
}

func (e *InvalidMapCharacterError) Error() string {
	return fmt.Sprintf("invalid map character %q at (%d,%d)", e.Char, e.Pos.X, e.Pos.Y)
}

// OutOfBoundsError reports a terrain query outside the grid extent.
// Under correct agent invariants it indicates a caller defect.
type OutOfBoundsError struct {
	Pos Pos
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("position (%d,%d) out of bounds", e.Pos.X, e.Pos.Y)
}

// NoReachableDestinationError reports a breadth-first search that
// exhausted its frontier without finding a Destination cell.
type NoReachableDestinationError struct {
	From Pos
}

func (e *NoReachableDestinationError) Error() string {
	return fmt.Sprintf("no destination reachable from (%d,%d)", e.From.X, e.From.Y)
}
