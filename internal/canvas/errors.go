package canvas

import "errors"

var (
	// ErrNotFound reports that an id is not present in the canvas. Mutations
	// never return it; they report a missing id with a false result instead.
	ErrNotFound = errors.New("not found")

	// ErrNoSections is returned by drop insertion when the canvas has no
	// section to drop into.
	ErrNoSections = errors.New("canvas has no sections")

	// ErrIDCollision is returned when the id generator keeps producing ids
	// that are already in use.
	ErrIDCollision = errors.New("could not generate a unique id")
)
