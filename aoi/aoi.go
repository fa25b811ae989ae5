// Package aoi implements an area of interest index over entities moving on a
// 2D integer plane.
//
// Every live entity is linked into two sorted lists, one ordered by x and one
// by y. Moves relocate an entity by walking its lists in the direction of
// travel only. Trigger walks the x list outward from an entity up to the
// leave radius and diffs the result against the previous snapshot, so a
// query costs a window proportional to local density instead of the whole
// population.
//
// An Index is not safe for concurrent use.
package aoi

import (
	"fmt"

	"github.com/pkg/errors"
)

// ID of an entity inside an Index
type ID int32

// InvalidID is returned by Enter when no slot is available
const InvalidID ID = -1

// Coord 坐标单位
type Coord int32

// Point on the plane
type Point struct {
	X Coord
	Y Coord
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

const (
	// MaxCapacity largest number of slots of an Index
	MaxCapacity = 1 << 16
	// DefaultListSize initial capacity of a neighbour snapshot
	DefaultListSize = 32
)

// axis index into the per-entity link arrays
const (
	axisX = iota
	axisY
	axisCount
)

// EventKind enter or leave sight
type EventKind uint8

const (
	// Enter some entity came into sight
	Enter EventKind = 0x01
	// Leave some entity went out of sight
	Leave EventKind = 0x02
)

func (k EventKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Leave:
		return "leave"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event produced by Trigger
type Event struct {
	ID   ID
	Kind EventKind
}

func (e Event) String() string {
	return fmt.Sprintf("<%s %d>", e.Kind, e.ID)
}

var (
	// ErrCapacityExhausted every slot of the index is reserved
	ErrCapacityExhausted = errors.New("aoi: capacity exhausted")
	// ErrInvalidRadius leave radius must be greater than enter radius
	ErrInvalidRadius = errors.New("aoi: leave radius must be greater than enter radius")
	// ErrInvalidCapacity capacity must be a positive power of two
	ErrInvalidCapacity = errors.New("aoi: capacity must be a positive power of two")
)
