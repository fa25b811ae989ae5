package aoi

import (
	"fmt"
	"strings"
)

// Axis list selector for Walk
type Axis int

const (
	// AxisX list ordered by x
	AxisX Axis = axisX
	// AxisY list ordered by y
	AxisY Axis = axisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// head -> tail the coordinate is increased, equal coordinates keep their
// relative order.

// insertHead links slot in front of both lists, then past every entity on a
// negative coordinate.
//	a new entity sits at (0, 0), Locate moves it to its place
func (ix *Index) insertHead(slot int32) {
	obj := &ix.slots[slot]
	for i := 0; i < axisCount; i++ {
		head := ix.heads[i]
		obj.prev[i] = nilSlot
		obj.next[i] = head
		if head != nilSlot {
			ix.slots[head].prev[i] = slot
		}
		ix.heads[i] = slot

		p := slot
		for next := obj.next[i]; next != nilSlot && ix.slots[next].pos[i] < obj.pos[i]; next = ix.slots[next].next[i] {
			p = next
		}
		if p != slot {
			ix.erase(i, slot)
			ix.insertAfter(i, slot, p)
		}
	}
}

func (ix *Index) erase(axis int, slot int32) {
	obj := &ix.slots[slot]
	prev, next := obj.prev[axis], obj.next[axis]
	if prev != nilSlot {
		ix.slots[prev].next[axis] = next
	} else {
		ix.heads[axis] = next
	}
	if next != nilSlot {
		ix.slots[next].prev[axis] = prev
	}
	obj.prev[axis] = nilSlot
	obj.next[axis] = nilSlot
}

func (ix *Index) insertAfter(axis int, slot int32, at int32) {
	if slot == at {
		return
	}
	obj := &ix.slots[slot]
	ref := &ix.slots[at]
	obj.next[axis] = ref.next[axis]
	obj.prev[axis] = at
	if ref.next[axis] != nilSlot {
		ix.slots[ref.next[axis]].prev[axis] = slot
	}
	ref.next[axis] = slot
}

func (ix *Index) insertBefore(axis int, slot int32, at int32) {
	if slot == at {
		return
	}
	obj := &ix.slots[slot]
	ref := &ix.slots[at]
	obj.next[axis] = at
	obj.prev[axis] = ref.prev[axis]
	if ref.prev[axis] != nilSlot {
		ix.slots[ref.prev[axis]].next[axis] = slot
	} else {
		ix.heads[axis] = slot
	}
	ref.prev[axis] = slot
}

// remove slot from both lists
func (ix *Index) remove(slot int32) {
	for i := 0; i < axisCount; i++ {
		ix.erase(i, slot)
	}
}

// reorder relocates slot after its coordinates changed.
//	only the sign of delta matters: a positive delta walks toward the tail, a
//	negative one toward the head, zero leaves that list untouched
func (ix *Index) reorder(slot int32, delta [axisCount]Coord) {
	obj := &ix.slots[slot]
	for i := 0; i < axisCount; i++ {
		coord := obj.pos[i]
		switch {
		case delta[i] > 0:
			p := slot
			for {
				next := ix.slots[p].next[i]
				if next == nilSlot || ix.slots[next].pos[i] > coord {
					break
				}
				p = next
			}
			if p != slot {
				ix.erase(i, slot)
				ix.insertAfter(i, slot, p)
			}
		case delta[i] < 0:
			p := slot
			for {
				prev := ix.slots[p].prev[i]
				if prev == nilSlot || ix.slots[prev].pos[i] < coord {
					break
				}
				p = prev
			}
			if p != slot {
				ix.erase(i, slot)
				ix.insertBefore(i, slot, p)
			}
		}
	}
}

// Walk calls fn for every live entity from head to tail of the axis list,
// stopping when fn returns false
func (ix *Index) Walk(axis Axis, fn func(id ID, p Point) bool) {
	for s := ix.heads[axis]; s != nilSlot; s = ix.slots[s].next[axis] {
		obj := &ix.slots[s]
		if !fn(obj.id, Point{X: obj.pos[axisX], Y: obj.pos[axisY]}) {
			return
		}
	}
}

// Dump both lists, for debugging
func (ix *Index) Dump() string {
	return fmt.Sprintf("%s\n%s", ix.dumpList(AxisX), ix.dumpList(AxisY))
}

func (ix *Index) dumpList(axis Axis) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("<%sList>", axis))
	first := true
	ix.Walk(axis, func(id ID, p Point) bool {
		if !first {
			sb.WriteString(" ->")
		}
		first = false
		sb.WriteString(fmt.Sprintf(" [%d%s]", id, p))
		return true
	})
	return sb.String()
}
