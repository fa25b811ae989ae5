package aoi

import "math"

// easeSign per axis sign of the sin² wobble added to the straight line
var easeSign = [axisCount]float32{-1, 1}

// Locate teleports the entity to (x, y), any move in progress keeps its
// destination
func (ix *Index) Locate(id ID, x, y Coord) {
	obj, slot := ix.resolve(id)
	if obj == nil {
		return
	}
	delta := [axisCount]Coord{direction(obj.pos[axisX], x), direction(obj.pos[axisY], y)}
	obj.pos[axisX] = x
	obj.pos[axisY] = y
	ix.reorder(slot, delta)
}

// direction of travel from old to cur, compared rather than subtracted so
// spans over 2^31 keep their sign
func direction(old, cur Coord) Coord {
	switch {
	case cur > old:
		return 1
	case cur < old:
		return -1
	}
	return 0
}

// Move starts an eased move toward (x, y).
//	no-op while the speed is not positive or the entity already stands on (x, y)
func (ix *Index) Move(id ID, x, y Coord) {
	obj, _ := ix.resolve(id)
	if obj == nil {
		return
	}
	ix.move(obj, x, y)
}

func (ix *Index) move(obj *object, x, y Coord) {
	if obj.speed <= 0 || (x == obj.pos[axisX] && y == obj.pos[axisY]) {
		return
	}
	d := [axisCount]Coord{x, y}
	for i := 0; i < axisCount; i++ {
		obj.start[i] = obj.pos[i]
		obj.dest[i] = d[i]
		d[i] -= obj.pos[i]
	}
	dx, dy := int64(d[axisX]), int64(d[axisY])
	// the squared length is rounded to float32 before the root
	length := float32(math.Sqrt(float64(float32(dx*dx + dy*dy))))
	for i := 0; i < axisCount; i++ {
		obj.dir[i] = float32(d[i]) / length
	}
	obj.rate = float32(math.Pi*float32(obj.speed)) / length
	obj.remaining = int32(length) / obj.speed
	obj.elapsed = 0
}

// SetSpeed changes the speed, a move in progress is re-planned toward the
// same destination
func (ix *Index) SetSpeed(id ID, speed int32) {
	obj, _ := ix.resolve(id)
	if obj == nil {
		return
	}
	obj.speed = speed
	if obj.remaining > 0 {
		ix.move(obj, obj.dest[axisX], obj.dest[axisY])
	}
}

// Speed of the entity, 0 for unknown ids
func (ix *Index) Speed(id ID) int32 {
	obj, _ := ix.resolve(id)
	if obj == nil {
		return 0
	}
	return obj.speed
}

// Update advances the move of the entity by tick ticks
func (ix *Index) Update(id ID, tick int32) {
	obj, slot := ix.resolve(id)
	if obj == nil || obj.speed <= 0 || obj.remaining <= 0 {
		return
	}

	step := tick
	if obj.remaining < step {
		step = obj.remaining
	}
	obj.remaining -= step
	obj.elapsed += step

	var delta [axisCount]Coord
	for i := 0; i < axisCount; i++ {
		if obj.dir[i] > 0 {
			delta[i] = 1
		} else {
			delta[i] = -1
		}
	}

	if obj.remaining <= 0 {
		// arrived, drop the accumulated rounding error
		obj.pos = obj.dest
	} else {
		// every product is rounded to float32 on its own, no fused multiply-add
		phase := float64(float32(obj.rate * float32(obj.elapsed)))
		s := float32(math.Sin(phase))
		s = float32(s * s)
		for i := 0; i < axisCount; i++ {
			line := float32(float32(obj.dir[i]*float32(obj.speed)) * float32(obj.elapsed))
			wobble := float32(float32(easeSign[i]*obj.dir[i]) * s)
			obj.pos[i] = Coord(float32(float32(obj.start[i])+line) + wobble)
		}
	}
	ix.reorder(slot, delta)
}

// IsMoving whether the entity has a move in progress
func (ix *Index) IsMoving(id ID) bool {
	obj, _ := ix.resolve(id)
	if obj == nil {
		return false
	}
	return obj.remaining > 0
}

// Destination of the current or last move
func (ix *Index) Destination(id ID) (x, y Coord, ok bool) {
	obj, _ := ix.resolve(id)
	if obj == nil {
		return 0, 0, false
	}
	return obj.dest[axisX], obj.dest[axisY], true
}
