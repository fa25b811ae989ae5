package aoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movingIndex(t *testing.T, from, to Point, speed int32) (*Index, ID) {
	t.Helper()
	ix, ids := newIndexWith(t, 8, from)
	ix.SetSpeed(ids[0], speed)
	ix.Move(ids[0], to.X, to.Y)
	return ix, ids[0]
}

func requirePos(t *testing.T, ix *Index, id ID, x, y Coord) {
	t.Helper()
	px, py, ok := ix.Pos(id)
	require.True(t, ok)
	assert.Equal(t, Point{x, y}, Point{px, py})
}

func TestMoveEased(t *testing.T) {
	t.Run("along x", func(t *testing.T) {
		ix, id := movingIndex(t, Point{0, 0}, Point{100, 0}, 10)
		assert.True(t, ix.IsMoving(id))
		assert.Equal(t, int32(10), ix.slots[ix.slotOf(id)].remaining)

		ix.Update(id, 1)
		requirePos(t, ix, id, 9, 0)
		ix.Update(id, 1)
		requirePos(t, ix, id, 19, 0)
	})

	t.Run("along y", func(t *testing.T) {
		ix, id := movingIndex(t, Point{0, 0}, Point{0, 100}, 10)
		ix.Update(id, 1)
		requirePos(t, ix, id, 0, 10)
		ix.Update(id, 1)
		requirePos(t, ix, id, 0, 20)
	})

	t.Run("backward along x", func(t *testing.T) {
		ix, id := movingIndex(t, Point{100, 0}, Point{0, 0}, 10)
		ix.Update(id, 1)
		requirePos(t, ix, id, 90, 0)
	})
}

func TestMoveSnapsOnArrival(t *testing.T) {
	ix, id := movingIndex(t, Point{3, 7}, Point{50, 91}, 4)
	for ix.IsMoving(id) {
		ix.Update(id, 1)
	}
	requirePos(t, ix, id, 50, 91)

	x, y, ok := ix.Destination(id)
	assert.True(t, ok)
	assert.Equal(t, Point{50, 91}, Point{x, y})

	// stationary, further updates change nothing
	ix.Update(id, 5)
	requirePos(t, ix, id, 50, 91)
}

func TestUpdateClampsToRemaining(t *testing.T) {
	ix, id := movingIndex(t, Point{0, 0}, Point{100, 0}, 10)
	ix.Update(id, 3)
	assert.True(t, ix.IsMoving(id))
	ix.Update(id, 100)
	assert.False(t, ix.IsMoving(id))
	requirePos(t, ix, id, 100, 0)
	assert.Equal(t, int32(10), ix.slots[ix.slotOf(id)].elapsed)
}

func TestMoveNoop(t *testing.T) {
	t.Run("no speed", func(t *testing.T) {
		ix, ids := newIndexWith(t, 8, Point{1, 1})
		ix.Move(ids[0], 100, 100)
		assert.False(t, ix.IsMoving(ids[0]))
		ix.Update(ids[0], 1)
		requirePos(t, ix, ids[0], 1, 1)
	})

	t.Run("same position", func(t *testing.T) {
		ix, ids := newIndexWith(t, 8, Point{1, 1})
		ix.SetSpeed(ids[0], 5)
		ix.Move(ids[0], 1, 1)
		assert.False(t, ix.IsMoving(ids[0]))
	})

	t.Run("negative speed", func(t *testing.T) {
		ix, ids := newIndexWith(t, 8, Point{1, 1})
		ix.SetSpeed(ids[0], -3)
		ix.Move(ids[0], 100, 1)
		assert.False(t, ix.IsMoving(ids[0]))
		assert.Equal(t, int32(-3), ix.Speed(ids[0]))
	})
}

func TestSetSpeedReplans(t *testing.T) {
	ix, id := movingIndex(t, Point{0, 0}, Point{100, 0}, 10)
	ix.Update(id, 1)
	requirePos(t, ix, id, 9, 0)

	ix.SetSpeed(id, 20)
	obj := &ix.slots[ix.slotOf(id)]
	// 91 units left at 20 per tick
	assert.Equal(t, int32(4), obj.remaining)
	assert.Equal(t, int32(0), obj.elapsed)
	assert.Equal(t, [axisCount]Coord{9, 0}, obj.start)

	x, y, _ := ix.Destination(id)
	assert.Equal(t, Point{100, 0}, Point{x, y})

	ix.Update(id, 4)
	requirePos(t, ix, id, 100, 0)
}

func TestSetSpeedWhileStanding(t *testing.T) {
	ix, ids := newIndexWith(t, 8, Point{5, 5})
	ix.SetSpeed(ids[0], 7)
	assert.Equal(t, int32(7), ix.Speed(ids[0]))
	assert.False(t, ix.IsMoving(ids[0]))
}

func TestMoveKeepsAxisOrder(t *testing.T) {
	ix, ids := newIndexWith(t, 16,
		Point{0, 0}, Point{20, 20}, Point{40, 40}, Point{60, 60}, Point{80, 80})
	ix.SetSpeed(ids[0], 3)
	ix.Move(ids[0], 100, 100)
	ix.SetSpeed(ids[4], 5)
	ix.Move(ids[4], 0, 0)

	for ix.IsMoving(ids[0]) || ix.IsMoving(ids[4]) {
		ix.Update(ids[0], 1)
		ix.Update(ids[4], 1)
		require.True(t, isSorted(listCoords(ix, AxisX)), ix.Dump())
		require.True(t, isSorted(listCoords(ix, AxisY)), ix.Dump())
	}
	checkLinks(t, ix)
	assert.Equal(t, ids[4], listIDs(ix, AxisX)[0])
	assert.Equal(t, ids[0], listIDs(ix, AxisX)[4])
}

func TestLongMoveTrajectory(t *testing.T) {
	// the squared length exceeds 2^24, it is rounded to float32 before the root
	ix, id := movingIndex(t, Point{7201, 8903}, Point{-3394, 4545}, 10)
	assert.Equal(t, int32(1145), ix.slots[ix.slotOf(id)].remaining)

	ix.Update(id, 292)
	requirePos(t, ix, id, 4501, 7792)
	ix.Update(id, 312)
	requirePos(t, ix, id, 1616, 6604)

	ix.Update(id, 1145)
	requirePos(t, ix, id, -3394, 4545)
}
