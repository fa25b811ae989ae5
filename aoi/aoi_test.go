package aoi

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	MINX = -500
	MAXX = 500
	MINY = -500
	MAXY = 500

	NumObjs = 4096
)

func randCoord(r *rand.Rand, min, max int) Coord {
	return Coord(min) + Coord(r.Intn(max-min))
}

func TestGridNeighbors(t *testing.T) {
	const (
		EnterRadius = 10
		LeaveRadius = 12
		ItemRow     = 20
		ItemColumn  = 20
	)

	ix, err := New(512)
	require.NoError(t, err)
	ids := make([]ID, 0, ItemRow*ItemColumn)
	for i := 0; i < ItemRow; i++ {
		for j := 0; j < ItemColumn; j++ {
			id, err := ix.Enter(i*ItemColumn + j)
			require.NoError(t, err)
			ix.Locate(id, Coord(j), Coord(i))
			ids = append(ids, id)
		}
	}

	for n, id := range ids {
		events, err := ix.Trigger(id, EnterRadius, LeaveRadius)
		require.NoError(t, err)

		x, y := n%ItemColumn, n/ItemColumn
		want := 0
		for i := 0; i < ItemRow; i++ {
			for j := 0; j < ItemColumn; j++ {
				dx, dy := j-x, i-y
				if (dx != 0 || dy != 0) && dx*dx+dy*dy <= EnterRadius*EnterRadius {
					want++
				}
			}
		}
		require.Len(t, events, want, "objs[%v] at (%d,%d)", n, x, y)
		for _, e := range events {
			require.Equal(t, Enter, e.Kind)
		}
	}
}

// model recomputes every snapshot by brute force
type model struct {
	seen map[ID]map[ID]bool
}

func (m *model) trigger(ix *Index, live []ID, id ID, enter, leave Coord) []Event {
	old := m.seen[id]
	cur := map[ID]bool{}
	x, y, _ := ix.Pos(id)
	for _, other := range live {
		if other == id {
			continue
		}
		ox, oy, _ := ix.Pos(other)
		dx, dy := int64(ox-x), int64(oy-y)
		d2 := dx*dx + dy*dy
		if d2 <= int64(enter)*int64(enter) || (d2 <= int64(leave)*int64(leave) && old[other]) {
			cur[other] = true
		}
	}
	var events []Event
	for other := range cur {
		if !old[other] {
			events = append(events, Event{ID: other, Kind: Enter})
		}
	}
	for other := range old {
		if !cur[other] && ix.Contains(other) {
			events = append(events, Event{ID: other, Kind: Leave})
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	m.seen[id] = cur
	return events
}

func TestTriggerMatchesBruteForce(t *testing.T) {
	const (
		enter = 60
		leave = 90
	)
	r := rand.New(rand.NewSource(2020))
	ix, err := New(256)
	require.NoError(t, err)
	m := &model{seen: map[ID]map[ID]bool{}}

	var live []ID
	spawn := func() {
		id, err := ix.Enter(nil)
		require.NoError(t, err)
		ix.Locate(id, randCoord(r, -300, 300), randCoord(r, -300, 300))
		ix.SetSpeed(id, int32(1+r.Intn(8)))
		live = append(live, id)
	}
	for i := 0; i < 150; i++ {
		spawn()
	}

	for round := 0; round < 60; round++ {
		for _, id := range live {
			switch {
			case ix.IsMoving(id):
				ix.Update(id, 1)
			case r.Intn(4) == 0:
				x, y, _ := ix.Pos(id)
				ix.Locate(id, x+randCoord(r, -20, 20), y+randCoord(r, -20, 20))
			default:
				ix.Move(id, randCoord(r, -300, 300), randCoord(r, -300, 300))
			}
		}

		// churn a few entities
		for i := 0; i < 3; i++ {
			n := r.Intn(len(live))
			ix.Leave(live[n])
			delete(m.seen, live[n])
			live = append(live[:n], live[n+1:]...)
			spawn()
		}

		for _, id := range live {
			want := m.trigger(ix, live, id, enter, leave)
			got, err := ix.Trigger(id, enter, leave)
			require.NoError(t, err)
			if len(want) == 0 {
				require.Empty(t, got, "round %d id %d", round, id)
			} else {
				require.Equal(t, want, got, "round %d id %d", round, id)
			}

			around := ix.Around(id, len(live))
			require.Len(t, around, len(m.seen[id]))
			for _, other := range around {
				require.True(t, m.seen[id][other])
			}
		}
	}
}

func BenchmarkTrigger(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	ix, err := New(NumObjs)
	if err != nil {
		b.Fatal(err)
	}
	ids := make([]ID, 0, NumObjs)
	for i := 0; i < NumObjs; i++ {
		id, _ := ix.Enter(nil)
		ix.Locate(id, randCoord(r, MINX, MAXX), randCoord(r, MINY, MAXY))
		ix.SetSpeed(id, 5)
		ids = append(ids, id)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t0 := time.Now()
		for _, id := range ids[:1000] {
			if !ix.IsMoving(id) {
				ix.Move(id, randCoord(r, MINX, MAXX), randCoord(r, MINY, MAXY))
			}
			ix.Update(id, 1)
			_, _ = ix.Trigger(id, 100, 120)
		}
		if i == 0 {
			b.Logf("tick %d objects takes %s", NumObjs, time.Since(t0))
		}
	}
}
