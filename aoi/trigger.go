package aoi

import "go.uber.org/zap"

// metric names reported by Trigger
const (
	MetricTriggerScanned = "aoi_trigger_scanned"
	MetricTriggerEnter   = "aoi_trigger_enter"
	MetricTriggerLeave   = "aoi_trigger_leave"
)

// Trigger computes which entities entered or left the sight of id since its
// previous Trigger.
//
// An entity within enterRadius is in sight. An entity between enterRadius and
// leaveRadius stays in sight only if it already was, so objects hovering on a
// single boundary do not flicker. Only the x list bounds the scan; entities
// inside the x window but far away on y are checked and excluded.
//
// The returned slice is owned by the index and is overwritten by the next
// Trigger call on the same index.
func (ix *Index) Trigger(id ID, enterRadius, leaveRadius Coord) ([]Event, error) {
	if leaveRadius <= enterRadius {
		return nil, ErrInvalidRadius
	}
	obj, _ := ix.resolve(id)
	if obj == nil {
		return nil, nil
	}

	cur := obj.cur
	cur.reset()

	enter2 := int64(enterRadius) * int64(enterRadius)
	leave2 := int64(leaveRadius) * int64(leaveRadius)
	scanned := 0

	for dir := 0; dir < 2; dir++ {
		var p int32
		if dir == 0 {
			p = obj.prev[axisX]
		} else {
			p = obj.next[axisX]
		}
		for p != nilSlot {
			other := &ix.slots[p]
			dx := abs64(int64(obj.pos[axisX]) - int64(other.pos[axisX]))
			if dx > int64(leaveRadius) {
				break
			}
			scanned++
			dy := abs64(int64(obj.pos[axisY]) - int64(other.pos[axisY]))
			d2 := dx*dx + dy*dy
			if d2 <= enter2 {
				cur.insert(other.id)
			} else if d2 <= leave2 && obj.old.contains(other.id) {
				cur.insert(other.id)
			}
			if dir == 0 {
				p = other.prev[axisX]
			} else {
				p = other.next[axisX]
			}
		}
	}

	events := ix.diff(obj.old, cur)

	// swap snapshots
	obj.cur, obj.old = obj.old, cur

	ix.report(scanned, events)
	return events, nil
}

// diff merges two ascending snapshots into the shared event buffer
func (ix *Index) diff(old, cur *idList) []Event {
	events := ix.events[:0]
	o, n := old.ids, cur.ids
	oi, ni := 0, 0
	for oi < len(o) || ni < len(n) {
		if oi < len(o) && !ix.alive(o[oi]) {
			// left the index since the last trigger, nobody to report
			oi++
			continue
		}
		switch {
		case oi >= len(o):
			events = append(events, Event{ID: n[ni], Kind: Enter})
			ni++
		case ni >= len(n):
			events = append(events, Event{ID: o[oi], Kind: Leave})
			oi++
		case n[ni] < o[oi]:
			events = append(events, Event{ID: n[ni], Kind: Enter})
			ni++
		case n[ni] == o[oi]:
			oi++
			ni++
		default:
			events = append(events, Event{ID: o[oi], Kind: Leave})
			oi++
		}
	}
	ix.events = events
	return events
}

func (ix *Index) alive(id ID) bool {
	obj, _ := ix.resolve(id)
	return obj != nil
}

func (ix *Index) report(scanned int, events []Event) {
	if ix.reporter == nil {
		return
	}
	enter, leave := 0, 0
	for _, e := range events {
		if e.Kind == Enter {
			enter++
		} else {
			leave++
		}
	}
	if err := ix.reporter.ReportSummary(MetricTriggerScanned, nil, float64(scanned)); err != nil {
		ix.log.Debug("report trigger scan failed", zap.Error(err))
	}
	if enter > 0 {
		if err := ix.reporter.ReportCount(MetricTriggerEnter, nil, float64(enter)); err != nil {
			ix.log.Debug("report enter count failed", zap.Error(err))
		}
	}
	if leave > 0 {
		if err := ix.reporter.ReportCount(MetricTriggerLeave, nil, float64(leave)); err != nil {
			ix.log.Debug("report leave count failed", zap.Error(err))
		}
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
