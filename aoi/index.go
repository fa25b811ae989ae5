package aoi

import (
	"fmt"
	"math"

	"github.com/tutumagi/sweepaoi/metrics"
	"go.uber.org/zap"
)

type objectState uint8

const (
	stateFree objectState = iota
	stateReserved
)

// nilSlot marks the end of an axis list
const nilSlot int32 = -1

// object one slot of the index
type object struct {
	id    ID
	pos   [axisCount]Coord // current position, also while moving
	start [axisCount]Coord // position when the move started
	dest  [axisCount]Coord // move destination
	dir   [axisCount]float32
	rate  float32 // phase speed of the easing wave

	elapsed   int32 // ticks since the move started
	remaining int32 // ticks before the move ends
	speed     int32

	state   objectState
	payload interface{}

	prev [axisCount]int32
	next [axisCount]int32

	cur *idList // scratch for the next snapshot
	old *idList // snapshot of the last trigger
}

func (o *object) String() string {
	return fmt.Sprintf("<object %d> (%d,%d) speed:%d remaining:%d", o.id, o.pos[axisX], o.pos[axisY], o.speed, o.remaining)
}

// Index area of interest index with a fixed number of slots
type Index struct {
	nextID ID
	mask   int32
	count  int

	slots []object
	heads [axisCount]int32

	events []Event

	log      *zap.Logger
	reporter metrics.Reporter
}

// Option configures an Index
type Option func(*Index)

// WithLogger sets the logger used for warnings
func WithLogger(l *zap.Logger) Option {
	return func(ix *Index) {
		if l != nil {
			ix.log = l
		}
	}
}

// WithReporter reports trigger statistics to r
func WithReporter(r metrics.Reporter) Option {
	return func(ix *Index) {
		ix.reporter = r
	}
}

// New index holding at most capacity entities, capacity must be a power of
// two no larger than MaxCapacity
func New(capacity int, opts ...Option) (*Index, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 || capacity > MaxCapacity {
		return nil, ErrInvalidCapacity
	}
	ix := &Index{
		mask:   int32(capacity - 1),
		slots:  make([]object, capacity),
		heads:  [axisCount]int32{nilSlot, nilSlot},
		events: make([]Event, 0, capacity),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix, nil
}

// Cap number of slots
func (ix *Index) Cap() int {
	return len(ix.slots)
}

// Len number of live entities
func (ix *Index) Len() int {
	return ix.count
}

func (ix *Index) slotOf(id ID) int32 {
	return int32(id) & ix.mask
}

// allocID probes at most Cap() ids and claims the first free slot
func (ix *Index) allocID() (ID, int32) {
	for i := 0; i < len(ix.slots); i++ {
		id := ix.nextID
		ix.nextID++
		if id < 0 {
			// counter wrapped, fold back into the non negative range
			id = ix.nextID + math.MaxInt32
		}
		slot := ix.slotOf(id)
		obj := &ix.slots[slot]
		if obj.state == stateFree {
			*obj = object{}
			obj.state = stateReserved
			obj.id = id
			return id, slot
		}
	}
	return InvalidID, nilSlot
}

func (ix *Index) resolve(id ID) (*object, int32) {
	if id < 0 {
		return nil, nilSlot
	}
	slot := ix.slotOf(id)
	obj := &ix.slots[slot]
	if obj.state == stateFree || obj.id != id {
		return nil, nilSlot
	}
	return obj, slot
}

// Enter a new entity at (0, 0) carrying payload, returns its id. It is linked
// before every other entity standing on 0.
//	the entity should be placed with Locate before the first Trigger
func (ix *Index) Enter(payload interface{}) (ID, error) {
	id, slot := ix.allocID()
	if id == InvalidID {
		ix.log.Warn("aoi index is full", zap.Int("capacity", len(ix.slots)))
		return InvalidID, ErrCapacityExhausted
	}
	obj := &ix.slots[slot]
	ix.insertHead(slot)
	obj.cur = newIDList(DefaultListSize)
	obj.old = newIDList(DefaultListSize)
	obj.payload = payload
	ix.count++
	return id, nil
}

// Leave removes the entity, unknown ids are ignored
func (ix *Index) Leave(id ID) {
	obj, slot := ix.resolve(id)
	if obj == nil {
		return
	}
	ix.remove(slot)
	*obj = object{}
	obj.state = stateFree
	ix.count--
}

// Contains whether id is a live entity
func (ix *Index) Contains(id ID) bool {
	obj, _ := ix.resolve(id)
	return obj != nil
}

// Payload attached on Enter, nil for unknown ids
func (ix *Index) Payload(id ID) interface{} {
	obj, _ := ix.resolve(id)
	if obj == nil {
		return nil
	}
	return obj.payload
}

// Pos current position of the entity
func (ix *Index) Pos(id ID) (x, y Coord, ok bool) {
	obj, _ := ix.resolve(id)
	if obj == nil {
		return 0, 0, false
	}
	return obj.pos[axisX], obj.pos[axisY], true
}

// Around returns at most max ids found in sight by the last Trigger of id
func (ix *Index) Around(id ID, max int) []ID {
	obj, _ := ix.resolve(id)
	if obj == nil || max <= 0 {
		return nil
	}
	n := obj.old.len()
	if max < n {
		n = max
	}
	out := make([]ID, n)
	copy(out, obj.old.ids[:n])
	return out
}
