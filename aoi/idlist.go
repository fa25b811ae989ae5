package aoi

// idList ascending, duplicate free list of entity ids.
//	the merge diff in Trigger relies on both snapshots being sorted
type idList struct {
	ids []ID
}

func newIDList(size int) *idList {
	if size <= 0 {
		size = DefaultListSize
	}
	return &idList{ids: make([]ID, 0, size)}
}

func (l *idList) len() int {
	return len(l.ids)
}

func (l *idList) reset() {
	l.ids = l.ids[:0]
}

// insert id keeping the order, no-op if id already exists
func (l *idList) insert(id ID) {
	n := len(l.ids)
	if n == cap(l.ids) {
		size := 2 * cap(l.ids)
		if size == 0 {
			size = DefaultListSize
		}
		grown := make([]ID, n, size)
		copy(grown, l.ids)
		l.ids = grown
	}

	// fast path, candidates often arrive in order
	if n == 0 || id > l.ids[n-1] {
		l.ids = append(l.ids, id)
		return
	}

	i := 0
	for i < n && l.ids[i] < id {
		i++
	}
	if l.ids[i] == id {
		return
	}
	l.ids = l.ids[:n+1]
	copy(l.ids[i+1:], l.ids[i:n])
	l.ids[i] = id
}

func (l *idList) contains(id ID) bool {
	n := len(l.ids)
	if n == 0 || id > l.ids[n-1] {
		return false
	}
	for _, v := range l.ids {
		if v == id {
			return true
		}
		if v > id {
			return false
		}
	}
	return false
}
