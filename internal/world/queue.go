package world

// orderedSet is a FIFO that holds each element at most once.
type orderedSet[T comparable] struct {
	items   []T
	head    int
	members map[T]struct{}
}

func newOrderedSet[T comparable]() orderedSet[T] {
	return orderedSet[T]{members: make(map[T]struct{})}
}

// Push appends v unless it is already queued. It reports whether v was added.
func (q *orderedSet[T]) Push(v T) bool {
	if _, ok := q.members[v]; ok {
		return false
	}
	q.members[v] = struct{}{}
	q.items = append(q.items, v)
	return true
}

// Pop removes the oldest element.
func (q *orderedSet[T]) Pop() (T, bool) {
	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	delete(q.members, v)
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return v, true
}

// Peek returns the oldest element without removing it.
func (q *orderedSet[T]) Peek() (T, bool) {
	if q.head >= len(q.items) {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

func (q *orderedSet[T]) Len() int { return len(q.items) - q.head }

func (q *orderedSet[T]) Contains(v T) bool {
	_, ok := q.members[v]
	return ok
}

func (q *orderedSet[T]) Clear() {
	clear(q.members)
	q.items = q.items[:0]
	q.head = 0
}
