package util

// Queue is a first-in first-out queue. The zero value is an empty queue.
type Queue[A any] struct {
	items []A
}

func (q *Queue[A]) Push(v ...A) {
	q.items = append(q.items, v...)
}

// Pop removes the oldest item
func (q *Queue[A]) Pop() (ret A, ok bool) {
	if len(q.items) == 0 {
		return ret, false
	}
	ret = q.items[0]
	var zero A
	q.items[0] = zero
	q.items = q.items[1:]
	return ret, true
}

// PopAll empties the queue and returns its items, oldest first
func (q *Queue[A]) PopAll() []A {
	defer func() {
		q.items = nil
	}()
	return q.items
}

func (q *Queue[A]) Len() int { return len(q.items) }
