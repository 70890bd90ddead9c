package util

// Stack is a last-in first-out stack. The zero value is an empty stack.
type Stack[A any] struct {
	items []A
}

func (s *Stack[A]) Push(v ...A) {
	s.items = append(s.items, v...)
}

// Pop removes the most recently pushed item
func (s *Stack[A]) Pop() (ret A, ok bool) {
	if len(s.items) == 0 {
		return ret, false
	}
	lastIndex := len(s.items) - 1
	ret = s.items[lastIndex]
	var zero A
	s.items[lastIndex] = zero
	s.items = s.items[:lastIndex]
	return ret, true
}

func (s *Stack[A]) Len() int { return len(s.items) }
