package dtypes

// Generic containers used by the parser and the hub.

type Stack[T comparable] struct {
	vals []T
}

func NewStack[T comparable]() *Stack[T] { return &Stack[T]{vals: []T{}} }

func (s *Stack[T]) Push(val T) {
	s.vals = append(s.vals, val)
}

func (s *Stack[T]) Pop() (T, bool) {
	if len(s.vals) == 0 {
		var zero T
		return zero, false
	}
	top := s.vals[len(s.vals)-1]
	s.vals = s.vals[:len(s.vals)-1]
	return top, true
}

func (s *Stack[T]) HeadValue() (T, bool) {
	if len(s.vals) == 0 {
		var zero T
		return zero, false
	}
	return s.vals[len(s.vals)-1], true
}

func (s *Stack[T]) Len() int {
	return len(s.vals)
}

type Set[T comparable] map[T]struct{}

func MakeFromSlice[T comparable](slice []T) Set[T] {
	result := make(Set[T])
	for _, v := range slice {
		result[v] = struct{}{}
	}
	return result
}

func (s Set[T]) Contains(e T) bool {
	_, ok := s[e]
	return ok
}
