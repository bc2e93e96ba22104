// Package deque provides a generic doubly linked list that can be pushed to,
// popped from and walked from both ends.
package deque

type node[T any] struct {
	prev *node[T]
	next *node[T]
	elem T
}

// List owns every node reachable from head. The prev and next links between
// nodes only record adjacency. The zero value is an empty list.
type List[T any] struct {
	head *node[T]
	tail *node[T]
	len  int

	guard borrow
}

func New[T any]() *List[T] {
	return &List[T]{}
}

func (l *List[T]) Len() int { return l.len }

func (l *List[T]) PushFront(elem T) {
	l.guard.mustMutate("PushFront")

	n := &node[T]{elem: elem}
	if l.head != nil {
		l.head.prev = n
		n.next = l.head
	} else {
		l.tail = n
	}

	l.head = n
	l.len++
}

func (l *List[T]) PushBack(elem T) {
	l.guard.mustMutate("PushBack")

	n := &node[T]{elem: elem}
	if l.tail != nil {
		l.tail.next = n
		n.prev = l.tail
	} else {
		l.head = n
	}

	l.tail = n
	l.len++
}

// PopFront removes the first element and returns it. It reports false and
// leaves the list untouched when the list is empty.
func (l *List[T]) PopFront() (T, bool) {
	l.guard.mustMutate("PopFront")

	n := l.head
	if n == nil {
		var zero T
		return zero, false
	}

	l.head = n.next
	if l.head != nil {
		l.head.prev = nil
	} else {
		l.tail = nil
	}

	l.len--
	return n.release(), true
}

func (l *List[T]) PopBack() (T, bool) {
	l.guard.mustMutate("PopBack")

	n := l.tail
	if n == nil {
		var zero T
		return zero, false
	}

	l.tail = n.prev
	if l.tail != nil {
		l.tail.next = nil
	} else {
		l.head = nil
	}

	l.len--
	return n.release(), true
}

func (l *List[T]) Front() (T, bool) {
	l.guard.mustRead("Front")

	if l.head == nil {
		var zero T
		return zero, false
	}
	return l.head.elem, true
}

func (l *List[T]) Back() (T, bool) {
	l.guard.mustRead("Back")

	if l.tail == nil {
		var zero T
		return zero, false
	}
	return l.tail.elem, true
}

// FrontMut returns a pointer to the first element. The pointer stays valid
// until that element is popped.
func (l *List[T]) FrontMut() (*T, bool) {
	l.guard.mustMutate("FrontMut")

	if l.head == nil {
		return nil, false
	}
	return &l.head.elem, true
}

// BackMut returns a pointer to the last element. Like FrontMut it needs
// exclusive access to the list.
func (l *List[T]) BackMut() (*T, bool) {
	l.guard.mustMutate("BackMut")

	if l.tail == nil {
		return nil, false
	}
	return &l.tail.elem, true
}

// Clear tears the list down one node at a time, front to back, so every
// element is handed out of its node before the node is dropped.
func (l *List[T]) Clear() {
	for {
		if _, ok := l.PopFront(); !ok {
			return
		}
	}
}

// Values copies the elements into a slice, front to back.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.len)
	for v := range l.All() {
		out = append(out, v)
	}

	return out
}

// release extracts the element and cuts the node loose.
func (n *node[T]) release() T {
	elem := n.elem

	var zero T
	n.elem = zero
	n.prev, n.next = nil, nil
	return elem
}
