package deque

import "iter"

// cursor walks a snapshot of a list from both ends. left counts the nodes
// between front and back inclusive, so the two ends meet exactly when it
// reaches zero.
type cursor[T any] struct {
	front *node[T]
	back  *node[T]
	left  int
}

func (c *cursor[T]) next() *node[T] {
	if c.left == 0 {
		return nil
	}

	n := c.front
	c.front = n.next
	c.left--
	return n
}

func (c *cursor[T]) nextBack() *node[T] {
	if c.left == 0 {
		return nil
	}

	n := c.back
	c.back = n.prev
	c.left--
	return n
}

func (c *cursor[T]) reset() {
	c.front, c.back, c.left = nil, nil, 0
}

// Iter is a read-only view over a list. Several may be open on the same list;
// none may be open while the list is modified.
type Iter[T any] struct {
	list *List[T]
	cur  cursor[T]
}

func (l *List[T]) Iter() *Iter[T] {
	l.guard.share()

	it := &Iter[T]{list: l, cur: cursor[T]{front: l.head, back: l.tail, left: l.len}}
	if it.cur.left == 0 {
		it.Close()
	}
	return it
}

func (it *Iter[T]) Next() (T, bool) {
	return it.yield(it.cur.next())
}

func (it *Iter[T]) NextBack() (T, bool) {
	return it.yield(it.cur.nextBack())
}

// Len reports how many elements are still to be produced.
func (it *Iter[T]) Len() int { return it.cur.left }

// Close gives the borrow back to the list. It is called automatically once the
// view is exhausted and is safe to call more than once.
func (it *Iter[T]) Close() {
	if it.list == nil {
		return
	}

	it.list.guard.unshare()
	it.list = nil
	it.cur.reset()
}

func (it *Iter[T]) yield(n *node[T]) (T, bool) {
	if n == nil {
		var zero T
		return zero, false
	}

	if it.cur.left == 0 {
		it.Close()
	}
	return n.elem, true
}

// IterMut hands out pointers into the list. It holds the list exclusively
// until it is exhausted or closed.
type IterMut[T any] struct {
	list *List[T]
	cur  cursor[T]
}

func (l *List[T]) IterMut() *IterMut[T] {
	l.guard.lock()

	it := &IterMut[T]{list: l, cur: cursor[T]{front: l.head, back: l.tail, left: l.len}}
	if it.cur.left == 0 {
		it.Close()
	}
	return it
}

func (it *IterMut[T]) Next() (*T, bool) {
	return it.yield(it.cur.next())
}

func (it *IterMut[T]) NextBack() (*T, bool) {
	return it.yield(it.cur.nextBack())
}

func (it *IterMut[T]) Len() int { return it.cur.left }

func (it *IterMut[T]) Close() {
	if it.list == nil {
		return
	}

	it.list.guard.unlock()
	it.list = nil
	it.cur.reset()
}

func (it *IterMut[T]) yield(n *node[T]) (*T, bool) {
	if n == nil {
		return nil, false
	}

	if it.cur.left == 0 {
		it.Close()
	}
	return &n.elem, true
}

// IntoIter owns the nodes it was built from and pops them as it goes.
type IntoIter[T any] struct {
	list List[T]
}

// IntoIter moves every node out of l into a consuming view. l is left empty
// and can be reused.
func (l *List[T]) IntoIter() *IntoIter[T] {
	l.guard.mustMutate("IntoIter")

	it := &IntoIter[T]{list: List[T]{head: l.head, tail: l.tail, len: l.len}}
	l.head, l.tail, l.len = nil, nil, 0
	return it
}

func (it *IntoIter[T]) Next() (T, bool) { return it.list.PopFront() }

func (it *IntoIter[T]) NextBack() (T, bool) { return it.list.PopBack() }

func (it *IntoIter[T]) Len() int { return it.list.Len() }

// Close drops whatever the view has not produced yet.
func (it *IntoIter[T]) Close() { it.list.Clear() }

// All ranges over the list front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.Iter()
		defer it.Close()

		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward ranges over the list back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.Iter()
		defer it.Close()

		for v, ok := it.NextBack(); ok; v, ok = it.NextBack() {
			if !yield(v) {
				return
			}
		}
	}
}

// Drain empties the list front to back. Elements left over when the loop
// breaks early are dropped as well.
func (l *List[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.IntoIter()
		defer it.Close()

		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}
