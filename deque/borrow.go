package deque

import (
	"errors"
	"fmt"
)

var ErrBorrowed = errors.New("deque: list is borrowed")

// borrow tracks the views open against a list. Any number of readers may be
// open at once, a writer excludes everything else.
type borrow struct {
	readers int
	writer  bool
}

func (b *borrow) mustRead(op string) {
	if b.writer {
		panic(fmt.Errorf("%w: %s while a mutable view is open", ErrBorrowed, op))
	}
}

func (b *borrow) mustMutate(op string) {
	if b.writer {
		panic(fmt.Errorf("%w: %s while a mutable view is open", ErrBorrowed, op))
	}
	if b.readers > 0 {
		panic(fmt.Errorf("%w: %s while %d view(s) are open", ErrBorrowed, op, b.readers))
	}
}

func (b *borrow) share() {
	b.mustRead("Iter")
	b.readers++
}

func (b *borrow) unshare() {
	b.readers--
}

func (b *borrow) lock() {
	b.mustMutate("IterMut")
	b.writer = true
}

func (b *borrow) unlock() {
	b.writer = false
}
