package chunk

import "github.com/daviszhen/colstore/pkg/common"

// Cursor walks a container in logical order. It is used where two
// containers with different buffer layouts have to be visited in lockstep.
type Cursor[T common.Element] struct {
	cont *Container[T]
	bi   int
	off  int
}

func (cont *Container[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{cont: cont}
}

func (cur *Cursor[T]) Valid() bool {
	for cur.bi < len(cur.cont.buffers) && cur.off >= cur.cont.buffers[cur.bi].Len() {
		cur.bi++
		cur.off = 0
	}
	return cur.bi < len(cur.cont.buffers)
}

// Ptr points at the current value. Valid must have returned true.
func (cur *Cursor[T]) Ptr() *T {
	return &cur.cont.buffers[cur.bi].values[cur.off]
}

func (cur *Cursor[T]) Next() {
	cur.off++
}
