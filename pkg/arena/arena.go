package arena

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var (
	ErrNoneHandle    = errors.New("none handle dereferenced")
	ErrInvalidHandle = errors.New("handle out of arena bounds")
	ErrBlockTooLarge = errors.New("block exceeds arena address space")
)

func New[E any](capacity int) *Arena[E] {
	return &Arena[E]{
		slots: make([]E, 0, capacity),
	}
}

// Arena is the exclusive owner of E values. Values are allocated in
// contiguous blocks and never freed individually.
//
// Pointers returned by At are invalidated by the next Alloc.
type Arena[E any] struct {
	slots  []E
	blocks int
}

// Alloc reserves n contiguous zero-valued slots and returns the handle of
// the first one.
func (a *Arena[E]) Alloc(n int) Handle {
	top := len(a.slots)
	if n < 0 || uint64(top)+uint64(n) >= noneHandle {
		panic(errors.Wrapf(ErrBlockTooLarge, "alloc %d at %d", n, top))
	}

	a.slots = slices.Grow(a.slots, n)
	var zero E
	for i := 0; i < n; i++ {
		a.slots = append(a.slots, zero)
	}
	a.blocks++
	return Handle{uint32(top)}
}

func (a *Arena[E]) At(h Handle) *E {
	if h.IsNone() {
		panic(ErrNoneHandle)
	}
	if int(h.idx) >= len(a.slots) {
		panic(errors.Wrapf(ErrInvalidHandle, "handle %v, len %d", h, len(a.slots)))
	}
	return &a.slots[h.idx]
}

// Reserve grows the backing storage so that n more slots can be allocated
// without copying.
func (a *Arena[E]) Reserve(n int) {
	a.slots = slices.Grow(a.slots, n)
}

// Len returns the number of allocated slots.
func (a *Arena[E]) Len() int {
	return len(a.slots)
}

// Blocks returns the number of Alloc calls served.
func (a *Arena[E]) Blocks() int {
	return a.blocks
}
