package arena

import (
	"fmt"
	"math"
)

const noneHandle = math.MaxUint32

// Handle identifies a slot in an Arena. It is an index, not an address, and
// stays valid for the lifetime of the arena that issued it.
type Handle struct {
	idx uint32
}

func None() Handle {
	return Handle{noneHandle}
}

func (h Handle) IsNone() bool {
	return h.idx == noneHandle
}

// Offset returns the handle of the i-th slot of the block starting at h.
func (h Handle) Offset(i int) Handle {
	if h.IsNone() {
		panic(ErrNoneHandle)
	}
	return Handle{h.idx + uint32(i)}
}

func (h Handle) Index() uint32 {
	return h.idx
}

func (h Handle) Format(f fmt.State, c rune) {
	if h.IsNone() {
		f.Write([]byte("none"))
		return
	}
	f.Write([]byte(fmt.Sprintf("#%d", h.idx)))
}
