package helpers

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// GetBit reports whether bit i of b is set.
func GetBit[T constraints.Unsigned](b T, i int) bool {
	return b&(1<<i) != 0
}

func SetBit[T constraints.Unsigned](b *T, i int, val bool) {
	if val {
		*b |= 1 << i
	} else {
		*b &^= 1 << i
	}
}

// OnesCount returns the number of set bits in b.
func OnesCount[T constraints.Unsigned](b T) int {
	return bits.OnesCount64(uint64(b))
}

// OnesCountBelow returns the number of set bits in b strictly below bit i.
func OnesCountBelow[T constraints.Unsigned](b T, i int) int {
	return OnesCount(b & (1<<i - 1))
}
