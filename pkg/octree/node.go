package octree

import (
	"go-octree/pkg/arena"
	"go-octree/util/helpers"
)

// Node holds the payload of its eight octants and, when Freemask is not
// zero, the handle of a block of popcount(Freemask) child nodes. Children
// are stored in octant order: the child of the lowest set bit comes first.
type Node[T any] struct {
	Freemask uint8
	Children arena.Handle
	Data     [OctantCount]T

	// BlockSize is the number of siblings in the block this node was
	// allocated in.
	BlockSize uint8
}

func (n *Node[T]) HasChild(octant int) bool {
	return helpers.GetBit(n.Freemask, octant)
}

func (n *Node[T]) ChildCount() int {
	return helpers.OnesCount(n.Freemask)
}

func (n *Node[T]) IsLeaf() bool {
	return n.Freemask == 0
}

// ChildOffset returns the position of the child of octant inside the
// children block. Only meaningful when HasChild(octant).
func (n *Node[T]) ChildOffset(octant int) int {
	return helpers.OnesCountBelow(n.Freemask, octant)
}
