// Package octree implements an arena backed sparse voxel octree and its
// binary stream format.
package octree

import (
	"bytes"

	"go-octree/pkg/arena"
	"go-octree/pkg/queue"
	"go-octree/util/helpers"

	"github.com/pkg/errors"
)

// New creates a tree holding a single leaf root node.
//
// T is the per octant payload. It must be plain data (no pointers, slices,
// strings, maps or interfaces, directly or in nested fields) because it is
// persisted by copying its memory.
func New[T any](opts *Options) (*Octree[T], error) {
	if err := CheckVoxel[T](); err != nil {
		return nil, err
	}

	opts = opts.withDefaults()
	tree := &Octree[T]{
		arena: arena.New[Node[T]](opts.ArenaCapacity),
		opts:  opts,
	}

	tree.root = tree.arena.Alloc(RootBlockSize)
	root := tree.arena.At(tree.root)
	root.Children = arena.None()
	root.BlockSize = RootBlockSize
	return tree, nil
}

// CheckVoxel returns ErrUnsupportedVoxel when T cannot be copied as raw
// bytes.
func CheckVoxel[T any]() error {
	if err := helpers.CheckPlain[T](); err != nil {
		return errors.Wrapf(ErrUnsupportedVoxel, "%v", err)
	}
	return nil
}

// Octree owns all of its nodes. It must not be used concurrently while
// being modified, written or read.
type Octree[T any] struct {
	arena *arena.Arena[Node[T]]
	root  arena.Handle
	opts  *Options

	// RootData is the payload of the whole volume.
	RootData T
}

type Stats struct {
	Nodes  int
	Leaves int
	Blocks int
	Depth  int
}

func (t *Octree[T]) Root() arena.Handle {
	return t.root
}

// Node resolves h. The pointer is invalidated by the next Subdivide.
func (t *Octree[T]) Node(h arena.Handle) *Node[T] {
	return t.arena.At(h)
}

// Subdivide allocates children for the octants set in mask of the leaf h
// and returns the handle of the new block.
func (t *Octree[T]) Subdivide(h arena.Handle, mask uint8) (arena.Handle, error) {
	if mask == 0 {
		return arena.None(), ErrEmptyMask
	}
	if !t.arena.At(h).IsLeaf() {
		return arena.None(), errors.Wrapf(ErrAlreadySubdivided, "node %v", h)
	}

	count := helpers.OnesCount(mask)
	block := t.arena.Alloc(count)
	for i := 0; i < count; i++ {
		child := t.arena.At(block.Offset(i))
		child.Children = arena.None()
		child.BlockSize = uint8(count)
	}

	n := t.arena.At(h)
	n.Freemask = mask
	n.Children = block
	return block, nil
}

// Child returns the handle of the child node of octant, if h has one.
func (t *Octree[T]) Child(h arena.Handle, octant int) (arena.Handle, bool) {
	if octant < 0 || octant >= OctantCount {
		panic(errors.Wrapf(ErrInvalidOctant, "octant %d", octant))
	}

	n := t.arena.At(h)
	if !n.HasChild(octant) {
		return arena.None(), false
	}
	return n.Children.Offset(n.ChildOffset(octant)), true
}

// Walk visits every node breadth first, in the order nodes are stored in
// the stream. fn must not modify the tree structure. A non-nil error from
// fn stops the walk and is returned as is.
func (t *Octree[T]) Walk(fn func(h arena.Handle, n *Node[T]) error) error {
	return t.walk(func(h arena.Handle, n *Node[T], _ int) error {
		return fn(h, n)
	})
}

func (t *Octree[T]) walk(fn func(h arena.Handle, n *Node[T], depth int) error) error {
	type pending struct {
		block arena.Handle
		size  int
		depth int
	}

	q := queue.New[pending](t.opts.QueueCapacity)
	q.Push(pending{t.root, RootBlockSize, 0})
	visited := 0

	for !q.Empty() {
		p := q.Pop()
		for i := 0; i < p.size; i++ {
			visited++
			if visited > t.arena.Len() {
				return errors.Wrapf(ErrCycle, "visited %d of %d nodes", visited, t.arena.Len())
			}

			h := p.block.Offset(i)
			n := t.arena.At(h)
			if err := fn(h, n, p.depth); err != nil {
				return err
			}
			if !n.IsLeaf() {
				q.Push(pending{n.Children, n.ChildCount(), p.depth + 1})
			}
		}
	}

	return nil
}

// Validate checks the structural invariants the stream format relies on:
// the root is a single node block, children are present exactly when the
// freemask is not empty, and every children block is as large as the
// parent's freemask population.
func (t *Octree[T]) Validate() error {
	if t.root.IsNone() || int(t.root.Index()) >= t.arena.Len() {
		return errors.Wrapf(ErrInvalidRoot, "root %v", t.root)
	}
	if size := t.arena.At(t.root).BlockSize; size != RootBlockSize {
		return errors.Wrapf(ErrInvalidRoot, "root block size %d", size)
	}

	return t.Walk(func(h arena.Handle, n *Node[T]) error {
		if n.IsLeaf() {
			if !n.Children.IsNone() {
				return errors.Wrapf(ErrDanglingChildren, "leaf %v points to %v", h, n.Children)
			}
			return nil
		}

		count := n.ChildCount()
		if n.Children.IsNone() || int(n.Children.Index())+count > t.arena.Len() {
			return errors.Wrapf(ErrDanglingChildren, "node %v mask %08b children %v", h, n.Freemask, n.Children)
		}
		for i := 0; i < count; i++ {
			if size := t.arena.At(n.Children.Offset(i)).BlockSize; int(size) != count {
				return errors.Wrapf(ErrBlockSizeMismatch, "node %v child %d: %d != %d", h, i, size, count)
			}
		}
		return nil
	})
}

func (t *Octree[T]) Stats() (Stats, error) {
	s := Stats{Blocks: 1}
	err := t.walk(func(_ arena.Handle, n *Node[T], depth int) error {
		s.Nodes++
		if n.IsLeaf() {
			s.Leaves++
		} else {
			s.Blocks++
		}
		if depth > s.Depth {
			s.Depth = depth
		}
		return nil
	})
	return s, err
}

// EncodedSize returns the exact number of bytes Write produces.
func (t *Octree[T]) EncodedSize() (int, error) {
	size := headerSize[T]()
	err := t.Walk(func(_ arena.Handle, n *Node[T]) error {
		size += recordSize[T](n.Freemask)
		return nil
	})
	return size, err
}

var errNotEqual = errors.New("not equal")

// Equal reports whether a and b have the same shape and hold the same
// payload bytes. Handles are not compared.
func Equal[T any](a, b *Octree[T]) bool {
	if !bytes.Equal(helpers.Bytesof(&a.RootData), helpers.Bytesof(&b.RootData)) {
		return false
	}

	type entry struct {
		mask uint8
		data [OctantCount]T
	}

	var nodes []entry
	err := a.Walk(func(_ arena.Handle, n *Node[T]) error {
		nodes = append(nodes, entry{n.Freemask, n.Data})
		return nil
	})
	if err != nil {
		return false
	}

	i := 0
	err = b.Walk(func(_ arena.Handle, n *Node[T]) error {
		if i >= len(nodes) || nodes[i].mask != n.Freemask ||
			!bytes.Equal(helpers.Bytesof(&nodes[i].data), helpers.Bytesof(&n.Data)) {
			return errNotEqual
		}
		i++
		return nil
	})
	return err == nil && i == len(nodes)
}
