package octree

import (
	"bufio"
	"bytes"
	"io"

	"go-octree/pkg/arena"
	"go-octree/pkg/queue"
	"go-octree/util/helpers"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Read decodes a tree written by Write.
//
// The stream is consumed sequentially. Child indices are read but not
// trusted, and the decoded shape follows the freemasks alone. A stream that
// ends early yields ErrTruncatedStream.
func Read[T any](r io.Reader, opts *Options) (*Octree[T], error) {
	if err := CheckVoxel[T](); err != nil {
		return nil, err
	}

	opts = opts.withDefaults()
	tree := &Octree[T]{
		arena: arena.New[Node[T]](opts.ArenaCapacity),
		root:  arena.None(),
		opts:  opts,
	}

	if err := tree.read(r); err != nil {
		return nil, err
	}
	return tree, nil
}

func (t *Octree[T]) read(r io.Reader) error {
	if t.opts.BufferSize > 0 {
		r = bufio.NewReaderSize(r, t.opts.BufferSize)
	}

	if err := readFull(r, helpers.Bytesof(&t.RootData)); err != nil {
		return errors.Wrap(err, "failed to read header")
	}
	read := headerSize[T]()

	// parent is none only for the root block
	type pending struct {
		parent arena.Handle
		size   uint8
	}

	q := queue.New[pending](t.opts.QueueCapacity)
	q.Push(pending{arena.None(), RootBlockSize})

	records := 0
	var index [ChildIndexSize]byte

	for !q.Empty() {
		p := q.Pop()

		block := t.arena.Alloc(int(p.size))
		if p.parent.IsNone() {
			t.root = block
		} else {
			t.arena.At(p.parent).Children = block
		}

		for i := 0; i < int(p.size); i++ {
			records++
			h := block.Offset(i)
			n := t.arena.At(h)
			n.BlockSize = p.size
			n.Children = arena.None()

			if err := readFull(r, helpers.Bytesof(&n.Freemask)); err != nil {
				return errors.Wrapf(err, "failed to read freemask of record %d", records)
			}

			if n.Freemask != 0 {
				if err := readFull(r, index[:]); err != nil {
					return errors.Wrapf(err, "failed to read child index of record %d", records)
				}
				q.Push(pending{h, uint8(n.ChildCount())})
			}

			if err := readFull(r, helpers.Bytesof(&n.Data)); err != nil {
				return errors.Wrapf(err, "failed to read data of record %d", records)
			}
			read += recordSize[T](n.Freemask)
		}
	}

	t.opts.Logger.WithFields(logrus.Fields{
		"nodes":  records,
		"blocks": t.arena.Blocks(),
		"bytes":  read,
	}).Debug("octree decoded")
	return nil
}

// UnmarshalBinary replaces t with the tree decoded from d. Bytes past the
// end of the encoded tree are ignored.
func (t *Octree[T]) UnmarshalBinary(d []byte) error {
	decoded, err := Read[T](bytes.NewReader(d), t.opts)
	if err != nil {
		return err
	}

	*t = *decoded
	return nil
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errors.WithStack(ErrTruncatedStream)
		}
		return err
	}
	return nil
}
