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

// Write encodes the tree to w. The first failing write aborts the encoding
// and leaves w with a partial stream.
func (t *Octree[T]) Write(w io.Writer) error {
	var buffered *bufio.Writer
	if t.opts.BufferSize > 0 {
		buffered = bufio.NewWriterSize(w, t.opts.BufferSize)
		w = buffered
	}

	if _, err := w.Write(helpers.Bytesof(&t.RootData)); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	written := headerSize[T]()

	type pending struct {
		block arena.Handle
		size  uint8
	}

	q := queue.New[pending](t.opts.QueueCapacity)
	q.Push(pending{t.root, RootBlockSize})

	// block 0 is the root block
	next := uint32(1)
	blocks := 1
	records := 0
	var index [ChildIndexSize]byte

	for !q.Empty() {
		p := q.Pop()
		for i := 0; i < int(p.size); i++ {
			if records++; records > t.arena.Len() {
				return errors.Wrapf(ErrCycle, "record %d of %d nodes", records, t.arena.Len())
			}

			n := t.arena.At(p.block.Offset(i))
			if _, err := w.Write(helpers.Bytesof(&n.Freemask)); err != nil {
				return errors.Wrapf(err, "failed to write freemask of record %d", records)
			}

			if n.Freemask != 0 {
				count := n.ChildCount()
				bin.PutUint32(index[:], next)
				if _, err := w.Write(index[:]); err != nil {
					return errors.Wrapf(err, "failed to write child index of record %d", records)
				}
				q.Push(pending{n.Children, uint8(count)})
				next += uint32(count)
				blocks++
			}

			if _, err := w.Write(helpers.Bytesof(&n.Data)); err != nil {
				return errors.Wrapf(err, "failed to write data of record %d", records)
			}
			written += recordSize[T](n.Freemask)
		}
	}

	if buffered != nil {
		if err := buffered.Flush(); err != nil {
			return errors.Wrap(err, "failed to flush")
		}
	}

	t.opts.Logger.WithFields(logrus.Fields{
		"nodes":  records,
		"blocks": blocks,
		"bytes":  written,
	}).Debug("octree encoded")
	return nil
}

func (t *Octree[T]) MarshalBinary() ([]byte, error) {
	buf := bytes.Buffer{}
	if size, err := t.EncodedSize(); err == nil {
		buf.Grow(size)
	}

	if err := t.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
