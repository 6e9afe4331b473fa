package octree

import (
	"go-octree/util/logger"

	"github.com/sirupsen/logrus"
)

// Options tunes allocation and IO of a tree. A nil *Options means
// DefaultOptions.
type Options struct {
	// QueueCapacity is the initial capacity of the breadth-first queue.
	QueueCapacity int
	// ArenaCapacity is the number of node slots reserved up front.
	ArenaCapacity int
	// BufferSize wraps the stream in bufio when positive. A buffered Read
	// may consume bytes past the end of the encoded tree.
	BufferSize int
	Logger     logrus.FieldLogger
}

func DefaultOptions() *Options {
	return &Options{
		QueueCapacity: 64,
		ArenaCapacity: 64,
		BufferSize:    0,
		Logger:        logger.Component("octree"),
	}
}

func (o *Options) withDefaults() *Options {
	d := DefaultOptions()
	if o == nil {
		return d
	}

	cp := *o
	if cp.QueueCapacity <= 0 {
		cp.QueueCapacity = d.QueueCapacity
	}
	if cp.ArenaCapacity <= 0 {
		cp.ArenaCapacity = d.ArenaCapacity
	}
	if cp.BufferSize < 0 {
		cp.BufferSize = 0
	}
	if cp.Logger == nil {
		cp.Logger = d.Logger
	}
	return &cp
}
