package octree

import (
	"encoding/binary"

	"go-octree/util/helpers"
)

// Stream layout:
//
//	header: RootData, sizeof(T) raw bytes
//	body:   node records in breadth-first order, root first
//
//	record: freemask     1 byte
//	        child index  4 bytes, only when freemask != 0
//	        data         8 * sizeof(T) raw bytes, octant order
//
// The child index is the sequence number of the child block in visiting
// order, the root block being 0. It is not a byte offset.
const (
	OctantCount    = 8
	FreemaskSize   = 1
	ChildIndexSize = 4
	RootBlockSize  = 1
)

// host byte order, the format is not portable across architectures
var bin = binary.NativeEndian

func headerSize[T any]() int {
	return helpers.Sizeof[T]()
}

func dataSize[T any]() int {
	return OctantCount * helpers.Sizeof[T]()
}

func recordSize[T any](freemask uint8) int {
	size := FreemaskSize + dataSize[T]()
	if freemask != 0 {
		size += ChildIndexSize
	}
	return size
}
