package octree

import "github.com/pkg/errors"

var (
	ErrTruncatedStream   = errors.New("truncated stream")
	ErrUnsupportedVoxel  = errors.New("voxel type must be fixed size plain data")
	ErrCycle             = errors.New("node graph is not a tree")
	ErrEmptyMask         = errors.New("empty freemask")
	ErrAlreadySubdivided = errors.New("node already has children")
	ErrInvalidOctant     = errors.New("octant out of range")
	ErrInvalidRoot       = errors.New("root must address a single node block")
	ErrDanglingChildren  = errors.New("children handle does not match freemask")
	ErrBlockSizeMismatch = errors.New("block size does not match parent freemask")
)
