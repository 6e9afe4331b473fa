package octree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeChildren(t *testing.T) {
	n := Node[uint8]{Freemask: 0b10100110}

	require.False(t, n.IsLeaf())
	require.Equal(t, 4, n.ChildCount())

	present := []int{}
	offsets := []int{}
	for octant := 0; octant < OctantCount; octant++ {
		if n.HasChild(octant) {
			present = append(present, octant)
			offsets = append(offsets, n.ChildOffset(octant))
		}
	}
	require.Equal(t, []int{1, 2, 5, 7}, present)
	require.Equal(t, []int{0, 1, 2, 3}, offsets)

	leaf := Node[uint8]{}
	require.True(t, leaf.IsLeaf())
	require.Equal(t, 0, leaf.ChildCount())
}

func TestRecordSize(t *testing.T) {
	require.Equal(t, 1+8, recordSize[uint8](0))
	require.Equal(t, 1+4+8, recordSize[uint8](0b1))
	require.Equal(t, 1+4+64, recordSize[voxel](0xff))
	require.Equal(t, 8, headerSize[voxel]())
}
