package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegionTypeFromLabel(t *testing.T) {
	typ, ok := RegionTypeFromLabel(2)
	require.True(t, ok)
	require.Equal(t, IDBlock, typ)

	_, ok = RegionTypeFromLabel(7)
	require.False(t, ok)
}

func TestBubbleClassFromLabel(t *testing.T) {
	cls, ok := BubbleClassFromLabel(1)
	require.True(t, ok)
	require.Equal(t, Unfilled, cls)
	require.Equal(t, "unfilled", cls.String())

	_, ok = BubbleClassFromLabel(-1)
	require.False(t, ok)
}

func TestRotationDegrees(t *testing.T) {
	require.Equal(t, 270, Rotate270.Degrees())
	require.Len(t, Rotations, 4)
}
