package libloops_test

import (
	"testing"

	"github.com/2x3systems/goloops/goloops"
	"github.com/2x3systems/goloops/libloops"
	"github.com/stretchr/testify/require"
)

func TestGenerateGuideCurves(t *testing.T) {
	X := mustGrid(t, 4, 4)

	curves, err := libloops.GenerateGuideCurves(X, 0)
	require.NoError(t, err)
	require.Len(t, curves, 5)
	for _, C := range curves {
		require.Len(t, C.Points, 5)
		require.False(t, C.Cyclic)
	}

	curves, err = libloops.GenerateGuideCurves(X, 2)
	require.NoError(t, err)
	require.Len(t, curves, 2)

	torus, err := libloops.NewTorusMesh(8, 5, 3, 1)
	require.NoError(t, err)
	curves, err = libloops.GenerateGuideCurves(torus, 50)
	require.NoError(t, err)
	require.NotEmpty(t, curves)
	for _, C := range curves {
		require.True(t, C.Cyclic)
	}
}

func TestGenerateGuideCurvesNoQuads(t *testing.T) {
	fan, err := libloops.NewTriFanMesh(5)
	require.NoError(t, err)
	curves, err := libloops.GenerateGuideCurves(fan, 50)
	require.NoError(t, err)
	require.Empty(t, curves)
}

func TestGuideCurvesOpts(t *testing.T) {
	X := mustGrid(t, 4, 4)

	_, err := libloops.GuideCurves(X, goloops.Opts{TargetCurves: -3})
	require.ErrorIs(t, err, goloops.ErrBadOpts)

	curves, err := libloops.GuideCurves(X, goloops.Opts{WalkBoundaries: false})
	require.NoError(t, err)
	require.Len(t, curves, 3)
}
