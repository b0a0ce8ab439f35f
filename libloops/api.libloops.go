package libloops

import (
	"github.com/2x3systems/goloops/goloops"
)

// LoopWalker traces edge loops over a read-only goloops.Mesh.
//
// A LoopWalker holds no per-pass state, so one may serve any number of concurrent passes.
type LoopWalker struct {
	mesh goloops.Mesh
	opts goloops.Opts
}

// NewLoopWalker returns a LoopWalker over the given mesh.  Opts are normalized via Validate().
func NewLoopWalker(mesh goloops.Mesh, opts goloops.Opts) (*LoopWalker, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &LoopWalker{
		mesh: mesh,
		opts: opts,
	}, nil
}

// Mesh returns the mesh this LoopWalker traverses.
func (lw *LoopWalker) Mesh() goloops.Mesh {
	return lw.mesh
}

// Opts returns the (normalized) options of this LoopWalker.
func (lw *LoopWalker) Opts() goloops.Opts {
	return lw.opts
}

// Seed is an edge chosen to start a coverage pass along with the loop traced through it.
type Seed struct {
	Edge goloops.EdgeIdx
	Path goloops.Path
}

// GenerateGuideCurves traces the edge loops of a mesh and returns at most targetCurveCount guide
// curves (targetCurveCount <= 0 denotes goloops.DefaultTargetCurves).
//
// A mesh with no traceable loop (e.g. all triangles) yields no curves and no error.
// Only malformed adjacency yields an error (goloops.ErrMalformedMesh).
//
// GenerateGuideCurves uses goloops.DefaultOpts(), so WalkBoundaries is on: boundary vertices of
// degree 3 are regular and rim rows are traced.  Hosts wanting every degree != 4 vertex to end a
// loop should call GuideCurves with WalkBoundaries off (e.g. goloops.Opts{}).
func GenerateGuideCurves(mesh goloops.Mesh, targetCurveCount int) ([]goloops.Curve, error) {
	opts := goloops.DefaultOpts()
	if targetCurveCount > 0 {
		opts.TargetCurves = targetCurveCount
	}
	return GuideCurves(mesh, opts)
}

// GuideCurves is GenerateGuideCurves with explicit options.
func GuideCurves(mesh goloops.Mesh, opts goloops.Opts) ([]goloops.Curve, error) {
	lw, err := NewLoopWalker(mesh, opts)
	if err != nil {
		return nil, err
	}
	paths, err := lw.CoverMesh()
	if err != nil {
		return nil, err
	}
	return BuildCurves(mesh, paths, lw.opts.TargetCurves), nil
}
