package libloops

import (
	"github.com/2x3systems/goloops/goloops"
	"gonum.org/v1/gonum/spatial/r3"
)

// CurveStride returns the spacing between retained paths when numPaths are reduced to at most
// targetCount (targetCount <= 0 denotes goloops.DefaultTargetCurves).
func CurveStride(numPaths, targetCount int) int {
	if targetCount <= 0 {
		targetCount = goloops.DefaultTargetCurves
	}
	stride := (numPaths + targetCount - 1) / targetCount
	if stride < 1 {
		stride = 1
	}
	return stride
}

// BuildCurves retains paths 0, s, 2s, ... (s = CurveStride) and converts each into a Curve through
// the positions of its vertices.  At most targetCount curves are returned, and all paths are kept
// when there are no more than targetCount of them.
func BuildCurves(mesh goloops.Mesh, paths []goloops.Path, targetCount int) []goloops.Curve {
	if len(paths) == 0 {
		return nil
	}
	stride := CurveStride(len(paths), targetCount)
	curves := make([]goloops.Curve, 0, (len(paths)+stride-1)/stride)
	for i := 0; i < len(paths); i += stride {
		curves = append(curves, BuildCurve(mesh, paths[i]))
	}
	return curves
}

// BuildCurve converts a path into a Curve with automatic (Catmull-Rom) handles.
//
// Each inner point gets symmetric handles at -/+ 1/6 of the chord between its neighbors.  The ends
// of an open path use 1/3 of their one adjacent segment.  A closed path drops its repeated vertex
// and yields a cyclic Curve.
func BuildCurve(mesh goloops.Mesh, path goloops.Path) goloops.Curve {
	verts := path
	cyclic := false
	if path.IsClosed() && path.NumDistinct() >= 3 {
		verts = path[:len(path)-1]
		cyclic = true
	}

	N := len(verts)
	C := goloops.Curve{
		Points: make([]goloops.CurvePoint, N),
		Cyclic: cyclic,
	}
	for i, vi := range verts {
		C.Points[i].Co = mesh.VtxPos(vi)
	}

	for i := range C.Points {
		pt := &C.Points[i]
		var h r3.Vec
		switch {
		case N < 2:
		case cyclic:
			h = r3.Scale(1.0/6, r3.Sub(C.Points[(i+1)%N].Co, C.Points[(i+N-1)%N].Co))
		case i == 0:
			h = r3.Scale(1.0/3, r3.Sub(C.Points[1].Co, pt.Co))
		case i == N-1:
			h = r3.Scale(1.0/3, r3.Sub(pt.Co, C.Points[N-2].Co))
		default:
			h = r3.Scale(1.0/6, r3.Sub(C.Points[i+1].Co, C.Points[i-1].Co))
		}
		pt.HandleLeft = r3.Sub(pt.Co, h)
		pt.HandleRight = r3.Add(pt.Co, h)
	}
	return C
}
