package goloops

import (
	"gonum.org/v1/gonum/spatial/r3"
)

const (

	// MinPathLen is the fewest vertices a traced Path needs to be kept as output.
	MinPathLen = 3

	// MinCycleLen is the fewest entries (closing vertex included) of a Path counted as a closed cycle.
	MinCycleLen = 4

	// DefaultTargetCurves bounds the number of guide curves emitted per mesh when no target is given.
	DefaultTargetCurves = 50

	// QuadValence is the regular vertex degree inside a quad grid.
	QuadValence = 4

	// RimValence is the regular vertex degree on a straight quad grid boundary.
	RimValence = 3
)

// VtxIdx is a zero-based index that identifies a vertex in a given Mesh.
type VtxIdx int32

// EdgeIdx is a zero-based index that identifies an edge in a given Mesh.
type EdgeIdx int32

// FaceIdx is a zero-based index that identifies a face in a given Mesh.
type FaceIdx int32

// LoopIdx is a zero-based index that identifies a face corner ("loop") in a given Mesh.
type LoopIdx int32

// NilLoop denotes the absence of a loop (e.g. the radial neighbor of a boundary edge's only loop).
const NilLoop LoopIdx = -1

// Loop is a directed face corner: it runs along Edge, inside Face, starting at Vtx.
type Loop struct {
	Face FaceIdx
	Edge EdgeIdx
	Vtx  VtxIdx
}

// Mesh is the read-only adjacency model a host supplies to the loop tracer.
//
// Loops are the sole traversal primitive: every loop has a face successor (LoopNext), a face
// predecessor (LoopPrev), and, when its edge is manifold-interior, a radial neighbor (LoopRadial)
// running the opposite way along the same edge in the adjacent face.
//
// Implementations must not change while a trace is in progress; a Mesh may be shared by any
// number of concurrent traces.
type Mesh interface {
	NumVerts() int
	NumEdges() int
	NumFaces() int
	NumLoops() int

	// VtxPos returns the position of vertex v.
	VtxPos(v VtxIdx) r3.Vec

	// VtxDegree returns the number of edges incident to vertex v.
	VtxDegree(v VtxIdx) int

	// VtxOnBoundary returns true if any edge incident to v has fewer than two faces.
	VtxOnBoundary(v VtxIdx) bool

	// EdgeVerts returns the two endpoints of edge e.
	EdgeVerts(e EdgeIdx) (a, b VtxIdx)

	// EdgeFaceCount returns the number of faces incident to edge e.
	EdgeFaceCount(e EdgeIdx) int

	// EdgeLoops returns the loops running along edge e (one per incident face).
	// The caller must not modify the returned slice.
	EdgeLoops(e EdgeIdx) []LoopIdx

	// FaceSize returns the number of vertices (and loops) of face f.
	FaceSize(f FaceIdx) int

	// LoopAt returns the (face, edge, start vertex) triple of loop l.
	LoopAt(l LoopIdx) Loop

	// LoopNext returns the next loop around the face of l.
	LoopNext(l LoopIdx) LoopIdx

	// LoopPrev returns the previous loop around the face of l.
	LoopPrev(l LoopIdx) LoopIdx

	// LoopRadial returns the other loop along the edge of l, or NilLoop if that edge is not manifold-interior.
	LoopRadial(l LoopIdx) LoopIdx
}

// Path is a traced edge loop as an ordered run of vertices.
// A closed Path repeats its first vertex as its last.
type Path []VtxIdx

// CurvePoint is a curve control point with its incoming and outgoing Bezier handles.
type CurvePoint struct {
	Co          r3.Vec
	HandleLeft  r3.Vec
	HandleRight r3.Vec
}

// Curve is a smooth guide curve interpolating the vertices of one Path.
type Curve struct {
	Points []CurvePoint
	Cyclic bool
}

// Opts specifies how guide curves are extracted from a Mesh.
type Opts struct {

	// TargetCurves bounds how many curves are emitted; <= 0 denotes DefaultTargetCurves.
	TargetCurves int `yaml:"target_curves"`

	// WalkBoundaries lets traces run along a mesh's rim: boundary vertices of degree RimValence
	// are regular and boundary edges propose their opposite quad edge as a neighbor.
	// When off, every vertex must have degree QuadValence and only manifold-interior edges expand.
	WalkBoundaries bool `yaml:"walk_boundaries"`
}

// DefaultOpts returns the options used when none are given.
func DefaultOpts() Opts {
	return Opts{
		TargetCurves:   DefaultTargetCurves,
		WalkBoundaries: true,
	}
}

// CurveKey identifies a curve set generated for a given mesh and options.
type CurveKey struct {
	MeshID       uint64 // mesh fingerprint
	TargetCurves int32
	Walk         bool
}

// CatalogOpts specifies params for opening a goloops Catalog
type CatalogOpts struct {
	DbPathName string // empty denotes an in-memory catalog
	ReadOnly   bool
}

// Catalog caches guide curves previously generated for a mesh.
type Catalog interface {

	// Fetch returns the curves stored under the given key, if present.
	Fetch(key CurveKey) ([]Curve, bool, error)

	// Store places the given curves under the given key, replacing any previous entry.
	Store(key CurveKey, curves []Curve) error

	// NumEntries returns the number of curve sets in this catalog.
	NumEntries() int64

	// IsReadOnly returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// Close closes this catalog.  Subsequent calls return ErrCatalogClosed.
	Close() error
}
