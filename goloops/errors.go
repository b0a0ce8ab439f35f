package goloops

import "github.com/pkg/errors"

// Errors
var (
	ErrMalformedMesh   = errors.New("malformed mesh adjacency")
	ErrBadFace         = errors.New("bad mesh face")
	ErrBadVtxIdx       = errors.New("bad mesh vertex index")
	ErrBadEdgeIdx      = errors.New("bad mesh edge index")
	ErrParseMesh       = errors.New("mesh parse failed")
	ErrBadEncoding     = errors.New("bad curve encoding")
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrCatalogClosed   = errors.New("catalog is closed")
	ErrBadOpts         = errors.New("bad goloops opts")
)
