package libloops

import (
	"io"
	"strings"

	"github.com/2x3systems/goloops/goloops"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"gonum.org/v1/gonum/spatial/r3"
)

// Wavefront OBJ subset: "v" positions and "f" faces.  Other statements are skipped.
type objFile struct {
	Stmts []*objStmt `parser:"@@*"`
}

type objStmt struct {
	Pos    lexer.Position
	Vertex *objVertex `parser:"( \"v\" @@"`
	Face   *objFace   `parser:"| \"f\" @@"`
	Other  *objOther  `parser:"| @@ )? EOL"`
}

type objVertex struct {
	Coords []float64 `parser:"@Float+"`
}

type objFace struct {
	Corners []*objCorner `parser:"@@+"`
}

// objCorner is a "v", "v/vt", "v//vn" or "v/vt/vn" face corner.
type objCorner struct {
	Vtx   int      `parser:"@Float"`
	Attrs []string `parser:"( Slash @Float? )*"`
}

type objOther struct {
	Keyword string   `parser:"@Ident"`
	Args    []string `parser:"( @Ident | @Float | @Slash | @Punct )*"`
}

var sObjLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Float", Pattern: `[-+]?(\d+\.\d*|\.\d+|\d+)([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Punct", Pattern: `[^\s]`},
})

var sParseOBJ = participle.MustBuild[objFile](
	participle.Lexer(sObjLexer),
	participle.Elide("Comment", "Whitespace"),
)

// ParseOBJ builds a Mesh from Wavefront OBJ text.
func ParseOBJ(src string) (*Mesh, error) {
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	ast, err := sParseOBJ.ParseString("", src)
	if err != nil {
		return nil, errors.Wrap(goloops.ErrParseMesh, err.Error())
	}
	return ast.buildMesh()
}

// ReadOBJ reads Wavefront OBJ text and builds a Mesh from it.
func ReadOBJ(in io.Reader) (*Mesh, error) {
	src, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrap(goloops.ErrParseMesh, err.Error())
	}
	return ParseOBJ(string(src))
}

func (obj *objFile) buildMesh() (*Mesh, error) {
	var (
		positions []r3.Vec
		faces     [][]goloops.VtxIdx
		skipped   map[string]int
	)

	for _, stmt := range obj.Stmts {
		switch {
		case stmt.Vertex != nil:
			co := stmt.Vertex.Coords
			if len(co) < 3 {
				return nil, errors.Wrapf(goloops.ErrParseMesh, "line %d: vertex needs 3 coordinates (got %d)", stmt.Pos.Line, len(co))
			}
			positions = append(positions, r3.Vec{X: co[0], Y: co[1], Z: co[2]})

		case stmt.Face != nil:
			face := make([]goloops.VtxIdx, 0, len(stmt.Face.Corners))
			for _, corner := range stmt.Face.Corners {
				vi := corner.Vtx
				switch {
				case vi > 0:
					vi--
				case vi < 0:
					vi += len(positions)
				default:
					return nil, errors.Wrapf(goloops.ErrParseMesh, "line %d: vertex index 0 is not valid", stmt.Pos.Line)
				}
				if vi < 0 || vi >= len(positions) {
					return nil, errors.Wrapf(goloops.ErrBadVtxIdx, "line %d: vertex %d not defined", stmt.Pos.Line, corner.Vtx)
				}
				face = append(face, goloops.VtxIdx(vi))
			}
			faces = append(faces, face)

		case stmt.Other != nil:
			if skipped == nil {
				skipped = make(map[string]int)
			}
			skipped[stmt.Other.Keyword]++
		}
	}

	for keyword, count := range skipped {
		klog.Warningf("OBJ: skipped %d %q statements", count, keyword)
	}

	return NewMesh(positions, faces)
}
