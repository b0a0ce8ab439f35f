package pyloops

import (
	"fmt"
	"os"
	"strings"

	"github.com/2x3systems/goloops/goloops"
	"github.com/2x3systems/goloops/libloops"
	"github.com/2x3systems/goloops/libloops/catalog"
	"github.com/go-python/gpython/py"
	"github.com/pkg/errors"
)

var (
	LIB_VERSION = "v1.2024.1"
)

var (
	pyMeshType      = py.NewType("Mesh", "a quad-dominant surface mesh")
	pyCurveType     = py.NewType("Curve", "a guide curve interpolating one traced edge loop")
	pyCatalogType   = py.NewType("Catalog", "goloops.Catalog")
	pyWorkspaceType = py.NewType("Workspace", "collects active session resources and catalogs")
)

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type pyMesh struct {
	*libloops.Mesh
}

func (X pyMesh) Type() *py.Type {
	return pyMeshType
}

func (X pyMesh) M__str__() (py.Object, error) {
	return py.String(describeMesh(X.Mesh)), nil
}

func (X pyMesh) M__repr__() (py.Object, error) {
	return X.M__str__()
}

func describeMesh(X goloops.Mesh) string {
	return fmt.Sprintf("Mesh(verts=%d, edges=%d, faces=%d)", X.NumVerts(), X.NumEdges(), X.NumFaces())
}

func wrapMesh(X *libloops.Mesh, err error) (py.Object, error) {
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Object(pyMesh{X}), nil
}

// Arg 1 (str): OBJ source text
func py_ParseOBJ(module py.Object, args py.Tuple) (py.Object, error) {
	var src string
	err := py.LoadTuple(args, []interface{}{&src})
	if err != nil {
		return nil, err
	}
	return wrapMesh(libloops.ParseOBJ(src))
}

// Arg 1 (str): OBJ pathname
func py_LoadOBJ(module py.Object, args py.Tuple) (py.Object, error) {
	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	if _, err = os.Stat(pathname); err != nil {
		return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
	}
	return wrapMesh(libloops.ReadOBJFile(pathname))
}

// Arg 1 (int): quads along x
// Arg 2 (int): quads along y
func py_Grid(module py.Object, args py.Tuple) (py.Object, error) {
	var nx, ny int32
	err := py.LoadTuple(args, []interface{}{&nx, &ny})
	if err != nil {
		return nil, err
	}
	return wrapMesh(libloops.NewGridMesh(int(nx), int(ny)))
}

// Arg 1 (int): quads around the major circle
// Arg 2 (int): quads around the minor circle
// Arg 3, 4 (float, optional): major and minor radius
func py_Torus(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 2 {
		return nil, py.ExceptionNewf(py.TypeError, "Torus() takes at least 2 arguments (%d given)", len(args))
	}
	nu, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}
	nv, err := py.GetInt(args[1])
	if err != nil {
		return nil, err
	}
	radii := [2]float64{3, 1}
	for i := 2; i < len(args) && i < 4; i++ {
		radii[i-2], err = py.FloatAsFloat64(args[i])
		if err != nil {
			return nil, err
		}
	}
	return wrapMesh(libloops.NewTorusMesh(int(nu), int(nv), radii[0], radii[1]))
}

func py_Mesh_NumVerts(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyMesh)
	return py.Object(py.Int(X.NumVerts())), nil
}

func py_Mesh_NumEdges(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyMesh)
	return py.Object(py.Int(X.NumEdges())), nil
}

func py_Mesh_NumFaces(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyMesh)
	return py.Object(py.Int(X.NumFaces())), nil
}

func py_Mesh_Fingerprint(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyMesh)
	return py.String(fmt.Sprintf("%016x", libloops.Fingerprint(X))), nil
}

// loadOpts reads the "target" and "walk" keyword args.
func loadOpts(kwargs py.StringDict) (goloops.Opts, error) {
	opts := goloops.DefaultOpts()
	if obj, ok := kwargs["target"]; ok {
		target, err := py.GetInt(obj)
		if err != nil {
			return opts, err
		}
		opts.TargetCurves = int(target)
	}
	if obj, ok := kwargs["walk"]; ok {
		walk, isBool := obj.(py.Bool)
		if !isBool {
			return opts, py.ExceptionNewf(py.TypeError, "'walk' must be a bool (got %v)", obj.Type().Name)
		}
		opts.WalkBoundaries = bool(walk)
	}
	if err := opts.Validate(); err != nil {
		return opts, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return opts, nil
}

func wrapPath(path goloops.Path) py.Tuple {
	tup := make(py.Tuple, len(path))
	for i, v := range path {
		tup[i] = py.Int(v)
	}
	return tup
}

// See Mesh.GuideCurves(target=0, walk=True, catalog=None)
func py_Mesh_GuideCurves(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	X := self.(pyMesh)
	opts, err := loadOpts(kwargs)
	if err != nil {
		return nil, err
	}

	var cat goloops.Catalog
	if obj, ok := kwargs["catalog"]; ok && obj != py.None {
		pyCat, isCat := obj.(pyCatalog)
		if !isCat {
			return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", obj.Type().Name)
		}
		cat = pyCat.Catalog
	}

	curves, err := catalog.GuideCurves(cat, X, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	out := make(py.Tuple, len(curves))
	for i := range curves {
		out[i] = pyCurve{&curves[i]}
	}
	return py.Object(out), nil
}

// See Mesh.Paths(walk=True)
func py_Mesh_Paths(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	X := self.(pyMesh)
	opts, err := loadOpts(kwargs)
	if err != nil {
		return nil, err
	}
	lw, err := libloops.NewLoopWalker(X, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	paths, err := lw.CoverMesh()
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	out := make(py.Tuple, len(paths))
	for i, path := range paths {
		out[i] = wrapPath(path)
	}
	return py.Object(out), nil
}

// Returns a tuple of (edge, path) pairs
func py_Mesh_Seeds(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	X := self.(pyMesh)
	opts, err := loadOpts(kwargs)
	if err != nil {
		return nil, err
	}
	lw, err := libloops.NewLoopWalker(X, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	seeds, err := lw.SelectSeeds()
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	out := make(py.Tuple, len(seeds))
	for i, seed := range seeds {
		out[i] = py.Tuple{py.Int(seed.Edge), wrapPath(seed.Path)}
	}
	return py.Object(out), nil
}

type pyCurve struct {
	*goloops.Curve
}

func (C pyCurve) Type() *py.Type {
	return pyCurveType
}

func (C pyCurve) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	goloops.WriteCurves(&writer, []goloops.Curve{*C.Curve}, goloops.DefaultPrintOpts)
	return py.String(strings.TrimSuffix(writer.String(), "\n")), nil
}

func (C pyCurve) M__repr__() (py.Object, error) {
	return C.M__str__()
}

func (C pyCurve) M__len__() (py.Object, error) {
	return py.Int(len(C.Points)), nil
}

func py_Curve_IsCyclic(self py.Object, args py.Tuple) (py.Object, error) {
	C := self.(pyCurve)
	return py.NewBool(C.Cyclic), nil
}

func py_Curve_Points(self py.Object, args py.Tuple) (py.Object, error) {
	C := self.(pyCurve)
	out := make(py.Tuple, len(C.Points))
	for i, pt := range C.Points {
		out[i] = py.Tuple{py.Float(pt.Co.X), py.Float(pt.Co.Y), py.Float(pt.Co.Z)}
	}
	return py.Object(out), nil
}

// Returns a tuple of (left, right) handle pairs
func py_Curve_Handles(self py.Object, args py.Tuple) (py.Object, error) {
	C := self.(pyCurve)
	out := make(py.Tuple, len(C.Points))
	for i, pt := range C.Points {
		out[i] = py.Tuple{
			py.Tuple{py.Float(pt.HandleLeft.X), py.Float(pt.HandleLeft.Y), py.Float(pt.HandleLeft.Z)},
			py.Tuple{py.Float(pt.HandleRight.X), py.Float(pt.HandleRight.Y), py.Float(pt.HandleRight.Z)},
		}
	}
	return py.Object(out), nil
}

type Workspace struct {
	catalogs []goloops.Catalog
}

// Close closes every catalog opened through this Workspace.
func (ws *Workspace) Close() {
	for _, cat := range ws.catalogs {
		cat.Close()
	}
	ws.catalogs = nil
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		wsObj = &Workspace{}
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

// Arg 1 (str): catalog pathname ("" denotes an in-memory catalog)
// Arg 2 (int): flags
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}

	opts := goloops.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: pathname,
	}

	cat, err := catalog.OpenCatalog(opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	ws.catalogs = append(ws.catalogs, cat)

	return py.Object(pyCatalog{cat}), nil
}

type pyCatalog struct {
	goloops.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	err := cat.Close()
	if err != nil && !errors.Is(err, goloops.ErrCatalogClosed) {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.None, nil
}

func py_Catalog_NumEntries(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	return py.Int(cat.NumEntries()), nil
}

func py_Catalog_IsReadOnly(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	return py.NewBool(cat.IsReadOnly()), nil
}

func init() {

	/////////////////////////////////
	// Mesh
	{
		pyMeshType.Dict["NumVerts"] = py.MustNewMethod("NumVerts", py_Mesh_NumVerts, 0, "")
		pyMeshType.Dict["NumEdges"] = py.MustNewMethod("NumEdges", py_Mesh_NumEdges, 0, "")
		pyMeshType.Dict["NumFaces"] = py.MustNewMethod("NumFaces", py_Mesh_NumFaces, 0, "")
		pyMeshType.Dict["Fingerprint"] = py.MustNewMethod("Fingerprint", py_Mesh_Fingerprint, 0, "returns this Mesh's fingerprint as a hex string")
		pyMeshType.Dict["GuideCurves"] = py.MustNewMethod("GuideCurves", py_Mesh_GuideCurves, 0, "traces this Mesh's edge loops and returns a tuple of Curves")
		pyMeshType.Dict["Paths"] = py.MustNewMethod("Paths", py_Mesh_Paths, 0, "returns the traced edge loops as tuples of vertex indices")
		pyMeshType.Dict["Seeds"] = py.MustNewMethod("Seeds", py_Mesh_Seeds, 0, "")
	}

	/////////////////////////////////
	// Curve
	{
		pyCurveType.Dict["Points"] = py.MustNewMethod("Points", py_Curve_Points, 0, "")
		pyCurveType.Dict["Handles"] = py.MustNewMethod("Handles", py_Curve_Handles, 0, "")
		pyCurveType.Dict["IsCyclic"] = py.MustNewMethod("IsCyclic", py_Curve_IsCyclic, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["NumEntries"] = py.MustNewMethod("NumEntries", py_Catalog_NumEntries, 0, "")
		pyCatalogType.Dict["IsReadOnly"] = py.MustNewMethod("IsReadOnly", py_Catalog_IsReadOnly, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("ParseOBJ", py_ParseOBJ, 0, "reads a Mesh from Wavefront OBJ text"),
			py.MustNewMethod("LoadOBJ", py_LoadOBJ, 0, "reads a Mesh from a Wavefront OBJ file"),
			py.MustNewMethod("Grid", py_Grid, 0, ""),
			py.MustNewMethod("Torus", py_Torus, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION":           py.String(LIB_VERSION),
			"DEFAULT_TARGET_CURVES": py.Int(goloops.DefaultTargetCurves),
			"READ_ONLY":             py.Int(READ_ONLY),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "goloops",
				Doc:  "surface edge-loop extraction gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
