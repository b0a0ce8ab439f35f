package libloops

import (
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/2x3systems/goloops/goloops"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// MeshJob is one mesh flowing through a MeshStream along with what was generated for it.
type MeshJob struct {
	Seq    int    // position in the originating stream
	Name   string // pathname or label of the mesh
	Mesh   *Mesh
	Curves []goloops.Curve
	Err    error
}

// CurveGen generates guide curves for a mesh (e.g. GuideCurves or a catalog-backed equivalent).
type CurveGen func(X goloops.Mesh, opts goloops.Opts) ([]goloops.Curve, error)

// MeshStream is a stage of a mesh processing pipeline.  Each stage consumes its predecessor's
// Outlet in its own goroutine and closes its own Outlet when done.
type MeshStream struct {
	Outlet chan *MeshJob
}

func NewMeshStream() *MeshStream {
	stream := &MeshStream{
		Outlet: make(chan *MeshJob, 1),
	}
	return stream
}

func (stream *MeshStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// StreamMeshes emits the given meshes in order.
func StreamMeshes(names []string, meshes []*Mesh) *MeshStream {
	next := NewMeshStream()

	go func() {
		for i, X := range meshes {
			job := &MeshJob{
				Seq:  i,
				Mesh: X,
			}
			if i < len(names) {
				job.Name = names[i]
			}
			next.Outlet <- job
		}
		next.Close()
	}()

	return next
}

// StreamOBJFiles reads each named Wavefront OBJ file and emits it as a MeshJob.
// A file that can't be read is emitted with Err set.
func StreamOBJFiles(pathnames []string) *MeshStream {
	next := NewMeshStream()

	go func() {
		for i, pathname := range pathnames {
			job := &MeshJob{
				Seq:  i,
				Name: pathname,
			}
			job.Mesh, job.Err = ReadOBJFile(pathname)
			next.Outlet <- job
		}
		next.Close()
	}()

	return next
}

// ReadOBJFile reads a Wavefront OBJ file ("-" denotes stdin).
func ReadOBJFile(pathname string) (*Mesh, error) {
	var in io.Reader = os.Stdin
	if pathname != "-" {
		file, err := os.Open(pathname)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		in = file
	}

	X, err := ReadOBJ(in)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", pathname)
	}
	klog.V(1).Infof("read %q: %d verts, %d edges, %d faces", pathname, X.NumVerts(), X.NumEdges(), X.NumFaces())
	return X, nil
}

// GuideCurves runs gen on each incoming mesh using up to numWorkers goroutines (<= 0 denotes
// GOMAXPROCS).  Jobs leave this stage in the order they entered it.
func (stream *MeshStream) GuideCurves(gen CurveGen, opts goloops.Opts, numWorkers int) *MeshStream {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	next := NewMeshStream()
	done := make(chan *MeshJob, numWorkers)

	wg := sync.WaitGroup{}
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			for job := range stream.Outlet {
				if job.Err == nil {
					job.Curves, job.Err = gen(job.Mesh, opts)
				}
				done <- job
			}
			wg.Done()
		}()
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	// restore arrival order
	go func() {
		held := redblacktree.NewWithIntComparator()
		seq := 0
		for job := range done {
			held.Put(job.Seq, job)
			for node := held.Left(); node != nil && node.Key.(int) == seq; node = held.Left() {
				held.Remove(seq)
				next.Outlet <- node.Value.(*MeshJob)
				seq++
			}
		}
		for node := held.Left(); node != nil; node = held.Left() {
			held.Remove(node.Key)
			next.Outlet <- node.Value.(*MeshJob)
		}
		next.Close()
	}()

	return next
}

// Print writes each job's curves to out (see goloops.WriteCurves), labeling lines with the
// job's name when opts.Label is empty and labelByName is set.
func (stream *MeshStream) Print(out io.Writer, opts goloops.PrintOpts, labelByName bool) *MeshStream {
	next := NewMeshStream()

	go func() {
		for job := range stream.Outlet {
			if job.Err == nil {
				jobOpts := opts
				if labelByName && len(jobOpts.Label) == 0 {
					jobOpts.Label = job.Name
				}
				job.Err = goloops.WriteCurves(out, job.Curves, jobOpts)
			}
			next.Outlet <- job
		}
		next.Close()
	}()

	return next
}

// PullAll drains the stream, returning the number of jobs and the first job error encountered.
func (stream *MeshStream) PullAll() (int, error) {
	count := 0
	var err error
	for job := range stream.Outlet {
		count++
		if job.Err != nil {
			if err == nil {
				err = job.Err
			}
			klog.Warningf("%s: %v", job.Name, job.Err)
		}
	}
	return count, err
}
