package libloops

import (
	"github.com/2x3systems/goloops/goloops"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/plan-systems/klog"
)

// runRank orders open runs: longest first, then earliest discovered.
type runRank struct {
	length int
	order  int
}

func compareRunRank(a, b interface{}) int {
	ra, rb := a.(runRank), b.(runRank)
	switch {
	case ra.length > rb.length:
		return -1
	case ra.length < rb.length:
		return 1
	case ra.order < rb.order:
		return -1
	case ra.order > rb.order:
		return 1
	}
	return 0
}

// SelectSeeds scans every edge once and traces the loop through each edge not already covered by
// an earlier loop of the scan.  No vertices are claimed during the scan.
//
// If any closed cycles are found, all of them are returned (in discovery order).  Otherwise the
// longest open run is returned alone, ties going to the run found first.  If no loop of
// goloops.MinPathLen vertices exists, nil is returned.
func (lw *LoopWalker) SelectSeeds() ([]Seed, error) {
	X := lw.mesh
	scanned := hashset.New()
	markScanned := func(e goloops.EdgeIdx) {
		scanned.Add(e)
	}

	var cycles []Seed
	runs := redblacktree.NewWith(compareRunRank)

	for ei := 0; ei < X.NumEdges(); ei++ {
		edge := goloops.EdgeIdx(ei)
		if scanned.Contains(edge) {
			continue
		}
		scanned.Add(edge)
		loops := X.EdgeLoops(edge)
		if len(loops) == 0 {
			continue
		}

		path, err := lw.walkLoop(loops[0], nil, markScanned)
		if err != nil {
			return nil, err
		}
		switch {
		case path.IsCycle():
			cycles = append(cycles, Seed{Edge: edge, Path: path})
		case path.IsOpenRun():
			runs.Put(runRank{length: len(path), order: ei}, Seed{Edge: edge, Path: path})
		}
	}

	klog.V(2).Infof("seed scan: %d edges, %d cycles, %d open runs", X.NumEdges(), len(cycles), runs.Size())

	if len(cycles) > 0 {
		return cycles, nil
	}
	if best := runs.Left(); best != nil {
		return []Seed{best.Value.(Seed)}, nil
	}
	return nil, nil
}
