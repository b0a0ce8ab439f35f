package catalog

import (
	"runtime"
	"sync"

	"github.com/2x3systems/goloops/goloops"
	"github.com/2x3systems/goloops/libloops"
	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey => varint(MajorVers), varint(MinorVers), varint(NumEntries)

	kCurvesPrefix, CurveKey (MeshID, TargetCurves, Walk)
		=> EncodeCurves([]Curve)

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

const (
	kCurvesPrefix = byte(0x01)

	kMajorVers = 2024
	kMinorVers = 1
)

// catalog is a badger db wrapper caching guide curves by mesh fingerprint
type catalog struct {
	mu         sync.Mutex
	readOnly   bool
	numEntries int64
	db         *badger.DB
}

// OpenCatalog opens (or creates) a curve catalog.  An empty DbPathName opens an in-memory catalog.
func OpenCatalog(opts goloops.CatalogOpts) (goloops.Catalog, error) {
	cat := &catalog{
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(goloops.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(goloops.ErrBadCatalogParam, "opening %q: %v", opts.DbPathName, err)
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		if !cat.readOnly {
			err = cat.db.Update(func(txn *badger.Txn) error {
				return writeState(txn, 0)
			})
		}
	}
	if err != nil {
		cat.db.Close()
		return nil, err
	}

	klog.V(2).Infof("opened curve catalog %q (%d entries)", opts.DbPathName, cat.numEntries)
	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			buf := proto.NewBuffer(val)
			major, err := buf.DecodeVarint()
			if err != nil {
				return errors.Wrap(goloops.ErrBadEncoding, "catalog state")
			}
			minor, _ := buf.DecodeVarint()
			if major != kMajorVers || minor != kMinorVers {
				return errors.Wrapf(goloops.ErrBadCatalogParam, "catalog version %d.%d is incompatible", major, minor)
			}
			count, err := buf.DecodeVarint()
			if err != nil {
				return errors.Wrap(goloops.ErrBadEncoding, "catalog state")
			}
			cat.numEntries = int64(count)
			return nil
		})
	})
}

func writeState(txn *badger.Txn, numEntries int64) error {
	buf := proto.NewBuffer(make([]byte, 0, 16))
	buf.EncodeVarint(kMajorVers)
	buf.EncodeVarint(kMinorVers)
	buf.EncodeVarint(uint64(numEntries))
	return txn.Set(gCatalogStateKey, buf.Bytes())
}

func formCurvesKey(key goloops.CurveKey) []byte {
	buf := make([]byte, 0, 1+goloops.CurveKeySz)
	buf = append(buf, kCurvesPrefix)
	return key.Marshal(buf)
}

func (cat *catalog) Fetch(key goloops.CurveKey) ([]goloops.Curve, bool, error) {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil, false, goloops.ErrCatalogClosed
	}

	var curves []goloops.Curve
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(formCurvesKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			curves, err = DecodeCurves(val)
			return err
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "fetching %v", key)
	}
	return curves, true, nil
}

func (cat *catalog) Store(key goloops.CurveKey, curves []goloops.Curve) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return goloops.ErrCatalogClosed
	}
	if cat.readOnly {
		return errors.Wrap(goloops.ErrBadCatalogParam, "catalog is read-only")
	}

	dbKey := formCurvesKey(key)
	val := EncodeCurves(curves)

	isNew := false
	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(dbKey)
		if err == badger.ErrKeyNotFound {
			isNew = true
		} else if err != nil {
			return err
		}
		if err = txn.Set(dbKey, val); err != nil {
			return err
		}
		if isNew {
			return writeState(txn, cat.numEntries+1)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "storing %v", key)
	}
	if isNew {
		cat.numEntries++
	}
	return nil
}

func (cat *catalog) NumEntries() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return cat.numEntries
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return goloops.ErrCatalogClosed
	}
	err := cat.db.Close()
	cat.db = nil
	return err
}

// GuideCurves returns the guide curves for the given mesh and options, consulting cat first and
// storing freshly generated curves in it.  cat may be nil.
func GuideCurves(cat goloops.Catalog, mesh goloops.Mesh, opts goloops.Opts) ([]goloops.Curve, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if cat == nil {
		return libloops.GuideCurves(mesh, opts)
	}

	key := libloops.CurveKeyOf(mesh, opts)
	curves, found, err := cat.Fetch(key)
	if err != nil || found {
		return curves, err
	}

	curves, err = libloops.GuideCurves(mesh, opts)
	if err != nil {
		return nil, err
	}
	if !cat.IsReadOnly() {
		if err = cat.Store(key, curves); err != nil {
			return nil, err
		}
	}
	return curves, nil
}
