// Package h5out writes the blocks to an hdf5 file as one dataset with
// shape (nblock, res, res) of 64 bit floats.
// A file which exists and is bigger than MinSize is taken to be
// finished and is never touched again. An empty hdf5 file is well
// below that, so a run which died after Touch is simply redone.
package h5out

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gonum.org/v1/hdf5"

	"github.com/andrew-torda/camaps/matrix"
)

const (
	MinSize   = 10_000 // bytes. Bigger than this means populated
	DsetName  = "data"
	gzipLevel = 4
)

// Populated says if fname exists and is big enough to count as done.
func Populated(fname string) (bool, error) {
	fi, err := os.Stat(fname)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.Size() > MinSize, nil
}

// Touch creates an empty hdf5 file, throwing away anything that was
// there before.
func Touch(fname string) error {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fname, err)
	}
	return f.Close()
}

// flatten copies the blocks into one slice in row major order.
func flatten(blocks []*matrix.DMatrix2d, res int) ([]float64, error) {
	flat := make([]float64, 0, len(blocks)*res*res)
	for i, b := range blocks {
		if r, c := b.Size(); r != res || c != res {
			return nil, fmt.Errorf("block %d is %d x %d, wanted %d x %d", i, r, c, res, res)
		}
		flat = append(flat, b.Data()...)
	}
	return flat, nil
}

// Write appends the dataset to an existing file (see Touch). If
// compress is set, the data is chunked one block at a time and gzipped.
func Write(fname string, blocks []*matrix.DMatrix2d, res int, compress bool) (err error) {
	if len(blocks) == 0 {
		return errors.New("no blocks to write to " + fname)
	}
	flat, err := flatten(blocks, res)
	if err != nil {
		return err
	}
	f, err := hdf5.OpenFile(fname, hdf5.F_ACC_RDWR)
	if err != nil {
		return fmt.Errorf("opening %s: %w", fname, err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	dims := []uint{uint(len(blocks)), uint(res), uint(res)}
	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return err
	}
	defer space.Close()

	var dset *hdf5.Dataset
	if compress {
		dcpl, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
		if err != nil {
			return err
		}
		defer dcpl.Close()
		if err := dcpl.SetChunk([]uint{1, uint(res), uint(res)}); err != nil {
			return err
		}
		if err := dcpl.SetDeflate(gzipLevel); err != nil {
			return err
		}
		dset, err = f.CreateDatasetWith(DsetName, hdf5.T_NATIVE_DOUBLE, space, dcpl)
		if err != nil {
			return fmt.Errorf("%s: %w", fname, err)
		}
	} else {
		if dset, err = f.CreateDataset(DsetName, hdf5.T_NATIVE_DOUBLE, space); err != nil {
			return fmt.Errorf("%s: %w", fname, err)
		}
	}
	defer dset.Close()
	return dset.Write(&flat)
}

// Read gets the dataset back as blocks. It is mostly for checking.
func Read(fname string) ([]*matrix.DMatrix2d, error) {
	f, err := hdf5.OpenFile(fname, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dset, err := f.OpenDataset(DsetName)
	if err != nil {
		return nil, err
	}
	defer dset.Close()
	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, err
	}
	if len(dims) != 3 || dims[1] != dims[2] {
		return nil, fmt.Errorf("%s: dataset has shape %v", fname, dims)
	}
	nblock, res := int(dims[0]), int(dims[1])
	flat := make([]float64, nblock*res*res)
	if nblock > 0 {
		if err := dset.Read(&flat); err != nil {
			return nil, err
		}
	}
	blocks := make([]*matrix.DMatrix2d, nblock)
	for i := range blocks {
		blocks[i] = matrix.NewDMatrix2d(res, res)
		copy(blocks[i].Data(), flat[i*res*res:(i+1)*res*res])
	}
	return blocks, nil
}
