// 2 Sep 2024
// Turn a list of structure files into one long list of distance
// matrix blocks. Files are handed out to a fixed number of goroutines
// but the blocks come back in the order of the file list.

package dataset

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/camaps/chunk"
	"github.com/andrew-torda/camaps/matrix"
	"github.com/andrew-torda/camaps/pdb/calpha"
	"github.com/andrew-torda/camaps/pdb/cmmn"
)

// StructReader is anything that can turn a file name into a structure.
// *pdb.Reader is the real one.
type StructReader interface {
	Read(fname string) (*cmmn.Structure, error)
}

// FileBlocks reads one file, builds the distance matrix of the
// canonical chain and cuts it into blocks of res x res.
// A structure too short for even one block gives an empty slice.
func FileBlocks(rdr StructReader, fname string, res int) ([]*matrix.DMatrix2d, error) {
	s, err := rdr.Read(fname)
	if err != nil {
		return nil, err
	}
	m, err := calpha.ChainDistMat(s, calpha.CanonChain)
	if err != nil {
		return nil, err
	}
	return chunk.Split(m, res), nil
}

// Collector says how to run FileBlocks over many files.
type Collector struct {
	Rdr      StructReader
	NWorker  int       // number of goroutines. <= 0 means one per CPU
	Progress *Progress // may be nil
}

// Collect runs FileBlocks on every file and joins the results, keeping
// the order of files. The first error stops the whole lot. Files
// which have not started are not read and nothing is returned but the
// error.
func (c *Collector) Collect(ctx context.Context, files []string, res int) ([]*matrix.DMatrix2d, error) {
	nworker := c.NWorker
	if nworker <= 0 {
		nworker = runtime.NumCPU()
	}
	perFile := make([][]*matrix.DMatrix2d, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nworker)
	for i, fname := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			blocks, err := FileBlocks(c.Rdr, fname, res)
			c.Progress.JobDone(err)
			if err != nil {
				return fmt.Errorf("res %d: %w", res, err)
			}
			perFile[i] = blocks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var ntot int
	for _, b := range perFile {
		ntot += len(b)
	}
	all := make([]*matrix.DMatrix2d, 0, ntot)
	for _, b := range perFile {
		all = append(all, b...)
	}
	return all, nil
}
