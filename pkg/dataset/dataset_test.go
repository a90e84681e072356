package dataset_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/camaps/pdb"
	"github.com/andrew-torda/camaps/pdb/cmmn"
	"github.com/andrew-torda/camaps/pdb/pdbtest"
	. "github.com/andrew-torda/camaps/pkg/dataset"
)

// fakeFile describes a structure made up on the spot. Alpha carbons are
// spacing apart, so element (0, 1) of every block tells us which file
// it came from.
type fakeFile struct {
	nres    int
	spacing float64
	chain   string
	fail    bool
}

type fakeReader struct {
	files  map[string]fakeFile
	jitter bool
}

func (f fakeReader) Read(fname string) (*cmmn.Structure, error) {
	if f.jitter {
		time.Sleep(time.Duration(rand.IntN(3000)) * time.Microsecond)
	}
	ff, ok := f.files[fname]
	if !ok || ff.fail {
		return nil, &cmmn.StructureError{Kind: cmmn.ParseFailure, Fname: fname}
	}
	chain := cmmn.Chain{ChainID: ff.chain}
	for i := 0; i < ff.nres; i++ {
		chain.Residues = append(chain.Residues, cmmn.Residue{
			Name: "ALA", NumLbl: i + 1,
			Atoms: []cmmn.Atom{{Name: "CA", Xyz: cmmn.Xyz{X: ff.spacing * float64(i)}}},
		})
	}
	return &cmmn.Structure{Fname: fname, Models: []cmmn.Model{{Chains: []cmmn.Chain{chain}}}}, nil
}

// TestOrder gives each file a different amount of work and a random
// delay. The blocks must still come back in file order.
func TestOrder(t *testing.T) {
	const res = 8
	rdr := fakeReader{files: make(map[string]fakeFile), jitter: true}
	var files []string
	var want []float64
	for i := 0; i < 40; i++ {
		fname := fmt.Sprintf("f%02d.pdb", i)
		ff := fakeFile{nres: (i % 7) * 9, spacing: float64(i + 1), chain: "A"}
		rdr.files[fname] = ff
		files = append(files, fname)
		for k := 1; k < ff.nres/res; k++ {
			want = append(want, ff.spacing)
		}
	}
	for try := 0; try < 5; try++ {
		c := Collector{Rdr: rdr, NWorker: 6}
		blocks, err := c.Collect(context.Background(), files, res)
		if err != nil {
			t.Fatal(err)
		}
		got := make([]float64, len(blocks))
		for i, b := range blocks {
			got[i] = b.Mat[0][1]
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("block order changed (-want +got):\n%s", diff)
		}
	}
}

// TestAbort makes sure one broken file means no result.
func TestAbort(t *testing.T) {
	rdr := fakeReader{files: map[string]fakeFile{
		"a": {nres: 100, spacing: 1, chain: "A"},
		"b": {fail: true},
		"c": {nres: 100, spacing: 1, chain: "A"},
		"d": {nres: 100, spacing: 1, chain: "B"},
	}}
	for _, files := range [][]string{{"a", "b", "c"}, {"a", "c", "d"}} {
		c := Collector{Rdr: rdr, NWorker: 2}
		blocks, err := c.Collect(context.Background(), files, 10)
		if err == nil || blocks != nil {
			t.Errorf("files %v should have failed, got %d blocks", files, len(blocks))
		}
		var se *cmmn.StructureError
		if !errors.As(err, &se) {
			t.Errorf("wanted a structure error, got %v", err)
		}
	}
}

// TestTwoFiles is the degenerate file plus a 200 residue file, written
// to disk and read by the real reader.
func TestTwoFiles(t *testing.T) {
	dir := t.TempDir()
	empty, err := pdbtest.WriteFile(dir, "empty.pdb", pdbtest.Chain("A", 5, 0, 1, 2, 3, 4))
	if err != nil {
		t.Fatal(err)
	}
	long, err := pdbtest.WriteFile(dir, "long.pdb", pdbtest.Chain("A", 200))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	prog := NewProgress(&buf, 2)
	c := Collector{Rdr: pdb.NewReader(pdb.Options{Strict: true}), Progress: prog}
	blocks, err := c.Collect(context.Background(), []string{empty, long}, 64)
	prog.Close()
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, wanted 2", len(blocks))
	}
	for _, b := range blocks {
		if r, c := b.Size(); r != 64 || c != 64 {
			t.Errorf("block is %d x %d", r, c)
		}
	}
	if !strings.Contains(buf.String(), "2 of 2 files") {
		t.Errorf("progress said %q", buf.String())
	}
}

func TestFileBlocks(t *testing.T) {
	dir := t.TempDir()
	rdr := pdb.NewReader(pdb.Options{})
	for _, tt := range []struct {
		nres, res, want int
	}{
		{130, 64, 1},
		{64, 64, 0},
		{10, 64, 0},
		{256, 64, 3},
	} {
		fname, err := pdbtest.WriteFile(dir, fmt.Sprintf("%d.pdb", tt.nres), pdbtest.Chain("A", tt.nres))
		if err != nil {
			t.Fatal(err)
		}
		blocks, err := FileBlocks(rdr, fname, tt.res)
		if err != nil {
			t.Fatal(err)
		}
		if len(blocks) != tt.want {
			t.Errorf("%d residues, res %d gave %d blocks, wanted %d", tt.nres, tt.res, len(blocks), tt.want)
		}
	}
	fname, _ := pdbtest.WriteFile(dir, "b.pdb", pdbtest.Chain("B", 300))
	if _, err := FileBlocks(rdr, fname, 64); !errors.Is(err, cmmn.ErrMissingChain) {
		t.Errorf("wanted missing chain, got %v", err)
	}
}

func TestNoFiles(t *testing.T) {
	c := Collector{Rdr: fakeReader{}}
	blocks, err := c.Collect(context.Background(), nil, 64)
	if err != nil || len(blocks) != 0 {
		t.Errorf("no files gave %d blocks, err %v", len(blocks), err)
	}
}
