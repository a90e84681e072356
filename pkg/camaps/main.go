// 2 Sep 2024
// For each block size, read every structure in a directory, cut the
// alpha carbon distance matrices into blocks and write them to one
// hdf5 file. A file which is already there and populated is left alone,
// so an interrupted set of resolutions can be restarted.

package camaps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/camaps/pdb"
	"github.com/andrew-torda/camaps/pkg/dataset"
	"github.com/andrew-torda/camaps/pkg/h5out"
	"github.com/andrew-torda/camaps/pkg/preview"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

const DfltRes = 128

var (
	ErrInputNotFound = errors.New("cannot find input directory")
	ErrEmptyResult   = errors.New("no blocks from any structure")
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Mode     string // train or test, only used for default directories
	Compress bool   // gzip the dataset
	Res      []int  // block sizes, one output file each
	InDir    string // defaults to ../pdb-database/pdb_<mode>
	OutDir   string // defaults to <mode>_dataset
	NWorker  int    // <= 0 means one per CPU
	Strict   bool   // broken coordinate records are fatal
	LogDest  string // where parser warnings go, see pdb.LogWhere
	Png      bool   // also draw the first block
}

// Run carries what the per resolution work needs.
type Run struct {
	Rdr      dataset.StructReader
	NWorker  int
	Compress bool
	Png      bool
	Out      *log.Logger // user visible messages
	Prog     io.Writer   // progress lines, nil for none
}

// OutName is where the dataset for block size res goes.
func OutName(outDir string, res int) string {
	return filepath.Join(outDir, fmt.Sprintf("%daa.hdf5", res))
}

// pdbFiles lists the *.pdb files in dir, sorted by name.
func pdbFiles(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, "*.pdb"))
}

// printStats writes the summary of a set of blocks. min and max are
// of the first block only.
func printStats(w *log.Logger, nblock, res int, lo, hi float64) {
	w.Printf("  len: %d\n", nblock)
	w.Printf("shape: (%d, %d)\n", res, res)
	w.Printf("  min: %g\n", lo)
	w.Printf("  max: %g\n", hi)
}

// MakeSet builds the dataset for one block size from files and writes
// it to outPath. If outPath is already populated, nothing happens.
func (r *Run) MakeSet(ctx context.Context, files []string, outPath string, res int) error {
	if done, err := h5out.Populated(outPath); err != nil {
		return err
	} else if done {
		r.Out.Printf("Skip res %d; file %s already exists\n", res, outPath)
		return nil
	}
	if err := h5out.Touch(outPath); err != nil {
		return err
	}
	r.Out.Printf("File %s is created\n", outPath)

	var prog *dataset.Progress
	if r.Prog != nil {
		prog = dataset.NewProgress(r.Prog, len(files))
	}
	c := dataset.Collector{Rdr: r.Rdr, NWorker: r.NWorker, Progress: prog}
	blocks, err := c.Collect(ctx, files, res)
	prog.Close()
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return fmt.Errorf("res %d, %d files: %w", res, len(files), ErrEmptyResult)
	}
	lo, hi := blocks[0].MinMax()
	printStats(r.Out, len(blocks), res, lo, hi)

	if err := h5out.Write(outPath, blocks, res, r.Compress); err != nil {
		return err
	}
	r.Out.Printf("Append data to file %s\n", outPath)
	if r.Png {
		pngName := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".png"
		caption := fmt.Sprintf("%s block 1 of %d  min %.1f max %.1f", filepath.Base(outPath), len(blocks), lo, hi)
		if err := preview.WritePNG(pngName, blocks[0], caption); err != nil {
			return err
		}
	}
	return nil
}

// Mymain checks the input directory, then works through the block
// sizes. A failure at one size does not stop the others, but all
// failures are returned.
func Mymain(flags *CmdFlag, stdout, stderr io.Writer) error {
	if flags.InDir == "" {
		flags.InDir = filepath.Join("..", "pdb-database", "pdb_"+flags.Mode)
	}
	if flags.OutDir == "" {
		flags.OutDir = flags.Mode + "_dataset"
	}
	out := log.New(stdout, "", 0)
	if len(flags.Res) == 0 {
		out.Println("No resolutions are specified, using", DfltRes)
		flags.Res = []int{DfltRes}
	}
	for _, res := range flags.Res {
		if res <= 0 {
			return fmt.Errorf("block size must be positive, not %d", res)
		}
	}
	if fi, err := os.Stat(flags.InDir); err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrInputNotFound, flags.InDir)
	}
	if err := os.MkdirAll(flags.OutDir, 0755); err != nil {
		return err
	}
	files, err := pdbFiles(flags.InDir)
	if err != nil {
		return err
	}
	warnLog, err := pdb.LogWhere(flags.LogDest)
	if err != nil {
		return fmt.Errorf("%w creating log file", err)
	}
	out.Printf("mode=%s resolutions=%v files=%d\n", flags.Mode, flags.Res, len(files))

	r := Run{
		Rdr:      pdb.NewReader(pdb.Options{Strict: flags.Strict, Log: warnLog}),
		NWorker:  flags.NWorker,
		Compress: flags.Compress,
		Png:      flags.Png,
		Out:      out,
		Prog:     stderr,
	}
	var errs []error
	for i, res := range flags.Res {
		out.Printf("(iter=%d/%d) %dx%d\n", i+1, len(flags.Res), res, res)
		if err := r.MakeSet(context.Background(), files, OutName(flags.OutDir, res), res); err != nil {
			fmt.Fprintln(stderr, "res", res, "failed:", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
