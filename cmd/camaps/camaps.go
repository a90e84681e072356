// 2 Sep 2024
// camaps turns a directory of PDB files into hdf5 datasets of alpha
// carbon distance matrix blocks, one file per block size.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"runtime"

	"github.com/andrew-torda/camaps/pkg/camaps"
)

// usage
func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts]")
	flag.PrintDefaults()
}

func mymain() int {
	var flags camaps.CmdFlag
	resFlags := []struct {
		res int
		on  *bool
	}{{64, nil}, {128, nil}, {256, nil}, {512, nil}}
	for i := range resFlags {
		r := resFlags[i].res
		resFlags[i].on = flag.Bool(fmt.Sprint(r), false, fmt.Sprintf("output %dx%d blocks", r, r))
	}
	flag.StringVar(&flags.Mode, "mode", "train", "train or test, picks the default directories")
	flag.BoolVar(&flags.Compress, "z", false, "gzip compress the dataset")
	flag.StringVar(&flags.InDir, "i", "", "input directory of .pdb files, default ../pdb-database/pdb_<mode>")
	flag.StringVar(&flags.OutDir, "o", "", "output directory, default <mode>_dataset")
	flag.IntVar(&flags.NWorker, "p", runtime.NumCPU(), "number of worker goroutines")
	flag.BoolVar(&flags.Strict, "strict", false, "broken coordinate records are fatal")
	flag.StringVar(&flags.LogDest, "l", "", "parser warnings go to this file, or \"stdout\"")
	flag.BoolVar(&flags.Png, "png", false, "draw the first block of each dataset")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 0 {
		usage()
		return camaps.ExitUsageError
	}
	if flags.Mode != "train" && flags.Mode != "test" {
		fmt.Fprintln(os.Stderr, "mode must be train or test, not", flags.Mode)
		return camaps.ExitUsageError
	}
	for _, rf := range resFlags {
		if *rf.on {
			flags.Res = append(flags.Res, rf.res)
		}
	}
	if err := camaps.Mymain(&flags, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return camaps.ExitFailure
	}
	return camaps.ExitSuccess
}

func main() {
	os.Exit(mymain())
}
