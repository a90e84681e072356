// This is the upper level for reading PDB files.
// Decide if a file is compressed or not, and what format
// we are going to read. Then pull the coordinates out of the
// ATOM and HETATM records and hang them on models, chains and residues.

package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/andrew-torda/camaps/pdb/cmmn"
	"github.com/andrew-torda/camaps/pdb/zwrap"
)

const (
	old_fmt byte = iota
	mmcif_fmt
	unk_fmt
)

// Options are fixed when a Reader is built, so there is no global
// switch for warnings.
type Options struct {
	Strict bool        // a broken coordinate record is an error, not a warning
	Log    *log.Logger // warnings go here. nil means throw them away
}

// Reader turns files into cmmn.Structures. It keeps no state between
// files, so one Reader can be shared by many goroutines.
type Reader struct {
	strict bool
	log    *log.Logger
}

// NewReader returns a Reader configured by opts.
func NewReader(opts Options) *Reader {
	lg := opts.Log
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}
	return &Reader{strict: opts.Strict, log: lg}
}

// lookInFile opens a file and guesses if it is in old PDB format or
// in mmcif.
func lookInFile(fname string) (byte, error) {
	pdbWords := []string{"HEADER", "COMPND", "SOURCE", "REMARK", "SEQRES", "HETATM", "ATOM", "MODEL"}
	mmcifWords := []string{"data_", "_entry.id", "loop_"}
	rdr, err := zwrap.Open(fname)
	if err != nil {
		return unk_fmt, err
	}
	defer rdr.Close()

	const maxTestLines = 5000
	scnnr := bufio.NewScanner(rdr)
	for i := 0; scnnr.Scan() && i < maxTestLines; i++ {
		s := scnnr.Text()
		for _, w := range mmcifWords {
			if strings.HasPrefix(s, w) {
				return mmcif_fmt, nil
			}
		}
		for _, w := range pdbWords {
			if strings.HasPrefix(s, w) {
				return old_fmt, nil
			}
		}
	}
	return unk_fmt, errors.New("cannot recognise format")
}

// oldOrMmcif decides what format we will use.
// Maybe it uses the file name or maybe it peeks inside.
// We cannot use the function from filepath to get the file type,
// since it will return .gz if we feed it a.pdb.gz.
func oldOrMmcif(fname string) (byte, error) {
	s := filepath.Base(fname)
	if i := strings.IndexByte(s, '.'); i != -1 {
		s = strings.ToLower(s[i+1:]) // change .ent to ent
		switch {
		case strings.Contains(s, "pdb") || strings.Contains(s, "ent"):
			return old_fmt, nil
		case strings.Contains(s, "cif"):
			return mmcif_fmt, nil
		}
	}
	return lookInFile(fname)
}

// LogWhere decides where to send output.
// "" means it is thrown away, "stdout" is standard output and anything
// else is the name of a file we append to.
func LogWhere(outinfo string) (*log.Logger, error) {
	var iowriter io.Writer
	switch outinfo {
	case "":
		iowriter = io.Discard
	case "stdout":
		iowriter = os.Stdout
	default:
		var err error
		iowriter, err = os.OpenFile(outinfo, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
	}
	return log.New(iowriter, "", log.Lshortfile), nil
}

// Read takes a filename, which may be gzipped, and reads it as a PDB
// format file. Every error comes back as a *cmmn.StructureError with
// kind ParseFailure.
func (rdr *Reader) Read(fname string) (*cmmn.Structure, error) {
	parseErr := func(err error) error {
		return &cmmn.StructureError{Kind: cmmn.ParseFailure, Fname: fname, Err: err}
	}
	typ, err := oldOrMmcif(fname)
	if err != nil {
		return nil, parseErr(err)
	}
	if typ == mmcif_fmt {
		return nil, parseErr(errors.New("mmcif format is not handled"))
	}
	fp, err := zwrap.Open(fname)
	if err != nil {
		return nil, parseErr(err)
	}
	defer fp.Close()
	return rdr.ReadFrom(fp, fname)
}

// ReadFrom reads PDB format text from r. name is only used in messages
// and stored in the structure.
func (rdr *Reader) ReadFrom(r io.Reader, name string) (*cmmn.Structure, error) {
	b := newBuilder(name)
	scnnr := bufio.NewScanner(r)
	scnnr.Buffer(make([]byte, 0, 4096), 1024*1024)
	for lineno := 1; scnnr.Scan(); lineno++ {
		line := scnnr.Text()
		rec := line
		if len(rec) > 6 {
			rec = rec[:6]
		}
		switch strings.TrimSpace(rec) {
		case "MODEL":
			b.startModel(line)
		case "ENDMDL":
			b.endModel()
		case "END":
			return b.s, nil
		case "ATOM", "HETATM":
			if err := b.addAtom(line); err != nil {
				err = fmt.Errorf("line %d: %w", lineno, err)
				if rdr.strict {
					return nil, &cmmn.StructureError{Kind: cmmn.ParseFailure, Fname: name, Err: err}
				}
				rdr.log.Println(name, "ignoring", err)
			}
		}
	}
	if err := scnnr.Err(); err != nil {
		return nil, &cmmn.StructureError{Kind: cmmn.ParseFailure, Fname: name, Err: err}
	}
	return b.s, nil
}

// resKey is what makes a residue unique within a chain.
type resKey struct {
	num     int
	insCode byte
	het     bool
}

// builder keeps track of where the next atom goes. The maps hold
// indices, since the slices move around as they grow.
type builder struct {
	s       *cmmn.Structure
	inModel bool
	chains  map[string]int
	ress    []map[resKey]int // one per chain, same order as Chains
}

func newBuilder(name string) *builder {
	return &builder{s: &cmmn.Structure{Fname: name}}
}

func (b *builder) curModel() *cmmn.Model { return &b.s.Models[len(b.s.Models)-1] }

// startModel opens a new model. The serial number is in columns 11-14.
// If it is missing or broken, we count.
func (b *builder) startModel(line string) {
	num := len(b.s.Models)
	if len(line) > 10 {
		end := min(len(line), 14)
		if n, err := strconv.Atoi(strings.TrimSpace(line[10:end])); err == nil {
			num = n
		}
	}
	b.s.Models = append(b.s.Models, cmmn.Model{MdlNum: num})
	b.chains = make(map[string]int)
	b.ress = b.ress[:0]
	b.inModel = true
}

func (b *builder) endModel() { b.inModel = false }

// Columns, counting from zero, are as in
// https://www.wwpdb.org/documentation/file-format-content/format33/sect9.html#ATOM
// Nothing after z (column 54) is needed.
const minAtomLen = 54

// addAtom parses one coordinate record and files it.
// Atoms outside a MODEL/ENDMDL pair go to an implicit model, which
// is what you want for single model files.
func (b *builder) addAtom(line string) error {
	if len(line) < minAtomLen {
		return fmt.Errorf("coordinate record too short (%d characters)", len(line))
	}
	var xyz cmmn.Xyz
	var err error
	for i, p := range []*float64{&xyz.X, &xyz.Y, &xyz.Z} {
		s := strings.TrimSpace(line[30+8*i : 38+8*i])
		if *p, err = strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("broken coordinate %q", s)
		}
	}
	num, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return fmt.Errorf("broken residue number %q", line[22:26])
	}
	key := resKey{num: num, insCode: line[26], het: strings.HasPrefix(line, "HETATM")}
	atom := cmmn.Atom{Name: strings.TrimSpace(line[12:16]), Xyz: xyz}
	if !b.inModel {
		b.startModel("")
	}
	mdl := b.curModel()

	chainID := line[21:22]
	ic, ok := b.chains[chainID]
	if !ok {
		ic = len(mdl.Chains)
		mdl.Chains = append(mdl.Chains, cmmn.Chain{ChainID: chainID})
		b.chains[chainID] = ic
		b.ress = append(b.ress, make(map[resKey]int))
	}
	chain := &mdl.Chains[ic]
	ir, ok := b.ress[ic][key]
	if !ok {
		ir = len(chain.Residues)
		chain.Residues = append(chain.Residues, cmmn.Residue{
			Name:    strings.TrimSpace(line[17:20]),
			NumLbl:  num,
			InsCode: key.insCode,
			Het:     key.het,
		})
		b.ress[ic][key] = ir
	}
	res := &chain.Residues[ir]
	if _, dup := res.Atom(atom.Name); dup { // alternate location, keep the first
		return nil
	}
	res.Atoms = append(res.Atoms, atom)
	return nil
}
