// Package pdb/cmmn has common definitions for coordinates and
// pdb files
package cmmn

import (
	"errors"
	"fmt"
)

type Xyz struct{ X, Y, Z float64 }

// Atom is one named atom from an ATOM or HETATM record.
type Atom struct {
	Name string
	Xyz
}

// Residue holds the atoms that share a chain, residue number,
// insertion code and hetero flag.
type Residue struct {
	Name    string // three letter name like "ALA"
	NumLbl  int    // residue number from the file. Not a real index
	InsCode byte   // Insertion code
	Het     bool
	Atoms   []Atom
}

// Atom looks for an atom called name. If there are several (alternate
// locations), you get the first one read.
func (r *Residue) Atom(name string) (Xyz, bool) {
	for i := range r.Atoms {
		if r.Atoms[i].Name == name {
			return r.Atoms[i].Xyz, true
		}
	}
	return Xyz{}, false
}

// Chain has residues in the order they first appeared in the file.
type Chain struct {
	ChainID  string // Name, like "A" or "B"
	Residues []Residue
}

// Model is one frame. X-ray structures have one, NMR ensembles many.
type Model struct {
	MdlNum int
	Chains []Chain
}

// Chain returns the chain called id or nil.
func (m *Model) Chain(id string) *Chain {
	for i := range m.Chains {
		if m.Chains[i].ChainID == id {
			return &m.Chains[i]
		}
	}
	return nil
}

// Structure is everything we kept from one file.
type Structure struct {
	Fname  string
	Models []Model
}

// ChainNames returns the names of the chains in the first model.
func (s *Structure) ChainNames() (ret []string) {
	if len(s.Models) == 0 {
		return nil
	}
	for _, c := range s.Models[0].Chains {
		ret = append(ret, c.ChainID)
	}
	return ret
}

// ErrKind says what went wrong with a structure.
type ErrKind byte

const (
	MissingChain ErrKind = iota
	ParseFailure
)

func (k ErrKind) String() string {
	switch k {
	case MissingChain:
		return "missing chain"
	case ParseFailure:
		return "parse failure"
	}
	return "unknown"
}

// ErrMissingChain and ErrParse let callers use errors.Is without
// digging out a StructureError.
var (
	ErrMissingChain = errors.New("missing chain")
	ErrParse        = errors.New("cannot parse structure")
)

// StructureError is returned when a file cannot be turned into the
// chain and residues we want.
type StructureError struct {
	Kind  ErrKind
	Fname string
	Err   error
}

func (e *StructureError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Fname, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Fname, e.Kind, e.Err)
}

func (e *StructureError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMissingChain) work.
func (e *StructureError) Is(target error) bool {
	switch target {
	case ErrMissingChain:
		return e.Kind == MissingChain
	case ErrParse:
		return e.Kind == ParseFailure
	}
	return false
}
