// Package pdbtest writes small PDB format files for tests in other
// packages. The alpha carbons sit on a straight line, 3.8 Å apart, so
// the distance between residue i and j is 3.8 * |i - j|.
package pdbtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const CaSpacing = 3.8

// Atom is one line of a PDB file, before formatting.
type Atom struct {
	Het     bool
	Name    string
	ResName string
	Chain   string
	ResNum  int
	X, Y, Z float64
}

// Line formats an ATOM or HETATM record with the columns where the
// format wants them.
func Line(serial int, a Atom) string {
	rec := "ATOM"
	if a.Het {
		rec = "HETATM"
	}
	name := a.Name
	if len(name) < 4 {
		name = " " + name
	}
	return fmt.Sprintf("%-6s%5d %-4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s",
		rec, serial, name, a.ResName, a.Chain, a.ResNum, a.X, a.Y, a.Z, 1.0, 0.0, a.Name[:1])
}

// Chain gives n glycines on chain, each with an N and a CA. Residues
// whose index is in noCa get only the N.
func Chain(chain string, n int, noCa ...int) []Atom {
	skip := make(map[int]bool)
	for _, i := range noCa {
		skip[i] = true
	}
	var atoms []Atom
	for i := 0; i < n; i++ {
		x := CaSpacing * float64(i)
		atoms = append(atoms, Atom{Name: "N", ResName: "GLY", Chain: chain, ResNum: i + 1, X: x - 1, Y: 1})
		if !skip[i] {
			atoms = append(atoms, Atom{Name: "CA", ResName: "GLY", Chain: chain, ResNum: i + 1, X: x})
		}
	}
	return atoms
}

// Text turns models into the text of a PDB file. With more than one
// model, each one is wrapped in MODEL / ENDMDL.
func Text(models ...[]Atom) string {
	var b strings.Builder
	b.WriteString("HEADER    TEST STRUCTURE\n")
	serial := 1
	for im, atoms := range models {
		if len(models) > 1 {
			fmt.Fprintf(&b, "MODEL     %4d\n", im+1)
		}
		for _, a := range atoms {
			b.WriteString(Line(serial, a))
			b.WriteByte('\n')
			serial++
		}
		if len(models) > 1 {
			b.WriteString("ENDMDL\n")
		}
	}
	b.WriteString("END\n")
	return b.String()
}

// WriteFile writes models to dir/fname and returns the full path.
func WriteFile(dir, fname string, models ...[]Atom) (string, error) {
	path := filepath.Join(dir, fname)
	if err := os.WriteFile(path, []byte(Text(models...)), 0644); err != nil {
		return "", err
	}
	return path, nil
}
