// Package calpha pulls the alpha carbons out of one chain of a
// structure and builds the matrix of distances between them.
package calpha

import (
	"github.com/andrew-torda/camaps/matrix"
	"github.com/andrew-torda/camaps/pdb/calpha/geom"
	"github.com/andrew-torda/camaps/pdb/cmmn"
)

const (
	CanonChain = "A"  // the only chain we look at
	CaName     = "CA" // the atom standing in for its residue
)

// CaCoords returns the alpha carbon coordinates of chainID in the first
// model, in chain order. Residues without a CA are dropped.
// Later models are ignored. A structure with no models at all gives an
// empty slice, not an error. A first model without the chain is an
// error of kind MissingChain.
func CaCoords(s *cmmn.Structure, chainID string) ([]cmmn.Xyz, error) {
	if len(s.Models) == 0 {
		return nil, nil
	}
	chain := s.Models[0].Chain(chainID)
	if chain == nil {
		return nil, &cmmn.StructureError{Kind: cmmn.MissingChain, Fname: s.Fname}
	}
	ca := make([]cmmn.Xyz, 0, len(chain.Residues))
	for i := range chain.Residues {
		if xyz, ok := chain.Residues[i].Atom(CaName); ok {
			ca = append(ca, xyz)
		}
	}
	return ca, nil
}

// DistMat gives the n x n matrix of distances between coordinates.
// Only the upper triangle is calculated. The diagonal is left as zero.
func DistMat(xyz []cmmn.Xyz) *matrix.DMatrix2d {
	n := len(xyz)
	m := matrix.NewDMatrix2d(n, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := geom.XyzDist(xyz[i], xyz[j])
			m.Mat[i][j] = d
			m.Mat[j][i] = d
		}
	}
	return m
}

// ChainDistMat is CaCoords followed by DistMat.
func ChainDistMat(s *cmmn.Structure, chainID string) (*matrix.DMatrix2d, error) {
	xyz, err := CaCoords(s, chainID)
	if err != nil {
		return nil, err
	}
	return DistMat(xyz), nil
}
