// Calculate some geometries, lengths for now

package geom

import (
	"math"

	"github.com/andrew-torda/camaps/pdb/cmmn"
)

// xyzDiff gets the difference of two vectors
func xyzDiff(start, end cmmn.Xyz) (diff cmmn.Xyz) {
	diff.X = end.X - start.X
	diff.Y = end.Y - start.Y
	diff.Z = end.Z - start.Z
	return diff
}

// xyzLen2 gives us the length squared
func xyzLen2(v cmmn.Xyz) float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

// XyzDist2 is the distance squared between two points.
func XyzDist2(x1, x2 cmmn.Xyz) float64 { return xyzLen2(xyzDiff(x1, x2)) }

// XyzDist is the Euclidean distance between two points. Unlike the old
// alpha carbon neighbour version, there are no limits. Any pair of
// residues in a chain is fair game.
func XyzDist(x1, x2 cmmn.Xyz) float64 { return math.Sqrt(XyzDist2(x1, x2)) }
