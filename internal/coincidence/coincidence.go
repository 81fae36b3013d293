// Package coincidence matches the beams of two independently built models,
// which share no identifiers, by how closely their geometry coincides.
package coincidence

import (
	"math"
	"sort"

	"github.com/alexiusacademia/strucconv/internal/concept"
	"github.com/alexiusacademia/strucconv/internal/geometry"
)

// Namespace is the property set written by Tag.
const Namespace = "Coincidence"

// Level scores in [0, 1] how likely b is the same physical member as a.
//
// It is the product of four factors: alignment of the two directions, how
// close the projections of b's ends fall to a's ends (either orientation),
// and the perpendicular distance of each of b's ends from a's line relative
// to a tenth of a's length. Any single mismatch drives the score to zero.
// The score is not symmetric in a and b.
func Level(a, b *concept.Beam) float64 {
	la := a.Chord()
	lengthA := a.Length()
	if la.Length() == 0 || lengthA == 0 || b.Chord().Length() == 0 {
		return 0
	}

	angle := geometry.AngleBetween(la.Vector(), b.Chord().Vector())
	fAngle := math.Max(0, 1-angle/(math.Pi/2))

	eta1, dist1, _ := geometry.ProjectPointOnLine(la.A, la.B, b.EndA())
	eta2, dist2, _ := geometry.ProjectPointOnLine(la.A, la.B, b.EndB())

	same := math.Abs(eta1) + math.Abs(1-eta2)
	reversed := math.Abs(1-eta1) + math.Abs(eta2)
	fEta := math.Max(0, 1-math.Min(same, reversed))

	ref := lengthA / 10
	fDist1 := math.Max(0, 1-dist1/ref)
	fDist2 := math.Max(0, 1-dist2/ref)

	return fAngle * fEta * fDist1 * fDist2
}

// Result pairs a beam with its best counterpart in the other model.
type Result struct {
	Beam        *concept.Beam
	Counterpart *concept.Beam
	Score       float64
}

// Match returns the candidate with the highest score against beam. The
// first candidate wins ties. It returns false when every score is zero.
func Match(beam *concept.Beam, candidates []*concept.Beam) (Result, bool) {
	best := Result{Beam: beam}
	for _, c := range candidates {
		if s := Level(beam, c); s > best.Score {
			best.Counterpart, best.Score = c, s
		}
	}
	return best, best.Counterpart != nil
}

// BestMatches matches every beam of from against the beams of to. Beams
// without a counterpart are left out.
func BestMatches(from, to []*concept.Beam) []Result {
	var out []Result
	for _, b := range from {
		if r, ok := Match(b, to); ok {
			out = append(out, r)
		}
	}
	return out
}

// Unmatched returns the beams of from that have no result, in order.
func Unmatched(from []*concept.Beam, results []Result) []*concept.Beam {
	seen := make(map[*concept.Beam]bool, len(results))
	for _, r := range results {
		seen[r.Beam] = true
	}
	var out []*concept.Beam
	for _, b := range from {
		if !seen[b] {
			out = append(out, b)
		}
	}
	return out
}

// Tag records the counterpart of each result in the beam's properties so an
// exporter can carry the correspondence.
func Tag(results []Result) {
	for _, r := range results {
		r.Beam.Properties.Set(Namespace, "Counterpart", r.Counterpart.Name)
		r.Beam.Properties.Set(Namespace, "CounterpartID", r.Counterpart.ID.String())
		r.Beam.Properties.Set(Namespace, "Score", r.Score)
	}
}

// ByScore sorts results from best to worst, keeping input order among equals.
func ByScore(results []Result) {
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
}
