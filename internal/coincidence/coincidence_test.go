package coincidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/strucconv/internal/concept"
	"github.com/alexiusacademia/strucconv/internal/geometry"
)

func beam(name string, a, b geometry.Vector3) *concept.Beam {
	bm := concept.NewBeam(name, a)
	bm.AddSegmentByEnd(b, concept.SegmentProps{Section: "S", Material: "M"})
	return bm
}

func v(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

func TestLevelIdentical(t *testing.T) {
	a := beam("A", v(0, 0, 0), v(10, 0, 0))
	assert.InDelta(t, 1, Level(a, beam("B", v(0, 0, 0), v(10, 0, 0))), 1e-12)
}

func TestLevelReversed(t *testing.T) {
	a := beam("A", v(0, 0, 0), v(10, 0, 0))
	b := beam("B", v(10, 0, 0), v(0, 0, 0))
	assert.InDelta(t, 1, Level(a, b), 1e-12)
	assert.InDelta(t, 1, Level(b, a), 1e-12)
}

func TestLevelPerpendicular(t *testing.T) {
	a := beam("A", v(0, 0, 0), v(10, 0, 0))
	b := beam("B", v(5, -5, 0), v(5, 5, 0))
	assert.Equal(t, 0.0, Level(a, b))
}

func TestLevelOffset(t *testing.T) {
	a := beam("A", v(0, 0, 0), v(10, 0, 0))
	b := beam("B", v(0, 0.5, 0), v(10, 0.5, 0))
	// each end is half the reference distance (length/10) away
	assert.InDelta(t, 0.25, Level(a, b), 1e-12)

	far := beam("C", v(0, 2, 0), v(10, 2, 0))
	assert.Equal(t, 0.0, Level(a, far))
}

func TestLevelIsAsymmetric(t *testing.T) {
	long := beam("LONG", v(0, 0, 0), v(10, 0, 0))
	half := beam("HALF", v(0, 0, 0), v(5, 0, 0))

	ab, ba := Level(long, half), Level(half, long)
	assert.InDelta(t, 0.5, ab, 1e-12)
	assert.Equal(t, 0.0, ba)
	for _, s := range []float64{ab, ba} {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestLevelDegenerate(t *testing.T) {
	a := beam("A", v(0, 0, 0), v(10, 0, 0))
	dot := beam("DOT", v(3, 0, 0), v(3, 0, 0))
	empty := concept.NewBeam("EMPTY", v(0, 0, 0))

	assert.Equal(t, 0.0, Level(a, dot))
	assert.Equal(t, 0.0, Level(dot, a))
	assert.Equal(t, 0.0, Level(empty, a))
}

func TestBestMatches(t *testing.T) {
	from := []*concept.Beam{
		beam("LEG1", v(0, 0, -50), v(0, 0, 0)),
		beam("BRACE", v(0, 0, -50), v(20, 0, 0)),
		beam("ORPHAN", v(100, 100, 0), v(110, 100, 0)),
	}
	to := []*concept.Beam{
		beam("Jacket_brace_1", v(20.1, 0, 0), v(0, 0, -50.1)),
		beam("Jacket_leg_A", v(0, 0.05, -50), v(0, 0.05, 0)),
		beam("Jacket_leg_A_copy", v(0, 0.2, -50), v(0, 0.2, 0)),
	}

	results := BestMatches(from, to)
	require.Len(t, results, 2)
	assert.Equal(t, "LEG1", results[0].Beam.Name)
	assert.Equal(t, "Jacket_leg_A", results[0].Counterpart.Name)
	assert.Equal(t, "Jacket_brace_1", results[1].Counterpart.Name)
	for _, r := range results {
		assert.Greater(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}

	unmatched := Unmatched(from, results)
	require.Len(t, unmatched, 1)
	assert.Equal(t, "ORPHAN", unmatched[0].Name)

	_, ok := Match(from[2], to)
	assert.False(t, ok)

	Tag(results)
	name, ok := from[0].Properties.Text(Namespace, "Counterpart")
	require.True(t, ok)
	assert.Equal(t, "Jacket_leg_A", name)
	score, ok, err := from[0].Properties.Float(Namespace, "Score")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, results[0].Score, score)
}

func TestByScore(t *testing.T) {
	rs := []Result{{Score: 0.2}, {Score: 0.9}, {Score: 0.5}}
	ByScore(rs)
	assert.Equal(t, []float64{0.9, 0.5, 0.2}, []float64{rs[0].Score, rs[1].Score, rs[2].Score})
}
