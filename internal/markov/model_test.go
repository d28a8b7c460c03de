package markov

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqtools/markovbg/internal/alphabet"
	"github.com/seqtools/markovbg/internal/wordindex"
)

const probTolerance = 1e-9

// checkNormalized verifies the two normalization invariants: stationary
// sums to 1 across prefixes, every transition row sums to 1 across its
// suffixes.
func checkNormalized(t *testing.T, m *Model) {
	t.Helper()

	var stationarySum float64
	for prefix := 0; prefix < m.Prefixes(); prefix++ {
		stationarySum += m.StationaryProb(prefix)

		var rowSum float64
		for suffix := 0; suffix < alphabet.Size; suffix++ {
			rowSum += m.TransitionProb(prefix, suffix)
		}
		assert.InDelta(t, 1.0, rowSum, probTolerance, "transition row %d", prefix)
	}
	assert.InDelta(t, 1.0, stationarySum, probTolerance)
}

func TestFitValidation(t *testing.T) {
	t.Run("negative order", func(t *testing.T) {
		_, err := Fit("ACGT", -1, 1)
		require.Error(t, err)
		var modelErr *InvalidOrderError
		require.ErrorAs(t, err, &modelErr)
	})

	t.Run("negative pseudo", func(t *testing.T) {
		_, err := Fit("ACGT", 1, -0.5)
		require.Error(t, err)
	})

	t.Run("no counts and no smoothing", func(t *testing.T) {
		_, err := Fit("NNNN", 2, 0)
		require.Error(t, err)
		var degenerate *DegenerateModelError
		require.ErrorAs(t, err, &degenerate)

		_, err = Fit("AC", 2, 0) // shorter than order+1
		require.ErrorAs(t, err, &degenerate)
	})

	t.Run("short sequence with smoothing is uniform", func(t *testing.T) {
		m, err := Fit("AC", 2, 1)
		require.NoError(t, err)
		checkNormalized(t, m)
		assert.InDelta(t, 1.0/64, m.StationaryProb(0), probTolerance)
		assert.InDelta(t, 0.25, m.TransitionProb(17, 2), probTolerance)
	})
}

func TestFitCounts(t *testing.T) {
	// "ACGT" at order 1 yields exactly one occurrence each of the
	// windows AC, CG and GT, so the maximum-likelihood transitions are
	// deterministic without smoothing.
	m, err := Fit("ACGT", 1, 0)
	require.NoError(t, err)

	a, c, g, tt := alphabet.Encode('A'), alphabet.Encode('C'), alphabet.Encode('G'), alphabet.Encode('T')

	assert.InDelta(t, 1.0/3, m.StationaryProb(a), probTolerance)
	assert.InDelta(t, 1.0/3, m.StationaryProb(c), probTolerance)
	assert.InDelta(t, 1.0/3, m.StationaryProb(g), probTolerance)
	assert.Zero(t, m.StationaryProb(tt))

	assert.InDelta(t, 1.0, m.TransitionProb(a, c), probTolerance)
	assert.InDelta(t, 1.0, m.TransitionProb(c, g), probTolerance)
	assert.InDelta(t, 1.0, m.TransitionProb(g, tt), probTolerance)
	// the T row saw nothing and stays all zero
	for suffix := 0; suffix < alphabet.Size; suffix++ {
		assert.Zero(t, m.TransitionProb(tt, suffix))
	}
}

func TestFitSkipsInvalidWindows(t *testing.T) {
	// CN and NG windows must be dropped, not counted as if N were A
	m, err := Fit("ACNGT", 1, 0)
	require.NoError(t, err)

	a, c, g, tt := 0, 1, 2, 3
	assert.InDelta(t, 1.0, m.TransitionProb(a, c), probTolerance)
	assert.InDelta(t, 1.0, m.TransitionProb(g, tt), probTolerance)
	assert.InDelta(t, 0.5, m.StationaryProb(a), probTolerance)
	assert.InDelta(t, 0.5, m.StationaryProb(g), probTolerance)
	assert.Zero(t, m.StationaryProb(c))
}

func TestFitOrderZero(t *testing.T) {
	m, err := Fit("AACG", 0, 0)
	require.NoError(t, err)
	require.Equal(t, 0, m.Order())

	priori := m.Priori()
	assert.InDelta(t, 0.50, priori[0], probTolerance)
	assert.InDelta(t, 0.25, priori[1], probTolerance)
	assert.InDelta(t, 0.25, priori[2], probTolerance)
	assert.Zero(t, priori[3])

	logp, err := m.LogProbability("T")
	require.NoError(t, err)
	assert.True(t, math.IsInf(logp, -1))
}

func TestFitNormalization(t *testing.T) {
	for _, order := range []int{1, 2, 3} {
		m, err := Fit("ACGTACGGTTACCAGTACCATTTGCA", order, 1)
		require.NoError(t, err)
		checkNormalized(t, m)
	}
}

func TestFitDeterminism(t *testing.T) {
	const seq = "AAAAACGTACGT"
	m1, err := Fit(seq, 2, 1)
	require.NoError(t, err)
	m2, err := Fit(seq, 2, 1)
	require.NoError(t, err)

	for prefix := 0; prefix < m1.Prefixes(); prefix++ {
		assert.Equal(t, m1.StationaryProb(prefix), m2.StationaryProb(prefix))
		for suffix := 0; suffix < alphabet.Size; suffix++ {
			assert.Equal(t, m1.TransitionProb(prefix, suffix), m2.TransitionProb(prefix, suffix))
		}
	}

	logp1, err := m1.LogProbability(seq)
	require.NoError(t, err)
	logp2, err := m2.LogProbability(seq)
	require.NoError(t, err)
	assert.Equal(t, logp1, logp2, "scores must be bit-for-bit reproducible")
	assert.True(t, logp1 < 0)
	assert.False(t, math.IsInf(logp1, -1), "pseudo > 0 guarantees no zero probability")
}

func TestSmoothingMonotonicity(t *testing.T) {
	// As pseudo -> 0 the smoothed probability approaches the raw
	// count ratio.
	const seq = "AACAACCACAAA"
	raw, err := Fit(seq, 1, 0)
	require.NoError(t, err)
	target := raw.TransitionProb(0, 1) // P(C|A) without smoothing

	prevGap := math.Inf(1)
	for _, pseudo := range []float64{1, 0.1, 0.01, 0.001} {
		m, err := Fit(seq, 1, pseudo)
		require.NoError(t, err)
		gap := math.Abs(m.TransitionProb(0, 1) - target)
		assert.Less(t, gap, prevGap, "pseudo=%g", pseudo)
		prevGap = gap
	}
}

func TestWithPseudo(t *testing.T) {
	m, err := Fit("ACGTACGGTTAC", 1, 1)
	require.NoError(t, err)

	refit, err := Fit("ACGTACGGTTAC", 1, 0.25)
	require.NoError(t, err)

	renorm, err := m.WithPseudo(0.25)
	require.NoError(t, err)
	assert.Equal(t, 0.25, renorm.Pseudo())
	assert.Equal(t, 1.0, m.Pseudo(), "receiver stays untouched")

	for prefix := 0; prefix < m.Prefixes(); prefix++ {
		for suffix := 0; suffix < alphabet.Size; suffix++ {
			assert.InDelta(t, refit.TransitionProb(prefix, suffix),
				renorm.TransitionProb(prefix, suffix), probTolerance)
		}
	}

	t.Run("no counts to renormalize", func(t *testing.T) {
		b, err := FromPriori([4]float64{0.25, 0.25, 0.25, 0.25})
		require.NoError(t, err)
		_, err = b.WithPseudo(1)
		require.Error(t, err)
	})

	t.Run("negative pseudo", func(t *testing.T) {
		_, err := m.WithPseudo(-1)
		require.Error(t, err)
	})
}

func TestClone(t *testing.T) {
	m, err := Fit("ACGTACGT", 1, 1)
	require.NoError(t, err)

	c := m.Clone()
	require.Equal(t, m.Order(), c.Order())
	for prefix := 0; prefix < m.Prefixes(); prefix++ {
		for suffix := 0; suffix < alphabet.Size; suffix++ {
			assert.Equal(t, m.TransitionProb(prefix, suffix), c.TransitionProb(prefix, suffix))
		}
	}

	// renormalizing the clone must not leak back into the original
	before := m.TransitionProb(0, 1)
	_, err = c.WithPseudo(0)
	require.NoError(t, err)
	assert.Equal(t, before, m.TransitionProb(0, 1))
}

func TestRecordsRoundTrip(t *testing.T) {
	m, err := Fit("AAAAACGTACGT", 2, 1)
	require.NoError(t, err)

	records := m.Records()
	require.Len(t, records, 64)

	loaded, err := LoadTable(records)
	require.NoError(t, err)
	require.Equal(t, m.Order(), loaded.Order())

	for prefix := 0; prefix < m.Prefixes(); prefix++ {
		assert.InDelta(t, m.StationaryProb(prefix), loaded.StationaryProb(prefix), probTolerance)
		for suffix := 0; suffix < alphabet.Size; suffix++ {
			assert.InDelta(t, m.TransitionProb(prefix, suffix),
				loaded.TransitionProb(prefix, suffix), probTolerance)
		}
	}
}

func TestFitBothStrands(t *testing.T) {
	m, err := FitWithOptions("AACGTAGGGAT", 1, 0, FitOptions{BothStrands: true})
	require.NoError(t, err)
	checkNormalized(t, m)

	// a strand-symmetric model gives every 2-mer the same frequency as
	// its reverse complement
	for _, r := range m.Records() {
		rc := wordindex.ReverseComplementIndex(r.Oligo, 0, 2)
		mirror, ok := wordindex.Decode(rc, 2)
		require.True(t, ok)
		rcFreq := m.StationaryProb(rc>>2) * m.TransitionProb(rc>>2, rc&3)
		assert.InDelta(t, r.Freq, rcFreq, probTolerance, "%s vs %s", r.Oligo, mirror)
	}
}
