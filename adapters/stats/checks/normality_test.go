package checks

import (
	"math"
	"math/rand"
	"testing"

	"goresid/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample12 = []float64{2.1, 3.4, 1.9, 5.6, 4.4, 3.3, 2.8, 3.9, 4.1, 3.0, 2.5, 3.7}

func normalSample(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

func TestJarqueBera_SymmetricSample(t *testing.T) {
	res, err := JarqueBera([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	// skew 0, kurtosis 6.8/4 = 1.7
	assert.InDelta(t, 0, res.Skew, 1e-12)
	assert.InDelta(t, 1.7, res.Kurtosis, 1e-12)
	assert.InDelta(t, 5.0/6.0*(1.3*1.3/4), res.Statistic, 1e-12)
	assert.InDelta(t, math.Exp(-res.Statistic/2), res.PValue, 1e-12)
}

func TestJarqueBera_KnownSample(t *testing.T) {
	res, err := JarqueBera(sample12)
	require.NoError(t, err)
	assert.InDelta(t, 0.497691, res.Statistic, 1e-5)
	assert.InDelta(t, 0.779700, res.PValue, 1e-5)
}

func TestJarqueBera_ConstantIsDegenerate(t *testing.T) {
	_, err := JarqueBera([]float64{3, 3, 3, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDegenerate)
}

func TestShapiroWilk_ReferenceValues(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		w, p float64
	}{
		{"n=3", []float64{1, 2, 4}, 0.964286, 0.636887},
		{"n=5 evenly spaced", []float64{0, 1, 2, 3, 4}, 0.986762, 0.967174},
		{"n=12", sample12, 0.972087, 0.931391},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ShapiroWilk(tt.data)
			require.NoError(t, err)
			assert.InDelta(t, tt.w, res.Statistic, 1e-5)
			assert.InDelta(t, tt.p, res.PValue, 1e-4)
		})
	}
}

func TestShapiroWilk_EvenlySpacedTriple(t *testing.T) {
	res, err := ShapiroWilk([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Statistic, 1e-12)
	assert.InDelta(t, 1.0, res.PValue, 1e-9)
}

func TestShapiroWilk_OutlierRejects(t *testing.T) {
	res, err := ShapiroWilk([]float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 10})
	require.NoError(t, err)
	assert.InDelta(t, 0.365721, res.Statistic, 1e-5)
	assert.Less(t, res.PValue, 1e-5)
}

func TestShapiroWilk_Errors(t *testing.T) {
	_, err := ShapiroWilk([]float64{1, 2})
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = ShapiroWilk([]float64{4, 4, 4, 4})
	assert.ErrorIs(t, err, core.ErrDegenerate)
}

func TestShapiroWilk_StatisticInUnitInterval(t *testing.T) {
	for _, n := range []int{4, 7, 11, 12, 50, 200} {
		res, err := ShapiroWilk(normalSample(n, int64(n)))
		require.NoError(t, err)
		assert.Greater(t, res.Statistic, 0.0)
		assert.LessOrEqual(t, res.Statistic, 1.0)
		assert.GreaterOrEqual(t, res.PValue, 0.0)
		assert.LessOrEqual(t, res.PValue, 1.0)
	}
}

func TestSWCoefficients_UnitNorm(t *testing.T) {
	for _, n := range []int{4, 5, 6, 10, 25} {
		a := swCoefficients(n)
		sum := 0.0
		for _, v := range a {
			assert.Greater(t, v, 0.0)
			sum += v * v
		}
		assert.InDelta(t, 0.5, sum, 1e-9, "n=%d", n)
	}
}

func TestAndersonDarling_KnownSample(t *testing.T) {
	res, err := AndersonDarling(sample12)
	require.NoError(t, err)
	assert.InDelta(t, 0.149289, res.Statistic, 1e-5)
	require.Len(t, res.Levels, 5)
	for _, level := range res.Levels {
		assert.Equal(t, "fail_to_reject", string(level.Decision))
	}
}

func TestAndersonDarling_CriticalValues(t *testing.T) {
	data := make([]float64, 10)
	for i := range data {
		data[i] = float64(i * i)
	}
	res, err := AndersonDarling(data)
	require.NoError(t, err)

	want := []float64{0.501, 0.570, 0.684, 0.798, 0.950}
	sigs := []float64{15, 10, 5, 2.5, 1}
	for i, level := range res.Levels {
		assert.Equal(t, sigs[i], level.Significance)
		assert.InDelta(t, want[i], level.CriticalValue, 1e-12)
	}
}

func TestAndersonDarling_Errors(t *testing.T) {
	_, err := AndersonDarling([]float64{1, 2})
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = AndersonDarling([]float64{1, 1, 1})
	assert.ErrorIs(t, err, core.ErrDegenerate)
}

func TestDAgostino_KnownSamples(t *testing.T) {
	res, err := DAgostino(sample12)
	require.NoError(t, err)
	assert.InDelta(t, 0.916965, res.SkewZ, 1e-5)
	assert.InDelta(t, 0.585283, res.KurtosisZ, 1e-5)
	assert.InDelta(t, 1.183380, res.Statistic, 1e-5)
	assert.InDelta(t, 0.553391, res.PValue, 1e-5)

	ramp := make([]float64, 20)
	for i := range ramp {
		ramp[i] = float64(i)
	}
	res, err = DAgostino(ramp)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.SkewZ, 1e-9)
	assert.InDelta(t, -1.705810, res.KurtosisZ, 1e-5)
	assert.InDelta(t, 2.909789, res.Statistic, 1e-5)
}

func TestDAgostino_NeedsEightObservations(t *testing.T) {
	_, err := DAgostino([]float64{1, 2, 3, 4, 5, 6, 7})
	assert.ErrorIs(t, err, core.ErrInsufficientData)
	assert.True(t, core.IsNumericalError(err))
}

func TestNormality_LargeNormalSampleIsNotRejected(t *testing.T) {
	data := normalSample(500, 7)

	jb, err := JarqueBera(data)
	require.NoError(t, err)
	sw, err := ShapiroWilk(data)
	require.NoError(t, err)
	k2, err := DAgostino(data)
	require.NoError(t, err)

	assert.Greater(t, jb.PValue, 0.001)
	assert.Greater(t, sw.PValue, 0.001)
	assert.Greater(t, k2.PValue, 0.001)
}

func TestNormality_ExponentialSampleIsRejected(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	data := make([]float64, 500)
	for i := range data {
		data[i] = rng.ExpFloat64()
	}

	jb, err := JarqueBera(data)
	require.NoError(t, err)
	sw, err := ShapiroWilk(data)
	require.NoError(t, err)
	ad, err := AndersonDarling(data)
	require.NoError(t, err)

	assert.Less(t, jb.PValue, 1e-6)
	assert.Less(t, sw.PValue, 1e-6)
	assert.Equal(t, "reject", string(ad.Levels[len(ad.Levels)-1].Decision))
}
