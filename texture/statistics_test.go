package texture

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallScene is a 3x3 image that quantizes to
//
//	0 0 1
//	0 1 1
//	1 1 0
//
// with two bins over [1, 2].
var smallScene = [][]float64{
	{1, 1, 2},
	{1, 2, 2},
	{2, 2, 1},
}

func centerAccumulator(t *testing.T) *Cooccurrence {
	t.Helper()
	in := mustRaster(t, smallScene)
	q, err := NewQuantizer(2, 1, 2)
	require.NoError(t, err)

	s := newWindowScanner(in, q, image.Pt(1, 1), image.Pt(1, 0), in.Rect, nil)
	acc := NewCooccurrence(2)
	s.scan(image.Pt(1, 1), acc)
	return acc
}

func TestSmallSceneAccumulator(t *testing.T) {
	acc := centerAccumulator(t)

	assert.Equal(t, 12, acc.Total(), "six directed pairs, each counted twice")
	assert.Equal(t, 2, acc.Frequency(0, 0))
	assert.Equal(t, 3, acc.Frequency(0, 1))
	assert.Equal(t, 3, acc.Frequency(1, 0))
	assert.Equal(t, 4, acc.Frequency(1, 1))

	distinct := 0
	for _, e := range acc.Normalized() {
		if e.I <= e.J {
			distinct++
		}
	}
	assert.Equal(t, 3, distinct)
}

func TestSmallSceneFeatures(t *testing.T) {
	acc := centerAccumulator(t)
	f, m := ComputeFeatures(acc.Normalized(), acc.MarginalRowSums(), 2)

	assert.InDelta(t, 7.0/12, m.PixelMean, 1e-12)
	assert.InDelta(t, 35.0/144, m.PixelVariance, 1e-12)
	assert.InDelta(t, 0.5, m.MarginalMean, 1e-12)
	assert.InDelta(t, 1.0/144, m.MarginalVariance, 1e-12)

	assert.InDelta(t, 38.0/144, f[Energy], 1e-12)
	assert.InDelta(t, 1.9591479, f[Entropy], 1e-6)
	assert.InDelta(t, -1.0/35, f[Correlation], 1e-12)
	assert.InDelta(t, 0.75, f[InverseDifferenceMoment], 1e-12)
	assert.InDelta(t, 0.5, f[Inertia], 1e-12)
	assert.InDelta(t, -96.0/1296, f[ClusterShade], 1e-12)
	assert.InDelta(t, 3654.0/7776, f[ClusterProminence], 1e-12)
	assert.InDelta(t, 12.0, f[HaralickCorrelation], 1e-9)
}

func TestComputeFeaturesEmpty(t *testing.T) {
	f, m := ComputeFeatures(nil, nil, 8)
	assert.Equal(t, Features{}, f)
	assert.Equal(t, Moments{}, m)
}

func TestComputeFeaturesSingleCell(t *testing.T) {
	acc := NewCooccurrence(4)
	acc.Insert(2, 2)
	acc.Insert(2, 2)

	f, m := ComputeFeatures(acc.Normalized(), acc.MarginalRowSums(), 4)
	assert.Equal(t, 1.0, f[Energy])
	assert.Equal(t, 0.0, f[Entropy])
	assert.Equal(t, 0.0, f[Inertia])
	assert.Equal(t, 1.0, f[InverseDifferenceMoment])
	assert.Equal(t, 0.0, m.PixelVariance)
	assert.Equal(t, 0.0, f[Correlation], "zero variance yields zero correlation")
	assert.Equal(t, 0.0, f[ClusterShade])
	assert.Equal(t, 0.0, f[ClusterProminence])
	assert.False(t, math.IsNaN(f[HaralickCorrelation]))
}

func TestComputeFeaturesBounds(t *testing.T) {
	in := mustRaster(t, noiseRows(24, 17, 3))
	q, err := NewQuantizer(6, 0, 256)
	require.NoError(t, err)
	s := newWindowScanner(in, q, image.Pt(2, 3), image.Pt(-1, 2), in.Rect, nil)
	acc := NewCooccurrence(6)

	for y := in.Rect.Min.Y; y < in.Rect.Max.Y; y++ {
		for x := in.Rect.Min.X; x < in.Rect.Max.X; x++ {
			s.scan(image.Pt(x, y), acc)
			f, _ := ComputeFeatures(acc.Normalized(), acc.MarginalRowSums(), 6)
			if acc.Empty() {
				assert.Equal(t, Features{}, f)
				continue
			}
			assert.Greater(t, f[Energy], 0.0)
			assert.LessOrEqual(t, f[Energy], 1.0+1e-12)
			assert.GreaterOrEqual(t, f[Entropy], 0.0)
			assert.GreaterOrEqual(t, f[Inertia], 0.0)
			assert.GreaterOrEqual(t, f[ClusterProminence], 0.0)
			assert.LessOrEqual(t, f[InverseDifferenceMoment], 1.0+1e-12)
			assert.LessOrEqual(t, math.Abs(f[Correlation]), 1.0+1e-9)
		}
	}
}
