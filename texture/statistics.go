package texture

import "math"

// Moments are the intermediate statistics of a co-occurrence distribution.
type Moments struct {
	// PixelMean is sum i*g(i,j), equal to sum j*g(i,j) by symmetry.
	PixelMean float64
	// PixelVariance is sum (i-PixelMean)^2 g(i,j).
	PixelVariance float64
	// MarginalMean is the mean of the row sums over all bins.
	MarginalMean float64
	// MarginalVariance is the population variance of the row sums over all bins.
	MarginalVariance float64
}

// ComputeMoments derives the pixel and marginal moments.
//
// Row sums of bins that do not occur count as zero. The marginal moments use
// the Knuth running recurrence over bins 0..bins-1:
//
//	M(1) = x(1), M(k) = M(k-1) + (x(k) - M(k-1)) / k
//	S(1) = 0,    S(k) = S(k-1) + (x(k) - M(k-1)) * (x(k) - M(k))
//
// and the variance is S(bins) / bins.
func ComputeMoments(dist []Entry, marginals []Marginal, bins int) Moments {
	var m Moments
	if len(dist) == 0 || bins <= 0 {
		return m
	}

	for _, e := range dist {
		m.PixelMean += float64(e.I) * e.G
	}
	for _, e := range dist {
		d := float64(e.I) - m.PixelMean
		m.PixelVariance += d * d * e.G
	}

	next := 0
	rowSum := func(bin int) float64 {
		if next < len(marginals) && marginals[next].Bin == bin {
			next++
			return marginals[next-1].Sum
		}
		return 0
	}
	mean := rowSum(0)
	dev := 0.0
	for bin := 1; bin < bins; bin++ {
		k := float64(bin + 1)
		x := rowSum(bin)
		prev := mean
		mean = prev + (x-prev)/k
		dev += (x - prev) * (x - mean)
	}
	m.MarginalMean = mean
	m.MarginalVariance = dev / float64(bins)
	return m
}

// ComputeFeatures evaluates the eight descriptors over a sparse normalized
// distribution sorted by (i, j), as returned by Cooccurrence.Normalized.
//
// An empty distribution yields all zeros. Correlation is 0 when the pixel
// variance is 0, and HaralickCorrelation is 0 when the marginal variance is 0.
//
// Arguments:
//   - dist: The occurring cells.
//   - marginals: The occurring row sums.
//   - bins: The number of bins per axis.
//
// Returns:
//   - Features: The descriptor values.
//   - Moments: The intermediate statistics.
func ComputeFeatures(dist []Entry, marginals []Marginal, bins int) (Features, Moments) {
	var f Features
	if len(dist) == 0 {
		return f, Moments{}
	}
	m := ComputeMoments(dist, marginals, bins)

	var (
		energy, entropy, correlation, idm float64
		inertia, shade, prominence, ijSum float64
	)
	for _, e := range dist {
		g := e.G
		i, j := float64(e.I), float64(e.J)
		di, dj := i-m.PixelMean, j-m.PixelMean
		diff := i - j
		sum := di + dj
		sum2 := sum * sum

		energy += g * g
		if g > 0 {
			entropy -= g * math.Log2(g)
		}
		correlation += di * dj * g
		idm += g / (1 + diff*diff)
		inertia += diff * diff * g
		shade += sum2 * sum * g
		prominence += sum2 * sum2 * g
		ijSum += i * j * g
	}

	if m.PixelVariance > 0 {
		correlation /= m.PixelVariance
	} else {
		correlation = 0
	}
	haralick := 0.0
	if m.MarginalVariance > 0 {
		haralick = (ijSum - m.MarginalMean*m.MarginalMean) / m.MarginalVariance
	}

	f[Energy] = energy
	f[Entropy] = entropy
	f[Correlation] = correlation
	f[InverseDifferenceMoment] = idm
	f[Inertia] = inertia
	f[ClusterShade] = shade
	f[ClusterProminence] = prominence
	f[HaralickCorrelation] = haralick
	return f, m
}
