package texture

import "github.com/pkg/errors"

// Feature identifies one of the eight Haralick texture descriptors.
type Feature int

const (
	// Energy is sum g(i,j)^2.
	Energy Feature = iota
	// Entropy is -sum g(i,j) log2 g(i,j).
	Entropy
	// Correlation is sum (i-mu)(j-mu) g(i,j) / sigma^2.
	Correlation
	// InverseDifferenceMoment is sum g(i,j) / (1 + (i-j)^2).
	InverseDifferenceMoment
	// Inertia (contrast) is sum (i-j)^2 g(i,j).
	Inertia
	// ClusterShade is sum ((i-mu) + (j-mu))^3 g(i,j).
	ClusterShade
	// ClusterProminence is sum ((i-mu) + (j-mu))^4 g(i,j).
	ClusterProminence
	// HaralickCorrelation is (sum i*j*g(i,j) - mu_t^2) / sigma_t^2.
	HaralickCorrelation

	// NumFeatures is the number of descriptors produced per pixel.
	NumFeatures = 8
)

var featureNames = [NumFeatures]string{
	Energy:                  "energy",
	Entropy:                 "entropy",
	Correlation:             "correlation",
	InverseDifferenceMoment: "inverseDifferenceMoment",
	Inertia:                 "inertia",
	ClusterShade:            "clusterShade",
	ClusterProminence:       "clusterProminence",
	HaralickCorrelation:     "haralickCorrelation",
}

// String returns the feature's channel name.
func (f Feature) String() string {
	if f < 0 || int(f) >= NumFeatures {
		return "unknown"
	}
	return featureNames[f]
}

// AllFeatures lists every feature in output order.
func AllFeatures() []Feature {
	all := make([]Feature, NumFeatures)
	for i := range all {
		all[i] = Feature(i)
	}
	return all
}

// ParseFeature resolves a channel name such as "clusterShade".
func ParseFeature(name string) (Feature, error) {
	for i, n := range featureNames {
		if n == name {
			return Feature(i), nil
		}
	}
	return 0, errors.Errorf("texture: unknown feature %q", name)
}

// Features holds one value per descriptor, indexed by Feature.
type Features [NumFeatures]float64
