package game

import (
	"slices"

	"github.com/oomph-ac/wallrun/oerror"
)

// CurveKey is a single (time, value) point of a Curve.
type CurveKey struct {
	Time  float64 `yaml:"time" toml:"time"`
	Value float64 `yaml:"value" toml:"value"`
}

// Curve is a piecewise-linear function defined by keys sorted by time. Outside
// of the key range the curve holds the value of the nearest key.
type Curve []CurveKey

// ConstantCurve returns a curve that samples to v everywhere.
func ConstantCurve(v float64) Curve {
	return Curve{{Time: 0, Value: v}}
}

func (c Curve) Empty() bool {
	return len(c) == 0
}

// Validate checks the keys are strictly increasing in time.
func (c Curve) Validate() error {
	for i := 1; i < len(c); i++ {
		if c[i].Time <= c[i-1].Time {
			return oerror.New("curve key %d (time %v) is not after key %d (time %v)", i, c[i].Time, i-1, c[i-1].Time)
		}
	}
	return nil
}

// Sample evaluates the curve at t. An empty curve samples to 0.
func (c Curve) Sample(t float64) float64 {
	switch {
	case len(c) == 0:
		return 0
	case t <= c[0].Time:
		return c[0].Value
	case t >= c[len(c)-1].Time:
		return c[len(c)-1].Value
	}
	i, _ := slices.BinarySearchFunc(c, t, func(k CurveKey, t float64) int {
		switch {
		case k.Time < t:
			return -1
		case k.Time > t:
			return 1
		}
		return 0
	})
	if c[i].Time == t {
		return c[i].Value
	}
	lo, hi := c[i-1], c[i]
	alpha := (t - lo.Time) / (hi.Time - lo.Time)
	return lo.Value + (hi.Value-lo.Value)*alpha
}
