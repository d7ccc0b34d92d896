package neat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivationCurves(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"sigmoid", 0, 0.5},
		{"sigmoid", 100, 1},
		{"tanh", 0, 0},
		{"tanh", 0.4, math.Tanh(1)},
		{"gauss", 0, 1},
		{"relu", -2, 0},
		{"identity", 3.5, 3.5},
		{"clamped", 5, 1},
		{"clamped", -5, -1},
		{"inv", 0, 0},
		{"inv", 4, 0.25},
		{"abs", -2, 2},
		{"hat", 0.25, 0.75},
		{"square", -3, 9},
		{"cube", -2, -8},
	}
	for _, tc := range cases {
		fn, err := GetActivation(tc.name)
		require.NoError(t, err, tc.name)
		assert.InDelta(t, tc.want, fn(tc.in), 1e-9, "%s(%g)", tc.name, tc.in)
	}
}

func TestAggregations(t *testing.T) {
	in := []float64{1, -4, 3}
	cases := map[string]float64{
		"sum":     0,
		"product": -12,
		"min":     -4,
		"max":     3,
		"maxabs":  -4,
		"mean":    0,
		"median":  1,
	}
	for name, want := range cases {
		fn, err := GetAggregation(name)
		require.NoError(t, err, name)
		assert.InDelta(t, want, fn(in), 1e-12, name)
	}

	assert.Equal(t, 1.0, AggregateProduct(nil))
	assert.Equal(t, 0.0, AggregateMax(nil))
	assert.Equal(t, 0.0, AggregateMedian(nil))
}

func TestUnknownFunction(t *testing.T) {
	_, err := GetActivation("nope")
	assert.ErrorIs(t, err, ErrUnknownFunction)
	_, err = GetAggregation("nope")
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

func TestConfigFunctionTables(t *testing.T) {
	config := NewConfig(1, 1)
	gc := &config.Genome

	gc.ActivationDefs["double"] = func(x float64, _ ...float64) float64 { return 2 * x }
	fn, err := gc.ActivationFunction("double")
	require.NoError(t, err)
	assert.Equal(t, 3.0, fn(1.5))
	// Custom entries stay local to the config.
	_, err = GetActivation("double")
	assert.ErrorIs(t, err, ErrUnknownFunction)

	delete(gc.AggregationDefs, "sum")
	_, err = gc.AggregationFunction("sum")
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

func TestPlasticityDelta(t *testing.T) {
	p := PlasticityParams{Eta: 0.5, A: 1, B: 2, C: 3, D: 4}
	// a*x*y + b*x + c*y + d = 6 + 4 + 9 + 4
	assert.InDelta(t, 23.0, p.Term(2, 3), 1e-12)
	assert.InDelta(t, 11.5, p.Delta(2, 3), 1e-12)
	assert.Equal(t, map[string]float64{"eta": 0.5, "a": 1, "b": 2, "c": 3, "d": 4, "m_d": 0}, p.AsMap())
}
