package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalNumber(t *testing.T) {
	cases := map[string]float64{
		"200":        200,
		" 2.5 ":      2.5,
		"12 * 0.5":   6,
		"3 + 1 / 2":  3.5,
		"(10 - 4)*2": 12,
	}
	for src, want := range cases {
		got, err := EvalNumber(src)
		require.NoError(t, err, src)
		assert.InDelta(t, want, got, 1e-12, src)
	}
}

func TestEvalNumberRejects(t *testing.T) {
	for _, src := range []string{"", "  ", `"abc"`, "None", "1 +", "[1, 2]", "True", "1e400"} {
		_, err := EvalNumber(src)
		assert.Error(t, err, src)
	}
}

func TestHashIsStable(t *testing.T) {
	a := map[string]interface{}{"scale": 40.0, "ids": []string{"a", "b"}}
	b := map[string]interface{}{"ids": []string{"a", "b"}, "scale": 40.0}

	ha, err := Hash(a)
	require.NoError(t, err)
	hb, err := Hash(b)
	require.NoError(t, err)
	hc, err := Hash(map[string]interface{}{"scale": 41.0})
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)
}

func TestHashRejectsNaN(t *testing.T) {
	_, err := Hash(map[string]float64{"width": math.NaN()})
	assert.Error(t, err)
}

func TestEvalNumberStepLimit(t *testing.T) {
	_, err := EvalNumber("len([0 for x in range(1000000000)])")
	assert.Error(t, err)

	got, err := EvalNumber("len([0 for x in range(10)])")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)
}
