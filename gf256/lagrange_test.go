package gf256

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateAtReturnsKnownPoint(t *testing.T) {
	points := []Point{{X: 1, Y: 10}, {X: 2, Y: 20}, {X: 3, Y: 30}}
	require.Equal(t, byte(20), EvaluateAt(points, 2))
}

func TestEvaluateAtRecoversConstantPolynomial(t *testing.T) {
	// A degree-0 polynomial (constant secret) interpolated from any two
	// samples of itself must return that constant everywhere, including x=0.
	secret := byte(42)
	points := []Point{{X: 1, Y: secret}, {X: 2, Y: secret}, {X: 3, Y: secret}}
	require.Equal(t, secret, EvaluateAt(points, 0))
	require.Equal(t, secret, EvaluateAt(points, 255))
}

func TestEvaluateAtRoundTripsThroughRandomPolynomial(t *testing.T) {
	// Build a degree-2 polynomial f(x) = c0 + c1*x + c2*x^2 by evaluating
	// it directly, then confirm interpolation from 3 samples recovers it
	// at a 4th, unseen point.
	c0, c1, c2 := byte(17), byte(200), byte(5)
	eval := func(x byte) byte {
		return Add(Add(c0, Mul(c1, x)), Mul(c2, Mul(x, x)))
	}
	points := []Point{{X: 1, Y: eval(1)}, {X: 2, Y: eval(2)}, {X: 3, Y: eval(3)}}
	require.Equal(t, eval(0), EvaluateAt(points, 0))
	require.Equal(t, eval(99), EvaluateAt(points, 99))
}

func TestEvaluateVectorAt(t *testing.T) {
	xs := []byte{1, 2, 3}
	ys := [][]byte{
		{10, 20},
		{20, 40},
		{30, 60},
	}
	got := EvaluateVectorAt(xs, ys, 2)
	require.Equal(t, []byte{20, 40}, got)
}

func TestEvaluateVectorAtEmpty(t *testing.T) {
	require.Nil(t, EvaluateVectorAt(nil, nil, 0))
}
