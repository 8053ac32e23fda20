package mnt4753

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/go-pairing/pairing/curve"
	"github.com/go-pairing/pairing/pairing"
	"github.com/stretchr/testify/require"
)

func TestGeneratorsFound(t *testing.T) {
	r := require.New(t)
	g1, err := G1Generator()
	r.NoError(err, "G1 generator search")
	r.False(g1.IsInfinity())

	g2, err := G2Generator()
	r.NoError(err, "G2 generator search")
	r.False(g2.IsInfinity())
}

func TestNAFMostSignificantDigitIsPM1(t *testing.T) {
	d := MillerLoopExponent[len(MillerLoopExponent)-1]
	if d != 1 && d != -1 {
		t.Fatalf("most significant NAF digit must be +-1, got %d", d)
	}
}

// TestPairingGeneratorNonDegenerate exercises S1's MNT4-753 analogue:
// e(g1, g2) must not be the identity, and e(g1,g2)^r must equal 1.
func TestPairingGeneratorNonDegenerate(t *testing.T) {
	r := require.New(t)
	g1, err := G1Generator()
	r.NoError(err)
	g2, err := G2Generator()
	r.NoError(err)

	e, err := Pair(g1, g2)
	r.NoError(err)
	one := e.One()
	r.False(e.Equal(one))

	eToR, err := e.Pow(RModulus)
	r.NoError(err)
	r.True(eToR.Equal(one))
}

// TestTwistConsistency exercises S4: miller_loop_on_twisted_curve
// raised to (q^4-1)/r must equal the full pairing.
func TestTwistConsistency(t *testing.T) {
	r := require.New(t)
	g1, err := G1Generator()
	r.NoError(err)
	g2, err := G2Generator()
	r.NoError(err)

	f, err := pairing.MillerLoopOnTwistedCurve(Config, g1, g2)
	r.NoError(err)

	q2 := new(big.Int).Mul(QModulus, QModulus)
	q4 := new(big.Int).Mul(q2, q2)
	exp := new(big.Int).Sub(q4, big.NewInt(1))
	exp.Div(exp, RModulus)

	lhs, err := f.Pow(exp)
	r.NoError(err)

	rhs, err := Pair(g1, g2)
	r.NoError(err)
	r.True(lhs.Equal(rhs))
}

func TestSerializationRoundTripG1(t *testing.T) {
	r := require.New(t)
	g1, err := G1Generator()
	r.NoError(err)
	data, err := SerializeG1(g1)
	r.NoError(err)
	back, err := DeserializeG1(data)
	r.NoError(err)
	r.True(g1.Equal(back))
}

func TestSerializationRoundTripG2(t *testing.T) {
	r := require.New(t)
	g2, err := G2Generator()
	r.NoError(err)
	data, err := SerializeG2(g2)
	r.NoError(err)
	back, err := DeserializeG2(data)
	r.NoError(err)
	r.True(g2.Equal(back))
}

func TestPairingInfinityIsIdentity(t *testing.T) {
	r := require.New(t)
	g1, err := G1Generator()
	r.NoError(err)
	e, err := Pair(g1, curve.Infinity(G2Params))
	r.NoError(err)
	r.True(e.Equal(e.One()))
}

func TestBilinearitySmoke(t *testing.T) {
	r := require.New(t)
	g1, err := G1Generator()
	r.NoError(err)
	g2, err := G2Generator()
	r.NoError(err)

	l, err := rand.Int(rand.Reader, RModulus)
	r.NoError(err)
	if l.Sign() == 0 {
		l = big.NewInt(1)
	}

	lhs, err := Pair(g1.ScalarMult(l), g2)
	r.NoError(err)
	base, err := Pair(g1, g2)
	r.NoError(err)
	mid, err := base.Pow(l)
	r.NoError(err)
	r.True(lhs.Equal(mid))
}
