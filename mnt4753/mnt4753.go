package mnt4753

import (
	"math/big"

	"github.com/go-pairing/pairing/curve"
	"github.com/go-pairing/pairing/field/ff"
	"github.com/go-pairing/pairing/field/fp2"
	"github.com/go-pairing/pairing/groth16"
	"github.com/go-pairing/pairing/internal/algebra"
	"github.com/go-pairing/pairing/pairing"
)

// MillerLoopExponent is the non-adjacent form of the curve's
// Frobenius-trace-derived loop scalar.
var MillerLoopExponent = curve.NAF(SeedU)

// Config is the MNT4-753 pairing configuration. Its quartic twist
// uses "quadratic" denominator elimination.
var Config = &pairing.Config{
	BaseCurveFqk:       BaseCurveFqk,
	EmbedG1:            EmbedG1,
	Twist:              Twist,
	MillerLoopExponent: MillerLoopExponent,
	Denominator:        pairing.DenominatorQuadratic,
	EasyExponentiation: EasyExponentiation,
	HardExponentiation: HardExponentiation,
}

// Pair computes e(p, q) for p in G1, q in G2.
func Pair(p, q curve.AffinePoint) (algebra.Element, error) {
	return pairing.Pairing(Config, p, q)
}

// TriplePair computes e(p0,q0)*e(p1,q1)*e(p2,q2) with a single shared
// final exponentiation.
func TriplePair(ps, qs [3]curve.AffinePoint) (algebra.Element, error) {
	return pairing.TriplePairing(Config, ps, qs)
}

// PromoteG1 scalar-multiplies the G1 generator.
func PromoteG1(scalar *big.Int) (curve.AffinePoint, error) {
	g1, err := G1Generator()
	if err != nil {
		return curve.AffinePoint{}, err
	}
	return g1.ScalarMult(scalar), nil
}

// PromoteG2 scalar-multiplies the G2 generator.
func PromoteG2(scalar *big.Int) (curve.AffinePoint, error) {
	g2, err := G2Generator()
	if err != nil {
		return curve.AffinePoint{}, err
	}
	return g2.ScalarMult(scalar), nil
}

var g1ByteLen = FqConfig.ByteLen()
var g2ByteLen = Fq2Config.ByteLen()

// SerializeG1 encodes a G1 point in arkworks uncompressed form.
func SerializeG1(p curve.AffinePoint) ([]byte, error) {
	return p.Bytes(g1ByteLen, g1ByteLen)
}

// DeserializeG1 decodes a G1 point in arkworks uncompressed form.
func DeserializeG1(data []byte) (curve.AffinePoint, error) {
	return curve.DeserializeAffine(G1Params, func(b []byte) (algebra.Element, error) {
		e, err := ff.Deserialize(FqConfig, b)
		if err != nil {
			return nil, err
		}
		return e, nil
	}, g1ByteLen, g1ByteLen, data)
}

// SerializeG2 encodes a G2 point in arkworks uncompressed form.
func SerializeG2(p curve.AffinePoint) ([]byte, error) {
	return p.Bytes(g2ByteLen, g2ByteLen)
}

// DeserializeG2 decodes a G2 point in arkworks uncompressed form.
func DeserializeG2(data []byte) (curve.AffinePoint, error) {
	return curve.DeserializeAffine(G2Params, func(b []byte) (algebra.Element, error) {
		e, err := fp2.Deserialize(Fq2Config, b)
		if err != nil {
			return nil, err
		}
		return e, nil
	}, g2ByteLen, g2ByteLen, data)
}

// Groth16Config binds the groth16 package's generic VK/proof
// (de)serialization to MNT4-753's point encodings.
var Groth16Config = &groth16.Config{
	SerializeG1:   SerializeG1,
	DeserializeG1: DeserializeG1,
	SerializeG2:   SerializeG2,
	DeserializeG2: DeserializeG2,
	G1ByteLen:     g1ByteLen,
	G2ByteLen:     g2ByteLen,
}
