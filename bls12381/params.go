// Package bls12381 instantiates the algebraic stack in field/ff,
// field/fp2, field/fp3, curve and pairing for the BLS12-381 curve
// (embedding degree 12): Fq -> Fq2 -> Fq6 (cubic) -> Fq12 (quadratic
// over Fq6, with non-residue v, the adjoined root of Fq6 itself).
//
// The numeric parameters below (moduli, non-residues, generators, the
// curve seed) are standard, publicly documented BLS12-381 constants;
// per the component table this library is modeled on, curve parameter
// tables are an external collaborator's concern, not part of the
// algebraic core, so they are supplied here as plain data rather than
// derived.
package bls12381

import (
	"math/big"

	"github.com/go-pairing/pairing/curve"
	"github.com/go-pairing/pairing/field/ff"
	"github.com/go-pairing/pairing/field/fp2"
	"github.com/go-pairing/pairing/field/fp3"
	"github.com/go-pairing/pairing/internal/algebra"
)

func hexBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("bls12381: invalid hex constant: " + s)
	}
	return v
}

var (
	// QModulus is the base field characteristic.
	QModulus = hexBig("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab")
	// RModulus is the order of the prime-order subgroups G1, G2, GT.
	RModulus = hexBig("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001")
	// H1 is the cofactor of G1 in E(Fq).
	H1 = hexBig("396c8c005555e1568c00aaab0000aaab")
	// H2 is the cofactor of G2 in E'(Fq2).
	H2 = hexBig("5d543a95414e7f1091d50792876a202cd91de4547085abaa68a205b2e5a7ddfa628f1cb4d9e82ef21537e293a6691ae1616ec6e786f0c70cf1c38e31c7238e5")
	// SeedU is the curve seed; negative for BLS12-381.
	SeedU = new(big.Int).Neg(hexBig("d201000000010000"))
)

// FqConfig is the base prime field's configuration.
var FqConfig = ff.NewConfig(QModulus)

func deserializeFq(b []byte) (algebra.Element, error) {
	e, err := ff.Deserialize(FqConfig, b)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Fq2Config is Fq[u]/(u^2+1): the non-residue is -1.
var Fq2Config = fp2.NewConfig(
	ff.FromInt64(FqConfig, -1),
	ff.Zero(FqConfig),
	ff.One(FqConfig),
	QModulus, 1, FqConfig.ByteLen(),
	deserializeFq,
)

func deserializeFq2(b []byte) (algebra.Element, error) {
	e, err := fp2.Deserialize(Fq2Config, b)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// fq2NonResidue is u+1, the non-residue used to build Fq6 as a cubic
// extension of Fq2.
var fq2NonResidue = fp2.New(Fq2Config, ff.One(FqConfig), ff.One(FqConfig))

// Fq6Config is Fq2[v]/(v^3-(u+1)).
var Fq6Config = fp3.NewConfig(
	fq2NonResidue,
	fp2.Zero(Fq2Config),
	fp2.One(Fq2Config),
	QModulus, 2, Fq2Config.ByteLen(),
	deserializeFq2,
)

func deserializeFq6(b []byte) (algebra.Element, error) {
	e, err := fp3.Deserialize(Fq6Config, b)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// fq6NonResidue is v, the cubic root adjoined by Fq6 itself, used as
// the quadratic non-residue for Fq12: Fq12 = Fq6[w]/(w^2-v).
var fq6NonResidue = fp3.V(Fq6Config)

// Fq12Config is Fq6[w]/(w^2-v).
var Fq12Config = fp2.NewConfig(
	fq6NonResidue,
	fp3.Zero(Fq6Config),
	fp3.One(Fq6Config),
	QModulus, 6, Fq6Config.ByteLen(),
	deserializeFq6,
)

// G1Params is y^2 = x^3 + 4 over Fq.
var G1Params = mustParams(ff.Zero(FqConfig), ff.FromInt64(FqConfig, 4))

// g2B is the Fq2 twist coefficient 4(1+u); G2's curve is the sextic
// M-twist y^2 = x^3 + 4(1+u) over Fq2.
var g2B = fp2.New(Fq2Config, ff.FromInt64(FqConfig, 4), ff.FromInt64(FqConfig, 4))

// G2Params is the twisted curve over Fq2.
var G2Params = mustParams(fp2.Zero(Fq2Config), g2B)

func mustParams(a, b algebra.Element) *curve.Params {
	p, err := curve.NewParams(a, b)
	if err != nil {
		panic(err)
	}
	return p
}

// G1 generator, in affine coordinates.
var g1X = hexBig("17f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb")
var g1Y = hexBig("08b3f481e3aaa0f1a09e30ed741d8ae4fcf5e095d5d00af600db18cb2c04b3edd03cc744a2888ae40caa232946c5e7e1")

// G2 generator coordinates, each an Fq2 element (c0, c1).
var g2X0 = hexBig("024aa2b2f08f0a91260805272dc51051c6e47ad4fa403b02b4510b647ae3d1770bac0326a805bbefd48056c8c121bdb8")
var g2X1 = hexBig("13e02b6052719f607dacd3a088274f65596bd0d09920b61ab5da61bbdc7f5049334cf11213945d57e5ac7d055d042b7e")
var g2Y0 = hexBig("0ce5d527727d6e118cc9cdc6da2e351aadfd9baa8cbdd3a76d429a695160d12c923ac9cc3baca289e193548608b82801")
var g2Y1 = hexBig("0606c4a02ea734cc32acd2b02bc28b99cb3e287e85a763af267492ab572e99ab3f370d275cec1da1aaa9075ff05f79be")

// G1 is the standard BLS12-381 G1 generator.
var G1 = mustAffine(curve.NewAffinePoint(G1Params, ff.New(FqConfig, g1X), ff.New(FqConfig, g1Y)))

// G2 is the standard BLS12-381 G2 generator, on the twisted curve
// over Fq2.
var G2 = mustAffine(curve.NewAffinePoint(
	G2Params,
	fp2.New(Fq2Config, ff.New(FqConfig, g2X0), ff.New(FqConfig, g2X1)),
	fp2.New(Fq2Config, ff.New(FqConfig, g2Y0), ff.New(FqConfig, g2Y1)),
))

func mustAffine(p curve.AffinePoint, err error) curve.AffinePoint {
	if err != nil {
		panic(err)
	}
	return p
}

// MillerLoopExponent is the non-adjacent form of the curve seed u,
// the optimal-ate Miller loop scalar for BLS12 curves.
var MillerLoopExponent = curve.NAF(SeedU)
