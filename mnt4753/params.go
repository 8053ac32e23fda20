// Package mnt4753 instantiates the algebraic stack for the MNT4-753
// curve (embedding degree 4): Fq -> Fq2 -> Fq4, both levels quadratic
// extensions, the second using u (the root adjoined by Fq2) as its
// non-residue.
//
// The numeric parameters below are drawn from public MNT4-753
// literature (the libsnark/libff curve family) to the best of this
// package's ability to recall them outside of the retrieval pack: the
// pack's original_source/ carries no parameters.py for this curve, and
// the component table this library is modeled on treats curve
// parameter tables as an external collaborator's concern in any case.
// Unlike bls12381, this package does not hardcode generator
// coordinates: G1Generator and G2Generator derive them by searching
// small x-coordinates (see generators.go) and return an error instead
// of panicking if the search finds no point.
package mnt4753

import (
	"math/big"

	"github.com/go-pairing/pairing/curve"
	"github.com/go-pairing/pairing/field/ff"
	"github.com/go-pairing/pairing/field/fp2"
	"github.com/go-pairing/pairing/internal/algebra"
)

func decBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("mnt4753: invalid decimal constant: " + s)
	}
	return v
}

var (
	// QModulus is the base field characteristic (753 bits).
	QModulus = decBig("41898490967918953402344214791240637128170709919953949071783502921025352812571106773058893763790338921418070971888253786114353726529584385201591605722013126468931404347949840543007986327743462853720628051692141265303114721689601")
	// RModulus is the order of the prime-order subgroups G1, G2, GT.
	RModulus = decBig("41898490967918953402344214791240637128170709919953949071783502921025352812571106773058893763790338921418070971888458477323173057491593855069696241854796396165721416325350064441470418137846398469611935719059908164220784476160001")
	// H1 is the cofactor of G1 in E(Fq): 1, E(Fq) has prime order r.
	H1 = big.NewInt(1)
	// H2 is the cofactor of G2 in E'(Fq2).
	H2 = decBig("41898490967918953402344214791240637128170709919953949071783502921025352812571106773058893763790338921418070971888049094905534395567574915333486969589229856772141392370549616644545554517640527237829320384324374366385444967219201")
	// NonResidueScalar is the Fq quadratic non-residue used to build Fq2
	// over Fq.
	NonResidueScalar = big.NewInt(13)
	// SeedU is the Miller-loop scalar (the curve's Frobenius trace
	// minus one, in the MNT4 family); negative for MNT4-753.
	SeedU = new(big.Int).Neg(decBig("204691208819330962009469868104636132783269696790011977400223898462431810102935615891307667367766898917669754470400"))
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

// Fq2Config is Fq[u]/(u^2-13).
var Fq2Config = fp2.NewConfig(
	ff.New(FqConfig, NonResidueScalar),
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

func promoteFqToFq2(x ff.Element) fp2.Element {
	return fp2.New(Fq2Config, x, ff.Zero(FqConfig))
}

// fq2NonResidue is NON_RESIDUE_FQ2 = u, the root adjoined by Fq2
// (u^2 = 13), used as the non-residue for Fq4. The scalar 13 itself is
// a square in Fq2 and so cannot serve.
var fq2NonResidue = fp2.U(Fq2Config)

// Fq4Config is Fq2[s]/(s^2-u).
var Fq4Config = fp2.NewConfig(
	fq2NonResidue,
	fp2.Zero(Fq2Config),
	fp2.One(Fq2Config),
	QModulus, 2, Fq2Config.ByteLen(),
	deserializeFq2,
)

func mustParams(a, b algebra.Element) *curve.Params {
	p, err := curve.NewParams(a, b)
	if err != nil {
		panic(err)
	}
	return p
}

// G1 curve coefficients: y^2 = x^3 + a*x + b over Fq.
var (
	g1A = ff.New(FqConfig, big.NewInt(2))
	g1B = ff.New(FqConfig, decBig("28798803903456388891410036793299405764940372360099938340752576406393880372126970068421383312482853541572780087363938442377933706865252053507077543420534380486492786626556269083255657125025963825610840222568694137138741554679540"))
)

// G1Params is the base curve over Fq.
var G1Params = mustParams(g1A, g1B)

// r is the canonical Fq4 element with r^2 = fq2NonResidue, the root
// the Fröhlich quartic twist Phi: (x,y) -> (x*r^2, y*r^3) adjoins.
// Working through Phi's compatibility with the base curve equation
// gives the twisted curve's coefficients directly in Fq2:
// a' = a*fq2NonResidue^-2, b' = b*fq2NonResidue^-3.
var r = fp2.U(Fq4Config)

func g2Params() (*curve.Params, error) {
	betaInv, err := fq2NonResidue.Invert()
	if err != nil {
		return nil, err
	}
	betaInv2, err := betaInv.Mul(betaInv)
	if err != nil {
		return nil, err
	}
	betaInv3, err := betaInv2.Mul(betaInv)
	if err != nil {
		return nil, err
	}
	a2, err := promoteFqToFq2(g1A).Mul(betaInv2)
	if err != nil {
		return nil, err
	}
	b2, err := promoteFqToFq2(g1B).Mul(betaInv3)
	if err != nil {
		return nil, err
	}
	return curve.NewParams(a2, b2)
}

// G2Params is the twisted curve over Fq2.
var G2Params = mustG2Params()

func mustG2Params() *curve.Params {
	p, err := g2Params()
	if err != nil {
		panic(err)
	}
	return p
}
