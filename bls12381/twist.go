package bls12381

import (
	"github.com/go-pairing/pairing/curve"
	"github.com/go-pairing/pairing/field/ff"
	"github.com/go-pairing/pairing/field/fp2"
	"github.com/go-pairing/pairing/field/fp3"
	"github.com/go-pairing/pairing/internal/algebra"
)

func promoteFqToFq2(x ff.Element) fp2.Element {
	return fp2.New(Fq2Config, x, ff.Zero(FqConfig))
}

func promoteFq2ToFq6(x fp2.Element) fp3.Element {
	return fp3.New(Fq6Config, x, fp2.Zero(Fq2Config), fp2.Zero(Fq2Config))
}

func promoteFq6ToFq12(x fp3.Element) fp2.Element {
	return fp2.New(Fq12Config, x, fp3.Zero(Fq6Config))
}

func promoteFq2ToFq12(x fp2.Element) fp2.Element {
	return promoteFq6ToFq12(promoteFq2ToFq6(x))
}

func embedFqToFq12(x ff.Element) fp2.Element {
	return promoteFq2ToFq12(promoteFqToFq2(x))
}

// BaseCurveFqk is y^2 = x^3 + 4, with coefficients promoted into Fq12;
// the Miller loop's running point and evaluation point both live here.
var BaseCurveFqk = mustParams(embedFqToFq12(ff.Zero(FqConfig)), embedFqToFq12(ff.FromInt64(FqConfig, 4)))

// w is the canonical Fq12 element with w^2 = v, the non-residue used
// to build Fq12 over Fq6 and the M-twist's untwisting morphism.
var w = fp2.U(Fq12Config)

// EmbedG1 lifts a G1 point (Fq coordinates) into BaseCurveFqk.
func EmbedG1(p curve.AffinePoint) (curve.AffinePoint, error) {
	if p.IsInfinity() {
		return curve.Infinity(BaseCurveFqk), nil
	}
	x := p.X().(ff.Element)
	y := p.Y().(ff.Element)
	return curve.NewAffinePoint(BaseCurveFqk, embedFqToFq12(x), embedFqToFq12(y))
}

// Twist implements the sextic M-twist's untwisting morphism: (x,y) in
// E'(Fq2) maps to (x*w^-2, y*w^-3) in E(Fq12).
func Twist(q curve.AffinePoint) (curve.AffinePoint, error) {
	if q.IsInfinity() {
		return curve.Infinity(BaseCurveFqk), nil
	}
	x := q.X().(fp2.Element)
	y := q.Y().(fp2.Element)

	w2, err := algebra.Element(w).Mul(w)
	if err != nil {
		return curve.AffinePoint{}, err
	}
	w3, err := w2.Mul(w)
	if err != nil {
		return curve.AffinePoint{}, err
	}
	w2Inv, err := w2.Invert()
	if err != nil {
		return curve.AffinePoint{}, err
	}
	w3Inv, err := w3.Invert()
	if err != nil {
		return curve.AffinePoint{}, err
	}

	xe := promoteFq2ToFq12(x)
	xw2, err := algebra.Element(xe).Mul(w2Inv)
	if err != nil {
		return curve.AffinePoint{}, err
	}
	ye := promoteFq2ToFq12(y)
	yw3, err := algebra.Element(ye).Mul(w3Inv)
	if err != nil {
		return curve.AffinePoint{}, err
	}
	return curve.NewAffinePoint(BaseCurveFqk, xw2, yw3)
}
