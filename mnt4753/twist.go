package mnt4753

import (
	"github.com/go-pairing/pairing/curve"
	"github.com/go-pairing/pairing/field/ff"
	"github.com/go-pairing/pairing/field/fp2"
	"github.com/go-pairing/pairing/internal/algebra"
)

func embedFqToFq4(x ff.Element) fp2.Element {
	fq2x := promoteFqToFq2(x)
	return fp2.New(Fq4Config, fq2x, fp2.Zero(Fq2Config))
}

// BaseCurveFqk is y^2 = x^3 + a*x + b with a, b promoted into Fq4; the
// Miller loop's running point and evaluation point both live here.
var BaseCurveFqk = mustParams(embedFqToFq4(g1A), embedFqToFq4(g1B))

// EmbedG1 lifts a G1 point (Fq coordinates) into BaseCurveFqk.
func EmbedG1(p curve.AffinePoint) (curve.AffinePoint, error) {
	if p.IsInfinity() {
		return curve.Infinity(BaseCurveFqk), nil
	}
	x := p.X().(ff.Element)
	y := p.Y().(ff.Element)
	return curve.NewAffinePoint(BaseCurveFqk, embedFqToFq4(x), embedFqToFq4(y))
}

func promoteFq2ToFq4(x fp2.Element) fp2.Element {
	return fp2.New(Fq4Config, x, fp2.Zero(Fq2Config))
}

// Twist implements the Fröhlich quartic twist Phi: (x,y) in E'(Fq2)
// maps to (x*r^2, y*r^3) in E(Fq4).
func Twist(q curve.AffinePoint) (curve.AffinePoint, error) {
	if q.IsInfinity() {
		return curve.Infinity(BaseCurveFqk), nil
	}
	x := q.X().(fp2.Element)
	y := q.Y().(fp2.Element)

	r2, err := algebra.Element(r).Mul(r)
	if err != nil {
		return curve.AffinePoint{}, err
	}
	r3, err := r2.Mul(r)
	if err != nil {
		return curve.AffinePoint{}, err
	}

	xe := promoteFq2ToFq4(x)
	xr2, err := algebra.Element(xe).Mul(r2)
	if err != nil {
		return curve.AffinePoint{}, err
	}
	ye := promoteFq2ToFq4(y)
	yr3, err := algebra.Element(ye).Mul(r3)
	if err != nil {
		return curve.AffinePoint{}, err
	}
	return curve.NewAffinePoint(BaseCurveFqk, xr2, yr3)
}
