// Package pairing implements the Miller loop and final exponentiation
// generically over any field tower satisfying algebra.Element, driven
// by a Config supplied by a concrete curve instantiation (bls12381,
// mnt4753). It does not hardcode an embedding degree or twist type;
// those are expressed as closures on Config so the same loop serves a
// sextic M-twist and a quartic Frobenius twist alike.
package pairing

import (
	"fmt"

	"github.com/go-pairing/pairing/curve"
	"github.com/go-pairing/pairing/internal/algebra"
)

// DenominatorElimination selects how the Miller loop handles the
// vertical-line denominator introduced at every doubling/addition
// step. For curves whose twist degree divides the embedding degree
// evenly enough, that denominator is known to land in a proper
// subfield that the final exponentiation's easy part collapses to 1,
// so it can be dropped instead of computed and inverted.
type DenominatorElimination int

const (
	// DenominatorNone divides out the vertical line explicitly at every
	// step. Always correct, never the fast path.
	DenominatorNone DenominatorElimination = iota
	// DenominatorQuadratic skips the division, valid for quadratic
	// twists (MNT4-753's G2 over Fq2; bls12381 uses DenominatorNone).
	DenominatorQuadratic
	// DenominatorCubic is not implemented: no curve in scope here uses
	// a cubic twist.
	DenominatorCubic
)

// Config bundles everything a concrete curve instantiation must supply
// to drive a generic Miller loop and final exponentiation.
type Config struct {
	// BaseCurveFqk is the original short-Weierstrass curve with its
	// coefficients promoted into Fqk, the field the Miller loop
	// accumulates its running value and its running curve point in.
	BaseCurveFqk *curve.Params

	// EmbedG1 lifts a G1 point (coordinates in Fq) into BaseCurveFqk
	// coordinates.
	EmbedG1 func(curve.AffinePoint) (curve.AffinePoint, error)

	// Twist maps a point on the twisted curve (G2, coordinates in the
	// twist field) to the corresponding point on BaseCurveFqk.
	Twist func(curve.AffinePoint) (curve.AffinePoint, error)

	// MillerLoopExponent is the signed-binary digit sequence driving
	// the double-and-add schedule (index 0 is the least significant
	// digit, matching curve.AffinePoint.Lambdas).
	MillerLoopExponent []int

	Denominator DenominatorElimination

	// EasyExponentiation and HardExponentiation together implement
	// f^((q^k-1)/r): the easy part uses Frobenius and one inversion,
	// the hard part is curve-specific (bls12381 computes it as a single
	// Pow by the hard exponent, not an addition chain).
	EasyExponentiation func(algebra.Element) (algebra.Element, error)
	HardExponentiation func(algebra.Element) (algebra.Element, error)
}

// millerStep multiplies f by line(r, other, p), optionally dividing out
// the vertical-line denominator at the resulting point newR.
func millerStep(cfg *Config, f algebra.Element, r, other, newR, p curve.AffinePoint, lambda algebra.Element) (algebra.Element, error) {
	num, err := curve.LineEvaluation(r, other, lambda, p.X(), p.Y())
	if err != nil {
		return nil, err
	}
	f, err = f.Mul(num)
	if err != nil {
		return nil, err
	}
	if cfg.Denominator == DenominatorNone {
		den, err := curve.VerticalLineEvaluation(newR, p.X())
		if err != nil {
			return nil, err
		}
		denInv, err := den.Invert()
		if err != nil {
			return nil, err
		}
		f, err = f.Mul(denInv)
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// millerLoopCore runs the signed-binary double-and-add Miller loop:
// exp holds the signed-binary digits of the
// loop scalar with exp[len(exp)-1] (the most significant digit) fixed
// in {-1, 1}; the running point q stays on BaseCurveFqk and every line
// is evaluated at p (also on BaseCurveFqk).
func millerLoopCore(cfg *Config, q, p curve.AffinePoint) (algebra.Element, error) {
	if cfg.Denominator == DenominatorCubic {
		return nil, fmt.Errorf("pairing: %w: cubic denominator elimination", algebra.ErrNotImplemented)
	}
	exp := cfg.MillerLoopExponent
	m := len(exp)
	if m == 0 || (exp[m-1] != 1 && exp[m-1] != -1) {
		return nil, fmt.Errorf("pairing: %w: most significant Miller-loop digit must be +-1", algebra.ErrInvalidInput)
	}

	t := q
	if exp[m-1] == -1 {
		t = q.Neg()
	}
	f := cfg.BaseCurveFqk.A.One()

	for i := m - 2; i >= 0; i-- {
		var err error
		f, err = f.Mul(f)
		if err != nil {
			return nil, err
		}
		lambda, ok, err := t.Lambda(t)
		if err != nil {
			return nil, err
		}
		newT := t.Double()
		if ok {
			f, err = millerStep(cfg, f, t, t, newT, p, lambda)
			if err != nil {
				return nil, err
			}
		} else {
			vert, err := curve.VerticalLineEvaluation(t, p.X())
			if err != nil {
				return nil, err
			}
			f, err = f.Mul(vert)
			if err != nil {
				return nil, err
			}
		}
		t = newT

		switch exp[i] {
		case 1:
			lambda, ok, err := t.Lambda(q)
			if err != nil {
				return nil, err
			}
			newT := t.Add(q)
			if ok {
				f, err = millerStep(cfg, f, t, q, newT, p, lambda)
				if err != nil {
					return nil, err
				}
			} else {
				vert, err := curve.VerticalLineEvaluation(t, p.X())
				if err != nil {
					return nil, err
				}
				f, err = f.Mul(vert)
				if err != nil {
					return nil, err
				}
			}
			t = newT
		case -1:
			nq := q.Neg()
			lambda, ok, err := t.Lambda(nq)
			if err != nil {
				return nil, err
			}
			newT := t.Add(nq)
			if ok {
				f, err = millerStep(cfg, f, t, nq, newT, p, lambda)
				if err != nil {
					return nil, err
				}
			} else {
				vert, err := curve.VerticalLineEvaluation(t, p.X())
				if err != nil {
					return nil, err
				}
				f, err = f.Mul(vert)
				if err != nil {
					return nil, err
				}
			}
			t = newT
		}
	}
	return f, nil
}

// MillerLoopOnBaseCurve runs the Miller loop with both points already
// expressed as BaseCurveFqk coordinates. This is the reference path:
// correct for any embedding but pays the cost of doing every curve
// operation in the full extension field.
func MillerLoopOnBaseCurve(cfg *Config, q, p curve.AffinePoint) (algebra.Element, error) {
	return millerLoopCore(cfg, q, p)
}

// MillerLoopOnTwistedCurve takes qTwisted on the twisted curve, maps it
// once into BaseCurveFqk with cfg.Twist, embeds p with cfg.EmbedG1, and
// runs the whole loop in Fqk; the running point does not stay on the
// twisted curve.
func MillerLoopOnTwistedCurve(cfg *Config, p curve.AffinePoint, qTwisted curve.AffinePoint) (algebra.Element, error) {
	qe, err := cfg.Twist(qTwisted)
	if err != nil {
		return nil, err
	}
	pe, err := cfg.EmbedG1(p)
	if err != nil {
		return nil, err
	}
	return millerLoopCore(cfg, qe, pe)
}

// TripleMillerLoopOnBaseCurve computes the product of three Miller
// loops, the building block for a batched pairing-product check.
func TripleMillerLoopOnBaseCurve(cfg *Config, qs, ps [3]curve.AffinePoint) (algebra.Element, error) {
	result := cfg.BaseCurveFqk.A.One()
	for i := 0; i < 3; i++ {
		f, err := MillerLoopOnBaseCurve(cfg, qs[i], ps[i])
		if err != nil {
			return nil, err
		}
		result, err = result.Mul(f)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// TripleMillerLoopOnTwistedCurve is TripleMillerLoopOnBaseCurve with
// each qs[i] given as a twisted-curve point.
func TripleMillerLoopOnTwistedCurve(cfg *Config, ps, qsTwisted [3]curve.AffinePoint) (algebra.Element, error) {
	result := cfg.BaseCurveFqk.A.One()
	for i := 0; i < 3; i++ {
		f, err := MillerLoopOnTwistedCurve(cfg, ps[i], qsTwisted[i])
		if err != nil {
			return nil, err
		}
		result, err = result.Mul(f)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// FinalExponentiation raises f to the power (q^k-1)/r via the easy
// and hard parts supplied by the curve instantiation.
func FinalExponentiation(cfg *Config, f algebra.Element) (algebra.Element, error) {
	easy, err := cfg.EasyExponentiation(f)
	if err != nil {
		return nil, err
	}
	return cfg.HardExponentiation(easy)
}

// Pairing computes e(p, qTwisted), the identity element of Fqk when
// either input is the point at infinity.
func Pairing(cfg *Config, p curve.AffinePoint, qTwisted curve.AffinePoint) (algebra.Element, error) {
	if p.IsInfinity() || qTwisted.IsInfinity() {
		return cfg.BaseCurveFqk.A.One(), nil
	}
	f, err := MillerLoopOnTwistedCurve(cfg, p, qTwisted)
	if err != nil {
		return nil, err
	}
	return FinalExponentiation(cfg, f)
}

// TriplePairing computes e(p0,q0)*e(p1,q1)*e(p2,q2) with a single
// shared final exponentiation. Unlike Pairing, it rejects any
// infinity input: a pairing-product check over an unknown generator
// system should never silently drop a term to the identity.
func TriplePairing(cfg *Config, ps, qsTwisted [3]curve.AffinePoint) (algebra.Element, error) {
	for i := 0; i < 3; i++ {
		if ps[i].IsInfinity() || qsTwisted[i].IsInfinity() {
			return nil, fmt.Errorf("pairing: %w: triple pairing inputs must not be the point at infinity", algebra.ErrInvalidInput)
		}
	}
	f, err := TripleMillerLoopOnTwistedCurve(cfg, ps, qsTwisted)
	if err != nil {
		return nil, err
	}
	return FinalExponentiation(cfg, f)
}
