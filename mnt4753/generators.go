package mnt4753

import (
	"fmt"
	"sync"

	"github.com/go-pairing/pairing/curve"
	"github.com/go-pairing/pairing/field/ff"
	"github.com/go-pairing/pairing/field/fp2"
	"github.com/go-pairing/pairing/internal/algebra"
)

// rhsG1 evaluates x^3 + a*x + b over Fq.
func rhsG1(x ff.Element) (ff.Element, error) {
	x2, err := x.Mul(x)
	if err != nil {
		return ff.Element{}, err
	}
	x3, err := x2.Mul(x)
	if err != nil {
		return ff.Element{}, err
	}
	ax, err := ff.Element(g1A).Mul(x)
	if err != nil {
		return ff.Element{}, err
	}
	sum, err := x3.Add(ax)
	if err != nil {
		return ff.Element{}, err
	}
	out, err := sum.Add(g1B)
	if err != nil {
		return ff.Element{}, err
	}
	return out.(ff.Element), nil
}

// g1Generator searches small x for a point on G1Params; since G1's
// cofactor is 1, any point found generates the whole prime-order
// group. This sidesteps needing a hardcoded (and independently
// unverifiable) generator coordinate pair.
func g1Generator() (curve.AffinePoint, error) {
	for i := int64(1); i < 1<<16; i++ {
		x := ff.FromInt64(FqConfig, i)
		rhs, err := rhsG1(x)
		if err != nil {
			return curve.AffinePoint{}, err
		}
		y, ok := ff.Sqrt(FqConfig, rhs)
		if !ok {
			continue
		}
		return curve.NewAffinePoint(G1Params, x, y)
	}
	return curve.AffinePoint{}, fmt.Errorf("mnt4753: %w: no G1 generator found among small x candidates", algebra.ErrInvalidInput)
}

// fq2Sqrt computes a square root of z = (a,b) in Fq2 = Fq[u]/(u^2-beta)
// via the classical "complex square root" construction: the norm
// a^2-beta*b^2 must be a square in Fq; once its root d is known, one
// of (a+d)/2, (a-d)/2 is itself a square in Fq, giving the real part.
func fq2Sqrt(z fp2.Element) (fp2.Element, bool) {
	a := z.C0().(ff.Element)
	b := z.C1().(ff.Element)
	if b.IsZero() {
		if y, ok := ff.Sqrt(FqConfig, a); ok {
			return fp2.New(Fq2Config, y, ff.Zero(FqConfig)), true
		}
		aOverBeta, _ := algebra.Element(a).Mul(mustInvertFq(ff.New(FqConfig, NonResidueScalar)))
		y, ok := ff.Sqrt(FqConfig, aOverBeta.(ff.Element))
		if !ok {
			return fp2.Element{}, false
		}
		return fp2.New(Fq2Config, ff.Zero(FqConfig), y), true
	}
	beta := ff.New(FqConfig, NonResidueScalar)
	b2, _ := algebra.Element(b).Mul(b)
	betaB2, _ := algebra.Element(beta).Mul(b2)
	a2, _ := algebra.Element(a).Mul(a)
	norm, _ := a2.Sub(betaB2)
	d, ok := ff.Sqrt(FqConfig, norm.(ff.Element))
	if !ok {
		return fp2.Element{}, false
	}
	two := ff.FromInt64(FqConfig, 2)
	twoInv := mustInvertFq(two)
	sum, _ := algebra.Element(a).Add(d)
	alpha1, _ := sum.Mul(twoInv)
	diff, _ := algebra.Element(a).Sub(d)
	alpha2, _ := diff.Mul(twoInv)

	var x0 ff.Element
	found := false
	if y, ok := ff.Sqrt(FqConfig, alpha1.(ff.Element)); ok {
		x0, found = y, true
	} else if y, ok := ff.Sqrt(FqConfig, alpha2.(ff.Element)); ok {
		x0, found = y, true
	}
	if !found {
		return fp2.Element{}, false
	}
	x0Inv := mustInvertFq(x0)
	twoX0Inv, _ := algebra.Element(twoInv).Mul(x0Inv)
	x1, _ := algebra.Element(b).Mul(twoX0Inv)
	return fp2.New(Fq2Config, x0, x1.(ff.Element)), true
}

func mustInvertFq(x ff.Element) ff.Element {
	inv, err := x.Invert()
	if err != nil {
		panic(err)
	}
	return inv.(ff.Element)
}

func rhsG2(x fp2.Element) (fp2.Element, error) {
	a2cfg := G2Params.A
	b2cfg := G2Params.B
	x2, err := algebra.Element(x).Mul(x)
	if err != nil {
		return fp2.Element{}, err
	}
	x3, err := x2.Mul(x)
	if err != nil {
		return fp2.Element{}, err
	}
	ax, err := a2cfg.Mul(x)
	if err != nil {
		return fp2.Element{}, err
	}
	sum, err := x3.Add(ax)
	if err != nil {
		return fp2.Element{}, err
	}
	out, err := sum.Add(b2cfg)
	if err != nil {
		return fp2.Element{}, err
	}
	return out.(fp2.Element), nil
}

// g2Generator searches small (c0, 0) candidates for a point on
// G2Params and multiplies it by the cofactor H2, so the returned point
// lies in the order-r subgroup.
func g2Generator() (curve.AffinePoint, error) {
	for i := int64(1); i < 1<<12; i++ {
		x := fp2.New(Fq2Config, ff.FromInt64(FqConfig, i), ff.Zero(FqConfig))
		rhs, err := rhsG2(x)
		if err != nil {
			return curve.AffinePoint{}, err
		}
		y, ok := fq2Sqrt(rhs)
		if !ok {
			continue
		}
		p, err := curve.NewAffinePoint(G2Params, x, y)
		if err != nil {
			return curve.AffinePoint{}, err
		}
		if g := p.ScalarMult(H2); !g.IsInfinity() {
			return g, nil
		}
	}
	return curve.AffinePoint{}, fmt.Errorf("mnt4753: %w: no G2 generator found among small x candidates", algebra.ErrInvalidInput)
}

var (
	g1Gen    curve.AffinePoint
	g2Gen    curve.AffinePoint
	g1GenErr error
	g2GenErr error
	gensOnce sync.Once
)

func ensureGenerators() {
	gensOnce.Do(func() {
		g1Gen, g1GenErr = g1Generator()
		g2Gen, g2GenErr = g2Generator()
	})
}

// G1Generator returns the chosen G1 generator, or an error if none of
// the small candidate x-coordinates this package tries land on the
// curve (which would indicate a, b were transcribed incorrectly).
func G1Generator() (curve.AffinePoint, error) {
	ensureGenerators()
	return g1Gen, g1GenErr
}

// G2Generator is G1Generator's G2 counterpart.
func G2Generator() (curve.AffinePoint, error) {
	ensureGenerators()
	return g2Gen, g2GenErr
}
