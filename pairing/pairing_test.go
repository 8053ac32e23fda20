package pairing

import (
	"math/big"
	"testing"

	"github.com/go-pairing/pairing/curve"
	"github.com/go-pairing/pairing/field/ff"
	"github.com/go-pairing/pairing/internal/algebra"
)

// Degenerate single-field test rig: G1, G2 and BaseCurveFqk all sit on
// the same toy curve over Fq (embedding degree 1), with EmbedG1/Twist
// as identity. Not a real pairing-friendly curve, but enough to drive
// millerLoopCore's control flow, denominator-elimination modes, and
// the Pairing/TriplePairing infinity/error paths.
var testModulus = big.NewInt(103)
var fqCfg = ff.NewConfig(testModulus)

func toyCfg(t *testing.T, denom DenominatorElimination, exp []int) (*Config, curve.AffinePoint) {
	t.Helper()
	params, err := curve.NewParams(ff.FromInt64(fqCfg, 2), ff.FromInt64(fqCfg, 3))
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	var gen curve.AffinePoint
	found := false
	for x := int64(0); x < 103; x++ {
		xe := ff.FromInt64(fqCfg, x)
		rhs, _ := xe.Mul(xe)
		rhs, _ = rhs.(ff.Element).Mul(xe)
		ax, _ := ff.FromInt64(fqCfg, 2).Mul(xe)
		rhs, _ = rhs.(ff.Element).Add(ax)
		rhs, _ = rhs.(ff.Element).Add(ff.FromInt64(fqCfg, 3))
		y, ok := ff.Sqrt(fqCfg, rhs.(ff.Element))
		if ok && !y.IsZero() {
			p, err := curve.NewAffinePoint(params, xe, y)
			if err != nil {
				t.Fatalf("NewAffinePoint: %v", err)
			}
			gen = p
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no usable generator found on toy curve")
	}
	identity := func(p curve.AffinePoint) (curve.AffinePoint, error) { return p, nil }
	cfg := &Config{
		BaseCurveFqk:       params,
		EmbedG1:            identity,
		Twist:              identity,
		MillerLoopExponent: exp,
		Denominator:        denom,
		EasyExponentiation: func(f algebra.Element) (algebra.Element, error) { return f, nil },
		HardExponentiation: func(f algebra.Element) (algebra.Element, error) { return f, nil },
	}
	return cfg, gen
}

func TestMillerLoopRejectsEmptyExponent(t *testing.T) {
	cfg, gen := toyCfg(t, DenominatorNone, nil)
	_, err := MillerLoopOnBaseCurve(cfg, gen, gen)
	if err == nil {
		t.Fatalf("expected error for empty Miller-loop exponent")
	}
}

func TestMillerLoopRejectsNonPMOneMSD(t *testing.T) {
	cfg, gen := toyCfg(t, DenominatorNone, []int{1, 0, 2})
	_, err := MillerLoopOnBaseCurve(cfg, gen, gen)
	if err == nil {
		t.Fatalf("expected error when the most significant digit is not +-1")
	}
}

func TestMillerLoopCubicDenominatorNotImplemented(t *testing.T) {
	cfg, gen := toyCfg(t, DenominatorCubic, curve.NAF(big.NewInt(5)))
	_, err := MillerLoopOnBaseCurve(cfg, gen, gen)
	if err == nil {
		t.Fatalf("expected ErrNotImplemented for cubic denominator elimination")
	}
}

func TestMillerLoopRunsUnderBothEliminationModes(t *testing.T) {
	exp := curve.NAF(big.NewInt(9))
	for _, denom := range []DenominatorElimination{DenominatorNone, DenominatorQuadratic} {
		cfg, gen := toyCfg(t, denom, exp)
		_, err := MillerLoopOnBaseCurve(cfg, gen, gen)
		if err != nil {
			t.Fatalf("MillerLoopOnBaseCurve under denom=%v: %v", denom, err)
		}
	}
}

func TestMillerLoopOnTwistedCurveMatchesBaseWithIdentityTwist(t *testing.T) {
	exp := curve.NAF(big.NewInt(11))
	cfg, gen := toyCfg(t, DenominatorNone, exp)
	base, err := MillerLoopOnBaseCurve(cfg, gen, gen)
	if err != nil {
		t.Fatalf("MillerLoopOnBaseCurve: %v", err)
	}
	twisted, err := MillerLoopOnTwistedCurve(cfg, gen, gen)
	if err != nil {
		t.Fatalf("MillerLoopOnTwistedCurve: %v", err)
	}
	if !base.Equal(twisted) {
		t.Fatalf("identity-twist Miller loop diverges from base-curve Miller loop")
	}
}

func TestPairingIdentityOnInfinity(t *testing.T) {
	exp := curve.NAF(big.NewInt(7))
	cfg, gen := toyCfg(t, DenominatorNone, exp)
	inf := curve.Infinity(cfg.BaseCurveFqk)
	e, err := Pairing(cfg, inf, gen)
	if err != nil {
		t.Fatalf("Pairing: %v", err)
	}
	if !e.Equal(cfg.BaseCurveFqk.A.One()) {
		t.Fatalf("Pairing with an infinity input must be the identity")
	}
}

func TestTriplePairingRejectsInfinity(t *testing.T) {
	exp := curve.NAF(big.NewInt(7))
	cfg, gen := toyCfg(t, DenominatorNone, exp)
	inf := curve.Infinity(cfg.BaseCurveFqk)
	_, err := TriplePairing(cfg, [3]curve.AffinePoint{gen, gen, gen}, [3]curve.AffinePoint{gen, gen, inf})
	if err == nil {
		t.Fatalf("expected ErrInvalidInput when a TriplePairing input is infinity")
	}
}

func TestTripleMillerLoopIsProductOfThree(t *testing.T) {
	exp := curve.NAF(big.NewInt(5))
	cfg, gen := toyCfg(t, DenominatorNone, exp)
	single, err := MillerLoopOnBaseCurve(cfg, gen, gen)
	if err != nil {
		t.Fatalf("MillerLoopOnBaseCurve: %v", err)
	}
	squared, err := single.Mul(single)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	want, err := squared.Mul(single)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	got, err := TripleMillerLoopOnBaseCurve(cfg, [3]curve.AffinePoint{gen, gen, gen}, [3]curve.AffinePoint{gen, gen, gen})
	if err != nil {
		t.Fatalf("TripleMillerLoopOnBaseCurve: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("TripleMillerLoopOnBaseCurve != single^3")
	}
}
