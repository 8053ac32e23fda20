package fp2

import (
	"math/big"
	"testing"

	"github.com/go-pairing/pairing/field/ff"
	"github.com/go-pairing/pairing/internal/algebra"
)

// testModulus is 103, 3 mod 4, so -1 is a quadratic non-residue and
// u^2 = -1 gives a valid quadratic extension.
var testModulus = big.NewInt(103)

func testConfig() (*ff.Config, *Config) {
	base := ff.NewConfig(testModulus)
	deserializeBase := func(b []byte) (algebra.Element, error) {
		e, err := ff.Deserialize(base, b)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	cfg := NewConfig(ff.FromInt64(base, -1), ff.Zero(base), ff.One(base), testModulus, 1, base.ByteLen(), deserializeBase)
	return base, cfg
}

func TestAddSubRoundTrip(t *testing.T) {
	base, cfg := testConfig()
	a := New(cfg, ff.FromInt64(base, 5), ff.FromInt64(base, 9))
	b := New(cfg, ff.FromInt64(base, 40), ff.FromInt64(base, 61))

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	back, err := sum.(Element).Sub(b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !back.Equal(a) {
		t.Fatalf("(a+b)-b != a")
	}
}

func TestMulDistributes(t *testing.T) {
	base, cfg := testConfig()
	a := New(cfg, ff.FromInt64(base, 3), ff.FromInt64(base, 7))
	b := New(cfg, ff.FromInt64(base, 11), ff.FromInt64(base, 13))
	c := New(cfg, ff.FromInt64(base, 17), ff.FromInt64(base, 19))

	bc, _ := b.Add(c)
	lhs, _ := a.Mul(bc)
	ab, _ := a.Mul(b)
	ac, _ := a.Mul(c)
	rhs, _ := ab.(Element).Add(ac)
	if !lhs.Equal(rhs) {
		t.Fatalf("a*(b+c) != a*b+a*c")
	}
}

func TestInvertRoundTrip(t *testing.T) {
	base, cfg := testConfig()
	a := New(cfg, ff.FromInt64(base, 22), ff.FromInt64(base, 58))
	inv, err := a.Invert()
	if err != nil {
		t.Fatalf("Invert: %v", err)
	}
	prod, _ := a.Mul(inv)
	if !prod.Equal(One(cfg)) {
		t.Fatalf("a * a^-1 != 1")
	}
}

func TestConjugateIsGaloisInvolution(t *testing.T) {
	base, cfg := testConfig()
	a := New(cfg, ff.FromInt64(base, 8), ff.FromInt64(base, 91))
	conj := a.Conjugate()
	back := conj.Conjugate()
	if !back.Equal(a) {
		t.Fatalf("conjugate(conjugate(a)) != a")
	}
	// N(a) = a * conj(a) must land in the base field (c1 == 0).
	norm, err := a.Mul(conj)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if !norm.(Element).c1.IsZero() {
		t.Fatalf("a * conjugate(a) is not purely in the base field")
	}
}

func TestFrobeniusSquaredIsIdentityForQuadraticExtension(t *testing.T) {
	base, cfg := testConfig()
	a := New(cfg, ff.FromInt64(base, 14), ff.FromInt64(base, 77))
	once := a.Frobenius(1)
	twice := once.Frobenius(1)
	if !twice.(Element).Equal(a) {
		t.Fatalf("Frobenius^2 != identity on a quadratic extension")
	}
}

func TestPowExponentProduct(t *testing.T) {
	base, cfg := testConfig()
	a := New(cfg, ff.FromInt64(base, 6), ff.FromInt64(base, 50))
	lhs, _ := a.Pow(big.NewInt(12))
	mid, _ := a.Pow(big.NewInt(3))
	rhs, _ := mid.(algebra.Element).Pow(big.NewInt(4))
	if !lhs.(Element).Equal(rhs) {
		t.Fatalf("(a^3)^4 != a^12")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	base, cfg := testConfig()
	a := New(cfg, ff.FromInt64(base, 99), ff.FromInt64(base, 3))
	data := a.Bytes()
	if len(data) != cfg.ByteLen() {
		t.Fatalf("Bytes length = %d, want %d", len(data), cfg.ByteLen())
	}
	back, err := Deserialize(cfg, data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !back.Equal(a) {
		t.Fatalf("deserialize(bytes(a)) != a")
	}
}

func TestFieldMismatch(t *testing.T) {
	base, cfg1 := testConfig()
	_, cfg2 := testConfig() // distinct *Config, same numeric parameters
	a := New(cfg1, ff.FromInt64(base, 1), ff.FromInt64(base, 1))
	b := New(cfg2, ff.FromInt64(base, 1), ff.FromInt64(base, 1))
	_, err := a.Add(b)
	if err == nil {
		t.Fatalf("expected ErrFieldMismatch across distinct configs")
	}
}
