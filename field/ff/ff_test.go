package ff

import (
	"math/big"
	"testing"

	"github.com/go-pairing/pairing/internal/algebra"
)

var testModulus = big.NewInt(101) // small prime

func TestAddSubInverse(t *testing.T) {
	cfg := NewConfig(testModulus)
	a := FromInt64(cfg, 37)
	b := FromInt64(cfg, 90)

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

func TestMulCommutesAndDistributes(t *testing.T) {
	cfg := NewConfig(testModulus)
	a := FromInt64(cfg, 11)
	b := FromInt64(cfg, 59)
	c := FromInt64(cfg, 17)

	ab, _ := a.Mul(b)
	ba, _ := b.Mul(a)
	if !ab.Equal(ba) {
		t.Fatalf("multiplication not commutative")
	}

	bc, _ := b.Add(c)
	lhs, _ := a.Mul(bc)
	abProd, _ := a.Mul(b)
	acProd, _ := a.Mul(c)
	rhs, _ := abProd.(Element).Add(acProd)
	if !lhs.Equal(rhs) {
		t.Fatalf("a*(b+c) != a*b+a*c")
	}
}

func TestInvertRoundTrip(t *testing.T) {
	cfg := NewConfig(testModulus)
	a := FromInt64(cfg, 42)
	inv, err := a.Invert()
	if err != nil {
		t.Fatalf("Invert: %v", err)
	}
	prod, _ := a.Mul(inv)
	if !prod.Equal(One(cfg)) {
		t.Fatalf("a * a^-1 != 1")
	}
}

func TestInvertZeroFails(t *testing.T) {
	cfg := NewConfig(testModulus)
	_, err := Zero(cfg).Invert()
	if err == nil {
		t.Fatalf("expected ErrNotInvertible for 0^-1")
	}
}

func TestPowMatchesRepeatedMul(t *testing.T) {
	cfg := NewConfig(testModulus)
	a := FromInt64(cfg, 23)
	p, err := a.Pow(big.NewInt(5))
	if err != nil {
		t.Fatalf("Pow: %v", err)
	}
	var acc algebra.Element = One(cfg)
	for i := 0; i < 5; i++ {
		var err error
		acc, err = acc.Mul(a)
		if err != nil {
			t.Fatalf("Mul: %v", err)
		}
	}
	if !p.Equal(acc) {
		t.Fatalf("a^5 != a*a*a*a*a")
	}
}

func TestPowExponentProduct(t *testing.T) {
	cfg := NewConfig(testModulus)
	a := FromInt64(cfg, 23)
	lhs, _ := a.Pow(big.NewInt(15))
	mid, _ := a.Pow(big.NewInt(3))
	rhs, _ := mid.(Element).Pow(big.NewInt(5))
	if !lhs.Equal(rhs) {
		t.Fatalf("(a^3)^5 != a^15")
	}
}

func TestZeroToZeroErrors(t *testing.T) {
	cfg := NewConfig(testModulus)
	_, err := Zero(cfg).Pow(big.NewInt(0))
	if err == nil {
		t.Fatalf("expected ErrZeroToZero for 0^0")
	}
}

func TestFrobeniusIsIdentity(t *testing.T) {
	cfg := NewConfig(testModulus)
	a := FromInt64(cfg, 64)
	if !a.Frobenius(1).Equal(a) {
		t.Fatalf("Frobenius on Fq must be identity")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	cfg := NewConfig(testModulus)
	a := FromInt64(cfg, 88)
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
	cfg1 := NewConfig(testModulus)
	cfg2 := NewConfig(big.NewInt(103))
	a := FromInt64(cfg1, 5)
	b := FromInt64(cfg2, 5)
	_, err := a.Add(b)
	if err == nil {
		t.Fatalf("expected ErrFieldMismatch when adding across configs")
	}
}

func TestIsSquareAndSqrt(t *testing.T) {
	cfg := NewConfig(testModulus)
	for i := int64(1); i < 101; i++ {
		x := FromInt64(cfg, i)
		if !x.IsSquare() {
			continue
		}
		root, ok := Sqrt(cfg, x)
		if !ok {
			t.Fatalf("Sqrt reported not-square for a quadratic residue %d", i)
		}
		sq, _ := root.Mul(root)
		if !sq.Equal(x) {
			t.Fatalf("Sqrt(%d)^2 != %d", i, i)
		}
	}
}

func TestSqrtRejectsNonResidue(t *testing.T) {
	cfg := NewConfig(testModulus)
	// 2 modulus 101 is a non-residue (101 = 5 mod 8, 2 is QR iff q = 1,7 mod 8).
	found := false
	for i := int64(2); i < 101; i++ {
		x := FromInt64(cfg, i)
		if !x.IsSquare() {
			if _, ok := Sqrt(cfg, x); ok {
				t.Fatalf("Sqrt accepted a non-residue %d", i)
			}
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("test setup error: expected at least one non-residue mod 101")
	}
}

func TestTonelliShanksPath(t *testing.T) {
	// 17 = 1 mod 4, forcing the general Tonelli-Shanks branch rather
	// than the q=3 mod 4 fast path.
	cfg := NewConfig(big.NewInt(17))
	for i := int64(1); i < 17; i++ {
		x := FromInt64(cfg, i)
		if !x.IsSquare() {
			continue
		}
		root, ok := Sqrt(cfg, x)
		if !ok {
			t.Fatalf("Sqrt reported not-square for residue %d mod 17", i)
		}
		sq, _ := root.Mul(root)
		if !sq.Equal(x) {
			t.Fatalf("Sqrt(%d mod 17)^2 != %d", i, i)
		}
	}
}
