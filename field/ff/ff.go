// Package ff implements Fq, the prime field of integers modulo a fixed
// modulus q. It is the leaf of every tower built by field/fp2 and
// field/fp3, and the concrete type used for the curve's base
// coefficients (a, b) and G1 coordinates.
package ff

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/go-pairing/pairing/internal/algebra"
)

// Config fixes the modulus shared by a family of Element values. Two
// Elements interoperate only if they carry the same *Config, compared
// by pointer identity (mirrors the Python source's per-class MODULUS).
type Config struct {
	Modulus *big.Int
	// byteLen is ceil((bitlen(Modulus)+8)/8), the arkworks serialization
	// length: one extra byte over the tight encoding.
	byteLen int
}

// NewConfig builds a field configuration for the given prime modulus.
func NewConfig(modulus *big.Int) *Config {
	m := new(big.Int).Set(modulus)
	// ceil((bitlen(q)+8)/8), the arkworks convention of one extra byte
	// over the tight ceil(bitlen(q)/8) encoding.
	return &Config{Modulus: m, byteLen: (m.BitLen() + 15) / 8}
}

// Element is an integer in [0, Modulus), always kept reduced.
type Element struct {
	v   *big.Int
	cfg *Config
}

// New reduces v modulo cfg.Modulus and returns the resulting Element.
func New(cfg *Config, v *big.Int) Element {
	return Element{v: new(big.Int).Mod(v, cfg.Modulus), cfg: cfg}
}

// FromInt64 is a convenience constructor for small literals.
func FromInt64(cfg *Config, v int64) Element {
	return New(cfg, big.NewInt(v))
}

// Zero returns the additive identity of cfg.
func Zero(cfg *Config) Element { return Element{v: big.NewInt(0), cfg: cfg} }

// One returns the multiplicative identity of cfg.
func One(cfg *Config) Element { return Element{v: big.NewInt(1), cfg: cfg} }

// Random samples an element uniformly in [0, Modulus).
func Random(cfg *Config) (Element, error) {
	v, err := rand.Int(rand.Reader, cfg.Modulus)
	if err != nil {
		return Element{}, err
	}
	return Element{v: v, cfg: cfg}, nil
}

// BigInt returns a copy of the element's integer representative.
func (x Element) BigInt() *big.Int { return new(big.Int).Set(x.v) }

// Config returns the field configuration this element belongs to.
func (x Element) Config() *Config { return x.cfg }

// ByteLen returns the fixed serialized length of an Element of this
// field, used by tower levels built on top of ff to size their own
// encodings.
func (c *Config) ByteLen() int { return c.byteLen }

func (x Element) sameField(yi algebra.Element) (Element, error) {
	y, ok := yi.(Element)
	if !ok || y.cfg != x.cfg {
		return Element{}, fmt.Errorf("ff: %w", algebra.ErrFieldMismatch)
	}
	return y, nil
}

func (x Element) Add(yi algebra.Element) (algebra.Element, error) {
	y, err := x.sameField(yi)
	if err != nil {
		return nil, err
	}
	return New(x.cfg, new(big.Int).Add(x.v, y.v)), nil
}

func (x Element) Sub(yi algebra.Element) (algebra.Element, error) {
	y, err := x.sameField(yi)
	if err != nil {
		return nil, err
	}
	return New(x.cfg, new(big.Int).Sub(x.v, y.v)), nil
}

func (x Element) Mul(yi algebra.Element) (algebra.Element, error) {
	y, err := x.sameField(yi)
	if err != nil {
		return nil, err
	}
	return New(x.cfg, new(big.Int).Mul(x.v, y.v)), nil
}

func (x Element) Neg() algebra.Element {
	return New(x.cfg, new(big.Int).Neg(x.v))
}

// Invert computes x⁻¹ via Fermat's little theorem. Constant-time
// execution is not a goal here.
func (x Element) Invert() (algebra.Element, error) {
	if x.IsZero() {
		return nil, fmt.Errorf("ff: %w", algebra.ErrNotInvertible)
	}
	exp := new(big.Int).Sub(x.cfg.Modulus, big.NewInt(2))
	return Element{v: new(big.Int).Exp(x.v, exp, x.cfg.Modulus), cfg: x.cfg}, nil
}

func (x Element) Pow(n *big.Int) (algebra.Element, error) {
	if x.IsZero() {
		if n.Sign() == 0 {
			return nil, fmt.Errorf("ff: %w", algebra.ErrZeroToZero)
		}
		return x, nil
	}
	if n.Sign() == 0 {
		return One(x.cfg), nil
	}
	e := n
	base := x
	if n.Sign() < 0 {
		e = new(big.Int).Neg(n)
		inv, err := x.Invert()
		if err != nil {
			return nil, err
		}
		base = inv.(Element)
	}
	return Element{v: new(big.Int).Exp(base.v, e, x.cfg.Modulus), cfg: x.cfg}, nil
}

func (x Element) IsZero() bool { return x.v.Sign() == 0 }

func (x Element) Equal(yi algebra.Element) bool {
	y, ok := yi.(Element)
	if !ok || y.cfg != x.cfg {
		return false
	}
	return x.v.Cmp(y.v) == 0
}

// Frobenius is the identity on Fq: x^q = x for all x in Fq.
func (x Element) Frobenius(int) algebra.Element { return x }

func (x Element) ScalarMul(n *big.Int) algebra.Element {
	return New(x.cfg, new(big.Int).Mul(x.v, n))
}

func (x Element) Zero() algebra.Element { return Zero(x.cfg) }
func (x Element) One() algebra.Element  { return One(x.cfg) }

// Bytes little-endian encodes the representative into cfg.byteLen bytes.
func (x Element) Bytes() []byte {
	out := make([]byte, x.cfg.byteLen)
	le := x.v.Bytes() // big-endian, no leading zero byte
	for i, b := range le {
		out[len(le)-1-i] = b
	}
	return out
}

// Deserialize is the inverse of Bytes: it reads exactly cfg.byteLen
// little-endian bytes into an Element.
func Deserialize(cfg *Config, data []byte) (Element, error) {
	if len(data) != cfg.byteLen {
		return Element{}, fmt.Errorf("ff: %w: expected %d bytes, got %d", algebra.ErrMalformedEncoding, cfg.byteLen, len(data))
	}
	be := make([]byte, len(data))
	for i, b := range data {
		be[len(data)-1-i] = b
	}
	return New(cfg, new(big.Int).SetBytes(be)), nil
}

func (x Element) Cmp(yi algebra.Element) (int, error) {
	y, err := x.sameField(yi)
	if err != nil {
		return 0, err
	}
	return x.v.Cmp(y.v), nil
}

// IsSquare reports whether x is a quadratic residue mod cfg.Modulus,
// via Euler's criterion: x^((q-1)/2) == 1.
func (x Element) IsSquare() bool {
	if x.IsZero() {
		return true
	}
	exp := new(big.Int).Sub(x.cfg.Modulus, big.NewInt(1))
	exp.Rsh(exp, 1)
	return new(big.Int).Exp(x.v, exp, x.cfg.Modulus).Cmp(big.NewInt(1)) == 0
}

// Sqrt computes a square root of x mod cfg.Modulus via Tonelli-Shanks,
// reporting ok=false if x is not a quadratic residue. Which of the two
// roots is returned is unspecified beyond "some square root of x";
// callers that need a canonical root (e.g. "y is lexicographically
// largest") compare against its negation themselves.
func Sqrt(cfg *Config, x Element) (Element, bool) {
	if x.IsZero() {
		return Zero(cfg), true
	}
	if !x.IsSquare() {
		return Element{}, false
	}
	q := cfg.Modulus
	// Fast path: q = 3 mod 4, root = x^((q+1)/4).
	if new(big.Int).Mod(q, big.NewInt(4)).Cmp(big.NewInt(3)) == 0 {
		exp := new(big.Int).Add(q, big.NewInt(1))
		exp.Rsh(exp, 2)
		return Element{v: new(big.Int).Exp(x.v, exp, q), cfg: cfg}, true
	}

	// General Tonelli-Shanks: write q-1 = s*2^e with s odd.
	qm1 := new(big.Int).Sub(q, big.NewInt(1))
	s := new(big.Int).Set(qm1)
	e := 0
	for s.Bit(0) == 0 {
		s.Rsh(s, 1)
		e++
	}

	// Find a quadratic non-residue z.
	z := big.NewInt(2)
	for New(cfg, z).IsSquare() {
		z.Add(z, big.NewInt(1))
	}

	m := e
	c := new(big.Int).Exp(z, s, q)
	t := new(big.Int).Exp(x.v, s, q)
	sExp := new(big.Int).Add(s, big.NewInt(1))
	sExp.Rsh(sExp, 1)
	r := new(big.Int).Exp(x.v, sExp, q)

	one := big.NewInt(1)
	for t.Cmp(one) != 0 {
		// Find least i, 0<i<m, with t^(2^i) == 1.
		i := 0
		tt := new(big.Int).Set(t)
		for tt.Cmp(one) != 0 {
			tt.Mul(tt, tt).Mod(tt, q)
			i++
		}
		b := new(big.Int).Exp(c, new(big.Int).Lsh(one, uint(m-i-1)), q)
		r.Mul(r, b).Mod(r, q)
		b2 := new(big.Int).Mul(b, b)
		b2.Mod(b2, q)
		t.Mul(t, b2).Mod(t, q)
		c = b2
		m = i
	}
	return Element{v: r, cfg: cfg}, true
}
