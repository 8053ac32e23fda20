// Package fp3 implements the cubic tower extension F[v]/(v^3 - beta)
// over an arbitrary base field satisfying algebra.Element. BLS12-381
// uses exactly one instance of it, Fq2 -> Fq6.
package fp3

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/go-pairing/pairing/internal/algebra"
)

// Config fixes the non-residue beta and characteristic q shared by a
// family of Element values, analogous to fp2.Config.
type Config struct {
	NonResidue      algebra.Element
	BaseZero        algebra.Element
	BaseOne         algebra.Element
	Modulus         *big.Int
	Degree          int
	BaseByteLen     int
	DeserializeBase func([]byte) (algebra.Element, error)

	mu      sync.Mutex
	gamma1s map[int]algebra.Element
	gamma2s map[int]algebra.Element
}

// NewConfig builds a cubic-extension configuration. baseDegree is the
// extension degree of the base field over Fq.
func NewConfig(nonResidue, baseZero, baseOne algebra.Element, modulus *big.Int, baseDegree, baseByteLen int, deserializeBase func([]byte) (algebra.Element, error)) *Config {
	return &Config{
		NonResidue:      nonResidue,
		BaseZero:        baseZero,
		BaseOne:         baseOne,
		Modulus:         modulus,
		Degree:          3 * baseDegree,
		BaseByteLen:     baseByteLen,
		DeserializeBase: deserializeBase,
		gamma1s:         make(map[int]algebra.Element),
		gamma2s:         make(map[int]algebra.Element),
	}
}

// gammas returns (beta^((q^(n mod Degree)-1)/3), gamma1^2), memoized.
func (c *Config) gammas(n int) (algebra.Element, algebra.Element, error) {
	k := n % c.Degree
	if k < 0 {
		k += c.Degree
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if g1, ok := c.gamma1s[k]; ok {
		return g1, c.gamma2s[k], nil
	}
	qn := new(big.Int).Exp(c.Modulus, big.NewInt(int64(k)), nil)
	exp := new(big.Int).Sub(qn, big.NewInt(1))
	exp.Div(exp, big.NewInt(3))
	g1, err := c.NonResidue.Pow(exp)
	if err != nil {
		return nil, nil, err
	}
	g2, err := g1.Mul(g1)
	if err != nil {
		return nil, nil, err
	}
	c.gamma1s[k] = g1
	c.gamma2s[k] = g2
	return g1, g2, nil
}

// Element represents c0 + c1*v + c2*v^2 with v^3 = NonResidue.
type Element struct {
	c0, c1, c2 algebra.Element
	cfg        *Config
}

func New(cfg *Config, c0, c1, c2 algebra.Element) Element {
	return Element{c0: c0, c1: c1, c2: c2, cfg: cfg}
}

func Zero(cfg *Config) Element {
	return Element{c0: cfg.BaseZero, c1: cfg.BaseZero, c2: cfg.BaseZero, cfg: cfg}
}

func One(cfg *Config) Element {
	return Element{c0: cfg.BaseOne, c1: cfg.BaseZero, c2: cfg.BaseZero, cfg: cfg}
}

// V returns the adjoined root v, satisfying v^3 = NonResidue.
func V(cfg *Config) Element {
	return Element{c0: cfg.BaseZero, c1: cfg.BaseOne, c2: cfg.BaseZero, cfg: cfg}
}

func (x Element) C0() algebra.Element { return x.c0 }
func (x Element) C1() algebra.Element { return x.c1 }
func (x Element) C2() algebra.Element { return x.c2 }
func (x Element) Config() *Config     { return x.cfg }

// ByteLen returns the fixed serialized length of an Element of this
// field (three times the base field's), used by tower levels built on
// top of this one to size their own encodings.
func (c *Config) ByteLen() int { return 3 * c.BaseByteLen }

func (x Element) sameField(yi algebra.Element) (Element, error) {
	y, ok := yi.(Element)
	if !ok || y.cfg != x.cfg {
		return Element{}, fmt.Errorf("fp3: %w", algebra.ErrFieldMismatch)
	}
	return y, nil
}

func (x Element) Add(yi algebra.Element) (algebra.Element, error) {
	y, err := x.sameField(yi)
	if err != nil {
		return nil, err
	}
	c0, err := x.c0.Add(y.c0)
	if err != nil {
		return nil, err
	}
	c1, err := x.c1.Add(y.c1)
	if err != nil {
		return nil, err
	}
	c2, err := x.c2.Add(y.c2)
	if err != nil {
		return nil, err
	}
	return Element{c0: c0, c1: c1, c2: c2, cfg: x.cfg}, nil
}

func (x Element) Sub(yi algebra.Element) (algebra.Element, error) {
	y, err := x.sameField(yi)
	if err != nil {
		return nil, err
	}
	c0, err := x.c0.Sub(y.c0)
	if err != nil {
		return nil, err
	}
	c1, err := x.c1.Sub(y.c1)
	if err != nil {
		return nil, err
	}
	c2, err := x.c2.Sub(y.c2)
	if err != nil {
		return nil, err
	}
	return Element{c0: c0, c1: c1, c2: c2, cfg: x.cfg}, nil
}

// Mul implements the cubic-extension product:
//
//	c0 = a0b0 + beta*(a1b2 + a2b1)
//	c1 = a0b1 + a1b0 + beta*a2b2
//	c2 = a0b2 + a1b1 + a2b0
func (x Element) Mul(yi algebra.Element) (algebra.Element, error) {
	y, err := x.sameField(yi)
	if err != nil {
		return nil, err
	}
	beta := x.cfg.NonResidue

	a0b0, _ := x.c0.Mul(y.c0)
	a1b2, _ := x.c1.Mul(y.c2)
	a2b1, _ := x.c2.Mul(y.c1)
	sum0, err := a1b2.Add(a2b1)
	if err != nil {
		return nil, err
	}
	betaSum0, err := beta.Mul(sum0)
	if err != nil {
		return nil, err
	}
	c0, err := a0b0.Add(betaSum0)
	if err != nil {
		return nil, err
	}

	a0b1, _ := x.c0.Mul(y.c1)
	a1b0, _ := x.c1.Mul(y.c0)
	a2b2, _ := x.c2.Mul(y.c2)
	betaA2b2, err := beta.Mul(a2b2)
	if err != nil {
		return nil, err
	}
	sum1, err := a0b1.Add(a1b0)
	if err != nil {
		return nil, err
	}
	c1, err := sum1.Add(betaA2b2)
	if err != nil {
		return nil, err
	}

	a0b2, _ := x.c0.Mul(y.c2)
	a1b1, _ := x.c1.Mul(y.c1)
	a2b0, _ := x.c2.Mul(y.c0)
	sum2, err := a0b2.Add(a1b1)
	if err != nil {
		return nil, err
	}
	c2, err := sum2.Add(a2b0)
	if err != nil {
		return nil, err
	}

	return Element{c0: c0, c1: c1, c2: c2, cfg: x.cfg}, nil
}

func (x Element) Neg() algebra.Element {
	return Element{c0: x.c0.Neg(), c1: x.c1.Neg(), c2: x.c2.Neg(), cfg: x.cfg}
}

// Invert implements Kotov-Kaliski-style cubic-extension inversion:
//
//	A = c0^2 - beta*c1*c2
//	B = beta*c2^2 - c0*c1
//	C = c1^2 - c0*c2
//	D = c0*A + beta*c1*C + beta*c2*B
//	result = (A/D, B/D, C/D)
func (x Element) Invert() (algebra.Element, error) {
	if x.IsZero() {
		return nil, fmt.Errorf("fp3: %w", algebra.ErrNotInvertible)
	}
	beta := x.cfg.NonResidue

	c0sq, _ := x.c0.Mul(x.c0)
	c1c2, _ := x.c1.Mul(x.c2)
	betaC1c2, err := beta.Mul(c1c2)
	if err != nil {
		return nil, err
	}
	A, err := c0sq.Sub(betaC1c2)
	if err != nil {
		return nil, err
	}

	c2sq, _ := x.c2.Mul(x.c2)
	betaC2sq, err := beta.Mul(c2sq)
	if err != nil {
		return nil, err
	}
	c0c1, _ := x.c0.Mul(x.c1)
	B, err := betaC2sq.Sub(c0c1)
	if err != nil {
		return nil, err
	}

	c1sq, _ := x.c1.Mul(x.c1)
	c0c2, _ := x.c0.Mul(x.c2)
	C, err := c1sq.Sub(c0c2)
	if err != nil {
		return nil, err
	}

	c0A, _ := x.c0.Mul(A)
	c1C, _ := x.c1.Mul(C)
	betaC1C, err := beta.Mul(c1C)
	if err != nil {
		return nil, err
	}
	c2B, _ := x.c2.Mul(B)
	betaC2B, err := beta.Mul(c2B)
	if err != nil {
		return nil, err
	}
	d0, err := c0A.Add(betaC1C)
	if err != nil {
		return nil, err
	}
	D, err := d0.Add(betaC2B)
	if err != nil {
		return nil, err
	}
	Dinv, err := D.Invert()
	if err != nil {
		return nil, err
	}

	outA, _ := A.Mul(Dinv)
	outB, _ := B.Mul(Dinv)
	outC, _ := C.Mul(Dinv)
	return Element{c0: outA, c1: outB, c2: outC, cfg: x.cfg}, nil
}

func (x Element) Pow(n *big.Int) (algebra.Element, error) {
	if x.IsZero() {
		if n.Sign() == 0 {
			return nil, fmt.Errorf("fp3: %w", algebra.ErrZeroToZero)
		}
		return x, nil
	}
	if n.Sign() == 0 {
		return One(x.cfg), nil
	}
	e := n
	var base algebra.Element = x
	if n.Sign() < 0 {
		e = new(big.Int).Neg(n)
		inv, err := x.Invert()
		if err != nil {
			return nil, err
		}
		base = inv
	}
	result := algebra.Element(One(x.cfg))
	for i := e.BitLen() - 1; i >= 0; i-- {
		var err error
		result, err = result.Mul(result)
		if err != nil {
			return nil, err
		}
		if e.Bit(i) == 1 {
			result, err = result.Mul(base)
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func (x Element) IsZero() bool {
	return x.c0.IsZero() && x.c1.IsZero() && x.c2.IsZero()
}

func (x Element) Equal(yi algebra.Element) bool {
	y, ok := yi.(Element)
	if !ok || y.cfg != x.cfg {
		return false
	}
	return x.c0.Equal(y.c0) && x.c1.Equal(y.c1) && x.c2.Equal(y.c2)
}

// Frobenius computes (c0.frob(n), c1.frob(n)*gamma1, c2.frob(n)*gamma2)
// where gamma1 = beta^((q^(n mod Degree)-1)/3) and gamma2 = gamma1^2.
func (x Element) Frobenius(n int) algebra.Element {
	g1, g2, err := x.cfg.gammas(n)
	if err != nil {
		panic(fmt.Sprintf("fp3: frobenius gammas: %v", err))
	}
	c1Frob := x.c1.Frobenius(n)
	c1, err := c1Frob.Mul(g1)
	if err != nil {
		panic(fmt.Sprintf("fp3: frobenius: %v", err))
	}
	c2Frob := x.c2.Frobenius(n)
	c2, err := c2Frob.Mul(g2)
	if err != nil {
		panic(fmt.Sprintf("fp3: frobenius: %v", err))
	}
	return Element{c0: x.c0.Frobenius(n), c1: c1, c2: c2, cfg: x.cfg}
}

func (x Element) ScalarMul(n *big.Int) algebra.Element {
	return Element{c0: x.c0.ScalarMul(n), c1: x.c1.ScalarMul(n), c2: x.c2.ScalarMul(n), cfg: x.cfg}
}

func (x Element) Zero() algebra.Element { return Zero(x.cfg) }
func (x Element) One() algebra.Element  { return One(x.cfg) }

func (x Element) Bytes() []byte {
	out := append([]byte{}, x.c0.Bytes()...)
	out = append(out, x.c1.Bytes()...)
	out = append(out, x.c2.Bytes()...)
	return out
}

// Deserialize reads 3*cfg.BaseByteLen bytes into an Element, coordinates
// in order (c0, c1, c2).
func Deserialize(cfg *Config, data []byte) (Element, error) {
	if len(data) != 3*cfg.BaseByteLen {
		return Element{}, fmt.Errorf("fp3: %w: expected %d bytes, got %d", algebra.ErrMalformedEncoding, 3*cfg.BaseByteLen, len(data))
	}
	c0, err := cfg.DeserializeBase(data[:cfg.BaseByteLen])
	if err != nil {
		return Element{}, err
	}
	c1, err := cfg.DeserializeBase(data[cfg.BaseByteLen : 2*cfg.BaseByteLen])
	if err != nil {
		return Element{}, err
	}
	c2, err := cfg.DeserializeBase(data[2*cfg.BaseByteLen:])
	if err != nil {
		return Element{}, err
	}
	return Element{c0: c0, c1: c1, c2: c2, cfg: cfg}, nil
}

func (x Element) Cmp(yi algebra.Element) (int, error) {
	y, err := x.sameField(yi)
	if err != nil {
		return 0, err
	}
	if c, err := x.c2.Cmp(y.c2); err != nil {
		return 0, err
	} else if c != 0 {
		return c, nil
	}
	if c, err := x.c1.Cmp(y.c1); err != nil {
		return 0, err
	} else if c != 0 {
		return c, nil
	}
	return x.c0.Cmp(y.c0)
}
