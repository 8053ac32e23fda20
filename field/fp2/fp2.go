// Package fp2 implements the quadratic tower extension F[u]/(u^2 - beta)
// over an arbitrary base field satisfying algebra.Element. It is
// instantiated twice in BLS12-381 (Fq -> Fq2, and Fq6 -> Fq12) and twice
// in MNT4-753 (Fq -> Fq2, and Fq2 -> Fq4), which is why it is written
// generically against the base field's interface rather than against a
// concrete coordinate type.
package fp2

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/go-pairing/pairing/internal/algebra"
)

// Config fixes the non-residue beta and the characteristic q shared by a
// family of Element values. Degree is the extension degree of THIS
// field over Fq (used to reduce the Frobenius exponent n mod Degree).
type Config struct {
	NonResidue algebra.Element
	BaseZero   algebra.Element
	BaseOne    algebra.Element
	Modulus    *big.Int
	Degree     int
	// BaseByteLen and DeserializeBase let Deserialize split an incoming
	// byte string into coordinates without knowing the base field's
	// concrete type.
	BaseByteLen    int
	DeserializeBase func([]byte) (algebra.Element, error)

	mu     sync.Mutex
	gammas map[int]algebra.Element
}

// NewConfig builds a quadratic-extension configuration. baseDegree is
// the extension degree of the base field over Fq (1 for Fq itself).
func NewConfig(nonResidue, baseZero, baseOne algebra.Element, modulus *big.Int, baseDegree, baseByteLen int, deserializeBase func([]byte) (algebra.Element, error)) *Config {
	return &Config{
		NonResidue:      nonResidue,
		BaseZero:        baseZero,
		BaseOne:         baseOne,
		Modulus:         modulus,
		Degree:          2 * baseDegree,
		BaseByteLen:     baseByteLen,
		DeserializeBase: deserializeBase,
		gammas:          make(map[int]algebra.Element),
	}
}

// gamma returns beta^((q^(n mod Degree) - 1)/2), memoized per reduced
// exponent. Frobenius of the same order n is requested repeatedly by
// the Miller loop and final exponentiation, so this avoids recomputing
// a big.Int modular exponentiation on every call.
func (c *Config) gamma(n int) (algebra.Element, error) {
	k := n % c.Degree
	if k < 0 {
		k += c.Degree
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.gammas[k]; ok {
		return g, nil
	}
	qn := new(big.Int).Exp(c.Modulus, big.NewInt(int64(k)), nil)
	exp := new(big.Int).Sub(qn, big.NewInt(1))
	exp.Div(exp, big.NewInt(2))
	g, err := c.NonResidue.Pow(exp)
	if err != nil {
		return nil, err
	}
	c.gammas[k] = g
	return g, nil
}

// Element represents c0 + c1*u with u^2 = NonResidue.
type Element struct {
	c0, c1 algebra.Element
	cfg    *Config
}

// New builds c0 + c1*u.
func New(cfg *Config, c0, c1 algebra.Element) Element {
	return Element{c0: c0, c1: c1, cfg: cfg}
}

// Zero returns the additive identity.
func Zero(cfg *Config) Element { return Element{c0: cfg.BaseZero, c1: cfg.BaseZero, cfg: cfg} }

// One returns the multiplicative identity.
func One(cfg *Config) Element { return Element{c0: cfg.BaseOne, c1: cfg.BaseZero, cfg: cfg} }

// U returns the adjoined root u, satisfying u^2 = NonResidue.
func U(cfg *Config) Element { return Element{c0: cfg.BaseZero, c1: cfg.BaseOne, cfg: cfg} }

// C0 and C1 expose the coordinates for curve-instantiation code that
// needs to inspect or promote them (e.g. twisting morphisms).
func (x Element) C0() algebra.Element { return x.c0 }
func (x Element) C1() algebra.Element { return x.c1 }
func (x Element) Config() *Config     { return x.cfg }

// ByteLen returns the fixed serialized length of an Element of this
// field (twice the base field's), used by tower levels built on top
// of this one to size their own encodings.
func (c *Config) ByteLen() int { return 2 * c.BaseByteLen }

func (x Element) sameField(yi algebra.Element) (Element, error) {
	y, ok := yi.(Element)
	if !ok || y.cfg != x.cfg {
		return Element{}, fmt.Errorf("fp2: %w", algebra.ErrFieldMismatch)
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
	return Element{c0: c0, c1: c1, cfg: x.cfg}, nil
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
	return Element{c0: c0, c1: c1, cfg: x.cfg}, nil
}

// Mul computes (a0+a1u)(b0+b1u) = (a0b0 + beta*a1b1) + (a0b1+a1b0)u.
func (x Element) Mul(yi algebra.Element) (algebra.Element, error) {
	y, err := x.sameField(yi)
	if err != nil {
		return nil, err
	}
	a0b0, err := x.c0.Mul(y.c0)
	if err != nil {
		return nil, err
	}
	a1b1, err := x.c1.Mul(y.c1)
	if err != nil {
		return nil, err
	}
	betaA1b1, err := x.cfg.NonResidue.Mul(a1b1)
	if err != nil {
		return nil, err
	}
	c0, err := a0b0.Add(betaA1b1)
	if err != nil {
		return nil, err
	}
	a0b1, err := x.c0.Mul(y.c1)
	if err != nil {
		return nil, err
	}
	a1b0, err := x.c1.Mul(y.c0)
	if err != nil {
		return nil, err
	}
	c1, err := a0b1.Add(a1b0)
	if err != nil {
		return nil, err
	}
	return Element{c0: c0, c1: c1, cfg: x.cfg}, nil
}

func (x Element) Neg() algebra.Element {
	return Element{c0: x.c0.Neg(), c1: x.c1.Neg(), cfg: x.cfg}
}

// Conjugate returns (c0, -c1).
func (x Element) Conjugate() Element {
	return Element{c0: x.c0, c1: x.c1.Neg(), cfg: x.cfg}
}

// Invert computes (c0, c1)^-1 = (c0*N^-1, -c1*N^-1) where N = c0^2 - beta*c1^2.
func (x Element) Invert() (algebra.Element, error) {
	if x.IsZero() {
		return nil, fmt.Errorf("fp2: %w", algebra.ErrNotInvertible)
	}
	c0sq, err := x.c0.Mul(x.c0)
	if err != nil {
		return nil, err
	}
	c1sq, err := x.c1.Mul(x.c1)
	if err != nil {
		return nil, err
	}
	betaC1sq, err := x.cfg.NonResidue.Mul(c1sq)
	if err != nil {
		return nil, err
	}
	n, err := c0sq.Sub(betaC1sq)
	if err != nil {
		return nil, err
	}
	nInv, err := n.Invert()
	if err != nil {
		return nil, err
	}
	outC0, err := x.c0.Mul(nInv)
	if err != nil {
		return nil, err
	}
	negC1, err := x.c1.Neg().Mul(nInv)
	if err != nil {
		return nil, err
	}
	return Element{c0: outC0, c1: negC1, cfg: x.cfg}, nil
}

func (x Element) Pow(n *big.Int) (algebra.Element, error) {
	if x.IsZero() {
		if n.Sign() == 0 {
			return nil, fmt.Errorf("fp2: %w", algebra.ErrZeroToZero)
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

func (x Element) IsZero() bool { return x.c0.IsZero() && x.c1.IsZero() }

func (x Element) Equal(yi algebra.Element) bool {
	y, ok := yi.(Element)
	if !ok || y.cfg != x.cfg {
		return false
	}
	return x.c0.Equal(y.c0) && x.c1.Equal(y.c1)
}

// Frobenius computes (c0.frob(n), c1.frob(n)*gamma) where
// gamma = beta^((q^(n mod Degree) - 1)/2).
func (x Element) Frobenius(n int) algebra.Element {
	gamma, err := x.cfg.gamma(n)
	if err != nil {
		// NonResidue.Pow only fails on 0^0, which cannot happen here
		// since beta is never zero for a valid non-residue.
		panic(fmt.Sprintf("fp2: frobenius gamma: %v", err))
	}
	c1Frob := x.c1.Frobenius(n)
	c1, err := c1Frob.Mul(gamma)
	if err != nil {
		panic(fmt.Sprintf("fp2: frobenius: %v", err))
	}
	return Element{c0: x.c0.Frobenius(n), c1: c1, cfg: x.cfg}
}

func (x Element) ScalarMul(n *big.Int) algebra.Element {
	return Element{c0: x.c0.ScalarMul(n), c1: x.c1.ScalarMul(n), cfg: x.cfg}
}

func (x Element) Zero() algebra.Element { return Zero(x.cfg) }
func (x Element) One() algebra.Element  { return One(x.cfg) }

// Bytes concatenates the coordinate encodings in order (c0, c1).
func (x Element) Bytes() []byte {
	return append(x.c0.Bytes(), x.c1.Bytes()...)
}

// Deserialize reads 2*cfg.BaseByteLen bytes into an Element, coordinates
// in order (c0, c1).
func Deserialize(cfg *Config, data []byte) (Element, error) {
	if len(data) != 2*cfg.BaseByteLen {
		return Element{}, fmt.Errorf("fp2: %w: expected %d bytes, got %d", algebra.ErrMalformedEncoding, 2*cfg.BaseByteLen, len(data))
	}
	c0, err := cfg.DeserializeBase(data[:cfg.BaseByteLen])
	if err != nil {
		return Element{}, err
	}
	c1, err := cfg.DeserializeBase(data[cfg.BaseByteLen:])
	if err != nil {
		return Element{}, err
	}
	return Element{c0: c0, c1: c1, cfg: cfg}, nil
}

func (x Element) Cmp(yi algebra.Element) (int, error) {
	y, err := x.sameField(yi)
	if err != nil {
		return 0, err
	}
	if c, err := x.c1.Cmp(y.c1); err != nil {
		return 0, err
	} else if c != 0 {
		return c, nil
	}
	return x.c0.Cmp(y.c0)
}
