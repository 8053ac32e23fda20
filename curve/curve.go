// Package curve implements Short-Weierstrass elliptic curve arithmetic
// (affine and projective, y^2 = x^3 + ax + b) generically over any
// field satisfying algebra.Element, so the same code serves G1 over Fq
// and G2 over the tower's quadratic extension.
package curve

import (
	"fmt"
	"math/big"

	"github.com/go-pairing/pairing/internal/algebra"
)

// Params fixes the curve coefficients a, b shared by a family of
// points. Two points interoperate only if they carry the same *Params.
type Params struct {
	A, B algebra.Element
}

// NewParams validates 4a^3 + 27b^2 != 0 (non-singularity) and returns
// the curve parameters.
func NewParams(a, b algebra.Element) (*Params, error) {
	a3, err := a.Mul(a)
	if err != nil {
		return nil, err
	}
	a3, err = a3.Mul(a)
	if err != nil {
		return nil, err
	}
	four := a.One().ScalarMul(big.NewInt(4))
	term1, err := four.Mul(a3)
	if err != nil {
		return nil, err
	}
	b2, err := b.Mul(b)
	if err != nil {
		return nil, err
	}
	twentySeven := b.One().ScalarMul(big.NewInt(27))
	term2, err := twentySeven.Mul(b2)
	if err != nil {
		return nil, err
	}
	disc, err := term1.Add(term2)
	if err != nil {
		return nil, err
	}
	if disc.IsZero() {
		return nil, fmt.Errorf("curve: %w: singular curve (4a^3+27b^2=0)", algebra.ErrInvalidInput)
	}
	return &Params{A: a, B: b}, nil
}

// satisfies reports whether (x, y) satisfies y^2 = x^3 + ax + b.
func (p *Params) satisfies(x, y algebra.Element) (bool, error) {
	y2, err := y.Mul(y)
	if err != nil {
		return false, err
	}
	x2, err := x.Mul(x)
	if err != nil {
		return false, err
	}
	x3, err := x2.Mul(x)
	if err != nil {
		return false, err
	}
	ax, err := p.A.Mul(x)
	if err != nil {
		return false, err
	}
	rhs, err := x3.Add(ax)
	if err != nil {
		return false, err
	}
	rhs, err = rhs.Add(p.B)
	if err != nil {
		return false, err
	}
	return y2.Equal(rhs), nil
}

// AffinePoint is a point on a Params curve, in affine (x, y)
// coordinates, or the distinguished point at infinity.
type AffinePoint struct {
	x, y       algebra.Element
	infinity   bool
	params     *Params
}

// Infinity returns the point at infinity for the given curve.
func Infinity(params *Params) AffinePoint {
	return AffinePoint{infinity: true, params: params}
}

// NewAffinePoint validates that (x, y) lies on the curve and returns
// the corresponding point.
func NewAffinePoint(params *Params, x, y algebra.Element) (AffinePoint, error) {
	ok, err := params.satisfies(x, y)
	if err != nil {
		return AffinePoint{}, err
	}
	if !ok {
		return AffinePoint{}, fmt.Errorf("curve: %w: point not on curve", algebra.ErrInvalidInput)
	}
	return AffinePoint{x: x, y: y, params: params}, nil
}

func (p AffinePoint) IsInfinity() bool  { return p.infinity }
func (p AffinePoint) X() algebra.Element { return p.x }
func (p AffinePoint) Y() algebra.Element { return p.y }
func (p AffinePoint) Params() *Params    { return p.params }

func (p AffinePoint) sameCurve(q AffinePoint) error {
	if p.params != q.params {
		return fmt.Errorf("curve: %w: points belong to different curves", algebra.ErrFieldMismatch)
	}
	return nil
}

func (p AffinePoint) Neg() AffinePoint {
	if p.infinity {
		return p
	}
	return AffinePoint{x: p.x, y: p.y.Neg(), params: p.params}
}

func (p AffinePoint) Equal(q AffinePoint) bool {
	if p.params != q.params {
		return false
	}
	if p.infinity || q.infinity {
		return p.infinity == q.infinity
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// Lambda computes the slope used by Add/Double: for distinct points
// (y2-y1)/(x2-x1); for point doubling (3x1^2+a)/(2y1). It returns
// ok=false when p==-q (vertical line, no slope).
func (p AffinePoint) Lambda(q AffinePoint) (lambda algebra.Element, ok bool, err error) {
	if err := p.sameCurve(q); err != nil {
		return nil, false, err
	}
	if p.x.Equal(q.x) && !p.y.Equal(q.y) {
		return nil, false, nil
	}
	if p.x.Equal(q.x) && p.y.Equal(q.y) {
		if p.y.IsZero() {
			return nil, false, nil
		}
		x2, err := p.x.Mul(p.x)
		if err != nil {
			return nil, false, err
		}
		three := p.x.One().ScalarMul(big.NewInt(3))
		num, err := three.Mul(x2)
		if err != nil {
			return nil, false, err
		}
		num, err = num.Add(p.params.A)
		if err != nil {
			return nil, false, err
		}
		two := p.y.One().ScalarMul(big.NewInt(2))
		den, err := two.Mul(p.y)
		if err != nil {
			return nil, false, err
		}
		denInv, err := den.Invert()
		if err != nil {
			return nil, false, err
		}
		l, err := num.Mul(denInv)
		if err != nil {
			return nil, false, err
		}
		return l, true, nil
	}
	num, err := q.y.Sub(p.y)
	if err != nil {
		return nil, false, err
	}
	den, err := q.x.Sub(p.x)
	if err != nil {
		return nil, false, err
	}
	denInv, err := den.Invert()
	if err != nil {
		return nil, false, err
	}
	l, err := num.Mul(denInv)
	if err != nil {
		return nil, false, err
	}
	return l, true, nil
}

// Lambdas computes get_lambdas(exp): exp is a signed-binary digit list
// with exp[len(exp)-1] fixed in {-1, 1} (the most significant digit),
// representing n = sum exp[i]*2^i. It returns, per iteration, the
// tangent slope that doubles the running total T and (when the digit
// is nonzero) the chord slope that then adds +-p to it — the same
// schedule millerLoopCore's line evaluations are driven by, so the
// Miller loop's accumulated point matches a direct n*p computation.
func (p AffinePoint) Lambdas(exp []int) ([]algebra.Element, error) {
	m := len(exp)
	if m == 0 || (exp[m-1] != 1 && exp[m-1] != -1) {
		return nil, fmt.Errorf("curve: %w: most significant digit must be +-1", algebra.ErrInvalidInput)
	}
	t := p
	if exp[m-1] == -1 {
		t = p.Neg()
	}
	var lambdas []algebra.Element
	for i := m - 2; i >= 0; i-- {
		l, ok, err := t.Lambda(t)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("curve: %w: doubling slope undefined (vertical tangent)", algebra.ErrInvalidInput)
		}
		lambdas = append(lambdas, l)
		t = t.Double()
		if exp[i] == 1 {
			l, ok, err := t.Lambda(p)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("curve: %w: addition slope undefined (vertical line)", algebra.ErrInvalidInput)
			}
			lambdas = append(lambdas, l)
			t = t.Add(p)
		} else if exp[i] == -1 {
			np := p.Neg()
			l, ok, err := t.Lambda(np)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("curve: %w: addition slope undefined (vertical line)", algebra.ErrInvalidInput)
			}
			lambdas = append(lambdas, l)
			t = t.Add(np)
		}
	}
	return lambdas, nil
}

// Add implements the complete group law: infinities pass through,
// p == -q returns infinity, otherwise the standard chord-and-tangent
// construction via Lambda.
func (p AffinePoint) Add(q AffinePoint) AffinePoint {
	if p.infinity {
		return q
	}
	if q.infinity {
		return p
	}
	l, ok, err := p.Lambda(q)
	if err != nil {
		panic(fmt.Sprintf("curve: add: %v", err))
	}
	if !ok {
		return Infinity(p.params)
	}
	l2, _ := l.Mul(l)
	x3, _ := l2.Sub(p.x)
	x3, _ = x3.Sub(q.x)
	xDiff, _ := p.x.Sub(x3)
	y3, _ := l.Mul(xDiff)
	y3, _ = y3.Sub(p.y)
	return AffinePoint{x: x3, y: y3, params: p.params}
}

// Double returns p+p.
func (p AffinePoint) Double() AffinePoint {
	if p.infinity || p.y.IsZero() {
		return Infinity(p.params)
	}
	return p.Add(p)
}

// ScalarMult computes n*p via left-to-right double-and-add.
func (p AffinePoint) ScalarMult(n *big.Int) AffinePoint {
	if n.Sign() == 0 || p.infinity {
		return Infinity(p.params)
	}
	e := n
	base := p
	if n.Sign() < 0 {
		e = new(big.Int).Neg(n)
		base = p.Neg()
	}
	result := Infinity(p.params)
	for i := e.BitLen() - 1; i >= 0; i-- {
		result = result.Double()
		if e.Bit(i) == 1 {
			result = result.Add(base)
		}
	}
	return result
}

// LineEvaluation evaluates, at the point r, the line through p and q
// with slope lambda used by the Miller loop: y - p.y - lambda*(x - p.x).
// When p == -q (Lambda reports ok == false) the line is vertical and
// callers use VerticalLineEvaluation instead.
func LineEvaluation(p, q AffinePoint, lambda algebra.Element, rx, ry algebra.Element) (algebra.Element, error) {
	xDiff, err := rx.Sub(p.x)
	if err != nil {
		return nil, err
	}
	lx, err := lambda.Mul(xDiff)
	if err != nil {
		return nil, err
	}
	yDiff, err := ry.Sub(p.y)
	if err != nil {
		return nil, err
	}
	return yDiff.Sub(lx)
}

// VerticalLineEvaluation evaluates x - p.x at r, used by the Miller
// loop whenever the chord through p and its addend is vertical.
func VerticalLineEvaluation(p AffinePoint, rx algebra.Element) (algebra.Element, error) {
	return rx.Sub(p.x)
}

// Bytes encodes an affine point using arkworks' uncompressed format:
// x.Bytes() ++ y.Bytes(), with the final byte's bit 6 set for the
// point at infinity and bit 7 set when y is the lexicographically
// larger of {y, -y} (both coordinates zeroed for infinity).
func (p AffinePoint) Bytes(xByteLen, yByteLen int) ([]byte, error) {
	if p.infinity {
		out := make([]byte, xByteLen+yByteLen)
		out[len(out)-1] = 1 << 6
		return out, nil
	}
	xb := p.x.Bytes()
	yb := p.y.Bytes()
	out := append([]byte{}, xb...)
	out = append(out, yb...)
	negY := p.y.Neg()
	c, err := p.y.Cmp(negY)
	if err != nil {
		return nil, err
	}
	if c > 0 {
		out[len(out)-1] |= 1 << 7
	}
	return out, nil
}

// DeserializeAffine is the inverse of Bytes, using the supplied
// coordinate deserializer and fixed coordinate byte lengths.
func DeserializeAffine(params *Params, deserialize func([]byte) (algebra.Element, error), xByteLen, yByteLen int, data []byte) (AffinePoint, error) {
	if len(data) != xByteLen+yByteLen {
		return AffinePoint{}, fmt.Errorf("curve: %w: expected %d bytes, got %d", algebra.ErrMalformedEncoding, xByteLen+yByteLen, len(data))
	}
	last := data[len(data)-1]
	infinityFlag := last&(1<<6) != 0
	yLargestFlag := last&(1<<7) != 0
	masked := append([]byte{}, data...)
	masked[len(masked)-1] &^= (1 << 6) | (1 << 7)
	if infinityFlag {
		return Infinity(params), nil
	}
	x, err := deserialize(masked[:xByteLen])
	if err != nil {
		return AffinePoint{}, err
	}
	y, err := deserialize(masked[xByteLen:])
	if err != nil {
		return AffinePoint{}, err
	}
	negY := y.Neg()
	c, err := y.Cmp(negY)
	if err != nil {
		return AffinePoint{}, err
	}
	isLargest := c > 0
	if isLargest != yLargestFlag {
		y = negY
	}
	p, err := NewAffinePoint(params, x, y)
	if err != nil {
		return AffinePoint{}, fmt.Errorf("curve: %w: %v", algebra.ErrMalformedEncoding, err)
	}
	return p, nil
}

// ProjectivePoint is a point in projective (X:Y:Z) coordinates on a
// Params curve, satisfying Y^2*Z = X^3 + a*X*Z^2 + b*Z^3.
type ProjectivePoint struct {
	x, y, z algebra.Element
	params  *Params
}

// NewProjectivePoint wraps (x, y, z) without validating the curve
// equation; callers are expected to obtain projective points via
// ToProjective or arithmetic on already-valid points.
func NewProjectivePoint(params *Params, x, y, z algebra.Element) ProjectivePoint {
	return ProjectivePoint{x: x, y: y, z: z, params: params}
}

// ProjectiveInfinity returns the point at infinity (0:1:0).
func ProjectiveInfinity(params *Params) ProjectivePoint {
	return ProjectivePoint{x: params.A.Zero(), y: params.A.One(), z: params.A.Zero(), params: params}
}

func (p ProjectivePoint) X() algebra.Element { return p.x }
func (p ProjectivePoint) Y() algebra.Element { return p.y }
func (p ProjectivePoint) Z() algebra.Element { return p.z }
func (p ProjectivePoint) Params() *Params    { return p.params }

// IsInfinity reports whether Z == 0. The reference implementation this
// library is modeled on instead inspected a y-coordinate bit pattern
// left over from affine conversion, which misclassified some finite
// points; checking Z directly is the correct test for the point at
// infinity in projective coordinates.
func (p ProjectivePoint) IsInfinity() bool { return p.z.IsZero() }

// ToProjective lifts an affine point to projective coordinates,
// (x, y, 1) or (0, 1, 0) for infinity.
func ToProjective(p AffinePoint) ProjectivePoint {
	if p.infinity {
		return ProjectiveInfinity(p.params)
	}
	return ProjectivePoint{x: p.x, y: p.y, z: p.x.One(), params: p.params}
}

// ToAffine projects back down, dividing through by Z.
func (p ProjectivePoint) ToAffine() (AffinePoint, error) {
	if p.IsInfinity() {
		return Infinity(p.params), nil
	}
	zInv, err := p.z.Invert()
	if err != nil {
		return AffinePoint{}, err
	}
	x, err := p.x.Mul(zInv)
	if err != nil {
		return AffinePoint{}, err
	}
	y, err := p.y.Mul(zInv)
	if err != nil {
		return AffinePoint{}, err
	}
	return AffinePoint{x: x, y: y, params: p.params}, nil
}

// Add implements the projective group law by round-tripping through
// affine coordinates. The tower's field inversions are cheap relative
// to the complexity of a fully formula'd projective addition, and the
// reference implementation takes the same shortcut.
func (p ProjectivePoint) Add(q ProjectivePoint) (ProjectivePoint, error) {
	pa, err := p.ToAffine()
	if err != nil {
		return ProjectivePoint{}, err
	}
	qa, err := q.ToAffine()
	if err != nil {
		return ProjectivePoint{}, err
	}
	return ToProjective(pa.Add(qa)), nil
}

// Neg negates y.
func (p ProjectivePoint) Neg() ProjectivePoint {
	return ProjectivePoint{x: p.x, y: p.y.Neg(), z: p.z, params: p.params}
}

// ScalarMult computes n*p via left-to-right double-and-add in affine
// coordinates, then lifts the result back to projective form.
func (p ProjectivePoint) ScalarMult(n *big.Int) (ProjectivePoint, error) {
	pa, err := p.ToAffine()
	if err != nil {
		return ProjectivePoint{}, err
	}
	return ToProjective(pa.ScalarMult(n)), nil
}

// NAF returns the non-adjacent form of n: a canonical signed-binary
// digit sequence (no two consecutive nonzero digits) with index 0 the
// least significant digit and, for nonzero n, the last digit +-1
// (NAF(0) is [0]), suitable as a Miller-loop exponent or an input to
// AffinePoint.Lambdas.
func NAF(n *big.Int) []int {
	e := new(big.Int).Abs(n)
	var digits []int
	two := big.NewInt(2)
	four := big.NewInt(4)
	for e.Sign() != 0 {
		if e.Bit(0) == 1 {
			mod4 := new(big.Int).Mod(e, four)
			if mod4.Cmp(big.NewInt(3)) == 0 {
				digits = append(digits, -1)
				e.Add(e, big.NewInt(1))
			} else {
				digits = append(digits, 1)
				e.Sub(e, big.NewInt(1))
			}
		} else {
			digits = append(digits, 0)
		}
		e.Div(e, two)
	}
	if n.Sign() < 0 {
		for i := range digits {
			digits[i] = -digits[i]
		}
	}
	if len(digits) == 0 {
		digits = []int{0}
	}
	return digits
}
