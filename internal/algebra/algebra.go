// Package algebra defines the contract shared by every field in the
// tower: Fq itself and every quadratic/cubic extension built on top of
// it. Curve and pairing code is written once against this interface
// instead of once per concrete field, the Go rendering of the duck
// typing the reference implementation relies on.
package algebra

import (
	"errors"
	"math/big"
)

var (
	// ErrFieldMismatch is returned when a binary operation is attempted
	// between elements of two different field configurations.
	ErrFieldMismatch = errors.New("algebra: operands belong to different fields")
	// ErrNotInvertible is returned by Invert on the zero element.
	ErrNotInvertible = errors.New("algebra: zero element has no inverse")
	// ErrZeroToZero is returned by Pow(0) on the zero element.
	ErrZeroToZero = errors.New("algebra: 0^0 is undefined")
	// ErrNotImplemented marks a deliberately unimplemented code path
	// (the cubic denominator-elimination mode of the Miller loop).
	ErrNotImplemented = errors.New("algebra: not implemented")
	// ErrMalformedEncoding is returned by deserialization routines that
	// receive the wrong number of bytes or bytes decoding to a point
	// that does not satisfy its curve equation.
	ErrMalformedEncoding = errors.New("algebra: malformed encoding")
	// ErrInvalidInput covers constructor-time invariant violations that
	// are not specifically a field mismatch (singular curve, point off
	// the curve, non-residue that is actually a residue, signed-binary
	// expansion with a zero leading digit, ...).
	ErrInvalidInput = errors.New("algebra: invalid input")
)

// Element is a value of some field in the tower: Fq, or a quadratic/
// cubic extension of a smaller field. Every operation returns a fresh
// value; elements are never mutated after construction. Two elements
// interoperate only when they belong to the same field (the same
// modulus, non-residue and base field) — binary operations report a
// mismatch as ErrFieldMismatch rather than silently promoting one
// operand.
type Element interface {
	Add(Element) (Element, error)
	Sub(Element) (Element, error)
	Mul(Element) (Element, error)
	Neg() Element
	Invert() (Element, error)
	// Pow raises the element to the (possibly negative) integer power
	// n, using square-and-multiply on |n| and inverting once if n < 0.
	// Pow(0) on the zero element returns ErrZeroToZero.
	Pow(n *big.Int) (Element, error)
	IsZero() bool
	Equal(Element) bool
	// Frobenius computes x^(q^n) where q is the characteristic of the
	// prime field at the bottom of the tower.
	Frobenius(n int) Element
	// ScalarMul multiplies every coordinate by the integer n; this is
	// how a prime-field element is promoted into any larger field in
	// its tower (scalar-multiply the larger field's identity).
	ScalarMul(n *big.Int) Element
	Zero() Element
	One() Element
	// Bytes returns the little-endian arkworks-style encoding of the
	// element: for Fq, ceil((bitlen(q)+8)/8) bytes; for an extension,
	// the concatenation of its coordinates' encodings from c0 upward.
	Bytes() []byte
	// Cmp performs the lexicographic comparison used by point
	// serialization: coordinate-by-coordinate from the most
	// significant down to the least, each coordinate compared as an
	// unsigned integer. Returns an error if the operand is not of the
	// same field.
	Cmp(Element) (int, error)
}
