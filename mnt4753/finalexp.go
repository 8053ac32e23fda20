package mnt4753

import "github.com/go-pairing/pairing/internal/algebra"

// EasyExponentiation computes f.frob(2) * f^-1.
func EasyExponentiation(f algebra.Element) (algebra.Element, error) {
	fInv, err := f.Invert()
	if err != nil {
		return nil, err
	}
	return f.Frobenius(2).Mul(fInv)
}

// HardExponentiation computes f.frob(1) * f^u * f.
func HardExponentiation(f algebra.Element) (algebra.Element, error) {
	fu, err := f.Pow(SeedU)
	if err != nil {
		return nil, err
	}
	frob1, err := f.Frobenius(1).Mul(fu)
	if err != nil {
		return nil, err
	}
	return frob1.Mul(f)
}
