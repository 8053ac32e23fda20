// Package groth16 implements the externally-driven (de)serialization
// of a Groth16 verifying key and proof: parsing the arkworks wire
// format into points on whichever pairing curve a caller configures.
// It does not implement proof verification itself — that is a SNARK
// verifier's concern, layered on top of this library's pairing
// primitives.
package groth16

import (
	"encoding/binary"
	"fmt"

	"github.com/go-pairing/pairing/curve"
	"github.com/go-pairing/pairing/internal/algebra"
)

// Config binds the generic (de)serialization logic below to one
// curve's concrete G1/G2 point encodings.
type Config struct {
	SerializeG1   func(curve.AffinePoint) ([]byte, error)
	DeserializeG1 func([]byte) (curve.AffinePoint, error)
	SerializeG2   func(curve.AffinePoint) ([]byte, error)
	DeserializeG2 func([]byte) (curve.AffinePoint, error)
	G1ByteLen     int
	G2ByteLen     int
}

// VerifyingKey is a Groth16 verifying key: alpha, beta, gamma, delta
// and the ABC input-commitment points.
type VerifyingKey struct {
	Alpha    curve.AffinePoint
	Beta     curve.AffinePoint
	Gamma    curve.AffinePoint
	Delta    curve.AffinePoint
	GammaABC []curve.AffinePoint
}

// Proof is a Groth16 proof: A, C in G1, B in G2.
type Proof struct {
	A curve.AffinePoint
	B curve.AffinePoint
	C curve.AffinePoint
}

// DeserializeVK parses alpha (G1), beta, gamma, delta (G2), an 8-byte
// little-endian count, then that many G1 points.
func DeserializeVK(cfg *Config, data []byte) (*VerifyingKey, error) {
	g1Len := 2 * cfg.G1ByteLen
	g2Len := 2 * cfg.G2ByteLen
	minLen := g1Len + 3*g2Len + 8
	if len(data) < minLen {
		return nil, fmt.Errorf("groth16: %w: verifying key blob too short", algebra.ErrMalformedEncoding)
	}
	off := 0
	alpha, err := cfg.DeserializeG1(data[off : off+g1Len])
	if err != nil {
		return nil, err
	}
	off += g1Len

	beta, err := cfg.DeserializeG2(data[off : off+g2Len])
	if err != nil {
		return nil, err
	}
	off += g2Len

	gamma, err := cfg.DeserializeG2(data[off : off+g2Len])
	if err != nil {
		return nil, err
	}
	off += g2Len

	delta, err := cfg.DeserializeG2(data[off : off+g2Len])
	if err != nil {
		return nil, err
	}
	off += g2Len

	if len(data) < off+8 {
		return nil, fmt.Errorf("groth16: %w: verifying key blob missing gamma_abc count", algebra.ErrMalformedEncoding)
	}
	nABC := binary.LittleEndian.Uint64(data[off : off+8])
	off += 8

	if uint64(len(data)-off) < nABC*uint64(g1Len) {
		return nil, fmt.Errorf("groth16: %w: verifying key blob shorter than declared gamma_abc count", algebra.ErrMalformedEncoding)
	}
	abc := make([]curve.AffinePoint, 0, nABC)
	for i := uint64(0); i < nABC; i++ {
		p, err := cfg.DeserializeG1(data[off : off+g1Len])
		if err != nil {
			return nil, err
		}
		abc = append(abc, p)
		off += g1Len
	}

	return &VerifyingKey{Alpha: alpha, Beta: beta, Gamma: gamma, Delta: delta, GammaABC: abc}, nil
}

// SerializeVK is the inverse of DeserializeVK.
func SerializeVK(cfg *Config, vk *VerifyingKey) ([]byte, error) {
	var out []byte
	parts := []curve.AffinePoint{vk.Alpha}
	for _, p := range parts {
		b, err := cfg.SerializeG1(p)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	for _, p := range []curve.AffinePoint{vk.Beta, vk.Gamma, vk.Delta} {
		b, err := cfg.SerializeG2(p)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	nABC := make([]byte, 8)
	binary.LittleEndian.PutUint64(nABC, uint64(len(vk.GammaABC)))
	out = append(out, nABC...)
	for _, p := range vk.GammaABC {
		b, err := cfg.SerializeG1(p)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// DeserializeProof parses A (G1) || B (G2) || C (G1).
func DeserializeProof(cfg *Config, data []byte) (*Proof, error) {
	g1Len := 2 * cfg.G1ByteLen
	g2Len := 2 * cfg.G2ByteLen
	if len(data) != 2*g1Len+g2Len {
		return nil, fmt.Errorf("groth16: %w: proof blob has the wrong length", algebra.ErrMalformedEncoding)
	}
	off := 0
	a, err := cfg.DeserializeG1(data[off : off+g1Len])
	if err != nil {
		return nil, err
	}
	off += g1Len
	b, err := cfg.DeserializeG2(data[off : off+g2Len])
	if err != nil {
		return nil, err
	}
	off += g2Len
	c, err := cfg.DeserializeG1(data[off : off+g1Len])
	if err != nil {
		return nil, err
	}
	return &Proof{A: a, B: b, C: c}, nil
}

// SerializeProof is the inverse of DeserializeProof.
func SerializeProof(cfg *Config, p *Proof) ([]byte, error) {
	var out []byte
	a, err := cfg.SerializeG1(p.A)
	if err != nil {
		return nil, err
	}
	out = append(out, a...)
	b, err := cfg.SerializeG2(p.B)
	if err != nil {
		return nil, err
	}
	out = append(out, b...)
	c, err := cfg.SerializeG1(p.C)
	if err != nil {
		return nil, err
	}
	out = append(out, c...)
	return out, nil
}
