// Package ring defines the minimal ring capability polynomials are evaluated
// over, together with a few concrete rings.
package ring

import "io"

// Element is a value of a commutative ring. Operations never modify the
// receiver or the argument, so elements can be copied and shared freely.
type Element[T any] interface {
	Add(T) T
	Mul(T) T
	IsZero() bool
	Equal(T) bool
}

// Sampler draws a uniformly random ring element from rand.
type Sampler[T any] func(rand io.Reader) (T, error)
