package polynomial

import (
	"io"

	"github.com/mr-shifu/mpc-paillier/core/math/ring"
	"github.com/pkg/errors"
)

var ErrEmptyPolynomial = errors.New("polynomial: cannot evaluate a polynomial without coefficients")

// Polynomial represents f(X) = a₀ + a₁⋅X + … + aₙ⋅Xⁿ over a ring T.
//
// The coefficients are stored as given, trailing zeros included, so n may
// exceed the actual degree of f. A Polynomial is immutable once constructed.
type Polynomial[T ring.Element[T]] struct {
	coefficients []T
}

// FromCoefficients constructs f from a₀, …, aₙ, where aᵢ is the coefficient of Xⁱ.
func FromCoefficients[T ring.Element[T]](coefficients []T) *Polynomial[T] {
	c := make([]T, len(coefficients))
	copy(c, coefficients)
	return &Polynomial[T]{coefficients: c}
}

// Sample draws a polynomial with degree+1 uniformly random coefficients.
// rand must be a cryptographically secure source.
func Sample[T ring.Element[T]](degree uint16, sampler ring.Sampler[T], rand io.Reader) (*Polynomial[T], error) {
	coefficients := make([]T, int(degree)+1)
	for i := range coefficients {
		c, err := sampler(rand)
		if err != nil {
			return nil, errors.WithMessage(err, "polynomial: failed to sample coefficient")
		}
		coefficients[i] = c
	}
	return &Polynomial[T]{coefficients: coefficients}, nil
}

// SampleWithFreeTerm samples f as in Sample and then fixes a₀ = freeTerm.
// This is the dealing polynomial of Shamir's scheme: degree+1 evaluations
// determine f and therefore the free term.
func SampleWithFreeTerm[T ring.Element[T]](degree uint16, freeTerm T, sampler ring.Sampler[T], rand io.Reader) (*Polynomial[T], error) {
	p, err := Sample(degree, sampler, rand)
	if err != nil {
		return nil, err
	}
	p.coefficients[0] = freeTerm
	return p, nil
}

// Evaluate returns f(x) using Horner's method: https://en.wikipedia.org/wiki/Horner%27s_method
func (p *Polynomial[T]) Evaluate(x T) (T, error) {
	if len(p.coefficients) == 0 {
		var zero T
		return zero, ErrEmptyPolynomial
	}

	n := len(p.coefficients) - 1
	result := p.coefficients[n]
	for i := n - 1; i >= 0; i-- {
		// bᵢ = bᵢ₊₁ * x + aᵢ
		result = result.Mul(x).Add(p.coefficients[i])
	}
	return result, nil
}

// FreeTerm returns a₀.
func (p *Polynomial[T]) FreeTerm() (T, error) {
	if len(p.coefficients) == 0 {
		var zero T
		return zero, ErrEmptyPolynomial
	}
	return p.coefficients[0], nil
}

// Coefficients returns a copy of a₀, …, aₙ.
func (p *Polynomial[T]) Coefficients() []T {
	c := make([]T, len(p.coefficients))
	copy(c, p.coefficients)
	return c
}

// Degree is the index of the last non-zero coefficient, or 0 for the zero
// polynomial.
func (p *Polynomial[T]) Degree() int {
	for i := len(p.coefficients) - 1; i > 0; i-- {
		if !p.coefficients[i].IsZero() {
			return i
		}
	}
	return 0
}
