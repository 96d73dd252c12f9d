package polynomial

import (
	"github.com/mr-shifu/mpc-paillier/core/math/ring"
	"github.com/pkg/errors"
)

var (
	ErrEmptyDomain      = errors.New("polynomial: empty interpolation domain")
	ErrDuplicatePoints  = errors.New("polynomial: interpolation domain contains duplicate points")
	ErrMismatchedFields = errors.New("polynomial: interpolation points belong to different fields")
)

// Lagrange returns the Lagrange coefficients at 0 for every point of the
// interpolation domain, in the order of the domain. The points must belong
// to a prime field ℤₚ.
func Lagrange(interpolationDomain []ring.ZMod) ([]ring.ZMod, error) {
	if len(interpolationDomain) == 0 {
		return nil, ErrEmptyDomain
	}
	coefficients := make([]ring.ZMod, len(interpolationDomain))
	for j := range interpolationDomain {
		l, err := lagrange(interpolationDomain, j)
		if err != nil {
			return nil, err
		}
		coefficients[j] = l
	}
	return coefficients, nil
}

// LagrangeSingle returns the Lagrange coefficient at 0 of the j-th point of the domain.
func LagrangeSingle(interpolationDomain []ring.ZMod, j int) (ring.ZMod, error) {
	if j < 0 || j >= len(interpolationDomain) {
		return ring.ZMod{}, errors.New("polynomial: index out of interpolation domain")
	}
	return lagrange(interpolationDomain, j)
}

// lagrange returns the Lagrange coefficient lⱼ(0), for j in the interpolation domain.
//
// The following formulas are taken from
// https://en.wikipedia.org/wiki/Lagrange_polynomial
//
//	           x₀ ⋅⋅⋅ xⱼ₋₁ ⋅ xⱼ₊₁ ⋅⋅⋅ xₖ
//	lⱼ(0) = ------------------------------------------------
//	        (x₀ - xⱼ)⋅⋅⋅(xⱼ₋₁ - xⱼ)⋅(xⱼ₊₁ - xⱼ)⋅⋅⋅(xₖ - xⱼ)
func lagrange(interpolationDomain []ring.ZMod, j int) (ring.ZMod, error) {
	xJ := interpolationDomain[j]
	m := xJ.Modulus()
	numerator := ring.NewZModUint64(1, m)
	denominator := ring.NewZModUint64(1, m)

	for i, xI := range interpolationDomain {
		if i == j {
			continue
		}
		if !xI.SameModulus(xJ) {
			return ring.ZMod{}, ErrMismatchedFields
		}
		numerator = numerator.Mul(xI)
		denominator = denominator.Mul(xI.Sub(xJ))
	}

	inv, err := denominator.Inverse()
	if err != nil {
		return ring.ZMod{}, ErrDuplicatePoints
	}
	return numerator.Mul(inv), nil
}
