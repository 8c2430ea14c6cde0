package domain

import (
	"math"
	"strings"
)

// MonetaryAmount is a strictly positive amount. The zero value means "absent".
type MonetaryAmount struct{ value float64 }

func NewMonetaryAmount(v float64) (MonetaryAmount, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MonetaryAmount{}, invalid("amount", "must be a finite number")
	}
	if v <= 0 {
		return MonetaryAmount{}, invalid("amount", "must be positive")
	}
	return MonetaryAmount{value: v}, nil
}

func (m MonetaryAmount) Value() float64 { return m.value }

// IsZero reports whether m was never constructed.
func (m MonetaryAmount) IsZero() bool { return m.value == 0 }

// IdentityToken is a non-blank opaque identifier.
type IdentityToken struct{ id string }

func NewIdentityToken(s string) (IdentityToken, error) {
	if strings.TrimSpace(s) == "" {
		return IdentityToken{}, invalid("identity", "cannot be empty")
	}
	return IdentityToken{id: s}, nil
}

func (t IdentityToken) String() string { return t.id }

func (t IdentityToken) IsZero() bool { return t.id == "" }
