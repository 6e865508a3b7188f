// Package economy provides the product model and the market reference price
// that all percentage-based negotiation thresholds derive from.
package economy

import (
	"errors"
	"fmt"
)

// ErrInvalidMarketPrice rejects a non-positive market reference at session start.
var ErrInvalidMarketPrice = errors.New("market price must be positive")

// QualityGrade classifies produce quality for fair-value adjustment.
type QualityGrade string

const (
	GradeA      QualityGrade = "A"
	GradeB      QualityGrade = "B"
	GradeExport QualityGrade = "Export"
)

// Product is the single item under negotiation.
type Product struct {
	Name      string       `json:"name"`
	Category  string       `json:"category"`
	Quantity  int          `json:"quantity"`
	Grade     QualityGrade `json:"grade"`
	Origin    string       `json:"origin"`
	BasePrice float64      `json:"base_price"` // Market reference price
}

// Reference is the fixed market price for a session. Immutable once created.
type Reference struct {
	Price float64 `json:"price"`
}

// NewReference validates and wraps a market price.
func NewReference(price float64) (Reference, error) {
	if price <= 0 {
		return Reference{}, fmt.Errorf("%w: %.2f", ErrInvalidMarketPrice, price)
	}
	return Reference{Price: price}, nil
}

// Reference returns the product's market reference.
func (p Product) Reference() (Reference, error) {
	return NewReference(p.BasePrice)
}

// FairValue estimates a grade-adjusted fair price relative to market.
// Export grade commands a small premium; B grade a discount.
func (p Product) FairValue() float64 {
	switch p.Grade {
	case GradeExport:
		return p.BasePrice * 1.02
	case GradeA:
		return p.BasePrice * 0.98
	case GradeB:
		return p.BasePrice * 0.92
	default:
		return p.BasePrice
	}
}
