package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ConversionEdge defines a multiplicative conversion between two units:
// quantity_in_to = quantity_in_from * Factor.
// An edge with a non-empty ItemCode applies only to that stock item and
// takes priority over global edges during resolution.
type ConversionEdge struct {
	FromUnit UnitSymbol
	ToUnit   UnitSymbol
	Factor   decimal.Decimal
	ItemCode ItemCode // empty = global edge
	Notes    string
}

// NewConversionEdge creates a validated global ConversionEdge
func NewConversionEdge(from, to UnitSymbol, factor decimal.Decimal) (*ConversionEdge, error) {
	if string(from) == "" {
		return nil, fmt.Errorf("from unit cannot be empty")
	}
	if string(to) == "" {
		return nil, fmt.Errorf("to unit cannot be empty")
	}
	if from == to {
		return nil, fmt.Errorf("conversion edge cannot map a unit to itself: %s", from)
	}
	if !factor.IsPositive() {
		return nil, fmt.Errorf("conversion factor must be positive, got %s", factor)
	}

	return &ConversionEdge{
		FromUnit: from,
		ToUnit:   to,
		Factor:   factor,
	}, nil
}

// NewItemConversionEdge creates a validated item-scoped ConversionEdge
func NewItemConversionEdge(item ItemCode, from, to UnitSymbol, factor decimal.Decimal) (*ConversionEdge, error) {
	if string(item) == "" {
		return nil, fmt.Errorf("item code cannot be empty for an item-scoped edge")
	}
	edge, err := NewConversionEdge(from, to, factor)
	if err != nil {
		return nil, err
	}
	edge.ItemCode = item
	return edge, nil
}

// Scoped reports whether the edge applies to a single item
func (e *ConversionEdge) Scoped() bool {
	return e.ItemCode != ""
}

// Reciprocal returns the factor for the reverse direction
func (e *ConversionEdge) Reciprocal() decimal.Decimal {
	return decimal.NewFromInt(1).Div(e.Factor)
}
