package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BOMLine is one component requirement of a BOM. Quantity is per one
// output unit of the owning BOM, stated in Unit (which may differ from
// the component item's inventory unit).
type BOMLine struct {
	ComponentCode ItemCode        `validate:"required"`
	Quantity      decimal.Decimal // per one output unit
	Unit          UnitSymbol      `validate:"required"`
	WastePercent  decimal.Decimal
	UnitCost      decimal.Decimal // cost snapshot per Unit; zero = use item price
}

// NewBOMLine creates a validated BOMLine
func NewBOMLine(component ItemCode, quantity decimal.Decimal, unit UnitSymbol, wastePercent decimal.Decimal) (*BOMLine, error) {
	if string(component) == "" {
		return nil, fmt.Errorf("component code cannot be empty")
	}
	if string(unit) == "" {
		return nil, fmt.Errorf("line unit cannot be empty for component %s", component)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("line quantity must be positive, got %s", quantity)
	}
	if wastePercent.IsNegative() {
		return nil, fmt.Errorf("waste percentage cannot be negative, got %s", wastePercent)
	}

	return &BOMLine{
		ComponentCode: component,
		Quantity:      quantity,
		Unit:          unit,
		WastePercent:  wastePercent,
	}, nil
}

// QuantityWithWaste returns Quantity scaled by the waste allowance
func (l BOMLine) QuantityWithWaste() decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Add(l.WastePercent.Div(decimal.NewFromInt(100)))
	return l.Quantity.Mul(multiplier)
}

// BOM is one versioned bill of materials for a product. A production
// "run" consumes the Lines and yields OutputQuantity of the product in
// OutputUnit. Nesting is expressed by a line's component having its own
// active BOM; there is no separate sub-BOM pointer.
type BOM struct {
	Code        string   `validate:"required"`
	Version     string   `validate:"required"`
	Active      bool
	ProductCode ItemCode `validate:"required"`

	OutputQuantity decimal.Decimal
	OutputUnit     UnitSymbol `validate:"required"`
	Lines          []BOMLine  `validate:"min=1,dive"`

	LaborCostPerUnit    decimal.Decimal
	OverheadCostPerUnit decimal.Decimal
	MarkupPercent       decimal.Decimal

	Description string
}

// NewBOM creates a BOM shell with validated identity fields. Lines are
// appended by the caller; full structural validation happens at
// activation time through the BOM validator.
func NewBOM(code, version string, product ItemCode, outputQuantity decimal.Decimal, outputUnit UnitSymbol) (*BOM, error) {
	if code == "" {
		return nil, fmt.Errorf("bom code cannot be empty")
	}
	if version == "" {
		return nil, fmt.Errorf("bom version cannot be empty")
	}
	if string(product) == "" {
		return nil, fmt.Errorf("product code cannot be empty")
	}
	if string(outputUnit) == "" {
		return nil, fmt.Errorf("output unit cannot be empty")
	}
	if !outputQuantity.IsPositive() {
		return nil, fmt.Errorf("output quantity must be positive, got %s", outputQuantity)
	}

	return &BOM{
		Code:           code,
		Version:        version,
		ProductCode:    product,
		OutputQuantity: outputQuantity,
		OutputUnit:     outputUnit,
	}, nil
}

// MarkupMultiplier returns (1 + MarkupPercent/100)
func (b *BOM) MarkupMultiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Add(b.MarkupPercent.Div(decimal.NewFromInt(100)))
}
