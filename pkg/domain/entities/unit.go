package entities

import "fmt"

// UnitSymbol is the unique short symbol of a unit of measure (e.g. "Kg", "mm", "Pcs")
type UnitSymbol string

// UnitCategory groups units that measure the same physical dimension
type UnitCategory int

const (
	CategoryCount UnitCategory = iota
	CategoryWeight
	CategoryLength
	CategoryVolume
	CategoryArea
)

// String method for UnitCategory enum
func (c UnitCategory) String() string {
	switch c {
	case CategoryCount:
		return "Count"
	case CategoryWeight:
		return "Weight"
	case CategoryLength:
		return "Length"
	case CategoryVolume:
		return "Volume"
	case CategoryArea:
		return "Area"
	default:
		return "Unknown"
	}
}

// ParseUnitCategory parses a category name as written in catalog files
func ParseUnitCategory(s string) (UnitCategory, error) {
	switch s {
	case "Count":
		return CategoryCount, nil
	case "Weight":
		return CategoryWeight, nil
	case "Length":
		return CategoryLength, nil
	case "Volume":
		return CategoryVolume, nil
	case "Area":
		return CategoryArea, nil
	default:
		return 0, fmt.Errorf("unknown unit category: %q", s)
	}
}

// Unit represents a unit of measure in the catalog
type Unit struct {
	Symbol   UnitSymbol
	Name     string
	Category UnitCategory
	IsBase   bool // canonical base unit of its category
}

// NewUnit creates a validated Unit
func NewUnit(symbol UnitSymbol, name string, category UnitCategory, isBase bool) (*Unit, error) {
	if string(symbol) == "" {
		return nil, fmt.Errorf("unit symbol cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("unit name cannot be empty")
	}

	return &Unit{
		Symbol:   symbol,
		Name:     name,
		Category: category,
		IsBase:   isBase,
	}, nil
}
