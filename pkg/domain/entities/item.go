package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemCode is a unique stock item identifier
type ItemCode string

// ItemType classifies a stock item by its role in production
type ItemType int

const (
	RawMaterial ItemType = iota
	Consumable
	Intermediate
	FinishedGood
)

// String method for ItemType enum
func (t ItemType) String() string {
	switch t {
	case RawMaterial:
		return "RawMaterial"
	case Consumable:
		return "Consumable"
	case Intermediate:
		return "Intermediate"
	case FinishedGood:
		return "FinishedGood"
	default:
		return "Unknown"
	}
}

// ParseItemType parses an item type name as written in catalog files
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "RawMaterial", "material":
		return RawMaterial, nil
	case "Consumable", "consumable":
		return Consumable, nil
	case "Intermediate", "semi_finished":
		return Intermediate, nil
	case "FinishedGood", "product":
		return FinishedGood, nil
	default:
		return 0, fmt.Errorf("unknown item type: %q", s)
	}
}

// StockItem represents a stock-keeping item with its master data.
// Quantity counters live in the inventory ledger, not here.
type StockItem struct {
	Code          ItemCode
	Name          string
	InventoryUnit UnitSymbol
	UnitPrice     decimal.Decimal
	Type          ItemType

	// PurchasedOnly marks an item whose requirement is always satisfied by
	// stock or purchase. Explosion never recurses below such an item even
	// when an active BOM exists for it.
	PurchasedOnly bool
}

// NewStockItem creates a validated StockItem
func NewStockItem(code ItemCode, name string, inventoryUnit UnitSymbol, unitPrice decimal.Decimal, itemType ItemType) (*StockItem, error) {
	if string(code) == "" {
		return nil, fmt.Errorf("item code cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("item name cannot be empty")
	}
	if string(inventoryUnit) == "" {
		return nil, fmt.Errorf("inventory unit cannot be empty for item %s", code)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}

	return &StockItem{
		Code:          code,
		Name:          name,
		InventoryUnit: inventoryUnit,
		UnitPrice:     unitPrice,
		Type:          itemType,
	}, nil
}
