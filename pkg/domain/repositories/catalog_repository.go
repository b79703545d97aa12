package repositories

import "github.com/akfactory/planning/pkg/domain/entities"

// UnitRepository provides access to the unit catalog
type UnitRepository interface {
	GetUnit(symbol entities.UnitSymbol) (*entities.Unit, error)
	GetAllUnits() ([]*entities.Unit, error)

	// BaseUnit returns the canonical base unit of a category. The second
	// return is false when the category has no base unit or more than one
	// (the one-base-per-category invariant is soft; resolution degrades
	// instead of crashing).
	BaseUnit(category entities.UnitCategory) (*entities.Unit, bool)

	LoadUnits(units []*entities.Unit) error
}

// ConversionRepository provides access to conversion edges
type ConversionRepository interface {
	// GetEdge returns a global edge for the pair in the stored direction
	GetEdge(from, to entities.UnitSymbol) (*entities.ConversionEdge, bool)

	// GetItemEdge returns an item-scoped edge for the pair in the stored direction
	GetItemEdge(item entities.ItemCode, from, to entities.UnitSymbol) (*entities.ConversionEdge, bool)

	GetAllEdges() ([]*entities.ConversionEdge, error)
	LoadEdges(edges []*entities.ConversionEdge) error
}
