package memory

import (
	"fmt"
	"sync"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/domain/repositories"
)

type edgeKey struct {
	item entities.ItemCode
	from entities.UnitSymbol
	to   entities.UnitSymbol
}

// CatalogRepository provides in-memory storage for the unit catalog
// and conversion edges. Edges are indexed in their stored direction;
// the resolver handles reciprocal lookups.
type CatalogRepository struct {
	mu    sync.RWMutex
	units map[entities.UnitSymbol]*entities.Unit
	bases map[entities.UnitCategory][]*entities.Unit
	edges map[edgeKey]*entities.ConversionEdge
}

// NewCatalogRepository creates an empty in-memory catalog repository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		units: make(map[entities.UnitSymbol]*entities.Unit),
		bases: make(map[entities.UnitCategory][]*entities.Unit),
		edges: make(map[edgeKey]*entities.ConversionEdge),
	}
}

// Verify interface compliance
var (
	_ repositories.UnitRepository       = (*CatalogRepository)(nil)
	_ repositories.ConversionRepository = (*CatalogRepository)(nil)
)

// LoadUnits loads units into the repository
func (r *CatalogRepository) LoadUnits(units []*entities.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, unit := range units {
		if _, exists := r.units[unit.Symbol]; exists {
			return fmt.Errorf("duplicate unit: %s", unit.Symbol)
		}
		r.units[unit.Symbol] = unit
		if unit.IsBase {
			r.bases[unit.Category] = append(r.bases[unit.Category], unit)
		}
	}
	return nil
}

// GetUnit returns a unit by symbol
func (r *CatalogRepository) GetUnit(symbol entities.UnitSymbol) (*entities.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	unit, exists := r.units[symbol]
	if !exists {
		return nil, fmt.Errorf("unit not found: %s", symbol)
	}
	return unit, nil
}

// GetAllUnits returns all units
func (r *CatalogRepository) GetAllUnits() ([]*entities.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	units := make([]*entities.Unit, 0, len(r.units))
	for _, unit := range r.units {
		units = append(units, unit)
	}
	return units, nil
}

// BaseUnit returns the single base unit of a category, or false when
// the category has zero or multiple bases.
func (r *CatalogRepository) BaseUnit(category entities.UnitCategory) (*entities.Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bases := r.bases[category]
	if len(bases) != 1 {
		return nil, false
	}
	return bases[0], true
}

// LoadEdges loads conversion edges into the repository
func (r *CatalogRepository) LoadEdges(edges []*entities.ConversionEdge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, edge := range edges {
		key := edgeKey{item: edge.ItemCode, from: edge.FromUnit, to: edge.ToUnit}
		if _, exists := r.edges[key]; exists {
			return fmt.Errorf("duplicate conversion edge: %s -> %s (item %q)", edge.FromUnit, edge.ToUnit, edge.ItemCode)
		}
		r.edges[key] = edge
	}
	return nil
}

// GetAllEdges returns all conversion edges
func (r *CatalogRepository) GetAllEdges() ([]*entities.ConversionEdge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	edges := make([]*entities.ConversionEdge, 0, len(r.edges))
	for _, edge := range r.edges {
		edges = append(edges, edge)
	}
	return edges, nil
}

// GetEdge returns a global edge in its stored direction
func (r *CatalogRepository) GetEdge(from, to entities.UnitSymbol) (*entities.ConversionEdge, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	edge, exists := r.edges[edgeKey{from: from, to: to}]
	return edge, exists
}

// GetItemEdge returns an item-scoped edge in its stored direction
func (r *CatalogRepository) GetItemEdge(item entities.ItemCode, from, to entities.UnitSymbol) (*entities.ConversionEdge, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	edge, exists := r.edges[edgeKey{item: item, from: from, to: to}]
	return edge, exists
}
