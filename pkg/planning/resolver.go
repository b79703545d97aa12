package planning

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/domain/repositories"
)

// Resolver resolves conversion factors between units. Resolution order:
// item-scoped edge, global edge, composition through the category base
// unit, identity for equal units. It is a pure function of the loaded
// catalog and may be shared across goroutines.
type Resolver struct {
	units repositories.UnitRepository
	edges repositories.ConversionRepository
	log   zerolog.Logger
}

// NewResolver creates a resolver over the given catalog repositories
func NewResolver(units repositories.UnitRepository, edges repositories.ConversionRepository, log zerolog.Logger) *Resolver {
	return &Resolver{units: units, edges: edges, log: log}
}

// Resolve returns the factor f such that qty_in_to = qty_in_from * f.
// The item code scopes the lookup to item-specific overrides and may be
// empty for a purely global resolution.
func (r *Resolver) Resolve(item entities.ItemCode, from, to entities.UnitSymbol) (decimal.Decimal, error) {
	if factor, ok := r.directFactor(item, from, to); ok {
		return factor, nil
	}

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	if factor, ok := r.viaBase(item, from, to); ok {
		r.log.Debug().
			Str("from", string(from)).
			Str("to", string(to)).
			Str("factor", factor.String()).
			Msg("conversion resolved via base unit")
		return factor, nil
	}

	return decimal.Decimal{}, &UnresolvedConversionError{From: from, To: to, Item: item}
}

// Convert applies Resolve to a quantity
func (r *Resolver) Convert(item entities.ItemCode, qty decimal.Decimal, from, to entities.UnitSymbol) (decimal.Decimal, error) {
	factor, err := r.Resolve(item, from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return qty.Mul(factor), nil
}

// directFactor looks the pair up as a stored edge, item-scoped first,
// checking both directions. A reverse match inverts the factor.
func (r *Resolver) directFactor(item entities.ItemCode, from, to entities.UnitSymbol) (decimal.Decimal, bool) {
	if item != "" {
		if edge, ok := r.edges.GetItemEdge(item, from, to); ok {
			return edge.Factor, true
		}
		if edge, ok := r.edges.GetItemEdge(item, to, from); ok {
			return edge.Reciprocal(), true
		}
	}
	if edge, ok := r.edges.GetEdge(from, to); ok {
		return edge.Factor, true
	}
	if edge, ok := r.edges.GetEdge(to, from); ok {
		return edge.Reciprocal(), true
	}
	return decimal.Decimal{}, false
}

// viaBase composes (from -> base) * (base -> to) through the shared
// category base unit. Both legs must exist as stored edges; composition
// does not recurse further, so factors are never double-applied.
func (r *Resolver) viaBase(item entities.ItemCode, from, to entities.UnitSymbol) (decimal.Decimal, bool) {
	fromUnit, err := r.units.GetUnit(from)
	if err != nil {
		return decimal.Decimal{}, false
	}
	toUnit, err := r.units.GetUnit(to)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if fromUnit.Category != toUnit.Category {
		return decimal.Decimal{}, false
	}

	base, ok := r.units.BaseUnit(fromUnit.Category)
	if !ok {
		return decimal.Decimal{}, false
	}
	if base.Symbol == from || base.Symbol == to {
		// one endpoint is the base itself; a direct edge lookup already
		// failed, so there is nothing to compose
		return decimal.Decimal{}, false
	}

	toBase, ok := r.directFactor(item, from, base.Symbol)
	if !ok {
		return decimal.Decimal{}, false
	}
	fromBase, ok := r.directFactor(item, base.Symbol, to)
	if !ok {
		return decimal.Decimal{}, false
	}
	return toBase.Mul(fromBase), true
}
