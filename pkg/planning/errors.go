package planning

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
)

// UnresolvedConversionError reports that no conversion path exists
// between two units. It is always fatal to the calling operation;
// silently assuming a 1:1 factor is exactly the class of bug this
// engine exists to prevent.
type UnresolvedConversionError struct {
	From entities.UnitSymbol
	To   entities.UnitSymbol
	Item entities.ItemCode // item context of the lookup, if any
}

func (e *UnresolvedConversionError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("no conversion path from %s to %s (item %s)", e.From, e.To, e.Item)
	}
	return fmt.Sprintf("no conversion path from %s to %s", e.From, e.To)
}

// CycleError reports a BOM reachable from itself along the current
// explosion path. Path holds the BOM codes from the root down to the
// repeated node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("BOM cycle detected: %s", strings.Join(e.Path, " -> "))
}

// InsufficientQuantityError reports a ledger transition whose
// precondition quantity check failed. The transition performs no
// partial mutation; callers decide whether to block, partially
// fulfill, or queue a purchase.
type InsufficientQuantityError struct {
	Item      entities.ItemCode
	State     entities.CounterKey
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity for %s in %s: requested %s, available %s",
		e.Item, e.State, e.Requested, e.Available)
}
