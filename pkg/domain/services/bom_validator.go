package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/domain/repositories"
)

// InvalidBOMError reports a BOM rejected at save/activation time.
// Explosion assumes a well-formed tree and never re-checks these rules.
type InvalidBOMError struct {
	BOMCode string
	Err     error
}

func (e *InvalidBOMError) Error() string {
	return fmt.Sprintf("invalid BOM configuration %s: %v", e.BOMCode, e.Err)
}

func (e *InvalidBOMError) Unwrap() error {
	return e.Err
}

// BOMValidator validates BOM structure before activation
type BOMValidator struct {
	validate *validator.Validate
}

// NewBOMValidator creates a new BOM validator
func NewBOMValidator() *BOMValidator {
	return &BOMValidator{validate: validator.New()}
}

// ValidateForActivation checks everything that must hold before the BOM
// may become the active version for its product: required fields,
// positive quantities, no dangling component references, no duplicate
// component lines, no self-reference, and no cycle through the already
// active BOM graph. All violations are returned together.
func (v *BOMValidator) ValidateForActivation(bom *entities.BOM, items repositories.ItemRepository, boms repositories.BOMRepository) error {
	var errs error

	if err := v.validate.Struct(bom); err != nil {
		errs = multierr.Append(errs, err)
	}

	if !bom.OutputQuantity.IsPositive() {
		errs = multierr.Append(errs, fmt.Errorf("output quantity must be positive, got %s", bom.OutputQuantity))
	}
	if bom.MarkupPercent.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("markup percentage cannot be negative, got %s", bom.MarkupPercent))
	}
	if bom.LaborCostPerUnit.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("labor cost per unit cannot be negative, got %s", bom.LaborCostPerUnit))
	}
	if bom.OverheadCostPerUnit.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("overhead cost per unit cannot be negative, got %s", bom.OverheadCostPerUnit))
	}

	if _, err := items.GetItem(bom.ProductCode); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("product %s: %w", bom.ProductCode, err))
	}

	seen := make(map[entities.ItemCode]bool, len(bom.Lines))
	for i, line := range bom.Lines {
		if !line.Quantity.IsPositive() {
			errs = multierr.Append(errs, fmt.Errorf("line %d (%s): quantity must be positive, got %s", i+1, line.ComponentCode, line.Quantity))
		}
		if line.WastePercent.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("line %d (%s): waste percentage cannot be negative, got %s", i+1, line.ComponentCode, line.WastePercent))
		}
		if line.ComponentCode == bom.ProductCode {
			errs = multierr.Append(errs, fmt.Errorf("line %d: BOM for %s cannot list its own product as a component", i+1, bom.ProductCode))
		}
		if seen[line.ComponentCode] {
			errs = multierr.Append(errs, fmt.Errorf("line %d: duplicate component %s", i+1, line.ComponentCode))
		}
		seen[line.ComponentCode] = true

		if _, err := items.GetItem(line.ComponentCode); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: dangling component reference %s: %w", i+1, line.ComponentCode, err))
		}
	}

	if cycle := v.findCycle(bom, boms); len(cycle) > 0 {
		errs = multierr.Append(errs, fmt.Errorf("activation would create BOM cycle: %v", cycle))
	}

	if errs != nil {
		return &InvalidBOMError{BOMCode: bom.Code, Err: errs}
	}
	return nil
}

// findCycle walks the product graph as it would look with this BOM
// active, following active BOMs of each component. Returns the cycle
// path when the candidate's product is reachable from its own
// components, nil otherwise.
func (v *BOMValidator) findCycle(candidate *entities.BOM, boms repositories.BOMRepository) []entities.ItemCode {
	onPath := map[entities.ItemCode]bool{candidate.ProductCode: true}
	path := []entities.ItemCode{candidate.ProductCode}

	var visit func(line entities.BOMLine) []entities.ItemCode
	visit = func(line entities.BOMLine) []entities.ItemCode {
		component := line.ComponentCode
		if onPath[component] {
			return append(append([]entities.ItemCode{}, path...), component)
		}

		sub, ok, err := boms.GetActiveBOM(component)
		if err != nil || !ok {
			return nil
		}
		// The candidate supersedes any currently active version for the
		// same product; following the old version would scan stale edges.
		if sub.ProductCode == candidate.ProductCode {
			return nil
		}

		onPath[component] = true
		path = append(path, component)
		for _, subLine := range sub.Lines {
			if cycle := visit(subLine); cycle != nil {
				return cycle
			}
		}
		path = path[:len(path)-1]
		delete(onPath, component)
		return nil
	}

	for _, line := range candidate.Lines {
		if cycle := visit(line); cycle != nil {
			return cycle
		}
	}
	return nil
}
