package repositories

import "github.com/akfactory/planning/pkg/domain/entities"

// BOMRepository provides access to bill-of-materials data
type BOMRepository interface {
	// GetActiveBOM returns the active BOM for a product, or false when the
	// product has none (a pure purchased/leaf item).
	GetActiveBOM(product entities.ItemCode) (*entities.BOM, bool, error)

	GetBOM(code string) (*entities.BOM, error)
	GetAllBOMs() ([]*entities.BOM, error)

	// SaveBOM stores a BOM version without activating it
	SaveBOM(bom *entities.BOM) error

	// Activate marks the BOM active and deactivates any other version for
	// the same product. Callers validate with the BOM validator first;
	// repositories do not re-run structural validation.
	Activate(code string) error
}
