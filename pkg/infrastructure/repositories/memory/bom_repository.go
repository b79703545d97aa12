package memory

import (
	"fmt"
	"sync"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/domain/repositories"
)

// BOMRepository provides in-memory BOM storage with at most one active
// version per product.
type BOMRepository struct {
	mu       sync.RWMutex
	boms     map[string]*entities.BOM
	order    []string
	activeBy map[entities.ItemCode]string
}

// NewBOMRepository creates an empty in-memory BOM repository
func NewBOMRepository() *BOMRepository {
	return &BOMRepository{
		boms:     make(map[string]*entities.BOM),
		activeBy: make(map[entities.ItemCode]string),
	}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// SaveBOM stores a BOM version. A BOM saved with Active set replaces
// the product's current active version.
func (r *BOMRepository) SaveBOM(bom *entities.BOM) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.boms[bom.Code]; exists {
		return fmt.Errorf("duplicate BOM code: %s", bom.Code)
	}
	r.boms[bom.Code] = bom
	r.order = append(r.order, bom.Code)

	if bom.Active {
		r.activateLocked(bom)
	}
	return nil
}

// Activate marks the BOM active and deactivates any other version for
// the same product.
func (r *BOMRepository) Activate(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bom, exists := r.boms[code]
	if !exists {
		return fmt.Errorf("BOM not found: %s", code)
	}
	r.activateLocked(bom)
	return nil
}

// activateLocked enforces the one-active-version invariant. Caller
// holds the write lock.
func (r *BOMRepository) activateLocked(bom *entities.BOM) {
	if current, ok := r.activeBy[bom.ProductCode]; ok && current != bom.Code {
		r.boms[current].Active = false
	}
	bom.Active = true
	r.activeBy[bom.ProductCode] = bom.Code
}

// GetBOM returns a BOM by code
func (r *BOMRepository) GetBOM(code string) (*entities.BOM, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bom, exists := r.boms[code]
	if !exists {
		return nil, fmt.Errorf("BOM not found: %s", code)
	}
	return bom, nil
}

// GetActiveBOM returns the active BOM for a product, or false when
// the product has none.
func (r *BOMRepository) GetActiveBOM(product entities.ItemCode) (*entities.BOM, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	code, ok := r.activeBy[product]
	if !ok {
		return nil, false, nil
	}
	return r.boms[code], true, nil
}

// GetAllBOMs returns all BOM versions in save order
func (r *BOMRepository) GetAllBOMs() ([]*entities.BOM, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	boms := make([]*entities.BOM, 0, len(r.order))
	for _, code := range r.order {
		boms = append(boms, r.boms[code])
	}
	return boms, nil
}
