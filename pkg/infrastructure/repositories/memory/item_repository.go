package memory

import (
	"fmt"
	"sync"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/domain/repositories"
)

// ItemRepository provides in-memory stock item storage
type ItemRepository struct {
	mu    sync.RWMutex
	items map[entities.ItemCode]*entities.StockItem
	order []entities.ItemCode
}

// NewItemRepository creates an empty in-memory item repository
func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		items: make(map[entities.ItemCode]*entities.StockItem),
	}
}

// Verify interface compliance
var _ repositories.ItemRepository = (*ItemRepository)(nil)

// LoadItems loads stock items into the repository
func (r *ItemRepository) LoadItems(items []*entities.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if _, exists := r.items[item.Code]; exists {
			return fmt.Errorf("duplicate item: %s", item.Code)
		}
		r.items[item.Code] = item
		r.order = append(r.order, item.Code)
	}
	return nil
}

// GetItem returns stock item master data by code
func (r *ItemRepository) GetItem(code entities.ItemCode) (*entities.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[code]
	if !exists {
		return nil, fmt.Errorf("item not found: %s", code)
	}
	return item, nil
}

// GetAllItems returns all items in load order
func (r *ItemRepository) GetAllItems() ([]*entities.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*entities.StockItem, 0, len(r.order))
	for _, code := range r.order {
		items = append(items, r.items[code])
	}
	return items, nil
}
