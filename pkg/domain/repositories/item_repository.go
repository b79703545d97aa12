package repositories

import "github.com/akfactory/planning/pkg/domain/entities"

// ItemRepository provides access to stock item master data
type ItemRepository interface {
	GetItem(code entities.ItemCode) (*entities.StockItem, error)
	GetAllItems() ([]*entities.StockItem, error)
	LoadItems(items []*entities.StockItem) error
}
