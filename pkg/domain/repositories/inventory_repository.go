package repositories

import "github.com/akfactory/planning/pkg/domain/entities"

// InventoryRepository is the persistence boundary for ledger state.
// The ledger calls LoadSnapshot on first touch of an item and SaveDelta
// exactly once per successful transition, inside the same per-item
// critical section as the in-memory mutation.
type InventoryRepository interface {
	LoadSnapshot(item entities.ItemCode) (entities.StateCounters, error)
	SaveDelta(item entities.ItemCode, delta entities.StateDelta) error
}
