package memory

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/domain/repositories"
)

// InventoryRepository provides in-memory persistence for ledger
// counter snapshots. Counters are stored flat by counter key so the
// repository carries no stage-set knowledge of its own.
type InventoryRepository struct {
	mu       sync.RWMutex
	counters map[entities.ItemCode]map[entities.CounterKey]decimal.Decimal
}

// NewInventoryRepository creates an empty in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		counters: make(map[entities.ItemCode]map[entities.CounterKey]decimal.Decimal),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// Seed sets a single counter directly, for loading opening balances
func (r *InventoryRepository) Seed(item entities.ItemCode, key entities.CounterKey, qty decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.counters[item]
	if !ok {
		stored = make(map[entities.CounterKey]decimal.Decimal)
		r.counters[item] = stored
	}
	stored[key] = qty
}

// LoadSnapshot returns the stored counters for an item. Unknown items
// return zeroed counters; opening balances are optional.
func (r *InventoryRepository) LoadSnapshot(item entities.ItemCode) (entities.StateCounters, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counters := entities.StateCounters{WIP: make(map[entities.Stage]decimal.Decimal)}
	for key, qty := range r.counters[item] {
		switch {
		case key == entities.CounterRaw:
			counters.Raw = qty
		case key == entities.CounterFinished:
			counters.Finished = qty
		case key == entities.CounterScrap:
			counters.Scrap = qty
		case strings.HasPrefix(string(key), "wip:"):
			stage := entities.Stage(strings.TrimPrefix(string(key), "wip:"))
			counters.WIP[stage] = qty
		}
	}
	return counters, nil
}

// SaveDelta folds a transition's delta into the stored counters
func (r *InventoryRepository) SaveDelta(item entities.ItemCode, delta entities.StateDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.counters[item]
	if !ok {
		stored = make(map[entities.CounterKey]decimal.Decimal)
		r.counters[item] = stored
	}
	for key, qty := range delta {
		stored[key] = stored[key].Add(qty)
	}
	return nil
}
