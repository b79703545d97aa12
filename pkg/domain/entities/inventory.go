package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Stage names one work-in-progress process step. Valid stage names are
// fixed at startup by the StageSet the ledger is built with.
type Stage string

// StageSet is the closed, ordered set of WIP stages the ledger accepts.
// It is loaded from configuration and frozen; an unknown stage in a
// transition is a caller error, never a new counter.
type StageSet struct {
	stages []Stage
	index  map[Stage]int
}

// NewStageSet creates a validated StageSet from an ordered list of names
func NewStageSet(stages ...Stage) (*StageSet, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("stage set cannot be empty")
	}

	index := make(map[Stage]int, len(stages))
	for i, s := range stages {
		if s == "" {
			return nil, fmt.Errorf("stage name cannot be empty (position %d)", i)
		}
		if _, dup := index[s]; dup {
			return nil, fmt.Errorf("duplicate stage name: %s", s)
		}
		index[s] = i
	}

	return &StageSet{stages: stages, index: index}, nil
}

// DefaultStageSet returns the factory's standard process stages
func DefaultStageSet() *StageSet {
	set, err := NewStageSet(
		"cutting", "bending", "welding", "zinc",
		"painting", "assembly", "machining", "polishing",
	)
	if err != nil {
		panic(err) // literals above are valid
	}
	return set
}

// Contains reports whether the stage belongs to the set
func (s *StageSet) Contains(stage Stage) bool {
	_, ok := s.index[stage]
	return ok
}

// Stages returns the stages in their configured order
func (s *StageSet) Stages() []Stage {
	out := make([]Stage, len(s.stages))
	copy(out, s.stages)
	return out
}

// Len returns the number of stages
func (s *StageSet) Len() int {
	return len(s.stages)
}

// StateCounters holds one item's quantity in every production state.
// All quantities are in the item's inventory unit. Counters are only
// mutated through ledger transitions, never by direct assignment.
type StateCounters struct {
	Raw      decimal.Decimal
	WIP      map[Stage]decimal.Decimal
	Finished decimal.Decimal
	Scrap    decimal.Decimal
}

// NewStateCounters creates zeroed counters for the given stage set
func NewStateCounters(stages *StageSet) StateCounters {
	wip := make(map[Stage]decimal.Decimal, stages.Len())
	for _, s := range stages.Stages() {
		wip[s] = decimal.Zero
	}
	return StateCounters{
		Raw:      decimal.Zero,
		WIP:      wip,
		Finished: decimal.Zero,
		Scrap:    decimal.Zero,
	}
}

// TotalWIP returns the sum across all WIP stages
func (c StateCounters) TotalWIP() decimal.Decimal {
	total := decimal.Zero
	for _, qty := range c.WIP {
		total = total.Add(qty)
	}
	return total
}

// Total returns raw + all WIP + finished + scrap
func (c StateCounters) Total() decimal.Decimal {
	return c.Raw.Add(c.TotalWIP()).Add(c.Finished).Add(c.Scrap)
}

// Available returns the quantity usable for a new production run:
// raw + finished. Scrap and WIP are excluded.
func (c StateCounters) Available() decimal.Decimal {
	return c.Raw.Add(c.Finished)
}

// Clone returns a deep copy of the counters
func (c StateCounters) Clone() StateCounters {
	wip := make(map[Stage]decimal.Decimal, len(c.WIP))
	for s, qty := range c.WIP {
		wip[s] = qty
	}
	return StateCounters{
		Raw:      c.Raw,
		WIP:      wip,
		Finished: c.Finished,
		Scrap:    c.Scrap,
	}
}

// NonNegative reports whether every counter is >= 0
func (c StateCounters) NonNegative() bool {
	if c.Raw.IsNegative() || c.Finished.IsNegative() || c.Scrap.IsNegative() {
		return false
	}
	for _, qty := range c.WIP {
		if qty.IsNegative() {
			return false
		}
	}
	return true
}

// CounterKey identifies a single counter within StateCounters for
// persistence deltas and audit events.
type CounterKey string

const (
	CounterRaw      CounterKey = "raw"
	CounterFinished CounterKey = "finished"
	CounterScrap    CounterKey = "scrap"
)

// CounterWIP returns the key for a WIP stage counter
func CounterWIP(stage Stage) CounterKey {
	return CounterKey("wip:" + string(stage))
}

// StateDelta records the signed change a transition applies to each
// touched counter. Untouched counters are absent.
type StateDelta map[CounterKey]decimal.Decimal

// Add accumulates a signed change for a counter
func (d StateDelta) Add(key CounterKey, qty decimal.Decimal) {
	if cur, ok := d[key]; ok {
		d[key] = cur.Add(qty)
		return
	}
	d[key] = qty
}

// Net returns the sum of all changes; a conserving transition nets to
// zero, a receipt to the received quantity.
func (d StateDelta) Net() decimal.Decimal {
	net := decimal.Zero
	for _, qty := range d {
		net = net.Add(qty)
	}
	return net
}
