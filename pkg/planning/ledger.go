package planning

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/domain/repositories"
)

// TransitionKind identifies a ledger state transition
type TransitionKind int

const (
	TransitionReceive TransitionKind = iota
	TransitionIssueToWIP
	TransitionAdvanceStage
	TransitionConsumeForAssembly
)

// String method for TransitionKind enum
func (k TransitionKind) String() string {
	switch k {
	case TransitionReceive:
		return "receive"
	case TransitionIssueToWIP:
		return "issue_to_wip"
	case TransitionAdvanceStage:
		return "advance_stage"
	case TransitionConsumeForAssembly:
		return "consume_for_assembly"
	default:
		return "unknown"
	}
}

// Transition describes one requested ledger state change. Every legal
// mutation is a distinct, validated operation; counters are never
// written directly.
type Transition struct {
	Kind     TransitionKind
	Item     entities.ItemCode
	Quantity decimal.Decimal

	// Stage is the destination stage for IssueToWIP
	Stage entities.Stage

	// FromStage/ToStage/ToFinished direct an AdvanceStage move. The
	// destination is an explicit required argument, never inferred.
	FromStage  entities.Stage
	ToStage    entities.Stage
	ToFinished bool

	// ScrapQuantity is the portion scrapped during an AdvanceStage step
	ScrapQuantity decimal.Decimal
}

// TransitionEvent is the immutable audit record of an applied transition
type TransitionEvent struct {
	ID        uuid.UUID
	At        time.Time
	Kind      TransitionKind
	Item      entities.ItemCode
	Delta     entities.StateDelta
	Resulting entities.StateCounters
}

// TransitionRecorder receives an audit event for every applied
// transition. Implementations must be safe for concurrent use.
type TransitionRecorder interface {
	RecordTransition(event TransitionEvent)
}

type itemState struct {
	mu       sync.Mutex
	loaded   bool
	counters entities.StateCounters
}

// Ledger tracks per-item quantity counters across the production
// pipeline and enforces conservation: transitions are all-or-nothing,
// re-checked for non-negativity before commit, and serialized per item
// (not globally) so independent items never contend.
type Ledger struct {
	stages   *entities.StageSet
	repo     repositories.InventoryRepository
	recorder TransitionRecorder
	log      zerolog.Logger

	mu    sync.Mutex // guards states map shape only
	items map[entities.ItemCode]*itemState
}

// NewLedger creates a ledger over the given persistence boundary.
// recorder may be nil when no audit trail is wanted.
func NewLedger(stages *entities.StageSet, repo repositories.InventoryRepository, recorder TransitionRecorder, log zerolog.Logger) *Ledger {
	return &Ledger{
		stages:   stages,
		repo:     repo,
		recorder: recorder,
		log:      log,
		items:    make(map[entities.ItemCode]*itemState),
	}
}

// Stages returns the ledger's configured stage set
func (l *Ledger) Stages() *entities.StageSet {
	return l.stages
}

// Snapshot returns a copy of the item's current counters, loading them
// from the persistence boundary on first touch.
func (l *Ledger) Snapshot(item entities.ItemCode) (entities.StateCounters, error) {
	state := l.state(item)
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := l.ensureLoaded(item, state); err != nil {
		return entities.StateCounters{}, err
	}
	return state.counters.Clone(), nil
}

// Apply validates and commits a transition. On success the resulting
// counters are returned and the delta has been persisted exactly once,
// inside the same critical section as the in-memory mutation. On any
// failure no counter changes.
func (l *Ledger) Apply(t Transition) (entities.StateCounters, error) {
	if string(t.Item) == "" {
		return entities.StateCounters{}, fmt.Errorf("transition item cannot be empty")
	}
	if !t.Quantity.IsPositive() {
		return entities.StateCounters{}, fmt.Errorf("transition quantity must be positive, got %s", t.Quantity)
	}
	if t.ScrapQuantity.IsNegative() {
		return entities.StateCounters{}, fmt.Errorf("scrap quantity cannot be negative, got %s", t.ScrapQuantity)
	}

	state := l.state(t.Item)
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := l.ensureLoaded(t.Item, state); err != nil {
		return entities.StateCounters{}, err
	}

	next := state.counters.Clone()
	delta := make(entities.StateDelta)

	var err error
	switch t.Kind {
	case TransitionReceive:
		err = l.applyReceive(t, &next, delta)
	case TransitionIssueToWIP:
		err = l.applyIssue(t, &next, delta)
	case TransitionAdvanceStage:
		err = l.applyAdvance(t, &next, delta)
	case TransitionConsumeForAssembly:
		err = l.applyConsume(t, &next, delta)
	default:
		err = fmt.Errorf("unknown transition kind: %d", t.Kind)
	}
	if err != nil {
		return entities.StateCounters{}, err
	}

	if !next.NonNegative() {
		// preconditions above should make this unreachable; keep the
		// conservation guarantee anyway
		return entities.StateCounters{}, fmt.Errorf("transition %s on %s would drive a counter negative", t.Kind, t.Item)
	}

	if err := l.repo.SaveDelta(t.Item, delta); err != nil {
		return entities.StateCounters{}, fmt.Errorf("persist delta for %s: %w", t.Item, err)
	}
	state.counters = next

	l.log.Info().
		Str("item", string(t.Item)).
		Str("kind", t.Kind.String()).
		Str("quantity", t.Quantity.String()).
		Msg("ledger transition applied")

	if l.recorder != nil {
		l.recorder.RecordTransition(TransitionEvent{
			ID:        uuid.New(),
			At:        time.Now().UTC(),
			Kind:      t.Kind,
			Item:      t.Item,
			Delta:     delta,
			Resulting: next.Clone(),
		})
	}

	return next.Clone(), nil
}

func (l *Ledger) applyReceive(t Transition, next *entities.StateCounters, delta entities.StateDelta) error {
	next.Raw = next.Raw.Add(t.Quantity)
	delta.Add(entities.CounterRaw, t.Quantity)
	return nil
}

func (l *Ledger) applyIssue(t Transition, next *entities.StateCounters, delta entities.StateDelta) error {
	if !l.stages.Contains(t.Stage) {
		return fmt.Errorf("unknown WIP stage: %q", t.Stage)
	}
	if next.Raw.LessThan(t.Quantity) {
		return &InsufficientQuantityError{
			Item:      t.Item,
			State:     entities.CounterRaw,
			Requested: t.Quantity,
			Available: next.Raw,
		}
	}

	next.Raw = next.Raw.Sub(t.Quantity)
	next.WIP[t.Stage] = next.WIP[t.Stage].Add(t.Quantity)
	delta.Add(entities.CounterRaw, t.Quantity.Neg())
	delta.Add(entities.CounterWIP(t.Stage), t.Quantity)
	return nil
}

func (l *Ledger) applyAdvance(t Transition, next *entities.StateCounters, delta entities.StateDelta) error {
	if !l.stages.Contains(t.FromStage) {
		return fmt.Errorf("unknown WIP stage: %q", t.FromStage)
	}
	if t.ToFinished {
		if t.ToStage != "" {
			return fmt.Errorf("advance destination is ambiguous: both to-stage %q and finished", t.ToStage)
		}
	} else {
		if !l.stages.Contains(t.ToStage) {
			return fmt.Errorf("unknown WIP stage: %q", t.ToStage)
		}
		if t.ToStage == t.FromStage {
			return fmt.Errorf("advance cannot target its own source stage %q", t.FromStage)
		}
	}

	outgoing := t.Quantity.Add(t.ScrapQuantity)
	if next.WIP[t.FromStage].LessThan(outgoing) {
		return &InsufficientQuantityError{
			Item:      t.Item,
			State:     entities.CounterWIP(t.FromStage),
			Requested: outgoing,
			Available: next.WIP[t.FromStage],
		}
	}

	next.WIP[t.FromStage] = next.WIP[t.FromStage].Sub(outgoing)
	delta.Add(entities.CounterWIP(t.FromStage), outgoing.Neg())

	if t.ToFinished {
		next.Finished = next.Finished.Add(t.Quantity)
		delta.Add(entities.CounterFinished, t.Quantity)
	} else {
		next.WIP[t.ToStage] = next.WIP[t.ToStage].Add(t.Quantity)
		delta.Add(entities.CounterWIP(t.ToStage), t.Quantity)
	}

	if t.ScrapQuantity.IsPositive() {
		next.Scrap = next.Scrap.Add(t.ScrapQuantity)
		delta.Add(entities.CounterScrap, t.ScrapQuantity)
	}
	return nil
}

func (l *Ledger) applyConsume(t Transition, next *entities.StateCounters, delta entities.StateDelta) error {
	if next.Finished.LessThan(t.Quantity) {
		return &InsufficientQuantityError{
			Item:      t.Item,
			State:     entities.CounterFinished,
			Requested: t.Quantity,
			Available: next.Finished,
		}
	}

	// the consumed value is now embedded in the parent assembly's cost,
	// tracked by the explosion engine rather than this ledger
	next.Finished = next.Finished.Sub(t.Quantity)
	delta.Add(entities.CounterFinished, t.Quantity.Neg())
	return nil
}

func (l *Ledger) state(item entities.ItemCode) *itemState {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.items[item]
	if !ok {
		state = &itemState{}
		l.items[item] = state
	}
	return state
}

// ensureLoaded hydrates counters from the persistence boundary.
// Caller holds the item lock.
func (l *Ledger) ensureLoaded(item entities.ItemCode, state *itemState) error {
	if state.loaded {
		return nil
	}

	counters, err := l.repo.LoadSnapshot(item)
	if err != nil {
		return fmt.Errorf("load inventory snapshot for %s: %w", item, err)
	}

	// normalize: every configured stage gets a counter even when the
	// stored snapshot predates a stage being added
	normalized := entities.NewStateCounters(l.stages)
	normalized.Raw = counters.Raw
	normalized.Finished = counters.Finished
	normalized.Scrap = counters.Scrap
	for stage, qty := range counters.WIP {
		if !l.stages.Contains(stage) {
			return fmt.Errorf("snapshot for %s holds unknown WIP stage %q", item, stage)
		}
		normalized.WIP[stage] = qty
	}

	state.counters = normalized
	state.loaded = true
	return nil
}
