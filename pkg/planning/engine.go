package planning

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/domain/repositories"
	"github.com/akfactory/planning/pkg/domain/services"
)

// Repositories bundles the persistence boundary the engine plans over
type Repositories struct {
	Units       repositories.UnitRepository
	Conversions repositories.ConversionRepository
	Items       repositories.ItemRepository
	BOMs        repositories.BOMRepository
	Inventory   repositories.InventoryRepository
}

// Engine is the facade over the planning services: unit conversion,
// BOM explosion, inventory transitions, and availability checks share
// one catalog and one ledger.
type Engine struct {
	resolver   *Resolver
	exploder   *Exploder
	ledger     *Ledger
	calculator *Calculator
	validator  *services.BOMValidator
	items      repositories.ItemRepository
	boms       repositories.BOMRepository
	log        zerolog.Logger
}

// NewEngine wires the planning services over the given repositories.
// recorder may be nil to skip the transition audit trail.
func NewEngine(repos Repositories, stages *entities.StageSet, recorder TransitionRecorder, log zerolog.Logger) *Engine {
	resolver := NewResolver(repos.Units, repos.Conversions, log)
	exploder := NewExploder(repos.Items, repos.BOMs, resolver, log)
	ledger := NewLedger(stages, repos.Inventory, recorder, log)
	calculator := NewCalculator(repos.Items, ledger, log)

	return &Engine{
		resolver:   resolver,
		exploder:   exploder,
		ledger:     ledger,
		calculator: calculator,
		validator:  services.NewBOMValidator(),
		items:      repos.Items,
		boms:       repos.BOMs,
		log:        log,
	}
}

// SaveBOM validates and stores a new BOM version, activating it when
// requested. A BOM that fails validation is never stored.
func (e *Engine) SaveBOM(bom *entities.BOM, activate bool) error {
	if err := e.validator.ValidateForActivation(bom, e.items, e.boms); err != nil {
		return err
	}
	if err := e.boms.SaveBOM(bom); err != nil {
		return err
	}
	if activate && !bom.Active {
		if err := e.boms.Activate(bom.Code); err != nil {
			return err
		}
	}

	e.log.Info().
		Str("bom", bom.Code).
		Str("product", string(bom.ProductCode)).
		Bool("active", bom.Active).
		Msg("bom saved")
	return nil
}

// ResolveConversion returns the multiplicative factor from one unit to
// another, honoring item-scoped overrides when item is non-empty.
func (e *Engine) ResolveConversion(item entities.ItemCode, from, to entities.UnitSymbol) (decimal.Decimal, error) {
	return e.resolver.Resolve(item, from, to)
}

// Convert converts a quantity between units for the given item
func (e *Engine) Convert(item entities.ItemCode, qty decimal.Decimal, from, to entities.UnitSymbol) (decimal.Decimal, error) {
	return e.resolver.Convert(item, qty, from, to)
}

// ExplodeBOM recursively expands the product's active BOM into leaf
// material requirements and a full cost rollup.
func (e *Engine) ExplodeBOM(product entities.ItemCode, quantity decimal.Decimal) (*ExplosionResult, error) {
	return e.exploder.Explode(product, quantity)
}

// CheckAvailability explodes the product and grades the leaf
// requirements against current stock.
func (e *Engine) CheckAvailability(product entities.ItemCode, quantity decimal.Decimal) (*AvailabilityReport, error) {
	result, err := e.exploder.Explode(product, quantity)
	if err != nil {
		return nil, err
	}
	return e.calculator.Check(result)
}

// ApplyTransition commits one inventory state change and returns the
// item's resulting counters.
func (e *Engine) ApplyTransition(t Transition) (entities.StateCounters, error) {
	return e.ledger.Apply(t)
}

// Snapshot returns a copy of the item's current inventory counters
func (e *Engine) Snapshot(item entities.ItemCode) (entities.StateCounters, error) {
	return e.ledger.Snapshot(item)
}

// Ledger exposes the underlying ledger for callers that seed or
// inspect inventory directly.
func (e *Engine) Ledger() *Ledger {
	return e.ledger
}
