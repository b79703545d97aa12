package planning

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/domain/repositories"
)

// AvailabilityLine reports one leaf requirement against current stock
type AvailabilityLine struct {
	ItemCode  entities.ItemCode
	Name      string
	Unit      entities.UnitSymbol
	Required  decimal.Decimal
	Available decimal.Decimal
	Shortage  decimal.Decimal
}

// Sufficient reports whether this line alone would not block production
func (l AvailabilityLine) Sufficient() bool {
	return l.Shortage.IsZero()
}

// AvailabilityReport is the verdict for one production request.
// MaxProducible is the largest whole quantity of the product current
// stock supports; it is zero when any required component is absent.
type AvailabilityReport struct {
	ProductCode   entities.ItemCode
	Quantity      decimal.Decimal
	CanProduce    bool
	MaxProducible decimal.Decimal
	Lines         []AvailabilityLine
}

// Shortages returns only the lines with an unmet requirement
func (r *AvailabilityReport) Shortages() []AvailabilityLine {
	return lo.Filter(r.Lines, func(l AvailabilityLine, _ int) bool {
		return !l.Sufficient()
	})
}

// Calculator answers "can we produce N of this product right now" by
// comparing an explosion's leaf requirements against ledger stock.
type Calculator struct {
	items  repositories.ItemRepository
	ledger *Ledger
	log    zerolog.Logger
}

func NewCalculator(items repositories.ItemRepository, ledger *Ledger, log zerolog.Logger) *Calculator {
	return &Calculator{items: items, ledger: ledger, log: log}
}

// Check evaluates an explosion result against current stock. Available
// stock counts raw plus finished; WIP quantities are mid-process and
// never promised to new work.
func (c *Calculator) Check(result *ExplosionResult) (*AvailabilityReport, error) {
	if result == nil {
		return nil, fmt.Errorf("explosion result cannot be nil")
	}

	report := &AvailabilityReport{
		ProductCode: result.ProductCode,
		Quantity:    result.Quantity,
		CanProduce:  true,
	}

	codes := lo.Keys(result.LeafRequirements)
	slices.Sort(codes)

	maxSet := false
	for _, code := range codes {
		required := result.LeafRequirements[code]

		item, err := c.items.GetItem(code)
		if err != nil {
			return nil, fmt.Errorf("leaf requirement references unknown item %s: %w", code, err)
		}

		counters, err := c.ledger.Snapshot(code)
		if err != nil {
			return nil, err
		}
		available := counters.Available()

		line := AvailabilityLine{
			ItemCode:  code,
			Name:      item.Name,
			Unit:      item.InventoryUnit,
			Required:  required,
			Available: available,
		}
		if available.LessThan(required) {
			line.Shortage = required.Sub(available)
			report.CanProduce = false
		}
		report.Lines = append(report.Lines, line)

		// units this stock level supports: available / per-unit requirement
		if required.IsPositive() {
			supported := available.Mul(result.Quantity).Div(required).Floor()
			if !maxSet || supported.LessThan(report.MaxProducible) {
				report.MaxProducible = supported
				maxSet = true
			}
		}
	}

	c.log.Debug().
		Str("product", string(result.ProductCode)).
		Str("quantity", result.Quantity.String()).
		Bool("can_produce", report.CanProduce).
		Str("max_producible", report.MaxProducible.String()).
		Msg("availability checked")

	return report, nil
}
