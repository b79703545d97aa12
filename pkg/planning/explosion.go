package planning

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/domain/repositories"
)

// ExplosionLine is one resolved component requirement of an exploded node
type ExplosionLine struct {
	ComponentCode entities.ItemCode
	ComponentName string

	// Quantity in the component item's inventory unit, waste included
	Quantity decimal.Decimal
	Unit     entities.UnitSymbol

	// Cost of this line: material cost for a leaf, the child's rolled-up
	// cost when the component was exploded further
	Cost decimal.Decimal

	// Child is the exploded sub-tree when the component has an active BOM
	// of its own; nil for leaves
	Child *ExplosionNode
}

// ExplosionNode is one BOM run in the explosion tree
type ExplosionNode struct {
	BOMCode     string
	ProductCode entities.ItemCode
	Quantity    decimal.Decimal // requested output quantity at this node
	OutputUnit  entities.UnitSymbol

	Lines []ExplosionLine

	MaterialCost decimal.Decimal // Σ line costs, nested nodes included once
	LaborCost    decimal.Decimal
	OverheadCost decimal.Decimal
	Cost         decimal.Decimal // (material + labor + overhead) * markup
}

// ExplosionResult is the complete output of one BOM explosion
type ExplosionResult struct {
	ProductCode entities.ItemCode
	Quantity    decimal.Decimal

	// LeafRequirements maps each leaf item to its total required quantity
	// in that item's inventory unit. Intermediates with their own active
	// BOM never appear here; their sub-trees do.
	LeafRequirements map[entities.ItemCode]decimal.Decimal

	TotalCost decimal.Decimal
	Tree      *ExplosionNode // nil when the product has no active BOM
}

// Exploder walks a BOM graph depth-first, converting every component
// quantity into its inventory unit and rolling costs bottom-up. It is a
// pure function of the loaded snapshot; concurrent explosions need no
// coordination.
type Exploder struct {
	items    repositories.ItemRepository
	boms     repositories.BOMRepository
	resolver *Resolver
	log      zerolog.Logger
}

// NewExploder creates an exploder over the given repositories
func NewExploder(items repositories.ItemRepository, boms repositories.BOMRepository, resolver *Resolver, log zerolog.Logger) *Exploder {
	return &Exploder{items: items, boms: boms, resolver: resolver, log: log}
}

// Explode computes leaf requirements and rolled-up cost for producing
// qty of the product. A product with no active BOM is itself a valid
// leaf requirement; whether that is a problem belongs to the
// availability calculator.
func (e *Exploder) Explode(product entities.ItemCode, qty decimal.Decimal) (*ExplosionResult, error) {
	if !qty.IsPositive() {
		return nil, fmt.Errorf("requested quantity must be positive, got %s", qty)
	}

	item, err := e.items.GetItem(product)
	if err != nil {
		return nil, fmt.Errorf("explode %s: %w", product, err)
	}

	result := &ExplosionResult{
		ProductCode:      product,
		Quantity:         qty,
		LeafRequirements: make(map[entities.ItemCode]decimal.Decimal),
	}

	bom, ok, err := e.boms.GetActiveBOM(product)
	if err != nil {
		return nil, fmt.Errorf("explode %s: %w", product, err)
	}
	if !ok {
		result.LeafRequirements[product] = qty
		result.TotalCost = qty.Mul(item.UnitPrice)
		return result, nil
	}

	node, err := e.explodeNode(bom, qty, []string{})
	if err != nil {
		return nil, err
	}
	accumulateLeaves(node, result.LeafRequirements)

	result.Tree = node
	result.TotalCost = node.Cost

	e.log.Debug().
		Str("product", string(product)).
		Str("quantity", qty.String()).
		Int("leaves", len(result.LeafRequirements)).
		Str("total_cost", result.TotalCost.String()).
		Msg("explosion complete")

	return result, nil
}

// explodeNode explodes one BOM for a requested output quantity. path
// holds the BOM codes already on the current recursion path; revisiting
// one means the graph has a cycle.
func (e *Exploder) explodeNode(bom *entities.BOM, qty decimal.Decimal, path []string) (*ExplosionNode, error) {
	for _, code := range path {
		if code == bom.Code {
			return nil, &CycleError{Path: append(append([]string{}, path...), bom.Code)}
		}
	}
	path = append(path, bom.Code)

	node := &ExplosionNode{
		BOMCode:      bom.Code,
		ProductCode:  bom.ProductCode,
		Quantity:     qty,
		OutputUnit:   bom.OutputUnit,
		MaterialCost: decimal.Zero,
	}

	scale := qty.Div(bom.OutputQuantity)

	for _, line := range bom.Lines {
		component, err := e.items.GetItem(line.ComponentCode)
		if err != nil {
			return nil, fmt.Errorf("bom %s: component %s: %w", bom.Code, line.ComponentCode, err)
		}

		// quantity in the line's stated unit, waste allowance applied
		lineQty := line.QuantityWithWaste().Mul(scale)

		invQty, err := e.resolver.Convert(component.Code, lineQty, line.Unit, component.InventoryUnit)
		if err != nil {
			return nil, fmt.Errorf("bom %s: component %s: %w", bom.Code, line.ComponentCode, err)
		}

		exploded := ExplosionLine{
			ComponentCode: component.Code,
			ComponentName: component.Name,
			Quantity:      invQty,
			Unit:          component.InventoryUnit,
		}

		sub, hasBOM, err := e.boms.GetActiveBOM(component.Code)
		if err != nil {
			return nil, fmt.Errorf("bom %s: component %s: %w", bom.Code, line.ComponentCode, err)
		}

		if hasBOM && !component.PurchasedOnly {
			// recurse with the line quantity restated in the sub-BOM's own
			// output unit; the component is fully explained by its sub-tree
			// and must not also count as a leaf
			childQty, err := e.resolver.Convert(component.Code, lineQty, line.Unit, sub.OutputUnit)
			if err != nil {
				return nil, fmt.Errorf("bom %s: component %s: %w", bom.Code, line.ComponentCode, err)
			}
			child, err := e.explodeNode(sub, childQty, path)
			if err != nil {
				return nil, err
			}
			exploded.Child = child
			exploded.Cost = child.Cost
		} else {
			exploded.Cost = e.lineMaterialCost(line, lineQty, invQty, component)
		}

		node.MaterialCost = node.MaterialCost.Add(exploded.Cost)
		node.Lines = append(node.Lines, exploded)
	}

	node.LaborCost = bom.LaborCostPerUnit.Mul(qty)
	node.OverheadCost = bom.OverheadCostPerUnit.Mul(qty)
	node.Cost = node.MaterialCost.
		Add(node.LaborCost).
		Add(node.OverheadCost).
		Mul(bom.MarkupMultiplier())

	return node, nil
}

// lineMaterialCost prices a leaf line: the line's cost snapshot (per
// line unit) when present, otherwise the item's unit price (per
// inventory unit).
func (e *Exploder) lineMaterialCost(line entities.BOMLine, lineQty, invQty decimal.Decimal, component *entities.StockItem) decimal.Decimal {
	if line.UnitCost.IsPositive() {
		return lineQty.Mul(line.UnitCost)
	}
	return invQty.Mul(component.UnitPrice)
}

// accumulateLeaves sums leaf line quantities across the tree
func accumulateLeaves(node *ExplosionNode, acc map[entities.ItemCode]decimal.Decimal) {
	for _, line := range node.Lines {
		if line.Child != nil {
			accumulateLeaves(line.Child, acc)
			continue
		}
		if cur, ok := acc[line.ComponentCode]; ok {
			acc[line.ComponentCode] = cur.Add(line.Quantity)
		} else {
			acc[line.ComponentCode] = line.Quantity
		}
	}
}
