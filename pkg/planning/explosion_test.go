package planning

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/logger"
)

func newCastorExploder(t *testing.T) (*Exploder, *CastorScenario) {
	t.Helper()
	scenario := NewCastorScenario()
	resolver := NewResolver(scenario.Catalog, scenario.Catalog, logger.Nop())
	return NewExploder(scenario.Items, scenario.BOMs, resolver, logger.Nop()), scenario
}

func requireLeaf(t *testing.T, result *ExplosionResult, item entities.ItemCode, want string) {
	t.Helper()
	got, ok := result.LeafRequirements[item]
	if !ok {
		t.Fatalf("leaf requirement for %s missing, have %v", item, result.LeafRequirements)
	}
	if w := decimal.RequireFromString(want); !got.Equal(w) {
		t.Errorf("leaf requirement for %s = %s, want %s", item, got, w)
	}
}

func TestExploder_ProductWithoutBOMIsItsOwnLeaf(t *testing.T) {
	exploder, _ := newCastorExploder(t)

	result, err := exploder.Explode("MS001", decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("Explode returned error: %v", err)
	}

	if result.Tree != nil {
		t.Error("expected nil tree for a product without an active BOM")
	}
	requireLeaf(t, result, "MS001", "10")
	if want := decimal.NewFromInt(8000); !result.TotalCost.Equal(want) {
		t.Errorf("TotalCost = %s, want %s", result.TotalCost, want)
	}
}

func TestExploder_NestedExplosion(t *testing.T) {
	exploder, _ := newCastorExploder(t)

	result, err := exploder.Explode("CW001", decimal.NewFromInt(400))
	if err != nil {
		t.Fatalf("Explode returned error: %v", err)
	}

	// one sheet stamps four plates, so 400 castors need 100 sheets
	requireLeaf(t, result, "MS001", "100")
	requireLeaf(t, result, "WH001", "400")
	// 80mm of rod per castor, reported in the rod's stocking unit
	requireLeaf(t, result, "AX001", "32")

	// the plate is explained by its own sub-tree, never a leaf
	if _, ok := result.LeafRequirements["MP001"]; ok {
		t.Error("intermediate MP001 must not appear in leaf requirements")
	}
	if len(result.LeafRequirements) != 3 {
		t.Errorf("leaf count = %d, want 3", len(result.LeafRequirements))
	}

	if result.Tree == nil {
		t.Fatal("expected explosion tree")
	}
	if result.Tree.Lines[0].Child == nil {
		t.Fatal("expected plate line to carry a child node")
	}
	if code := result.Tree.Lines[0].Child.BOMCode; code != "BOM-MP001-1" {
		t.Errorf("child BOM code = %s, want BOM-MP001-1", code)
	}
}

func TestExploder_CostRollup(t *testing.T) {
	exploder, _ := newCastorExploder(t)

	result, err := exploder.Explode("CW001", decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("Explode returned error: %v", err)
	}

	// plate: 0.25 sheet * 800 + labor 5 + overhead 3 = 208
	// castor: 208 + wheel 30 + 0.08m rod * 50 + labor 10 + overhead 5 = 257
	// 20% markup -> 308.4
	if want := decimal.RequireFromString("308.4"); !result.TotalCost.Equal(want) {
		t.Errorf("TotalCost = %s, want %s", result.TotalCost, want)
	}

	plate := result.Tree.Lines[0].Child
	if want := decimal.NewFromInt(208); !plate.Cost.Equal(want) {
		t.Errorf("plate node cost = %s, want %s", plate.Cost, want)
	}
	if want := decimal.NewFromInt(10); !result.Tree.LaborCost.Equal(want) {
		t.Errorf("labor cost = %s, want %s", result.Tree.LaborCost, want)
	}
}

func TestExploder_WasteInflatesRequirement(t *testing.T) {
	exploder, scenario := newCastorExploder(t)

	bom := &entities.BOM{
		Code:           "BOM-BRKT-1",
		Version:        "1",
		Active:         true,
		ProductCode:    "BR001",
		OutputQuantity: decimal.NewFromInt(1),
		OutputUnit:     "Pcs",
		Lines: []entities.BOMLine{
			{ComponentCode: "AX001", Quantity: decimal.NewFromInt(100), Unit: "mm", WastePercent: decimal.NewFromInt(10)},
		},
	}
	err := scenario.Items.LoadItems([]*entities.StockItem{
		{Code: "BR001", Name: "Bracket", InventoryUnit: "Pcs", UnitPrice: decimal.NewFromInt(90), Type: entities.Intermediate},
	})
	if err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := scenario.BOMs.SaveBOM(bom); err != nil {
		t.Fatalf("SaveBOM failed: %v", err)
	}

	result, err := exploder.Explode("BR001", decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("Explode returned error: %v", err)
	}

	// 100mm + 10% waste = 110mm per bracket, 1.1m over 10 brackets
	requireLeaf(t, result, "AX001", "1.1")
}

func TestExploder_LineUnitCostOverridesItemPrice(t *testing.T) {
	exploder, scenario := newCastorExploder(t)

	bom := &entities.BOM{
		Code:           "BOM-SP001-1",
		Version:        "1",
		Active:         true,
		ProductCode:    "SP001",
		OutputQuantity: decimal.NewFromInt(1),
		OutputUnit:     "Pcs",
		Lines: []entities.BOMLine{
			// negotiated rate per mm on this BOM, not the rod's metre price
			{ComponentCode: "AX001", Quantity: decimal.NewFromInt(50), Unit: "mm", UnitCost: decimal.RequireFromString("0.06")},
		},
	}
	err := scenario.Items.LoadItems([]*entities.StockItem{
		{Code: "SP001", Name: "Spacer", InventoryUnit: "Pcs", UnitPrice: decimal.NewFromInt(5), Type: entities.Intermediate},
	})
	if err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := scenario.BOMs.SaveBOM(bom); err != nil {
		t.Fatalf("SaveBOM failed: %v", err)
	}

	result, err := exploder.Explode("SP001", decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("Explode returned error: %v", err)
	}

	if want := decimal.NewFromInt(3); !result.TotalCost.Equal(want) {
		t.Errorf("TotalCost = %s, want %s", result.TotalCost, want)
	}
}

func TestExploder_PurchasedOnlyStopsRecursion(t *testing.T) {
	exploder, scenario := newCastorExploder(t)

	// the plate has an active BOM, but procurement marked it buy-only
	item, err := scenario.Items.GetItem("MP001")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	item.PurchasedOnly = true

	result, err := exploder.Explode("CW001", decimal.NewFromInt(4))
	if err != nil {
		t.Fatalf("Explode returned error: %v", err)
	}

	requireLeaf(t, result, "MP001", "4")
	if _, ok := result.LeafRequirements["MS001"]; ok {
		t.Error("sheet requirement must not appear when the plate is purchased")
	}
}

func TestExploder_DetectsCycle(t *testing.T) {
	exploder, scenario := newCastorExploder(t)

	// make the sheet depend on the castor, closing the loop
	bom := &entities.BOM{
		Code:           "BOM-MS001-1",
		Version:        "1",
		Active:         true,
		ProductCode:    "MS001",
		OutputQuantity: decimal.NewFromInt(1),
		OutputUnit:     "Pcs",
		Lines: []entities.BOMLine{
			{ComponentCode: "CW001", Quantity: decimal.NewFromInt(1), Unit: "Pcs"},
		},
	}
	if err := scenario.BOMs.SaveBOM(bom); err != nil {
		t.Fatalf("SaveBOM failed: %v", err)
	}

	_, err := exploder.Explode("CW001", decimal.NewFromInt(1))
	if err == nil {
		t.Fatal("Explode succeeded, want CycleError")
	}

	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("error type = %T, want *CycleError", err)
	}
	if len(cycle.Path) == 0 || cycle.Path[0] != cycle.Path[len(cycle.Path)-1] {
		t.Errorf("cycle path should start and end at the same BOM: %v", cycle.Path)
	}
}

func TestExploder_RejectsNonPositiveQuantity(t *testing.T) {
	exploder, _ := newCastorExploder(t)

	if _, err := exploder.Explode("CW001", decimal.Zero); err == nil {
		t.Error("Explode with zero quantity should fail")
	}
	if _, err := exploder.Explode("CW001", decimal.NewFromInt(-3)); err == nil {
		t.Error("Explode with negative quantity should fail")
	}
}
