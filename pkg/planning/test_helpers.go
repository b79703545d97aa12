package planning

import (
	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/infrastructure/repositories/memory"
)

// NewTestCatalog builds a catalog repository with the standard units
// and global conversion edges used across tests.
func NewTestCatalog() *memory.CatalogRepository {
	catalog := memory.NewCatalogRepository()

	units := []*entities.Unit{
		{Symbol: "Pcs", Name: "Pieces", Category: entities.CategoryCount, IsBase: true},
		{Symbol: "Doz", Name: "Dozen", Category: entities.CategoryCount},
		{Symbol: "Kg", Name: "Kilogram", Category: entities.CategoryWeight, IsBase: true},
		{Symbol: "g", Name: "Gram", Category: entities.CategoryWeight},
		{Symbol: "T", Name: "Tonne", Category: entities.CategoryWeight},
		{Symbol: "M", Name: "Metre", Category: entities.CategoryLength, IsBase: true},
		{Symbol: "cm", Name: "Centimetre", Category: entities.CategoryLength},
		{Symbol: "mm", Name: "Millimetre", Category: entities.CategoryLength},
		{Symbol: "ft", Name: "Foot", Category: entities.CategoryLength},
	}
	if err := catalog.LoadUnits(units); err != nil {
		panic(err)
	}

	edges := []*entities.ConversionEdge{
		{FromUnit: "Doz", ToUnit: "Pcs", Factor: decimal.NewFromInt(12)},
		{FromUnit: "g", ToUnit: "Kg", Factor: decimal.RequireFromString("0.001")},
		{FromUnit: "T", ToUnit: "Kg", Factor: decimal.NewFromInt(1000)},
		{FromUnit: "mm", ToUnit: "M", Factor: decimal.RequireFromString("0.001")},
		{FromUnit: "cm", ToUnit: "M", Factor: decimal.RequireFromString("0.01")},
		{FromUnit: "ft", ToUnit: "M", Factor: decimal.RequireFromString("0.3048")},
	}
	if err := catalog.LoadEdges(edges); err != nil {
		panic(err)
	}

	return catalog
}

// CastorScenario is the castor wheel factory fixture: a finished
// castor assembled from a mounted plate (stamped four to a steel
// sheet), a purchased wheel, and an axle cut from rod stock held in
// metres.
type CastorScenario struct {
	Catalog   *memory.CatalogRepository
	Items     *memory.ItemRepository
	BOMs      *memory.BOMRepository
	Inventory *memory.InventoryRepository
}

// Repositories bundles the scenario's stores for engine construction
func (s *CastorScenario) Repositories() Repositories {
	return Repositories{
		Units:       s.Catalog,
		Conversions: s.Catalog,
		Items:       s.Items,
		BOMs:        s.BOMs,
		Inventory:   s.Inventory,
	}
}

// NewCastorScenario builds the castor wheel fixture. Cost figures:
//
//	MS001 sheet 800/Pcs, WH001 wheel 30/Pcs, AX001 rod 50/M
//	plate BOM: output 4 Pcs per sheet, labor 5, overhead 3, no markup
//	castor BOM: labor 10, overhead 5, markup 20%
func NewCastorScenario() *CastorScenario {
	catalog := NewTestCatalog()
	items := memory.NewItemRepository()
	boms := memory.NewBOMRepository()
	inventory := memory.NewInventoryRepository()

	err := items.LoadItems([]*entities.StockItem{
		{Code: "CW001", Name: "Castor Wheel 100mm", InventoryUnit: "Pcs", UnitPrice: decimal.NewFromInt(1500), Type: entities.FinishedGood},
		{Code: "MP001", Name: "Mounted Plate", InventoryUnit: "Pcs", UnitPrice: decimal.NewFromInt(250), Type: entities.Intermediate},
		{Code: "MS001", Name: "MS Sheet 2mm", InventoryUnit: "Pcs", UnitPrice: decimal.NewFromInt(800), Type: entities.RawMaterial},
		{Code: "WH001", Name: "Wheel PU 100mm", InventoryUnit: "Pcs", UnitPrice: decimal.NewFromInt(30), Type: entities.RawMaterial},
		{Code: "AX001", Name: "Axle Rod 12mm", InventoryUnit: "M", UnitPrice: decimal.NewFromInt(50), Type: entities.RawMaterial},
	})
	if err != nil {
		panic(err)
	}

	plateBOM := &entities.BOM{
		Code:                "BOM-MP001-1",
		Version:             "1",
		Active:              true,
		ProductCode:         "MP001",
		OutputQuantity:      decimal.NewFromInt(4),
		OutputUnit:          "Pcs",
		LaborCostPerUnit:    decimal.NewFromInt(5),
		OverheadCostPerUnit: decimal.NewFromInt(3),
		Lines: []entities.BOMLine{
			{ComponentCode: "MS001", Quantity: decimal.NewFromInt(1), Unit: "Pcs"},
		},
	}
	castorBOM := &entities.BOM{
		Code:                "BOM-CW001-1",
		Version:             "1",
		Active:              true,
		ProductCode:         "CW001",
		OutputQuantity:      decimal.NewFromInt(1),
		OutputUnit:          "Pcs",
		LaborCostPerUnit:    decimal.NewFromInt(10),
		OverheadCostPerUnit: decimal.NewFromInt(5),
		MarkupPercent:       decimal.NewFromInt(20),
		Lines: []entities.BOMLine{
			{ComponentCode: "MP001", Quantity: decimal.NewFromInt(1), Unit: "Pcs"},
			{ComponentCode: "WH001", Quantity: decimal.NewFromInt(1), Unit: "Pcs"},
			{ComponentCode: "AX001", Quantity: decimal.NewFromInt(80), Unit: "mm"},
		},
	}
	if err := boms.SaveBOM(plateBOM); err != nil {
		panic(err)
	}
	if err := boms.SaveBOM(castorBOM); err != nil {
		panic(err)
	}

	return &CastorScenario{
		Catalog:   catalog,
		Items:     items,
		BOMs:      boms,
		Inventory: inventory,
	}
}
