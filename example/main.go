package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/infrastructure/events"
	"github.com/akfactory/planning/pkg/infrastructure/repositories/memory"
	"github.com/akfactory/planning/pkg/logger"
	"github.com/akfactory/planning/pkg/planning"
)

func main() {
	log := logger.New(logger.Options{ServiceName: "castor-demo", Level: "warn"})

	catalog := memory.NewCatalogRepository()
	items := memory.NewItemRepository()
	boms := memory.NewBOMRepository()
	inventory := memory.NewInventoryRepository()

	setupCastorFactory(catalog, items, boms)

	auditLog := events.NewAuditLog(log)
	engine := planning.NewEngine(planning.Repositories{
		Units:       catalog,
		Conversions: catalog,
		Items:       items,
		BOMs:        boms,
		Inventory:   inventory,
	}, entities.DefaultStageSet(), auditLog, log)

	// receive opening stock
	receive := func(item entities.ItemCode, qty int64) {
		if _, err := engine.ApplyTransition(planning.Transition{
			Kind:     planning.TransitionReceive,
			Item:     item,
			Quantity: decimal.NewFromInt(qty),
		}); err != nil {
			panic(err)
		}
	}
	receive("MS001", 80)  // steel sheets
	receive("WH001", 500) // polyurethane wheels
	receive("AX001", 40)  // metres of axle rod

	orderQty := decimal.NewFromInt(400)
	fmt.Printf("Order: %s castor wheels\n\n", orderQty)

	result, err := engine.ExplodeBOM("CW001", orderQty)
	if err != nil {
		fmt.Printf("explosion failed: %v\n", err)
		return
	}

	fmt.Println("Material requirements:")
	for code, qty := range result.LeafRequirements {
		item, _ := items.GetItem(code)
		fmt.Printf("  %-6s %-22s %8s %s\n", code, item.Name, qty, item.InventoryUnit)
	}
	fmt.Printf("\nRolled-up cost for the run: %s\n\n", result.TotalCost.StringFixed(2))

	report, err := engine.CheckAvailability("CW001", orderQty)
	if err != nil {
		fmt.Printf("availability check failed: %v\n", err)
		return
	}

	if report.CanProduce {
		fmt.Println("Verdict: stock covers the full order")
	} else {
		fmt.Printf("Verdict: short on %d components; stock supports %s castors\n",
			len(report.Shortages()), report.MaxProducible)
		for _, line := range report.Shortages() {
			fmt.Printf("  %-6s need %s, have %s, short %s %s\n",
				line.ItemCode, line.Required, line.Available, line.Shortage, line.Unit)
		}
	}

	// walk some sheets through the shop floor
	fmt.Println("\nProcessing 25 sheets through cutting:")
	mustApply(engine, planning.Transition{
		Kind: planning.TransitionIssueToWIP, Item: "MS001",
		Quantity: decimal.NewFromInt(25), Stage: "cutting",
	})
	mustApply(engine, planning.Transition{
		Kind: planning.TransitionAdvanceStage, Item: "MS001",
		Quantity: decimal.NewFromInt(24), FromStage: "cutting", ToFinished: true,
		ScrapQuantity: decimal.NewFromInt(1),
	})

	counters, _ := engine.Snapshot("MS001")
	fmt.Printf("  MS001 raw=%s finished=%s scrap=%s\n",
		counters.Raw, counters.Finished, counters.Scrap)
	fmt.Printf("  audit trail: %d transitions recorded\n", auditLog.Len())
}

func mustApply(engine *planning.Engine, t planning.Transition) {
	if _, err := engine.ApplyTransition(t); err != nil {
		panic(err)
	}
}

func setupCastorFactory(catalog *memory.CatalogRepository, items *memory.ItemRepository, boms *memory.BOMRepository) {
	err := catalog.LoadUnits([]*entities.Unit{
		{Symbol: "Pcs", Name: "Pieces", Category: entities.CategoryCount, IsBase: true},
		{Symbol: "Kg", Name: "Kilogram", Category: entities.CategoryWeight, IsBase: true},
		{Symbol: "M", Name: "Metre", Category: entities.CategoryLength, IsBase: true},
		{Symbol: "mm", Name: "Millimetre", Category: entities.CategoryLength},
	})
	if err != nil {
		panic(err)
	}

	err = catalog.LoadEdges([]*entities.ConversionEdge{
		{FromUnit: "mm", ToUnit: "M", Factor: decimal.RequireFromString("0.001")},
	})
	if err != nil {
		panic(err)
	}

	err = items.LoadItems([]*entities.StockItem{
		{Code: "CW001", Name: "Castor Wheel 100mm", InventoryUnit: "Pcs", UnitPrice: decimal.NewFromInt(1500), Type: entities.FinishedGood},
		{Code: "MP001", Name: "Mounted Plate", InventoryUnit: "Pcs", UnitPrice: decimal.NewFromInt(250), Type: entities.Intermediate},
		{Code: "MS001", Name: "MS Sheet 2mm", InventoryUnit: "Pcs", UnitPrice: decimal.NewFromInt(800), Type: entities.RawMaterial},
		{Code: "WH001", Name: "Wheel PU 100mm", InventoryUnit: "Pcs", UnitPrice: decimal.NewFromInt(30), Type: entities.RawMaterial},
		{Code: "AX001", Name: "Axle Rod 12mm", InventoryUnit: "M", UnitPrice: decimal.NewFromInt(50), Type: entities.RawMaterial},
	})
	if err != nil {
		panic(err)
	}

	// one sheet stamps four mounting plates
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
}
