package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/config"
	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/infrastructure/events"
	csvrepo "github.com/akfactory/planning/pkg/infrastructure/repositories/csv"
	"github.com/akfactory/planning/pkg/infrastructure/repositories/memory"
	"github.com/akfactory/planning/pkg/logger"
	"github.com/akfactory/planning/pkg/planning"
)

func main() {
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		unitsFile       = flag.String("units", "", "Path to units CSV file")
		conversionsFile = flag.String("conversions", "", "Path to conversions CSV file")
		itemsFile       = flag.String("items", "", "Path to items CSV file")
		bomsFile        = flag.String("boms", "", "Path to BOM headers CSV file")
		bomLinesFile    = flag.String("bom-lines", "", "Path to BOM lines CSV file")
		inventoryFile   = flag.String("inventory", "", "Path to opening inventory CSV file (optional)")
		product         = flag.String("product", "", "Product item code to plan")
		quantity        = flag.String("qty", "1", "Quantity to plan")
		format          = flag.String("format", "text", "Output format: text, json")
		verbose         = flag.Bool("verbose", false, "Enable verbose output")
		help            = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *help {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(logger.Options{
		ServiceName: cfg.ServiceName,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})

	if *scenarioDir != "" {
		*unitsFile = filepath.Join(*scenarioDir, "units.csv")
		*conversionsFile = filepath.Join(*scenarioDir, "conversions.csv")
		*itemsFile = filepath.Join(*scenarioDir, "items.csv")
		*bomsFile = filepath.Join(*scenarioDir, "boms.csv")
		*bomLinesFile = filepath.Join(*scenarioDir, "bom_lines.csv")
		if candidate := filepath.Join(*scenarioDir, "inventory.csv"); fileExists(candidate) {
			*inventoryFile = candidate
		}
	}

	if *unitsFile == "" || *conversionsFile == "" || *itemsFile == "" || *bomsFile == "" || *bomLinesFile == "" {
		fmt.Fprintln(os.Stderr, "Error: provide -scenario or all of -units, -conversions, -items, -boms, -bom-lines")
		printUsage()
		os.Exit(1)
	}
	if *product == "" {
		fmt.Fprintln(os.Stderr, "Error: -product is required")
		os.Exit(1)
	}

	qty, err := decimal.NewFromString(*quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -qty %q\n", *quantity)
		os.Exit(1)
	}

	stages, err := cfg.StageSet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine, err := buildEngine(stages, log, scenarioInput{
		units:       *unitsFile,
		conversions: *conversionsFile,
		items:       *itemsFile,
		boms:        *bomsFile,
		bomLines:    *bomLinesFile,
		inventory:   *inventoryFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := engine.ExplodeBOM(entities.ItemCode(*product), qty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report, err := engine.CheckAvailability(entities.ItemCode(*product), qty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutput(result, report, *format, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type scenarioInput struct {
	units       string
	conversions string
	items       string
	boms        string
	bomLines    string
	inventory   string
}

func buildEngine(stages *entities.StageSet, log zerolog.Logger, input scenarioInput) (*planning.Engine, error) {
	loader := csvrepo.NewLoader()

	units, err := loader.LoadUnits(input.units)
	if err != nil {
		return nil, err
	}
	edges, err := loader.LoadConversions(input.conversions)
	if err != nil {
		return nil, err
	}
	items, err := loader.LoadItems(input.items)
	if err != nil {
		return nil, err
	}
	boms, err := loader.LoadBOMs(input.boms, input.bomLines)
	if err != nil {
		return nil, err
	}

	catalog := memory.NewCatalogRepository()
	if err := catalog.LoadUnits(units); err != nil {
		return nil, err
	}
	if err := catalog.LoadEdges(edges); err != nil {
		return nil, err
	}

	itemRepo := memory.NewItemRepository()
	if err := itemRepo.LoadItems(items); err != nil {
		return nil, err
	}

	bomRepo := memory.NewBOMRepository()
	for _, bom := range boms {
		if err := bomRepo.SaveBOM(bom); err != nil {
			return nil, err
		}
	}

	inventoryRepo := memory.NewInventoryRepository()
	if input.inventory != "" {
		balances, err := loader.LoadInventory(input.inventory)
		if err != nil {
			return nil, err
		}
		for _, balance := range balances {
			inventoryRepo.Seed(balance.Item, balance.Counter, balance.Quantity)
		}
	}

	auditLog := events.NewAuditLog(log)

	return planning.NewEngine(planning.Repositories{
		Units:       catalog,
		Conversions: catalog,
		Items:       itemRepo,
		BOMs:        bomRepo,
		Inventory:   inventoryRepo,
	}, stages, auditLog, log), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func printUsage() {
	fmt.Println(`planctl - production planning engine

Usage:
  planctl -scenario <dir> -product <code> [-qty N] [-format text|json]
  planctl -units u.csv -conversions c.csv -items i.csv -boms b.csv -bom-lines l.csv [-inventory inv.csv] -product <code>

Scenario directory layout:
  units.csv        symbol,name,category,is_base
  conversions.csv  from_unit,to_unit,factor,item_code,notes
  items.csv        code,name,type,inventory_unit,unit_price,purchased_only
  boms.csv         code,version,product_code,output_quantity,output_unit,labor_cost_per_unit,overhead_cost_per_unit,markup_percentage,active,description
  bom_lines.csv    bom_code,component_code,quantity,unit,waste_percentage,unit_cost
  inventory.csv    item_code,counter,quantity   (optional; counter is raw, finished, scrap, or wip:<stage>)

Flags:`)
	flag.PrintDefaults()
}
