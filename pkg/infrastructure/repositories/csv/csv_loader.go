package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadUnits loads the unit catalog from a CSV file
func (l *Loader) LoadUnits(filename string) ([]*entities.Unit, error) {
	records, err := readCSV(filename, "units",
		[]string{"symbol", "name", "category", "is_base"})
	if err != nil {
		return nil, err
	}

	var units []*entities.Unit
	for i, record := range records {
		category, err := entities.ParseUnitCategory(record[2])
		if err != nil {
			return nil, fmt.Errorf("units CSV row %d: %w", i+2, err)
		}

		isBase, err := parseBool(record[3])
		if err != nil {
			return nil, fmt.Errorf("units CSV row %d: invalid is_base: %s", i+2, record[3])
		}

		unit, err := entities.NewUnit(entities.UnitSymbol(record[0]), record[1], category, isBase)
		if err != nil {
			return nil, fmt.Errorf("units CSV row %d: %w", i+2, err)
		}
		units = append(units, unit)
	}

	return units, nil
}

// LoadConversions loads conversion edges from a CSV file. An empty
// item_code column makes the edge global.
func (l *Loader) LoadConversions(filename string) ([]*entities.ConversionEdge, error) {
	records, err := readCSV(filename, "conversions",
		[]string{"from_unit", "to_unit", "factor", "item_code", "notes"})
	if err != nil {
		return nil, err
	}

	var edges []*entities.ConversionEdge
	for i, record := range records {
		factor, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("conversions CSV row %d: invalid factor: %s", i+2, record[2])
		}

		from := entities.UnitSymbol(record[0])
		to := entities.UnitSymbol(record[1])
		itemCode := entities.ItemCode(record[3])

		var edge *entities.ConversionEdge
		if itemCode != "" {
			edge, err = entities.NewItemConversionEdge(itemCode, from, to, factor)
		} else {
			edge, err = entities.NewConversionEdge(from, to, factor)
		}
		if err != nil {
			return nil, fmt.Errorf("conversions CSV row %d: %w", i+2, err)
		}
		edge.Notes = record[4]
		edges = append(edges, edge)
	}

	return edges, nil
}

// LoadItems loads stock items from a CSV file
func (l *Loader) LoadItems(filename string) ([]*entities.StockItem, error) {
	records, err := readCSV(filename, "items",
		[]string{"code", "name", "type", "inventory_unit", "unit_price", "purchased_only"})
	if err != nil {
		return nil, err
	}

	var items []*entities.StockItem
	for i, record := range records {
		itemType, err := entities.ParseItemType(record[2])
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}

		price, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: invalid unit_price: %s", i+2, record[4])
		}

		purchasedOnly, err := parseBool(record[5])
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: invalid purchased_only: %s", i+2, record[5])
		}

		item, err := entities.NewStockItem(
			entities.ItemCode(record[0]), record[1],
			entities.UnitSymbol(record[3]), price, itemType)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}
		item.PurchasedOnly = purchasedOnly
		items = append(items, item)
	}

	return items, nil
}

// LoadBOMs loads BOM headers and their lines from two CSV files and
// assembles them. Every header must gather at least one line.
func (l *Loader) LoadBOMs(bomsFile, linesFile string) ([]*entities.BOM, error) {
	headerRecords, err := readCSV(bomsFile, "boms",
		[]string{"code", "version", "product_code", "output_quantity", "output_unit",
			"labor_cost_per_unit", "overhead_cost_per_unit", "markup_percentage", "active", "description"})
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*entities.BOM, len(headerRecords))
	var boms []*entities.BOM
	for i, record := range headerRecords {
		outputQty, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("boms CSV row %d: invalid output_quantity: %s", i+2, record[3])
		}

		bom, err := entities.NewBOM(record[0], record[1], entities.ItemCode(record[2]), outputQty, entities.UnitSymbol(record[4]))
		if err != nil {
			return nil, fmt.Errorf("boms CSV row %d: %w", i+2, err)
		}

		if bom.LaborCostPerUnit, err = decimal.NewFromString(record[5]); err != nil {
			return nil, fmt.Errorf("boms CSV row %d: invalid labor_cost_per_unit: %s", i+2, record[5])
		}
		if bom.OverheadCostPerUnit, err = decimal.NewFromString(record[6]); err != nil {
			return nil, fmt.Errorf("boms CSV row %d: invalid overhead_cost_per_unit: %s", i+2, record[6])
		}
		if bom.MarkupPercent, err = decimal.NewFromString(record[7]); err != nil {
			return nil, fmt.Errorf("boms CSV row %d: invalid markup_percentage: %s", i+2, record[7])
		}
		if bom.Active, err = parseBool(record[8]); err != nil {
			return nil, fmt.Errorf("boms CSV row %d: invalid active: %s", i+2, record[8])
		}
		bom.Description = record[9]

		if _, dup := byCode[bom.Code]; dup {
			return nil, fmt.Errorf("boms CSV row %d: duplicate BOM code: %s", i+2, bom.Code)
		}
		byCode[bom.Code] = bom
		boms = append(boms, bom)
	}

	lineRecords, err := readCSV(linesFile, "bom_lines",
		[]string{"bom_code", "component_code", "quantity", "unit", "waste_percentage", "unit_cost"})
	if err != nil {
		return nil, err
	}

	for i, record := range lineRecords {
		bom, ok := byCode[record[0]]
		if !ok {
			return nil, fmt.Errorf("bom_lines CSV row %d: unknown BOM code: %s", i+2, record[0])
		}

		qty, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("bom_lines CSV row %d: invalid quantity: %s", i+2, record[2])
		}
		waste, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("bom_lines CSV row %d: invalid waste_percentage: %s", i+2, record[4])
		}
		unitCost, err := decimal.NewFromString(record[5])
		if err != nil {
			return nil, fmt.Errorf("bom_lines CSV row %d: invalid unit_cost: %s", i+2, record[5])
		}

		line, err := entities.NewBOMLine(entities.ItemCode(record[1]), qty, entities.UnitSymbol(record[3]), waste)
		if err != nil {
			return nil, fmt.Errorf("bom_lines CSV row %d: %w", i+2, err)
		}
		line.UnitCost = unitCost
		bom.Lines = append(bom.Lines, *line)
	}

	for _, bom := range boms {
		if len(bom.Lines) == 0 {
			return nil, fmt.Errorf("BOM %s has no lines", bom.Code)
		}
	}

	return boms, nil
}

// OpeningBalance is one seeded inventory counter value
type OpeningBalance struct {
	Item     entities.ItemCode
	Counter  entities.CounterKey
	Quantity decimal.Decimal
}

// LoadInventory loads opening inventory balances from a CSV file. The
// counter column is raw, finished, scrap, or wip:<stage>.
func (l *Loader) LoadInventory(filename string) ([]OpeningBalance, error) {
	records, err := readCSV(filename, "inventory",
		[]string{"item_code", "counter", "quantity"})
	if err != nil {
		return nil, err
	}

	var balances []OpeningBalance
	for i, record := range records {
		counter := entities.CounterKey(record[1])
		switch {
		case counter == entities.CounterRaw,
			counter == entities.CounterFinished,
			counter == entities.CounterScrap,
			strings.HasPrefix(string(counter), "wip:"):
		default:
			return nil, fmt.Errorf("inventory CSV row %d: invalid counter: %s (expected raw, finished, scrap, or wip:<stage>)", i+2, record[1])
		}

		qty, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: invalid quantity: %s", i+2, record[2])
		}
		if qty.IsNegative() {
			return nil, fmt.Errorf("inventory CSV row %d: quantity cannot be negative: %s", i+2, record[2])
		}

		balances = append(balances, OpeningBalance{
			Item:     entities.ItemCode(record[0]),
			Counter:  counter,
			Quantity: qty,
		})
	}

	return balances, nil
}

// readCSV reads all records, validates the header, and returns the
// data rows with per-row column counts already checked.
func readCSV(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseBool(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}
