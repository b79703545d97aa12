package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/akfactory/planning/pkg/planning"
)

// writeOutput renders the explosion and availability results to stdout
func writeOutput(result *planning.ExplosionResult, report *planning.AvailabilityReport, format string, verbose bool) error {
	switch format {
	case "text":
		return writeTextOutput(result, report, verbose)
	case "json":
		return writeJSONOutput(result, report)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeTextOutput(result *planning.ExplosionResult, report *planning.AvailabilityReport, verbose bool) error {
	var b strings.Builder

	b.WriteString("═══════════════════════════════════════════════════════════════\n")
	b.WriteString("                 PRODUCTION PLANNING RESULTS\n")
	b.WriteString("═══════════════════════════════════════════════════════════════\n\n")

	fmt.Fprintf(&b, "Product: %s   Quantity: %s\n", result.ProductCode, result.Quantity)
	fmt.Fprintf(&b, "Total Cost: %s\n\n", result.TotalCost.StringFixed(2))

	b.WriteString("MATERIAL REQUIREMENTS\n")
	b.WriteString("────────────────────────────────────────────────────────────────\n")
	for _, line := range report.Lines {
		fmt.Fprintf(&b, "%-12s %-28s %10s %-6s", line.ItemCode, line.Name, line.Required, line.Unit)
		if line.Sufficient() {
			fmt.Fprintf(&b, "  in stock (%s)\n", line.Available)
		} else {
			fmt.Fprintf(&b, "  SHORT %s (have %s)\n", line.Shortage, line.Available)
		}
	}
	b.WriteString("\n")

	if report.CanProduce {
		fmt.Fprintf(&b, "VERDICT: can produce %s\n", report.Quantity)
	} else {
		fmt.Fprintf(&b, "VERDICT: cannot produce %s; current stock supports %s\n",
			report.Quantity, report.MaxProducible)
	}

	if verbose && result.Tree != nil {
		b.WriteString("\nEXPLOSION TREE\n")
		b.WriteString("────────────────────────────────────────────────────────────────\n")
		writeTreeNode(&b, result.Tree, 0)
	}

	b.WriteString("═══════════════════════════════════════════════════════════════\n")
	fmt.Print(b.String())
	return nil
}

func writeTreeNode(b *strings.Builder, node *planning.ExplosionNode, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s [%s] x %s %s  cost %s\n",
		indent, node.ProductCode, node.BOMCode, node.Quantity, node.OutputUnit, node.Cost.StringFixed(2))
	for _, line := range node.Lines {
		if line.Child != nil {
			writeTreeNode(b, line.Child, depth+1)
			continue
		}
		fmt.Fprintf(b, "%s  - %s (%s) %s %s  cost %s\n",
			indent, line.ComponentCode, line.ComponentName, line.Quantity, line.Unit, line.Cost.StringFixed(2))
	}
}

func writeJSONOutput(result *planning.ExplosionResult, report *planning.AvailabilityReport) error {
	type requirementJSON struct {
		ItemCode  string `json:"item_code"`
		Name      string `json:"name"`
		Unit      string `json:"unit"`
		Required  string `json:"required"`
		Available string `json:"available"`
		Shortage  string `json:"shortage,omitempty"`
	}

	out := struct {
		Metadata struct {
			GeneratedAt string `json:"generated_at"`
		} `json:"metadata"`
		Product       string            `json:"product"`
		Quantity      string            `json:"quantity"`
		TotalCost     string            `json:"total_cost"`
		CanProduce    bool              `json:"can_produce"`
		MaxProducible string            `json:"max_producible"`
		Requirements  []requirementJSON `json:"requirements"`
	}{
		Product:       string(result.ProductCode),
		Quantity:      result.Quantity.String(),
		TotalCost:     result.TotalCost.StringFixed(2),
		CanProduce:    report.CanProduce,
		MaxProducible: report.MaxProducible.String(),
		Requirements: lo.Map(report.Lines, func(line planning.AvailabilityLine, _ int) requirementJSON {
			row := requirementJSON{
				ItemCode:  string(line.ItemCode),
				Name:      line.Name,
				Unit:      string(line.Unit),
				Required:  line.Required.String(),
				Available: line.Available.String(),
			}
			if !line.Sufficient() {
				row.Shortage = line.Shortage.String()
			}
			return row
		}),
	}
	out.Metadata.GeneratedAt = time.Now().Format(time.RFC3339)

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Printf("%s\n", jsonBytes)
	return nil
}
