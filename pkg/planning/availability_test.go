package planning

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/logger"
)

func newCastorEngine(t *testing.T) (*Engine, *CastorScenario) {
	t.Helper()
	scenario := NewCastorScenario()
	engine := NewEngine(scenario.Repositories(), entities.DefaultStageSet(), nil, logger.Nop())
	return engine, scenario
}

func seedRaw(t *testing.T, engine *Engine, item entities.ItemCode, qty string) {
	t.Helper()
	_, err := engine.ApplyTransition(Transition{
		Kind: TransitionReceive, Item: item, Quantity: decimal.RequireFromString(qty),
	})
	if err != nil {
		t.Fatalf("seeding %s failed: %v", item, err)
	}
}

func TestCalculator_AllComponentsAvailable(t *testing.T) {
	engine, _ := newCastorEngine(t)

	seedRaw(t, engine, "MS001", "100")
	seedRaw(t, engine, "WH001", "400")
	seedRaw(t, engine, "AX001", "32")

	report, err := engine.CheckAvailability("CW001", decimal.NewFromInt(400))
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}

	if !report.CanProduce {
		t.Errorf("CanProduce = false, want true: %+v", report.Lines)
	}
	if len(report.Shortages()) != 0 {
		t.Errorf("shortages = %v, want none", report.Shortages())
	}
	if !report.MaxProducible.Equal(decimal.NewFromInt(400)) {
		t.Errorf("MaxProducible = %s, want 400", report.MaxProducible)
	}
}

func TestCalculator_ReportsAdditiveShortages(t *testing.T) {
	engine, _ := newCastorEngine(t)

	seedRaw(t, engine, "MS001", "40")  // 160 castors worth of sheets
	seedRaw(t, engine, "WH001", "100") // 100 castors worth of wheels
	// no rod at all

	report, err := engine.CheckAvailability("CW001", decimal.NewFromInt(400))
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}

	if report.CanProduce {
		t.Error("CanProduce = true, want false")
	}

	shortages := report.Shortages()
	if len(shortages) != 3 {
		t.Fatalf("shortage count = %d, want 3: %+v", len(shortages), shortages)
	}

	byItem := make(map[entities.ItemCode]AvailabilityLine)
	for _, line := range shortages {
		byItem[line.ItemCode] = line
	}

	if got := byItem["MS001"].Shortage; !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("MS001 shortage = %s, want 60", got)
	}
	if got := byItem["WH001"].Shortage; !got.Equal(decimal.NewFromInt(300)) {
		t.Errorf("WH001 shortage = %s, want 300", got)
	}
	if got := byItem["AX001"].Shortage; !got.Equal(decimal.NewFromInt(32)) {
		t.Errorf("AX001 shortage = %s, want 32", got)
	}

	// the wheel is the binding constraint at 100 castors
	if !report.MaxProducible.Equal(decimal.Zero) {
		t.Errorf("MaxProducible = %s, want 0 (no rod in stock)", report.MaxProducible)
	}
}

func TestCalculator_MaxProducibleIsBindingConstraint(t *testing.T) {
	engine, _ := newCastorEngine(t)

	seedRaw(t, engine, "MS001", "100")
	seedRaw(t, engine, "WH001", "150")
	seedRaw(t, engine, "AX001", "32")

	report, err := engine.CheckAvailability("CW001", decimal.NewFromInt(400))
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}

	if report.CanProduce {
		t.Error("CanProduce = true, want false")
	}
	if !report.MaxProducible.Equal(decimal.NewFromInt(150)) {
		t.Errorf("MaxProducible = %s, want 150 (wheels bind)", report.MaxProducible)
	}
}

func TestCalculator_CountsRawPlusFinished(t *testing.T) {
	engine, _ := newCastorEngine(t)

	// half the sheets are raw stock, half already finished goods;
	// quantities mid-process stay out of the availability picture
	seedRaw(t, engine, "MS001", "60")
	mustApply(t, engine.Ledger(), Transition{Kind: TransitionIssueToWIP, Item: "MS001", Quantity: decimal.NewFromInt(10), Stage: "cutting"})
	seedRaw(t, engine, "WH001", "400")
	seedRaw(t, engine, "AX001", "32")

	report, err := engine.CheckAvailability("CW001", decimal.NewFromInt(200))
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}

	var sheet AvailabilityLine
	for _, line := range report.Lines {
		if line.ItemCode == "MS001" {
			sheet = line
		}
	}
	if !sheet.Available.Equal(decimal.NewFromInt(50)) {
		t.Errorf("MS001 available = %s, want 50 (10 in WIP excluded)", sheet.Available)
	}
	if !report.CanProduce {
		t.Error("CanProduce = false, want true (200 castors need 50 sheets)")
	}
}

func TestCalculator_LeafProductChecksItself(t *testing.T) {
	engine, _ := newCastorEngine(t)

	seedRaw(t, engine, "MS001", "5")

	report, err := engine.CheckAvailability("MS001", decimal.NewFromInt(8))
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}

	if report.CanProduce {
		t.Error("CanProduce = true, want false")
	}
	if len(report.Lines) != 1 {
		t.Fatalf("line count = %d, want 1", len(report.Lines))
	}
	if !report.Lines[0].Shortage.Equal(decimal.NewFromInt(3)) {
		t.Errorf("shortage = %s, want 3", report.Lines[0].Shortage)
	}
}
