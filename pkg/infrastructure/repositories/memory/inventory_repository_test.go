package memory

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
)

func TestInventoryRepository_SnapshotRoundTrip(t *testing.T) {
	repo := NewInventoryRepository()

	repo.Seed("MS001", entities.CounterRaw, decimal.NewFromInt(100))
	repo.Seed("MS001", entities.CounterWIP("cutting"), decimal.NewFromInt(20))
	repo.Seed("MS001", entities.CounterScrap, decimal.NewFromInt(3))

	counters, err := repo.LoadSnapshot("MS001")
	if err != nil {
		t.Fatalf("LoadSnapshot returned error: %v", err)
	}

	if !counters.Raw.Equal(decimal.NewFromInt(100)) {
		t.Errorf("raw = %s, want 100", counters.Raw)
	}
	if !counters.WIP["cutting"].Equal(decimal.NewFromInt(20)) {
		t.Errorf("wip[cutting] = %s, want 20", counters.WIP["cutting"])
	}
	if !counters.Scrap.Equal(decimal.NewFromInt(3)) {
		t.Errorf("scrap = %s, want 3", counters.Scrap)
	}
}

func TestInventoryRepository_UnknownItemIsZeroed(t *testing.T) {
	repo := NewInventoryRepository()

	counters, err := repo.LoadSnapshot("GHOST")
	if err != nil {
		t.Fatalf("LoadSnapshot returned error: %v", err)
	}
	if !counters.Raw.IsZero() || !counters.Finished.IsZero() || len(counters.WIP) != 0 {
		t.Errorf("unknown item snapshot not zeroed: %+v", counters)
	}
}

func TestInventoryRepository_SaveDeltaAccumulates(t *testing.T) {
	repo := NewInventoryRepository()
	repo.Seed("MS001", entities.CounterRaw, decimal.NewFromInt(50))

	delta := entities.StateDelta{
		entities.CounterRaw:            decimal.NewFromInt(-10),
		entities.CounterWIP("cutting"): decimal.NewFromInt(10),
	}
	if err := repo.SaveDelta("MS001", delta); err != nil {
		t.Fatalf("SaveDelta returned error: %v", err)
	}
	if err := repo.SaveDelta("MS001", delta); err != nil {
		t.Fatalf("SaveDelta returned error: %v", err)
	}

	counters, err := repo.LoadSnapshot("MS001")
	if err != nil {
		t.Fatalf("LoadSnapshot returned error: %v", err)
	}
	if !counters.Raw.Equal(decimal.NewFromInt(30)) {
		t.Errorf("raw = %s, want 30", counters.Raw)
	}
	if !counters.WIP["cutting"].Equal(decimal.NewFromInt(20)) {
		t.Errorf("wip[cutting] = %s, want 20", counters.WIP["cutting"])
	}
}
