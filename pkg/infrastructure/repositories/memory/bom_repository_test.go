package memory

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/akfactory/planning/pkg/domain/entities"
)

func testBOM(code, version string, product entities.ItemCode, active bool) *entities.BOM {
	return &entities.BOM{
		Code:           code,
		Version:        version,
		Active:         active,
		ProductCode:    product,
		OutputQuantity: decimal.NewFromInt(1),
		OutputUnit:     "Pcs",
		Lines: []entities.BOMLine{
			{ComponentCode: "MS001", Quantity: decimal.NewFromInt(1), Unit: "Pcs"},
		},
	}
}

func TestBOMRepository_SingleActiveVersionPerProduct(t *testing.T) {
	repo := NewBOMRepository()

	if err := repo.SaveBOM(testBOM("BOM-CW001-1", "1", "CW001", true)); err != nil {
		t.Fatalf("SaveBOM v1 failed: %v", err)
	}
	if err := repo.SaveBOM(testBOM("BOM-CW001-2", "2", "CW001", false)); err != nil {
		t.Fatalf("SaveBOM v2 failed: %v", err)
	}

	active, ok, err := repo.GetActiveBOM("CW001")
	if err != nil {
		t.Fatalf("GetActiveBOM returned error: %v", err)
	}
	if !ok || active.Code != "BOM-CW001-1" {
		t.Fatalf("active BOM = %v, want BOM-CW001-1", active)
	}

	if err := repo.Activate("BOM-CW001-2"); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	active, ok, err = repo.GetActiveBOM("CW001")
	if err != nil {
		t.Fatalf("GetActiveBOM returned error: %v", err)
	}
	if !ok || active.Code != "BOM-CW001-2" {
		t.Fatalf("active BOM after Activate = %v, want BOM-CW001-2", active)
	}

	v1, err := repo.GetBOM("BOM-CW001-1")
	if err != nil {
		t.Fatalf("GetBOM returned error: %v", err)
	}
	if v1.Active {
		t.Error("superseded version still marked active")
	}
}

func TestBOMRepository_ProductWithoutBOM(t *testing.T) {
	repo := NewBOMRepository()

	_, ok, err := repo.GetActiveBOM("MS001")
	if err != nil {
		t.Fatalf("GetActiveBOM returned error: %v", err)
	}
	if ok {
		t.Error("GetActiveBOM found a BOM for an unknown product")
	}
}

func TestBOMRepository_RejectsDuplicateCode(t *testing.T) {
	repo := NewBOMRepository()

	if err := repo.SaveBOM(testBOM("BOM-CW001-1", "1", "CW001", false)); err != nil {
		t.Fatalf("SaveBOM failed: %v", err)
	}
	if err := repo.SaveBOM(testBOM("BOM-CW001-1", "1", "CW001", false)); err == nil {
		t.Error("duplicate BOM code accepted")
	}
}

func TestBOMRepository_ActivateUnknownCode(t *testing.T) {
	repo := NewBOMRepository()

	if err := repo.Activate("BOM-GHOST"); err == nil {
		t.Error("Activate of unknown code succeeded")
	}
}
