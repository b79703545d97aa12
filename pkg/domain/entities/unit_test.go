package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseUnitCategory(t *testing.T) {
	for _, name := range []string{"Count", "Weight", "Length", "Volume", "Area"} {
		category, err := ParseUnitCategory(name)
		if err != nil {
			t.Errorf("ParseUnitCategory(%s) returned error: %v", name, err)
		}
		if category.String() != name {
			t.Errorf("round trip %s -> %s", name, category.String())
		}
	}

	if _, err := ParseUnitCategory("Temperature"); err == nil {
		t.Error("unknown category should fail")
	}
}

func TestParseItemType_AcceptsLegacyNames(t *testing.T) {
	tests := []struct {
		input string
		want  ItemType
	}{
		{"RawMaterial", RawMaterial},
		{"material", RawMaterial},
		{"Consumable", Consumable},
		{"consumable", Consumable},
		{"Intermediate", Intermediate},
		{"semi_finished", Intermediate},
		{"FinishedGood", FinishedGood},
		{"product", FinishedGood},
	}

	for _, tt := range tests {
		got, err := ParseItemType(tt.input)
		if err != nil {
			t.Errorf("ParseItemType(%s) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseItemType(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}

	if _, err := ParseItemType("widget"); err == nil {
		t.Error("unknown item type should fail")
	}
}

func TestNewConversionEdge_Validation(t *testing.T) {
	if _, err := NewConversionEdge("Kg", "Kg", decimal.NewFromInt(1)); err == nil {
		t.Error("self-conversion should fail")
	}
	if _, err := NewConversionEdge("g", "Kg", decimal.Zero); err == nil {
		t.Error("zero factor should fail")
	}
	if _, err := NewConversionEdge("g", "Kg", decimal.NewFromInt(-1)); err == nil {
		t.Error("negative factor should fail")
	}
	if _, err := NewItemConversionEdge("", "Pcs", "Kg", decimal.NewFromInt(25)); err == nil {
		t.Error("item-scoped edge without item should fail")
	}
}

func TestConversionEdge_Reciprocal(t *testing.T) {
	edge, err := NewConversionEdge("Doz", "Pcs", decimal.NewFromInt(12))
	if err != nil {
		t.Fatalf("NewConversionEdge returned error: %v", err)
	}

	if edge.Scoped() {
		t.Error("global edge reported as scoped")
	}
	want := decimal.NewFromInt(1).Div(decimal.NewFromInt(12))
	if !edge.Reciprocal().Equal(want) {
		t.Errorf("Reciprocal() = %s, want %s", edge.Reciprocal(), want)
	}
}
