package types

import "testing"

func TestParseUnitOfMeasure_IsStrict(t *testing.T) {
	unit, ok := ParseUnitOfMeasure(" square_meter ")
	if !ok || unit != UnitSquareMeter {
		t.Fatalf("expected SQUARE_METER, got %q ok=%v", unit, ok)
	}
	if _, ok := ParseUnitOfMeasure("FURLONG"); ok {
		t.Fatalf("expected unknown unit to be rejected")
	}
	if _, ok := ParseUnitOfMeasure(""); ok {
		t.Fatalf("expected blank unit to be rejected")
	}
}

func TestUnitOfMeasureSymbol(t *testing.T) {
	if got := UnitSquareMeter.Symbol(); got != "m²" {
		t.Fatalf("expected m², got %q", got)
	}
	if got := UnitEach.Symbol(); got != "ea" {
		t.Fatalf("expected ea, got %q", got)
	}
}

func TestParseDomain_FallsBackToPublic(t *testing.T) {
	if got := ParseDomain("private"); got != DomainPrivate {
		t.Fatalf("expected PRIVATE, got %q", got)
	}
	if got := ParseDomain(""); got != DomainPublic {
		t.Fatalf("expected PUBLIC fallback for blank, got %q", got)
	}
	if got := ParseDomain("internal"); got != DomainPublic {
		t.Fatalf("expected PUBLIC fallback for unknown, got %q", got)
	}
}
