package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildvance/estimator-backend/internal/apierr"
	"github.com/buildvance/estimator-backend/internal/types"
)

func TestContactRoundTrip(t *testing.T) {
	original := &types.Contact{
		ID:        uuid.New(),
		FirstName: "Maria",
		LastName:  "Kovacs",
		Email:     "maria@buildvance.dev",
		Phone:     "+36 1 234 5678",
		Labels:    []types.ContactLabel{types.LabelBuilder, types.LabelSupplier},
		Address: types.Address{
			StreetAddress: "12 Vasút utca",
			City:          "Budapest",
			PostalCode:    "1011",
			Country:       "HU",
		},
	}

	back, err := ContactFromDto(ContactToDto(original))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if back.ID != original.ID || back.Email != original.Email {
		t.Fatalf("identity lost: %+v", back)
	}
	if len(back.Labels) != 2 || back.Labels[0] != types.LabelBuilder || back.Labels[1] != types.LabelSupplier {
		t.Fatalf("labels lost order or values: %v", back.Labels)
	}
	if back.Address != original.Address {
		t.Fatalf("address mismatch: %+v", back.Address)
	}
}

func TestContactFromDto_MalformedIDIsMappingError(t *testing.T) {
	_, err := ContactFromDto(ContactDto{ID: "not-a-uuid", FirstName: "A", LastName: "B", Email: "a@b.c"})
	if !apierr.IsMapping(err) {
		t.Fatalf("expected mapping error, got %v", err)
	}
}

func TestContactFromDto_DropsUnknownLabels(t *testing.T) {
	contact, err := ContactFromDto(ContactDto{
		FirstName: "A", LastName: "B", Email: "a@b.c",
		Labels: []string{"OWNER", "ARCHITECT"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contact.Labels) != 1 || contact.Labels[0] != types.LabelOwner {
		t.Fatalf("expected only OWNER to survive, got %v", contact.Labels)
	}
}

func TestParseUUID_MapsFailureToMappingError(t *testing.T) {
	if _, err := ParseUUID("project id", "xyz"); !apierr.IsMapping(err) {
		t.Fatalf("expected mapping error, got %v", err)
	}
	id := uuid.New()
	parsed, err := ParseUUID("project id", id.String())
	if err != nil || parsed != id {
		t.Fatalf("expected %s, got %s err=%v", id, parsed, err)
	}
}

func TestParseDecimal_MapsFailureToMappingError(t *testing.T) {
	if _, err := ParseDecimal("unit price", "12,50"); !apierr.IsMapping(err) {
		t.Fatalf("expected mapping error, got %v", err)
	}
	price, err := ParseDecimal("unit price", "12.50")
	if err != nil || !price.Equal(decimal.NewFromFloat(12.50)) {
		t.Fatalf("expected 12.50, got %s err=%v", price, err)
	}
}

func TestApplyQuoteUpdate_LeavesBlankFieldsUntouched(t *testing.T) {
	quote := &types.Quote{
		Unit:      types.UnitEach,
		UnitPrice: decimal.NewFromFloat(5.00),
		Currency:  "EUR",
		Domain:    types.DomainPrivate,
		Valid:     true,
	}
	if err := ApplyQuoteUpdate(quote, "", "9.99", "", "", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Unit != types.UnitEach || quote.Currency != "EUR" || quote.Domain != types.DomainPrivate || !quote.Valid {
		t.Fatalf("untouched fields changed: %+v", quote)
	}
	if !quote.UnitPrice.Equal(decimal.NewFromFloat(9.99)) {
		t.Fatalf("expected updated price 9.99, got %s", quote.UnitPrice)
	}
}

func TestApplyQuoteUpdate_RejectsUnknownUnit(t *testing.T) {
	quote := &types.Quote{Unit: types.UnitEach}
	err := ApplyQuoteUpdate(quote, "FURLONG", "", "", "", nil)
	if !apierr.IsMapping(err) {
		t.Fatalf("expected mapping error, got %v", err)
	}
	if quote.Unit != types.UnitEach {
		t.Fatalf("unit changed despite rejection: %q", quote.Unit)
	}
}

func TestEstimateLineToDto_FormatsCostWithTwoDecimals(t *testing.T) {
	line := &types.EstimateLine{
		ID:           uuid.New(),
		Strategy:     types.StrategyAverage,
		Quantity:     3,
		Multiplier:   1,
		ComputedCost: decimal.NewFromFloat(180),
	}
	dto := EstimateLineToDto(line)
	if dto.ComputedCost != "180.00" {
		t.Fatalf("expected 180.00, got %q", dto.ComputedCost)
	}
}
