package dto

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildvance/estimator-backend/internal/apierr"
	"github.com/buildvance/estimator-backend/internal/types"
)

// Mapping between wire DTOs and domain entities. Reconstruction failures
// (malformed ids) surface as the mapping error kind, carrying the cause.

func AddressToDto(a types.Address) AddressDto {
	return AddressDto{
		UnitNumber:      a.UnitNumber,
		StreetAddress:   a.StreetAddress,
		City:            a.City,
		StateOrProvince: a.StateOrProvince,
		PostalCode:      a.PostalCode,
		Country:         a.Country,
	}
}

func AddressFromDto(d AddressDto) types.Address {
	return types.Address{
		UnitNumber:      d.UnitNumber,
		StreetAddress:   d.StreetAddress,
		City:            d.City,
		StateOrProvince: d.StateOrProvince,
		PostalCode:      d.PostalCode,
		Country:         d.Country,
	}
}

func ContactToDto(c *types.Contact) ContactDto {
	labels := make([]string, 0, len(c.Labels))
	for _, l := range c.Labels {
		labels = append(labels, string(l))
	}
	return ContactDto{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Labels:    labels,
		Address:   AddressToDto(c.Address),
	}
}

// ContactFromDto reconstructs a contact. Unknown label names are dropped
// silently; a malformed id is a mapping error.
func ContactFromDto(d ContactDto) (*types.Contact, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, apierr.Mapping(fmt.Errorf("contact id %q: %w", d.ID, err))
	}
	return &types.Contact{
		ID:        id,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		Labels:    types.ParseContactLabels(d.Labels),
		Address:   AddressFromDto(d.Address),
	}, nil
}

func UserToDto(u *types.User) UserDto {
	dto := UserDto{
		ID:         u.ID.String(),
		Username:   u.Username,
		Email:      u.Email,
		Registered: u.Registered,
	}
	if u.Contact != nil {
		contact := ContactToDto(u.Contact)
		dto.Contact = &contact
	}
	return dto
}

func WorkItemToDto(w *types.WorkItem) WorkItemDto {
	return WorkItemDto{
		ID:               w.ID.String(),
		Code:             w.Code,
		Name:             w.Name,
		Description:      w.Description,
		Optional:         w.Optional,
		UserID:           w.UserID.String(),
		DefaultGroupName: w.DefaultGroupName,
		Domain:           string(w.Domain),
	}
}

func ProjectToDto(p *types.Project) ProjectDto {
	return ProjectDto{
		ID:        p.ID.String(),
		BuilderID: p.BuilderID.String(),
		OwnerID:   p.OwnerID.String(),
		Location:  AddressToDto(p.Location),
	}
}

func EstimateLineToDto(l *types.EstimateLine) EstimateLineDto {
	return EstimateLineDto{
		ID:           l.ID.String(),
		EstimateID:   l.EstimateID.String(),
		GroupID:      l.GroupID.String(),
		WorkItemID:   l.WorkItemID.String(),
		Quantity:     l.Quantity,
		Strategy:     string(l.Strategy),
		Multiplier:   l.Multiplier,
		ComputedCost: l.ComputedCost.StringFixed(2),
	}
}

func EstimateGroupToDto(g *types.EstimateGroup) EstimateGroupDto {
	lines := make([]EstimateLineDto, 0, len(g.Lines))
	for _, l := range g.Lines {
		lines = append(lines, EstimateLineToDto(l))
	}
	return EstimateGroupDto{
		ID:          g.ID.String(),
		Name:        g.Name,
		Description: g.Description,
		EstimateID:  g.EstimateID.String(),
		Lines:       lines,
	}
}

func EstimateToDto(e *types.Estimate) EstimateDto {
	groups := make([]EstimateGroupDto, 0, len(e.Groups))
	for _, g := range e.Groups {
		groups = append(groups, EstimateGroupToDto(g))
	}
	return EstimateDto{
		ID:                e.ID.String(),
		ProjectID:         e.ProjectID.String(),
		OverallMultiplier: e.OverallMultiplier,
		Groups:            groups,
		CreatedAt:         e.CreatedAt,
	}
}

func QuoteToDto(q *types.Quote) QuoteDto {
	return QuoteDto{
		ID:            q.ID.String(),
		WorkItemID:    q.WorkItemID.String(),
		CreatedByID:   q.CreatedByID.String(),
		SupplierID:    q.SupplierID.String(),
		Unit:          string(q.Unit),
		UnitSymbol:    q.Unit.Symbol(),
		UnitPrice:     q.UnitPrice,
		Currency:      q.Currency,
		Domain:        string(q.Domain),
		Location:      AddressToDto(q.Location),
		Valid:         q.Valid,
		CreatedAt:     q.CreatedAt,
		LastUpdatedAt: q.LastUpdatedAt,
	}
}

// ParseUUID maps a wire identifier onto a uuid, as a mapping error when
// malformed or blank.
func ParseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apierr.Mapping(fmt.Errorf("%s %q: %w", field, value, err))
	}
	return id, nil
}

// ParseDecimal maps a wire money string onto a decimal, as a mapping error
// when malformed.
func ParseDecimal(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apierr.Mapping(fmt.Errorf("%s %q: %w", field, value, err))
	}
	return d, nil
}

// ApplyQuoteUpdate folds a partial update request into an existing quote.
// Blank fields leave the current value untouched; a bad unit or price is a
// mapping error.
func ApplyQuoteUpdate(q *types.Quote, unit, unitPrice, currency, domain string, valid *bool) error {
	if unit != "" {
		parsed, ok := types.ParseUnitOfMeasure(unit)
		if !ok {
			return apierr.Mapping(fmt.Errorf("unknown unit of measure %q", unit))
		}
		q.Unit = parsed
	}
	if unitPrice != "" {
		price, err := ParseDecimal("unit price", unitPrice)
		if err != nil {
			return err
		}
		q.UnitPrice = price.Round(2)
	}
	if currency != "" {
		q.Currency = currency
	}
	if domain != "" {
		q.Domain = types.ParseDomain(domain)
	}
	if valid != nil {
		q.Valid = *valid
	}
	return nil
}
