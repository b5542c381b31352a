package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wire shapes. Identifiers travel as strings and are validated during
// mapping; enums travel as their symbolic names.

type AddressDto struct {
	UnitNumber      string `json:"unit_number,omitempty"`
	StreetAddress   string `json:"street_address,omitempty"`
	City            string `json:"city,omitempty"`
	StateOrProvince string `json:"state_or_province,omitempty"`
	PostalCode      string `json:"postal_code,omitempty"`
	Country         string `json:"country,omitempty"`
}

type ContactDto struct {
	ID        string     `json:"id,omitempty"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Labels    []string   `json:"labels,omitempty"`
	Address   AddressDto `json:"address"`
}

type UserDto struct {
	ID         string      `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Registered bool        `json:"registered"`
	Contact    *ContactDto `json:"contact,omitempty"`
}

type WorkItemDto struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	Optional         bool   `json:"optional"`
	UserID           string `json:"user_id"`
	DefaultGroupName string `json:"default_group_name"`
	Domain           string `json:"domain"`
}

type ProjectDto struct {
	ID        string     `json:"id"`
	BuilderID string     `json:"builder_id"`
	OwnerID   string     `json:"owner_id"`
	Location  AddressDto `json:"location"`
}

type EstimateLineDto struct {
	ID           string  `json:"id"`
	EstimateID   string  `json:"estimate_id"`
	GroupID      string  `json:"group_id"`
	WorkItemID   string  `json:"work_item_id"`
	Quantity     float64 `json:"quantity"`
	Strategy     string  `json:"strategy"`
	Multiplier   float64 `json:"multiplier"`
	ComputedCost string  `json:"computed_cost"`
}

type EstimateGroupDto struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	EstimateID  string            `json:"estimate_id"`
	Lines       []EstimateLineDto `json:"lines"`
}

type EstimateDto struct {
	ID                string             `json:"id"`
	ProjectID         string             `json:"project_id"`
	OverallMultiplier float64            `json:"overall_multiplier"`
	Groups            []EstimateGroupDto `json:"groups"`
	CreatedAt         time.Time          `json:"created_at"`
}

type QuoteDto struct {
	ID            string          `json:"id"`
	WorkItemID    string          `json:"work_item_id"`
	CreatedByID   string          `json:"created_by_id"`
	SupplierID    string          `json:"supplier_id"`
	Unit          string          `json:"unit"`
	UnitSymbol    string          `json:"unit_symbol"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Currency      string          `json:"currency"`
	Domain        string          `json:"domain"`
	Location      AddressDto      `json:"location"`
	Valid         bool            `json:"valid"`
	CreatedAt     time.Time       `json:"created_at"`
	LastUpdatedAt time.Time       `json:"last_updated_at"`
}

type QuotePageDto struct {
	Items      []QuoteDto `json:"items"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalCount int64      `json:"total_count"`
	HasNext    bool       `json:"has_next"`
}

// helper shared by mappers
func parseID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}
