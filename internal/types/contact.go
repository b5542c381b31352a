package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContactLabel tags a contact with the roles it plays. Persisted by name,
// never by ordinal.
type ContactLabel string

const (
	LabelSupplier        ContactLabel = "SUPPLIER"
	LabelSubcontractor   ContactLabel = "SUBCONTRACTOR"
	LabelLender          ContactLabel = "LENDER"
	LabelPermitAuthority ContactLabel = "PERMIT_AUTHORITY"
	LabelOther           ContactLabel = "OTHER"
	LabelBuilder         ContactLabel = "BUILDER"
	LabelOwner           ContactLabel = "OWNER"
	LabelAdministrator   ContactLabel = "ADMINISTRATOR"
)

var knownLabels = map[ContactLabel]struct{}{
	LabelSupplier:        {},
	LabelSubcontractor:   {},
	LabelLender:          {},
	LabelPermitAuthority: {},
	LabelOther:           {},
	LabelBuilder:         {},
	LabelOwner:           {},
	LabelAdministrator:   {},
}

// ParseContactLabel is strict: unknown names are reported, not defaulted.
func ParseContactLabel(s string) (ContactLabel, bool) {
	label := ContactLabel(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := knownLabels[label]
	return label, ok
}

// ParseContactLabels drops unknown names silently, keeping input order.
func ParseContactLabels(names []string) []ContactLabel {
	var labels []ContactLabel
	for _, name := range names {
		if label, ok := ParseContactLabel(name); ok {
			labels = append(labels, label)
		}
	}
	return labels
}

// MergeLabels appends the given labels to existing, preserving insertion
// order and collapsing duplicates. Merging is idempotent.
func MergeLabels(existing []ContactLabel, labels ...ContactLabel) []ContactLabel {
	seen := make(map[ContactLabel]struct{}, len(existing)+len(labels))
	merged := make([]ContactLabel, 0, len(existing)+len(labels))
	for _, l := range existing {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		merged = append(merged, l)
	}
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		merged = append(merged, l)
	}
	return merged
}

type Contact struct {
	ID        uuid.UUID                         `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string                            `gorm:"column:first_name;not null" json:"first_name"`
	LastName  string                            `gorm:"column:last_name;not null" json:"last_name"`
	Email     string                            `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Phone     string                            `gorm:"column:phone" json:"phone,omitempty"`
	Labels    datatypes.JSONSlice[ContactLabel] `gorm:"column:labels;type:jsonb" json:"labels"`
	Address   Address                           `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt time.Time                         `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time                         `gorm:"not null" json:"updated_at"`
}

func (Contact) TableName() string { return "contact" }

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the entity out of an invalid state even on direct
// persistence, independent of the service layer.
func (c *Contact) BeforeSave(tx *gorm.DB) error {
	return c.Validate()
}

func (c *Contact) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrBlankField("contact", "first name")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return ErrBlankField("contact", "last name")
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrBlankField("contact", "email")
	}
	return nil
}
