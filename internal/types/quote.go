package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UnitOfMeasure is the unit a quote prices against. Persisted by name; the
// symbol is display-only.
type UnitOfMeasure string

const (
	UnitSquareMeter UnitOfMeasure = "SQUARE_METER"
	UnitSquareFoot  UnitOfMeasure = "SQUARE_FOOT"
	UnitCubicMeter  UnitOfMeasure = "CUBIC_METER"
	UnitCubicFoot   UnitOfMeasure = "CUBIC_FOOT"
	UnitMeter       UnitOfMeasure = "METER"
	UnitFoot        UnitOfMeasure = "FOOT"
	UnitEach        UnitOfMeasure = "EACH"
	UnitKilogram    UnitOfMeasure = "KILOGRAM"
	UnitTon         UnitOfMeasure = "TON"
	UnitLiter       UnitOfMeasure = "LITER"
	UnitMilliliter  UnitOfMeasure = "MILLILITER"
	UnitHour        UnitOfMeasure = "HOUR"
	UnitDay         UnitOfMeasure = "DAY"
)

var unitSymbols = map[UnitOfMeasure]string{
	UnitSquareMeter: "m²",
	UnitSquareFoot:  "ft²",
	UnitCubicMeter:  "m³",
	UnitCubicFoot:   "ft³",
	UnitMeter:       "m",
	UnitFoot:        "ft",
	UnitEach:        "ea",
	UnitKilogram:    "kg",
	UnitTon:         "t",
	UnitLiter:       "L",
	UnitMilliliter:  "mL",
	UnitHour:        "h",
	UnitDay:         "d",
}

func (u UnitOfMeasure) Symbol() string {
	return unitSymbols[u]
}

// ParseUnitOfMeasure is strict: there is no default unit.
func ParseUnitOfMeasure(s string) (UnitOfMeasure, bool) {
	unit := UnitOfMeasure(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := unitSymbols[unit]
	return unit, ok
}

// Quote is a priced offer for a work item. It shares WorkItem and User as
// foreign references with the estimate aggregate but is independent of it.
type Quote struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	WorkItemID    uuid.UUID       `gorm:"type:uuid;column:work_item_id;not null;index" json:"work_item_id"`
	WorkItem      *WorkItem       `gorm:"foreignKey:WorkItemID;references:ID" json:"work_item,omitempty"`
	CreatedByID   uuid.UUID       `gorm:"type:uuid;column:created_by_id;not null;index" json:"created_by_id"`
	CreatedBy     *User           `gorm:"foreignKey:CreatedByID;references:ID" json:"created_by,omitempty"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;column:supplier_id;not null;index" json:"supplier_id"`
	Supplier      *User           `gorm:"foreignKey:SupplierID;references:ID" json:"supplier,omitempty"`
	Unit          UnitOfMeasure   `gorm:"column:unit;type:varchar(32);not null" json:"unit"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:decimal(17,2);not null" json:"unit_price"`
	Currency      string          `gorm:"column:currency;type:varchar(3);not null" json:"currency"`
	Domain        Domain          `gorm:"column:domain;type:varchar(16);not null;default:PUBLIC" json:"domain"`
	Location      Address         `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Valid         bool            `gorm:"column:valid;not null;default:true" json:"valid"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null" json:"created_at"`
	LastUpdatedAt time.Time       `gorm:"column:last_updated_at;not null" json:"last_updated_at"`
}

func (Quote) TableName() string { return "quote" }

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	now := time.Now().UTC()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.LastUpdatedAt = now
	return nil
}

// BeforeUpdate bumps the audit timestamp on every mutation, including ones
// that change no business field.
func (q *Quote) BeforeUpdate(tx *gorm.DB) error {
	q.LastUpdatedAt = time.Now().UTC()
	return nil
}
