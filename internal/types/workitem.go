package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultGroupName is the sentinel group a work item falls into when no
// group name was given.
const DefaultGroupName = "Unassigned"

type WorkItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code             string    `gorm:"column:code;not null;index:idx_work_item_user_code,unique,composite:user_code" json:"code"`
	Name             string    `gorm:"column:name;not null" json:"name"`
	Description      string    `gorm:"column:description" json:"description,omitempty"`
	Optional         bool      `gorm:"column:optional;not null;default:false" json:"optional"`
	UserID           uuid.UUID `gorm:"type:uuid;column:user_id;not null;index:idx_work_item_user_code,unique,composite:user_code" json:"user_id"`
	User             *User     `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	DefaultGroupName string    `gorm:"column:default_group_name;not null" json:"default_group_name"`
	Domain           Domain    `gorm:"column:domain;type:varchar(16);not null;default:PUBLIC" json:"domain"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (WorkItem) TableName() string { return "work_item" }

func (w *WorkItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// BeforeSave rejects blank code or name unconditionally and applies the
// group-name and domain fallbacks. Runs on create and update.
func (w *WorkItem) BeforeSave(tx *gorm.DB) error {
	w.Normalize()
	return w.Validate()
}

// Normalize applies the defaulting rules at write time so a blank group
// name or domain can never reach storage.
func (w *WorkItem) Normalize() {
	if strings.TrimSpace(w.DefaultGroupName) == "" {
		w.DefaultGroupName = DefaultGroupName
	}
	if w.Domain == "" {
		w.Domain = DomainPublic
	}
}

func (w *WorkItem) Validate() error {
	if strings.TrimSpace(w.Code) == "" {
		return ErrBlankField("work item", "code")
	}
	if strings.TrimSpace(w.Name) == "" {
		return ErrBlankField("work item", "name")
	}
	return nil
}
