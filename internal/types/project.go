package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is owned by a builder and an owner. The two may be the same
// person. Its Estimates are created and listed through the estimate service,
// never cascaded from Project writes.
type Project struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BuilderID uuid.UUID `gorm:"type:uuid;column:builder_id;not null;index" json:"builder_id"`
	Builder   *User     `gorm:"foreignKey:BuilderID;references:ID" json:"builder,omitempty"`
	OwnerID   uuid.UUID `gorm:"type:uuid;column:owner_id;not null;index" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
	Location  Address   `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string { return "project" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
