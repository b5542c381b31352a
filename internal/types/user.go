package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns exactly one Contact. The Contact is saved in the same
// transaction as the User and loaded eagerly; a User never exists without
// one. Projects and Quotes reference the User but are never written through
// it.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username   string    `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Registered bool      `gorm:"column:registered;not null;default:false" json:"registered"`
	ContactID  uuid.UUID `gorm:"type:uuid;column:contact_id;uniqueIndex;not null" json:"contact_id"`
	Contact    *Contact  `gorm:"foreignKey:ContactID;references:ID" json:"contact,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "app_user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
