package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientContact is the join table tying one client to one contact.
// The (client_id, contact_id) pair is unique: at most one active
// relationship per pair, enforced by the composite index.
type ClientContact struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	ClientID  uint      `json:"clientId" gorm:"not null;uniqueIndex:idx_client_contact"`
	ContactID uint      `json:"contactId" gorm:"not null;uniqueIndex:idx_client_contact"`
	Client    Client    `json:"-" gorm:"foreignKey:ClientID"`
	Contact   Contact   `json:"-" gorm:"foreignKey:ContactID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a unique row ID if not provided.
func (cc *ClientContact) BeforeCreate(tx *gorm.DB) (err error) {
	if cc.ID == "" {
		cc.ID = uuid.New().String()
	}
	return
}

// TableName overrides the table name to be `client_contacts`
func (ClientContact) TableName() string {
	return "client_contacts"
}
