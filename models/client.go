package models

import "time"

// Client represents a customer organisation in the database using GORM.
// It corresponds to the 'clients' table.
type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"` // assigned once at creation, never updated
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	// omitempty hides these when not preloaded
	ClientContacts []ClientContact `json:"clientContacts,omitempty" gorm:"foreignKey:ClientID"`
}

// TableName explicitly sets the table name for GORM.
func (Client) TableName() string {
	return "clients"
}
