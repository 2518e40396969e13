package models

import "time"

// Contact represents a person in the database using GORM.
// It corresponds to the 'contacts' table.
type Contact struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null"`
	Surname   string    `json:"surname" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ClientContacts []ClientContact `json:"clientContacts,omitempty" gorm:"foreignKey:ContactID"`
}

// TableName explicitly sets the table name for GORM.
func (Contact) TableName() string {
	return "contacts"
}
