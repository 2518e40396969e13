package repository

import (
	"github.com/camden-git/clientsysbackend/models"
)

// ClientRepository defines the methods for client data operations
type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(id uint) (*models.Client, error)
	ListAll() ([]models.Client, error)
	Update(id uint, name *string) (*models.Client, error)
	Delete(id uint) error
	CodeExists(code string) (bool, error)
}

// ContactRepository defines the methods for contact data operations
type ContactRepository interface {
	Create(contact *models.Contact) error
	GetByID(id uint) (*models.Contact, error)
	ListAll() ([]models.Contact, error)
	Update(id uint, name, surname, email *string) (*models.Contact, error)
	Delete(id uint) error
}

// ClientContactRepository defines the methods for the relationship rows
// tying clients to contacts
type ClientContactRepository interface {
	Create(link *models.ClientContact) error
	GetByPair(clientID, contactID uint) (*models.ClientContact, error)
	DeleteByPair(clientID, contactID uint) error
	ListByClientID(clientID uint) ([]models.ClientContact, error)
	ListByContactID(contactID uint) ([]models.ClientContact, error)
	CountByClientID(clientID uint) (int64, error)
	CountByContactID(contactID uint) (int64, error)
}
