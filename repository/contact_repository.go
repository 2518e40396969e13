package repository

import (
	"errors"
	"fmt"

	"github.com/camden-git/clientsysbackend/models"
	"gorm.io/gorm"
)

type GormContactRepository struct {
	db *gorm.DB
}

func NewGormContactRepository(db *gorm.DB) ContactRepository {
	return &GormContactRepository{db: db}
}

func (r *GormContactRepository) Create(contact *models.Contact) error {
	err := r.db.Create(contact).Error
	if err != nil {
		return fmt.Errorf("failed to create contact %s: %w", contact.Email, err)
	}
	return nil
}

func (r *GormContactRepository) GetByID(id uint) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get contact by ID %d: %w", id, err)
	}
	return &contact, nil
}

// ListAll retrieves all contacts, ordered by surname then name
func (r *GormContactRepository) ListAll() ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.Order("surname ASC, name ASC").Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// Update applies a partial update to a contact
func (r *GormContactRepository) Update(id uint, name, surname, email *string) (*models.Contact, error) {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if surname != nil {
		updates["surname"] = *surname
	}
	if email != nil {
		updates["email"] = *email
	}

	if len(updates) > 0 {
		result := r.db.Model(&models.Contact{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update contact ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	return r.GetByID(id)
}

// Delete removes a contact and all relationship rows referencing it
func (r *GormContactRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Contact{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete contact ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("contact_id = ?", id).Delete(&models.ClientContact{}).Error; err != nil {
			return fmt.Errorf("failed to delete relationships for contact ID %d: %w", id, err)
		}
		return nil
	})
}
