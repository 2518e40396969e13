package repository

import (
	"errors"
	"fmt"

	"github.com/camden-git/clientsysbackend/models"
	"gorm.io/gorm"
)

// GormClientContactRepository handles the client↔contact relationship rows
type GormClientContactRepository struct {
	db *gorm.DB
}

func NewGormClientContactRepository(db *gorm.DB) ClientContactRepository {
	return &GormClientContactRepository{db: db}
}

func (r *GormClientContactRepository) Create(link *models.ClientContact) error {
	err := r.db.Create(link).Error
	if err != nil {
		return fmt.Errorf("failed to link client %d to contact %d: %w", link.ClientID, link.ContactID, err)
	}
	return nil
}

// GetByPair looks up the relationship row for an exact (client, contact) pair
func (r *GormClientContactRepository) GetByPair(clientID, contactID uint) (*models.ClientContact, error) {
	var link models.ClientContact
	err := r.db.Where("client_id = ? AND contact_id = ?", clientID, contactID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get relationship for client %d / contact %d: %w", clientID, contactID, err)
	}
	return &link, nil
}

func (r *GormClientContactRepository) DeleteByPair(clientID, contactID uint) error {
	result := r.db.Where("client_id = ? AND contact_id = ?", clientID, contactID).Delete(&models.ClientContact{})
	if result.Error != nil {
		return fmt.Errorf("failed to unlink client %d from contact %d: %w", clientID, contactID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByClientID retrieves a client's relationship rows with contacts preloaded
func (r *GormClientContactRepository) ListByClientID(clientID uint) ([]models.ClientContact, error) {
	var links []models.ClientContact
	err := r.db.Preload("Contact").Where("client_id = ?", clientID).Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships for client %d: %w", clientID, err)
	}
	return links, nil
}

// ListByContactID retrieves a contact's relationship rows with clients preloaded
func (r *GormClientContactRepository) ListByContactID(contactID uint) ([]models.ClientContact, error) {
	var links []models.ClientContact
	err := r.db.Preload("Client").Where("contact_id = ?", contactID).Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships for contact %d: %w", contactID, err)
	}
	return links, nil
}

func (r *GormClientContactRepository) CountByClientID(clientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ClientContact{}).Where("client_id = ?", clientID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count relationships for client %d: %w", clientID, err)
	}
	return count, nil
}

func (r *GormClientContactRepository) CountByContactID(contactID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ClientContact{}).Where("contact_id = ?", contactID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count relationships for contact %d: %w", contactID, err)
	}
	return count, nil
}
