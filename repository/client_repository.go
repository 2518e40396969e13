package repository

import (
	"errors"
	"fmt"

	"github.com/camden-git/clientsysbackend/models"
	"gorm.io/gorm"
)

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) Create(client *models.Client) error {
	err := r.db.Create(client).Error
	if err != nil {
		return fmt.Errorf("failed to create client %s: %w", client.Name, err)
	}
	return nil
}

func (r *GormClientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get client by ID %d: %w", id, err)
	}
	return &client, nil
}

// ListAll retrieves all clients, ordered by name
func (r *GormClientRepository) ListAll() ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Order("name ASC").Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// Update applies a partial update to a client. The code column is never
// written here: it is assigned once at creation and immutable after that.
func (r *GormClientRepository) Update(id uint, name *string) (*models.Client, error) {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}

	if len(updates) > 0 {
		result := r.db.Model(&models.Client{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update client ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	return r.GetByID(id)
}

// Delete removes a client and all relationship rows referencing it
func (r *GormClientRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Client{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete client ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// cascade: drop every relationship row owned by this client
		if err := tx.Where("client_id = ?", id).Delete(&models.ClientContact{}).Error; err != nil {
			return fmt.Errorf("failed to delete relationships for client ID %d: %w", id, err)
		}
		return nil
	})
}

// CodeExists reports whether any client already holds the given code
func (r *GormClientRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Client{}).Where("code = ?", code).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check code %s: %w", code, err)
	}
	return count > 0, nil
}
