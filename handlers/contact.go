package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/camden-git/clientsysbackend/models"
	"github.com/camden-git/clientsysbackend/repository"
	"gorm.io/gorm"
)

type ContactHandler struct {
	ContactRepo       repository.ContactRepository
	ClientContactRepo repository.ClientContactRepository
}

func NewContactHandler(contactRepo repository.ContactRepository, ccRepo repository.ClientContactRepository) *ContactHandler {
	return &ContactHandler{ContactRepo: contactRepo, ClientContactRepo: ccRepo}
}

// ContactResponseDTO is the contact shape exposed by the API.
type ContactResponseDTO struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	Email         string `json:"email"`
	LinkedClients int64  `json:"linkedClients"`
}

type ContactUpdatePayload struct {
	Name    *string `json:"name,omitempty"`
	Surname *string `json:"surname,omitempty"`
	Email   *string `json:"email,omitempty"`
}

func toContactResponseDTO(contact *models.Contact, linkedClients int64) ContactResponseDTO {
	return ContactResponseDTO{
		ID:            contact.ID,
		Name:          contact.Name,
		Surname:       contact.Surname,
		Email:         contact.Email,
		LinkedClients: linkedClients,
	}
}

// ListContacts returns every contact annotated with its live relationship count
func (ch *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := ch.ContactRepo.ListAll()
	if err != nil {
		log.Printf("Error listing contacts: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching contacts", err.Error())
		return
	}

	dtos := make([]ContactResponseDTO, 0, len(contacts))
	for i := range contacts {
		count, err := ch.ClientContactRepo.CountByContactID(contacts[i].ID)
		if err != nil {
			log.Printf("Error counting clients for contact %d: %v", contacts[i].ID, err)
			writeError(w, http.StatusInternalServerError, "Error fetching contacts", err.Error())
			return
		}
		dtos = append(dtos, toContactResponseDTO(&contacts[i], count))
	}

	writeJSON(w, http.StatusOK, dtos)
}

func (ch *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Surname string `json:"surname"`
		Email   string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Error creating contact", "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Surname) == "" || strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "Error creating contact", "missing required fields: name, surname, and email")
		return
	}

	contact := models.Contact{Name: req.Name, Surname: req.Surname, Email: req.Email}
	if err := ch.ContactRepo.Create(&contact); err != nil {
		if !isUniqueConstraintErr(err) {
			log.Printf("Error creating contact '%s': %v", req.Email, err)
		}
		writeError(w, http.StatusBadRequest, "Error creating contact", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toContactResponseDTO(&contact, 0))
}

func (ch *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error updating contact", "invalid contact ID format")
		return
	}

	var payload ContactUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Error updating contact", "invalid request body: "+err.Error())
		return
	}
	if payload.Email != nil && strings.TrimSpace(*payload.Email) == "" {
		writeError(w, http.StatusBadRequest, "Error updating contact", "email must not be empty")
		return
	}

	contact, err := ch.ContactRepo.Update(id, payload.Name, payload.Surname, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found", "")
			return
		}
		log.Printf("Error updating contact %d: %v", id, err)
		writeError(w, http.StatusBadRequest, "Error updating contact", err.Error())
		return
	}

	count, err := ch.ClientContactRepo.CountByContactID(id)
	if err != nil {
		log.Printf("Error counting clients for contact %d: %v", id, err)
		writeError(w, http.StatusBadRequest, "Error updating contact", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toContactResponseDTO(contact, count))
}

// DeleteContact removes a contact by ID and cascades deletion of all
// relationship rows referencing it.
func (ch *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error deleting contact", "invalid contact ID format")
		return
	}

	if err := ch.ContactRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found", "")
			return
		}
		log.Printf("Error deleting contact %d: %v", id, err)
		writeError(w, http.StatusBadRequest, "Error deleting contact", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Contact deleted successfully"})
}

// GetContactClients returns the clients linked to a contact. The cross
// count on these secondary results is not computed and stays zero.
func (ch *ContactHandler) GetContactClients(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error fetching contact clients", "invalid contact ID format")
		return
	}

	links, err := ch.ClientContactRepo.ListByContactID(id)
	if err != nil {
		log.Printf("Error fetching clients for contact %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Error fetching contact clients", err.Error())
		return
	}

	clients := make([]ClientResponseDTO, 0, len(links))
	for i := range links {
		clients = append(clients, toClientResponseDTO(&links[i].Client, 0))
	}

	writeJSON(w, http.StatusOK, clients)
}
