package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/camden-git/clientsysbackend/models"
	"github.com/camden-git/clientsysbackend/repository"
	"gorm.io/gorm"
)

type ClientContactHandler struct {
	ClientContactRepo repository.ClientContactRepository
}

func NewClientContactHandler(ccRepo repository.ClientContactRepository) *ClientContactHandler {
	return &ClientContactHandler{ClientContactRepo: ccRepo}
}

// RelationshipResponseDTO is the relationship row shape exposed by the API.
type RelationshipResponseDTO struct {
	ID        string    `json:"id"`
	ClientID  uint      `json:"clientId"`
	ContactID uint      `json:"contactId"`
	CreatedAt time.Time `json:"createdAt"`
}

// LinkContact creates a relationship row for the given pair. At most one
// active relationship may exist per (clientId, contactId) pair; a duplicate
// link fails without creating a second row.
func (h *ClientContactHandler) LinkContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID  uint `json:"clientId"`
		ContactID uint `json:"contactId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Error linking contact to client", "invalid request body: "+err.Error())
		return
	}
	if req.ClientID == 0 || req.ContactID == 0 {
		writeError(w, http.StatusBadRequest, "Error linking contact to client", "missing required fields: clientId and contactId")
		return
	}

	if _, err := h.ClientContactRepo.GetByPair(req.ClientID, req.ContactID); err == nil {
		writeError(w, http.StatusBadRequest, "Contact is already linked to this client", "")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking relationship for client %d / contact %d: %v", req.ClientID, req.ContactID, err)
		writeError(w, http.StatusBadRequest, "Error linking contact to client", err.Error())
		return
	}

	link := models.ClientContact{ClientID: req.ClientID, ContactID: req.ContactID}
	if err := h.ClientContactRepo.Create(&link); err != nil {
		// the composite unique index is the backstop when two link requests
		// for the same pair race past the existence check
		if isUniqueConstraintErr(err) {
			writeError(w, http.StatusBadRequest, "Contact is already linked to this client", err.Error())
			return
		}
		log.Printf("Error linking client %d to contact %d: %v", req.ClientID, req.ContactID, err)
		writeError(w, http.StatusBadRequest, "Error linking contact to client", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, RelationshipResponseDTO{
		ID:        link.ID,
		ClientID:  link.ClientID,
		ContactID: link.ContactID,
		CreatedAt: link.CreatedAt,
	})
}

// UnlinkContact deletes the relationship row for an exact pair match.
func (h *ClientContactHandler) UnlinkContact(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error unlinking contact from client", "invalid client ID format")
		return
	}
	contactID, err := parseIDParam(r, "contactId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error unlinking contact from client", "invalid contact ID format")
		return
	}

	if err := h.ClientContactRepo.DeleteByPair(clientID, contactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Relationship not found", "")
			return
		}
		log.Printf("Error unlinking client %d from contact %d: %v", clientID, contactID, err)
		writeError(w, http.StatusBadRequest, "Error unlinking contact from client", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Contact unlinked from client successfully"})
}
