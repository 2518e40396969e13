package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/camden-git/clientsysbackend/models"
	"github.com/camden-git/clientsysbackend/repository"
	"github.com/camden-git/clientsysbackend/services"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type ClientHandler struct {
	ClientRepo        repository.ClientRepository
	ClientContactRepo repository.ClientContactRepository
	CodeGen           *services.CodeGenerator
}

func NewClientHandler(clientRepo repository.ClientRepository, ccRepo repository.ClientContactRepository, codeGen *services.CodeGenerator) *ClientHandler {
	return &ClientHandler{ClientRepo: clientRepo, ClientContactRepo: ccRepo, CodeGen: codeGen}
}

// ClientResponseDTO is the client shape exposed by the API. The relationship
// count is always computed live from the relationship rows, never stored.
type ClientResponseDTO struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	LinkedContacts int64  `json:"linkedContacts"`
}

type ClientUpdatePayload struct {
	Name *string `json:"name,omitempty"`
}

func toClientResponseDTO(client *models.Client, linkedContacts int64) ClientResponseDTO {
	return ClientResponseDTO{
		ID:             client.ID,
		Name:           client.Name,
		Code:           client.Code,
		LinkedContacts: linkedContacts,
	}
}

func parseIDParam(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func isUniqueConstraintErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ListClients returns every client annotated with its live relationship count
func (ch *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := ch.ClientRepo.ListAll()
	if err != nil {
		log.Printf("Error listing clients: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching clients", err.Error())
		return
	}

	dtos := make([]ClientResponseDTO, 0, len(clients))
	for i := range clients {
		count, err := ch.ClientContactRepo.CountByClientID(clients[i].ID)
		if err != nil {
			log.Printf("Error counting contacts for client %d: %v", clients[i].ID, err)
			writeError(w, http.StatusInternalServerError, "Error fetching clients", err.Error())
			return
		}
		dtos = append(dtos, toClientResponseDTO(&clients[i], count))
	}

	writeJSON(w, http.StatusOK, dtos)
}

// CreateClient validates the payload, derives the unique client code and
// persists the new record. A brand-new client has no relationships, so the
// returned count is always zero.
func (ch *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Error creating client", "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Error creating client", "missing required field: name")
		return
	}

	code, err := ch.CodeGen.Generate(req.Name)
	if err != nil {
		log.Printf("Error generating code for client '%s': %v", req.Name, err)
		writeError(w, http.StatusBadRequest, "Error creating client", err.Error())
		return
	}

	client := models.Client{Name: req.Name, Code: code}
	if err := ch.ClientRepo.Create(&client); err != nil {
		// duplicate name, or a concurrent creation won the race for the code
		if !isUniqueConstraintErr(err) {
			log.Printf("Error creating client '%s': %v", req.Name, err)
		}
		writeError(w, http.StatusBadRequest, "Error creating client", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toClientResponseDTO(&client, 0))
}

// UpdateClient applies a partial update by ID. The code field is immutable
// and ignored even if supplied.
func (ch *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error updating client", "invalid client ID format")
		return
	}

	var payload ClientUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Error updating client", "invalid request body: "+err.Error())
		return
	}
	if payload.Name != nil && strings.TrimSpace(*payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "Error updating client", "name must not be empty")
		return
	}

	client, err := ch.ClientRepo.Update(id, payload.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Client not found", "")
			return
		}
		log.Printf("Error updating client %d: %v", id, err)
		writeError(w, http.StatusBadRequest, "Error updating client", err.Error())
		return
	}

	count, err := ch.ClientContactRepo.CountByClientID(id)
	if err != nil {
		log.Printf("Error counting contacts for client %d: %v", id, err)
		writeError(w, http.StatusBadRequest, "Error updating client", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toClientResponseDTO(client, count))
}

// DeleteClient removes a client by ID and cascades deletion of all
// relationship rows referencing it.
func (ch *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error deleting client", "invalid client ID format")
		return
	}

	if err := ch.ClientRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Client not found", "")
			return
		}
		log.Printf("Error deleting client %d: %v", id, err)
		writeError(w, http.StatusBadRequest, "Error deleting client", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Client deleted successfully"})
}

// GetClientContacts returns the contacts linked to a client. The cross
// count on these secondary results is not computed and stays zero.
func (ch *ClientHandler) GetClientContacts(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error fetching client contacts", "invalid client ID format")
		return
	}

	links, err := ch.ClientContactRepo.ListByClientID(id)
	if err != nil {
		log.Printf("Error fetching contacts for client %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Error fetching client contacts", err.Error())
		return
	}

	contacts := make([]ContactResponseDTO, 0, len(links))
	for i := range links {
		contacts = append(contacts, toContactResponseDTO(&links[i].Contact, 0))
	}

	writeJSON(w, http.StatusOK, contacts)
}
