package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/camden-git/clientsysbackend/handlers"
	"github.com/camden-git/clientsysbackend/models"
	"github.com/camden-git/clientsysbackend/repository"
	"github.com/camden-git/clientsysbackend/services"
)

type clientDTO struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	LinkedContacts int64  `json:"linkedContacts"`
}

type contactDTO struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	Email         string `json:"email"`
	LinkedClients int64  `json:"linkedClients"`
}

type relationshipDTO struct {
	ID        string `json:"id"`
	ClientID  uint   `json:"clientId"`
	ContactID uint   `json:"contactId"`
	CreatedAt string `json:"createdAt"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Client{}, &models.Contact{}, &models.ClientContact{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	clientRepo := repository.NewGormClientRepository(db)
	contactRepo := repository.NewGormContactRepository(db)
	ccRepo := repository.NewGormClientContactRepository(db)
	codeGen := services.NewCodeGenerator(clientRepo)

	clientHandler := handlers.NewClientHandler(clientRepo, ccRepo, codeGen)
	contactHandler := handlers.NewContactHandler(contactRepo, ccRepo)
	ccHandler := handlers.NewClientContactHandler(ccRepo)
	statsHandler := handlers.NewStatsHandler(sqlDB)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clientHandler.ListClients)
			r.Post("/", clientHandler.CreateClient)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", clientHandler.UpdateClient)
				r.Delete("/", clientHandler.DeleteClient)
				r.Get("/contacts", clientHandler.GetClientContacts)
			})
		})
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", contactHandler.ListContacts)
			r.Post("/", contactHandler.CreateContact)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", contactHandler.UpdateContact)
				r.Delete("/", contactHandler.DeleteContact)
				r.Get("/clients", contactHandler.GetContactClients)
			})
		})
		r.Route("/client-contacts", func(r chi.Router) {
			r.Post("/", ccHandler.LinkContact)
			r.Delete("/{clientId}/{contactId}", ccHandler.UnlinkContact)
		})
		r.Get("/stats", statsHandler.GetStats)
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
	}
	return resp
}

func createClient(t *testing.T, ts *httptest.Server, name string) clientDTO {
	t.Helper()
	var created clientDTO
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/clients", map[string]string{"name": name}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create client %q returned status %d", name, resp.StatusCode)
	}
	return created
}

func createContact(t *testing.T, ts *httptest.Server, name, surname, email string) contactDTO {
	t.Helper()
	var created contactDTO
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/contacts", map[string]string{
		"name": name, "surname": surname, "email": email,
	}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create contact %q returned status %d", email, resp.StatusCode)
	}
	return created
}

func TestCreateClientAssignsSequentialCodes(t *testing.T) {
	ts := newTestServer(t)

	first := createClient(t, ts, "Acme Corp Partners")
	assert.Equal(t, "ACP001", first.Code)
	assert.Equal(t, int64(0), first.LinkedContacts)

	// prefix collision resolved by incrementing the numeric suffix
	second := createClient(t, ts, "Acme Cool Products")
	assert.Equal(t, "ACP002", second.Code)
}

func TestCreateClientValidation(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/clients", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	createClient(t, ts, "Acme Corp Partners")
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/clients", map[string]string{"name": "Acme Corp Partners"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateContactDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	createContact(t, ts, "Jane", "Doe", "a@b.com")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/contacts", map[string]string{
		"name": "John", "surname": "Smith", "email": "a@b.com",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLinkUnlinkLifecycle(t *testing.T) {
	ts := newTestServer(t)

	client := createClient(t, ts, "Acme Corp Partners")
	contact := createContact(t, ts, "Jane", "Doe", "jane@example.com")

	payload := map[string]uint{"clientId": client.ID, "contactId": contact.ID}

	var rel relationshipDTO
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/client-contacts", payload, &rel)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, rel.ID)
	assert.Equal(t, client.ID, rel.ClientID)
	assert.Equal(t, contact.ID, rel.ContactID)
	assert.NotEmpty(t, rel.CreatedAt)

	// linking the same pair twice fails and does not create a second row
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/client-contacts", payload, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var clients []clientDTO
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/clients", nil, &clients)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, clients, 1)
	assert.Equal(t, int64(1), clients[0].LinkedContacts)

	unlinkURL := fmt.Sprintf("%s/api/client-contacts/%d/%d", ts.URL, client.ID, contact.ID)
	resp = doJSON(t, http.MethodDelete, unlinkURL, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, unlinkURL, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRelationshipCountsAreLive(t *testing.T) {
	ts := newTestServer(t)

	client := createClient(t, ts, "Acme Corp Partners")
	jane := createContact(t, ts, "Jane", "Doe", "jane@example.com")
	john := createContact(t, ts, "John", "Smith", "john@example.com")

	for _, c := range []contactDTO{jane, john} {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/client-contacts", map[string]uint{
			"clientId": client.ID, "contactId": c.ID,
		}, nil)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var clients []clientDTO
	doJSON(t, http.MethodGet, ts.URL+"/api/clients", nil, &clients)
	assert.Equal(t, int64(2), clients[0].LinkedContacts)

	var contacts []contactDTO
	doJSON(t, http.MethodGet, ts.URL+"/api/contacts", nil, &contacts)
	for _, c := range contacts {
		assert.Equal(t, int64(1), c.LinkedClients)
	}

	// secondary relationship queries return contacts with the cross count
	// left as a placeholder zero
	var linked []contactDTO
	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/clients/%d/contacts", ts.URL, client.ID), nil, &linked)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, linked, 2)
	for _, c := range linked {
		assert.Equal(t, int64(0), c.LinkedClients)
	}

	var linkedClients []clientDTO
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/contacts/%d/clients", ts.URL, jane.ID), nil, &linkedClients)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, linkedClients, 1)
	assert.Equal(t, "ACP001", linkedClients[0].Code)
	assert.Equal(t, int64(0), linkedClients[0].LinkedContacts)
}

func TestDeleteClientCascades(t *testing.T) {
	ts := newTestServer(t)

	client := createClient(t, ts, "Acme Corp Partners")
	contact := createContact(t, ts, "Jane", "Doe", "jane@example.com")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/client-contacts", map[string]uint{
		"clientId": client.ID, "contactId": contact.ID,
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/clients/%d", ts.URL, client.ID), nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// the contact survives but its relationship rows are gone
	var contacts []contactDTO
	doJSON(t, http.MethodGet, ts.URL+"/api/contacts", nil, &contacts)
	assert.Len(t, contacts, 1)
	assert.Equal(t, int64(0), contacts[0].LinkedClients)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/clients/%d", ts.URL, client.ID), nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateClient(t *testing.T) {
	ts := newTestServer(t)

	client := createClient(t, ts, "Acme Corp Partners")

	var updated clientDTO
	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/clients/%d", ts.URL, client.ID),
		map[string]string{"name": "Acme Corporation"}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Acme Corporation", updated.Name)
	assert.Equal(t, "ACP001", updated.Code, "code must be immutable")

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/clients/999",
		map[string]string{"name": "Nobody"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/clients/not-a-number",
		map[string]string{"name": "Nobody"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateContact(t *testing.T) {
	ts := newTestServer(t)

	contact := createContact(t, ts, "Jane", "Doe", "jane@example.com")

	var updated contactDTO
	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/contacts/%d", ts.URL, contact.ID),
		map[string]string{"surname": "Doe-Smith"}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jane", updated.Name, "untouched fields must survive a partial update")
	assert.Equal(t, "Doe-Smith", updated.Surname)

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/contacts/999",
		map[string]string{"surname": "Nobody"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStats(t *testing.T) {
	ts := newTestServer(t)

	client := createClient(t, ts, "Acme Corp Partners")
	contact := createContact(t, ts, "Jane", "Doe", "jane@example.com")
	doJSON(t, http.MethodPost, ts.URL+"/api/client-contacts", map[string]uint{
		"clientId": client.ID, "contactId": contact.ID,
	}, nil)

	var stats struct {
		Clients       int64 `json:"clients"`
		Contacts      int64 `json:"contacts"`
		Relationships int64 `json:"relationships"`
	}
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/stats", nil, &stats)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), stats.Clients)
	assert.Equal(t, int64(1), stats.Contacts)
	assert.Equal(t, int64(1), stats.Relationships)
}

func TestLinkValidation(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/client-contacts", map[string]uint{}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
