package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/camden-git/clientsysbackend/database"
)

// StatsHandler serves the record totals shown on the UI dashboard. It
// queries the raw *sql.DB directly rather than going through the
// repositories.
type StatsHandler struct {
	DB *sql.DB
}

func NewStatsHandler(db *sql.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

func (sh *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := database.GetStats(sh.DB)
	if err != nil {
		log.Printf("Error fetching stats: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching stats", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
