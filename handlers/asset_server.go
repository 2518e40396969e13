package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// UIServer creates a handler that serves the management UI from the given
// directory. Unknown paths fall back to index.html so the UI owns its own
// routing; requests that try to escape the asset directory are rejected.
func UIServer(assetsDir string) http.HandlerFunc {
	cleanAssetsDir, err := filepath.Abs(filepath.Clean(assetsDir))
	if err != nil {
		log.Fatalf("FATAL: failed to resolve UI assets directory '%s': %v", assetsDir, err)
	}
	log.Printf("Serving UI assets from directory: %s", cleanAssetsDir)

	return func(w http.ResponseWriter, r *http.Request) {
		relativePath := chi.URLParam(r, "*")
		if relativePath == "" {
			relativePath = "index.html"
		}
		if strings.Contains(relativePath, "..") {
			http.Error(w, "Invalid asset path", http.StatusBadRequest)
			return
		}

		requestedPath := filepath.Clean(filepath.Join(cleanAssetsDir, relativePath))
		if !strings.HasPrefix(requestedPath, cleanAssetsDir) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			log.Printf("SECURITY: attempted asset access outside UI directory: Request='%s', Resolved='%s'", r.URL.Path, requestedPath)
			return
		}

		if info, err := os.Stat(requestedPath); os.IsNotExist(err) || (err == nil && info.IsDir()) {
			// fall back to the UI entry point
			http.ServeFile(w, r, filepath.Join(cleanAssetsDir, "index.html"))
			return
		} else if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			log.Printf("Error stating asset file %s: %v", requestedPath, err)
			return
		}

		http.ServeFile(w, r, requestedPath)
	}
}
