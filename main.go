package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/camden-git/clientsysbackend/config"
	"github.com/camden-git/clientsysbackend/database"
	"github.com/camden-git/clientsysbackend/handlers"
	"github.com/camden-git/clientsysbackend/repository"
	"github.com/camden-git/clientsysbackend/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	clientRepo := repository.NewGormClientRepository(db)
	contactRepo := repository.NewGormContactRepository(db)
	clientContactRepo := repository.NewGormClientContactRepository(db)
	codeGen := services.NewCodeGenerator(clientRepo)

	clientHandler := handlers.NewClientHandler(clientRepo, clientContactRepo, codeGen)
	contactHandler := handlers.NewContactHandler(contactRepo, clientContactRepo)
	clientContactHandler := handlers.NewClientContactHandler(clientContactRepo)
	statsHandler := handlers.NewStatsHandler(sqlDB)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

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
			r.Post("/", clientContactHandler.LinkContact)
			r.Delete("/{clientId}/{contactId}", clientContactHandler.UnlinkContact)
		})

		r.Get("/stats", statsHandler.GetStats)

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"OK","timestamp":"` + time.Now().UTC().Format(time.RFC3339) + `"}`))
		})
	})

	r.Get("/*", handlers.UIServer(cfg.UIAssetsPath))

	serverAddr := ":" + cfg.Port
	log.Printf("Serving management UI from: %s", cfg.UIAssetsPath)
	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
