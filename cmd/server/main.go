package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"claimboard/internal/auth"
	"claimboard/internal/handlers"
	"claimboard/internal/models"
	"claimboard/internal/storage"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "claims.db"
	}
	secureCookies := os.Getenv("SECURE_COOKIES") == "true"

	db, err := storage.NewDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := bootstrapAdmin(db); err != nil {
		log.Fatalf("Failed to bootstrap admin user: %v", err)
	}

	h := handlers.NewHandlers(db, "web/templates", secureCookies)

	if err := h.CleanupExpired(); err != nil {
		log.Printf("Failed to clean expired sessions: %v", err)
	}
	go func() {
		for range time.Tick(time.Hour) {
			if err := h.CleanupExpired(); err != nil {
				log.Printf("Failed to clean expired sessions: %v", err)
			}
		}
	}()

	mux := setupRouter(h, "web/static")

	log.Printf("Listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)

	mux.Handle("GET /claims", h.AuthMiddleware(http.HandlerFunc(h.Board)))
	mux.Handle("GET /claims/new", h.AuthMiddleware(http.HandlerFunc(h.NewClaimForm)))
	mux.Handle("POST /claims", h.AuthMiddleware(http.HandlerFunc(h.CreateClaim)))
	mux.Handle("GET /claims/export.csv", h.AuthMiddleware(http.HandlerFunc(h.ExportClaimsCSV)))
	mux.Handle("GET /claims/{id}", h.AuthMiddleware(http.HandlerFunc(h.ClaimDetail)))

	mux.Handle("POST /claims/{id}/status", h.AuthMiddleware(http.HandlerFunc(h.RequestTransition)))
	mux.Handle("POST /claims/transition/confirm", h.AuthMiddleware(http.HandlerFunc(h.ConfirmTransition)))
	mux.Handle("POST /claims/transition/cancel", h.AuthMiddleware(http.HandlerFunc(h.CancelTransition)))

	mux.Handle("POST /claims/{id}/delete", h.AuthMiddleware(http.HandlerFunc(h.RequestDeletion)))
	mux.Handle("POST /claims/delete/confirm", h.AuthMiddleware(http.HandlerFunc(h.ConfirmDeletion)))
	mux.Handle("POST /claims/delete/cancel", h.AuthMiddleware(http.HandlerFunc(h.CancelDeletion)))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/claims", http.StatusFound)
	})

	return mux
}

// bootstrapAdmin creates the initial user from ADMIN_USER/ADMIN_PASSWORD
// when the database has no users yet.
func bootstrapAdmin(db *storage.DB) error {
	count, err := db.UserCount()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := os.Getenv("ADMIN_USER")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Printf("No users and no ADMIN_USER/ADMIN_PASSWORD set; use adduser to create one")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user, err := db.CreateUser(&models.User{Username: username, Name: username}, hash)
	if err != nil {
		return err
	}
	log.Printf("Created admin user %s (ID %d)", user.Username, user.ID)
	return nil
}
