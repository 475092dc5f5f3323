package main

import (
	"log"
	"net/http"

	"youngchai/internal/config"
	"youngchai/internal/db"
	"youngchai/internal/router"
	"youngchai/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := config.Load()

	// Initialize Database. A missing configuration is survivable (handlers
	// answer with explicit "not configured" payloads); a broken one is not.
	conn, err := db.Init(cfg)
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	var commentStore *store.CommentStore
	if conn != nil {
		commentStore = store.New(conn)
	}

	// Initialize Gin
	r := gin.Default()
	router.RegisterRoutes(r, cfg, commentStore)

	// The widget and the dashboard are served by the static site from
	// other origins, so the whole API carries permissive CORS headers and
	// answers preflights.
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	log.Printf("YoungChai comments server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		log.Fatal(err)
	}
}
