package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"academy/config"
	"academy/db"
	"academy/handlers"
	"academy/services/genai"
	"academy/services/transcript"
	"academy/services/world"
	"academy/services/youtube"

	"github.com/gorilla/mux"
	"github.com/tmc/langchaingo/llms/googleai"
)

const geminiModel = "gemini-1.5-flash"

func main() {
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	if keys := cfg.ValidateKeys(); !keys.IsValid {
		log.Printf("[ERROR] Missing API keys: %v - generation calls will fail until they are set", keys.MissingKeys)
	}

	ctx := context.Background()

	contentRepo, err := db.NewPostgresContentRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize content database: %v", err)
	}
	defer contentRepo.Close()

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GeminiAPIKey),
		googleai.WithDefaultModel(geminiModel),
	)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	youtubeService, err := youtube.NewService(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize YouTube service: %v", err)
	}

	generator := world.NewGenerator(
		genai.NewClient(llm),
		youtubeService,
		transcript.NewService(cfg.TranscriptBaseURL),
	)

	worldHandler := handlers.NewWorldHandler(generator, contentRepo)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	worldHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
