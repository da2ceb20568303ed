package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"academy/db"
	"academy/models"
	"academy/services/world"

	"github.com/gorilla/mux"
)

type GenerateWorldRequest struct {
	WorldID     int    `json:"world_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

type GenerateWorldResponse struct {
	Content *models.WorldContent `json:"content"`
	Saved   bool                 `json:"saved"`
}

type WorldHandler struct {
	generator *world.Generator
	repo      db.ContentRepository
}

func NewWorldHandler(generator *world.Generator, repo db.ContentRepository) *WorldHandler {
	return &WorldHandler{generator: generator, repo: repo}
}

func (h *WorldHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/worlds/generate", h.GenerateWorld).Methods("POST")
}

// GenerateWorld runs the content pipeline for a world. When world_id is
// set the bundle is persisted; either way the bundle is returned so the
// caller can preview it.
func (h *WorldHandler) GenerateWorld(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received world generation request")

	var req GenerateWorldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode world generation request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		log.Printf("[ERROR] World generation request without a world name")
		h.writeErrorResponse(w, http.StatusBadRequest, "World name is required")
		return
	}

	input := models.WorldInput{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Emoji:       req.Emoji,
	}

	content, err := h.generator.GenerateWorldContent(r.Context(), input)
	if err != nil {
		log.Printf("[ERROR] World generation failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	saved := false
	if req.WorldID > 0 {
		if err := h.repo.SaveWorldContent(req.WorldID, content); err != nil {
			log.Printf("[ERROR] Failed to save world content for world %d: %v", req.WorldID, err)
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to save generated content")
			return
		}
		saved = true
		log.Printf("[INFO] Saved generated content for world %d", req.WorldID)
	}

	log.Printf("[INFO] World generation completed successfully")
	h.writeJSONResponse(w, http.StatusOK, GenerateWorldResponse{
		Content: content,
		Saved:   saved,
	})
}

func (h *WorldHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *WorldHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
