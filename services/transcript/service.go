package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "http://localhost:5000"

// Service retrieves video transcripts from the auxiliary transcript
// service. Retrieval is best effort: every failure surfaces as an empty
// transcript so the caller can fall back to non-grounded generation.
type Service struct {
	baseURL string
	client  *http.Client
}

func NewService(baseURL string) *Service {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Service{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Fetch returns the transcript for a video id, or an empty string on any
// failure (network error, missing transcript, malformed response).
func (s *Service) Fetch(ctx context.Context, videoID string) string {
	endpoint := fmt.Sprintf("%s/api/transcript/%s", s.baseURL, url.PathEscape(videoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("[ERROR] Failed to build transcript request for %s: %v", videoID, err)
		return ""
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[ERROR] Transcript fetch failed for %s: %v", videoID, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[ERROR] Transcript service returned status %d for %s", resp.StatusCode, videoID)
		return ""
	}

	var payload struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[ERROR] Failed to decode transcript response for %s: %v", videoID, err)
		return ""
	}

	return payload.Transcript
}
