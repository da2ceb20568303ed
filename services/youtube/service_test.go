package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"
)

// newTestService points the API client at a local server so search behavior
// can be exercised without network access or a real API key.
func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewService(context.Background(), "test-key", option.WithEndpoint(server.URL))
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestFindEducationalVideo(t *testing.T) {
	var gotQuery map[string]string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		gotQuery = map[string]string{
			"q":               params.Get("q"),
			"videoDuration":   params.Get("videoDuration"),
			"videoEmbeddable": params.Get("videoEmbeddable"),
			"type":            params.Get("type"),
			"maxResults":      params.Get("maxResults"),
			"videoCategoryId": params.Get("videoCategoryId"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"id": {"videoId": "dQw4w9WgXcQ"}, "snippet": {"title": "Fractions for Kids"}},
				{"id": {"videoId": "zzzzzzzzzzz"}, "snippet": {"title": "Second Result"}}
			]
		}`))
	})

	ref := svc.FindEducationalVideo(context.Background(), "Fractions")
	if ref == nil {
		t.Fatal("expected a video reference, got nil")
	}
	if ref.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("video id = %q, expected first result", ref.VideoID)
	}
	if ref.VideoTitle != "Fractions for Kids" {
		t.Errorf("video title = %q", ref.VideoTitle)
	}

	want := map[string]string{
		"q":               "Fractions Kids Educational Video",
		"videoDuration":   "medium",
		"videoEmbeddable": "true",
		"type":            "video",
		"maxResults":      "5",
		"videoCategoryId": "27",
	}
	for key, value := range want {
		if gotQuery[key] != value {
			t.Errorf("search param %s = %q, expected %q", key, gotQuery[key], value)
		}
	}
}

func TestFindEducationalVideoNoResults(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": []}`))
	})

	if ref := svc.FindEducationalVideo(context.Background(), "Fractions"); ref != nil {
		t.Errorf("expected nil for empty results, got %+v", ref)
	}
}

func TestFindEducationalVideoMissingID(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [{"snippet": {"title": "No ID Here"}}]}`))
	})

	if ref := svc.FindEducationalVideo(context.Background(), "Fractions"); ref != nil {
		t.Errorf("expected nil when the top result has no video id, got %+v", ref)
	}
}

func TestFindEducationalVideoServerError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 500, "message": "backend error"}}`, http.StatusInternalServerError)
	})

	if ref := svc.FindEducationalVideo(context.Background(), "Fractions"); ref != nil {
		t.Errorf("expected nil on API error, got %+v", ref)
	}
}
