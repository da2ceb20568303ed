package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"academy/models"
	"academy/services/genai"
	"academy/services/world"
)

// fakeAI returns canned objects keyed on the request shape so a real
// generator pipeline can run end to end inside handler tests.
type fakeAI struct{}

func (fakeAI) Generate(ctx context.Context, req genai.Request) []genai.Object {
	if _, ok := req.Shape["realm_names"]; ok {
		return []genai.Object{{
			"realm_names":        []any{"Budgeting Basics", "Saving Money"},
			"realm_descriptions": []any{"Plan your money", "Keep some for later"},
			"realm_emojis":       []any{"💰", "🏦"},
		}}
	}
	if _, ok := req.Shape["title"]; ok {
		return []genai.Object{{
			"title":         "Money Quiz",
			"description":   "Money questions",
			"passing_score": "70",
			"points_reward": "20",
		}}
	}
	return []genai.Object{{}}
}

type emptyAI struct{}

func (emptyAI) Generate(ctx context.Context, req genai.Request) []genai.Object {
	return []genai.Object{}
}

type noVideos struct{}

func (noVideos) FindEducationalVideo(ctx context.Context, topic string) *models.VideoReference {
	return nil
}

type noTranscripts struct{}

func (noTranscripts) Fetch(ctx context.Context, videoID string) string { return "" }

type fakeRepo struct {
	savedWorldID int
	savedContent *models.WorldContent
	err          error
}

func (r *fakeRepo) SaveWorldContent(worldID int, content *models.WorldContent) error {
	if r.err != nil {
		return r.err
	}
	r.savedWorldID = worldID
	r.savedContent = content
	return nil
}

func (r *fakeRepo) Close() error { return nil }

func postGenerateWorld(t *testing.T, h *WorldHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/worlds/generate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.GenerateWorld(rec, req)
	return rec
}

func TestGenerateWorldReturnsContent(t *testing.T) {
	repo := &fakeRepo{}
	h := NewWorldHandler(world.NewGenerator(fakeAI{}, noVideos{}, noTranscripts{}), repo)

	rec := postGenerateWorld(t, h, `{"name": "Money World", "description": "Learn about money"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp GenerateWorldResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Saved {
		t.Error("content should not be saved without a world_id")
	}
	if len(resp.Content.Realms) != 2 || len(resp.Content.RealmQuizzes) != 2 {
		t.Errorf("got %d realms and %d quizzes", len(resp.Content.Realms), len(resp.Content.RealmQuizzes))
	}
	if repo.savedContent != nil {
		t.Error("repository should not be called without a world_id")
	}
}

func TestGenerateWorldPersistsWithWorldID(t *testing.T) {
	repo := &fakeRepo{}
	h := NewWorldHandler(world.NewGenerator(fakeAI{}, noVideos{}, noTranscripts{}), repo)

	rec := postGenerateWorld(t, h, `{"world_id": 7, "name": "Money World"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp GenerateWorldResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Saved {
		t.Error("expected saved = true")
	}
	if repo.savedWorldID != 7 {
		t.Errorf("saved world id = %d", repo.savedWorldID)
	}
	if repo.savedContent == nil || len(repo.savedContent.Realms) != 2 {
		t.Errorf("unexpected saved content: %+v", repo.savedContent)
	}
}

func TestGenerateWorldRejectsMissingName(t *testing.T) {
	h := NewWorldHandler(world.NewGenerator(fakeAI{}, noVideos{}, noTranscripts{}), &fakeRepo{})

	rec := postGenerateWorld(t, h, `{"world_id": 7, "name": "   "}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", rec.Code)
	}
}

func TestGenerateWorldRejectsInvalidJSON(t *testing.T) {
	h := NewWorldHandler(world.NewGenerator(fakeAI{}, noVideos{}, noTranscripts{}), &fakeRepo{})

	rec := postGenerateWorld(t, h, `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", rec.Code)
	}
}

func TestGenerateWorldReportsGenerationFailure(t *testing.T) {
	h := NewWorldHandler(world.NewGenerator(emptyAI{}, noVideos{}, noTranscripts{}), &fakeRepo{})

	rec := postGenerateWorld(t, h, `{"name": "Money World"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", rec.Code)
	}
}

func TestGenerateWorldReportsSaveFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection lost")}
	h := NewWorldHandler(world.NewGenerator(fakeAI{}, noVideos{}, noTranscripts{}), repo)

	rec := postGenerateWorld(t, h, `{"world_id": 7, "name": "Money World"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", rec.Code)
	}
}
