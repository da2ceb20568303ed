package world

import (
	"context"
	"fmt"
	"log"
	"strings"

	"academy/models"
	"academy/services/genai"
)

const (
	realmsPerWorld      = 2
	questionsPerQuiz    = 4
	defaultPassingScore = 70
	defaultPointsReward = 20

	watchURLPrefix = "https://www.youtube.com/watch?v="
)

const realmSystemPrompt = `You are an Educational Content Creator. Your Task is to Generate 2 Engaging Realms for the Given World.
Each Realm must be Educational, Age-Appropriate for Students aged 8 to 14, and Designed for Learning through YouTube Videos.

Important Instructions:
- Realm Name:
  - Must be Specific, Clear, and Keyword-friendly.
  - It will be directly used as the YouTube Search Term for finding Educational Videos.
  - Avoid Vague or Generic Names.

- Realm Description:
  - A Short, Engaging, and Educational Explanation that Relates to the Theme.

- Emoji:
  - An Emoji that best Represents the Theme of the Realm Visually.

- Order Index:
  - Must be in Ascending Order starting from 1.
  - This will Determine the Order of Realms in the World.`

// StructuredGenerator produces schema-validated objects from a prompt. An
// empty result means every generation attempt was exhausted.
type StructuredGenerator interface {
	Generate(ctx context.Context, req genai.Request) []genai.Object
}

// VideoSearcher finds an educational video for a topic; nil means none.
type VideoSearcher interface {
	FindEducationalVideo(ctx context.Context, topic string) *models.VideoReference
}

// TranscriptFetcher retrieves a video transcript; empty means unavailable.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) string
}

// Generator turns a world description into a complete content bundle:
// realms with attached videos, and per-realm quizzes with questions.
type Generator struct {
	ai          StructuredGenerator
	videos      VideoSearcher
	transcripts TranscriptFetcher
}

func NewGenerator(ai StructuredGenerator, videos VideoSearcher, transcripts TranscriptFetcher) *Generator {
	return &Generator{ai: ai, videos: videos, transcripts: transcripts}
}

// GenerateWorldContent assembles the full bundle for one world. Realms are
// processed sequentially because each quiz's question generation depends on
// that realm's video lookup. Per-realm failures degrade to defaults; the
// only fatal condition is the realm-draft generation itself producing
// nothing, since without realms there is nothing to assemble.
func (g *Generator) GenerateWorldContent(ctx context.Context, input models.WorldInput) (*models.WorldContent, error) {
	log.Printf("[INFO] Starting world content generation for %q", input.Name)

	realms, err := g.generateRealms(ctx, input)
	if err != nil {
		log.Printf("[ERROR] World content generation failed: %v", err)
		return nil, err
	}

	content := &models.WorldContent{Realms: realms}
	for i := range realms {
		quiz := g.generateQuizDraft(ctx, realms[i])
		questions := g.generateQuestions(ctx, realms[i], quiz)
		content.RealmQuizzes = append(content.RealmQuizzes, models.RealmQuiz{
			RealmIndex: i,
			Quiz:       quiz,
			Questions:  questions,
		})
	}

	log.Printf("[INFO] Generated %d realms with quizzes for world %q", len(realms), input.Name)
	return content, nil
}

func (g *Generator) generateRealms(ctx context.Context, input models.WorldInput) ([]models.RealmDraft, error) {
	out := g.ai.Generate(ctx, genai.Request{
		SystemPrompt: realmSystemPrompt,
		Prompt:       fmt.Sprintf("Create %d Realms for the World: %s - %s", realmsPerWorld, input.Name, input.Description),
		Shape: genai.Shape{
			"realm_names":         genai.Text("array"),
			"realm_descriptions":  genai.Text("array"),
			"realm_emojis":        genai.Text("array"),
			"realm_order_indices": genai.Text("array"),
		},
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("failed to generate world content with AI")
	}

	obj := out[0]
	names := stringSlice(obj["realm_names"])
	descriptions := stringSlice(obj["realm_descriptions"])
	emojis := stringSlice(obj["realm_emojis"])
	if len(names) == 0 {
		return nil, fmt.Errorf("failed to generate world content with AI")
	}

	realms := make([]models.RealmDraft, 0, len(names))
	for i := range names {
		realm := models.RealmDraft{
			Name:        stringAt(names, i, fmt.Sprintf("Realm %d", i+1)),
			Description: stringAt(descriptions, i, "Educational Content"),
			Emoji:       stringAt(emojis, i, "📚"),
			// Positions are authoritative; generated order indices are advisory.
			OrderIndex: i + 1,
		}
		g.attachVideo(ctx, &realm)
		realms = append(realms, realm)
	}
	return realms, nil
}

// attachVideo looks up a video for the realm. A "Category: Topic" realm
// name searches only the text after the colon, which gives more specific
// hits. A missing video leaves both fields nil and assembly continues.
func (g *Generator) attachVideo(ctx context.Context, realm *models.RealmDraft) {
	term := realm.Name
	if i := strings.Index(term, ":"); i >= 0 {
		term = strings.TrimSpace(term[i+1:])
	}

	ref := g.videos.FindEducationalVideo(ctx, term)
	if ref == nil {
		log.Printf("[INFO] No video attached to realm %q", realm.Name)
		return
	}

	url := watchURLPrefix + ref.VideoID
	realm.VideoURL = &url
	realm.VideoTitle = &ref.VideoTitle
}
