package world

import (
	"context"
	"fmt"
	"log"

	"academy/models"
	"academy/services/genai"

	"github.com/samber/lo"
)

const quizSystemPrompt = `You are an Educational Quiz Creator. Generate a Quiz for the Given Realm. The points_reward must be a Multiple of 4 (e.g., 8, 12, 16, 20, 24).`

const questionSystemPrompt = `You are a Helpful AI that Generates Quiz Questions and Answers. Follow the Exact Schema below to Generate 4 Questions in Total:
- Exactly 2 Multiple-Choice Questions (MCQ)
- Exactly 2 True/False Questions

Schema Requirements:
question_text: The Text of the Question.
question_type: Either "mcq" or "true_false".
options:
- For MCQs: Provide 4 Options.
- For True/False: Options must be ["True", "False"].
order_index: Must be in Ascending Order starting from 1.`

var defaultOptions = []string{"Option A", "Option B", "Option C", "Option D"}

func (g *Generator) generateQuizDraft(ctx context.Context, realm models.RealmDraft) models.QuizDraft {
	out := g.ai.Generate(ctx, genai.Request{
		SystemPrompt: quizSystemPrompt,
		Prompt:       fmt.Sprintf("Create a Quiz for the Realm: %s - %s", realm.Name, realm.Description),
		Shape: genai.Shape{
			"title":           genai.Text("string"),
			"description":     genai.Text("string"),
			"total_questions": genai.Text("4"),
			"passing_score":   genai.Text("70"),
			"points_reward":   genai.Text("string"),
		},
	})

	quiz := models.QuizDraft{
		Title:          fmt.Sprintf("%s Quiz", realm.Name),
		Description:    realm.Description,
		TotalQuestions: questionsPerQuiz,
		PassingScore:   defaultPassingScore,
		PointsReward:   defaultPointsReward,
	}
	if len(out) > 0 {
		obj := out[0]
		if title := asString(obj["title"]); title != "" {
			quiz.Title = title
		}
		if desc := asString(obj["description"]); desc != "" {
			quiz.Description = desc
		}
		if score := asInt(obj["passing_score"]); score > 0 {
			quiz.PassingScore = score
		}
		if reward := asInt(obj["points_reward"]); reward >= questionsPerQuiz {
			quiz.PointsReward = reward
		}
	}

	// The per-question unit is authoritative: a reward that is not a
	// multiple of the question count is floored to the nearest one, so the
	// divisibility invariant holds no matter what the generator suggested.
	unit := quiz.PointsReward / questionsPerQuiz
	quiz.PointsReward = unit * questionsPerQuiz
	return quiz
}

// generateQuestions produces the realm's 4 questions, grounded in the
// video transcript when one can be fetched and falling back to the quiz
// title and description otherwise.
func (g *Generator) generateQuestions(ctx context.Context, realm models.RealmDraft, quiz models.QuizDraft) []models.QuestionDraft {
	var raw genai.Object

	if realm.VideoURL != nil {
		if videoID, ok := VideoIDFromURL(*realm.VideoURL); ok {
			if transcript := g.transcripts.Fetch(ctx, videoID); transcript != "" {
				log.Printf("[INFO] Generating transcript-grounded questions for realm %q", realm.Name)
				raw = g.questionOutput(ctx, fmt.Sprintf(
					"Generate a Random Question Related to the Course %q using the Context of the Following Transcript: %s",
					realm.Name, transcript))
			}
		}
	}

	if raw == nil {
		log.Printf("[INFO] Generating questions for realm %q from quiz title and description", realm.Name)
		raw = g.questionOutput(ctx, fmt.Sprintf(
			"Create %d Questions for the Quiz: %s - %s", questionsPerQuiz, quiz.Title, quiz.Description))
	}

	return buildQuestions(raw, quiz.PointsReward)
}

func (g *Generator) questionOutput(ctx context.Context, prompt string) genai.Object {
	out := g.ai.Generate(ctx, genai.Request{
		SystemPrompt: questionSystemPrompt,
		Prompt:       prompt,
		Shape: genai.Shape{
			"question_texts":  genai.Text("array"),
			"question_types":  genai.Text("array"),
			"options_arrays":  genai.Text("array"),
			"correct_answers": genai.Text("array"),
			"explanations":    genai.Text("array"),
			"order_indices":   genai.Text("array"),
			"points_values":   genai.Text("array"),
		},
	})
	if len(out) == 0 {
		return nil
	}
	return out[0]
}

// buildQuestions normalizes raw generator output into exactly 4 questions.
// Missing slots get defaults, the 2 MCQ + 2 true/false layout is enforced
// even when the generator miscounts, and every question is worth the same
// even share of the quiz reward regardless of any suggested point values.
func buildQuestions(raw genai.Object, pointsReward int) []models.QuestionDraft {
	unit := pointsReward / questionsPerQuiz

	texts := stringSlice(raw["question_texts"])
	types := stringSlice(raw["question_types"])
	options := nestedStringSlices(raw["options_arrays"])
	answers := stringSlice(raw["correct_answers"])
	explanations := stringSlice(raw["explanations"])

	questions := make([]models.QuestionDraft, 0, questionsPerQuiz)
	mcqCount, tfCount := 0, 0
	for j := 0; j < questionsPerQuiz; j++ {
		q := models.QuestionDraft{
			QuestionText:  stringAt(texts, j, fmt.Sprintf("Question %d", j+1)),
			QuestionType:  stringAt(types, j, models.QuestionTypeMCQ),
			CorrectAnswer: stringAt(answers, j, "Option A"),
			Explanation:   stringAt(explanations, j, ""),
			OrderIndex:    j + 1,
			Points:        unit,
		}
		if j < len(options) {
			q.Options = options[j]
		}

		if q.QuestionType != models.QuestionTypeMCQ && q.QuestionType != models.QuestionTypeTrueFalse {
			q.QuestionType = models.QuestionTypeMCQ
		}
		switch q.QuestionType {
		case models.QuestionTypeMCQ:
			if mcqCount >= questionsPerQuiz/2 {
				q.QuestionType = models.QuestionTypeTrueFalse
			}
		case models.QuestionTypeTrueFalse:
			if tfCount >= questionsPerQuiz/2 {
				q.QuestionType = models.QuestionTypeMCQ
			}
		}

		switch q.QuestionType {
		case models.QuestionTypeMCQ:
			mcqCount++
			normalizeMCQ(&q)
		case models.QuestionTypeTrueFalse:
			tfCount++
			normalizeTrueFalse(&q)
		}

		questions = append(questions, q)
	}
	return questions
}

func normalizeMCQ(q *models.QuestionDraft) {
	if len(q.Options) != 4 {
		q.Options = append([]string(nil), defaultOptions...)
	}
	if !lo.Contains(q.Options, q.CorrectAnswer) {
		q.CorrectAnswer = q.Options[0]
	}
}

func normalizeTrueFalse(q *models.QuestionDraft) {
	q.Options = []string{"True", "False"}
	if q.CorrectAnswer != "True" && q.CorrectAnswer != "False" {
		q.CorrectAnswer = "True"
	}
}
