package models

// Question types supported by generated quizzes.
const (
	QuestionTypeMCQ       = "mcq"
	QuestionTypeTrueFalse = "true_false"
)

// WorldInput describes the world a content bundle is generated for.
type WorldInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

// VideoReference identifies a YouTube video matched to a search topic.
type VideoReference struct {
	VideoID    string `json:"videoId"`
	VideoTitle string `json:"videoTitle"`
}

// RealmDraft is a generated learning unit inside a world. VideoURL and
// VideoTitle are nil when no suitable video was found.
type RealmDraft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Emoji       string  `json:"emoji"`
	OrderIndex  int     `json:"order_index"`
	VideoURL    *string `json:"video_url"`
	VideoTitle  *string `json:"video_title"`
}

// QuizDraft is the generated assessment metadata for a realm. PointsReward
// is always a multiple of TotalQuestions.
type QuizDraft struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	TotalQuestions int    `json:"total_questions"`
	PassingScore   int    `json:"passing_score"`
	PointsReward   int    `json:"points_reward"`
}

// QuestionDraft is one generated quiz question.
type QuestionDraft struct {
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	OrderIndex    int      `json:"order_index"`
	Points        int      `json:"points"`
}

// RealmQuiz pairs a quiz and its questions with the realm it belongs to,
// keyed by the realm's position in the world bundle.
type RealmQuiz struct {
	RealmIndex int             `json:"realm_id"`
	Quiz       QuizDraft       `json:"quiz"`
	Questions  []QuestionDraft `json:"questions"`
}

// WorldContent is the full generated bundle for one world, ready to be
// persisted by the caller.
type WorldContent struct {
	Realms       []RealmDraft `json:"realms"`
	RealmQuizzes []RealmQuiz  `json:"realm_quizzes"`
}
