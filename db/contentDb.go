package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"academy/models"

	_ "github.com/lib/pq"
)

type ContentRepository interface {
	SaveWorldContent(worldID int, content *models.WorldContent) error
	Close() error
}

type PostgresContentRepository struct {
	db *sql.DB
}

func NewPostgresContentRepository(databaseURL string) (*PostgresContentRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresContentRepository{db: db}, nil
}

// SaveWorldContent inserts a generated bundle in one transaction: realms
// first, then each realm's quiz and its questions.
func (r *PostgresContentRepository) SaveWorldContent(worldID int, content *models.WorldContent) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	realmIDs := make([]int, len(content.Realms))
	for i, realm := range content.Realms {
		query := `
			INSERT INTO academy.realms (world_id, name, description, emoji, order_index, video_url, video_title)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`

		err := tx.QueryRow(query, worldID, realm.Name, realm.Description, realm.Emoji,
			realm.OrderIndex, realm.VideoURL, realm.VideoTitle).Scan(&realmIDs[i])
		if err != nil {
			return fmt.Errorf("failed to insert realm %d: %w", i, err)
		}
	}

	for _, rq := range content.RealmQuizzes {
		if rq.RealmIndex < 0 || rq.RealmIndex >= len(realmIDs) {
			return fmt.Errorf("quiz references unknown realm index %d", rq.RealmIndex)
		}

		var quizID int
		query := `
			INSERT INTO academy.quizzes (realm_id, title, description, total_questions, passing_score, points_reward)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`

		err := tx.QueryRow(query, realmIDs[rq.RealmIndex], rq.Quiz.Title, rq.Quiz.Description,
			rq.Quiz.TotalQuestions, rq.Quiz.PassingScore, rq.Quiz.PointsReward).Scan(&quizID)
		if err != nil {
			return fmt.Errorf("failed to insert quiz for realm %d: %w", rq.RealmIndex, err)
		}

		for _, q := range rq.Questions {
			optionsJSON, err := json.Marshal(q.Options)
			if err != nil {
				return fmt.Errorf("failed to marshal options: %w", err)
			}

			query := `
				INSERT INTO academy.questions (quiz_id, question_text, question_type, options, correct_answer, explanation, order_index, points)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

			_, err = tx.Exec(query, quizID, q.QuestionText, q.QuestionType, optionsJSON,
				q.CorrectAnswer, q.Explanation, q.OrderIndex, q.Points)
			if err != nil {
				return fmt.Errorf("failed to insert question %d: %w", q.OrderIndex, err)
			}
		}
	}

	return tx.Commit()
}

func (r *PostgresContentRepository) Close() error {
	return r.db.Close()
}
