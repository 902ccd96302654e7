package services

import (
	"context"
	"fmt"

	"github.com/parla-app/parla-backend/internal/database"
	"github.com/parla-app/parla-backend/internal/models"
)

// maxMistakes caps the review list at the most recent entries.
const maxMistakes = 200

// LoadMistakes returns the user's wrongly answered questions, newest
// first. The quiz engine writes these rows; the profile page only reads.
func LoadMistakes(ctx context.Context, userID string) ([]models.Mistake, error) {
	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT id, user_id, question, given_answer, correct_answer, COALESCE(topic, ''), created_at
		FROM mistakes
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, maxMistakes)
	if err != nil {
		return nil, fmt.Errorf("load mistakes: %w", err)
	}
	defer rows.Close()

	mistakes := []models.Mistake{}
	for rows.Next() {
		var m models.Mistake
		if err := rows.Scan(&m.ID, &m.UserID, &m.Question, &m.GivenAnswer, &m.CorrectAnswer, &m.Topic, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mistake: %w", err)
		}
		mistakes = append(mistakes, m)
	}
	return mistakes, rows.Err()
}
