package models

import "time"

// Mistake is one wrongly answered quiz question kept for review.
type Mistake struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Question      string    `json:"question"`
	GivenAnswer   string    `json:"given_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	Topic         string    `json:"topic,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
