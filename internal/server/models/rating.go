package models

import "time"

// Rating is a site rating. UserID is empty for anonymous submissions.
type Rating struct {
	ID        string
	UserID    string
	Score     int
	Comment   string
	CreatedAt time.Time
}
