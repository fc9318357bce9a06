package timeentry

import "time"

// Entry is a block of tracked time
type Entry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	ProjectID       string    `json:"project_id,omitempty"`
	Description     string    `json:"description,omitempty"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Billable        bool      `json:"billable"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Filter narrows a time entry listing. Since is inclusive.
type Filter struct {
	ProjectID string
	Since     *time.Time
	Limit     int
}
