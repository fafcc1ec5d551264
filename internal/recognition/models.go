package recognition

import "time"

// ConfidenceThreshold separates firm answers from suggestions. Below it
// the recognizer's guess is surfaced as suggested_* only.
const ConfidenceThreshold = 0.6

type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusDone      JobStatus = "done"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

type Result struct {
	Success    bool    `json:"success"`
	Species    string  `json:"species,omitempty"`
	Breed      string  `json:"breed,omitempty"`
	Confidence float64 `json:"confidence"`

	SuggestedSpecies string `json:"suggested_species,omitempty"`
	SuggestedBreed   string `json:"suggested_breed,omitempty"`
}

type Job struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Status    JobStatus `json:"status"`
	Result    *Result   `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	finishedAt time.Time
}

type SubmitRequest struct {
	ImageURL string `json:"image_url"`
}
