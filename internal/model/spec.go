package model

import "time"

// Spec is a submitted document plus the fields derived from it at ingestion.
// Every field is immutable once stored; Title, Summary and StepCount are
// always recomputed from Content and never taken from the caller.
type Spec struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	StepCount int       `json:"step_count"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}
