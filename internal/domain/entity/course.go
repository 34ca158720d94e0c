package entity

import "time"

// BootcampRef is the parent summary joined onto child reads.
type BootcampRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Course struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                int       `json:"weeks"`
	Tuition              float64   `json:"tuition"`
	MinimumSkill         string    `json:"minimum_skill"`
	ScholarshipAvailable bool      `json:"scholarship_available"`
	BootcampID           string    `json:"bootcamp_id"`
	UserID               string    `json:"user"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	Bootcamp *BootcampRef `json:"bootcamp,omitempty"`
}
