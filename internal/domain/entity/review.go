package entity

import "time"

// Review is one user's rating of a bootcamp. The store enforces at most
// one review per (user, bootcamp) pair.
type Review struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	BootcampID string    `json:"bootcamp_id"`
	UserID     string    `json:"user"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Bootcamp *BootcampRef `json:"bootcamp,omitempty"`
}
