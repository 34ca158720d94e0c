package entity

import "time"

// Careers a bootcamp may advertise.
var ValidCareers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

// Location is the geocoded point plus address parts derived from a
// bootcamp's street address at save time.
type Location struct {
	Longitude        float64 `json:"longitude"`
	Latitude         float64 `json:"latitude"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	Street           string  `json:"street,omitempty"`
	City             string  `json:"city,omitempty"`
	State            string  `json:"state,omitempty"`
	Zipcode          string  `json:"zipcode,omitempty"`
	Country          string  `json:"country,omitempty"`
}

// Bootcamp is owned by one user; a non-admin publisher may own at most
// one. Slug and Location are derived, AverageRating and AverageCost are
// maintained from child reviews and courses.
type Bootcamp struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address"`
	Location      Location  `json:"location"`
	Careers       []string  `json:"careers"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	AverageCost   *float64  `json:"average_cost,omitempty"`
	Photo         string    `json:"photo"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"job_assistance"`
	JobGuarantee  bool      `json:"job_guarantee"`
	AcceptGI      bool      `json:"accept_gi"`
	UserID        string    `json:"user"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Courses is populated on single-bootcamp reads.
	Courses []Course `json:"courses,omitempty"`
}
