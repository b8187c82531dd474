package models

import (
	"time"

	"github.com/google/uuid"
)

// Recruiter is a recruiter user. Applications reference recruiters; a
// recruiter with applications cannot be deleted.
type Recruiter struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateRecruiterRequest is the request to create a recruiter
type CreateRecruiterRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}
