package models

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is a person applying for vacancies.
type Candidate struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateCandidateRequest is the request to create a candidate
type CreateCandidateRequest struct {
	FullName string  `json:"full_name" validate:"required,max=180"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=60"`
	Email    *string `json:"email,omitempty" validate:"omitempty,max=180"`
	Notes    *string `json:"notes,omitempty"`
}
