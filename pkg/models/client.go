package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer company. Each client can own multiple vacancies;
// deleting a client cascades to its vacancies, their applications and payments.
type Client struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateClientRequest is the request to create a client
type CreateClientRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}
