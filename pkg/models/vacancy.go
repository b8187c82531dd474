package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vacancy is an open position at a client. The fee amount is the placement
// fee used as the default for an application's initial payment.
type Vacancy struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	ClientID  uuid.UUID       `json:"client_id" db:"client_id"`
	Title     string          `json:"title" db:"title"`
	FeeAmount decimal.Decimal `json:"fee_amount" db:"fee_amount"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// CreateVacancyRequest is the request to create a vacancy
type CreateVacancyRequest struct {
	ClientID  uuid.UUID       `json:"client_id" validate:"required"`
	Title     string          `json:"title" validate:"required,max=180"`
	FeeAmount decimal.Decimal `json:"fee_amount"`
}
