package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is one payment received for an application. The ledger is
// append/delete only; there is no update-in-place.
type Payment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	ApplicationID uuid.UUID       `json:"application_id" db:"application_id"`
	PaidDate      Date            `json:"paid_date" db:"paid_date"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Note          *string         `json:"note,omitempty" db:"note"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// CreatePaymentRequest is the request to record a payment against an
// application.
type CreatePaymentRequest struct {
	PaidDate Date            `json:"paid_date" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Note     *string         `json:"note,omitempty"`
}
