package models

import (
	"net/http"
	"strings"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// PipelineDefaultLimit is the row cap applied when the caller does not
	// supply one.
	PipelineDefaultLimit = 500
	// PipelineMaxLimit is the largest row cap a caller may request.
	PipelineMaxLimit = 2000
)

// PipelineRow is one flattened application with its joined candidate,
// recruiter, vacancy and client context.
type PipelineRow struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	DateContacted Date              `json:"date_contacted" db:"date_contacted"`
	Status        ApplicationStatus `json:"status" db:"status"`
	RejectionDate *Date             `json:"rejection_date,omitempty" db:"rejection_date"`
	StartDate     *Date             `json:"start_date,omitempty" db:"start_date"`

	Paid          bool            `json:"paid" db:"paid"`
	PaidDate      *Date           `json:"paid_date,omitempty" db:"paid_date"`
	PaymentAmount decimal.Decimal `json:"payment_amount" db:"payment_amount"`

	IsReplacement   bool       `json:"is_replacement" db:"is_replacement"`
	ReplacementOfID *uuid.UUID `json:"replacement_of_id,omitempty" db:"replacement_of_id"`
	ReplacementNote *string    `json:"replacement_note,omitempty" db:"replacement_note"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	CandidateID   uuid.UUID `json:"candidate_id" db:"candidate_id"`
	CandidateName string    `json:"candidate_name" db:"candidate_name"`

	RecruiterID   uuid.UUID `json:"recruiter_id" db:"recruiter_id"`
	RecruiterName string    `json:"recruiter_name" db:"recruiter_name"`

	VacancyID    uuid.UUID       `json:"vacancy_id" db:"vacancy_id"`
	VacancyTitle string          `json:"vacancy_title" db:"vacancy_title"`
	VacancyFee   decimal.Decimal `json:"vacancy_fee" db:"vacancy_fee"`

	ClientID   uuid.UUID `json:"client_id" db:"client_id"`
	ClientName string    `json:"client_name" db:"client_name"`
}

// PipelineFilter narrows the pipeline view. Equality filters combine with
// AND; Search is an OR across candidate name, vacancy title, client name and
// recruiter name.
type PipelineFilter struct {
	ClientID    *uuid.UUID
	RecruiterID *uuid.UUID
	Status      *ApplicationStatus
	Search      string
	Limit       int
}

// Normalize trims the search text and clamps the limit into its allowed
// range, falling back to the default when unset.
func (f PipelineFilter) Normalize() (PipelineFilter, error) {
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit == 0 {
		f.Limit = PipelineDefaultLimit
	}
	if f.Limit < 1 || f.Limit > PipelineMaxLimit {
		return f, httperror.NewHTTPErrorf(http.StatusBadRequest, "limit must be between 1 and %d", PipelineMaxLimit)
	}
	if f.Status != nil && !f.Status.Valid() {
		return f, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid status: %s", *f.Status)
	}
	return f, nil
}

// EarningsItem is one payment with its full join context.
type EarningsItem struct {
	PaymentID     uuid.UUID       `json:"payment_id" db:"payment_id"`
	PaidDate      Date            `json:"paid_date" db:"paid_date"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	CandidateName string          `json:"candidate_name" db:"candidate_name"`
	ClientName    string          `json:"client_name" db:"client_name"`
	VacancyTitle  string          `json:"vacancy_title" db:"vacancy_title"`
	RecruiterName string          `json:"recruiter_name" db:"recruiter_name"`
	ApplicationID uuid.UUID       `json:"application_id" db:"application_id"`
}

// EarningsReport is the monthly earnings summary.
type EarningsReport struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
	Items []EarningsItem  `json:"items"`
}

// MonthWindow returns the [start, end) day window covering one calendar
// month, rolling the year forward for December.
func MonthWindow(year, month int) (Date, Date, error) {
	if month < 1 || month > 12 {
		return Date{}, Date{}, httperror.NewHTTPError(http.StatusBadRequest, "month must be 1..12")
	}
	start := NewDate(year, time.Month(month), 1)
	var end Date
	if month == 12 {
		end = NewDate(year+1, time.January, 1)
	} else {
		end = NewDate(year, time.Month(month+1), 1)
	}
	return start, end, nil
}

