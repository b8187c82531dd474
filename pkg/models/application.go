package models

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// amounts are serialized as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// ApplicationStatus is the lifecycle status of an application.
type ApplicationStatus string

const (
	StatusNew       ApplicationStatus = "new"
	StatusInProcess ApplicationStatus = "in_process"
	StatusRejected  ApplicationStatus = "rejected"
	StatusHired     ApplicationStatus = "hired"
)

// Valid reports whether s is one of the known lifecycle statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProcess, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Application is one candidate's progression on one vacancy, handled by one
// recruiter. Paid, PaidDate and PaymentAmount are caches derived from the
// payment ledger; they are never written directly by callers.
type Application struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CandidateID uuid.UUID `json:"candidate_id" db:"candidate_id"`
	VacancyID   uuid.UUID `json:"vacancy_id" db:"vacancy_id"`
	RecruiterID uuid.UUID `json:"recruiter_id" db:"recruiter_id"`

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
}

// EnforceStatusDates validates the status/date pairing rule: a rejected
// application must carry a rejection date and a hired application must carry
// a start date. It is applied to the full resulting record on every create
// and every update.
func EnforceStatusDates(status ApplicationStatus, rejectionDate, startDate *Date) error {
	if !status.Valid() {
		return httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid status: %s", status)
	}
	if status == StatusRejected && rejectionDate == nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "for status 'rejected' rejection_date is required")
	}
	if status == StatusHired && startDate == nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "for status 'hired' start_date is required")
	}
	return nil
}

// Validate applies the status/date pairing rule to the application itself.
func (a *Application) Validate() error {
	return EnforceStatusDates(a.Status, a.RejectionDate, a.StartDate)
}

// CreateApplicationRequest is the request to create an application. Paid,
// PaidDate and PaymentAmount optionally seed one initial payment; they do not
// set the cached fields directly.
type CreateApplicationRequest struct {
	CandidateID uuid.UUID `json:"candidate_id" validate:"required"`
	VacancyID   uuid.UUID `json:"vacancy_id" validate:"required"`
	RecruiterID uuid.UUID `json:"recruiter_id" validate:"required"`

	DateContacted Date              `json:"date_contacted" validate:"required"`
	Status        ApplicationStatus `json:"status" validate:"required"`
	RejectionDate *Date             `json:"rejection_date,omitempty"`
	StartDate     *Date             `json:"start_date,omitempty"`

	IsReplacement   bool       `json:"is_replacement"`
	ReplacementOfID *uuid.UUID `json:"replacement_of_id,omitempty"`
	ReplacementNote *string    `json:"replacement_note,omitempty"`

	Paid          bool             `json:"paid"`
	PaidDate      *Date            `json:"paid_date,omitempty"`
	PaymentAmount *decimal.Decimal `json:"payment_amount,omitempty"`
}

// UpdateApplicationRequest is a sparse update: only the fields present in the
// request change. Nullable fields use Optional so "set to null" and "leave
// alone" stay distinct.
type UpdateApplicationRequest struct {
	CandidateID *uuid.UUID `json:"candidate_id,omitempty"`
	VacancyID   *uuid.UUID `json:"vacancy_id,omitempty"`
	RecruiterID *uuid.UUID `json:"recruiter_id,omitempty"`

	DateContacted *Date              `json:"date_contacted,omitempty"`
	Status        *ApplicationStatus `json:"status,omitempty"`
	RejectionDate Optional[Date]     `json:"rejection_date,omitempty"`
	StartDate     Optional[Date]     `json:"start_date,omitempty"`

	IsReplacement   *bool               `json:"is_replacement,omitempty"`
	ReplacementOfID Optional[uuid.UUID] `json:"replacement_of_id,omitempty"`
	ReplacementNote Optional[string]    `json:"replacement_note,omitempty"`

	// Derived payment fields are rejected, not merged; present here only so
	// an attempt to set them can be detected and refused.
	Paid          Optional[bool]            `json:"paid,omitempty"`
	PaidDate      Optional[Date]            `json:"paid_date,omitempty"`
	PaymentAmount Optional[decimal.Decimal] `json:"payment_amount,omitempty"`
}

// TouchesPaymentCache reports whether the request tries to write any of the
// derived payment fields.
func (r *UpdateApplicationRequest) TouchesPaymentCache() bool {
	return r.Paid.Set || r.PaidDate.Set || r.PaymentAmount.Set
}

// ApplyTo merges the supplied fields onto a copy of app and returns the
// merged record. Unset fields keep their prior values.
func (r *UpdateApplicationRequest) ApplyTo(app Application) Application {
	if r.CandidateID != nil {
		app.CandidateID = *r.CandidateID
	}
	if r.VacancyID != nil {
		app.VacancyID = *r.VacancyID
	}
	if r.RecruiterID != nil {
		app.RecruiterID = *r.RecruiterID
	}
	if r.DateContacted != nil {
		app.DateContacted = *r.DateContacted
	}
	if r.Status != nil {
		app.Status = *r.Status
	}
	if r.RejectionDate.Set {
		app.RejectionDate = r.RejectionDate.Value
	}
	if r.StartDate.Set {
		app.StartDate = r.StartDate.Value
	}
	if r.IsReplacement != nil {
		app.IsReplacement = *r.IsReplacement
	}
	if r.ReplacementOfID.Set {
		app.ReplacementOfID = r.ReplacementOfID.Value
	}
	if r.ReplacementNote.Set {
		app.ReplacementNote = r.ReplacementNote.Value
	}
	return app
}
