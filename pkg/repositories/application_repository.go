package repositories

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/shopspring/decimal"

	"github.com/radimbig2/SRM/pkg/database"
	"github.com/radimbig2/SRM/pkg/metrics"
	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/tracing"
)

const applicationsTable = "applications"

var applicationStruct = database.NewStruct(new(models.Application))

// ApplicationRepository handles the application lifecycle. Every create and
// update validates references and the status/date pairing against the merged
// record, then persists inside a single transaction.
type ApplicationRepository struct {
	*Repository
	candidates CandidateRepo
	vacancies  VacancyRepo
	recruiters RecruiterRepo
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db database.DB, logger ectologger.Logger, candidates CandidateRepo, vacancies VacancyRepo, recruiters RecruiterRepo) *ApplicationRepository {
	return &ApplicationRepository{
		Repository: NewRepository(db, logger),
		candidates: candidates,
		vacancies:  vacancies,
		recruiters: recruiters,
	}
}

// checkReferences validates that every entity the application points at
// exists. The checks run on the open transaction carried by the context.
func (r *ApplicationRepository) checkReferences(ctx context.Context, candidateID, vacancyID, recruiterID uuid.UUID, replacementOfID *uuid.UUID) error {
	ok, err := r.candidates.Exists(ctx, candidateID)
	if err != nil {
		return err
	}
	if !ok {
		return BadRequest("candidate not found")
	}

	ok, err = r.vacancies.Exists(ctx, vacancyID)
	if err != nil {
		return err
	}
	if !ok {
		return BadRequest("vacancy not found")
	}

	ok, err = r.recruiters.Exists(ctx, recruiterID)
	if err != nil {
		return err
	}
	if !ok {
		return BadRequest("recruiter not found")
	}

	if replacementOfID != nil {
		ok, err = exists(ctx, r.db, r.logger, applicationsTable, *replacementOfID)
		if err != nil {
			return err
		}
		if !ok {
			return BadRequest("replacement application not found")
		}
	}

	return nil
}

// Create creates an application. When the request carries paid with a paid
// date, one initial ledger payment is seeded and the cache recomputed; the
// cached fields themselves always start derived, never trusted from input.
func (r *ApplicationRepository) Create(ctx context.Context, req models.CreateApplicationRequest) (*models.Application, error) {
	ctx, span := tracing.StartSpan(ctx, "ApplicationRepository.Create")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	if err := r.checkReferences(ctx, req.CandidateID, req.VacancyID, req.RecruiterID, req.ReplacementOfID); err != nil {
		return nil, err
	}

	if err := models.EnforceStatusDates(req.Status, req.RejectionDate, req.StartDate); err != nil {
		return nil, err
	}

	app := &models.Application{
		ID:              uuid.New(),
		CandidateID:     req.CandidateID,
		VacancyID:       req.VacancyID,
		RecruiterID:     req.RecruiterID,
		DateContacted:   req.DateContacted,
		Status:          req.Status,
		RejectionDate:   req.RejectionDate,
		StartDate:       req.StartDate,
		Paid:            false,
		PaymentAmount:   decimal.Zero,
		IsReplacement:   req.IsReplacement,
		ReplacementOfID: req.ReplacementOfID,
		ReplacementNote: req.ReplacementNote,
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(applicationsTable).
		Cols("id", "candidate_id", "vacancy_id", "recruiter_id",
			"date_contacted", "status", "rejection_date", "start_date",
			"paid", "paid_date", "payment_amount",
			"is_replacement", "replacement_of_id", "replacement_note", "created_at").
		Values(app.ID, app.CandidateID, app.VacancyID, app.RecruiterID,
			app.DateContacted, app.Status, app.RejectionDate, app.StartDate,
			false, nil, decimal.Zero,
			app.IsReplacement, app.ReplacementOfID, app.ReplacementNote, sqlbuilder.Raw("NOW()")).
		Returning("created_at")

	query, args := ib.Build()
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&app.CreatedAt); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create application")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create application")
	}

	if req.Paid && req.PaidDate != nil {
		amount := decimal.Zero
		if req.PaymentAmount != nil && req.PaymentAmount.GreaterThan(decimal.Zero) {
			amount = *req.PaymentAmount
		} else {
			vacancy, err := r.vacancies.GetByID(ctx, req.VacancyID)
			if err != nil {
				return nil, err
			}
			amount = vacancy.FeeAmount
		}

		note := "initial payment"
		pib := database.NewInsertBuilder()
		pib.InsertInto(paymentsTable).
			Cols("id", "application_id", "paid_date", "amount", "note", "created_at").
			Values(uuid.New(), app.ID, *req.PaidDate, amount, note, sqlbuilder.Raw("NOW()"))

		query, args = pib.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"application_id": app.ID,
			}).Error("failed to seed initial payment")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create application")
		}

		if err := recomputePaymentCache(ctx, tx, r.logger, app.ID); err != nil {
			return nil, err
		}

		app.Paid = true
		app.PaidDate = req.PaidDate
		app.PaymentAmount = amount
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create application")
	}

	metrics.ApplicationsTotal.WithLabelValues("create", string(app.Status)).Inc()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"application_id": app.ID,
		"status":         app.Status,
	}).Info("Created application")
	return app, nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	ctx, span := tracing.StartSpan(ctx, "ApplicationRepository.GetByID")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	sb := applicationStruct.SelectFrom(applicationsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var app models.Application
	err = tx.GetContext(ctx, &app, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		_ = tx.Commit(ctx)
		return nil, NotFound("application %s does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"application_id": id,
		}).Error("failed to get application by ID")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get application")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get application")
	}
	return &app, nil
}

// Update applies a sparse update. The supplied fields are merged onto the
// current record, the merged record is re-validated in full, and the result
// is persisted in one transaction. Attempts to write the derived payment
// fields are refused.
func (r *ApplicationRepository) Update(ctx context.Context, id uuid.UUID, req models.UpdateApplicationRequest) (*models.Application, error) {
	ctx, span := tracing.StartSpan(ctx, "ApplicationRepository.Update")
	defer span.End()

	if req.TouchesPaymentCache() {
		return nil, BadRequest("paid, paid_date and payment_amount are derived from payments and cannot be set directly")
	}

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := req.ApplyTo(*current)

	if err := r.checkReferences(ctx, merged.CandidateID, merged.VacancyID, merged.RecruiterID, merged.ReplacementOfID); err != nil {
		return nil, err
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}

	ub := database.NewUpdateBuilder()
	ub.Update(applicationsTable)
	ub.Set(
		ub.Assign("candidate_id", merged.CandidateID),
		ub.Assign("vacancy_id", merged.VacancyID),
		ub.Assign("recruiter_id", merged.RecruiterID),
		ub.Assign("date_contacted", merged.DateContacted),
		ub.Assign("status", merged.Status),
		ub.Assign("rejection_date", merged.RejectionDate),
		ub.Assign("start_date", merged.StartDate),
		ub.Assign("is_replacement", merged.IsReplacement),
		ub.Assign("replacement_of_id", merged.ReplacementOfID),
		ub.Assign("replacement_note", merged.ReplacementNote),
	)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"application_id": id,
		}).Error("failed to update application")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update application")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update application")
	}

	metrics.ApplicationsTotal.WithLabelValues("update", string(merged.Status)).Inc()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"application_id": id,
		"status":         merged.Status,
	}).Info("Updated application")
	return &merged, nil
}

// Delete deletes an application and all of its payments
func (r *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "ApplicationRepository.Delete")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	deletePayments := database.NewDeleteBuilder()
	deletePayments.DeleteFrom(paymentsTable)
	deletePayments.Where(deletePayments.Equal("application_id", id))

	query, args := deletePayments.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"application_id": id,
		}).Error("failed to delete payments for application")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete application")
	}

	deleteApplication := database.NewDeleteBuilder()
	deleteApplication.DeleteFrom(applicationsTable)
	deleteApplication.Where(deleteApplication.Equal("id", id))

	query, args = deleteApplication.Build()
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"application_id": id,
		}).Error("failed to delete application")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete application")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return NotFound("application %s does not exist", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete application")
	}

	metrics.ApplicationsTotal.WithLabelValues("delete", "").Inc()
	r.logger.WithContext(ctx).WithFields(map[string]any{"application_id": id}).Info("Deleted application")
	return nil
}
