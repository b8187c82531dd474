package repositories

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/radimbig2/SRM/pkg/database"
	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/tracing"
)

const candidatesTable = "candidates"

var candidateStruct = database.NewStruct(new(models.Candidate))

// CandidateRepository handles database operations for candidates
type CandidateRepository struct {
	*Repository
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db database.DB, logger ectologger.Logger) *CandidateRepository {
	return &CandidateRepository{Repository: NewRepository(db, logger)}
}

// Create creates a new candidate
func (r *CandidateRepository) Create(ctx context.Context, req models.CreateCandidateRequest) (*models.Candidate, error) {
	ctx, span := tracing.StartSpan(ctx, "CandidateRepository.Create")
	defer span.End()

	candidate := &models.Candidate{
		ID:       uuid.New(),
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Notes:    req.Notes,
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(candidatesTable).
		Cols("id", "full_name", "phone", "email", "notes", "created_at").
		Values(candidate.ID, candidate.FullName, candidate.Phone, candidate.Email, candidate.Notes, sqlbuilder.Raw("NOW()")).
		Returning("created_at")

	query, args := ib.Build()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&candidate.CreatedAt); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create candidate")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create candidate")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"candidate_id": candidate.ID}).Debugf("Created %s", candidatesTable)
	return candidate, nil
}

// GetByID retrieves a candidate by ID
func (r *CandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	ctx, span := tracing.StartSpan(ctx, "CandidateRepository.GetByID")
	defer span.End()

	sb := candidateStruct.SelectFrom(candidatesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var candidate models.Candidate
	err := r.db.GetContext(ctx, &candidate, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("candidate %s does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"candidate_id": id,
		}).Error("failed to get candidate by ID")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get candidate")
	}

	return &candidate, nil
}

// List retrieves candidates ordered by full name. When
// search is non-empty, matches name, phone or email case-insensitively.
func (r *CandidateRepository) List(ctx context.Context, search string) ([]models.Candidate, error) {
	ctx, span := tracing.StartSpan(ctx, "CandidateRepository.List")
	defer span.End()

	sb := candidateStruct.SelectFrom(candidatesTable)
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + search + "%"
		sb.Where(sb.Or(
			sb.ILike("full_name", pattern),
			sb.ILike("phone", pattern),
			sb.ILike("email", pattern),
		))
	}
	sb.OrderBy("full_name")

	query, args := sb.Build()
	var candidates []models.Candidate
	if err := r.db.SelectContext(ctx, &candidates, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list candidates")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list candidates")
	}

	return candidates, nil
}

// Exists reports whether a candidate with the given ID exists
func (r *CandidateRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "CandidateRepository.Exists")
	defer span.End()

	return exists(ctx, r.db, r.logger, candidatesTable, id)
}

// Delete deletes a candidate and cascades to its applications and their
// payments.
func (r *CandidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "CandidateRepository.Delete")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	applicationIDs := database.NewSelectBuilder()
	applicationIDs.Select("id")
	applicationIDs.From(applicationsTable)
	applicationIDs.Where(applicationIDs.Equal("candidate_id", id))

	deletePayments := database.NewDeleteBuilder()
	deletePayments.DeleteFrom(paymentsTable)
	deletePayments.Where(deletePayments.In("application_id", applicationIDs))

	query, args := deletePayments.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"candidate_id": id,
		}).Error("failed to cascade delete payments for candidate")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete candidate")
	}

	deleteApplications := database.NewDeleteBuilder()
	deleteApplications.DeleteFrom(applicationsTable)
	deleteApplications.Where(deleteApplications.Equal("candidate_id", id))

	query, args = deleteApplications.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"candidate_id": id,
		}).Error("failed to cascade delete applications for candidate")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete candidate")
	}

	deleteCandidate := database.NewDeleteBuilder()
	deleteCandidate.DeleteFrom(candidatesTable)
	deleteCandidate.Where(deleteCandidate.Equal("id", id))

	query, args = deleteCandidate.Build()
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"candidate_id": id,
		}).Error("failed to delete candidate")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete candidate")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return NotFound("candidate %s does not exist", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete candidate")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"candidate_id": id}).Info("Deleted candidate")
	return nil
}
