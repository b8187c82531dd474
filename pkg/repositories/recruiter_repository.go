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

	"github.com/radimbig2/SRM/pkg/database"
	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/tracing"
)

const recruitersTable = "recruiters"

var recruiterStruct = database.NewStruct(new(models.Recruiter))

// RecruiterRepository handles database operations for recruiters
type RecruiterRepository struct {
	*Repository
}

// NewRecruiterRepository creates a new recruiter repository
func NewRecruiterRepository(db database.DB, logger ectologger.Logger) *RecruiterRepository {
	return &RecruiterRepository{Repository: NewRepository(db, logger)}
}

// Create creates a new recruiter. Recruiter names are unique.
func (r *RecruiterRepository) Create(ctx context.Context, req models.CreateRecruiterRequest) (*models.Recruiter, error) {
	ctx, span := tracing.StartSpan(ctx, "RecruiterRepository.Create")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	sb := database.NewSelectBuilder()
	sb.Select("1")
	sb.From(recruitersTable)
	sb.Where(sb.Equal("name", req.Name))

	query, args := sb.Build()
	var one int
	err = tx.GetContext(ctx, &one, query, args...)
	if err == nil {
		return nil, BadRequest("recruiter name already exists")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		r.logger.WithContext(ctx).WithError(err).Error("failed to check recruiter name uniqueness")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create recruiter")
	}

	recruiter := &models.Recruiter{
		ID:   uuid.New(),
		Name: req.Name,
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(recruitersTable).
		Cols("id", "name", "created_at").
		Values(recruiter.ID, recruiter.Name, sqlbuilder.Raw("NOW()")).
		Returning("created_at")

	query, args = ib.Build()
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&recruiter.CreatedAt); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"recruiter_name": req.Name,
		}).Error("failed to create recruiter")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create recruiter")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create recruiter")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"recruiter_id": recruiter.ID}).Debugf("Created %s", recruitersTable)
	return recruiter, nil
}

// GetByID retrieves a recruiter by ID
func (r *RecruiterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recruiter, error) {
	ctx, span := tracing.StartSpan(ctx, "RecruiterRepository.GetByID")
	defer span.End()

	sb := recruiterStruct.SelectFrom(recruitersTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var recruiter models.Recruiter
	err := r.db.GetContext(ctx, &recruiter, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("recruiter %s does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"recruiter_id": id,
		}).Error("failed to get recruiter by ID")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get recruiter")
	}

	return &recruiter, nil
}

// List retrieves all recruiters ordered by name
func (r *RecruiterRepository) List(ctx context.Context) ([]models.Recruiter, error) {
	ctx, span := tracing.StartSpan(ctx, "RecruiterRepository.List")
	defer span.End()

	sb := recruiterStruct.SelectFrom(recruitersTable)
	sb.OrderBy("name")

	query, args := sb.Build()
	var recruiters []models.Recruiter
	if err := r.db.SelectContext(ctx, &recruiters, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list recruiters")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list recruiters")
	}

	return recruiters, nil
}

// Exists reports whether a recruiter with the given ID exists
func (r *RecruiterRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "RecruiterRepository.Exists")
	defer span.End()

	return exists(ctx, r.db, r.logger, recruitersTable, id)
}

// Delete deletes a recruiter. The delete is refused while any application
// still references the recruiter; remove or reassign those applications first.
func (r *RecruiterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "RecruiterRepository.Delete")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(applicationsTable)
	sb.Where(sb.Equal("recruiter_id", id))

	query, args := sb.Build()
	var references int
	if err := tx.GetContext(ctx, &references, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"recruiter_id": id,
		}).Error("failed to count recruiter references")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete recruiter")
	}
	if references > 0 {
		return Conflict("recruiter %s is referenced by %d application(s)", id, references)
	}

	db := database.NewDeleteBuilder()
	db.DeleteFrom(recruitersTable)
	db.Where(db.Equal("id", id))

	query, args = db.Build()
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"recruiter_id": id,
		}).Error("failed to delete recruiter")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete recruiter")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return NotFound("recruiter %s does not exist", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete recruiter")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"recruiter_id": id}).Info("Deleted recruiter")
	return nil
}
