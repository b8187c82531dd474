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

const vacanciesTable = "vacancies"

var vacancyStruct = database.NewStruct(new(models.Vacancy))

// VacancyRepository handles database operations for vacancies
type VacancyRepository struct {
	*Repository
	clients ClientRepo
}

// NewVacancyRepository creates a new vacancy repository
func NewVacancyRepository(db database.DB, logger ectologger.Logger, clients ClientRepo) *VacancyRepository {
	return &VacancyRepository{
		Repository: NewRepository(db, logger),
		clients:    clients,
	}
}

// Create creates a new vacancy. The referenced client must exist.
func (r *VacancyRepository) Create(ctx context.Context, req models.CreateVacancyRequest) (*models.Vacancy, error) {
	ctx, span := tracing.StartSpan(ctx, "VacancyRepository.Create")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	ok, err := r.clients.Exists(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, BadRequest("client not found")
	}

	vacancy := &models.Vacancy{
		ID:        uuid.New(),
		ClientID:  req.ClientID,
		Title:     req.Title,
		FeeAmount: req.FeeAmount,
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(vacanciesTable).
		Cols("id", "client_id", "title", "fee_amount", "created_at").
		Values(vacancy.ID, vacancy.ClientID, vacancy.Title, vacancy.FeeAmount, sqlbuilder.Raw("NOW()")).
		Returning("created_at")

	query, args := ib.Build()
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&vacancy.CreatedAt); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"client_id": req.ClientID,
		}).Error("failed to create vacancy")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create vacancy")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create vacancy")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"vacancy_id": vacancy.ID}).Debugf("Created %s", vacanciesTable)
	return vacancy, nil
}

// GetByID retrieves a vacancy by ID
func (r *VacancyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vacancy, error) {
	ctx, span := tracing.StartSpan(ctx, "VacancyRepository.GetByID")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	sb := vacancyStruct.SelectFrom(vacanciesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var vacancy models.Vacancy
	err = tx.GetContext(ctx, &vacancy, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		_ = tx.Commit(ctx)
		return nil, NotFound("vacancy %s does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"vacancy_id": id,
		}).Error("failed to get vacancy by ID")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get vacancy")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get vacancy")
	}
	return &vacancy, nil
}

// List retrieves vacancies ordered by title, optionally
// filtered by client.
func (r *VacancyRepository) List(ctx context.Context, clientID *uuid.UUID) ([]models.Vacancy, error) {
	ctx, span := tracing.StartSpan(ctx, "VacancyRepository.List")
	defer span.End()

	sb := vacancyStruct.SelectFrom(vacanciesTable)
	if clientID != nil {
		sb.Where(sb.Equal("client_id", *clientID))
	}
	sb.OrderBy("title")

	query, args := sb.Build()
	var vacancies []models.Vacancy
	if err := r.db.SelectContext(ctx, &vacancies, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list vacancies")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list vacancies")
	}

	return vacancies, nil
}

// Exists reports whether a vacancy with the given ID exists
func (r *VacancyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "VacancyRepository.Exists")
	defer span.End()

	return exists(ctx, r.db, r.logger, vacanciesTable, id)
}

// Delete deletes a vacancy and cascades to its applications and their
// payments.
func (r *VacancyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "VacancyRepository.Delete")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	applicationIDs := database.NewSelectBuilder()
	applicationIDs.Select("id")
	applicationIDs.From(applicationsTable)
	applicationIDs.Where(applicationIDs.Equal("vacancy_id", id))

	deletePayments := database.NewDeleteBuilder()
	deletePayments.DeleteFrom(paymentsTable)
	deletePayments.Where(deletePayments.In("application_id", applicationIDs))

	query, args := deletePayments.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"vacancy_id": id,
		}).Error("failed to cascade delete payments for vacancy")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete vacancy")
	}

	deleteApplications := database.NewDeleteBuilder()
	deleteApplications.DeleteFrom(applicationsTable)
	deleteApplications.Where(deleteApplications.Equal("vacancy_id", id))

	query, args = deleteApplications.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"vacancy_id": id,
		}).Error("failed to cascade delete applications for vacancy")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete vacancy")
	}

	deleteVacancy := database.NewDeleteBuilder()
	deleteVacancy.DeleteFrom(vacanciesTable)
	deleteVacancy.Where(deleteVacancy.Equal("id", id))

	query, args = deleteVacancy.Build()
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"vacancy_id": id,
		}).Error("failed to delete vacancy")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete vacancy")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return NotFound("vacancy %s does not exist", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete vacancy")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"vacancy_id": id}).Info("Deleted vacancy")
	return nil
}
