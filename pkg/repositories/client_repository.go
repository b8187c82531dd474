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

const clientsTable = "clients"

var clientStruct = database.NewStruct(new(models.Client))

// ClientRepository handles database operations for clients
type ClientRepository struct {
	*Repository
}

// NewClientRepository creates a new client repository
func NewClientRepository(db database.DB, logger ectologger.Logger) *ClientRepository {
	return &ClientRepository{Repository: NewRepository(db, logger)}
}

// Create creates a new client. Client names are unique.
func (r *ClientRepository) Create(ctx context.Context, req models.CreateClientRequest) (*models.Client, error) {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.Create")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	sb := database.NewSelectBuilder()
	sb.Select("1")
	sb.From(clientsTable)
	sb.Where(sb.Equal("name", req.Name))

	query, args := sb.Build()
	var one int
	err = tx.GetContext(ctx, &one, query, args...)
	if err == nil {
		return nil, BadRequest("client name already exists")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		r.logger.WithContext(ctx).WithError(err).Error("failed to check client name uniqueness")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create client")
	}

	client := &models.Client{
		ID:   uuid.New(),
		Name: req.Name,
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(clientsTable).
		Cols("id", "name", "created_at").
		Values(client.ID, client.Name, sqlbuilder.Raw("NOW()")).
		Returning("created_at")

	query, args = ib.Build()
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&client.CreatedAt); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"client_name": req.Name,
		}).Error("failed to create client")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create client")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create client")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"client_id": client.ID}).Debugf("Created %s", clientsTable)
	return client, nil
}

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.GetByID")
	defer span.End()

	sb := clientStruct.SelectFrom(clientsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var client models.Client
	err := r.db.GetContext(ctx, &client, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("client %s does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"client_id": id,
		}).Error("failed to get client by ID")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get client")
	}

	return &client, nil
}

// List retrieves all clients ordered by name
func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.List")
	defer span.End()

	sb := clientStruct.SelectFrom(clientsTable)
	sb.OrderBy("name")

	query, args := sb.Build()
	var clients []models.Client
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list clients")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list clients")
	}

	return clients, nil
}

// Count returns the number of clients
func (r *ClientRepository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(clientsTable)

	query, args := sb.Build()
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count clients")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count clients")
	}

	return count, nil
}

// Exists reports whether a client with the given ID exists. It joins the
// caller's transaction when one is open on the context.
func (r *ClientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.Exists")
	defer span.End()

	return exists(ctx, r.db, r.logger, clientsTable, id)
}

// Delete deletes a client and cascades to its vacancies, their applications
// and their payments.
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.Delete")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	vacancyIDs := database.NewSelectBuilder()
	vacancyIDs.Select("id")
	vacancyIDs.From(vacanciesTable)
	vacancyIDs.Where(vacancyIDs.Equal("client_id", id))

	applicationIDs := database.NewSelectBuilder()
	applicationIDs.Select("id")
	applicationIDs.From(applicationsTable)
	applicationIDs.Where(applicationIDs.In("vacancy_id", vacancyIDs))

	deletePayments := database.NewDeleteBuilder()
	deletePayments.DeleteFrom(paymentsTable)
	deletePayments.Where(deletePayments.In("application_id", applicationIDs))

	query, args := deletePayments.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"client_id": id,
		}).Error("failed to cascade delete payments for client")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete client")
	}

	deleteApplications := database.NewDeleteBuilder()
	deleteApplications.DeleteFrom(applicationsTable)
	deleteApplications.Where(deleteApplications.In("vacancy_id", vacancyIDs))

	query, args = deleteApplications.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"client_id": id,
		}).Error("failed to cascade delete applications for client")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete client")
	}

	deleteVacancies := database.NewDeleteBuilder()
	deleteVacancies.DeleteFrom(vacanciesTable)
	deleteVacancies.Where(deleteVacancies.Equal("client_id", id))

	query, args = deleteVacancies.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"client_id": id,
		}).Error("failed to cascade delete vacancies for client")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete client")
	}

	deleteClient := database.NewDeleteBuilder()
	deleteClient.DeleteFrom(clientsTable)
	deleteClient.Where(deleteClient.Equal("id", id))

	query, args = deleteClient.Build()
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"client_id": id,
		}).Error("failed to delete client")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete client")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return NotFound("client %s does not exist", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete client")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"client_id": id}).Info("Deleted client")
	return nil
}

// exists is the shared existence probe for all entity tables. It joins an
// open transaction on the context so lifecycle validation reads its own
// transaction's view.
func exists(ctx context.Context, db database.DB, logger ectologger.Logger, table string, id uuid.UUID) (bool, error) {
	ctx, tx, err := db.GetTx(ctx, nil)
	if err != nil {
		return false, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	sb := database.NewSelectBuilder()
	sb.Select("1")
	sb.From(table)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var one int
	err = tx.GetContext(ctx, &one, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		_ = tx.Commit(ctx)
		return false, nil
	}
	if err != nil {
		logger.WithContext(ctx).WithError(err).Errorf("failed to check existence in %s", table)
		return false, httperror.NewHTTPError(http.StatusInternalServerError, "failed to check existence")
	}

	if err := tx.Commit(ctx); err != nil {
		return false, httperror.NewHTTPError(http.StatusInternalServerError, "failed to check existence")
	}
	return true, nil
}
