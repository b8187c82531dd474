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
	"github.com/radimbig2/SRM/pkg/metrics"
	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/tracing"
)

const paymentsTable = "payments"

var paymentStruct = database.NewStruct(new(models.Payment))

// PaymentRepository handles the payment ledger. Every ledger write recomputes
// the owning application's derived payment fields in the same transaction.
type PaymentRepository struct {
	*Repository
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db database.DB, logger ectologger.Logger) *PaymentRepository {
	return &PaymentRepository{Repository: NewRepository(db, logger)}
}

// Create records a payment against an application and recomputes the
// application's payment cache.
func (r *PaymentRepository) Create(ctx context.Context, applicationID uuid.UUID, req models.CreatePaymentRequest) (*models.Payment, error) {
	ctx, span := tracing.StartSpan(ctx, "PaymentRepository.Create")
	defer span.End()

	if req.Amount.IsNegative() {
		return nil, BadRequest("amount must not be negative")
	}

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	ok, err := exists(ctx, r.db, r.logger, applicationsTable, applicationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFound("application %s does not exist", applicationID)
	}

	payment := &models.Payment{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		PaidDate:      req.PaidDate,
		Amount:        req.Amount,
		Note:          req.Note,
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(paymentsTable).
		Cols("id", "application_id", "paid_date", "amount", "note", "created_at").
		Values(payment.ID, payment.ApplicationID, payment.PaidDate, payment.Amount, payment.Note, sqlbuilder.Raw("NOW()")).
		Returning("created_at")

	query, args := ib.Build()
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&payment.CreatedAt); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"application_id": applicationID,
		}).Error("failed to create payment")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create payment")
	}

	if err := recomputePaymentCache(ctx, tx, r.logger, applicationID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create payment")
	}

	metrics.PaymentsTotal.WithLabelValues("create").Inc()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"payment_id":     payment.ID,
		"application_id": applicationID,
	}).Info("Recorded payment")
	return payment, nil
}

// ListByApplication retrieves an application's payments, most recent paid
// date first.
func (r *PaymentRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.Payment, error) {
	ctx, span := tracing.StartSpan(ctx, "PaymentRepository.ListByApplication")
	defer span.End()

	ok, err := exists(ctx, r.db, r.logger, applicationsTable, applicationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFound("application %s does not exist", applicationID)
	}

	sb := paymentStruct.SelectFrom(paymentsTable)
	sb.Where(sb.Equal("application_id", applicationID))
	sb.OrderBy("paid_date DESC", "created_at DESC")

	query, args := sb.Build()
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"application_id": applicationID,
		}).Error("failed to list payments")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list payments")
	}

	return payments, nil
}

// Delete removes a payment and recomputes the owning application's payment
// cache.
func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "PaymentRepository.Delete")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	sb := database.NewSelectBuilder()
	sb.Select("application_id")
	sb.From(paymentsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var applicationID uuid.UUID
	err = tx.GetContext(ctx, &applicationID, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return NotFound("payment %s does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"payment_id": id,
		}).Error("failed to look up payment")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete payment")
	}

	db := database.NewDeleteBuilder()
	db.DeleteFrom(paymentsTable)
	db.Where(db.Equal("id", id))

	query, args = db.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"payment_id": id,
		}).Error("failed to delete payment")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete payment")
	}

	if err := recomputePaymentCache(ctx, tx, r.logger, applicationID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete payment")
	}

	metrics.PaymentsTotal.WithLabelValues("delete").Inc()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"payment_id":     id,
		"application_id": applicationID,
	}).Info("Deleted payment")
	return nil
}
