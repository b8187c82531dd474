package repositories

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/radimbig2/SRM/pkg/database"
	"github.com/radimbig2/SRM/pkg/metrics"
	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/tracing"
)

// recomputePaymentCache rebuilds an application's derived payment fields from
// its ledger rows. It always runs inside the caller's transaction so the
// ledger write and the cache update land together or not at all.
func recomputePaymentCache(ctx context.Context, tx database.Tx, logger ectologger.Logger, applicationID uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "recomputePaymentCache")
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.CacheRecomputeDuration.Observe(time.Since(start).Seconds())
	}()

	sb := database.NewSelectBuilder()
	sb.Select("COALESCE(SUM(amount), 0)", "MAX(paid_date)")
	sb.From(paymentsTable)
	sb.Where(sb.Equal("application_id", applicationID))

	query, args := sb.Build()
	var total decimal.Decimal
	var latest sql.NullTime
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&total, &latest); err != nil {
		logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"application_id": applicationID,
		}).Error("failed to aggregate payments")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to recompute payment totals")
	}

	var paidDate *models.Date
	if latest.Valid {
		d := models.NewDate(latest.Time.Year(), latest.Time.Month(), latest.Time.Day())
		paidDate = &d
	}

	ub := database.NewUpdateBuilder()
	ub.Update(applicationsTable)
	ub.Set(
		ub.Assign("paid", total.GreaterThan(decimal.Zero)),
		ub.Assign("paid_date", paidDate),
		ub.Assign("payment_amount", total),
	)
	ub.Where(ub.Equal("id", applicationID))

	query, args = ub.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"application_id": applicationID,
		}).Error("failed to write payment cache")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to recompute payment totals")
	}

	return nil
}
