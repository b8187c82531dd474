package repositories

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/shopspring/decimal"

	"github.com/radimbig2/SRM/pkg/database"
	"github.com/radimbig2/SRM/pkg/metrics"
	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/tracing"
)

// ReportRepository runs the read-only reporting queries.
type ReportRepository struct {
	*Repository
}

// NewReportRepository creates a new report repository
func NewReportRepository(db database.DB, logger ectologger.Logger) *ReportRepository {
	return &ReportRepository{Repository: NewRepository(db, logger)}
}

// Pipeline returns the flattened pipeline view: applications joined with
// their candidate, recruiter, vacancy and client. Inner joins only, so an
// application with a dangling reference drops out of the view.
func (r *ReportRepository) Pipeline(ctx context.Context, filter models.PipelineFilter) ([]models.PipelineRow, error) {
	ctx, span := tracing.StartSpan(ctx, "ReportRepository.Pipeline")
	defer span.End()

	filter, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	sb := database.NewSelectBuilder()
	sb.Select(
		"a.id", "a.date_contacted", "a.status", "a.rejection_date", "a.start_date",
		"a.paid", "a.paid_date", "a.payment_amount",
		"a.is_replacement", "a.replacement_of_id", "a.replacement_note",
		"a.created_at",
		sb.As("c.id", "candidate_id"), sb.As("c.full_name", "candidate_name"),
		sb.As("r.id", "recruiter_id"), sb.As("r.name", "recruiter_name"),
		sb.As("v.id", "vacancy_id"), sb.As("v.title", "vacancy_title"), sb.As("v.fee_amount", "vacancy_fee"),
		sb.As("cl.id", "client_id"), sb.As("cl.name", "client_name"),
	)
	sb.From(applicationsTable + " a")
	sb.Join(candidatesTable+" c", "c.id = a.candidate_id")
	sb.Join(recruitersTable+" r", "r.id = a.recruiter_id")
	sb.Join(vacanciesTable+" v", "v.id = a.vacancy_id")
	sb.Join(clientsTable+" cl", "cl.id = v.client_id")

	if filter.ClientID != nil {
		sb.Where(sb.Equal("cl.id", *filter.ClientID))
	}
	if filter.RecruiterID != nil {
		sb.Where(sb.Equal("r.id", *filter.RecruiterID))
	}
	if filter.Status != nil {
		sb.Where(sb.Equal("a.status", *filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		sb.Where(sb.Or(
			sb.ILike("c.full_name", pattern),
			sb.ILike("v.title", pattern),
			sb.ILike("cl.name", pattern),
			sb.ILike("r.name", pattern),
		))
	}

	sb.OrderBy("a.created_at DESC")
	sb.Limit(filter.Limit)

	query, args := sb.Build()
	var rows []models.PipelineRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to query pipeline")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to query pipeline")
	}

	metrics.ReportQueriesTotal.WithLabelValues("pipeline").Inc()
	return rows, nil
}

// Earnings returns every payment whose paid date falls in the given calendar
// month, with join context and the month's total rounded to two decimal
// places.
func (r *ReportRepository) Earnings(ctx context.Context, year, month int) (*models.EarningsReport, error) {
	ctx, span := tracing.StartSpan(ctx, "ReportRepository.Earnings")
	defer span.End()

	start, end, err := models.MonthWindow(year, month)
	if err != nil {
		return nil, err
	}

	sb := database.NewSelectBuilder()
	sb.Select(
		sb.As("p.id", "payment_id"),
		"p.paid_date", "p.amount",
		sb.As("c.full_name", "candidate_name"),
		sb.As("cl.name", "client_name"),
		sb.As("v.title", "vacancy_title"),
		sb.As("r.name", "recruiter_name"),
		sb.As("a.id", "application_id"),
	)
	sb.From(paymentsTable + " p")
	sb.Join(applicationsTable+" a", "a.id = p.application_id")
	sb.Join(candidatesTable+" c", "c.id = a.candidate_id")
	sb.Join(recruitersTable+" r", "r.id = a.recruiter_id")
	sb.Join(vacanciesTable+" v", "v.id = a.vacancy_id")
	sb.Join(clientsTable+" cl", "cl.id = v.client_id")
	sb.Where(
		sb.GreaterEqualThan("p.paid_date", start),
		sb.LessThan("p.paid_date", end),
	)
	sb.OrderBy("p.paid_date DESC", "p.created_at DESC")

	query, args := sb.Build()
	var items []models.EarningsItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"year":  year,
			"month": month,
		}).Error("failed to query earnings")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to query earnings")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}

	metrics.ReportQueriesTotal.WithLabelValues("earnings").Inc()
	return &models.EarningsReport{
		Year:  year,
		Month: month,
		Total: total.Round(2),
		Items: items,
	}, nil
}
