package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/repositories"
)

func TestReportRepository_Earnings_SumsAndRounds(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewReportRepository(db, getTestLogger())

	columns := []string{
		"payment_id", "paid_date", "amount",
		"candidate_name", "client_name", "vacancy_title", "recruiter_name",
		"application_id",
	}

	mock.ExpectQuery("SELECT .+ FROM payments p").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.New().String(), time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), "100.105",
				"Jane Smith", "Acme", "Senior Engineer", "Bob", uuid.New().String()).
			AddRow(uuid.New().String(), time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), "50.10",
				"John Doe", "Acme", "Data Analyst", "Bob", uuid.New().String()))

	report, err := repo.Earnings(context.Background(), 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 2025, report.Year)
	assert.Equal(t, 3, report.Month)
	assert.Len(t, report.Items, 2)
	assert.Equal(t, "150.21", report.Total.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_Earnings_InvalidMonth(t *testing.T) {
	db, _ := newMockDB(t)
	repo := repositories.NewReportRepository(db, getTestLogger())

	_, err := repo.Earnings(context.Background(), 2025, 0)
	assertBadRequest(t, err)
}

func TestReportRepository_Earnings_EmptyMonth(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewReportRepository(db, getTestLogger())

	mock.ExpectQuery("SELECT .+ FROM payments p").
		WillReturnRows(sqlmock.NewRows([]string{"payment_id"}))

	report, err := repo.Earnings(context.Background(), 2025, 6)
	require.NoError(t, err)
	assert.Empty(t, report.Items)
	assert.True(t, report.Total.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_Pipeline_InvalidLimit(t *testing.T) {
	db, _ := newMockDB(t)
	repo := repositories.NewReportRepository(db, getTestLogger())

	_, err := repo.Pipeline(context.Background(), models.PipelineFilter{Limit: models.PipelineMaxLimit + 1})
	assertBadRequest(t, err)
}

func TestReportRepository_Pipeline(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewReportRepository(db, getTestLogger())

	columns := []string{
		"id", "date_contacted", "status", "rejection_date", "start_date",
		"paid", "paid_date", "payment_amount",
		"is_replacement", "replacement_of_id", "replacement_note", "created_at",
		"candidate_id", "candidate_name",
		"recruiter_id", "recruiter_name",
		"vacancy_id", "vacancy_title", "vacancy_fee",
		"client_id", "client_name",
	}

	mock.ExpectQuery("SELECT .+ FROM applications a").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			uuid.New().String(), time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), "hired", nil,
			time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			true, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), "2500.00",
			false, nil, nil, time.Now(),
			uuid.New().String(), "Jane Smith",
			uuid.New().String(), "Bob",
			uuid.New().String(), "Senior Engineer", "2500.00",
			uuid.New().String(), "Acme",
		))

	rows, err := repo.Pipeline(context.Background(), models.PipelineFilter{Search: "jane"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane Smith", rows[0].CandidateName)
	assert.Equal(t, models.StatusHired, rows[0].Status)
	require.NotNil(t, rows[0].StartDate)
	assert.Equal(t, "2025-03-01", rows[0].StartDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
