package repositories_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radimbig2/SRM/pkg/database"
	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/repositories"
)

func getTestDB(t *testing.T) database.DB {
	t.Helper()

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbUser := os.Getenv("DB_USER_NAME")
	if dbUser == "" {
		dbUser = "postgres"
	}
	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "postgres"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "srm_test"
	}

	dsn := "host=" + dbHost + " user=" + dbUser + " password=" + dbPass + " dbname=" + dbName + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(func() { _ = db.Close() })

	return database.NewDatabaseInstance(db, getTestLogger())
}

func TestApplicationLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := getTestDB(t)
	logger := getTestLogger()
	ctx := context.Background()

	clients := repositories.NewClientRepository(db, logger)
	recruiters := repositories.NewRecruiterRepository(db, logger)
	vacancies := repositories.NewVacancyRepository(db, logger, clients)
	candidates := repositories.NewCandidateRepository(db, logger)
	applications := repositories.NewApplicationRepository(db, logger, candidates, vacancies, recruiters)
	payments := repositories.NewPaymentRepository(db, logger)
	reports := repositories.NewReportRepository(db, logger)

	client, err := clients.Create(ctx, models.CreateClientRequest{Name: "Lifecycle Client " + uuid.NewString()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = clients.Delete(context.Background(), client.ID) })

	recruiter, err := recruiters.Create(ctx, models.CreateRecruiterRequest{Name: "Lifecycle Recruiter " + uuid.NewString()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = recruiters.Delete(context.Background(), recruiter.ID) })

	vacancy, err := vacancies.Create(ctx, models.CreateVacancyRequest{
		ClientID:  client.ID,
		Title:     "Senior Engineer",
		FeeAmount: decimal.NewFromInt(3000),
	})
	require.NoError(t, err)

	candidate, err := candidates.Create(ctx, models.CreateCandidateRequest{FullName: "Jane Lifecycle"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = candidates.Delete(context.Background(), candidate.ID) })

	app, err := applications.Create(ctx, models.CreateApplicationRequest{
		CandidateID:   candidate.ID,
		VacancyID:     vacancy.ID,
		RecruiterID:   recruiter.ID,
		DateContacted: models.NewDate(2025, time.January, 15),
		Status:        models.StatusNew,
	})
	require.NoError(t, err)
	assert.False(t, app.Paid)

	// the recruiter now has applications and cannot be removed
	err = recruiters.Delete(ctx, recruiter.ID)
	assertConflict(t, err)

	// record two payments and watch the cache follow the ledger
	first, err := payments.Create(ctx, app.ID, models.CreatePaymentRequest{
		PaidDate: models.NewDate(2025, time.February, 10),
		Amount:   decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	_, err = payments.Create(ctx, app.ID, models.CreatePaymentRequest{
		PaidDate: models.NewDate(2025, time.March, 5),
		Amount:   decimal.NewFromInt(2000),
	})
	require.NoError(t, err)

	fetched, err := applications.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Paid)
	assert.True(t, fetched.PaymentAmount.Equal(decimal.NewFromInt(3000)), "got %s", fetched.PaymentAmount)
	require.NotNil(t, fetched.PaidDate)
	assert.Equal(t, "2025-03-05", fetched.PaidDate.String())

	// the cache cannot be written directly
	_, err = applications.Update(ctx, app.ID, models.UpdateApplicationRequest{Paid: models.NewOptional(false)})
	assertBadRequest(t, err)

	// hire via a sparse update
	status := models.StatusHired
	updated, err := applications.Update(ctx, app.ID, models.UpdateApplicationRequest{
		Status:    &status,
		StartDate: models.NewOptional(models.NewDate(2025, time.April, 1)),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusHired, updated.Status)

	// reporting sees the application and the month's payments
	rows, err := reports.Pipeline(ctx, models.PipelineFilter{ClientID: &client.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane Lifecycle", rows[0].CandidateName)

	report, err := reports.Earnings(ctx, 2025, 3)
	require.NoError(t, err)
	assert.False(t, report.Total.IsZero())

	// deleting a payment rolls the cache back
	require.NoError(t, payments.Delete(ctx, first.ID))
	fetched, err = applications.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, fetched.PaymentAmount.Equal(decimal.NewFromInt(2000)))

	// cascade: removing the client takes the vacancy, application and
	// remaining payments with it
	require.NoError(t, clients.Delete(ctx, client.ID))
	_, err = applications.GetByID(ctx, app.ID)
	assertNotFound(t, err)
	_, err = vacancies.GetByID(ctx, vacancy.ID)
	assertNotFound(t, err)
}
