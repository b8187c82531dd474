package repositories_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radimbig2/SRM/pkg/database"
	"github.com/radimbig2/SRM/pkg/models"
)

func datePtr(year int, month time.Month, day int) *models.Date {
	d := models.NewDate(year, month, day)
	return &d
}

func getTestLogger() ectologger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

// newMockDB returns a database handle backed by sqlmock
func newMockDB(t *testing.T) (database.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	return database.NewDatabaseInstance(sqlxDB, getTestLogger()), mock
}

func assertStatusCode(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, httperror.IsHTTPError(err), "expected HTTP error, got: %v", err)
	assert.Equal(t, want, httperror.GetStatusCode(err), "unexpected status for: %v", err)
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	assertStatusCode(t, err, http.StatusNotFound)
}

func assertBadRequest(t *testing.T, err error) {
	t.Helper()
	assertStatusCode(t, err, http.StatusBadRequest)
}

func assertConflict(t *testing.T, err error) {
	t.Helper()
	assertStatusCode(t, err, http.StatusConflict)
}
