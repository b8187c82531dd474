package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radimbig2/SRM/pkg/repositories"
)

func TestVacancyRepository_List_OrderedByTitle(t *testing.T) {
	db, mock := newMockDB(t)
	logger := getTestLogger()
	repo := repositories.NewVacancyRepository(db, logger, repositories.NewClientRepository(db, logger))

	mock.ExpectQuery(`SELECT .+ FROM vacancies ORDER BY title`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "title", "fee_amount", "created_at"}).
			AddRow(uuid.NewString(), uuid.NewString(), "Backend Engineer", "2500.00", time.Now()).
			AddRow(uuid.NewString(), uuid.NewString(), "QA Engineer", "1800.00", time.Now()))

	vacancies, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, vacancies, 2)
	assert.Equal(t, "Backend Engineer", vacancies[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVacancyRepository_List_FilteredByClient(t *testing.T) {
	db, mock := newMockDB(t)
	logger := getTestLogger()
	repo := repositories.NewVacancyRepository(db, logger, repositories.NewClientRepository(db, logger))

	clientID := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM vacancies WHERE client_id = .+ ORDER BY title`).
		WithArgs(clientID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "title", "fee_amount", "created_at"}).
			AddRow(uuid.NewString(), clientID.String(), "Backend Engineer", "2500.00", time.Now()))

	vacancies, err := repo.List(context.Background(), &clientID)
	require.NoError(t, err)
	require.Len(t, vacancies, 1)
	assert.Equal(t, clientID, vacancies[0].ClientID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
