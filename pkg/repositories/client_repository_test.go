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

func TestClientRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewClientRepository(db, getTestLogger())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM clients").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))
	mock.ExpectQuery("INSERT INTO clients").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	client, err := repo.Create(context.Background(), models.CreateClientRequest{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", client.Name)
	assert.NotEqual(t, uuid.Nil, client.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_Create_DuplicateName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewClientRepository(db, getTestLogger())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM clients").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), models.CreateClientRequest{Name: "Acme"})
	assertBadRequest(t, err)
	assert.Contains(t, err.Error(), "client name already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_Delete_Cascades(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewClientRepository(db, getTestLogger())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM payments").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM applications").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM vacancies").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM clients").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_Delete_Unknown(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewClientRepository(db, getTestLogger())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM payments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM applications").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM vacancies").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM clients").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), uuid.New())
	assertNotFound(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_GetByID_Unknown(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewClientRepository(db, getTestLogger())

	mock.ExpectQuery("SELECT .+ FROM clients").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assertNotFound(t, err)
}
