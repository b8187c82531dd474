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

func TestCandidateRepository_List_OrderedByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewCandidateRepository(db, getTestLogger())

	mock.ExpectQuery(`SELECT .+ FROM candidates ORDER BY full_name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "phone", "email", "notes", "created_at"}).
			AddRow(uuid.NewString(), "Anna Berg", nil, nil, nil, time.Now()).
			AddRow(uuid.NewString(), "Zoe Yates", nil, nil, nil, time.Now()))

	candidates, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Anna Berg", candidates[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCandidateRepository_List_SearchMatchesNamePhoneEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewCandidateRepository(db, getTestLogger())

	mock.ExpectQuery(`SELECT .+ FROM candidates WHERE .+ILIKE.+ORDER BY full_name`).
		WithArgs("%berg%", "%berg%", "%berg%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "phone", "email", "notes", "created_at"}).
			AddRow(uuid.NewString(), "Anna Berg", nil, nil, nil, time.Now()))

	candidates, err := repo.List(context.Background(), "  berg  ")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
