package models_test

import (
	"net/http"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radimbig2/SRM/pkg/models"
)

func TestMonthWindow(t *testing.T) {
	start, end, err := models.MonthWindow(2025, 3)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", start.String())
	assert.Equal(t, "2025-04-01", end.String())
}

func TestMonthWindow_DecemberRollsYear(t *testing.T) {
	start, end, err := models.MonthWindow(2025, 12)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01", start.String())
	assert.Equal(t, "2026-01-01", end.String())
}

func TestMonthWindow_InvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		_, _, err := models.MonthWindow(2025, month)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	}
}

func TestPipelineFilter_Normalize(t *testing.T) {
	filter, err := models.PipelineFilter{Search: "  smith  "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "smith", filter.Search)
	assert.Equal(t, models.PipelineDefaultLimit, filter.Limit)
}

func TestPipelineFilter_Normalize_LimitBounds(t *testing.T) {
	_, err := models.PipelineFilter{Limit: models.PipelineMaxLimit}.Normalize()
	assert.NoError(t, err)

	_, err = models.PipelineFilter{Limit: models.PipelineMaxLimit + 1}.Normalize()
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))

	_, err = models.PipelineFilter{Limit: -5}.Normalize()
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
}

func TestPipelineFilter_Normalize_Status(t *testing.T) {
	status := models.StatusHired
	_, err := models.PipelineFilter{Status: &status}.Normalize()
	assert.NoError(t, err)

	bogus := models.ApplicationStatus("archived")
	_, err = models.PipelineFilter{Status: &bogus}.Normalize()
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
}
