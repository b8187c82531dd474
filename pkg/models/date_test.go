package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radimbig2/SRM/pkg/models"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := models.NewDate(2025, time.July, 4)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-07-04"`, string(data))

	var parsed models.Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d, parsed)
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d models.Date
	err := json.Unmarshal([]byte(`"04/07/2025"`), &d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestDate_ScanTime(t *testing.T) {
	var d models.Date
	require.NoError(t, d.Scan(time.Date(2025, time.July, 4, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2025-07-04", d.String())
}

func TestDate_ScanNil(t *testing.T) {
	var d models.Date
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

func TestDate_ValueZeroIsNull(t *testing.T) {
	var d models.Date
	v, err := d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestParseDate(t *testing.T) {
	d, err := models.ParseDate("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.December, d.Month())

	_, err = models.ParseDate("not-a-date")
	assert.Error(t, err)
}
