package rentobj

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordDatePrecision(t *testing.T) {
	rec := NewRecord()

	assert.Equal(t, time.UTC, rec.Date.Location())
	assert.Zero(t, rec.Date.Nanosecond())
}

func TestRecordAmountAccessors(t *testing.T) {
	rec := Record{}
	for i, field := range AmountFields {
		require.NoError(t, rec.SetAmount(field, float64(i+1)))
	}

	assert.Equal(t, 1.0, rec.Rent)
	assert.Equal(t, 8.0, rec.EarthRent)
	assert.Equal(t, 10.0, rec.Security)
	for i, field := range AmountFields {
		assert.Equal(t, float64(i+1), rec.Amount(field))
	}

	assert.Error(t, rec.SetAmount("unknown", 1))
	assert.Zero(t, rec.Amount("unknown"))
}

func TestRecordWireNames(t *testing.T) {
	rec := Record{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), EarthRent: 5, Electricity: 7}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, 5.0, m["earth_rent"])
	assert.Equal(t, 7.0, m["electricity"])
	assert.Equal(t, "2024-03-01T00:00:00Z", m["date"])
}

func TestFullRecordUpdate(t *testing.T) {
	rec := Record{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Rent: 100, Security: 9}
	update := FullRecordUpdate(rec)

	data, err := json.Marshal(update)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	// confirmation flushes every field, zero values included
	assert.Len(t, m, 11)
	assert.Equal(t, 100.0, m["rent"])
	assert.Equal(t, 0.0, m["heat"])
	assert.Equal(t, 9.0, m["security"])
}

func TestRentObjectInfoAveragesEmpty(t *testing.T) {
	info := RentObjectInfo{}

	assert.Zero(t, info.AverageIncome())
	assert.Zero(t, info.AverageExpenses())
	assert.Zero(t, info.AverageProfit())
}
