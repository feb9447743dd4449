package telegram

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenda/pkg/rentobj"
)

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func TestSessionCreateObject(t *testing.T) {
	sess := NewSession()
	sess.CreateObject()

	require.NotNil(t, sess.Object)
	assert.True(t, sess.Object.IsNew)
	assert.Empty(t, sess.Object.Name)
	assert.Empty(t, sess.Object.Records)
}

func TestSessionSetObjectKeepsRecordOrder(t *testing.T) {
	sess := NewSession()
	sess.SetObject(rentobj.RentObject{
		Name:    "Офис",
		Records: []rentobj.Record{{Date: date(2024, 1)}, {Date: date(2024, 2)}},
	}, false)

	require.Len(t, sess.Object.Records, 2)
	assert.False(t, sess.Object.IsNew)
	assert.False(t, sess.Object.Records[0].IsNew)
	assert.Equal(t, date(2024, 1), sess.Object.Records[0].Date)
}

func TestSessionCreateRecordSelects(t *testing.T) {
	sess := NewSession()
	sess.CreateObject()

	idx := sess.CreateRecord()
	assert.Equal(t, 0, idx)
	assert.Equal(t, idx, sess.SelectedRecord)
	require.NotNil(t, sess.Record())
	assert.True(t, sess.Record().IsNew)
}

func TestSessionDeleteRecord(t *testing.T) {
	sess := NewSession()
	sess.CreateObject()
	sess.AddRecord(rentobj.Record{Date: date(2024, 1)}, false)
	sess.AddRecord(rentobj.Record{Date: date(2024, 2)}, true)
	sess.SelectedRecord = 1

	sess.DeleteRecord()
	require.Len(t, sess.Object.Records, 1)
	assert.Equal(t, date(2024, 1), sess.Object.Records[0].Date)
}

func TestSessionReplaceRecordResorts(t *testing.T) {
	sess := NewSession()
	sess.CreateObject()
	sess.AddRecord(rentobj.Record{Date: date(2024, 1)}, false)
	sess.AddRecord(rentobj.Record{Date: date(2024, 3)}, false)
	sess.SelectedRecord = sess.AddRecord(rentobj.Record{Date: date(2024, 6)}, true)

	// confirming with an earlier date moves the record into place and
	// drops its novelty
	sess.ReplaceRecord(rentobj.Record{Date: date(2024, 2), Rent: 500})

	require.Len(t, sess.Object.Records, 3)
	assert.Equal(t, date(2024, 2), sess.Object.Records[1].Date)
	assert.Equal(t, 500.0, sess.Object.Records[1].Rent)
	assert.False(t, sess.Object.Records[1].IsNew)
	assert.True(t, sess.Object.Records[1].IsUpdated)
}

func TestObjectBufferDisplayName(t *testing.T) {
	buf := &ObjectBuffer{Name: "Офис"}
	assert.Equal(t, "Офис", buf.DisplayName())

	buf.NewName = "Склад"
	assert.Equal(t, "Склад", buf.DisplayName())
}

func TestSessionJSONRoundTrip(t *testing.T) {
	sess := NewSession()
	sess.SetObject(rentobj.RentObject{Name: "Офис", Area: 55.5}, false)
	sess.CreateRecord()
	sess.State = StateRecordMenu
	sess.Page = 2

	data, err := json.Marshal(sess)
	require.NoError(t, err)

	loaded := &Session{}
	require.NoError(t, json.Unmarshal(data, loaded))
	assert.Equal(t, sess.State, loaded.State)
	assert.Equal(t, sess.Page, loaded.Page)
	assert.Equal(t, sess.SelectedRecord, loaded.SelectedRecord)
	require.NotNil(t, loaded.Object)
	assert.Equal(t, "Офис", loaded.Object.Name)
	require.Len(t, loaded.Object.Records, 1)
	assert.True(t, loaded.Object.Records[0].IsNew)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// unknown chat gets a clean session
	sess, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StateObjectList, sess.State)

	sess.State = StateObjectMenu
	require.NoError(t, store.Save(ctx, 1, sess))

	loaded, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StateObjectMenu, loaded.State)

	require.NoError(t, store.Delete(ctx, 1))
	fresh, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StateObjectList, fresh.State)
}
