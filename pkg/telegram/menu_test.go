package telegram

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmkteam/embedlog"

	"arenda/pkg/rentobj"
)

type fakeBackend struct {
	calls []string

	objects []rentobj.RentObject
	object  *rentobj.RentObject
	info    *rentobj.RentObjectInfo
	err     error

	addedObjects   []rentobj.RentObject
	deletedObjects []string
	updatedNames   []string
	objectUpdates  []rentobj.UpdateRentObjectInput
	addedRecords   []rentobj.Record
	deletedRecords []int
	recordUpdates  []rentobj.UpdateRecordInput
	updatedIndexes []int
}

func (f *fakeBackend) AddObject(_ context.Context, _ int64, obj rentobj.RentObject) error {
	f.calls = append(f.calls, "AddObject")
	f.addedObjects = append(f.addedObjects, obj)
	return f.err
}

func (f *fakeBackend) DeleteObject(_ context.Context, _ int64, objectName string) error {
	f.calls = append(f.calls, "DeleteObject")
	f.deletedObjects = append(f.deletedObjects, objectName)
	return f.err
}

func (f *fakeBackend) UpdateObject(_ context.Context, _ int64, objectName string, update rentobj.UpdateRentObjectInput) error {
	f.calls = append(f.calls, "UpdateObject")
	f.updatedNames = append(f.updatedNames, objectName)
	f.objectUpdates = append(f.objectUpdates, update)
	return f.err
}

func (f *fakeBackend) ObjectByName(_ context.Context, _ int64, _ string) (*rentobj.RentObject, error) {
	f.calls = append(f.calls, "ObjectByName")
	return f.object, f.err
}

func (f *fakeBackend) AllObjects(_ context.Context, _ int64) ([]rentobj.RentObject, error) {
	f.calls = append(f.calls, "AllObjects")
	return f.objects, f.err
}

func (f *fakeBackend) AddRecord(_ context.Context, _ int64, _ string, record rentobj.Record) error {
	f.calls = append(f.calls, "AddRecord")
	f.addedRecords = append(f.addedRecords, record)
	return f.err
}

func (f *fakeBackend) DeleteRecord(_ context.Context, _ int64, _ string, recordIndex int) error {
	f.calls = append(f.calls, "DeleteRecord")
	f.deletedRecords = append(f.deletedRecords, recordIndex)
	return f.err
}

func (f *fakeBackend) UpdateRecord(_ context.Context, _ int64, _ string, recordIndex int, update rentobj.UpdateRecordInput) error {
	f.calls = append(f.calls, "UpdateRecord")
	f.updatedIndexes = append(f.updatedIndexes, recordIndex)
	f.recordUpdates = append(f.recordUpdates, update)
	return f.err
}

func (f *fakeBackend) ObjectInfo(_ context.Context, _ int64, _ string) (*rentobj.RentObjectInfo, error) {
	f.calls = append(f.calls, "ObjectInfo")
	return f.info, f.err
}

func (f *fakeBackend) countCalls(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

type fakeReports struct {
	created int
	path    string
	err     error
}

func (f *fakeReports) Create(_ *rentobj.RentObjectInfo) (string, error) {
	f.created++
	return f.path, f.err
}

func newTestMenu(backend *fakeBackend) (*Menu, *MemoryStore, *fakeReports) {
	store := NewMemoryStore()
	reports := &fakeReports{path: "/tmp/report.xlsx"}
	m := NewMenu(backend, store, reports, embedlog.NewLogger(false, false))
	return m, store, reports
}

func session(t *testing.T, store *MemoryStore, chatID int64) *Session {
	t.Helper()
	sess, err := store.Load(context.Background(), chatID)
	require.NoError(t, err)
	return sess
}

const chatID = int64(42)

func TestMenuStartListsObjects(t *testing.T) {
	backend := &fakeBackend{objects: []rentobj.RentObject{{Name: "Офис"}}}
	m, store, _ := newTestMenu(backend)

	scr := m.HandleStart(context.Background(), chatID)
	assert.Equal(t, "Меню", scr.Text)
	assert.Equal(t, []string{"AllObjects"}, backend.calls)
	assert.Equal(t, StateObjectList, session(t, store, chatID).State)
}

func TestMenuCreateObjectSingleAdd(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:create")
	assert.Equal(t, StateObjectMenu, session(t, store, chatID).State)

	m.HandleAction(ctx, chatID, "objmenu:name")
	m.HandleText(ctx, chatID, "Офис")
	m.HandleAction(ctx, chatID, "objmenu:area")
	m.HandleText(ctx, chatID, "55.5")

	// a buffered object produces no writes until confirmation
	assert.Zero(t, backend.countCalls("AddObject"))
	assert.Zero(t, backend.countCalls("UpdateObject"))

	m.HandleAction(ctx, chatID, "objmenu:enter")
	require.Len(t, backend.addedObjects, 1)
	assert.Equal(t, "Офис", backend.addedObjects[0].Name)
	assert.Equal(t, 55.5, backend.addedObjects[0].Area)
	assert.Equal(t, StateObjectList, session(t, store, chatID).State)
}

func TestMenuEmptyNameRejectedOnEnter(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:create")
	scr := m.HandleAction(ctx, chatID, "objmenu:enter")

	assert.Equal(t, "Имя объекта не может быть пустым", scr.Text)
	assert.Zero(t, backend.countCalls("AddObject"))
	assert.Equal(t, StateObjectMenu, session(t, store, chatID).State)
}

func TestMenuNameValidation(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:create")
	m.HandleAction(ctx, chatID, "objmenu:name")

	scr := m.HandleText(ctx, chatID, "")
	assert.Equal(t, "Имя объекта не может быть пустым", scr.Text)
	assert.Equal(t, StateChangeName, session(t, store, chatID).State)

	long := make([]rune, rentobj.MaxObjectNameLen+1)
	for i := range long {
		long[i] = 'ы'
	}
	scr = m.HandleText(ctx, chatID, string(long))
	assert.Equal(t, "Имя объекта слишком длинное", scr.Text)
	assert.Equal(t, StateChangeName, session(t, store, chatID).State)

	m.HandleText(ctx, chatID, "Офис")
	assert.Equal(t, StateObjectMenu, session(t, store, chatID).State)
}

func TestMenuExistingObjectWritesThrough(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		objects: []rentobj.RentObject{{Name: "Офис"}},
		object:  &rentobj.RentObject{Name: "Офис", Area: 10},
	}
	m, _, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:open:Офис")
	assert.Equal(t, 1, backend.countCalls("ObjectByName"))

	m.HandleAction(ctx, chatID, "objmenu:description")
	m.HandleText(ctx, chatID, "в центре")

	// each committed field goes to the backend on its own
	require.Len(t, backend.objectUpdates, 1)
	update := backend.objectUpdates[0]
	require.NotNil(t, update.Description)
	assert.Equal(t, "в центре", *update.Description)
	assert.Nil(t, update.Name)
	assert.Nil(t, update.Area)

	m.HandleAction(ctx, chatID, "objmenu:area")
	m.HandleText(ctx, chatID, "120")
	require.Len(t, backend.objectUpdates, 2)
	require.NotNil(t, backend.objectUpdates[1].Area)
	assert.Equal(t, 120.0, *backend.objectUpdates[1].Area)

	// confirming an already persisted object adds nothing
	m.HandleAction(ctx, chatID, "objmenu:enter")
	assert.Zero(t, backend.countCalls("AddObject"))
}

func TestMenuRenameExistingKeyedOnOldName(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		objects: []rentobj.RentObject{{Name: "Офис"}},
		object:  &rentobj.RentObject{Name: "Офис", Area: 10},
	}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:open:Офис")
	m.HandleAction(ctx, chatID, "objmenu:name")
	m.HandleText(ctx, chatID, "Склад")

	// the update addresses the object by the name it had before the edit
	require.Len(t, backend.objectUpdates, 1)
	assert.Equal(t, []string{"Офис"}, backend.updatedNames)
	update := backend.objectUpdates[0]
	require.NotNil(t, update.Name)
	assert.Equal(t, "Склад", *update.Name)
	assert.Nil(t, update.Description)
	assert.Nil(t, update.Area)

	assert.Equal(t, "Склад", session(t, store, chatID).Object.Name)
}

func TestMenuAreaValidation(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:create")
	m.HandleAction(ctx, chatID, "objmenu:area")

	scr := m.HandleText(ctx, chatID, "пятьдесят")
	assert.Equal(t, "Введите число!", scr.Text)
	assert.Equal(t, StateChangeArea, session(t, store, chatID).State)
}

func TestMenuNewObjectRecordsStayLocal(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:create")
	m.HandleAction(ctx, chatID, "objmenu:name")
	m.HandleText(ctx, chatID, "Офис")

	m.HandleAction(ctx, chatID, "objmenu:add_record")
	m.HandleAction(ctx, chatID, "recmenu:date")
	m.HandleText(ctx, chatID, "03.2024")
	m.HandleAction(ctx, chatID, "recmenu:rent")
	m.HandleText(ctx, chatID, "1500")
	m.HandleAction(ctx, chatID, "recmenu:enter")

	// record confirmation of an unsent object touches nothing remote
	assert.Zero(t, backend.countCalls("AddRecord"))
	assert.Zero(t, backend.countCalls("UpdateRecord"))

	m.HandleAction(ctx, chatID, "objmenu:enter")
	require.Len(t, backend.addedObjects, 1)
	require.Len(t, backend.addedObjects[0].Records, 1)
	rec := backend.addedObjects[0].Records[0]
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, 1500.0, rec.Rent)
	assert.Equal(t, StateObjectList, session(t, store, chatID).State)
}

func TestMenuExistingObjectRecordAddOnEnter(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		objects: []rentobj.RentObject{{Name: "Офис"}},
		object:  &rentobj.RentObject{Name: "Офис"},
	}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:open:Офис")
	m.HandleAction(ctx, chatID, "objmenu:add_record")
	m.HandleAction(ctx, chatID, "recmenu:rent")
	m.HandleText(ctx, chatID, "2000")

	assert.Zero(t, backend.countCalls("AddRecord"))

	m.HandleAction(ctx, chatID, "recmenu:enter")
	require.Len(t, backend.addedRecords, 1)
	assert.Equal(t, 2000.0, backend.addedRecords[0].Rent)
	assert.Equal(t, StateObjectMenu, session(t, store, chatID).State)
}

func TestMenuExistingRecordUpdateFlushesFullSet(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		objects: []rentobj.RentObject{{Name: "Офис"}},
		object: &rentobj.RentObject{Name: "Офис", Records: []rentobj.Record{
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Rent: 100, Heat: 50},
			{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Rent: 200},
		}},
	}
	m, _, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:open:Офис")
	m.HandleAction(ctx, chatID, "objmenu:records")
	m.HandleAction(ctx, chatID, "reclist:open:0")
	m.HandleAction(ctx, chatID, "recmenu:rent")
	m.HandleText(ctx, chatID, "150")

	assert.Zero(t, backend.countCalls("UpdateRecord"))

	m.HandleAction(ctx, chatID, "recmenu:enter")
	require.Len(t, backend.recordUpdates, 1)
	assert.Equal(t, []int{0}, backend.updatedIndexes)

	// the whole field set is flushed, untouched values included
	update := backend.recordUpdates[0]
	require.NotNil(t, update.Rent)
	assert.Equal(t, 150.0, *update.Rent)
	require.NotNil(t, update.Heat)
	assert.Equal(t, 50.0, *update.Heat)
	require.NotNil(t, update.Date)
	require.NotNil(t, update.Security)
}

func TestMenuCancelledRecordEditSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		objects: []rentobj.RentObject{{Name: "Офис"}},
		object: &rentobj.RentObject{Name: "Офис", Records: []rentobj.Record{
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Rent: 100},
		}},
	}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:open:Офис")
	m.HandleAction(ctx, chatID, "objmenu:records")
	m.HandleAction(ctx, chatID, "reclist:open:0")
	m.HandleAction(ctx, chatID, "recmenu:rent")
	m.HandleText(ctx, chatID, "700")
	m.HandleAction(ctx, chatID, "recmenu:cancel")

	// the edit stays in the buffer and reopening reads it back from there
	// without another round trip to the backend
	m.HandleAction(ctx, chatID, "objmenu:records")
	m.HandleAction(ctx, chatID, "reclist:open:0")
	sess := session(t, store, chatID)
	require.NotNil(t, sess.Record())
	assert.Equal(t, 700.0, sess.Record().Rent)
	assert.Equal(t, []string{"AllObjects", "ObjectByName"}, backend.calls)

	m.HandleAction(ctx, chatID, "recmenu:enter")
	require.Len(t, backend.recordUpdates, 1)
	require.NotNil(t, backend.recordUpdates[0].Rent)
	assert.Equal(t, 700.0, *backend.recordUpdates[0].Rent)
}

func TestMenuRecordDeleteExisting(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		objects: []rentobj.RentObject{{Name: "Офис"}},
		object: &rentobj.RentObject{Name: "Офис", Records: []rentobj.Record{
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		}},
	}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:open:Офис")
	m.HandleAction(ctx, chatID, "objmenu:records")
	m.HandleAction(ctx, chatID, "reclist:open:1")
	m.HandleAction(ctx, chatID, "recmenu:delete")
	assert.Equal(t, StateRecordDeleteConfirm, session(t, store, chatID).State)

	m.HandleAction(ctx, chatID, "confirm:yes")
	assert.Equal(t, []int{1}, backend.deletedRecords)
	assert.Equal(t, StateObjectMenu, session(t, store, chatID).State)
}

func TestMenuRecordDeleteNewObjectStaysLocal(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:create")
	m.HandleAction(ctx, chatID, "objmenu:add_record")
	m.HandleAction(ctx, chatID, "recmenu:enter")

	m.HandleAction(ctx, chatID, "objmenu:records")
	m.HandleAction(ctx, chatID, "reclist:open:0")
	m.HandleAction(ctx, chatID, "recmenu:delete")
	m.HandleAction(ctx, chatID, "confirm:yes")

	assert.Zero(t, backend.countCalls("DeleteRecord"))
	assert.Empty(t, session(t, store, chatID).Object.Records)
}

func TestMenuRecordCancelDiscardsOnlyNew(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:create")

	// a brand-new record is rolled back
	m.HandleAction(ctx, chatID, "objmenu:add_record")
	m.HandleAction(ctx, chatID, "recmenu:cancel")
	assert.Empty(t, session(t, store, chatID).Object.Records)

	// edits to a confirmed record survive cancellation
	m.HandleAction(ctx, chatID, "objmenu:add_record")
	m.HandleAction(ctx, chatID, "recmenu:enter")
	m.HandleAction(ctx, chatID, "objmenu:records")
	m.HandleAction(ctx, chatID, "reclist:open:0")
	m.HandleAction(ctx, chatID, "recmenu:rent")
	m.HandleText(ctx, chatID, "700")
	m.HandleAction(ctx, chatID, "recmenu:cancel")

	sess := session(t, store, chatID)
	require.Len(t, sess.Object.Records, 1)
	assert.Equal(t, 700.0, sess.Object.Records[0].Rent)
}

func TestMenuObjectDeleteConfirm(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		objects: []rentobj.RentObject{{Name: "Офис"}},
		object:  &rentobj.RentObject{Name: "Офис"},
	}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:open:Офис")
	m.HandleAction(ctx, chatID, "objmenu:delete")

	scr := m.HandleAction(ctx, chatID, "confirm:no")
	assert.Contains(t, scr.Text, "Объект")
	assert.Zero(t, backend.countCalls("DeleteObject"))
	assert.Equal(t, StateObjectMenu, session(t, store, chatID).State)

	m.HandleAction(ctx, chatID, "objmenu:delete")
	m.HandleAction(ctx, chatID, "confirm:yes")
	assert.Equal(t, []string{"Офис"}, backend.deletedObjects)
	assert.Equal(t, StateObjectList, session(t, store, chatID).State)
}

func TestMenuObjectDeleteIgnoresNovelty(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, store, _ := newTestMenu(backend)

	// a buffered-only object that somehow reached the confirm screen is
	// still deleted by name on the backend
	sess := NewSession()
	sess.CreateObject()
	sess.Object.Name = "Черновик"
	sess.State = StateObjectDeleteConfirm
	require.NoError(t, store.Save(ctx, chatID, sess))

	m.HandleAction(ctx, chatID, "confirm:yes")
	assert.Equal(t, []string{"Черновик"}, backend.deletedObjects)
}

func TestMenuDateInput(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:create")
	m.HandleAction(ctx, chatID, "objmenu:add_record")
	m.HandleAction(ctx, chatID, "recmenu:date")

	scr := m.HandleText(ctx, chatID, "весна")
	assert.Equal(t, "Неверный формат!", scr.Text)
	assert.Equal(t, StateChangeDate, session(t, store, chatID).State)

	m.HandleText(ctx, chatID, "04.24")
	sess := session(t, store, chatID)
	assert.Equal(t, StateRecordMenu, sess.State)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), sess.Record().Date)
}

func TestMenuRecordsResortedByDate(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:create")

	for _, month := range []string{"03.2024", "01.2024", "02.2024"} {
		m.HandleAction(ctx, chatID, "objmenu:add_record")
		m.HandleAction(ctx, chatID, "recmenu:date")
		m.HandleText(ctx, chatID, month)
		m.HandleAction(ctx, chatID, "recmenu:enter")
	}

	sess := session(t, store, chatID)
	require.Len(t, sess.Object.Records, 3)
	assert.Equal(t, time.January, sess.Object.Records[0].Date.Month())
	assert.Equal(t, time.February, sess.Object.Records[1].Date.Month())
	assert.Equal(t, time.March, sess.Object.Records[2].Date.Month())
}

func TestMenuDocumentFlow(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		objects: []rentobj.RentObject{{Name: "Офис"}},
		object:  &rentobj.RentObject{Name: "Офис"},
		info:    &rentobj.RentObjectInfo{Name: "Офис"},
	}
	m, store, reports := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:open:Офис")
	scr := m.HandleAction(ctx, chatID, "objmenu:document")

	assert.Equal(t, 1, backend.countCalls("ObjectInfo"))
	assert.Equal(t, 1, reports.created)
	assert.Equal(t, "/tmp/report.xlsx", scr.Document)
	assert.Equal(t, StateObjectList, session(t, store, chatID).State)
}

func TestMenuPaginationActions(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		objects: []rentobj.RentObject{{Name: "Офис"}},
		object:  &rentobj.RentObject{Name: "Офис", Records: makeRecords(20)},
	}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:open:Офис")
	m.HandleAction(ctx, chatID, "objmenu:records")
	assert.Equal(t, 0, session(t, store, chatID).Page)

	m.HandleAction(ctx, chatID, "reclist:next")
	assert.Equal(t, 1, session(t, store, chatID).Page)

	m.HandleAction(ctx, chatID, "reclist:prev")
	assert.Equal(t, 0, session(t, store, chatID).Page)

	// leaving the list resets paging on next entry
	m.HandleAction(ctx, chatID, "reclist:next")
	m.HandleAction(ctx, chatID, "reclist:back")
	m.HandleAction(ctx, chatID, "objmenu:records")
	assert.Equal(t, 0, session(t, store, chatID).Page)
}

func TestMenuIllegalActionIsRejected(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:create")

	// a stale object-list button tapped from inside the object menu
	scr := m.HandleAction(ctx, chatID, "objlist:create")
	assert.Equal(t, "Действие недоступно", scr.Notice)
	assert.Empty(t, scr.Text)
	assert.Equal(t, StateObjectMenu, session(t, store, chatID).State)

	// same for a record-menu button tapped outside the record menu
	scr = m.HandleAction(ctx, chatID, "recmenu:date")
	assert.Equal(t, "Действие недоступно", scr.Notice)
	assert.Equal(t, StateObjectMenu, session(t, store, chatID).State)
}

func TestMenuBackendErrorKeepsState(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		objects: []rentobj.RentObject{{Name: "Офис"}},
		object:  &rentobj.RentObject{Name: "Офис"},
	}
	m, store, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	m.HandleAction(ctx, chatID, "objlist:open:Офис")
	m.HandleAction(ctx, chatID, "objmenu:delete")

	backend.err = rentobj.ErrInternal
	scr := m.HandleAction(ctx, chatID, "confirm:yes")
	assert.Contains(t, scr.Text, "Ошибка")
	assert.Equal(t, StateObjectDeleteConfirm, session(t, store, chatID).State)
}

func TestMenuTextOutsideInputStateIgnored(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m, _, _ := newTestMenu(backend)

	m.HandleStart(ctx, chatID)
	scr := m.HandleText(ctx, chatID, "привет")
	assert.Nil(t, scr)
}
