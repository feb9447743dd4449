package telegram

import (
	"context"
	"errors"

	"github.com/vmkteam/embedlog"

	"arenda/pkg/rentobj"
)

// Backend is the slice of the storage client the menu engine uses.
type Backend interface {
	AddObject(ctx context.Context, userID int64, obj rentobj.RentObject) error
	DeleteObject(ctx context.Context, userID int64, objectName string) error
	UpdateObject(ctx context.Context, userID int64, objectName string, update rentobj.UpdateRentObjectInput) error
	ObjectByName(ctx context.Context, userID int64, objectName string) (*rentobj.RentObject, error)
	AllObjects(ctx context.Context, userID int64) ([]rentobj.RentObject, error)
	AddRecord(ctx context.Context, userID int64, objectName string, record rentobj.Record) error
	DeleteRecord(ctx context.Context, userID int64, objectName string, recordIndex int) error
	UpdateRecord(ctx context.Context, userID int64, objectName string, recordIndex int, update rentobj.UpdateRecordInput) error
	ObjectInfo(ctx context.Context, userID int64, objectName string) (*rentobj.RentObjectInfo, error)
}

// ReportWriter produces the downloadable report artifact.
type ReportWriter interface {
	Create(info *rentobj.RentObjectInfo) (string, error)
}

// Menu is the conversational navigation engine. It owns no transport:
// inbound user actions come in as parsed callback payloads or free text,
// outbound screens go back to the delivery layer. All persistent state
// lives either in the backend or in the session store.
type Menu struct {
	backend Backend
	store   SessionStore
	reports ReportWriter
	logger  embedlog.Logger
}

// NewMenu creates the navigation engine.
func NewMenu(backend Backend, store SessionStore, reports ReportWriter, logger embedlog.Logger) *Menu {
	return &Menu{backend: backend, store: store, reports: reports, logger: logger}
}

// HandleStart resets the conversation and shows the object list.
func (m *Menu) HandleStart(ctx context.Context, chatID int64) *Screen {
	sess := NewSession()
	scr := m.objectList(ctx, chatID, sess)
	m.save(ctx, chatID, sess)
	return scr
}

// objectList resets the session to a clean slate and renders the
// backend's current object set. The edit buffer never survives a return
// to the top-level list.
func (m *Menu) objectList(ctx context.Context, chatID int64, sess *Session) *Screen {
	*sess = *NewSession()

	objects, err := m.backend.AllObjects(ctx, chatID)
	if err != nil {
		errorsTotal.WithLabelValues("list_objects").Inc()
		m.logger.Error(ctx, "failed to list objects", "chat_id", chatID, "err", err)
		return &Screen{Text: "Error: " + err.Error(), Reply: true}
	}
	return objectListScreen(objects)
}

// errorScreen logs a backend failure and renders a user-facing message;
// the state machine does not advance.
func (m *Menu) errorScreen(ctx context.Context, chatID int64, stage string, err error) *Screen {
	errorsTotal.WithLabelValues(stage).Inc()
	m.logger.Error(ctx, "backend call failed", "stage", stage, "chat_id", chatID, "err", err)
	return &Screen{Text: "Ошибка: " + userMessage(err), Reply: true}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, rentobj.ErrObjectNotFound):
		return "объект не найден"
	case errors.Is(err, rentobj.ErrRecordNotFound):
		return "запись не найдена"
	case errors.Is(err, rentobj.ErrObjectExists):
		return "объект с таким именем уже существует"
	case errors.Is(err, rentobj.ErrUnprocessable):
		return "сервер не принял данные"
	case errors.Is(err, rentobj.ErrInternal):
		return "внутренняя ошибка сервера"
	}
	return "не удалось выполнить запрос, попробуйте позже"
}

func (m *Menu) save(ctx context.Context, chatID int64, sess *Session) {
	if err := m.store.Save(ctx, chatID, sess); err != nil {
		errorsTotal.WithLabelValues("session_save").Inc()
		m.logger.Error(ctx, "failed to save session", "chat_id", chatID, "err", err)
	}
}

// load returns the session or nil with an expiry screen when the
// conversation has no usable snapshot for a non-list state.
func (m *Menu) load(ctx context.Context, chatID int64) (*Session, *Screen) {
	sess, err := m.store.Load(ctx, chatID)
	if err != nil {
		errorsTotal.WithLabelValues("session_load").Inc()
		m.logger.Error(ctx, "failed to load session", "chat_id", chatID, "err", err)
		return nil, &Screen{Text: "Сессия недоступна. Отправьте /start", Reply: true}
	}
	return sess, nil
}

// expiredScreen is shown when a callback arrives for a conversation
// whose snapshot is gone (bot restart with the in-memory store, Redis
// TTL expiry).
func expiredScreen() *Screen {
	return &Screen{Text: "Сессия устарела. Отправьте /start", Reply: true}
}

// recordList renders the current record-list page from the edit buffer.
// The buffer is the staging area: it was filled from the backend when
// the object was opened, and it keeps unflushed confirmed edits visible.
func recordList(sess *Session) *Screen {
	records := make([]rentobj.Record, len(sess.Object.Records))
	for i, r := range sess.Object.Records {
		records[i] = r.Record
	}
	return recordListScreen(sess.Object, records, sess.Page)
}
