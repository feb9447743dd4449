package telegram

import (
	"context"
	"sort"
	"sync"

	"arenda/pkg/rentobj"
)

// RecordBuffer is the conversation-local copy of one record. IsNew marks
// a record that was never sent to the backend; IsUpdated marks one that
// was edited and confirmed since load.
type RecordBuffer struct {
	rentobj.Record
	IsNew     bool `json:"is_new,omitempty"`
	IsUpdated bool `json:"is_updated,omitempty"`
}

// ObjectBuffer is the conversation-local copy of the object being
// edited. NewName is a transient rename override consulted before the
// buffered name on confirmation and display.
type ObjectBuffer struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Area        float64        `json:"area"`
	Records     []RecordBuffer `json:"records"`
	IsNew       bool           `json:"new"`
	NewName     string         `json:"new_name,omitempty"`
}

// DisplayName returns the rename override if present, the buffered name
// otherwise.
func (o *ObjectBuffer) DisplayName() string {
	if o.NewName != "" {
		return o.NewName
	}
	return o.Name
}

// RentObject converts the buffer back to its domain form.
func (o *ObjectBuffer) RentObject() rentobj.RentObject {
	records := make([]rentobj.Record, len(o.Records))
	for i, r := range o.Records {
		records[i] = r.Record
	}
	return rentobj.RentObject{
		Name:        o.DisplayName(),
		Description: o.Description,
		Area:        o.Area,
		Records:     records,
	}
}

// Session is the per-conversation snapshot: the object edit buffer, the
// selected record and the record-list page, plus the current menu state.
// At most one object and one selected record are active per conversation.
// The delivery mechanism serializes handlers per chat, so a Session is
// never mutated concurrently.
type Session struct {
	State          string        `json:"state"`
	Object         *ObjectBuffer `json:"object,omitempty"`
	SelectedRecord int           `json:"selected_record_index"`
	Page           int           `json:"current_page"`
}

// NewSession returns a clean session at the object list.
func NewSession() *Session {
	return &Session{State: StateObjectList}
}

// SetObject replaces the edit buffer with a persisted object's data.
func (s *Session) SetObject(obj rentobj.RentObject, isNew bool) {
	records := make([]RecordBuffer, len(obj.Records))
	for i, r := range obj.Records {
		records[i] = RecordBuffer{Record: r}
	}
	s.Object = &ObjectBuffer{
		Name:        obj.Name,
		Description: obj.Description,
		Area:        obj.Area,
		Records:     records,
		IsNew:       isNew,
	}
}

// CreateObject initializes a fresh zero-valued edit buffer.
func (s *Session) CreateObject() {
	s.SetObject(rentobj.RentObject{}, true)
}

// AddRecord appends a record to the buffer and returns its index.
func (s *Session) AddRecord(rec rentobj.Record, isNew bool) int {
	s.Object.Records = append(s.Object.Records, RecordBuffer{Record: rec, IsNew: isNew})
	return len(s.Object.Records) - 1
}

// CreateRecord appends a new blank record, selects it and returns its
// index.
func (s *Session) CreateRecord() int {
	idx := s.AddRecord(rentobj.NewRecord(), true)
	s.SelectedRecord = idx
	return idx
}

// Record returns the currently selected record buffer, nil when the
// selection does not point at one.
func (s *Session) Record() *RecordBuffer {
	if s.Object == nil || s.SelectedRecord < 0 || s.SelectedRecord >= len(s.Object.Records) {
		return nil
	}
	return &s.Object.Records[s.SelectedRecord]
}

// DeleteRecord removes the currently selected record from the buffer.
func (s *Session) DeleteRecord() {
	if s.Record() == nil {
		return
	}
	i := s.SelectedRecord
	s.Object.Records = append(s.Object.Records[:i], s.Object.Records[i+1:]...)
}

// ReplaceRecord replaces the selected record wholesale, marks it updated
// and re-sorts the buffer by date ascending. The novelty flag is dropped:
// a confirmed record is no longer treated as new.
func (s *Session) ReplaceRecord(rec rentobj.Record) {
	s.Object.Records[s.SelectedRecord] = RecordBuffer{Record: rec, IsUpdated: true}
	sort.SliceStable(s.Object.Records, func(i, j int) bool {
		return s.Object.Records[i].Date.Before(s.Object.Records[j].Date)
	})
}

// SessionStore persists conversation snapshots keyed by chat ID.
type SessionStore interface {
	// Load returns the snapshot for the chat, or a clean one if none
	// exists.
	Load(ctx context.Context, chatID int64) (*Session, error)
	Save(ctx context.Context, chatID int64, s *Session) error
	Delete(ctx context.Context, chatID int64) error
}

// MemoryStore keeps sessions in process memory. The bot library runs
// handlers on its own goroutines, so the map is still guarded.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (m *MemoryStore) Load(_ context.Context, chatID int64) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[chatID]; ok {
		return s, nil
	}
	return NewSession(), nil
}

func (m *MemoryStore) Save(_ context.Context, chatID int64, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[chatID] = s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, chatID)
	return nil
}
