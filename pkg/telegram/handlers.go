package telegram

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/looplab/fsm"

	"arenda/pkg/rentobj"
)

// advance fires a pre-checked event and syncs the session state.
func advance(ctx context.Context, f *fsm.FSM, sess *Session, event string) {
	_ = f.Event(ctx, event)
	sess.State = f.Current()
}

// HandleAction processes a parsed callback payload of the form
// "prefix:action[:arg]". The returned screen replaces the menu message
// unless it asks for a reply or carries only a notice.
func (m *Menu) HandleAction(ctx context.Context, chatID int64, data string) *Screen {
	parts := strings.SplitN(data, ":", 3)
	prefix, action, arg := parts[0], "", ""
	if len(parts) > 1 {
		action = parts[1]
	}
	if len(parts) > 2 {
		arg = parts[2]
	}

	sess, scr := m.load(ctx, chatID)
	if scr != nil {
		return scr
	}
	actionsProcessed.WithLabelValues(prefix + ":" + action).Inc()

	f := newMenuFSM(sess.State)
	scr = m.dispatchAction(ctx, chatID, sess, f, prefix, action, arg)
	m.save(ctx, chatID, sess)
	return scr
}

func (m *Menu) dispatchAction(ctx context.Context, chatID int64, sess *Session, f *fsm.FSM, prefix, action, arg string) *Screen {
	switch prefix {
	case cbObjectList:
		return m.handleObjectList(ctx, chatID, sess, f, action, arg)
	case cbObjectMenu:
		return m.handleObjectMenu(ctx, chatID, sess, f, action)
	case cbRecordList:
		return m.handleRecordList(ctx, chatID, sess, f, action, arg)
	case cbRecordMenu:
		return m.handleRecordMenu(ctx, chatID, sess, f, action)
	case cbConfirm:
		return m.handleConfirm(ctx, chatID, sess, f, action)
	}
	return &Screen{Notice: "Неизвестное действие"}
}

func (m *Menu) handleObjectList(ctx context.Context, chatID int64, sess *Session, f *fsm.FSM, action, arg string) *Screen {
	switch action {
	case "create":
		if !f.Can(EventCreateObject) {
			return &Screen{Notice: "Действие недоступно"}
		}
		sess.CreateObject()
		advance(ctx, f, sess, EventCreateObject)
		return objectMenuScreen(sess.Object)

	case "open":
		if !f.Can(EventOpenObject) {
			return &Screen{Notice: "Действие недоступно"}
		}
		obj, err := m.backend.ObjectByName(ctx, chatID, arg)
		if err != nil {
			return m.errorScreen(ctx, chatID, "open_object", err)
		}
		sess.SetObject(*obj, false)
		advance(ctx, f, sess, EventOpenObject)
		return objectMenuScreen(sess.Object)
	}
	return &Screen{Notice: "Неизвестное действие"}
}

func (m *Menu) handleObjectMenu(ctx context.Context, chatID int64, sess *Session, f *fsm.FSM, action string) *Screen {
	if sess.Object == nil {
		return expiredScreen()
	}

	switch action {
	case "name":
		if !f.Can(EventEditName) {
			return &Screen{Notice: "Действие недоступно"}
		}
		advance(ctx, f, sess, EventEditName)
		return prompt("Введите название объекта")

	case "description":
		if !f.Can(EventEditDescription) {
			return &Screen{Notice: "Действие недоступно"}
		}
		advance(ctx, f, sess, EventEditDescription)
		return prompt("Введите описание объекта")

	case "area":
		if !f.Can(EventEditArea) {
			return &Screen{Notice: "Действие недоступно"}
		}
		advance(ctx, f, sess, EventEditArea)
		return prompt("Введите площадь объекта")

	case "records":
		if !f.Can(EventOpenRecords) {
			return &Screen{Notice: "Действие недоступно"}
		}
		sess.Page = 0
		advance(ctx, f, sess, EventOpenRecords)
		return recordList(sess)

	case "add_record":
		if !f.Can(EventAddRecord) {
			return &Screen{Notice: "Действие недоступно"}
		}
		sess.CreateRecord()
		advance(ctx, f, sess, EventAddRecord)
		return recordMenuScreen(sess.Object, sess.Record())

	case "delete":
		if !f.Can(EventDeleteObject) {
			return &Screen{Notice: "Действие недоступно"}
		}
		advance(ctx, f, sess, EventDeleteObject)
		return deleteConfirmScreen("Вы точно хотите удалить объект?")

	case "document":
		if !f.Can(EventGetDocument) {
			return &Screen{Notice: "Действие недоступно"}
		}
		info, err := m.backend.ObjectInfo(ctx, chatID, sess.Object.Name)
		if err != nil {
			return m.errorScreen(ctx, chatID, "object_info", err)
		}
		path, err := m.reports.Create(info)
		if err != nil {
			return m.errorScreen(ctx, chatID, "report_create", err)
		}
		documentsCreated.Inc()
		advance(ctx, f, sess, EventGetDocument)
		scr := m.objectList(ctx, chatID, sess)
		scr.Document = path
		return scr

	case "cancel":
		if !f.Can(EventCancelObject) {
			return &Screen{Notice: "Действие недоступно"}
		}
		advance(ctx, f, sess, EventCancelObject)
		return m.objectList(ctx, chatID, sess)

	case "enter":
		if !f.Can(EventEnterObject) {
			return &Screen{Notice: "Действие недоступно"}
		}
		if sess.Object.DisplayName() == "" {
			return prompt("Имя объекта не может быть пустым")
		}
		if sess.Object.IsNew {
			if err := m.backend.AddObject(ctx, chatID, sess.Object.RentObject()); err != nil {
				return m.errorScreen(ctx, chatID, "add_object", err)
			}
			objectsCreated.Inc()
		}
		advance(ctx, f, sess, EventEnterObject)
		return m.objectList(ctx, chatID, sess)
	}
	return &Screen{Notice: "Неизвестное действие"}
}

func (m *Menu) handleRecordList(ctx context.Context, chatID int64, sess *Session, f *fsm.FSM, action, arg string) *Screen {
	if sess.Object == nil {
		return expiredScreen()
	}

	switch action {
	case "open":
		if !f.Can(EventOpenRecord) {
			return &Screen{Notice: "Действие недоступно"}
		}
		index, err := strconv.Atoi(arg)
		if err != nil {
			return &Screen{Notice: "Неизвестное действие"}
		}
		// selection points into the buffer: the backend copy was staged
		// when the object was opened and any confirmed edits live here
		if index < 0 || index >= len(sess.Object.Records) {
			return &Screen{Notice: "Запись не найдена"}
		}
		sess.SelectedRecord = index
		advance(ctx, f, sess, EventOpenRecord)
		scr := recordMenuScreen(sess.Object, sess.Record())
		scr.Reply = true
		return scr

	case "add":
		if !f.Can(EventAddRecord) {
			return &Screen{Notice: "Действие недоступно"}
		}
		sess.CreateRecord()
		advance(ctx, f, sess, EventAddRecord)
		return recordMenuScreen(sess.Object, sess.Record())

	case "prev":
		if !f.Can(EventPrevPage) {
			return &Screen{Notice: "Действие недоступно"}
		}
		sess.Page--
		advance(ctx, f, sess, EventPrevPage)
		return recordList(sess)

	case "next":
		if !f.Can(EventNextPage) {
			return &Screen{Notice: "Действие недоступно"}
		}
		sess.Page++
		advance(ctx, f, sess, EventNextPage)
		return recordList(sess)

	case "back":
		if !f.Can(EventCloseList) {
			return &Screen{Notice: "Действие недоступно"}
		}
		advance(ctx, f, sess, EventCloseList)
		return objectMenuScreen(sess.Object)
	}
	return &Screen{Notice: "Неизвестное действие"}
}

func (m *Menu) handleRecordMenu(ctx context.Context, chatID int64, sess *Session, f *fsm.FSM, action string) *Screen {
	if sess.Object == nil {
		return expiredScreen()
	}

	switch action {
	case "date":
		if !f.Can(EventEditDate) {
			return &Screen{Notice: "Действие недоступно"}
		}
		advance(ctx, f, sess, EventEditDate)
		return prompt("Введите дату в формате ММ.ГГГГ")

	case "delete":
		if !f.Can(EventDeleteRecord) {
			return &Screen{Notice: "Действие недоступно"}
		}
		advance(ctx, f, sess, EventDeleteRecord)
		return deleteConfirmScreen("Вы точно хотите удалить запись?")

	case "cancel":
		if !f.Can(EventCancelRecord) {
			return &Screen{Notice: "Действие недоступно"}
		}
		// only a record that never existed is rolled back, edits to an
		// existing one stay in the buffer
		if rec := sess.Record(); rec != nil && rec.IsNew {
			sess.DeleteRecord()
		}
		advance(ctx, f, sess, EventCancelRecord)
		return objectMenuScreen(sess.Object)

	case "enter":
		if !f.Can(EventEnterRecord) {
			return &Screen{Notice: "Действие недоступно"}
		}
		rec := sess.Record()
		if rec == nil {
			return expiredScreen()
		}
		if !sess.Object.IsNew {
			if rec.IsNew {
				if err := m.backend.AddRecord(ctx, chatID, sess.Object.Name, rec.Record); err != nil {
					return m.errorScreen(ctx, chatID, "add_record", err)
				}
				recordsCreated.Inc()
			} else {
				update := rentobj.FullRecordUpdate(rec.Record)
				if err := m.backend.UpdateRecord(ctx, chatID, sess.Object.Name, sess.SelectedRecord, update); err != nil {
					return m.errorScreen(ctx, chatID, "update_record", err)
				}
			}
		}
		sess.ReplaceRecord(rec.Record)
		advance(ctx, f, sess, EventEnterRecord)
		return objectMenuScreen(sess.Object)
	}

	// remaining actions address a money field by its wire name
	for _, spec := range amountFieldSpecs {
		if spec.key != action {
			continue
		}
		event := EventEditAmount(spec.key)
		if !f.Can(event) {
			return &Screen{Notice: "Действие недоступно"}
		}
		advance(ctx, f, sess, event)
		return prompt(spec.prompt)
	}
	return &Screen{Notice: "Неизвестное действие"}
}

func (m *Menu) handleConfirm(ctx context.Context, chatID int64, sess *Session, f *fsm.FSM, action string) *Screen {
	if sess.Object == nil {
		return expiredScreen()
	}

	switch sess.State {
	case StateObjectDeleteConfirm:
		if action == "no" {
			advance(ctx, f, sess, EventObjectDeleteNo)
			return objectMenuScreen(sess.Object)
		}
		// the delete is issued by name regardless of whether the object
		// ever reached the backend
		if err := m.backend.DeleteObject(ctx, chatID, sess.Object.Name); err != nil {
			return m.errorScreen(ctx, chatID, "delete_object", err)
		}
		objectsDeleted.Inc()
		advance(ctx, f, sess, EventObjectDeleteYes)
		return m.objectList(ctx, chatID, sess)

	case StateRecordDeleteConfirm:
		if action == "no" {
			rec := sess.Record()
			if rec == nil {
				return expiredScreen()
			}
			advance(ctx, f, sess, EventRecordDeleteNo)
			return recordMenuScreen(sess.Object, rec)
		}
		if sess.Object.IsNew {
			sess.DeleteRecord()
		} else {
			if err := m.backend.DeleteRecord(ctx, chatID, sess.Object.Name, sess.SelectedRecord); err != nil {
				return m.errorScreen(ctx, chatID, "delete_record", err)
			}
		}
		recordsDeleted.Inc()
		advance(ctx, f, sess, EventRecordDeleteYes)
		return objectMenuScreen(sess.Object)
	}
	return &Screen{Notice: "Неизвестное действие"}
}

// HandleText processes free-form input while the conversation awaits a
// value. Outside of an input state the text is ignored.
func (m *Menu) HandleText(ctx context.Context, chatID int64, text string) *Screen {
	sess, scr := m.load(ctx, chatID)
	if scr != nil {
		return scr
	}
	messagesProcessed.WithLabelValues(sess.State).Inc()

	f := newMenuFSM(sess.State)
	scr = m.dispatchText(ctx, chatID, sess, f, strings.TrimSpace(text))
	if scr == nil {
		return nil
	}
	m.save(ctx, chatID, sess)
	scr.Reply = true
	return scr
}

func (m *Menu) dispatchText(ctx context.Context, chatID int64, sess *Session, f *fsm.FSM, text string) *Screen {
	switch sess.State {
	case StateChangeName, StateChangeDescription, StateChangeArea:
		if sess.Object == nil {
			return expiredScreen()
		}
		return m.applyObjectInput(ctx, chatID, sess, f, text)

	case StateChangeDate:
		if sess.Object == nil || sess.Record() == nil {
			return expiredScreen()
		}
		date, err := ParseMonth(text)
		if err != nil {
			return prompt("Неверный формат!")
		}
		sess.Record().Date = date
		advance(ctx, f, sess, EventSetDate)
		return recordMenuScreen(sess.Object, sess.Record())
	}

	for _, spec := range amountFieldSpecs {
		if sess.State != StateChangeAmount(spec.key) {
			continue
		}
		if sess.Object == nil || sess.Record() == nil {
			return expiredScreen()
		}
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return prompt("Введите число!")
		}
		_ = sess.Record().SetAmount(spec.key, value)
		advance(ctx, f, sess, EventSetAmount(spec.key))
		return recordMenuScreen(sess.Object, sess.Record())
	}
	return nil
}

func (m *Menu) applyObjectInput(ctx context.Context, chatID int64, sess *Session, f *fsm.FSM, text string) *Screen {
	obj := sess.Object

	switch sess.State {
	case StateChangeName:
		if text == "" {
			return prompt("Имя объекта не может быть пустым")
		}
		if utf8.RuneCountInString(text) > rentobj.MaxObjectNameLen {
			return prompt("Имя объекта слишком длинное")
		}
		prev := obj.Name
		obj.Name = text
		if !obj.IsNew {
			update := rentobj.UpdateRentObjectInput{Name: &text}
			if err := m.backend.UpdateObject(ctx, chatID, prev, update); err != nil {
				return m.errorScreen(ctx, chatID, "update_object", err)
			}
		}
		advance(ctx, f, sess, EventSetName)

	case StateChangeDescription:
		obj.Description = text
		if !obj.IsNew {
			update := rentobj.UpdateRentObjectInput{Description: &text}
			if err := m.backend.UpdateObject(ctx, chatID, obj.Name, update); err != nil {
				return m.errorScreen(ctx, chatID, "update_object", err)
			}
		}
		advance(ctx, f, sess, EventSetDescription)

	case StateChangeArea:
		area, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return prompt("Введите число!")
		}
		obj.Area = area
		if !obj.IsNew {
			update := rentobj.UpdateRentObjectInput{Area: &area}
			if err := m.backend.UpdateObject(ctx, chatID, obj.Name, update); err != nil {
				return m.errorScreen(ctx, chatID, "update_object", err)
			}
		}
		advance(ctx, f, sess, EventSetArea)
	}

	return objectMenuScreen(obj)
}
