package telegram

import (
	"github.com/looplab/fsm"

	"arenda/pkg/rentobj"
)

// Menu navigation states. A conversation is always in exactly one of
// them; the record editing states are reachable only through the object
// menu.
const (
	StateObjectList          = "object_list"
	StateObjectMenu          = "object_menu"
	StateChangeName          = "change_name"
	StateChangeDescription   = "change_description"
	StateChangeArea          = "change_area"
	StateObjectDeleteConfirm = "object_delete_confirm"

	StateRecordList          = "record_list"
	StateRecordMenu          = "record_menu"
	StateChangeDate          = "change_date"
	StateRecordDeleteConfirm = "record_delete_confirm"
)

// StateChangeAmount returns the editing state for a numeric record
// field, e.g. "change_rent".
func StateChangeAmount(field string) string {
	return "change_" + field
}

// Menu events. Each user action maps to one event; the transition table
// below is the single source of truth for which actions are legal in
// which state.
const (
	EventCreateObject = "create_object"
	EventOpenObject   = "open_object"

	EventEditName        = "edit_name"
	EventEditDescription = "edit_description"
	EventEditArea        = "edit_area"
	EventSetName         = "set_name"
	EventSetDescription  = "set_description"
	EventSetArea         = "set_area"

	EventOpenRecords = "open_records"
	EventAddRecord   = "add_record"
	EventOpenRecord  = "open_record"
	EventPrevPage    = "prev_page"
	EventNextPage    = "next_page"
	EventCloseList   = "close_list"

	EventDeleteObject    = "delete_object"
	EventObjectDeleteNo  = "object_delete_no"
	EventObjectDeleteYes = "object_delete_yes"
	EventGetDocument     = "get_document"
	EventCancelObject    = "cancel_object"
	EventEnterObject     = "enter_object"

	EventEditDate = "edit_date"
	EventSetDate  = "set_date"

	EventDeleteRecord    = "delete_record"
	EventRecordDeleteNo  = "record_delete_no"
	EventRecordDeleteYes = "record_delete_yes"
	EventCancelRecord    = "cancel_record"
	EventEnterRecord     = "enter_record"
)

// EventEditAmount returns the event opening the editor for a numeric
// record field, e.g. "edit_rent".
func EventEditAmount(field string) string {
	return "edit_" + field
}

// EventSetAmount returns the event committing a numeric record field,
// e.g. "set_rent".
func EventSetAmount(field string) string {
	return "set_" + field
}

// menuEvents is the full (state × action) transition table.
var menuEvents = buildMenuEvents()

func buildMenuEvents() fsm.Events {
	events := fsm.Events{
		{Name: EventCreateObject, Src: []string{StateObjectList}, Dst: StateObjectMenu},
		{Name: EventOpenObject, Src: []string{StateObjectList}, Dst: StateObjectMenu},

		{Name: EventEditName, Src: []string{StateObjectMenu}, Dst: StateChangeName},
		{Name: EventEditDescription, Src: []string{StateObjectMenu}, Dst: StateChangeDescription},
		{Name: EventEditArea, Src: []string{StateObjectMenu}, Dst: StateChangeArea},
		{Name: EventSetName, Src: []string{StateChangeName}, Dst: StateObjectMenu},
		{Name: EventSetDescription, Src: []string{StateChangeDescription}, Dst: StateObjectMenu},
		{Name: EventSetArea, Src: []string{StateChangeArea}, Dst: StateObjectMenu},

		{Name: EventOpenRecords, Src: []string{StateObjectMenu}, Dst: StateRecordList},
		{Name: EventAddRecord, Src: []string{StateObjectMenu, StateRecordList}, Dst: StateRecordMenu},
		{Name: EventOpenRecord, Src: []string{StateRecordList}, Dst: StateRecordMenu},
		{Name: EventPrevPage, Src: []string{StateRecordList}, Dst: StateRecordList},
		{Name: EventNextPage, Src: []string{StateRecordList}, Dst: StateRecordList},
		{Name: EventCloseList, Src: []string{StateRecordList}, Dst: StateObjectMenu},

		{Name: EventDeleteObject, Src: []string{StateObjectMenu}, Dst: StateObjectDeleteConfirm},
		{Name: EventObjectDeleteNo, Src: []string{StateObjectDeleteConfirm}, Dst: StateObjectMenu},
		{Name: EventObjectDeleteYes, Src: []string{StateObjectDeleteConfirm}, Dst: StateObjectList},
		{Name: EventGetDocument, Src: []string{StateObjectMenu}, Dst: StateObjectList},
		{Name: EventCancelObject, Src: []string{StateObjectMenu}, Dst: StateObjectList},
		{Name: EventEnterObject, Src: []string{StateObjectMenu}, Dst: StateObjectList},

		{Name: EventEditDate, Src: []string{StateRecordMenu}, Dst: StateChangeDate},
		{Name: EventSetDate, Src: []string{StateChangeDate}, Dst: StateRecordMenu},

		{Name: EventDeleteRecord, Src: []string{StateRecordMenu}, Dst: StateRecordDeleteConfirm},
		{Name: EventRecordDeleteNo, Src: []string{StateRecordDeleteConfirm}, Dst: StateRecordMenu},
		{Name: EventRecordDeleteYes, Src: []string{StateRecordDeleteConfirm}, Dst: StateObjectMenu},
		{Name: EventCancelRecord, Src: []string{StateRecordMenu}, Dst: StateObjectMenu},
		{Name: EventEnterRecord, Src: []string{StateRecordMenu}, Dst: StateObjectMenu},
	}

	for _, field := range rentobj.AmountFields {
		events = append(events,
			fsm.EventDesc{Name: EventEditAmount(field), Src: []string{StateRecordMenu}, Dst: StateChangeAmount(field)},
			fsm.EventDesc{Name: EventSetAmount(field), Src: []string{StateChangeAmount(field)}, Dst: StateRecordMenu},
		)
	}

	return events
}

// newMenuFSM builds the navigation machine positioned at the given
// state. Sessions store only the state name, so the machine is rebuilt
// per update.
func newMenuFSM(current string) *fsm.FSM {
	if current == "" {
		current = StateObjectList
	}
	return fsm.NewFSM(current, menuEvents, fsm.Callbacks{})
}
