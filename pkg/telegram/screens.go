package telegram

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-telegram/bot/models"

	"arenda/pkg/report"
	"arenda/pkg/rentobj"
)

// recordsPerPage is the record-list page size.
const recordsPerPage = 8

// Screen is the semantic content of one bot reply: text plus the menu of
// available actions. The delivery layer decides whether to edit the
// previous message or send a new one.
type Screen struct {
	Text   string
	Markup models.ReplyMarkup
	// Reply forces a new message instead of editing the tapped one
	// (prompts and validation errors).
	Reply bool
	// Notice is shown as a callback toast instead of a message.
	Notice string
	// Document is the path of a file to upload before showing the
	// screen; the file is removed after sending.
	Document string
}

func prompt(text string) *Screen {
	return &Screen{Text: text, Reply: true}
}

// Callback data prefixes. Payloads are packed as "prefix:action[:arg]".
const (
	cbObjectList = "objlist"
	cbObjectMenu = "objmenu"
	cbRecordList = "reclist"
	cbRecordMenu = "recmenu"
	cbConfirm    = "confirm"
)

func button(text string, dataParts ...string) models.InlineKeyboardButton {
	data := dataParts[0]
	for _, p := range dataParts[1:] {
		data += ":" + p
	}
	return models.InlineKeyboardButton{Text: text, CallbackData: data}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// objectListScreen renders the top-level object list.
func objectListScreen(objects []rentobj.RentObject) *Screen {
	var rows [][]models.InlineKeyboardButton
	for _, obj := range objects {
		rows = append(rows, []models.InlineKeyboardButton{
			button(obj.Name, cbObjectList, "open", obj.Name),
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		button("Добавить объект ➕", cbObjectList, "create"),
	})

	return &Screen{
		Text:   "Меню",
		Markup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	}
}

func objectHeader(obj *ObjectBuffer) string {
	title := "Объект: "
	if obj.IsNew {
		title = "Новый объект: "
	}
	return fmt.Sprintf("<b>%s</b>%s\n\n<b>Описание: </b>%s\n\n<b>Площадь: </b>%s",
		title, obj.DisplayName(), obj.Description, formatFloat(obj.Area))
}

// objectMenuScreen renders the editing menu of the buffered object.
// Delete and export are hidden while the object is not persisted yet.
func objectMenuScreen(obj *ObjectBuffer) *Screen {
	rows := [][]models.InlineKeyboardButton{
		{button("Изменить имя", cbObjectMenu, "name")},
		{button("Изменить описание", cbObjectMenu, "description")},
		{button("Изменить площадь", cbObjectMenu, "area")},
		{button("Список записей 📋", cbObjectMenu, "records")},
		{button("Добавить запись ➕", cbObjectMenu, "add_record")},
	}
	if !obj.IsNew {
		rows = append(rows,
			[]models.InlineKeyboardButton{button("Удалить объект ❌", cbObjectMenu, "delete")},
			[]models.InlineKeyboardButton{button("Получить документ", cbObjectMenu, "document")},
		)
	}

	backText := "Назад ⬅️"
	if obj.IsNew {
		backText = "Отмена ⬅️"
	}
	rows = append(rows, []models.InlineKeyboardButton{
		button(backText, cbObjectMenu, "cancel"),
		button("Готово ✅", cbObjectMenu, "enter"),
	})

	return &Screen{
		Text:   objectHeader(obj),
		Markup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	}
}

// recordListScreen renders one page of the record list, newest first.
// The callback of each row carries the record's true index in the
// date-ascending order.
func recordListScreen(obj *ObjectBuffer, records []rentobj.Record, page int) *Screen {
	count := len(records)
	pages := int(math.Ceil(float64(count) / recordsPerPage))

	var rows [][]models.InlineKeyboardButton
	for i := page * recordsPerPage; i < (page+1)*recordsPerPage && i < count; i++ {
		trueIndex := count - 1 - i
		rec := records[trueIndex]
		rows = append(rows, []models.InlineKeyboardButton{
			button("Дата: "+report.FormatMonth(rec.Date), cbRecordList, "open", strconv.Itoa(trueIndex)),
		})
	}

	var pagination []models.InlineKeyboardButton
	if page != 0 {
		pagination = append(pagination, button(fmt.Sprintf("%d ⬅️", page), cbRecordList, "prev"))
	}
	if page+1 < pages {
		pagination = append(pagination, button(fmt.Sprintf("➡️ %d", page+2), cbRecordList, "next"))
	}
	if len(pagination) > 0 {
		rows = append(rows, pagination)
	}

	rows = append(rows,
		[]models.InlineKeyboardButton{button("Добавить запись ➕", cbRecordList, "add")},
		[]models.InlineKeyboardButton{button("Назад ⬅️", cbRecordList, "back")},
	)

	return &Screen{
		Text:   "<b>Список записей</b>\n" + objectHeader(obj),
		Markup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	}
}

type amountField struct {
	key    string
	label  string
	prompt string
}

// amountFieldSpecs drives the record menu buttons, the edit prompts and
// the field-edit states, in menu order.
var amountFieldSpecs = []amountField{
	{"rent", "Аренда", "Введите аренду"},
	{"heat", "Тепло", "Введите затраты на тепло"},
	{"exploitation", "Содержание", "Введите затраты на содержание"},
	{"mop", "МОП", "Введите затраты на МОП"},
	{"renovation", "Капремонт", "Введите затраты на капремонт"},
	{"tbo", "ТБО", "Введите затраты на ТБО"},
	{"electricity", "Эл. счётчик", "Введите затраты на электрику по счётчику"},
	{"earth_rent", "Аренда земли", "Введите затраты на аренду земли"},
	{"other", "Прочие расходы", "Введите затраты на прочие расходы"},
	{"security", "Охрана", "Введите затраты на охрану"},
}

// recordMenuScreen renders the editor of the selected record. Delete is
// hidden for a record that was never persisted.
func recordMenuScreen(obj *ObjectBuffer, rec *RecordBuffer) *Screen {
	rows := [][]models.InlineKeyboardButton{
		{button("Дата: "+report.FormatMonth(rec.Date), cbRecordMenu, "date")},
	}
	for _, f := range amountFieldSpecs {
		label := fmt.Sprintf("%s: %s", f.label, formatFloat(rec.Amount(f.key)))
		rows = append(rows, []models.InlineKeyboardButton{button(label, cbRecordMenu, f.key)})
	}

	if !rec.IsNew {
		rows = append(rows, []models.InlineKeyboardButton{button("Удалить запись ❌", cbRecordMenu, "delete")})
	}

	backText := "Назад ⬅️"
	if rec.IsNew {
		backText = "Отмена ⬅️"
	}
	rows = append(rows,
		[]models.InlineKeyboardButton{button(backText, cbRecordMenu, "cancel")},
		[]models.InlineKeyboardButton{button("Готово ✅", cbRecordMenu, "enter")},
	)

	title := "Изменение записи"
	if rec.IsNew {
		title = "Добавление записи"
	}

	return &Screen{
		Text:   fmt.Sprintf("<b>%s</b>\n%s", title, objectHeader(obj)),
		Markup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	}
}

// deleteConfirmScreen asks for delete confirmation.
func deleteConfirmScreen(text string) *Screen {
	return &Screen{
		Text: text,
		Markup: &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				button("Нет ❌", cbConfirm, "no"),
				button("Да ✅", cbConfirm, "yes"),
			},
		}},
	}
}
