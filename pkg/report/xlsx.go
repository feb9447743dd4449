// Package report renders the financial report of a rent object into a
// downloadable spreadsheet.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"arenda/pkg/rentobj"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// months are the Russian short month names used in menus and reports.
var months = [...]string{
	"Янв", "Фев", "Март", "Апр", "Май", "Июнь",
	"Июль", "Авг", "Сен", "Окт", "Нояб", "Дек",
}

// FormatMonth renders a record date as "Март-2024".
func FormatMonth(t time.Time) string {
	return fmt.Sprintf("%s-%d", months[t.Month()-1], t.Year())
}

var recordHeaders = []string{
	"Месяц",
	"Аренда постоянная",
	"Аренда, итого",
	"Аренда, кв.метр итого",
	"Тепло",
	"Содержание (эксплуатация)",
	"МОП (ээ, ХВС, канализация, ГВС, ПДК, тепло)",
	"Капремонт",
	"ТБО",
	"Электрика счетчик",
	"Аренда земли",
	"Прочие расходы",
	"Охрана",
	"Итого расходы",
	"Стоимость расходов, за кв.метр",
	"Итого Д-Р",
	"Итого аренда, кв.метр",
}

var objectHeaders = []string{
	"Метраж",
	"Количество месяцев",
	"Аренда (доход), среднемесячная",
	"Минус налог, 6%",
	"Аренда минус налог и затраты",
	"Итого год, минус затраты",
	"Окупаемость 5 лет",
	"Окупаемость 7 лет",
	"Окупаемость 8 лет",
	"Окупаемость 10 лет",
}

// paybackYears are the payback projection horizons of the summary block.
var paybackYears = []int{5, 7, 8, 10}

const (
	sheet         = "Sheet1"
	moneyFormat   = `_-* #,##0.00\ "₽"_-;\-* #,##0.00\ "₽"_-;_-* "-"??\ "₽"_-;_-@`
	summaryOffset = 3
)

// XLSXWriter produces the spreadsheet artifact for one object report.
type XLSXWriter struct {
	dir string
}

// NewXLSXWriter creates a writer placing files into dir (or the OS temp
// directory when dir is empty).
func NewXLSXWriter(dir string) *XLSXWriter {
	if dir == "" {
		dir = os.TempDir()
	}
	return &XLSXWriter{dir: dir}
}

// Create writes the report into a new .xlsx file and returns its path.
// The caller removes the file after sending it.
func (w *XLSXWriter) Create(info *rentobj.RentObjectInfo) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	})
	if err != nil {
		return "", err
	}
	numFmt := moneyFormat
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return "", err
	}

	if err := w.writeRecords(f, info, headerStyle, moneyStyle); err != nil {
		return "", err
	}
	if err := w.writeSummary(f, info, headerStyle, moneyStyle); err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, fmt.Sprintf("%s-%s.xlsx", info.Name, uuid.NewString()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}

func (w *XLSXWriter) writeRecords(f *excelize.File, info *rentobj.RentObjectInfo, headerStyle, moneyStyle int) error {
	for col, header := range recordHeaders {
		cell, err := excelize.CoordinatesToCellName(col+2, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
		name, _ := excelize.ColumnNumberToName(col + 2)
		if err := f.SetColWidth(sheet, name, name, 15); err != nil {
			return err
		}
	}

	for i, ri := range info.RecordsInfo {
		row := i + 2
		values := []any{
			i + 1,
			FormatMonth(ri.Date),
			ri.Rent,
			ri.Income,
			ri.IncomeByArea,
			ri.Heat,
			ri.Exploitation,
			ri.Mop,
			ri.Renovation,
			ri.Tbo,
			ri.Electricity,
			ri.EarthRent,
			ri.Other,
			ri.Security,
			ri.Expenses,
			ri.ExpensesByArea,
			ri.Profit,
			ri.ProfitByArea,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			if col >= 2 {
				if err := f.SetCellStyle(sheet, cell, cell, moneyStyle); err != nil {
					return err
				}
			}
		}
	}

	// Totals line: SUM over each money column.
	totalRow := len(info.RecordsInfo) + 1 + summaryOffset
	for col := 3; col <= 18; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(col, totalRow)
		if err != nil {
			return err
		}
		formula := fmt.Sprintf("SUM(%s2:%s%d)", name, name, len(info.RecordsInfo)+1)
		if err := f.SetCellFormula(sheet, cell, formula); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, moneyStyle); err != nil {
			return err
		}
	}

	return nil
}

func (w *XLSXWriter) writeSummary(f *excelize.File, info *rentobj.RentObjectInfo, headerStyle, moneyStyle int) error {
	headerRow := len(info.RecordsInfo) + 1 + 2*summaryOffset + 1

	for col, header := range objectHeaders {
		cell, err := excelize.CoordinatesToCellName(col+2, headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	profit := info.AverageProfit()
	row := headerRow + 1
	values := []any{
		info.Area,
		len(info.RecordsInfo),
		info.AverageIncome(),
		info.AverageIncomeWithTax(),
		profit,
		profit * 12,
	}
	for _, years := range paybackYears {
		values = append(values, profit*12*float64(years))
	}
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+2, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if col >= 2 {
			if err := f.SetCellStyle(sheet, cell, cell, moneyStyle); err != nil {
				return err
			}
		}
	}

	// Per-square-meter payback figures.
	if info.Area > 0 {
		paybackRow := row + 2
		cell, err := excelize.CoordinatesToCellName(7, paybackRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, "Стоимость"); err != nil {
			return err
		}
		for i, years := range paybackYears {
			cell, err := excelize.CoordinatesToCellName(8+i, paybackRow)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, profit*12*float64(years)/info.Area); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, moneyStyle); err != nil {
				return err
			}
		}
	}

	return nil
}
