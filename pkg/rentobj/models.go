package rentobj

import (
	"fmt"
	"time"
)

// MaxObjectNameLen is the longest object name the bot accepts. Longer
// names do not fit into an inline keyboard button.
const MaxObjectNameLen = 40

// RentObject is a rental property with its monthly records.
type RentObject struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Area        float64  `json:"area"`
	Records     []Record `json:"records"`
}

// Record holds the financials of one month. Date is always UTC at
// second precision, so the default RFC 3339 encoding produces the
// backend wire form "2006-01-02T15:04:05Z".
type Record struct {
	Date         time.Time `json:"date"`
	Rent         float64   `json:"rent"`
	Heat         float64   `json:"heat"`
	Exploitation float64   `json:"exploitation"`
	Mop          float64   `json:"mop"`
	Renovation   float64   `json:"renovation"`
	Tbo          float64   `json:"tbo"`
	Electricity  float64   `json:"electricity"`
	EarthRent    float64   `json:"earth_rent"`
	Other        float64   `json:"other"`
	Security     float64   `json:"security"`
}

// NewRecord returns a zero-valued record dated now.
func NewRecord() Record {
	return Record{Date: time.Now().UTC().Truncate(time.Second)}
}

// AmountFields lists the numeric record fields in menu order, keyed by
// their wire names.
var AmountFields = []string{
	"rent", "heat", "exploitation", "mop", "renovation",
	"tbo", "electricity", "earth_rent", "other", "security",
}

// Amount returns the numeric field with the given wire name.
func (r Record) Amount(field string) float64 {
	switch field {
	case "rent":
		return r.Rent
	case "heat":
		return r.Heat
	case "exploitation":
		return r.Exploitation
	case "mop":
		return r.Mop
	case "renovation":
		return r.Renovation
	case "tbo":
		return r.Tbo
	case "electricity":
		return r.Electricity
	case "earth_rent":
		return r.EarthRent
	case "other":
		return r.Other
	case "security":
		return r.Security
	}
	return 0
}

// SetAmount sets the numeric field with the given wire name.
func (r *Record) SetAmount(field string, value float64) error {
	switch field {
	case "rent":
		r.Rent = value
	case "heat":
		r.Heat = value
	case "exploitation":
		r.Exploitation = value
	case "mop":
		r.Mop = value
	case "renovation":
		r.Renovation = value
	case "tbo":
		r.Tbo = value
	case "electricity":
		r.Electricity = value
	case "earth_rent":
		r.EarthRent = value
	case "other":
		r.Other = value
	case "security":
		r.Security = value
	default:
		return fmt.Errorf("unknown record field %q", field)
	}
	return nil
}

// UpdateRentObjectInput is a partial object update; nil fields are left
// unchanged by the backend.
type UpdateRentObjectInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Area        *float64 `json:"area,omitempty"`
}

// UpdateRecordInput is a partial record update; nil fields are left
// unchanged by the backend.
type UpdateRecordInput struct {
	Date         *time.Time `json:"date,omitempty"`
	Rent         *float64   `json:"rent,omitempty"`
	Heat         *float64   `json:"heat,omitempty"`
	Exploitation *float64   `json:"exploitation,omitempty"`
	Mop          *float64   `json:"mop,omitempty"`
	Renovation   *float64   `json:"renovation,omitempty"`
	Tbo          *float64   `json:"tbo,omitempty"`
	Electricity  *float64   `json:"electricity,omitempty"`
	EarthRent    *float64   `json:"earth_rent,omitempty"`
	Other        *float64   `json:"other,omitempty"`
	Security     *float64   `json:"security,omitempty"`
}

// FullRecordUpdate returns an update input carrying every field of the
// record. Record confirmation always flushes the full field set.
func FullRecordUpdate(r Record) UpdateRecordInput {
	return UpdateRecordInput{
		Date:         &r.Date,
		Rent:         &r.Rent,
		Heat:         &r.Heat,
		Exploitation: &r.Exploitation,
		Mop:          &r.Mop,
		Renovation:   &r.Renovation,
		Tbo:          &r.Tbo,
		Electricity:  &r.Electricity,
		EarthRent:    &r.EarthRent,
		Other:        &r.Other,
		Security:     &r.Security,
	}
}

// RecordInfo is a record together with the figures the backend derives
// from it. The wire form is flat: record fields plus the computed ones.
type RecordInfo struct {
	Record
	Income         float64 `json:"income"`
	Expenses       float64 `json:"expenses"`
	Profit         float64 `json:"profit"`
	IncomeByArea   float64 `json:"income_by_area"`
	ExpensesByArea float64 `json:"expenses_by_area"`
	ProfitByArea   float64 `json:"profit_by_area"`
}

// RentObjectInfo is the computed financial report for one object.
type RentObjectInfo struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Area        float64      `json:"area"`
	RecordsInfo []RecordInfo `json:"records_info"`
}

// incomeTaxRate is the simplified tax applied to rental income.
const incomeTaxRate = 0.06

// AverageIncome returns the mean monthly income over all records.
func (i RentObjectInfo) AverageIncome() float64 {
	if len(i.RecordsInfo) == 0 {
		return 0
	}
	var sum float64
	for _, ri := range i.RecordsInfo {
		sum += ri.Income
	}
	return sum / float64(len(i.RecordsInfo))
}

// AverageIncomeWithTax returns the mean monthly income after tax.
func (i RentObjectInfo) AverageIncomeWithTax() float64 {
	return i.AverageIncome() * (1 - incomeTaxRate)
}

// AverageExpenses returns the mean monthly expenses over all records.
func (i RentObjectInfo) AverageExpenses() float64 {
	if len(i.RecordsInfo) == 0 {
		return 0
	}
	var sum float64
	for _, ri := range i.RecordsInfo {
		sum += ri.Expenses
	}
	return sum / float64(len(i.RecordsInfo))
}

// AverageProfit returns the mean monthly income after tax minus the
// mean monthly expenses.
func (i RentObjectInfo) AverageProfit() float64 {
	return i.AverageIncomeWithTax() - i.AverageExpenses()
}
