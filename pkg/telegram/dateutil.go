package telegram

import (
	"errors"
	"strings"
	"time"
)

// Record dates have month granularity. Users type them as МЕСЯЦ.ГОД
// with a two- or four-digit year; parsed values are normalized to the
// first day of the month at UTC midnight. The non-padded month layout
// accepts both "3.24" and "03.24".
var monthInputLayouts = []string{"1.06", "1.2006"}

var errBadMonth = errors.New("неверный формат даты")

// ParseMonth parses user input like "3.24", "03.24" or "03.2024".
func ParseMonth(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	for _, layout := range monthInputLayouts {
		if t, err := time.ParseInLocation(layout, input, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errBadMonth
}
