package parser

import (
	"fmt"

	"github.com/insightdelivered/chase-statement-converter/internal/models"
)

// MonthYears maps a month number to a two-digit year. Transaction
// lines print only MM/DD; the years come from the statement period's
// opening and closing dates, registered once at period-parse time and
// read-only afterwards.
type MonthYears map[int]int

// Register records the year for a month, overwriting any existing
// entry. Registration is idempotent.
func (m MonthYears) Register(month, year int) {
	m[month] = year
}

// RegisterPeriod registers both anchor dates of a statement period.
func (m MonthYears) RegisterPeriod(p models.Period) {
	m.Register(p.Opening.Month, p.Opening.Year)
	m.Register(p.Closing.Month, p.Closing.Year)
}

// Resolve completes a MonthDay into a MonthDayYear using the
// registered table. A month without an entry is fatal, wrapped around
// ErrUnresolvedMonth.
func (m MonthYears) Resolve(d models.MonthDay) (models.MonthDayYear, error) {
	year, ok := m[d.Month]
	if !ok {
		return models.MonthDayYear{}, fmt.Errorf("date %s with table %v: %w", d, map[int]int(m), ErrUnresolvedMonth)
	}
	return models.MonthDayYear{Month: d.Month, Day: d.Day, Year: year}, nil
}
