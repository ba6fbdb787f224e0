package parser

import (
	"testing"

	"github.com/insightdelivered/chase-statement-converter/internal/models"
)

func mdy(t *testing.T, month, day, year int) models.MonthDayYear {
	t.Helper()
	d, err := models.NewMonthDayYear(month, day, year)
	if err != nil {
		t.Fatalf("bad test date %02d/%02d/%02d: %v", month, day, year, err)
	}
	return d
}

func periodOf(opening, closing models.MonthDayYear) models.Period {
	return models.Period{Opening: opening, Closing: closing}
}

// aprilYears is the month-to-year table of a statement fully inside
// April 2016, as most scenario inputs assume.
func aprilYears() MonthYears {
	years := MonthYears{}
	years.Register(4, 16)
	return years
}
