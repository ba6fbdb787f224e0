package parser

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/insightdelivered/chase-statement-converter/internal/models"
)

// Statement period meta-data line:
// "Opening/Closing Date MM/DD/YY - MM/DD/YY"
var periodPattern = regexp.MustCompile(
	`^Opening/Closing Date (\d{2})/(\d{2})/(\d{2}) - (\d{2})/(\d{2})/(\d{2})$`,
)

// matchPeriod matches the statement period line at the cursor. It
// checks via lookahead and consumes the line only on a match, so a
// failed match leaves the cursor untouched.
func matchPeriod(cur *Cursor) (models.Period, bool, error) {
	m := periodPattern.FindStringSubmatch(cur.Peek(0))
	if m == nil {
		return models.Period{}, false, nil
	}
	line, _ := cur.Next()

	opening, err := models.NewMonthDayYear(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	if err != nil {
		return models.Period{}, false, fmt.Errorf("statement period line %q: %v", line, err)
	}
	closing, err := models.NewMonthDayYear(atoi(m[4]), atoi(m[5]), atoi(m[6]))
	if err != nil {
		return models.Period{}, false, fmt.Errorf("statement period line %q: %v", line, err)
	}

	return models.Period{Opening: opening, Closing: closing}, true, nil
}

// atoi is for regex captures that are guaranteed to be digit runs.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
