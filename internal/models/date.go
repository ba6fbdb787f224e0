package models

import "fmt"

// MonthDay is an MM/DD date as printed on transaction lines.
// Statement transaction lines never carry a year; the parser resolves
// MonthDay values into MonthDayYear using the statement period.
type MonthDay struct {
	Month int // 1-12
	Day   int // 1-31
}

// NewMonthDay range-checks both fields. Out-of-range values mean the
// document does not match the statement grammar, so callers treat the
// error as fatal.
func NewMonthDay(month, day int) (MonthDay, error) {
	if month < 1 || month > 12 {
		return MonthDay{}, fmt.Errorf("invalid month %d in date %02d/%02d", month, month, day)
	}
	if day < 1 || day > 31 {
		return MonthDay{}, fmt.Errorf("invalid day %d in date %02d/%02d", day, month, day)
	}
	return MonthDay{Month: month, Day: day}, nil
}

func (d MonthDay) String() string {
	return fmt.Sprintf("%02d/%02d", d.Month, d.Day)
}

// MonthDayYear is an MM/DD/YY date. The statement only ever prints
// two-digit years; no century is known.
type MonthDayYear struct {
	Month int `json:"month"` // 1-12
	Day   int `json:"day"`   // 1-31
	Year  int `json:"year"`  // 0-99
}

func NewMonthDayYear(month, day, year int) (MonthDayYear, error) {
	md, err := NewMonthDay(month, day)
	if err != nil {
		return MonthDayYear{}, err
	}
	if year < 0 || year > 99 {
		return MonthDayYear{}, fmt.Errorf("invalid year %d in date %02d/%02d/%02d", year, month, day, year)
	}
	return MonthDayYear{Month: md.Month, Day: md.Day, Year: year}, nil
}

func (d MonthDayYear) String() string {
	return fmt.Sprintf("%02d/%02d/%02d", d.Month, d.Day, d.Year)
}

// Period is the opening/closing date range declared once per statement.
// The range is closed, [Opening, Closing]. Its two dates supply the
// month-to-year anchors used to complete transaction dates.
type Period struct {
	Opening MonthDayYear
	Closing MonthDayYear
}

func (p Period) String() string {
	return p.Opening.String() + " - " + p.Closing.String()
}

// TransitLeg is a ticket for a single leg of a trip: a one-letter
// ticket-type code and three-letter departure and arrival points.
type TransitLeg struct {
	Code      string `json:"code"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}

func NewTransitLeg(code, departure, arrival string) (TransitLeg, error) {
	if len(code) != 1 {
		return TransitLeg{}, fmt.Errorf("invalid code %q in transit leg", code)
	}
	if len(departure) != 3 {
		return TransitLeg{}, fmt.Errorf("invalid departure %q in transit leg", departure)
	}
	if len(arrival) != 3 {
		return TransitLeg{}, fmt.Errorf("invalid arrival %q in transit leg", arrival)
	}
	return TransitLeg{Code: code, Departure: departure, Arrival: arrival}, nil
}

func (l TransitLeg) String() string {
	return fmt.Sprintf("%s(%s->%s)", l.Code, l.Departure, l.Arrival)
}
