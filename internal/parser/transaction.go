package parser

import (
	"fmt"
	"regexp"

	"github.com/insightdelivered/chase-statement-converter/internal/models"
)

// Transaction record grammar. A record always starts with an MM/DD
// date, a description and an amount on one line. Foreign records
// continue with an exchange date line and an exchange rate line;
// transit records continue with one leg-with-id line and zero or more
// leg lines. The description is any text up to the last space-delimited
// token that parses as an amount (the leading capture is greedy and the
// amount is anchored to end of line).
var (
	// MM/DD <description> <amount>
	domesticPattern = regexp.MustCompile(
		`^(\d{2})/(\d{2}) (.*) (-?\d{1,3}(?:,\d{3})*\.\d*)$`,
	)
	// MM/DD <description> — the 2nd line of a foreign record. It also
	// matches domestic lead lines, which is why the 3rd line is checked
	// first.
	exchangeDatePattern = regexp.MustCompile(
		`^(\d{2})/(\d{2}) (.*)$`,
	)
	// <amount> X <rate> (EXCHG RATE) — the 3rd line of a foreign
	// record, structurally unambiguous with every other line shape.
	exchangeRatePattern = regexp.MustCompile(
		`^(-?\d{1,3}(?:,\d{3})*\.\d*) X (\d{1,3}(?:,\d{3})*\.\d*) \(EXCHG RATE\)$`,
	)
	// <6-digit id> <index> <code> <from> <to> — first transit line.
	// The per-line index is implicit in leg order and not captured.
	transitLegWithIDPattern = regexp.MustCompile(
		`^(\d{6}) \d ([A-Z]) ([A-Z]{3}) ([A-Z]{3})$`,
	)
	// <index> <code> <from> <to> — subsequent transit lines.
	transitLegPattern = regexp.MustCompile(
		`^\d ([A-Z]) ([A-Z]{3}) ([A-Z]{3})$`,
	)
)

// transactionMatcher recognizes one transaction record at the cursor,
// dispatching between the domestic, foreign and transit shapes with up
// to three lines of lookahead. The continuation shapes are tried in
// the fixed order foreign, transit, domestic: the foreign check looks
// at the 3rd line, which no other shape can produce, so trying it
// first needs no backtracking.
type transactionMatcher struct {
	years MonthYears
}

// Match reports (nil, false, nil) when the lead line is not a
// transaction record; the cursor is untouched and the caller
// reinterprets the line as non-transaction data. Errors are fatal
// grammar violations.
func (t *transactionMatcher) Match(cur *Cursor) (models.Record, bool, error) {
	lead := domesticPattern.FindStringSubmatch(cur.Peek(0))
	if lead == nil {
		return nil, false, nil
	}
	leadLine, _ := cur.Next()

	md, err := models.NewMonthDay(atoi(lead[1]), atoi(lead[2]))
	if err != nil {
		return nil, false, fmt.Errorf("transaction line %q: %v", leadLine, err)
	}
	date, err := t.years.Resolve(md)
	if err != nil {
		return nil, false, fmt.Errorf("transaction line %q: %w", leadLine, err)
	}
	description := escapeControl(lead[3])
	amount, err := parseAmount(lead[4])
	if err != nil {
		return nil, false, fmt.Errorf("transaction line %q: amount %q: %v", leadLine, lead[4], err)
	}

	rateMatch := exchangeRatePattern.FindStringSubmatch(cur.Peek(1))
	transitMatch := transitLegWithIDPattern.FindStringSubmatch(cur.Peek(0))

	// A record cannot be foreign and transit at once; the grammar is
	// assumed to never produce one, so reject instead of guessing.
	if rateMatch != nil && transitMatch != nil {
		return nil, false, fmt.Errorf("after line %q, %q and %q: %w",
			leadLine, cur.Peek(0), cur.Peek(1), ErrConflictingRecord)
	}

	switch {
	case rateMatch != nil:
		return t.matchForeign(cur, leadLine, date, description, amount, rateMatch)
	case transitMatch != nil:
		return t.matchTransit(cur, leadLine, date, description, amount, transitMatch)
	default:
		return models.Domestic{Date: date, Description: description, Amount: amount}, true, nil
	}
}

// matchForeign completes a foreign record once the exchange rate line
// has been sighted two lines ahead. The exchange date line in between
// must match too; a rate line without it violates the grammar and is
// fatal, because silently falling back to domestic would drop the
// exchange data.
func (t *transactionMatcher) matchForeign(cur *Cursor, leadLine string, date models.MonthDayYear, description string, amount float64, rateMatch []string) (models.Record, bool, error) {
	exch := exchangeDatePattern.FindStringSubmatch(cur.Peek(0))
	if exch == nil {
		return nil, false, fmt.Errorf("lead line %q, rate line %q, middle line %q: %w",
			leadLine, cur.Peek(1), cur.Peek(0), ErrAmbiguousForeign)
	}
	cur.Next()
	cur.Next()

	md, err := models.NewMonthDay(atoi(exch[1]), atoi(exch[2]))
	if err != nil {
		return nil, false, fmt.Errorf("exchange date line for %q: %v", leadLine, err)
	}
	exchangeDate, err := t.years.Resolve(md)
	if err != nil {
		return nil, false, fmt.Errorf("exchange date line for %q: %w", leadLine, err)
	}
	exchangeAmount, err := parseAmount(rateMatch[1])
	if err != nil {
		return nil, false, fmt.Errorf("exchange amount %q for %q: %v", rateMatch[1], leadLine, err)
	}
	exchangeRate, err := parseAmount(rateMatch[2])
	if err != nil {
		return nil, false, fmt.Errorf("exchange rate %q for %q: %v", rateMatch[2], leadLine, err)
	}

	return models.Foreign{
		Date:             date,
		Description:      description,
		Amount:           amount,
		ExchangeDate:     exchangeDate,
		ExchangeCurrency: escapeControl(exch[3]),
		ExchangeAmount:   exchangeAmount,
		ExchangeRate:     exchangeRate,
	}, true, nil
}

// matchTransit completes a transit record. The leg-with-id line is
// already matched; further leg lines are consumed while they match and
// the first non-match is left on the cursor.
func (t *transactionMatcher) matchTransit(cur *Cursor, leadLine string, date models.MonthDayYear, description string, amount float64, transitMatch []string) (models.Record, bool, error) {
	cur.Next()

	firstLeg, err := models.NewTransitLeg(transitMatch[2], transitMatch[3], transitMatch[4])
	if err != nil {
		return nil, false, fmt.Errorf("transit leg for %q: %v", leadLine, err)
	}
	legs := []models.TransitLeg{firstLeg}

	for {
		m := transitLegPattern.FindStringSubmatch(cur.Peek(0))
		if m == nil {
			break
		}
		cur.Next()
		leg, err := models.NewTransitLeg(m[1], m[2], m[3])
		if err != nil {
			return nil, false, fmt.Errorf("transit leg for %q: %v", leadLine, err)
		}
		legs = append(legs, leg)
	}

	return models.Transit{
		Date:        date,
		Description: description,
		Amount:      amount,
		TransitID:   atoi(transitMatch[1]),
		Legs:        legs,
	}, true, nil
}
