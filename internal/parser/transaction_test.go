package parser

import (
	"errors"
	"testing"

	"github.com/insightdelivered/chase-statement-converter/internal/models"
)

func matchOne(t *testing.T, years MonthYears, lines []string) (models.Record, *Cursor) {
	t.Helper()
	cur := NewCursor(lines)
	m := &transactionMatcher{years: years}
	rec, ok, err := m.Match(cur)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
	return rec, cur
}

func TestMatchDomestic(t *testing.T) {
	rec, cur := matchOne(t, aprilYears(), []string{
		"04/05 AMAZON.COM AMZN.COM/BILL WA 25.00",
	})

	d, ok := rec.(models.Domestic)
	if !ok {
		t.Fatalf("record type: got %T, want models.Domestic", rec)
	}
	if got := d.Date.String(); got != "04/05/16" {
		t.Errorf("date: got %q, want %q", got, "04/05/16")
	}
	if d.Description != "AMAZON.COM AMZN.COM/BILL WA" {
		t.Errorf("description: got %q", d.Description)
	}
	if d.Amount != 25.00 {
		t.Errorf("amount: got %f, want 25.00", d.Amount)
	}
	if got := cur.Remaining(); got != 0 {
		t.Errorf("remaining: got %d, want 0", got)
	}
}

func TestMatchDomesticAmounts(t *testing.T) {
	tests := []struct {
		line   string
		desc   string
		amount float64
	}{
		{"04/05 PAYMENT THANK YOU -1,234.56", "PAYMENT THANK YOU", -1234.56},
		{"04/05 BIG TICKET 12,345,678.90", "BIG TICKET", 12345678.90},
		{"04/05 ODD CENTS 1.5", "ODD CENTS", 1.5},
		// The amount is the last space-delimited token; earlier
		// amount-shaped tokens belong to the description.
		{"04/05 STORE 10.00 25.00", "STORE 10.00", 25.00},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rec, _ := matchOne(t, aprilYears(), []string{tt.line})
			d, ok := rec.(models.Domestic)
			if !ok {
				t.Fatalf("record type: got %T, want models.Domestic", rec)
			}
			if d.Description != tt.desc {
				t.Errorf("description: got %q, want %q", d.Description, tt.desc)
			}
			if d.Amount != tt.amount {
				t.Errorf("amount: got %f, want %f", d.Amount, tt.amount)
			}
		})
	}
}

func TestMatchFailureConsumesNothing(t *testing.T) {
	lines := []string{
		"Total fees charged in 2016 $0.00",
		"4/05 ONE DIGIT MONTH 25.00",
		"04/05 NO AMOUNT HERE",
		"04/05 MISSING DECIMAL 25",
		"",
	}
	for _, line := range lines {
		cur := NewCursor([]string{line})
		m := &transactionMatcher{years: aprilYears()}
		rec, ok, err := m.Match(cur)
		if err != nil {
			t.Fatalf("line %q: unexpected error: %v", line, err)
		}
		if ok {
			t.Errorf("line %q: expected no match, got %v", line, rec)
		}
		if got := cur.Remaining(); got != 1 {
			t.Errorf("line %q: remaining: got %d, want 1", line, got)
		}
	}
}

func TestMatchForeign(t *testing.T) {
	rec, cur := matchOne(t, aprilYears(), []string{
		"04/06 UBER *TRIP HELSINKI 10.00",
		"04/06 UBER *TRIP HELSINKI",
		"9.00 X 1.11111 (EXCHG RATE)",
	})

	f, ok := rec.(models.Foreign)
	if !ok {
		t.Fatalf("record type: got %T, want models.Foreign", rec)
	}
	if got := f.Date.String(); got != "04/06/16" {
		t.Errorf("date: got %q, want %q", got, "04/06/16")
	}
	if f.Description != "UBER *TRIP HELSINKI" {
		t.Errorf("description: got %q", f.Description)
	}
	if f.Amount != 10.00 {
		t.Errorf("amount: got %f, want 10.00", f.Amount)
	}
	if got := f.ExchangeDate.String(); got != "04/06/16" {
		t.Errorf("exchange date: got %q, want %q", got, "04/06/16")
	}
	if f.ExchangeCurrency != "UBER *TRIP HELSINKI" {
		t.Errorf("exchange currency: got %q", f.ExchangeCurrency)
	}
	if f.ExchangeAmount != 9.00 {
		t.Errorf("exchange amount: got %f, want 9.00", f.ExchangeAmount)
	}
	if f.ExchangeRate != 1.11111 {
		t.Errorf("exchange rate: got %f, want 1.11111", f.ExchangeRate)
	}
	if got := cur.Remaining(); got != 0 {
		t.Errorf("remaining: got %d, want 0", got)
	}
}

func TestMatchForeignNegativeExchangeAmount(t *testing.T) {
	rec, _ := matchOne(t, aprilYears(), []string{
		"04/06 REFUND OSLO -50.00",
		"04/06 REFUND OSLO",
		"-430.00 X 0.11628 (EXCHG RATE)",
	})

	f, ok := rec.(models.Foreign)
	if !ok {
		t.Fatalf("record type: got %T, want models.Foreign", rec)
	}
	if f.ExchangeAmount != -430.00 {
		t.Errorf("exchange amount: got %f, want -430.00", f.ExchangeAmount)
	}
}

func TestMatchAmbiguousForeignFatal(t *testing.T) {
	// The rate line matches two ahead but the middle line is not an
	// exchange date line. Falling back to domestic would drop data, so
	// this aborts.
	cur := NewCursor([]string{
		"04/06 UBER *TRIP HELSINKI 10.00",
		"NOT AN EXCHANGE DATE LINE",
		"9.00 X 1.11111 (EXCHG RATE)",
	})
	m := &transactionMatcher{years: aprilYears()}
	_, _, err := m.Match(cur)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrAmbiguousForeign) {
		t.Errorf("error = %v, want ErrAmbiguousForeign", err)
	}
}

func TestMatchTransit(t *testing.T) {
	rec, cur := matchOne(t, aprilYears(), []string{
		"04/07 MTA*NYCT PAY-PER-RI NEW YORK NY 2.75",
		"123456 1 A JFK LGA",
		"2 B LGA JFK",
	})

	tr, ok := rec.(models.Transit)
	if !ok {
		t.Fatalf("record type: got %T, want models.Transit", rec)
	}
	if got := tr.Date.String(); got != "04/07/16" {
		t.Errorf("date: got %q, want %q", got, "04/07/16")
	}
	if tr.Description != "MTA*NYCT PAY-PER-RI NEW YORK NY" {
		t.Errorf("description: got %q", tr.Description)
	}
	if tr.Amount != 2.75 {
		t.Errorf("amount: got %f, want 2.75", tr.Amount)
	}
	if tr.TransitID != 123456 {
		t.Errorf("transit id: got %d, want 123456", tr.TransitID)
	}
	wantLegs := []models.TransitLeg{
		{Code: "A", Departure: "JFK", Arrival: "LGA"},
		{Code: "B", Departure: "LGA", Arrival: "JFK"},
	}
	if len(tr.Legs) != len(wantLegs) {
		t.Fatalf("legs: got %d, want %d", len(tr.Legs), len(wantLegs))
	}
	for i, want := range wantLegs {
		if tr.Legs[i] != want {
			t.Errorf("legs[%d]: got %v, want %v", i, tr.Legs[i], want)
		}
	}
	if got := cur.Remaining(); got != 0 {
		t.Errorf("remaining: got %d, want 0", got)
	}
}

func TestMatchTransitSingleLeg(t *testing.T) {
	rec, cur := matchOne(t, aprilYears(), []string{
		"04/07 AMTRAK .CO 1234567890 WASHINGTON DC 120.00",
		"654321 1 C WAS NYP",
		"04/08 NEXT TRANSACTION 5.00",
	})

	tr, ok := rec.(models.Transit)
	if !ok {
		t.Fatalf("record type: got %T, want models.Transit", rec)
	}
	if len(tr.Legs) != 1 {
		t.Fatalf("legs: got %d, want 1", len(tr.Legs))
	}
	// The next transaction line is left for the caller.
	if got := cur.Remaining(); got != 1 {
		t.Errorf("remaining: got %d, want 1", got)
	}
}

func TestMatchTransitLegOrderPreserved(t *testing.T) {
	rec, _ := matchOne(t, aprilYears(), []string{
		"04/07 MTA*NYCT PAY-PER-RI NEW YORK NY 11.00",
		"111111 1 A AAA BBB",
		"2 B BBB CCC",
		"3 C CCC DDD",
		"4 D DDD EEE",
	})

	tr := rec.(models.Transit)
	want := []string{"A(AAA->BBB)", "B(BBB->CCC)", "C(CCC->DDD)", "D(DDD->EEE)"}
	if len(tr.Legs) != len(want) {
		t.Fatalf("legs: got %d, want %d", len(tr.Legs), len(want))
	}
	for i, w := range want {
		if got := tr.Legs[i].String(); got != w {
			t.Errorf("legs[%d]: got %q, want %q", i, got, w)
		}
	}
}

func TestMatchConflictingRecordFatal(t *testing.T) {
	// Both an exchange rate line two ahead and a transit leg-with-id
	// one ahead: the grammar assumes this never happens, so the record
	// is rejected instead of picking a shape.
	cur := NewCursor([]string{
		"04/07 SUSPICIOUS VENDOR 10.00",
		"123456 1 A JFK LGA",
		"9.00 X 1.11111 (EXCHG RATE)",
	})
	m := &transactionMatcher{years: aprilYears()}
	_, _, err := m.Match(cur)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrConflictingRecord) {
		t.Errorf("error = %v, want ErrConflictingRecord", err)
	}
}

func TestMatchUnresolvedMonthFatal(t *testing.T) {
	cur := NewCursor([]string{"05/01 MAY PURCHASE 10.00"})
	m := &transactionMatcher{years: aprilYears()}
	_, _, err := m.Match(cur)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrUnresolvedMonth) {
		t.Errorf("error = %v, want ErrUnresolvedMonth", err)
	}
}

func TestMatchEscapesDescription(t *testing.T) {
	rec, _ := matchOne(t, aprilYears(), []string{
		"04/05 BAD\x01VENDOR 25.00",
	})
	d := rec.(models.Domestic)
	if d.Description != `BAD\x01VENDOR` {
		t.Errorf("description: got %q, want %q", d.Description, `BAD\x01VENDOR`)
	}
}

func TestMatchAtEndOfInput(t *testing.T) {
	// A domestic record as the very last line: the continuation
	// lookaheads see empty strings, which match nothing.
	rec, cur := matchOne(t, aprilYears(), []string{
		"04/30 FINAL PURCHASE 1.00",
	})
	if _, ok := rec.(models.Domestic); !ok {
		t.Fatalf("record type: got %T, want models.Domestic", rec)
	}
	if got := cur.Remaining(); got != 0 {
		t.Errorf("remaining: got %d, want 0", got)
	}
}
