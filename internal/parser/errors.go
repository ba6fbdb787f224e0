package parser

import "errors"

// Fatal parse conditions. A malformed or unsupported statement fails
// loudly instead of emitting silently incomplete data; there is no
// retry and no partial-output recovery. Callers test with errors.Is.
var (
	// ErrMissingPeriod: the input ended before an Opening/Closing Date
	// line was found. Without the period there are no month-to-year
	// anchors and transaction dates cannot be completed.
	ErrMissingPeriod = errors.New("no statement period line found before end of input")

	// ErrAmbiguousForeign: the third line of a suspected foreign
	// transaction record matched the exchange rate calculation pattern
	// but the second line failed the exchange date and currency
	// pattern. Falling back to domestic would truncate data.
	ErrAmbiguousForeign = errors.New("exchange rate line present but exchange date line does not match")

	// ErrUnresolvedMonth: a transaction month has no entry in the
	// month-to-year table. Happens when a statement spans more than the
	// two months anchored by the period; never guessed.
	ErrUnresolvedMonth = errors.New("transaction month not covered by the statement period")

	// ErrConflictingRecord: the lines after a transaction lead line
	// match both the foreign and the transit continuation shapes. The
	// format is assumed to never produce such a record, so it is
	// rejected instead of picking one interpretation.
	ErrConflictingRecord = errors.New("transaction record matches both foreign and transit shapes")
)
