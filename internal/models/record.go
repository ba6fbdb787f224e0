package models

// RecordType identifies a transaction record shape.
type RecordType string

const (
	RecordDomestic RecordType = "DOMESTIC"
	RecordTransit  RecordType = "TRANSIT"
	RecordForeign  RecordType = "FOREIGN"
)

// Record is a classified transaction record. Exactly three types
// implement it: Domestic, Foreign and Transit. The shapes are
// alternative interpretations of the same lead line, not refinements
// of each other, so each variant carries its own complete field set.
type Record interface {
	Type() RecordType
}

// Domestic is a single-line transaction record.
type Domestic struct {
	Date        MonthDayYear `json:"date"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"` // domestic currency
}

func (Domestic) Type() RecordType { return RecordDomestic }

// Foreign is a three-line transaction record carrying a currency
// exchange calculation alongside the domestic-currency amount.
type Foreign struct {
	Date             MonthDayYear `json:"date"`
	Description      string       `json:"description"`
	Amount           float64      `json:"amount"`
	ExchangeDate     MonthDayYear `json:"exchangeDate"`
	ExchangeCurrency string       `json:"exchangeCurrency"`
	ExchangeAmount   float64      `json:"exchangeAmount"` // in ExchangeCurrency
	ExchangeRate     float64      `json:"exchangeRate"`
}

func (Foreign) Type() RecordType { return RecordForeign }

// Transit is a transaction record of two or more lines describing a
// trip. TransitID is a six-digit identifier printed before the first
// leg; its meaning is not documented by the statement format. Legs are
// ordered by trip sequence and never empty.
type Transit struct {
	Date        MonthDayYear `json:"date"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	TransitID   int          `json:"transitId"`
	Legs        []TransitLeg `json:"legs"`
}

func (Transit) Type() RecordType { return RecordTransit }
