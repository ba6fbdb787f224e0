package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/insightdelivered/chase-statement-converter/internal/models"
	"github.com/insightdelivered/chase-statement-converter/internal/parser"
)

// Columns is the fixed positional field layout every record maps to.
// Domestic records populate the first four columns, foreign records
// additionally the four exchange columns, transit records additionally
// the last two.
var Columns = []string{
	"Transaction Type",
	"Transaction Date",
	"Transaction Description",
	"Amount [Domestic Currency]",
	"Currency Exchange Date",
	"Foreign Currency",
	"Amount [Foreign Currency]",
	"Currency Exchange Rate [Foreign Currency/Domestic Currency]",
	"Transit ID",
	"Transit Legs",
}

// Row renders a record into the Columns layout. Unused columns are
// empty strings.
func Row(rec models.Record) []string {
	row := make([]string, len(Columns))
	switch r := rec.(type) {
	case models.Domestic:
		row[0] = string(r.Type())
		row[1] = r.Date.String()
		row[2] = r.Description
		row[3] = formatAmount(r.Amount)
	case models.Foreign:
		row[0] = string(r.Type())
		row[1] = r.Date.String()
		row[2] = r.Description
		row[3] = formatAmount(r.Amount)
		row[4] = r.ExchangeDate.String()
		row[5] = r.ExchangeCurrency
		row[6] = formatAmount(r.ExchangeAmount)
		row[7] = formatRate(r.ExchangeRate)
	case models.Transit:
		row[0] = string(r.Type())
		row[1] = r.Date.String()
		row[2] = r.Description
		row[3] = formatAmount(r.Amount)
		row[8] = fmt.Sprintf("%06d", r.TransitID)
		row[9] = formatLegs(r.Legs)
	}
	return row
}

// RecordSink writes transaction records as delimited rows and ignores
// every other step kind. It implements parser.Sink.
type RecordSink struct {
	w     *csv.Writer
	count int
}

// NewRecordSink writes rows to out with the given delimiter ('\t' for
// TSV, ',' for CSV). When header is true a column-description row is
// written up front.
func NewRecordSink(out io.Writer, delimiter rune, header bool) (*RecordSink, error) {
	w := csv.NewWriter(out)
	w.Comma = delimiter
	if header {
		if err := w.Write(Columns); err != nil {
			return nil, fmt.Errorf("failed to write header row: %w", err)
		}
	}
	return &RecordSink{w: w}, nil
}

func (s *RecordSink) Emit(step parser.Step) error {
	if step.Kind != parser.StepRecord {
		return nil
	}
	if err := s.w.Write(Row(step.Record)); err != nil {
		return fmt.Errorf("failed to write record row: %w", err)
	}
	s.count++
	return nil
}

// Count reports how many record rows have been emitted.
func (s *RecordSink) Count() int {
	return s.count
}

// Flush writes any buffered rows to the underlying writer.
func (s *RecordSink) Flush() error {
	s.w.Flush()
	return s.w.Error()
}

// DebugSink writes one row per classified step, including period,
// header and noise lines, prefixed with the machine state and step
// kind. Used by the CLI's --debug mode to diagnose classification.
type DebugSink struct {
	w *csv.Writer
}

func NewDebugSink(out io.Writer, delimiter rune) *DebugSink {
	w := csv.NewWriter(out)
	w.Comma = delimiter
	return &DebugSink{w: w}
}

func (s *DebugSink) Emit(step parser.Step) error {
	row := []string{step.State.String(), step.Kind.String()}
	switch step.Kind {
	case parser.StepPeriod:
		row = append(row, step.Period.String())
	case parser.StepHeader:
		row = append(row, step.Header)
	case parser.StepRecord:
		row = append(row, Row(step.Record)...)
	case parser.StepNoise:
		row = append(row, step.Line)
	}
	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("failed to write debug row: %w", err)
	}
	return nil
}

func (s *DebugSink) Flush() error {
	s.w.Flush()
	return s.w.Error()
}

// WriteToFile runs a fresh parse of lines and writes the record rows
// to a file at path.
func WriteToFile(path string, lines []string, delimiter rune, header bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	sink, err := NewRecordSink(f, delimiter, header)
	if err != nil {
		return err
	}
	if err := parser.NewMachine(lines).Run(sink); err != nil {
		return err
	}
	return sink.Flush()
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// formatRate keeps the six decimal places exchange rates are printed
// with on the statement.
func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 6, 64)
}

func formatLegs(legs []models.TransitLeg) string {
	parts := make([]string, len(legs))
	for i, leg := range legs {
		parts[i] = leg.String()
	}
	return strings.Join(parts, " ")
}
