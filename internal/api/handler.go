package api

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/insightdelivered/chase-statement-converter/internal/extractor"
	"github.com/insightdelivered/chase-statement-converter/internal/models"
	"github.com/insightdelivered/chase-statement-converter/internal/parser"
	"github.com/insightdelivered/chase-statement-converter/internal/writer"
)

// Version of the HTTP API surface.
const Version = "1.0.0"

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
	Period    string         `json:"period,omitempty"`
	Records   []RecordJSON   `json:"records"`
	Output    string         `json:"output,omitempty"` // rendered delimited text
	Count     int            `json:"count"`
	Counts    map[string]int `json:"counts,omitempty"` // per record type
	Version   string         `json:"version,omitempty"`
}

// RecordJSON is the flattened JSON shape of one transaction record.
// Exchange and transit fields are populated only for their record
// types.
type RecordJSON struct {
	Type             string  `json:"type"`
	Date             string  `json:"date"`
	Description      string  `json:"description"`
	Amount           float64 `json:"amount"`
	ExchangeDate     string  `json:"exchangeDate,omitempty"`
	ExchangeCurrency string  `json:"exchangeCurrency,omitempty"`
	ExchangeAmount   float64 `json:"exchangeAmount,omitempty"`
	ExchangeRate     float64 `json:"exchangeRate,omitempty"`
	TransitID        string  `json:"transitId,omitempty"`
	TransitLegs      string  `json:"transitLegs,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Log *zap.Logger
}

// Register sets up the HTTP routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleConvert accepts a multipart statement PDF upload and responds
// with the classified records plus the rendered delimited output.
// Optional form values: format (tsv|csv, default tsv) and header
// (false to omit the column header row).
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	delimiter := '\t'
	switch strings.ToLower(c.FormValue("format", "tsv")) {
	case "tsv":
	case "csv":
		delimiter = ','
	default:
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown format %q. Use tsv or csv.", c.FormValue("format")))
	}
	includeHeader := c.FormValue("header") != "false"

	tmpFile, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	lines, err := extractor.ExtractLines(tmpPath)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
	}

	var buf bytes.Buffer
	rows, err := writer.NewRecordSink(&buf, delimiter, includeHeader)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	sink := &captureSink{rows: rows}

	if err := parser.NewMachine(lines).Run(sink); err != nil {
		status := fiber.StatusUnprocessableEntity
		if !isParseError(err) {
			status = fiber.StatusInternalServerError
		}
		h.Log.Warn("statement parse failed",
			zap.String("file", fileHeader.Filename),
			zap.Error(err),
		)
		return writeError(c, status, fmt.Sprintf("Parsing failed: %v", err))
	}
	if err := rows.Flush(); err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	records := sink.records
	if records == nil {
		// nil marshals to JSON null, not []
		records = []RecordJSON{}
	}

	counts := map[string]int{}
	for _, rec := range records {
		counts[rec.Type]++
	}

	h.Log.Info("statement converted",
		zap.String("file", fileHeader.Filename),
		zap.Int("lines", len(lines)),
		zap.Int("records", len(records)),
	)

	return c.JSON(ConvertResponse{
		Success:   true,
		RequestID: requestID(c),
		Period:    sink.period,
		Records:   records,
		Output:    buf.String(),
		Count:     len(records),
		Counts:    counts,
		Version:   Version,
	})
}

// captureSink forwards record steps to the delimited sink while
// collecting the JSON shapes and the statement period.
type captureSink struct {
	rows    *writer.RecordSink
	records []RecordJSON
	period  string
}

func (s *captureSink) Emit(step parser.Step) error {
	switch step.Kind {
	case parser.StepPeriod:
		s.period = step.Period.String()
	case parser.StepRecord:
		s.records = append(s.records, toJSON(step.Record))
	}
	return s.rows.Emit(step)
}

func toJSON(rec models.Record) RecordJSON {
	switch r := rec.(type) {
	case models.Domestic:
		return RecordJSON{
			Type:        string(r.Type()),
			Date:        r.Date.String(),
			Description: r.Description,
			Amount:      r.Amount,
		}
	case models.Foreign:
		return RecordJSON{
			Type:             string(r.Type()),
			Date:             r.Date.String(),
			Description:      r.Description,
			Amount:           r.Amount,
			ExchangeDate:     r.ExchangeDate.String(),
			ExchangeCurrency: r.ExchangeCurrency,
			ExchangeAmount:   r.ExchangeAmount,
			ExchangeRate:     r.ExchangeRate,
		}
	case models.Transit:
		legs := make([]string, len(r.Legs))
		for i, leg := range r.Legs {
			legs[i] = leg.String()
		}
		return RecordJSON{
			Type:        string(r.Type()),
			Date:        r.Date.String(),
			Description: r.Description,
			Amount:      r.Amount,
			TransitID:   fmt.Sprintf("%06d", r.TransitID),
			TransitLegs: strings.Join(legs, " "),
		}
	default:
		return RecordJSON{Type: string(rec.Type())}
	}
}

func isParseError(err error) bool {
	return errors.Is(err, parser.ErrMissingPeriod) ||
		errors.Is(err, parser.ErrAmbiguousForeign) ||
		errors.Is(err, parser.ErrUnresolvedMonth) ||
		errors.Is(err, parser.ErrConflictingRecord)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:   false,
		Error:     msg,
		RequestID: requestID(c),
		Records:   []RecordJSON{},
	})
}
