package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/insightdelivered/chase-statement-converter/internal/api"
	"github.com/insightdelivered/chase-statement-converter/internal/config"
	"github.com/insightdelivered/chase-statement-converter/internal/extractor"
	"github.com/insightdelivered/chase-statement-converter/internal/logging"
	"github.com/insightdelivered/chase-statement-converter/internal/parser"
	"github.com/insightdelivered/chase-statement-converter/internal/writer"
)

const version = "1.0.0"

type options struct {
	output    string
	format    string
	delimiter rune
	noHeader  bool
	debug     bool
	log       *zap.Logger
}

func main() {
	outputFlag := flag.String("output", "", "Output file path ('-' for stdout; defaults to input filename with .tsv/.csv extension)")
	formatFlag := flag.String("format", "tsv", "Output format: tsv or csv")
	noHeaderFlag := flag.Bool("no-header", false, "Do not write a header row that describes each column")
	debugFlag := flag.Bool("debug", false, "Print every classified line with its parser state, and omit the header row")
	serveFlag := flag.Bool("serve", false, "Run the HTTP conversion API instead of converting files")
	addrFlag := flag.String("addr", "", "Listen address for --serve (defaults to :$PORT)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Chase Credit Card Statement PDF Converter

Extracts transaction records from a Chase credit card statement PDF and
writes them to a tab-separated-values (TSV) or CSV file.

Usage:
  chase-statement-converter [flags] <input.pdf> [input2.pdf ...]
  chase-statement-converter --serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert to statement.tsv
  chase-statement-converter statement.pdf

  # Write CSV to stdout
  chase-statement-converter --format=csv --output=- statement.pdf

  # Convert multiple files
  chase-statement-converter jan.pdf feb.pdf mar.pdf

  # Run the upload API on :8080
  chase-statement-converter --serve

NOTE: This program was designed for and tested with Chase Sapphire
credit card statements. Some aspects may not work for other Chase
credit cards.
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("chase-statement-converter v%s\n", version)
		os.Exit(0)
	}

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	defer logger.Sync()

	if *serveFlag {
		addr := *addrFlag
		if addr == "" {
			addr = ":" + strconv.Itoa(cfg.Port)
		}
		app := api.NewApp(logger, cfg.MaxUploadMB)
		logger.Info("listening", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	opts := options{
		output:   *outputFlag,
		format:   strings.ToLower(*formatFlag),
		noHeader: *noHeaderFlag,
		debug:    *debugFlag,
		log:      logger,
	}
	switch opts.format {
	case "tsv":
		opts.delimiter = '\t'
	case "csv":
		opts.delimiter = ','
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q. Supported: tsv, csv\n", *formatFlag)
		os.Exit(1)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(inputPath string, opts options) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	lines, err := extractor.ExtractLines(inputPath)
	if err != nil {
		return fmt.Errorf("PDF extraction failed: %w", err)
	}
	opts.log.Debug("extracted statement text",
		zap.String("input", inputPath),
		zap.Int("lines", len(lines)),
	)

	out, outPath, err := openOutput(inputPath, opts)
	if err != nil {
		return err
	}
	if out != os.Stdout {
		defer out.Close()
	}

	count, err := convert(lines, out, opts)
	if err != nil {
		if isParseError(err) {
			return fmt.Errorf("statement does not match the expected grammar: %w", err)
		}
		return err
	}

	opts.log.Info("converted",
		zap.String("input", inputPath),
		zap.String("output", outPath),
		zap.Int("records", count),
	)
	if count == 0 && !opts.debug {
		opts.log.Warn("no transaction records found; the statement layout may not match expected patterns",
			zap.String("input", inputPath),
		)
	}
	return nil
}

func openOutput(inputPath string, opts options) (*os.File, string, error) {
	if opts.output == "-" {
		return os.Stdout, "-", nil
	}
	outPath := opts.output
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + opts.format
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create output file %q: %w", outPath, err)
	}
	return f, outPath, nil
}

// convert runs the classification loop over the extracted lines and
// writes to out, returning the number of transaction records.
func convert(lines []string, out *os.File, opts options) (int, error) {
	machine := parser.NewMachine(lines)

	if opts.debug {
		sink := writer.NewDebugSink(out, opts.delimiter)
		if err := machine.Run(sink); err != nil {
			return 0, err
		}
		return 0, sink.Flush()
	}

	sink, err := writer.NewRecordSink(out, opts.delimiter, !opts.noHeader)
	if err != nil {
		return 0, err
	}
	if err := machine.Run(sink); err != nil {
		return 0, err
	}
	return sink.Count(), sink.Flush()
}

func isParseError(err error) bool {
	return errors.Is(err, parser.ErrMissingPeriod) ||
		errors.Is(err, parser.ErrAmbiguousForeign) ||
		errors.Is(err, parser.ErrUnresolvedMonth) ||
		errors.Is(err, parser.ErrConflictingRecord)
}
