package extractor

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractLines reads a statement PDF and returns its text as an
// ordered sequence of UTF-8 lines, in original order, with no lines
// dropped. The primary method is `pdftotext -raw`, whose reading-order
// output is what the statement line grammar is written against. If
// pdftotext is unavailable or yields unreadable text, the pdf library
// is tried instead, gated by the same readability check.
func ExtractLines(filePath string) ([]string, error) {
	lines, rawErr := extractWithPdftotext(filePath)
	if rawErr == nil && isReadableText(lines) {
		return lines, nil
	}

	lines, libErr := extractWithLibrary(filePath)
	if libErr == nil && isReadableText(lines) {
		return lines, nil
	}

	// Never hand garbage text to the parser.
	if rawErr != nil && libErr != nil {
		return nil, fmt.Errorf("PDF text extraction failed: pdftotext: %v; pdf library: %v", rawErr, libErr)
	}
	return nil, fmt.Errorf("no readable text could be extracted from %q; the file may be image-based/scanned or use font encodings that cannot be decoded", filePath)
}

// extractWithPdftotext runs the external pdftotext command from
// poppler-utils in raw mode, writing to stdout.
func extractWithPdftotext(filePath string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %v", err)
	}

	out, err := exec.Command("pdftotext", "-raw", filePath, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %v", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("pdftotext produced no output")
	}

	return strings.Split(string(out), "\n"), nil
}

// extractWithLibrary uses the ledongthuc/pdf library, reconstructing
// reading order from the per-row text content of each page.
func extractWithLibrary(filePath string) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("pdf library extracted no text")
	}
	return lines, nil
}
