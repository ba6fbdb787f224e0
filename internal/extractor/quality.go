package extractor

import (
	"strings"
	"unicode"
)

// textQuality returns the ratio of basic ASCII readable characters
// (a-z, A-Z, 0-9, common punctuation, whitespace) to total characters.
// Uses a strict ASCII check — unicode.IsLetter is too broad and
// matches accented characters that appear in garbage from
// identity-encoded fonts.
func textQuality(lines []string) float64 {
	total := 0
	readable := 0
	for _, line := range lines {
		for _, r := range line {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				r == '.' || r == ',' || r == '-' || r == '/' || r == ':' ||
				r == ';' || r == '(' || r == ')' || r == '\'' || r == '"' ||
				r == '$' || r == '%' || r == '&' || r == '@' || r == '#' ||
				r == '!' || r == '?' || r == '+' || r == '=' || r == '*' {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords that appear in virtually all credit card statements. If
// the extracted text contains none of these, it's likely garbage.
var commonWords = []string{
	"account", "balance", "date", "payment", "statement", "total",
	"amount", "credit", "transaction", "opening", "closing", "purchase",
	"interest", "minimum", "due", "page", "period",
}

func containsCommonWords(lines []string) bool {
	combined := strings.ToLower(strings.Join(lines, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// isReadableText checks that the lines contain enough text, that it's
// actually readable (not binary garbage), and that it contains
// recognizable statement vocabulary.
func isReadableText(lines []string) bool {
	if totalTextLen(lines) <= 50 {
		return false
	}
	if textQuality(lines) <= 0.6 {
		return false
	}
	return containsCommonWords(lines)
}

func totalTextLen(lines []string) int {
	n := 0
	for _, line := range lines {
		n += len(strings.TrimSpace(line))
	}
	return n
}
