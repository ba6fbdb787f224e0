package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// controlCharPattern matches C0 and C1 control characters plus DEL,
// the code points that would corrupt delimited output if written raw.
var controlCharPattern = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)

// escapeControl renders every control character in s as a \xHH escape
// sequence. Applied to descriptions, exchange currencies and
// non-transaction lines, all of which are taken verbatim from the
// document text.
func escapeControl(s string) string {
	return controlCharPattern.ReplaceAllStringFunc(s, func(match string) string {
		r := []rune(match)[0]
		return fmt.Sprintf(`\x%02x`, r)
	})
}

// parseAmount converts a string like "1,234.56" or "-25.00" to a
// float64. The grammar guarantees at most thousands separators and an
// optional leading minus.
func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
