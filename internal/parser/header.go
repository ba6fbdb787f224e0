package parser

// The transaction block header is a fixed two-line literal marking the
// start of a run of transaction record lines. Plain string comparison,
// no regex needed.
const (
	headerLine1 = "Date of"
	headerLine2 = "Transaction Merchant Name or Transaction Description $ Amount"
)

// matchHeader matches the two-line transaction header. Both lines are
// checked via lookahead before anything is consumed. On success it
// consumes both lines and returns them joined with a literal "\n"
// marker for diagnostic output.
func matchHeader(cur *Cursor) (string, bool) {
	if cur.Peek(0) != headerLine1 || cur.Peek(1) != headerLine2 {
		return "", false
	}
	first, _ := cur.Next()
	second, _ := cur.Next()
	return first + `\n` + second, true
}
