package parser

// Cursor is a strictly sequential reader over the statement's line
// sequence. Matchers look ahead with Peek and commit with Next, so a
// failed match never consumes input. No line is consumed twice and no
// line is skipped.
type Cursor struct {
	lines []string
	pos   int
}

func NewCursor(lines []string) *Cursor {
	return &Cursor{lines: lines}
}

// Next consumes and returns the next line. The second return value is
// false when the input is exhausted; exhaustion is a normal outcome and
// must be checked at every call site.
func (c *Cursor) Next() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.pos]
	c.pos++
	return line, true
}

// Peek returns the line n positions ahead of the next unconsumed line
// without consuming it. When fewer than n+1 lines remain it returns an
// empty string, never an exhaustion signal, so lookahead can never be
// mistaken for end of input.
func (c *Cursor) Peek(n int) string {
	if c.pos+n >= len(c.lines) {
		return ""
	}
	return c.lines[c.pos+n]
}

// Remaining reports how many lines have not been consumed yet.
func (c *Cursor) Remaining() int {
	return len(c.lines) - c.pos
}
