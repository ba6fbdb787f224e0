package parser

import (
	"fmt"

	"github.com/insightdelivered/chase-statement-converter/internal/models"
)

// State is the record state machine's position in the statement.
type State int

const (
	// StateMetaData: looking for the statement period line.
	StateMetaData State = iota
	// StateNonTransaction: looking for a transaction block header.
	StateNonTransaction
	// StatePreTransaction: header seen, looking for the first
	// transaction record. Noise is tolerated here because a page break
	// can separate a header from its records.
	StatePreTransaction
	// StateTransaction: inside a run of transaction records.
	StateTransaction
)

func (s State) String() string {
	switch s {
	case StateMetaData:
		return "meta-data"
	case StateNonTransaction:
		return "non-transaction"
	case StatePreTransaction:
		return "pre-transaction"
	case StateTransaction:
		return "transaction"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// StepKind discriminates what a state machine step classified.
type StepKind int

const (
	StepPeriod StepKind = iota
	StepHeader
	StepRecord
	StepNoise
)

func (k StepKind) String() string {
	switch k {
	case StepPeriod:
		return "period"
	case StepHeader:
		return "header"
	case StepRecord:
		return "record"
	case StepNoise:
		return "noise"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Step is the classification result of one state machine step. Exactly
// one of Period, Header, Record or Line is populated, per Kind. State
// is the machine state the classification happened in.
type Step struct {
	State  State
	Kind   StepKind
	Period models.Period // StepPeriod
	Header string        // StepHeader
	Record models.Record // StepRecord
	Line   string        // StepNoise, control characters escaped
}

// Sink receives each classified step exactly once, in emission order.
// The machine places no constraint on how steps are rendered or
// stored; sinks are free to drop the kinds they do not care about.
type Sink interface {
	Emit(Step) error
}

// Machine runs the per-line classification loop over a statement's
// line sequence. It owns the cursor and the month-to-year table and is
// the only component that consumes lines from the application's
// perspective.
type Machine struct {
	cur   *Cursor
	years MonthYears
	txn   *transactionMatcher
	state State
}

func NewMachine(lines []string) *Machine {
	years := MonthYears{}
	return &Machine{
		cur:   NewCursor(lines),
		years: years,
		txn:   &transactionMatcher{years: years},
		state: StateMetaData,
	}
}

// State returns the machine's current state.
func (m *Machine) State() State {
	return m.state
}

// Next classifies input until it can report one step. It returns false
// when the input is exhausted, the only normal termination. Every step
// consumes at least one line; the sole no-consume path, a failed
// record match in StateTransaction, switches to StateNonTransaction
// and re-dispatches on the same line, so the machine never stalls and
// every line is classified exactly once.
func (m *Machine) Next() (Step, bool, error) {
	for {
		switch m.state {
		case StateMetaData:
			if m.cur.Remaining() == 0 {
				// The period is mandatory meta-data; without it no
				// transaction date can be completed.
				return Step{}, false, ErrMissingPeriod
			}
			p, ok, err := matchPeriod(m.cur)
			if err != nil {
				return Step{}, false, err
			}
			if ok {
				m.years.RegisterPeriod(p)
				m.state = StateNonTransaction
				return Step{State: StateMetaData, Kind: StepPeriod, Period: p}, true, nil
			}
			return m.noise(StateMetaData), true, nil

		case StateNonTransaction:
			if m.cur.Remaining() == 0 {
				return Step{}, false, nil
			}
			if h, ok := matchHeader(m.cur); ok {
				m.state = StatePreTransaction
				return Step{State: StateNonTransaction, Kind: StepHeader, Header: h}, true, nil
			}
			return m.noise(StateNonTransaction), true, nil

		case StatePreTransaction:
			if m.cur.Remaining() == 0 {
				return Step{}, false, nil
			}
			rec, ok, err := m.txn.Match(m.cur)
			if err != nil {
				return Step{}, false, err
			}
			if ok {
				m.state = StateTransaction
				return Step{State: StatePreTransaction, Kind: StepRecord, Record: rec}, true, nil
			}
			return m.noise(StatePreTransaction), true, nil

		case StateTransaction:
			if m.cur.Remaining() == 0 {
				return Step{}, false, nil
			}
			rec, ok, err := m.txn.Match(m.cur)
			if err != nil {
				return Step{}, false, err
			}
			if ok {
				return Step{State: StateTransaction, Kind: StepRecord, Record: rec}, true, nil
			}
			// The line is not consumed; it is re-evaluated as
			// non-transaction data on the next dispatch.
			m.state = StateNonTransaction

		default:
			return Step{}, false, fmt.Errorf("invalid parser state %d", int(m.state))
		}
	}
}

func (m *Machine) noise(s State) Step {
	line, _ := m.cur.Next()
	return Step{State: s, Kind: StepNoise, Line: escapeControl(line)}
}

// Run drives the machine to exhaustion, forwarding every step to sink.
func (m *Machine) Run(sink Sink) error {
	for {
		step, ok, err := m.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := sink.Emit(step); err != nil {
			return fmt.Errorf("sink rejected %s step: %w", step.Kind, err)
		}
	}
}
