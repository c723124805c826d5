package recipe

import (
	"fmt"
	"regexp"
	"strings"

	"hearthside/cookbook/pkg/cookbook/errors"
)

// Step line format: `ID. (quantities) action; details`
// Capture groups: id, quantities, action, details.
var stepPattern = regexp.MustCompile(`^(?:([0-9]+)\.)? *(?:\(([^)]+)\))? *([^;]+)? *(?:; *(.*))?`)

// Step is one parsed step line. Unlike an ingredient id, the numeric
// prefix is optional in the grammar, so "missing step id" is a reachable
// validation failure rather than a pattern mismatch.
type Step struct {
	// ID is the numeric label, without the trailing period ("1", "12")
	ID string

	// Quantities is the parenthesized ingredient reference text ("A, B").
	// It is kept verbatim as a single opaque string; splitting it into
	// individual references is left to the reader.
	Quantities string

	// Action is the instruction text, verbatim up to the first semicolon
	Action string

	// Details is the free text after the first semicolon; empty when absent
	Details string
}

// ParseStep parses one step line of the form `ID. (quantities) action;
// details`. The id and action are required; quantities and details are
// optional.
func ParseStep(line string) (*Step, error) {
	m := stepPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, &errors.StepError{Message: "invalid step definition", Line: line}
	}

	step := &Step{
		ID:         m[1],
		Quantities: m[2],
		Action:     m[3],
		Details:    m[4],
	}

	if step.ID == "" {
		return nil, &errors.StepError{Message: "missing step id", Line: line}
	}
	if strings.TrimSpace(step.Action) == "" {
		return nil, &errors.StepError{Message: "missing step action", Line: line}
	}

	return step, nil
}

// String serializes the step back to its source line format. The
// `(quantities) ` segment reproduces the parenthesized text verbatim and
// is omitted entirely when no quantities were given, as is the
// `; details` tail.
func (s *Step) String() string {
	quantities := ""
	if s.Quantities != "" {
		quantities = fmt.Sprintf("(%s) ", s.Quantities)
	}
	details := ""
	if s.Details != "" {
		details = fmt.Sprintf("; %s", s.Details)
	}
	return fmt.Sprintf("%s. %s%s%s", s.ID, quantities, s.Action, details)
}
