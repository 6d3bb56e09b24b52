package types

import (
	"regexp"
	"strconv"
	"strings"
)

// Adjustment actions accepted by the inventory API.
const (
	ActionIncrement = "increment"
	ActionDecrement = "decrement"
	ActionUpdate    = "update"
)

// quantityPattern matches a leading digit run, optional whitespace, and
// an arbitrary trailing unit text ("3 Box" -> 3, "Box").
var quantityPattern = regexp.MustCompile(`^(\d+)\s*(.*)$`)

// Quantity is the parsed form of a quantity string: a numeric amount
// plus an optional free-text unit suffix. It exists only between
// parsing and re-rendering; the JSON document stores the combined
// string.
type Quantity struct {
	Amount int
	Unit   string
}

// ParseQuantity interprets a quantity string. It reports false when the
// trimmed input does not start with a digit run (including empty
// input), in which case the quantity is not adjustable.
func ParseQuantity(s string) (Quantity, bool) {
	m := quantityPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Quantity{}, false
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		// Digit run too large for int; treat like a non-numeric string.
		return Quantity{}, false
	}
	return Quantity{Amount: amount, Unit: strings.TrimSpace(m[2])}, true
}

// Apply adjusts the amount for the given action. Increment always adds
// one. Decrement subtracts one only while the amount is positive, so
// quantities floor at zero and never go negative. Any other action
// leaves the amount untouched.
func (q Quantity) Apply(action string) Quantity {
	switch action {
	case ActionIncrement:
		q.Amount++
	case ActionDecrement:
		if q.Amount > 0 {
			q.Amount--
		}
	}
	return q
}

// String renders the quantity back to its stored form: "<amount> <unit>"
// when a unit is present, otherwise just the number. Whitespace between
// number and unit is normalized to a single space.
func (q Quantity) String() string {
	if q.Unit != "" {
		return strconv.Itoa(q.Amount) + " " + q.Unit
	}
	return strconv.Itoa(q.Amount)
}

// AdjustQuantity applies an increment/decrement action to a stored
// quantity string, preserving any unit suffix. Empty input and strings
// with no leading digits collapse to "0" regardless of action; this
// mirrors the historical behavior and is flagged for product review
// rather than changed here. Unrecognized actions re-render the current
// value unchanged.
func AdjustQuantity(current, action string) string {
	if strings.TrimSpace(current) == "" {
		return "0"
	}
	q, ok := ParseQuantity(current)
	if !ok {
		return "0"
	}
	return q.Apply(action).String()
}
