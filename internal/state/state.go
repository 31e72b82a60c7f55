// Package state defines the states of a multi-step distro workflow, such as
// a rename or an install under a custom name.
package state

import "fmt"

// State is the progress of a workflow built on export, import and unregister.
type State int

// The states a workflow goes through, in order. Failed is reachable from
// every non-terminal state.
const (
	Start State = iota
	Exported
	Imported
	OriginalRemoved
	Done
	Failed
)

// NewFromString parses the name of a state as returned by String
// and returns its `State` enum value.
func NewFromString(s string) (State, error) {
	switch s {
	case "Start":
		return Start, nil
	case "Exported":
		return Exported, nil
	case "Imported":
		return Imported, nil
	case "OriginalRemoved":
		return OriginalRemoved, nil
	case "Done":
		return Done, nil
	case "Failed":
		return Failed, nil
	}

	return Failed, fmt.Errorf("could not parse state %q", s)
}

func (s State) String() string {
	switch s {
	case Start:
		return "Start"
	case Exported:
		return "Exported"
	case Imported:
		return "Imported"
	case OriginalRemoved:
		return "OriginalRemoved"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	}

	return fmt.Sprintf("Unknown state %d", s)
}

// Terminal returns true for the states a workflow cannot leave.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// Next returns the state that follows s on the success path.
func (s State) Next() (State, error) {
	switch s {
	case Start, Exported, Imported, OriginalRemoved:
		return s + 1, nil
	}
	return s, fmt.Errorf("state %s has no successor", s)
}

// Machine tracks the current state of one workflow and rejects illegal transitions.
type Machine struct {
	current State
}

// Current returns the state the machine is in.
func (m Machine) Current() State {
	return m.current
}

// Advance moves the machine to the state that follows the current one.
func (m *Machine) Advance() (State, error) {
	next, err := m.current.Next()
	if err != nil {
		return m.current, err
	}
	m.current = next
	return next, nil
}

// Fail moves the machine to Failed. It returns the state it failed from.
func (m *Machine) Fail() (State, error) {
	if m.current.Terminal() {
		return m.current, fmt.Errorf("cannot fail from terminal state %s", m.current)
	}
	from := m.current
	m.current = Failed
	return from, nil
}
