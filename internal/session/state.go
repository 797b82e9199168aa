package session

import "fmt"

// State is the lifecycle state of an interactive session.
type State string

const (
	StateAwaitingCredentials State = "AWAITING_CREDENTIALS"
	StateMenuLoop            State = "MENU_LOOP"
	StateTerminated          State = "TERMINATED"
)

// IsTerminal reports whether no further input will be read.
func IsTerminal(s State) bool {
	return s == StateTerminated
}

// Transition moves *cur from -> to. The caller supplies the expected prior
// state; *cur is changed if and only if the transition is valid.
func Transition(cur *State, from, to State) error {
	if cur == nil {
		return fmt.Errorf("nil state")
	}
	if *cur != from {
		return fmt.Errorf("invalid transition: expected %s, got %s", from, *cur)
	}
	if !isAllowedTransition(from, to) {
		return fmt.Errorf("disallowed transition: %s -> %s", from, to)
	}
	*cur = to
	return nil
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case StateAwaitingCredentials:
		return to == StateMenuLoop || to == StateTerminated
	case StateMenuLoop:
		return to == StateTerminated
	default:
		return false
	}
}
