package modal

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidTransition is returned when a tab switch is not allowed from
// the current state.
var ErrInvalidTransition = errors.New("invalid modal transition")

// transitions lists, for each modal state, the states reachable from it.
// Closing is always allowed from an open tab.
var transitions = map[string][]string{
	StateClosed: {TabContract},
	TabContract: {TabContract, TabProperty, TabLandlord, StateClosed},
	TabProperty: {TabContract, TabProperty, TabLandlord, StateClosed},
	TabLandlord: {TabContract, TabProperty, TabLandlord, StateClosed},
}

func validateTransition(current, target string) error {
	allowed, ok := transitions[current]
	if !ok {
		return fmt.Errorf("unknown current state %q: %w", current, ErrInvalidTransition)
	}
	if !slices.Contains(allowed, target) {
		return fmt.Errorf("from %q to %q: %w", current, target, ErrInvalidTransition)
	}
	return nil
}
