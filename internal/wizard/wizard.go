// Package wizard is the authoritative transition table for the multi-step
// analysis flow. The web client renders the steps; this package decides
// which step may follow which.
package wizard

import "fmt"

type Step string

const (
	StepInput   Step = "input"
	StepProfile Step = "profile"
	StepPrompts Step = "prompts"
	StepTesting Step = "testing"
	StepResults Step = "results"
)

// transitions lists the steps reachable from each step. Every step can
// restart from the beginning; testing aborts back to input rather than
// to an intermediate step.
var transitions = map[Step][]Step{
	StepInput:   {StepProfile},
	StepProfile: {StepPrompts, StepInput},
	StepPrompts: {StepTesting, StepProfile, StepInput},
	StepTesting: {StepResults, StepInput},
	StepResults: {StepInput},
}

type Machine struct {
	current Step
}

func NewMachine() *Machine {
	return &Machine{current: StepInput}
}

func (m *Machine) Current() Step {
	return m.current
}

// Transition moves to the target step when the current step allows it.
func (m *Machine) Transition(target Step) error {
	for _, allowed := range transitions[m.current] {
		if allowed == target {
			m.current = target
			return nil
		}
	}
	return fmt.Errorf("cannot transition from %s to %s", m.current, target)
}

// Reset returns the machine to the input step from anywhere.
func (m *Machine) Reset() {
	m.current = StepInput
}

// IsValid reports whether the step is one of the known wizard steps.
func IsValid(step Step) bool {
	_, ok := transitions[step]
	return ok
}
