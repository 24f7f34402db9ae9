package wizard_test

import (
	"testing"

	"github.com/brandlens/visibility-workflows/internal/wizard"
)

func TestTransitions(t *testing.T) {
	tests := []struct {
		name      string
		from      wizard.Step
		to        wizard.Step
		expectErr bool
	}{
		{"input to profile", wizard.StepInput, wizard.StepProfile, false},
		{"profile to prompts", wizard.StepProfile, wizard.StepPrompts, false},
		{"prompts to testing", wizard.StepPrompts, wizard.StepTesting, false},
		{"testing to results", wizard.StepTesting, wizard.StepResults, false},
		{"results restart", wizard.StepResults, wizard.StepInput, false},
		{"profile back to input", wizard.StepProfile, wizard.StepInput, false},
		{"prompts back to profile", wizard.StepPrompts, wizard.StepProfile, false},
		{"testing abort to input", wizard.StepTesting, wizard.StepInput, false},
		{"input cannot skip to testing", wizard.StepInput, wizard.StepTesting, true},
		{"input cannot skip to results", wizard.StepInput, wizard.StepResults, true},
		{"testing cannot return to prompts", wizard.StepTesting, wizard.StepPrompts, true},
		{"results cannot revisit testing", wizard.StepResults, wizard.StepTesting, true},
		{"no self transition", wizard.StepProfile, wizard.StepProfile, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := machineAt(t, tt.from)

			err := m.Transition(tt.to)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Transition(%s -> %s) succeeded, want error", tt.from, tt.to)
				}
				if m.Current() != tt.from {
					t.Errorf("failed transition moved state to %s", m.Current())
				}
				return
			}
			if err != nil {
				t.Errorf("Transition(%s -> %s) error: %v", tt.from, tt.to, err)
			}
			if m.Current() != tt.to {
				t.Errorf("Current() = %s, want %s", m.Current(), tt.to)
			}
		})
	}
}

func TestReset(t *testing.T) {
	m := machineAt(t, wizard.StepTesting)

	m.Reset()
	if m.Current() != wizard.StepInput {
		t.Errorf("Current() after Reset = %s, want %s", m.Current(), wizard.StepInput)
	}
}

func TestIsValid(t *testing.T) {
	for _, step := range []wizard.Step{wizard.StepInput, wizard.StepProfile, wizard.StepPrompts, wizard.StepTesting, wizard.StepResults} {
		if !wizard.IsValid(step) {
			t.Errorf("IsValid(%s) = false", step)
		}
	}
	if wizard.IsValid(wizard.Step("checkout")) {
		t.Error("IsValid(checkout) = true")
	}
}

// machineAt walks a fresh machine forward to the requested step
func machineAt(t *testing.T, target wizard.Step) *wizard.Machine {
	t.Helper()

	m := wizard.NewMachine()
	path := map[wizard.Step][]wizard.Step{
		wizard.StepInput:   {},
		wizard.StepProfile: {wizard.StepProfile},
		wizard.StepPrompts: {wizard.StepProfile, wizard.StepPrompts},
		wizard.StepTesting: {wizard.StepProfile, wizard.StepPrompts, wizard.StepTesting},
		wizard.StepResults: {wizard.StepProfile, wizard.StepPrompts, wizard.StepTesting, wizard.StepResults},
	}
	for _, step := range path[target] {
		if err := m.Transition(step); err != nil {
			t.Fatalf("setup transition to %s failed: %v", step, err)
		}
	}
	return m
}
