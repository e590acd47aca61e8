// Package harness provides a scenario-based conformance framework for the
// transition engine.
//
// Scenarios are YAML files that script a host: an initial collection, a
// sequence of observations, frame ticks, and clock advances. The harness
// runs each scenario against a real Group driven by a deterministic Wheel
// and records a frame trace - one snapshot of the merged, phase-tagged
// output after every step. Assertions validate the trace; golden files pin
// it byte for byte.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies the scenario; it is also the golden file name.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description,omitempty"`

	// Config holds the engine configuration for this run.
	Config ScenarioConfig `yaml:"config"`

	// Initial is the collection observed on mount. Mount never animates.
	Initial []ScenarioItem `yaml:"initial"`

	// Steps is the scripted host behavior, applied in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the recorded frame trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ScenarioConfig mirrors transition.Config in scenario-friendly units.
type ScenarioConfig struct {
	// Prefix is the phase tag prefix. Empty uses the engine default.
	Prefix string `yaml:"prefix,omitempty"`

	// EnterMs is the enter duration in milliseconds. Must be positive.
	EnterMs int `yaml:"enter_ms"`

	// LeaveMs is the leave duration in milliseconds. Must be positive.
	LeaveMs int `yaml:"leave_ms"`
}

// ScenarioItem is one keyed item in a scripted collection.
type ScenarioItem struct {
	Key     string `yaml:"key"`
	Payload string `yaml:"payload,omitempty"`
}

// Step is a single scripted host event. Exactly one field may be used:
//
//   - set: observe a new collection (use `set: []` for removing everything)
//   - tick: deliver N frame ticks
//   - advance_ms: advance the deterministic clock, firing due timers
type Step struct {
	Set       []ScenarioItem `yaml:"set,omitempty"`
	Tick      int            `yaml:"tick,omitempty"`
	AdvanceMs int            `yaml:"advance_ms,omitempty"`
}

// kind classifies a step for validation and trace labeling.
func (s Step) kind() (string, error) {
	used := 0
	kind := ""
	if s.Set != nil {
		used++
		kind = "set"
	}
	if s.Tick > 0 {
		used++
		kind = "tick"
	}
	if s.AdvanceMs > 0 {
		used++
		kind = "advance"
	}
	switch used {
	case 0:
		return "", fmt.Errorf("step must use one of set, tick, advance_ms")
	case 1:
		return kind, nil
	default:
		return "", fmt.Errorf("step must use exactly one of set, tick, advance_ms")
	}
}

// Validate checks the scenario for structural problems before execution.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario missing name")
	}
	if s.Config.EnterMs <= 0 {
		return fmt.Errorf("scenario %s: enter_ms must be positive", s.Name)
	}
	if s.Config.LeaveMs <= 0 {
		return fmt.Errorf("scenario %s: leave_ms must be positive", s.Name)
	}
	for i, step := range s.Steps {
		if _, err := step.kind(); err != nil {
			return fmt.Errorf("scenario %s: step %d: %w", s.Name, i, err)
		}
	}
	for i, a := range s.Assertions {
		if err := a.validate(); err != nil {
			return fmt.Errorf("scenario %s: assertion %d: %w", s.Name, i, err)
		}
	}
	return nil
}

// LoadScenario reads and validates a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadScenarioDir loads every *.yaml scenario in dir, sorted by file name
// for deterministic execution order.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob scenarios in %s: %w", dir, err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}
