package harness

import (
	"fmt"
	"strings"
)

// Assertion validates the recorded frame trace.
type Assertion struct {
	// Type selects the assertion:
	//   - "frame_count": the trace holds exactly Count frames
	//   - "last_frame": the final frame matches Items exactly (keys, phases)
	//   - "key_absent": Key does not appear in the final frame
	//   - "phase_sequence": the deduplicated phases Key passes through over
	//     the whole trace equal Phases exactly
	//   - "gapless": every frame has no empty slots and no duplicate keys
	Type string `yaml:"type"`

	// Key names the subject key (key_absent, phase_sequence).
	Key string `yaml:"key,omitempty"`

	// Count is the expected frame count (frame_count).
	Count int `yaml:"count,omitempty"`

	// Items is the expected final frame (last_frame).
	Items []ExpectedItem `yaml:"items"`

	// Phases is the expected phase sequence (phase_sequence). An empty
	// string entry means "present with no phase tag".
	Phases []string `yaml:"phases,omitempty"`
}

// ExpectedItem is one expected slot of a frame.
type ExpectedItem struct {
	Key   string `yaml:"key"`
	Phase string `yaml:"phase,omitempty"`
}

// Assertion type constants.
const (
	AssertFrameCount    = "frame_count"
	AssertLastFrame     = "last_frame"
	AssertKeyAbsent     = "key_absent"
	AssertPhaseSequence = "phase_sequence"
	AssertGapless       = "gapless"
)

func (a Assertion) validate() error {
	switch a.Type {
	case AssertFrameCount:
		if a.Count <= 0 {
			return fmt.Errorf("frame_count requires a positive count")
		}
	case AssertLastFrame:
	case AssertKeyAbsent, AssertPhaseSequence:
		if a.Key == "" {
			return fmt.Errorf("%s requires a key", a.Type)
		}
	case AssertGapless:
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

// AssertionError describes one failed assertion with enough context to read
// the failure without re-running the scenario.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion %s failed: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion against the result and returns
// the failure messages. An empty return means all assertions held.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertFrameCount:
			err = assertFrameCount(result.Frames, a)
		case AssertLastFrame:
			err = assertLastFrame(result.Frames, a)
		case AssertKeyAbsent:
			err = assertKeyAbsent(result.Frames, a)
		case AssertPhaseSequence:
			err = assertPhaseSequence(result.Frames, a)
		case AssertGapless:
			err = assertGapless(result.Frames)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

func assertFrameCount(frames []Frame, a Assertion) error {
	if len(frames) != a.Count {
		return &AssertionError{
			Type:     AssertFrameCount,
			Expected: fmt.Sprintf("%d frames", a.Count),
			Actual:   fmt.Sprintf("%d frames", len(frames)),
		}
	}
	return nil
}

func assertLastFrame(frames []Frame, a Assertion) error {
	if len(frames) == 0 {
		return &AssertionError{Type: AssertLastFrame, Expected: "a final frame", Actual: "empty trace"}
	}
	last := frames[len(frames)-1]
	if len(last.Items) != len(a.Items) {
		return &AssertionError{
			Type:     AssertLastFrame,
			Expected: fmt.Sprintf("%d items", len(a.Items)),
			Actual:   formatFrame(last),
		}
	}
	for i, want := range a.Items {
		got := last.Items[i]
		if got.Key != want.Key || got.Phase != want.Phase {
			return &AssertionError{
				Type:     AssertLastFrame,
				Expected: fmt.Sprintf("slot %d = %s[%s]", i, want.Key, want.Phase),
				Actual:   formatFrame(last),
			}
		}
	}
	return nil
}

func assertKeyAbsent(frames []Frame, a Assertion) error {
	if len(frames) == 0 {
		return nil
	}
	last := frames[len(frames)-1]
	for _, item := range last.Items {
		if item.Key == a.Key {
			return &AssertionError{
				Type:     AssertKeyAbsent,
				Expected: fmt.Sprintf("key %s absent from final frame", a.Key),
				Actual:   formatFrame(last),
			}
		}
	}
	return nil
}

// assertPhaseSequence collects the phase the key renders with in every frame
// where it is present, collapses consecutive duplicates, and compares the
// sequence exactly.
func assertPhaseSequence(frames []Frame, a Assertion) error {
	var seq []string
	seen := false
	for _, f := range frames {
		for _, item := range f.Items {
			if item.Key != a.Key {
				continue
			}
			if !seen || seq[len(seq)-1] != item.Phase {
				seq = append(seq, item.Phase)
				seen = true
			}
		}
	}

	if len(seq) != len(a.Phases) {
		return phaseSequenceError(a, seq)
	}
	for i := range seq {
		if seq[i] != a.Phases[i] {
			return phaseSequenceError(a, seq)
		}
	}
	return nil
}

func phaseSequenceError(a Assertion, got []string) error {
	return &AssertionError{
		Type:     AssertPhaseSequence,
		Expected: fmt.Sprintf("key %s phases [%s]", a.Key, strings.Join(a.Phases, " ")),
		Actual:   fmt.Sprintf("[%s]", strings.Join(got, " ")),
	}
}

// assertGapless verifies the structural invariant on every frame: the merged
// output occupies a contiguous range with no empty slots and no duplicate
// keys.
func assertGapless(frames []Frame) error {
	for _, f := range frames {
		seen := make(map[string]bool, len(f.Items))
		for i, item := range f.Items {
			if item.Key == "" {
				return &AssertionError{
					Type:     AssertGapless,
					Expected: fmt.Sprintf("frame %d (%s) fully filled", f.Step, f.Label),
					Actual:   fmt.Sprintf("empty slot at index %d", i),
				}
			}
			if seen[item.Key] {
				return &AssertionError{
					Type:     AssertGapless,
					Expected: fmt.Sprintf("frame %d (%s) without duplicates", f.Step, f.Label),
					Actual:   fmt.Sprintf("key %s appears twice", item.Key),
				}
			}
			seen[item.Key] = true
		}
	}
	return nil
}

func formatFrame(f Frame) string {
	parts := make([]string, len(f.Items))
	for i, item := range f.Items {
		parts[i] = fmt.Sprintf("%s[%s]", item.Key, item.Phase)
	}
	return strings.Join(parts, " ")
}
