package harness

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/morphkit/morph/internal/transition"
)

// FrameItem is one slot of a recorded frame.
type FrameItem struct {
	Key   string `json:"key"`
	Phase string `json:"phase,omitempty"`
}

// Frame is a snapshot of the merged output after one scenario step.
type Frame struct {
	// Step is the 0-based step index; -1 for the mount frame.
	Step int `json:"step"`

	// Label names the step kind: "initial", "set", "tick" or "advance".
	Label string `json:"label"`

	// NowMs is the deterministic clock position in milliseconds.
	NowMs int64 `json:"now_ms"`

	// Items is the merged, phase-tagged output in render order.
	Items []FrameItem `json:"items"`
}

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Frames is the recorded frame trace, one entry per step plus mount.
	Frames []Frame `json:"frames"`

	// Errors holds assertion failure messages. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// AddError records an assertion failure and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// scenarioEpoch anchors every run at the same instant so frame traces are
// byte-identical across runs and machines.
var scenarioEpoch = time.Unix(0, 0).UTC()

// Run executes a scenario against a fresh Group over a deterministic Wheel
// and returns the recorded frame trace with assertion results.
func Run(sc *Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	wheel := transition.NewWheel(scenarioEpoch)
	group, err := transition.New(transition.Config{
		Prefix:        sc.Config.Prefix,
		EnterDuration: time.Duration(sc.Config.EnterMs) * time.Millisecond,
		LeaveDuration: time.Duration(sc.Config.LeaveMs) * time.Millisecond,
	}, wheel, transition.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	defer group.Close()

	result := &Result{Pass: true}

	group.Update(toItems(sc.Initial))
	result.Frames = append(result.Frames, snapshot(group, wheel, -1, "initial"))

	for i, step := range sc.Steps {
		kind, err := step.kind()
		if err != nil {
			return nil, fmt.Errorf("scenario %s: step %d: %w", sc.Name, i, err)
		}
		switch kind {
		case "set":
			group.Update(toItems(step.Set))
		case "tick":
			for n := 0; n < step.Tick; n++ {
				group.Tick()
			}
		case "advance":
			wheel.Advance(time.Duration(step.AdvanceMs) * time.Millisecond)
		}
		result.Frames = append(result.Frames, snapshot(group, wheel, i, kind))
	}

	for _, msg := range EvaluateAssertions(result, sc.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// snapshot records the current merged output as a Frame.
func snapshot(group *transition.Group, wheel *transition.Wheel, step int, label string) Frame {
	rendered := group.Render()
	frameItems := make([]FrameItem, len(rendered))
	for i, r := range rendered {
		frameItems[i] = FrameItem{Key: r.Key, Phase: r.Phase}
	}
	return Frame{
		Step:  step,
		Label: label,
		NowMs: wheel.Now().Sub(scenarioEpoch).Milliseconds(),
		Items: frameItems,
	}
}

func toItems(scripted []ScenarioItem) []transition.Item {
	out := make([]transition.Item, len(scripted))
	for i, s := range scripted {
		payload := s.Payload
		if payload == "" {
			payload = s.Key
		}
		out[i] = transition.Item{Key: s.Key, Payload: payload}
	}
	return out
}
