package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares its frame trace against the
// golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for expected frame traces; assertion
// failures inside the scenario are reported as test errors as well.
func RunWithGolden(t *testing.T, sc *Scenario) error {
	t.Helper()

	result, err := Run(sc)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("scenario %s: %s", sc.Name, msg)
	}

	data, err := MarshalFrames(result.Frames)
	if err != nil {
		return fmt.Errorf("marshal frames for %s: %w", sc.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, sc.Name, data)
	return nil
}

// MarshalFrames renders a frame trace as stable, human-reviewable JSON.
// Struct field order makes the output deterministic without a canonical
// JSON layer. Golden files and the CLI both use this encoding.
func MarshalFrames(frames []Frame) ([]byte, error) {
	data, err := json.MarshalIndent(frames, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
