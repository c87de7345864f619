package poll

import (
	"reflect"
	"testing"
)

func TestRenderIncludesEveryChoice(t *testing.T) {
	p := testPoll(false, []string{"U1"}, nil, nil)

	dp := Render(p, Aggregate(p))

	if len(dp.Choices) != len(p.Choices) {
		t.Fatalf("rendered %d choices, want %d", len(dp.Choices), len(p.Choices))
	}
	for i, line := range dp.Choices {
		if line.ChoiceID != p.Choices[i].ID.Hex() {
			t.Errorf("choice %d control id = %s, want %s", i, line.ChoiceID, p.Choices[i].ID.Hex())
		}
	}
	// Zero-vote rows still render, at zero.
	if dp.Choices[2].Count != 0 || dp.Choices[2].Percentage != 0 || len(dp.Choices[2].Voters) != 0 {
		t.Errorf("empty choice rendered as %+v", dp.Choices[2])
	}
}

func TestRenderDeterministic(t *testing.T) {
	p := testPoll(true, []string{"U1", "U2"}, []string{"U2"})

	first := Render(p, Aggregate(p))
	second := Render(p, Aggregate(p))

	if !reflect.DeepEqual(first, second) {
		t.Error("render of identical input diverged")
	}
}

func TestMarkerFallback(t *testing.T) {
	for i := 0; i < 10; i++ {
		if Marker(i) == fallbackMarker {
			t.Errorf("index %d got the fallback marker", i)
		}
	}
	if Marker(10) != fallbackMarker {
		t.Errorf("index 10 marker = %s, want fallback", Marker(10))
	}
	if Marker(25) != fallbackMarker {
		t.Errorf("index 25 marker = %s, want fallback", Marker(25))
	}
}

func TestRenderFlags(t *testing.T) {
	p := testPoll(true, nil)
	p.AllowOthersToAddOptions = true

	dp := Render(p, Aggregate(p))

	if !dp.AllowMultipleNotice {
		t.Error("multi-vote notice missing")
	}
	if !dp.AllowAddOption {
		t.Error("add-option control missing")
	}
}
