package poll

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testPoll(multi bool, voters ...[]string) *Poll {
	p := &Poll{
		ID:                 primitive.NewObjectID(),
		Question:           "Lunch?",
		CreatorID:          "U_CREATOR",
		AllowMultipleVotes: multi,
	}
	for _, v := range voters {
		c := NewChoice("choice")
		if v != nil {
			c.Voters = v
		}
		p.Choices = append(p.Choices, c)
	}
	return p
}

func votersOf(t *testing.T, p *Poll, i int) []string {
	t.Helper()
	if i >= len(p.Choices) {
		t.Fatalf("no choice at index %d", i)
	}
	return p.Choices[i].Voters
}

func TestToggleVoteSingleModeExclusivity(t *testing.T) {
	p := testPoll(false, nil, nil, nil)

	// Vote each choice in turn; the user must only ever sit in one.
	for i := range p.Choices {
		change, ok := ToggleVote(p, p.Choices[i].ID, "U1")
		if !ok {
			t.Fatalf("toggle %d: choice not found", i)
		}
		if !change.Add {
			t.Errorf("toggle %d: expected Add", i)
		}
		held := 0
		for j := range p.Choices {
			for _, v := range votersOf(t, p, j) {
				if v == "U1" {
					held++
				}
			}
		}
		if held != 1 {
			t.Errorf("toggle %d: user holds %d choices, want 1", i, held)
		}
	}
}

func TestToggleVoteSingleModeSwitchClearsOthers(t *testing.T) {
	p := testPoll(false, []string{"U1"}, nil)

	change, ok := ToggleVote(p, p.Choices[1].ID, "U1")
	if !ok {
		t.Fatal("choice not found")
	}
	if !change.ClearOthers || !change.Add {
		t.Errorf("expected ClearOthers+Add, got %+v", change)
	}
	if len(votersOf(t, p, 0)) != 0 {
		t.Errorf("prior choice still holds voters: %v", votersOf(t, p, 0))
	}
	if len(votersOf(t, p, 1)) != 1 || votersOf(t, p, 1)[0] != "U1" {
		t.Errorf("target choice voters = %v, want [U1]", votersOf(t, p, 1))
	}
}

func TestToggleVoteSingleModeClearsInconsistentState(t *testing.T) {
	// The user somehow sits in two choices already; a switch must
	// clear both before adding.
	p := testPoll(false, []string{"U1"}, []string{"U1"}, nil)

	change, _ := ToggleVote(p, p.Choices[2].ID, "U1")
	if !change.ClearOthers {
		t.Error("expected ClearOthers")
	}
	for i := 0; i < 2; i++ {
		if len(votersOf(t, p, i)) != 0 {
			t.Errorf("choice %d still holds voters: %v", i, votersOf(t, p, i))
		}
	}
	if len(votersOf(t, p, 2)) != 1 {
		t.Errorf("target voters = %v, want [U1]", votersOf(t, p, 2))
	}
}

func TestToggleVoteMultiModeIndependence(t *testing.T) {
	p := testPoll(true, []string{"U1"}, []string{"U1"})

	change, _ := ToggleVote(p, p.Choices[0].ID, "U1")
	if !change.Remove || change.ClearOthers {
		t.Errorf("expected pure Remove, got %+v", change)
	}
	if len(votersOf(t, p, 0)) != 0 {
		t.Errorf("choice A voters = %v, want empty", votersOf(t, p, 0))
	}
	if len(votersOf(t, p, 1)) != 1 {
		t.Errorf("choice B voters = %v, want [U1] untouched", votersOf(t, p, 1))
	}
}

func TestToggleVoteIdempotence(t *testing.T) {
	for _, multi := range []bool{false, true} {
		p := testPoll(multi, []string{"U2"}, nil)
		before := make([][]string, len(p.Choices))
		for i := range p.Choices {
			before[i] = append([]string{}, p.Choices[i].Voters...)
		}

		ToggleVote(p, p.Choices[1].ID, "U1")
		ToggleVote(p, p.Choices[1].ID, "U1")

		for i := range p.Choices {
			got := votersOf(t, p, i)
			if len(got) != len(before[i]) {
				t.Errorf("multi=%v choice %d voters = %v, want %v", multi, i, got, before[i])
				continue
			}
			for j := range got {
				if got[j] != before[i][j] {
					t.Errorf("multi=%v choice %d voters = %v, want %v", multi, i, got, before[i])
				}
			}
		}
	}
}

func TestToggleVoteUnknownChoice(t *testing.T) {
	p := testPoll(false, []string{"U1"})

	_, ok := ToggleVote(p, primitive.NewObjectID(), "U1")
	if ok {
		t.Error("expected not-found for unknown choice")
	}
	if len(votersOf(t, p, 0)) != 1 {
		t.Errorf("poll mutated on unknown choice: %v", votersOf(t, p, 0))
	}
}

func TestSingleVoteSwitchEndToEnd(t *testing.T) {
	// Create {Pizza, Salad}, vote Pizza, then Salad: the vote moves,
	// it does not accumulate.
	p := testPoll(false, nil, nil)
	p.Choices[0].Text = "Pizza"
	p.Choices[1].Text = "Salad"

	ToggleVote(p, p.Choices[0].ID, "U1")
	agg := Aggregate(p)
	if agg.PerChoice[0].Count != 1 || agg.PerChoice[0].Percentage != 100 {
		t.Errorf("after Pizza vote: %+v", agg.PerChoice[0])
	}
	if agg.PerChoice[1].Count != 0 || agg.PerChoice[1].Percentage != 0 {
		t.Errorf("after Pizza vote, Salad: %+v", agg.PerChoice[1])
	}

	ToggleVote(p, p.Choices[1].ID, "U1")
	agg = Aggregate(p)
	if agg.PerChoice[0].Count != 0 || agg.PerChoice[0].Percentage != 0 {
		t.Errorf("after switch, Pizza: %+v", agg.PerChoice[0])
	}
	if agg.PerChoice[1].Count != 1 || agg.PerChoice[1].Percentage != 100 {
		t.Errorf("after switch, Salad: %+v", agg.PerChoice[1])
	}
}
