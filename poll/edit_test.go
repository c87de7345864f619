package poll

import (
	"testing"
)

func TestMergeChoicesPreservesIdentity(t *testing.T) {
	p := testPoll(false, []string{"U1", "U2"}, []string{"U3"})
	oldID := p.Choices[0].ID

	merged := MergeChoices(p.Choices, []string{"Renamed", "Kept", "Brand new"})

	if len(merged) != 3 {
		t.Fatalf("merged %d choices, want 3", len(merged))
	}
	if merged[0].ID != oldID {
		t.Error("edit minted a new id for a surviving choice")
	}
	if merged[0].Text != "Renamed" {
		t.Errorf("text = %q, want Renamed", merged[0].Text)
	}
	if len(merged[0].Voters) != 2 {
		t.Errorf("voters = %v, want the prior two", merged[0].Voters)
	}
	if merged[2].ID == p.Choices[0].ID || merged[2].ID == p.Choices[1].ID {
		t.Error("new tail choice reused an old id")
	}
	if len(merged[2].Voters) != 0 {
		t.Errorf("new choice voters = %v, want empty", merged[2].Voters)
	}
}

func TestMergeChoicesStableVoteTarget(t *testing.T) {
	// A vote button holds the choice id; after an edit renames the
	// choice, the same id must resolve to the same voters.
	p := testPoll(false, []string{"U1"})
	id := p.Choices[0].ID

	p.Choices = MergeChoices(p.Choices, []string{"New label"})

	c := p.ChoiceByID(id)
	if c == nil {
		t.Fatal("choice id no longer resolves after edit")
	}
	if len(c.Voters) != 1 || c.Voters[0] != "U1" {
		t.Errorf("voters = %v, want [U1]", c.Voters)
	}
}

func TestMergeChoicesShrink(t *testing.T) {
	p := testPoll(false, []string{"U1"}, []string{"U2"}, nil)

	merged := MergeChoices(p.Choices, []string{"Only one"})

	if len(merged) != 1 {
		t.Fatalf("merged %d choices, want 1", len(merged))
	}
	if merged[0].ID != p.Choices[0].ID {
		t.Error("surviving choice lost its id")
	}
}
