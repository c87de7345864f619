package poll

import (
	"testing"
)

func TestAggregateSingleVote(t *testing.T) {
	p := testPoll(false,
		[]string{"U1", "U2", "U3"},
		[]string{"U4"},
		nil,
	)

	agg := Aggregate(p)

	if agg.TotalVotes != 4 {
		t.Errorf("TotalVotes = %d, want 4", agg.TotalVotes)
	}
	if agg.TotalRespondents != 4 {
		t.Errorf("TotalRespondents = %d, want 4", agg.TotalRespondents)
	}

	wantPct := []int{75, 25, 0}
	wantCount := []int{3, 1, 0}
	for i, c := range agg.PerChoice {
		if c.Count != wantCount[i] {
			t.Errorf("choice %d count = %d, want %d", i, c.Count, wantCount[i])
		}
		if c.Percentage != wantPct[i] {
			t.Errorf("choice %d percentage = %d, want %d", i, c.Percentage, wantPct[i])
		}
	}
}

func TestAggregateMultiVote(t *testing.T) {
	p := testPoll(true,
		[]string{"A", "B"},
		[]string{"B"},
	)

	agg := Aggregate(p)

	if agg.TotalVotes != 3 {
		t.Errorf("TotalVotes = %d, want 3", agg.TotalVotes)
	}
	if agg.TotalRespondents != 2 {
		t.Errorf("TotalRespondents = %d, want 2", agg.TotalRespondents)
	}

	// Base is TotalVotes in multi mode; 2/3 rounds to 67, 1/3 to 33.
	if agg.PerChoice[0].Percentage != 67 {
		t.Errorf("choice 0 percentage = %d, want 67", agg.PerChoice[0].Percentage)
	}
	if agg.PerChoice[1].Percentage != 33 {
		t.Errorf("choice 1 percentage = %d, want 33", agg.PerChoice[1].Percentage)
	}
}

func TestAggregateZeroBase(t *testing.T) {
	p := testPoll(false, nil, nil)

	agg := Aggregate(p)

	if agg.TotalVotes != 0 || agg.TotalRespondents != 0 {
		t.Errorf("totals = %d/%d, want 0/0", agg.TotalVotes, agg.TotalRespondents)
	}
	for i, c := range agg.PerChoice {
		if c.Percentage != 0 {
			t.Errorf("choice %d percentage = %d, want 0", i, c.Percentage)
		}
	}
}

func TestAggregatePure(t *testing.T) {
	p := testPoll(false, []string{"U1"}, nil)

	first := Aggregate(p)
	second := Aggregate(p)

	if first.TotalVotes != second.TotalVotes || first.TotalRespondents != second.TotalRespondents {
		t.Error("repeated aggregation diverged")
	}
	if len(votersOf(t, p, 0)) != 1 {
		t.Error("aggregation mutated the poll")
	}
}
