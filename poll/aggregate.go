package poll

import (
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChoiceCount struct {
	ChoiceID   primitive.ObjectID
	Count      int
	Percentage int
}

type Aggregation struct {
	PerChoice []ChoiceCount
	// TotalVotes counts a user once per choice they selected.
	TotalVotes int
	// TotalRespondents counts each user once regardless of selections.
	TotalRespondents int
}

// Aggregate computes the display counts for a poll. Pure; must be rerun
// after every mutation, the result is never cached across them.
//
// The percentage base is TotalVotes for multi-vote polls and
// TotalRespondents for single-vote polls. A zero base yields 0% for
// every choice.
func Aggregate(p *Poll) Aggregation {
	agg := Aggregation{
		PerChoice: make([]ChoiceCount, len(p.Choices)),
	}

	respondents := map[string]struct{}{}
	for i := range p.Choices {
		agg.PerChoice[i] = ChoiceCount{
			ChoiceID: p.Choices[i].ID,
			Count:    len(p.Choices[i].Voters),
		}
		agg.TotalVotes += len(p.Choices[i].Voters)
		for _, v := range p.Choices[i].Voters {
			respondents[v] = struct{}{}
		}
	}
	agg.TotalRespondents = len(respondents)

	base := agg.TotalRespondents
	if p.AllowMultipleVotes {
		base = agg.TotalVotes
	}
	if base > 0 {
		for i := range agg.PerChoice {
			agg.PerChoice[i].Percentage = int(math.Round(float64(agg.PerChoice[i].Count) / float64(base) * 100))
		}
	}

	return agg
}
