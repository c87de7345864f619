package poll

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoteChange describes the field-level updates the store must issue for
// one toggle. The same operations are applied to the in-memory document
// so callers never read stale state.
type VoteChange struct {
	// ClearOthers pulls the user out of every choice's voter set before
	// the add. Set on a single-vote switch so the one-choice-per-user
	// invariant holds even if the stored data was already inconsistent.
	ClearOthers bool
	Add         bool
	Remove      bool
}

// ToggleVote applies one vote toggle by userID on choiceID.
//
// Single-vote mode: voting a choice the user already holds removes the
// vote; voting any other choice clears every prior selection and adds
// the new one. Multi-vote mode toggles the target choice only.
//
// Returns false if the choice is not part of the poll; the poll is left
// untouched and the caller treats the toggle as a silent no-op.
func ToggleVote(p *Poll, choiceID primitive.ObjectID, userID string) (VoteChange, bool) {
	target := p.ChoiceByID(choiceID)
	if target == nil {
		return VoteChange{}, false
	}

	already := hasVoter(target, userID)
	change := VoteChange{}

	if p.AllowMultipleVotes {
		if already {
			change.Remove = true
			removeVoter(target, userID)
		} else {
			change.Add = true
			target.Voters = append(target.Voters, userID)
		}
		return change, true
	}

	if already {
		change.Remove = true
		removeVoter(target, userID)
		return change, true
	}

	change.ClearOthers = true
	change.Add = true
	for i := range p.Choices {
		removeVoter(&p.Choices[i], userID)
	}
	target.Voters = append(target.Voters, userID)
	return change, true
}

func hasVoter(c *Choice, userID string) bool {
	for _, v := range c.Voters {
		if v == userID {
			return true
		}
	}
	return false
}

func removeVoter(c *Choice, userID string) {
	for i, v := range c.Voters {
		if v == userID {
			c.Voters = append(c.Voters[:i], c.Voters[i+1:]...)
			return
		}
	}
}
