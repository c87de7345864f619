package poll

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Poll is the aggregate document for one question. Choices own their
// voter sets; messages records every rendered copy that has been posted.
type Poll struct {
	ID                      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Question                string             `json:"question" bson:"question"`
	Choices                 []Choice           `json:"choices" bson:"choices"`
	CreatorID               string             `json:"creator_id" bson:"creator_id"`
	AllowMultipleVotes      bool               `json:"allow_multiple_votes" bson:"allow_multiple_votes"`
	AllowOthersToAddOptions bool               `json:"allow_others_to_add_options" bson:"allow_others_to_add_options"`
	Channels                []string           `json:"channels" bson:"channels"`
	Messages                []MessageRef       `json:"messages" bson:"messages"`
}

// Choice keeps a stable id for the poll's lifetime, even across edits
// that change its text.
type Choice struct {
	ID     primitive.ObjectID `json:"id" bson:"_id"`
	Text   string             `json:"text" bson:"text"`
	Voters []string           `json:"voters" bson:"voters"`
}

type MessageRef struct {
	Channel   string `json:"channel" bson:"channel"`
	TS        string `json:"ts" bson:"ts"`
	Permalink string `json:"permalink,omitempty" bson:"permalink,omitempty"`
}

// Draft is a saved creation-form state keyed by user, written when the
// membership guard aborts a creation and replayed into the next modal.
type Draft struct {
	ID                      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID                  string             `json:"user_id" bson:"user_id"`
	Question                string             `json:"question" bson:"question"`
	Choices                 []string           `json:"choices" bson:"choices"`
	AllowMultipleVotes      bool               `json:"allow_multiple_votes" bson:"allow_multiple_votes"`
	AllowOthersToAddOptions bool               `json:"allow_others_to_add_options" bson:"allow_others_to_add_options"`
	Channels                []string           `json:"channels" bson:"channels"`
}

// NewChoice mints a choice with a fresh stable id and no voters.
func NewChoice(text string) Choice {
	return Choice{
		ID:     primitive.NewObjectID(),
		Text:   text,
		Voters: []string{},
	}
}

// ChoiceByID returns the choice carrying id, or nil.
func (p *Poll) ChoiceByID(id primitive.ObjectID) *Choice {
	for i := range p.Choices {
		if p.Choices[i].ID == id {
			return &p.Choices[i]
		}
	}
	return nil
}
