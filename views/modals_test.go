package views

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pollhype/slack.pollhype.app/poll"
	"github.com/pollhype/slack.pollhype.app/slack"
)

func countChoiceBlocks(blocks []slack.Block) int {
	n := 0
	for _, b := range blocks {
		if strings.HasPrefix(b.BlockID, ChoiceBlockBase) {
			n++
		}
	}
	return n
}

func TestCreatePollModalDefaults(t *testing.T) {
	view := CreatePollModal("C123", nil)

	if view.CallbackID != CallbackCreatePoll {
		t.Errorf("callback = %s, want %s", view.CallbackID, CallbackCreatePoll)
	}
	if got := countChoiceBlocks(view.Blocks); got != 2 {
		t.Errorf("choice inputs = %d, want 2", got)
	}

	var channelBlock *slack.Block
	for i := range view.Blocks {
		if view.Blocks[i].BlockID == ChannelBlock {
			channelBlock = &view.Blocks[i]
		}
	}
	if channelBlock == nil {
		t.Fatal("channel block missing")
	}
	if len(channelBlock.Element.InitialConversations) != 1 || channelBlock.Element.InitialConversations[0] != "C123" {
		t.Errorf("initial conversations = %v, want [C123]", channelBlock.Element.InitialConversations)
	}
}

func TestCreatePollModalDraftPrefill(t *testing.T) {
	draft := &poll.Draft{
		UserID:                  "U1",
		Question:                "Team lunch?",
		Choices:                 []string{"Pizza", "Salad", "Sushi", "Tacos"},
		AllowMultipleVotes:      true,
		AllowOthersToAddOptions: true,
		Channels:                []string{"C1", "C2"},
	}

	view := CreatePollModal("C_IGNORED", draft)

	if got := countChoiceBlocks(view.Blocks); got != 4 {
		t.Errorf("choice inputs = %d, want one per drafted choice (4)", got)
	}

	for i, want := range draft.Choices {
		found := false
		for _, b := range view.Blocks {
			if b.BlockID == fmt.Sprintf("%s%d", ChoiceBlockBase, i) {
				found = true
				if b.Element.InitialValue != want {
					t.Errorf("choice %d initial = %q, want %q", i, b.Element.InitialValue, want)
				}
			}
		}
		if !found {
			t.Errorf("choice input %d missing", i)
		}
	}

	for _, b := range view.Blocks {
		switch b.BlockID {
		case QuestionBlock:
			if b.Element.InitialValue != draft.Question {
				t.Errorf("question initial = %q, want %q", b.Element.InitialValue, draft.Question)
			}
		case SettingsBlock:
			if len(b.Element.InitialOptions) != 2 {
				t.Errorf("settings initial options = %d, want 2", len(b.Element.InitialOptions))
			}
		case ChannelBlock:
			if len(b.Element.InitialConversations) != 2 {
				t.Errorf("initial conversations = %v, want the drafted pair", b.Element.InitialConversations)
			}
		}
	}
}

func TestGrowChoiceInputs(t *testing.T) {
	base := CreatePollModal("C1", nil)
	payload := slack.ViewPayload{
		ID:         "V1",
		Hash:       "h",
		CallbackID: base.CallbackID,
		Title:      base.Title,
		Submit:     base.Submit,
		Close:      base.Close,
		Blocks:     base.Blocks,
	}

	grown := GrowChoiceInputs(payload)

	if got := countChoiceBlocks(grown.Blocks); got != 3 {
		t.Fatalf("choice inputs after grow = %d, want 3", got)
	}

	// The new input sits directly ahead of the add-option control.
	for i, b := range grown.Blocks {
		if b.BlockID == AddOptionSection {
			if i == 0 || grown.Blocks[i-1].BlockID != ChoiceBlockBase+"2" {
				t.Errorf("block before add-option control = %s, want %s2",
					grown.Blocks[i-1].BlockID, ChoiceBlockBase)
			}
		}
	}

	if grown.CallbackID != base.CallbackID {
		t.Errorf("callback changed to %s", grown.CallbackID)
	}
}

func TestEditPollModal(t *testing.T) {
	p := &poll.Poll{
		Question:                "Edit me",
		CreatorID:               "U1",
		AllowOthersToAddOptions: true,
		Choices: []poll.Choice{
			poll.NewChoice("A"),
			poll.NewChoice("B"),
		},
	}

	view := EditPollModal(p)

	if view.CallbackID != CallbackEditPoll {
		t.Errorf("callback = %s, want %s", view.CallbackID, CallbackEditPoll)
	}
	meta, err := DecodeMetadata(view.PrivateMetadata)
	if err != nil {
		t.Fatalf("metadata decode: %v", err)
	}
	if meta.PollID != p.ID.Hex() {
		t.Errorf("metadata poll id = %s, want %s", meta.PollID, p.ID.Hex())
	}
	if got := countChoiceBlocks(view.Blocks); got != 2 {
		t.Errorf("choice inputs = %d, want 2", got)
	}
}

func TestInviteRequiredModalMentions(t *testing.T) {
	view := InviteRequiredModal([]string{"C1", "C2"}, "pollbot")

	if len(view.Blocks) < 2 {
		t.Fatalf("blocks = %d, want at least 2", len(view.Blocks))
	}
	header := view.Blocks[0].Text.Text
	if !strings.Contains(header, "<#C1>") || !strings.Contains(header, "<#C2>") {
		t.Errorf("channel mentions missing from %q", header)
	}
	if !strings.Contains(view.Blocks[1].Text.Text, "/invite @pollbot") {
		t.Errorf("invite instruction missing bot name: %q", view.Blocks[1].Text.Text)
	}
}
