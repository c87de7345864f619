package views

import (
	"fmt"
	"strings"

	"github.com/pollhype/slack.pollhype.app/poll"
	"github.com/pollhype/slack.pollhype.app/slack"
)

func choiceInput(i int, initial string) slack.Block {
	label := fmt.Sprintf("Option %d", i+1)
	if i > 0 {
		label += " (optional)"
	}
	element := &slack.Element{
		Type:        "plain_text_input",
		ActionID:    fmt.Sprintf("%s%d", ChoiceInputBase, i),
		Placeholder: slack.Plain("Write something"),
	}
	if initial != "" {
		element.InitialValue = initial
		element.Placeholder = nil
	}
	return slack.Block{
		Type:     "input",
		BlockID:  fmt.Sprintf("%s%d", ChoiceBlockBase, i),
		Optional: i > 0,
		Label:    slack.Plain(label),
		Element:  element,
	}
}

func addOptionSection() slack.Block {
	return slack.Block{
		Type:    "actions",
		BlockID: AddOptionSection,
		Elements: []slack.Element{
			{
				Type:     "button",
				ActionID: ActionAddOptionToModal,
				Text:     slack.Plain("Add another option"),
			},
		},
	}
}

func settingsCheckboxes(options []slack.Option, initial []slack.Option) slack.Block {
	element := &slack.Element{
		Type:     "checkboxes",
		ActionID: SettingsInput,
		Options:  options,
	}
	if len(initial) > 0 {
		element.InitialOptions = initial
	}
	return slack.Block{
		Type:     "input",
		BlockID:  SettingsBlock,
		Optional: true,
		Label:    slack.Plain("Settings (optional)"),
		Element:  element,
	}
}

// CreatePollModal builds the creation modal. A saved draft, if any,
// replays the user's prior field state, including one input block per
// previously entered choice.
func CreatePollModal(channelID string, draft *poll.Draft) slack.View {
	blocks := []slack.Block{
		{
			Type:    "input",
			BlockID: QuestionBlock,
			Label:   slack.Plain("Poll Question"),
			Element: func() *slack.Element {
				e := &slack.Element{
					Type:        "plain_text_input",
					ActionID:    QuestionInput,
					Placeholder: slack.Plain("What do you want to ask?"),
				}
				if draft != nil && draft.Question != "" {
					e.InitialValue = draft.Question
					e.Placeholder = nil
				}
				return e
			}(),
		},
	}

	choiceCount := 2
	if draft != nil && len(draft.Choices) > choiceCount {
		choiceCount = len(draft.Choices)
	}
	for i := 0; i < choiceCount; i++ {
		initial := ""
		if draft != nil && i < len(draft.Choices) {
			initial = draft.Choices[i]
		}
		blocks = append(blocks, choiceInput(i, initial))
	}

	blocks = append(blocks, addOptionSection())

	options := []slack.Option{
		{Text: slack.Plain("Allow multiple votes"), Value: SettingAllowMultiple},
		{Text: slack.Plain("Allow others to add options"), Value: SettingAllowOthersToAdd},
	}
	var initial []slack.Option
	if draft != nil {
		if draft.AllowMultipleVotes {
			initial = append(initial, options[0])
		}
		if draft.AllowOthersToAddOptions {
			initial = append(initial, options[1])
		}
	}
	blocks = append(blocks, settingsCheckboxes(options, initial))

	channels := []string{}
	if draft != nil && len(draft.Channels) > 0 {
		channels = draft.Channels
	} else if channelID != "" {
		channels = []string{channelID}
	}
	blocks = append(blocks, slack.Block{
		Type:    "input",
		BlockID: ChannelBlock,
		Label:   slack.Plain("Select channel(s) to post"),
		Element: &slack.Element{
			Type:                 "multi_conversations_select",
			ActionID:             ChannelsInput,
			InitialConversations: channels,
			Placeholder:          slack.Plain("Select channels..."),
		},
	})

	return slack.View{
		Type:       "modal",
		CallbackID: CallbackCreatePoll,
		Title:      slack.Plain("Create a Poll"),
		Submit:     slack.Plain("Create"),
		Close:      slack.Plain("Cancel"),
		Blocks:     blocks,
	}
}

// GrowChoiceInputs rebuilds an open create/edit modal with one more
// choice input, inserted ahead of the add-option control.
func GrowChoiceInputs(view slack.ViewPayload) slack.View {
	count := 0
	for _, b := range view.Blocks {
		if strings.HasPrefix(b.BlockID, ChoiceBlockBase) {
			count++
		}
	}

	next := choiceInput(count, "")
	blocks := make([]slack.Block, 0, len(view.Blocks)+1)
	inserted := false
	for _, b := range view.Blocks {
		if b.BlockID == AddOptionSection && !inserted {
			blocks = append(blocks, next)
			inserted = true
		}
		blocks = append(blocks, b)
	}
	if !inserted {
		blocks = append(blocks, next)
	}

	return slack.View{
		Type:            "modal",
		CallbackID:      view.CallbackID,
		PrivateMetadata: view.PrivateMetadata,
		Title:           view.Title,
		Submit:          view.Submit,
		Close:           view.Close,
		Blocks:          blocks,
	}
}

// EditPollModal builds the edit view for a poll's creator. Choice
// inputs are prefilled positionally so submission can preserve ids.
func EditPollModal(p *poll.Poll) slack.View {
	blocks := []slack.Block{
		{
			Type:    "input",
			BlockID: QuestionBlock,
			Label:   slack.Plain("Poll Question"),
			Element: &slack.Element{
				Type:         "plain_text_input",
				ActionID:     QuestionInput,
				InitialValue: p.Question,
			},
		},
	}

	for i, c := range p.Choices {
		blocks = append(blocks, choiceInput(i, c.Text))
	}
	blocks = append(blocks, addOptionSection())

	options := []slack.Option{
		{Text: slack.Plain("Allow others to add options"), Value: SettingAllowOthersToAdd},
	}
	var initial []slack.Option
	if p.AllowOthersToAddOptions {
		initial = append(initial, options[0])
	}
	blocks = append(blocks, settingsCheckboxes(options, initial))

	return slack.View{
		Type:            "modal",
		CallbackID:      CallbackEditPoll,
		PrivateMetadata: EncodeMetadata(p.ID.Hex()),
		Title:           slack.Plain("Edit Poll"),
		Submit:          slack.Plain("Save"),
		Close:           slack.Plain("Cancel"),
		Blocks:          blocks,
	}
}

// SettingsModal is the creator's admin view reached from the poll
// message's overflow menu.
func SettingsModal(p *poll.Poll) slack.View {
	return slack.View{
		Type:            "modal",
		CallbackID:      "poll_settings_modal",
		PrivateMetadata: EncodeMetadata(p.ID.Hex()),
		Title:           slack.Plain("Poll Settings"),
		Blocks: []slack.Block{
			{Type: "section", Text: slack.Markdown(fmt.Sprintf("*Question:* %s", p.Question))},
			{Type: "divider"},
			{Type: "section", Text: slack.Markdown("*Admin Controls*")},
			{
				Type: "section",
				Text: slack.Markdown("Edit the poll's question and options."),
				Accessory: &slack.Element{
					Type:     "button",
					ActionID: ActionEditPoll,
					Text:     slack.Plain("Edit Poll"),
				},
			},
			{
				Type: "section",
				Text: slack.Markdown("Permanently delete this poll from all channels."),
				Accessory: &slack.Element{
					Type:     "button",
					ActionID: ActionOpenDeleteConfirm,
					Text:     slack.Plain("Delete Poll"),
					Style:    "danger",
				},
			},
		},
	}
}

// InfoModal is the read-only view non-creators get from the overflow
// menu; it reveals nothing they could not already see.
func InfoModal(p *poll.Poll) slack.View {
	return slack.View{
		Type:  "modal",
		Title: slack.Plain("Poll Information"),
		Close: slack.Plain("Close"),
		Blocks: []slack.Block{
			{Type: "section", Text: slack.Markdown(fmt.Sprintf("*Question:* %s", p.Question))},
			{
				Type: "context",
				Elements: []slack.Element{
					{Type: slack.Mrkdwn, Text: slack.Markdown(fmt.Sprintf("Created by <@%s>", p.CreatorID))},
				},
			},
		},
	}
}

func DeleteConfirmModal(privateMetadata string) slack.View {
	return slack.View{
		Type:            "modal",
		CallbackID:      CallbackDeleteConfirm,
		PrivateMetadata: privateMetadata,
		Title:           slack.Plain("Delete Poll"),
		Submit:          slack.Plain("Delete"),
		Close:           slack.Plain("Cancel"),
		Blocks: []slack.Block{
			{
				Type: "section",
				Text: slack.Markdown("Are you sure you want to delete this poll? This action is irreversible."),
			},
		},
	}
}

func DeletedModal() slack.View {
	return slack.View{
		Type:  "modal",
		Title: slack.Plain("Success"),
		Close: slack.Plain("Close"),
		Blocks: []slack.Block{
			{Type: "section", Text: &slack.Text{Type: slack.PlainText, Text: "The poll was successfully deleted."}},
		},
	}
}

func AddOptionModal(pollID string) slack.View {
	return slack.View{
		Type:            "modal",
		CallbackID:      CallbackAddOption,
		PrivateMetadata: EncodeMetadata(pollID),
		Title:           slack.Plain("Add an Option"),
		Submit:          slack.Plain("Add"),
		Close:           slack.Plain("Cancel"),
		Blocks: []slack.Block{
			{
				Type:    "input",
				BlockID: NewOptionBlock,
				Label:   slack.Plain("New option text"),
				Element: &slack.Element{
					Type:        "plain_text_input",
					ActionID:    NewOptionInput,
					Placeholder: slack.Plain("What's the new option?"),
				},
			},
			{
				Type:     "input",
				BlockID:  VoteNowBlock,
				Optional: true,
				Label:    slack.Plain(" "),
				Element: &slack.Element{
					Type:     "checkboxes",
					ActionID: VoteNowInput,
					Options: []slack.Option{
						{Text: slack.Plain("Vote for this option right away"), Value: SettingVoteNow},
					},
				},
			},
		},
	}
}

// InviteRequiredModal replaces the creation modal when the bot is not a
// member of one or more target channels. The draft has already been
// saved by the time this renders.
func InviteRequiredModal(channels []string, botName string) slack.View {
	mentionParts := make([]string, len(channels))
	for i, c := range channels {
		mentionParts[i] = fmt.Sprintf("<#%s>", c)
	}
	channelMentions := strings.Join(mentionParts, ", ")

	return slack.View{
		Type:  "modal",
		Title: slack.Plain("Invitation Required"),
		Close: slack.Plain("Close"),
		Blocks: []slack.Block{
			{
				Type: "section",
				Text: slack.Markdown(fmt.Sprintf("⚠️ *The poll bot needs to be invited into %s*", channelMentions)),
			},
			{
				Type: "section",
				Text: slack.Markdown(fmt.Sprintf(
					"To post your poll, the bot must be a member of the selected channel(s) first.\n\n"+
						"*Here's how:*\n1. Close this window.\n2. Go to the channel(s).\n"+
						"3. Type `/invite @%s` and send.\n4. Re-open the poll creator. Your draft has been saved!",
					botName)),
			},
		},
	}
}
