package views

import (
	"fmt"
	"strings"

	"github.com/pollhype/slack.pollhype.app/poll"
	"github.com/pollhype/slack.pollhype.app/slack"
)

// PollBlocks turns a rendered poll into the Block Kit layout that is
// posted to channels. Pure layout; every decision already happened in
// poll.Render.
func PollBlocks(dp poll.DisplayPayload) []slack.Block {
	blocks := []slack.Block{
		{
			Type: "section",
			Text: slack.Markdown(fmt.Sprintf("*%s*", dp.Question)),
			Accessory: &slack.Element{
				Type:     "overflow",
				ActionID: ActionOpenSettings,
				Options: []slack.Option{
					{Text: slack.Plain("Settings"), Value: "settings_" + dp.PollID},
				},
			},
		},
	}

	if dp.AllowMultipleNotice {
		blocks = append(blocks, slack.Block{
			Type: "context",
			Elements: []slack.Element{
				{Type: slack.Mrkdwn, Text: slack.Markdown("💡 _Multiple votes are allowed_")},
			},
		})
	}

	for _, line := range dp.Choices {
		blocks = append(blocks, slack.Block{
			Type: "section",
			Text: slack.Markdown(fmt.Sprintf("%s *%s* `%d` %d%% \n%s",
				line.Marker, line.Label, line.Count, line.Percentage, mentions(line.Voters))),
			Accessory: &slack.Element{
				Type:     "button",
				ActionID: ActionVote,
				Text:     slack.Plain(line.Marker),
				Value:    line.ChoiceID,
			},
		})
	}

	if dp.AllowAddOption {
		blocks = append(blocks, slack.Block{
			Type: "actions",
			Elements: []slack.Element{
				{
					Type:     "button",
					ActionID: ActionOpenAddOption,
					Text:     slack.Plain("Add Option"),
					Value:    dp.PollID,
				},
			},
		})
	}

	blocks = append(blocks, slack.Block{
		Type: "context",
		Elements: []slack.Element{
			{Type: slack.Mrkdwn, Text: slack.Markdown(fmt.Sprintf("*Total votes:* %d", dp.TotalVotes))},
			{Type: slack.Mrkdwn, Text: slack.Markdown(fmt.Sprintf("Created by <@%s>", dp.CreatorID))},
		},
	})

	return blocks
}

func mentions(voters []string) string {
	if len(voters) == 0 {
		return ""
	}
	parts := make([]string, len(voters))
	for i, uid := range voters {
		parts[i] = fmt.Sprintf("<@%s>", uid)
	}
	return strings.Join(parts, " ")
}

// DetailsModal is the read-only results view opened from a poll's
// "Quick View" control.
func DetailsModal(dp poll.DisplayPayload) slack.View {
	blocks := []slack.Block{
		{Type: "section", Text: slack.Markdown(fmt.Sprintf("*%s*", dp.Question))},
	}

	if dp.AllowMultipleNotice {
		blocks = append(blocks, slack.Block{
			Type: "context",
			Elements: []slack.Element{
				{Type: slack.Mrkdwn, Text: slack.Markdown("💡 _Multiple votes are allowed_")},
			},
		})
	}

	for _, line := range dp.Choices {
		voterText := mentions(line.Voters)
		if voterText == "" {
			voterText = "_No votes yet_"
		}
		blocks = append(blocks,
			slack.Block{
				Type: "section",
				Text: slack.Markdown(fmt.Sprintf("%s *%s* (`%d` votes | %d%%)",
					line.Marker, line.Label, line.Count, line.Percentage)),
			},
			slack.Block{
				Type: "context",
				Elements: []slack.Element{
					{Type: slack.Mrkdwn, Text: slack.Markdown(voterText)},
				},
			},
		)
	}

	blocks = append(blocks,
		slack.Block{Type: "divider"},
		slack.Block{
			Type: "context",
			Elements: []slack.Element{
				{Type: slack.Mrkdwn, Text: slack.Markdown(fmt.Sprintf("Created by <@%s>", dp.CreatorID))},
			},
		},
	)

	return slack.View{
		Type:   "modal",
		Title:  slack.Plain("Poll Details"),
		Close:  slack.Plain("Close"),
		Blocks: blocks,
	}
}
