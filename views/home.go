package views

import (
	"fmt"

	"github.com/gobuffalo/packr/v2"

	"github.com/pollhype/slack.pollhype.app/poll"
	"github.com/pollhype/slack.pollhype.app/slack"
)

var assets = packr.New("views", "./assets")

// AppHome builds the home tab: the embedded base view plus the user's
// recent polls, newest first, linked through their first message's
// permalink when one was captured.
func AppHome(recent []poll.Poll) (slack.HomeView, error) {
	base, err := assets.FindString("app_home.json")
	if err != nil {
		return slack.HomeView{}, err
	}

	home := slack.HomeView{}
	if err = json.UnmarshalFromString(base, &home); err != nil {
		return slack.HomeView{}, err
	}

	if len(recent) == 0 {
		return home, nil
	}

	home.Blocks = append(home.Blocks,
		slack.Block{Type: "divider"},
		slack.Block{Type: "header", Text: slack.Plain("Your Recent Polls")},
	)

	for i := range recent {
		p := &recent[i]

		permalink := "#"
		if len(p.Messages) > 0 && p.Messages[0].Permalink != "" {
			permalink = p.Messages[0].Permalink
		}

		home.Blocks = append(home.Blocks,
			slack.Block{Type: "divider"},
			slack.Block{
				Type: "section",
				Text: slack.Markdown(fmt.Sprintf("<%s|*%s*>", permalink, p.Question)),
				Accessory: &slack.Element{
					Type:     "button",
					ActionID: ActionViewDetails,
					Text:     slack.Plain("Quick View"),
					Value:    p.ID.Hex(),
				},
			},
		)

		for j, c := range p.Choices {
			home.Blocks = append(home.Blocks, slack.Block{
				Type: "context",
				Elements: []slack.Element{
					{Type: slack.Mrkdwn, Text: slack.Markdown(fmt.Sprintf("%s %s", poll.Marker(j), c.Text))},
				},
			})
		}
	}

	return home, nil
}
