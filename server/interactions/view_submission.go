package interactions

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pollhype/slack.pollhype.app/mongo"
	"github.com/pollhype/slack.pollhype.app/poll"
	"github.com/pollhype/slack.pollhype.app/slack"
	"github.com/pollhype/slack.pollhype.app/views"
)

// handleSubmitPoll processes the creation modal. Validation failures
// keep the modal open with field errors; a failed membership check
// saves a draft and swaps in the invite instructions; otherwise the
// poll is persisted and broadcast in the background.
func handleSubmitPoll(c *fiber.Ctx, data *slack.InteractionPayload) error {
	state := data.View.State
	userID := data.User.ID

	question := strings.TrimSpace(stateValue(state, views.QuestionBlock, views.QuestionInput).Value)
	choiceTexts := extractChoices(state)
	channels := stateValue(state, views.ChannelBlock, views.ChannelsInput).SelectedConversations
	settings := selectedSettings(state)

	errors := map[string]string{}
	if question == "" {
		errors[views.QuestionBlock] = "A question is required."
	}
	if len(choiceTexts) == 0 {
		errors[views.ChoiceBlockBase+"0"] = "At least one option is required."
	}
	if len(channels) == 0 {
		errors[views.ChannelBlock] = "At least one channel must be selected."
	}
	if len(errors) > 0 {
		return c.JSON(slack.NewViewErrors(errors))
	}

	notJoined := checkMemberships(channels)
	if len(notJoined) > 0 {
		draft := &poll.Draft{
			UserID:                  userID,
			Question:                question,
			Choices:                 choiceTexts,
			AllowMultipleVotes:      settings[views.SettingAllowMultiple],
			AllowOthersToAddOptions: settings[views.SettingAllowOthersToAdd],
			Channels:                channels,
		}
		if err := mongo.UpsertDraft(draft); err != nil {
			log.Errorf("draft, err=%v", err)
		}

		botName := "the bot"
		if identity, err := slack.AuthTest(); err == nil {
			botName = identity.User
		}
		return c.JSON(slack.NewViewUpdate(views.InviteRequiredModal(notJoined, botName)))
	}

	choices := make([]poll.Choice, len(choiceTexts))
	for i, text := range choiceTexts {
		choices[i] = poll.NewChoice(text)
	}

	p := &poll.Poll{
		Question:                question,
		Choices:                 choices,
		CreatorID:               userID,
		AllowMultipleVotes:      settings[views.SettingAllowMultiple],
		AllowOthersToAddOptions: settings[views.SettingAllowOthersToAdd],
		Channels:                channels,
		Messages:                []poll.MessageRef{},
	}
	if err := mongo.InsertPoll(p); err != nil {
		return c.SendStatus(200)
	}

	// The draft served its purpose the moment a poll landed.
	if err := mongo.DeleteDraft(userID); err != nil {
		log.Errorf("draft, err=%v", err)
	}

	go broadcastPoll(p)
	return c.SendStatus(200)
}

// checkMemberships probes every target channel concurrently and
// returns the ones the bot cannot post to. Any lookup failure counts
// as not-a-member; private channels the bot cannot see land here too.
func checkMemberships(channels []string) []string {
	var (
		mtx       sync.Mutex
		notJoined []string
	)

	wg := sync.WaitGroup{}
	wg.Add(len(channels))
	for _, channel := range channels {
		go func(channel string) {
			defer wg.Done()
			info, err := slack.ConversationInfo(channel)
			if err != nil || !info.OK || !info.Channel.IsMember {
				if err != nil {
					log.Errorf("slack, err=%v", err)
				}
				mtx.Lock()
				notJoined = append(notJoined, channel)
				mtx.Unlock()
			}
		}(channel)
	}
	wg.Wait()

	return notJoined
}

// handleSubmitEditPoll applies an edit: surviving positions keep their
// choice ids and voters, the rest are minted fresh, and every posted
// copy is re-rendered.
func handleSubmitEditPoll(c *fiber.Ctx, data *slack.InteractionPayload) error {
	meta, err := views.DecodeMetadata(data.View.PrivateMetadata)
	if err != nil {
		return c.SendStatus(200)
	}
	id, err := primitive.ObjectIDFromHex(meta.PollID)
	if err != nil {
		return c.SendStatus(200)
	}

	p, err := mongo.FetchPoll(id)
	if err != nil || p == nil {
		return c.SendStatus(200)
	}
	if p.CreatorID != data.User.ID {
		return c.JSON(slack.NewViewErrors(map[string]string{
			views.QuestionBlock: "You are not authorized to edit this poll.",
		}))
	}

	state := data.View.State
	question := strings.TrimSpace(stateValue(state, views.QuestionBlock, views.QuestionInput).Value)
	choiceTexts := extractChoices(state)
	settings := selectedSettings(state)

	errors := map[string]string{}
	if question == "" {
		errors[views.QuestionBlock] = "A question is required."
	}
	if len(choiceTexts) == 0 {
		errors[views.ChoiceBlockBase+"0"] = "At least one option is required."
	}
	if len(errors) > 0 {
		return c.JSON(slack.NewViewErrors(errors))
	}

	merged := poll.MergeChoices(p.Choices, choiceTexts)
	if err = mongo.SetPollContent(id, question, merged, settings[views.SettingAllowOthersToAdd]); err != nil {
		return c.SendStatus(200)
	}

	go propagatePoll(id)
	return c.SendStatus(200)
}

// handleSubmitAddOption appends a choice to a live poll, optionally
// casting the submitter's vote for it in the same stroke.
func handleSubmitAddOption(c *fiber.Ctx, data *slack.InteractionPayload) error {
	meta, err := views.DecodeMetadata(data.View.PrivateMetadata)
	if err != nil {
		return c.SendStatus(200)
	}
	id, err := primitive.ObjectIDFromHex(meta.PollID)
	if err != nil {
		return c.SendStatus(200)
	}

	state := data.View.State
	text := strings.TrimSpace(stateValue(state, views.NewOptionBlock, views.NewOptionInput).Value)
	if text == "" {
		return c.JSON(slack.NewViewErrors(map[string]string{
			views.NewOptionBlock: "Option text cannot be empty.",
		}))
	}

	voteNow := len(stateValue(state, views.VoteNowBlock, views.VoteNowInput).SelectedOptions) > 0

	p, err := mongo.FetchPoll(id)
	if err != nil || p == nil {
		return c.SendStatus(200)
	}

	choice := poll.NewChoice(text)
	if voteNow {
		// Single-vote exclusivity holds for the instant self-vote too.
		if !p.AllowMultipleVotes {
			if err = mongo.PullVoterEverywhere(id, data.User.ID); err != nil {
				return c.SendStatus(200)
			}
		}
		choice.Voters = []string{data.User.ID}
	}

	if err = mongo.PushChoice(id, choice); err != nil {
		return c.SendStatus(200)
	}

	go propagatePoll(id)
	return c.SendStatus(200)
}
