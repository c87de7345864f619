package interactions

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pollhype/slack.pollhype.app/mongo"
	"github.com/pollhype/slack.pollhype.app/poll"
	"github.com/pollhype/slack.pollhype.app/slack"
	"github.com/pollhype/slack.pollhype.app/views"
)

// handleVote applies one vote toggle. The poll is resolved from the
// clicked message, the mutation is persisted before the ack, and the
// fan-out to every posted copy runs detached.
func handleVote(c *fiber.Ctx, data *slack.InteractionPayload) error {
	choiceID, err := primitive.ObjectIDFromHex(data.Actions[0].Value)
	if err != nil {
		return c.SendStatus(200)
	}

	p, err := mongo.FindPollByMessage(data.Channel.ID, data.Message.TS)
	if err != nil || p == nil {
		// Stale button on a deleted poll; acknowledged as success so
		// nothing about the poll's fate leaks to the clicker.
		return c.SendStatus(200)
	}

	change, ok := poll.ToggleVote(p, choiceID, data.User.ID)
	if !ok {
		return c.SendStatus(200)
	}

	if err = mongo.ApplyVoteChange(p.ID, choiceID, data.User.ID, change); err != nil {
		return c.SendStatus(200)
	}

	go propagatePoll(p.ID)
	return c.SendStatus(200)
}

// handleAddOptionToModal grows the open create/edit modal by one choice
// input.
func handleAddOptionToModal(c *fiber.Ctx, data *slack.InteractionPayload) error {
	updated := views.GrowChoiceInputs(data.View)
	viewID, hash := data.View.ID, data.View.Hash

	go func() {
		if err := slack.UpdateView(viewID, hash, updated); err != nil {
			log.Errorf("slack, err=%v", err)
		}
	}()
	return c.SendStatus(200)
}

// handleOpenSettings opens the settings modal for the creator, or the
// read-only info view for anyone else.
func handleOpenSettings(c *fiber.Ctx, data *slack.InteractionPayload) error {
	action := data.Actions[0]
	if action.SelectedOption == nil {
		return c.SendStatus(200)
	}

	id, err := primitive.ObjectIDFromHex(strings.TrimPrefix(action.SelectedOption.Value, "settings_"))
	if err != nil {
		return c.SendStatus(200)
	}

	p, err := mongo.FetchPoll(id)
	if err != nil || p == nil {
		return c.SendStatus(200)
	}

	view := views.InfoModal(p)
	if p.CreatorID == data.User.ID {
		view = views.SettingsModal(p)
	}

	triggerID := data.TriggerID
	go func() {
		if err := slack.OpenView(triggerID, view); err != nil {
			log.Errorf("slack, err=%v", err)
		}
	}()
	return c.SendStatus(200)
}

// handleEditPollContent swaps the settings modal for the edit view.
// Creator-only; anyone else gets a clean no-op.
func handleEditPollContent(c *fiber.Ctx, data *slack.InteractionPayload) error {
	meta, err := views.DecodeMetadata(data.View.PrivateMetadata)
	if err != nil {
		return c.SendStatus(200)
	}
	id, err := primitive.ObjectIDFromHex(meta.PollID)
	if err != nil {
		return c.SendStatus(200)
	}

	p, err := mongo.FetchPoll(id)
	if err != nil || p == nil || p.CreatorID != data.User.ID {
		return c.SendStatus(200)
	}

	updated := views.EditPollModal(p)
	viewID, hash := data.View.ID, data.View.Hash
	go func() {
		if err := slack.UpdateView(viewID, hash, updated); err != nil {
			log.Errorf("slack, err=%v", err)
		}
	}()
	return c.SendStatus(200)
}

// handleOpenDeleteConfirm swaps the settings modal for the dedicated
// delete confirmation.
func handleOpenDeleteConfirm(c *fiber.Ctx, data *slack.InteractionPayload) error {
	updated := views.DeleteConfirmModal(data.View.PrivateMetadata)
	viewID, hash := data.View.ID, data.View.Hash
	go func() {
		if err := slack.UpdateView(viewID, hash, updated); err != nil {
			log.Errorf("slack, err=%v", err)
		}
	}()
	return c.SendStatus(200)
}

// handleDeleteConfirmed destroys the poll and every posted copy of it.
// Reached either as the confirmation modal's submit or as a direct
// settings action; both paths re-verify the creator.
func handleDeleteConfirmed(c *fiber.Ctx, data *slack.InteractionPayload) error {
	meta, err := views.DecodeMetadata(data.View.PrivateMetadata)
	if err != nil {
		return c.SendStatus(200)
	}
	id, err := primitive.ObjectIDFromHex(meta.PollID)
	if err != nil {
		return c.SendStatus(200)
	}

	p, err := mongo.FetchPoll(id)
	if err != nil || p == nil || p.CreatorID != data.User.ID {
		return c.SendStatus(200)
	}

	for _, ref := range p.Messages {
		if err := slack.DeleteMessage(ref.Channel, ref.TS); err != nil {
			log.Errorf("slack, err=%v", err)
		}
	}

	if err = mongo.DeletePoll(p.ID); err != nil {
		return c.SendStatus(200)
	}

	if data.Type == slack.InteractionBlockActions {
		updated := views.DeletedModal()
		viewID, hash := data.View.ID, data.View.Hash
		go func() {
			if err := slack.UpdateView(viewID, hash, updated); err != nil {
				log.Errorf("slack, err=%v", err)
			}
		}()
	}

	// An empty 200 on the view_submission path closes the modal.
	return c.SendStatus(200)
}

// handleViewDetails opens the read-only results modal.
func handleViewDetails(c *fiber.Ctx, data *slack.InteractionPayload) error {
	id, err := primitive.ObjectIDFromHex(data.Actions[0].Value)
	if err != nil {
		return c.SendStatus(200)
	}

	p, err := mongo.FetchPoll(id)
	if err != nil || p == nil {
		return c.SendStatus(200)
	}

	view := views.DetailsModal(poll.Render(p, poll.Aggregate(p)))
	triggerID := data.TriggerID
	go func() {
		if err := slack.OpenView(triggerID, view); err != nil {
			log.Errorf("slack, err=%v", err)
		}
	}()
	return c.SendStatus(200)
}

// handleOpenCreateModal opens the creation modal from the app home,
// replaying any saved draft.
func handleOpenCreateModal(c *fiber.Ctx, data *slack.InteractionPayload) error {
	draft, err := mongo.FindDraft(data.User.ID)
	if err != nil {
		draft = nil
	}

	view := views.CreatePollModal(data.Channel.ID, draft)
	triggerID := data.TriggerID
	go func() {
		if err := slack.OpenView(triggerID, view); err != nil {
			log.Errorf("slack, err=%v", err)
		}
	}()
	return c.SendStatus(200)
}

// handleOpenAddOptionModal opens the add-option modal from a poll
// message's "Add Option" button.
func handleOpenAddOptionModal(c *fiber.Ctx, data *slack.InteractionPayload) error {
	view := views.AddOptionModal(data.Actions[0].Value)
	triggerID := data.TriggerID
	go func() {
		if err := slack.OpenView(triggerID, view); err != nil {
			log.Errorf("slack, err=%v", err)
		}
	}()
	return c.SendStatus(200)
}
