package interactions

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"

	"github.com/pollhype/slack.pollhype.app/slack"
	"github.com/pollhype/slack.pollhype.app/views"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler processes one decoded interaction. The fiber context is only
// used for the synchronous acknowledgment; side effects that talk back
// to Slack run detached.
type Handler func(c *fiber.Ctx, data *slack.InteractionPayload) error

// Dispatch tables over the closed id sets in the views package, built
// once at process start. Unknown ids fall through to a typed unhandled
// response instead of a crash.
var (
	blockActionHandlers = map[string]Handler{
		views.ActionVote:              handleVote,
		views.ActionAddOptionToModal:  handleAddOptionToModal,
		views.ActionOpenSettings:      handleOpenSettings,
		views.ActionEditPoll:          handleEditPollContent,
		views.ActionOpenDeleteConfirm: handleOpenDeleteConfirm,
		views.ActionDeletePoll:        handleDeleteConfirmed,
		views.ActionViewDetails:       handleViewDetails,
		views.ActionOpenCreateModal:   handleOpenCreateModal,
		views.ActionOpenAddOption:     handleOpenAddOptionModal,
	}

	viewSubmissionHandlers = map[string]Handler{
		views.CallbackCreatePoll:    handleSubmitPoll,
		views.CallbackEditPoll:      handleSubmitEditPoll,
		views.CallbackAddOption:     handleSubmitAddOption,
		views.CallbackDeleteConfirm: handleDeleteConfirmed,
	}
)

// Mount registers the unified interactions endpoint.
func Mount(app fiber.Router) {
	app.Post("/slack/interactions", func(c *fiber.Ctx) error {
		raw := c.FormValue("payload")
		if raw == "" {
			return c.Status(400).JSON(&fiber.Map{
				"status":  400,
				"message": "Missing interaction payload.",
			})
		}

		data := &slack.InteractionPayload{}
		if err := json.UnmarshalFromString(raw, data); err != nil {
			log.Errorf("interactions, err=%v", err)
			return c.Status(400).JSON(&fiber.Map{
				"status":  400,
				"message": "Invalid interaction payload.",
			})
		}

		switch data.Type {
		case slack.InteractionBlockActions:
			if len(data.Actions) == 0 {
				return c.SendStatus(200)
			}
			if handler, ok := blockActionHandlers[data.Actions[0].ActionID]; ok {
				return handler(c, data)
			}
			return unhandled(c, "block action", data.Actions[0].ActionID)

		case slack.InteractionViewSubmission:
			if handler, ok := viewSubmissionHandlers[data.View.CallbackID]; ok {
				return handler(c, data)
			}
			return unhandled(c, "view submission", data.View.CallbackID)
		}

		return unhandled(c, "interaction type", data.Type)
	})
}

func unhandled(c *fiber.Ctx, kind, id string) error {
	log.Warnf("interactions, unhandled %s=%s", kind, id)
	return c.Status(404).JSON(&fiber.Map{
		"status":  404,
		"message": "No handler for " + kind + " '" + id + "'.",
	})
}
