package server

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"

	"github.com/pollhype/slack.pollhype.app/mongo"
	"github.com/pollhype/slack.pollhype.app/slack"
	"github.com/pollhype/slack.pollhype.app/views"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const recentPollLimit = 5

// Routes registers the health check, the slash command and the
// lifecycle events endpoint. Everything here acks fast; side effects
// that call back into Slack run detached.
func Routes(app fiber.Router) {
	health := func(c *fiber.Ctx) error {
		return c.JSON(&fiber.Map{"status": "ok"})
	}
	app.Get("/healthz", health)
	app.Head("/healthz", health)

	app.Post("/slack/commands", func(c *fiber.Ctx) error {
		triggerID := c.FormValue("trigger_id")
		channelID := c.FormValue("channel_id")
		userID := c.FormValue("user_id")

		draft, err := mongo.FindDraft(userID)
		if err != nil {
			draft = nil
		}
		view := views.CreatePollModal(channelID, draft)

		go func() {
			if err := slack.OpenView(triggerID, view); err != nil {
				log.Errorf("slack, err=%v", err)
			}
		}()
		return c.SendStatus(200)
	})

	app.Post("/slack/events", func(c *fiber.Ctx) error {
		envelope := slack.EventsEnvelope{}
		if err := json.Unmarshal(c.Body(), &envelope); err != nil {
			log.Errorf("events, err=%v", err)
			return c.SendStatus(400)
		}

		if envelope.Type == "url_verification" {
			return c.SendString(envelope.Challenge)
		}

		if envelope.Event.Type == "app_home_opened" && envelope.Event.User != "" {
			userID := envelope.Event.User
			go publishHome(userID)
		}

		return c.SendStatus(200)
	})
}

func publishHome(userID string) {
	recent, err := mongo.RecentPollsByCreator(userID, recentPollLimit)
	if err != nil {
		return
	}

	home, err := views.AppHome(recent)
	if err != nil {
		log.Errorf("home, err=%v", err)
		return
	}

	if err = slack.PublishHomeView(userID, home); err != nil {
		log.Errorf("slack, err=%v", err)
	}
}
