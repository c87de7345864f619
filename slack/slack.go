package slack

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/pollhype/slack.pollhype.app/configure"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const apiBase = "https://slack.com/api"

// All calls are bearer-token authenticated and best effort; the
// platform offers no retries and neither do we.

func token() string {
	return configure.Config.GetString("slack_token")
}

func post(method string, body interface{}) ([]byte, error) {
	agent := fiber.Post(apiBase + "/" + method)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+token())
	if body != nil {
		agent.JSON(body)
	}
	code, b, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, errs[0]
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("slack %s, status=%d", method, code)
	}
	return b, nil
}

func get(method, queryString string) ([]byte, error) {
	agent := fiber.Get(apiBase + "/" + method)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+token())
	agent.QueryString(queryString)
	code, b, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, errs[0]
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("slack %s, status=%d", method, code)
	}
	return b, nil
}

type APIResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func checkOK(method string, b []byte) error {
	r := APIResponse{}
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	if !r.OK {
		return fmt.Errorf("slack %s, err=%s", method, r.Error)
	}
	return nil
}

type PostMessageResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	TS      string `json:"ts"`
	Channel string `json:"channel"`
}

// PostMessage sends one rendered poll copy to a channel. The returned
// ts+channel pair is the message's identity for later updates.
func PostMessage(channel, text string, blocks []Block) (*PostMessageResponse, error) {
	b, err := post("chat.postMessage", fiber.Map{
		"channel": channel,
		"text":    text,
		"blocks":  blocks,
	})
	if err != nil {
		return nil, err
	}
	r := &PostMessageResponse{}
	if err = json.Unmarshal(b, r); err != nil {
		return nil, err
	}
	if !r.OK {
		return nil, fmt.Errorf("slack chat.postMessage, err=%s", r.Error)
	}
	return r, nil
}

func UpdateMessage(channel, ts, text string, blocks []Block) error {
	b, err := post("chat.update", fiber.Map{
		"channel": channel,
		"ts":      ts,
		"text":    text,
		"blocks":  blocks,
	})
	if err != nil {
		return err
	}
	return checkOK("chat.update", b)
}

func DeleteMessage(channel, ts string) error {
	b, err := post("chat.delete", fiber.Map{
		"channel": channel,
		"ts":      ts,
	})
	if err != nil {
		return err
	}
	return checkOK("chat.delete", b)
}

type permalinkResponse struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error"`
	Permalink string `json:"permalink"`
}

func GetPermalink(channel, ts string) (string, error) {
	b, err := get("chat.getPermalink", fmt.Sprintf("channel=%s&message_ts=%s", channel, ts))
	if err != nil {
		return "", err
	}
	r := permalinkResponse{}
	if err = json.Unmarshal(b, &r); err != nil {
		return "", err
	}
	if !r.OK {
		return "", fmt.Errorf("slack chat.getPermalink, err=%s", r.Error)
	}
	return r.Permalink, nil
}

func OpenView(triggerID string, view View) error {
	b, err := post("views.open", fiber.Map{
		"trigger_id": triggerID,
		"view":       view,
	})
	if err != nil {
		return err
	}
	return checkOK("views.open", b)
}

// UpdateView swaps an open modal in place, keyed by the view id and the
// hash Slack handed us with the triggering interaction.
func UpdateView(viewID, hash string, view View) error {
	b, err := post("views.update", fiber.Map{
		"view_id": viewID,
		"hash":    hash,
		"view":    view,
	})
	if err != nil {
		return err
	}
	return checkOK("views.update", b)
}

func PublishHomeView(userID string, view HomeView) error {
	b, err := post("views.publish", fiber.Map{
		"user_id": userID,
		"view":    view,
	})
	if err != nil {
		return err
	}
	return checkOK("views.publish", b)
}

type ConversationInfoResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Channel struct {
		ID       string `json:"id"`
		IsMember bool   `json:"is_member"`
	} `json:"channel"`
}

// ConversationInfo reports whether the bot is a member of the channel.
// Any failure reads as not-a-member; the caller treats that channel as
// needing an invite rather than erroring out.
func ConversationInfo(channel string) (*ConversationInfoResponse, error) {
	b, err := get("conversations.info", "channel="+channel)
	if err != nil {
		return nil, err
	}
	r := &ConversationInfoResponse{}
	if err = json.Unmarshal(b, r); err != nil {
		return nil, err
	}
	return r, nil
}

type AuthTestResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	User  string `json:"user"`
	// UserID is the bot's own user id.
	UserID string `json:"user_id"`
}

// AuthTest returns the bot's own identity, used to name the bot in the
// invite-required instructions.
func AuthTest() (*AuthTestResponse, error) {
	b, err := post("auth.test", nil)
	if err != nil {
		return nil, err
	}
	r := &AuthTestResponse{}
	if err = json.Unmarshal(b, r); err != nil {
		return nil, err
	}
	if !r.OK {
		return nil, fmt.Errorf("slack auth.test, err=%s", r.Error)
	}
	return r, nil
}
