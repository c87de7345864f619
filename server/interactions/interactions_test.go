package interactions

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/pollhype/slack.pollhype.app/views"
)

func postInteraction(t *testing.T, app *fiber.App, payload string) *http.Response {
	t.Helper()

	form := url.Values{}
	form.Set("payload", payload)
	req, err := http.NewRequest("POST", "/slack/interactions", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test: %v", err)
	}
	return resp
}

func TestDispatchMapsCoverKnownIds(t *testing.T) {
	actions := []string{
		views.ActionVote, views.ActionAddOptionToModal, views.ActionOpenSettings,
		views.ActionEditPoll, views.ActionOpenDeleteConfirm, views.ActionDeletePoll,
		views.ActionViewDetails, views.ActionOpenCreateModal, views.ActionOpenAddOption,
	}
	for _, id := range actions {
		if _, ok := blockActionHandlers[id]; !ok {
			t.Errorf("no block action handler for %s", id)
		}
	}

	callbacks := []string{
		views.CallbackCreatePoll, views.CallbackEditPoll,
		views.CallbackAddOption, views.CallbackDeleteConfirm,
	}
	for _, id := range callbacks {
		if _, ok := viewSubmissionHandlers[id]; !ok {
			t.Errorf("no view submission handler for %s", id)
		}
	}
}

func TestUnknownIdsAreUnhandledNotFatal(t *testing.T) {
	app := fiber.New()
	Mount(app)

	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "unknown block action",
			payload: `{"type":"block_actions","actions":[{"action_id":"no_such_action"}]}`,
		},
		{
			name:    "unknown view callback",
			payload: `{"type":"view_submission","view":{"callback_id":"no_such_callback"}}`,
		},
		{
			name:    "unknown interaction type",
			payload: `{"type":"shortcut"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postInteraction(t, app, tt.payload)
			if resp.StatusCode != 404 {
				t.Errorf("status = %d, want 404", resp.StatusCode)
			}
		})
	}
}

func TestEmptyActionsAcked(t *testing.T) {
	app := fiber.New()
	Mount(app)

	resp := postInteraction(t, app, `{"type":"block_actions","actions":[]}`)
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMissingPayloadRejected(t *testing.T) {
	app := fiber.New()
	Mount(app)

	req, err := http.NewRequest("POST", "/slack/interactions", strings.NewReader(""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
