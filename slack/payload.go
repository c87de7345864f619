package slack

// Inbound interaction schema. Slack posts a form-encoded `payload`
// field holding a JSON envelope discriminated by `type`.

const (
	InteractionBlockActions   = "block_actions"
	InteractionViewSubmission = "view_submission"
)

type User struct {
	ID string `json:"id"`
}

type Channel struct {
	ID string `json:"id"`
}

type MessageInfo struct {
	TS string `json:"ts"`
}

// Action is one entry of a block_actions payload's `actions` list.
type Action struct {
	ActionID       string  `json:"action_id"`
	BlockID        string  `json:"block_id"`
	Value          string  `json:"value,omitempty"`
	SelectedOption *Option `json:"selected_option,omitempty"`
}

// BlockValue is the state of one input element inside a submitted view.
type BlockValue struct {
	Value                 string   `json:"value,omitempty"`
	SelectedConversations []string `json:"selected_conversations,omitempty"`
	SelectedOptions       []Option `json:"selected_options,omitempty"`
}

// ViewState maps block_id -> action_id -> element state.
type ViewState struct {
	Values map[string]map[string]BlockValue `json:"values"`
}

// ViewPayload is the view attached to a modal interaction: its identity
// for views.update, its routing callback and its submitted state.
type ViewPayload struct {
	ID              string     `json:"id"`
	Hash            string     `json:"hash"`
	Type            string     `json:"type"`
	CallbackID      string     `json:"callback_id"`
	PrivateMetadata string     `json:"private_metadata"`
	Title           *Text      `json:"title,omitempty"`
	Submit          *Text      `json:"submit,omitempty"`
	Close           *Text      `json:"close,omitempty"`
	Blocks          []Block    `json:"blocks,omitempty"`
	State           *ViewState `json:"state,omitempty"`
}

// InteractionPayload is the unified envelope for block_actions and
// view_submission interactions.
type InteractionPayload struct {
	Type      string      `json:"type"`
	TriggerID string      `json:"trigger_id"`
	User      User        `json:"user"`
	Channel   Channel     `json:"channel"`
	Message   MessageInfo `json:"message"`
	Actions   []Action    `json:"actions"`
	View      ViewPayload `json:"view"`
}

// EventsEnvelope is the lifecycle-events payload: the one-time URL
// verification challenge plus app events.
type EventsEnvelope struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
	Event     struct {
		Type string `json:"type"`
		User string `json:"user"`
	} `json:"event"`
}

// ViewErrors is the view_submission response that keeps the modal open
// with field-level validation messages.
type ViewErrors struct {
	ResponseAction string            `json:"response_action"`
	Errors         map[string]string `json:"errors"`
}

func NewViewErrors(errors map[string]string) ViewErrors {
	return ViewErrors{ResponseAction: "errors", Errors: errors}
}

// ViewUpdate is the view_submission response that swaps the open modal
// for another view.
type ViewUpdate struct {
	ResponseAction string `json:"response_action"`
	View           View   `json:"view"`
}

func NewViewUpdate(view View) ViewUpdate {
	return ViewUpdate{ResponseAction: "update", View: view}
}
