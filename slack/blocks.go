package slack

// Block Kit layout schema, narrowed to the surface the bot emits.
// Everything the platform receives or returns goes through these typed
// shapes; nothing downstream touches raw payload maps.

const (
	PlainText = "plain_text"
	Mrkdwn    = "mrkdwn"
)

type Text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

func Plain(s string) *Text {
	return &Text{Type: PlainText, Text: s}
}

func Markdown(s string) *Text {
	return &Text{Type: Mrkdwn, Text: s}
}

type Option struct {
	Text  *Text  `json:"text"`
	Value string `json:"value"`
}

// Element covers buttons, inputs, selects, overflows and checkboxes.
type Element struct {
	Type                 string   `json:"type"`
	ActionID             string   `json:"action_id,omitempty"`
	Text                 *Text    `json:"text,omitempty"`
	Value                string   `json:"value,omitempty"`
	Style                string   `json:"style,omitempty"`
	Placeholder          *Text    `json:"placeholder,omitempty"`
	InitialValue         string   `json:"initial_value,omitempty"`
	Options              []Option `json:"options,omitempty"`
	InitialOptions       []Option `json:"initial_options,omitempty"`
	InitialConversations []string `json:"initial_conversations,omitempty"`
}

// Context block entries are bare text objects on the wire; an Element
// typed mrkdwn or plain_text flattens to its nested Text when
// serialized.
func (e Element) MarshalJSON() ([]byte, error) {
	if (e.Type == Mrkdwn || e.Type == PlainText) && e.Text != nil {
		return json.Marshal(e.Text)
	}
	type alias Element
	return json.Marshal(alias(e))
}

type Block struct {
	Type      string    `json:"type"`
	BlockID   string    `json:"block_id,omitempty"`
	Text      *Text     `json:"text,omitempty"`
	Label     *Text     `json:"label,omitempty"`
	Element   *Element  `json:"element,omitempty"`
	Accessory *Element  `json:"accessory,omitempty"`
	Elements  []Element `json:"elements,omitempty"`
	Optional  bool      `json:"optional,omitempty"`
}

type View struct {
	Type            string  `json:"type"`
	CallbackID      string  `json:"callback_id,omitempty"`
	PrivateMetadata string  `json:"private_metadata,omitempty"`
	Title           *Text   `json:"title,omitempty"`
	Submit          *Text   `json:"submit,omitempty"`
	Close           *Text   `json:"close,omitempty"`
	Blocks          []Block `json:"blocks"`
}

// HomeView is the app-home tab surface; same blocks, no modal chrome.
type HomeView struct {
	Type   string  `json:"type"`
	Blocks []Block `json:"blocks"`
}
