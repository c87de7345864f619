package views

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Closed set of control and callback identifiers. The dispatch maps in
// the interactions package are built over exactly these.
const (
	ActionVote              = "vote_for_choice"
	ActionAddOptionToModal  = "add_option_to_modal"
	ActionOpenSettings      = "open_poll_settings"
	ActionEditPoll          = "edit_poll_content"
	ActionOpenDeleteConfirm = "open_delete_confirmation_modal"
	ActionDeletePoll        = "delete_poll_from_settings"
	ActionViewDetails       = "view_poll_details"
	ActionOpenCreateModal   = "open_create_poll_modal"
	ActionOpenAddOption     = "open_add_option_modal"

	CallbackCreatePoll    = "submit_poll_modal"
	CallbackEditPoll      = "submit_edit_poll_modal"
	CallbackAddOption     = "submit_add_option_modal"
	CallbackDeleteConfirm = "delete_poll_confirmation"
)

// Block and element ids shared between modal construction and state
// extraction.
const (
	QuestionBlock    = "question_block"
	QuestionInput    = "question_input"
	ChoiceBlockBase  = "choice_block_"
	ChoiceInputBase  = "choice_input_"
	AddOptionSection = "add_option_section"
	SettingsBlock    = "settings_block"
	SettingsInput    = "settings_checkboxes"
	ChannelBlock     = "channel_block"
	ChannelsInput    = "channels_input"
	NewOptionBlock   = "new_option_block"
	NewOptionInput   = "new_option_input"
	VoteNowBlock     = "vote_for_option_block"
	VoteNowInput     = "vote_for_option_checkbox"

	SettingAllowMultiple    = "allow_multiple"
	SettingAllowOthersToAdd = "allow_others_to_add"
	SettingVoteNow          = "vote_now"
)

// Metadata rides in a modal's private_metadata field to carry the poll
// identity across the settings/edit/delete flow.
type Metadata struct {
	PollID string `json:"poll_id"`
}

func EncodeMetadata(pollID string) string {
	s, _ := json.MarshalToString(Metadata{PollID: pollID})
	return s
}

func DecodeMetadata(raw string) (Metadata, error) {
	m := Metadata{}
	err := json.UnmarshalFromString(raw, &m)
	return m, err
}
