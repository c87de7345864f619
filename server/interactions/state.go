package interactions

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pollhype/slack.pollhype.app/slack"
	"github.com/pollhype/slack.pollhype.app/views"
)

// extractChoices pulls the non-empty choice texts out of a submitted
// view state, ordered by the numeric index in the block id. The state
// map carries no ordering of its own.
func extractChoices(state *slack.ViewState) []string {
	if state == nil {
		return nil
	}

	type indexed struct {
		index int
		text  string
	}
	var found []indexed

	for blockID, blockData := range state.Values {
		if !strings.HasPrefix(blockID, views.ChoiceBlockBase) {
			continue
		}
		index, err := strconv.Atoi(strings.TrimPrefix(blockID, views.ChoiceBlockBase))
		if err != nil {
			continue
		}
		for _, v := range blockData {
			if text := strings.TrimSpace(v.Value); text != "" {
				found = append(found, indexed{index, text})
			}
			break
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].index < found[j].index })

	choices := make([]string, len(found))
	for i, f := range found {
		choices[i] = f.text
	}
	return choices
}

// stateValue returns the state of one input element, zero when absent.
func stateValue(state *slack.ViewState, blockID, actionID string) slack.BlockValue {
	if state == nil {
		return slack.BlockValue{}
	}
	if block, ok := state.Values[blockID]; ok {
		return block[actionID]
	}
	return slack.BlockValue{}
}

// selectedSettings returns the set of checked settings values.
func selectedSettings(state *slack.ViewState) map[string]bool {
	selected := map[string]bool{}
	for _, opt := range stateValue(state, views.SettingsBlock, views.SettingsInput).SelectedOptions {
		selected[opt.Value] = true
	}
	return selected
}
