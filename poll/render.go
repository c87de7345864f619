package poll

// markers are the positional symbols for the first ten choices. Purely
// cosmetic; selection controls are keyed by the choice's stable id.
var markers = [...]string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

const fallbackMarker = "🔘"

// Marker returns the display symbol for choice index i.
func Marker(i int) string {
	if i >= 0 && i < len(markers) {
		return markers[i]
	}
	return fallbackMarker
}

// ChoiceLine is one rendered choice row.
type ChoiceLine struct {
	// ChoiceID is the hex form of the choice's stable id; it is the
	// identity of the row's selection control.
	ChoiceID   string   `json:"choice_id"`
	Label      string   `json:"label"`
	Marker     string   `json:"marker"`
	Count      int      `json:"count"`
	Percentage int      `json:"percentage"`
	Voters     []string `json:"voters"`
}

// DisplayPayload is the platform-agnostic rendering of a poll. The
// views package turns it into Block Kit layout; nothing in here depends
// on the wire shape.
type DisplayPayload struct {
	PollID              string       `json:"poll_id"`
	Question            string       `json:"question"`
	Choices             []ChoiceLine `json:"choices"`
	AllowMultipleNotice bool         `json:"allow_multiple_notice"`
	AllowAddOption      bool         `json:"allow_add_option"`
	TotalVotes          int          `json:"total_votes"`
	CreatorID           string       `json:"creator_id"`
}

// Render builds the display payload for a poll and its aggregation.
// Deterministic given identical inputs; every choice is present even
// with zero voters.
func Render(p *Poll, agg Aggregation) DisplayPayload {
	dp := DisplayPayload{
		PollID:              p.ID.Hex(),
		Question:            p.Question,
		Choices:             make([]ChoiceLine, len(p.Choices)),
		AllowMultipleNotice: p.AllowMultipleVotes,
		AllowAddOption:      p.AllowOthersToAddOptions,
		TotalVotes:          agg.TotalVotes,
		CreatorID:           p.CreatorID,
	}

	for i := range p.Choices {
		line := ChoiceLine{
			ChoiceID: p.Choices[i].ID.Hex(),
			Label:    p.Choices[i].Text,
			Marker:   Marker(i),
			Voters:   p.Choices[i].Voters,
		}
		if i < len(agg.PerChoice) && agg.PerChoice[i].ChoiceID == p.Choices[i].ID {
			line.Count = agg.PerChoice[i].Count
			line.Percentage = agg.PerChoice[i].Percentage
		} else {
			for _, c := range agg.PerChoice {
				if c.ChoiceID == p.Choices[i].ID {
					line.Count = c.Count
					line.Percentage = c.Percentage
					break
				}
			}
		}
		dp.Choices[i] = line
	}

	return dp
}
