package poll

// MergeChoices builds the choice list for an edit submission. Positions
// that existed before keep their stable id and voter set under the new
// text; positions past the old list become brand new choices. In-flight
// vote buttons keyed by the surviving ids stay valid.
func MergeChoices(old []Choice, texts []string) []Choice {
	merged := make([]Choice, 0, len(texts))
	for i, text := range texts {
		if i < len(old) {
			merged = append(merged, Choice{
				ID:     old[i].ID,
				Text:   text,
				Voters: old[i].Voters,
			})
		} else {
			merged = append(merged, NewChoice(text))
		}
	}
	return merged
}
