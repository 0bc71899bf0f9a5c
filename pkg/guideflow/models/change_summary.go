package models

// ChangeSummary is the coarse added/modified/deleted count shown to the
// operator before a save is committed. It deliberately over-reports: a step
// that was replaced can register in both the count delta and the id-based
// add/delete, which biases the confirmation toward surfacing large edits.
type ChangeSummary struct {
	Added    int `json:"added"`
	Modified int `json:"modified"`
	Deleted  int `json:"deleted"`
}

// Empty reports whether the edit changed nothing the analyzer tracks.
func (c ChangeSummary) Empty() bool {
	return c.Added == 0 && c.Modified == 0 && c.Deleted == 0
}
