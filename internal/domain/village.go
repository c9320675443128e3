package domain

// Topic is one fixed subject area tracked independently across phases.
// Topics share ids across phases so results can be cross-referenced by key.
type Topic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// VillageInfo identifies the community under study and the person speaking
// for it. Captured once during the introduction step.
type VillageInfo struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Role    string `json:"role"`
}

// Complete reports whether the introduction captured enough to begin.
func (v VillageInfo) Complete() bool {
	return v.Name != "" && v.Country != ""
}
