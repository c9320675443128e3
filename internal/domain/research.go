package domain

// ResearchStage is the coarse progress of a research-and-summarize run.
// Stages are advisory: the UI layer maps them to percentages.
type ResearchStage string

const (
	StageSearching      ResearchStage = "searching"
	StageRegionalLookup ResearchStage = "regional_lookup"
	StageCountryLookup  ResearchStage = "country_lookup"
	StageSynthesizing   ResearchStage = "synthesizing"
	StageDone           ResearchStage = "done"
)

// StageFunc receives advisory progress stages while a research pipeline runs.
type StageFunc func(ResearchStage)
