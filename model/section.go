package model

// SectionType identifies the document section a chunk was extracted from.
type SectionType string

const (
	SectionDeclarations SectionType = "declarations"
	SectionCoverages    SectionType = "coverages"
	SectionExclusions   SectionType = "exclusions"
	SectionConditions   SectionType = "conditions"
	SectionEndorsements SectionType = "endorsements"
	SectionDefinitions  SectionType = "definitions"
	SectionSchedule     SectionType = "schedule"
	SectionLossRun      SectionType = "loss_run"
	SectionEvidence     SectionType = "evidence"
	SectionOther        SectionType = "other"
)
