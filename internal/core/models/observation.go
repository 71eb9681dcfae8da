package models

// ObservationType classifies a single recorded unit of work during a session.
// The six known values are part of the note format contract; anything else is
// rendered with a fallback marker rather than rejected.
type ObservationType string

const (
	TypeBugfix    ObservationType = "bugfix"
	TypeFeature   ObservationType = "feature"
	TypeRefactor  ObservationType = "refactor"
	TypeChange    ObservationType = "change"
	TypeDiscovery ObservationType = "discovery"
	TypeDecision  ObservationType = "decision"
)

// Known reports whether t is one of the six enumerated observation types.
func (t ObservationType) Known() bool {
	switch t {
	case TypeBugfix, TypeFeature, TypeRefactor, TypeChange, TypeDiscovery, TypeDecision:
		return true
	}
	return false
}

// Observation is one discrete recorded event from a session.
// Optional text fields use "" for absent; list order is preserved as given.
// Deduplication of file lists is the accumulator's job, not the renderer's.
type Observation struct {
	Type          ObservationType
	Title         string
	Subtitle      string
	Facts         []string
	Narrative     string
	Concepts      []string
	FilesRead     []string
	FilesModified []string
}
