package hermes

const (
	SubjectDatasetLoaded   = "matchup.dataset.loaded"
	SubjectDatasetFailed   = "matchup.dataset.failed"
	SubjectDatasetReload   = "matchup.dataset.reload"
	SubjectMatchupResolved = "matchup.matchup.resolved"

	StreamName   = "MATCHUP_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

// streamSubjects are retained by the events stream. Reload requests are
// commands and are not persisted.
var streamSubjects = []string{
	SubjectDatasetLoaded,
	SubjectDatasetFailed,
	SubjectMatchupResolved,
}
