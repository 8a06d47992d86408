package hermes

import (
	"encoding/json"
	"time"
)

// DatasetLoadedEvent announces a newly published field.
type DatasetLoadedEvent struct {
	DatasetID  string    `json:"dataset_id"`
	Source     string    `json:"source"`
	Teams      int       `json:"teams"`
	Metrics    int       `json:"metrics"`
	DurationMs int64     `json:"duration_ms"`
	LoadedAt   time.Time `json:"loaded_at"`
}

type DatasetFailedEvent struct {
	Source string    `json:"source"`
	Error  string    `json:"error"`
	At     time.Time `json:"at"`
}

// DatasetReloadRequest asks the daemon to rebuild its field. Teams carries a
// dataset array inline; otherwise Path names a dataset file; with neither
// the configured source is re-read.
type DatasetReloadRequest struct {
	Teams json.RawMessage `json:"teams,omitempty"`
	Path  string          `json:"path,omitempty"`
}

type MatchupResolvedEvent struct {
	MatchupID  string    `json:"matchup_id"`
	DatasetID  string    `json:"dataset_id"`
	TeamA      string    `json:"team_a"`
	TeamB      string    `json:"team_b"`
	Round      string    `json:"round,omitempty"`
	Outcome    string    `json:"outcome"`
	Winner     string    `json:"winner,omitempty"`
	Margin     float64   `json:"margin"`
	Lean       string    `json:"lean"`
	ResolvedAt time.Time `json:"resolved_at"`
}
