package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Matchup/internal/broker"
	"github.com/MikeSquared-Agency/Matchup/internal/scoring"
)

type FieldHandler struct {
	broker *broker.Broker
}

func NewFieldHandler(b *broker.Broker) *FieldHandler {
	return &FieldHandler{broker: b}
}

type statRow struct {
	Metric scoring.Metric `json:"metric"`
	Label  string         `json:"label"`
	scoring.Stat
}

// Get returns the field snapshot: mean, spread and count per metric.
// GET /api/v1/field
func (h *FieldHandler) Get(w http.ResponseWriter, r *http.Request) {
	f, err := h.broker.Engine().Field()
	if err != nil {
		writeEngineError(w, err)
		return
	}

	rows := make([]statRow, 0, len(f.Stats))
	for _, m := range scoring.TrackedMetrics {
		if st, ok := f.Stats.Lookup(m); ok {
			rows = append(rows, statRow{Metric: m, Label: m.Label(), Stat: st})
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": f.ID,
		"loaded_at":  f.LoadedAt,
		"teams":      len(f.Teams),
		"stats":      rows,
	})
}
