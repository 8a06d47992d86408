package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Matchup/internal/broker"
	"github.com/MikeSquared-Agency/Matchup/internal/scoring"
)

type TeamsHandler struct {
	broker *broker.Broker
}

func NewTeamsHandler(b *broker.Broker) *TeamsHandler {
	return &TeamsHandler{broker: b}
}

type teamSummary struct {
	Rank       int            `json:"rank"`
	Name       string         `json:"name"`
	Seed       *int           `json:"seed,omitempty"`
	MIBase     float64        `json:"mi_base"`
	Core       float64        `json:"mibs"`
	Breadth    float64        `json:"breadth_bonus"`
	ResumeTier string         `json:"resume_tier"`
	Rating     int            `json:"rating"`
	CIS        float64        `json:"cis"`
	FAS        float64        `json:"fas"`
	Marks      []scoring.Mark `json:"marks,omitempty"`
}

// List returns every team ranked by mi_base.
// GET /api/v1/teams
func (h *TeamsHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := h.broker.Engine().Field()
	if err != nil {
		writeEngineError(w, err)
		return
	}

	ranked := f.Rankings()
	out := make([]teamSummary, 0, len(ranked))
	for i, t := range ranked {
		out = append(out, teamSummary{
			Rank:       i + 1,
			Name:       t.Name,
			Seed:       t.Seed,
			MIBase:     t.MIBase,
			Core:       t.Core.Score,
			Breadth:    t.Breadth.Bonus,
			ResumeTier: t.Resume.Tier,
			Rating:     t.Identity.Rating,
			CIS:        t.Identity.CIS,
			FAS:        t.Identity.FAS,
			Marks:      t.ActiveMarks(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": f.ID,
		"teams":      out,
	})
}

// Get returns one team with every explanation layer.
// GET /api/v1/teams/{name}
func (h *TeamsHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.broker.Team(chi.URLParam(r, "name"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
