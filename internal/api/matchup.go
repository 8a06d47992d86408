package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MikeSquared-Agency/Matchup/internal/bracket"
	"github.com/MikeSquared-Agency/Matchup/internal/broker"
)

type MatchupHandler struct {
	broker *broker.Broker
}

func NewMatchupHandler(b *broker.Broker) *MatchupHandler {
	return &MatchupHandler{broker: b}
}

func pairParams(r *http.Request) (string, string, bool) {
	q := r.URL.Query()
	a, b := q.Get("a"), q.Get("b")
	return a, b, a != "" && b != ""
}

// Compare resolves team a against team b.
// GET /api/v1/matchup?a=&b=&round=
func (h *MatchupHandler) Compare(w http.ResponseWriter, r *http.Request) {
	a, b, ok := pairParams(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "query parameters a and b are required")
		return
	}
	round, err := parseRound(r)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	res, err := h.broker.Compare(a, b, round)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Rounds describes where two seeds, or two seeded teams, can meet.
// GET /api/v1/bracket/rounds?a=&b=&round=
func (h *MatchupHandler) Rounds(w http.ResponseWriter, r *http.Request) {
	a, b, ok := pairParams(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "query parameters a and b are required")
		return
	}
	round, err := parseRound(r)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	seedA, err := h.seedOf(a)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	seedB, err := h.seedOf(b)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	topo, err := bracket.Resolve(seedA, seedB, round)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topo)
}

// seedOf accepts a seed number or the name of a seeded team.
func (h *MatchupHandler) seedOf(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	t, err := h.broker.Team(v)
	if err != nil {
		return 0, err
	}
	seed, ok := t.SeedValue()
	if !ok {
		return 0, fmt.Errorf("%w: %s has no seed", bracket.ErrInvalidSeed, t.Name)
	}
	return seed, nil
}
