package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Matchup/internal/bracket"
	"github.com/MikeSquared-Agency/Matchup/internal/broker"
	"github.com/MikeSquared-Agency/Matchup/internal/scoring"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, scoring.ErrNoDataset), errors.Is(err, broker.ErrNoSource):
		return http.StatusConflict
	case errors.Is(err, scoring.ErrTeamNotFound):
		return http.StatusNotFound
	case errors.Is(err, scoring.ErrNoTeams),
		errors.Is(err, scoring.ErrDuplicateTeam),
		errors.Is(err, bracket.ErrUnknownRound),
		errors.Is(err, bracket.ErrInvalidSeed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeEngineError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

// parseRound reads the optional round query parameter.
func parseRound(r *http.Request) (*bracket.Round, error) {
	v := r.URL.Query().Get("round")
	if v == "" {
		return nil, nil
	}
	round, err := bracket.ParseRound(v)
	if err != nil {
		return nil, err
	}
	return &round, nil
}
