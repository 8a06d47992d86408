package store

import (
	"context"
	"strings"
)

// TeamRecord is one alias-resolved dataset row: a team name, an optional
// seed, and canonical metric keys mapped to nullable values.
type TeamRecord struct {
	Name    string              `json:"name"`
	Seed    *int                `json:"seed,omitempty"`
	Metrics map[string]*float64 `json:"metrics"`
}

// Metric returns the value for key and whether it is present.
func (r TeamRecord) Metric(key string) (float64, bool) {
	v, ok := r.Metrics[key]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// Source supplies the complete record set for one dataset load.
type Source interface {
	// Name labels the source in logs, metrics and events.
	Name() string
	LoadTeams(ctx context.Context) ([]TeamRecord, error)
	Close() error
}

// StaticSource serves records already held in memory, such as an uploaded
// dataset.
type StaticSource struct {
	Label   string
	Records []TeamRecord
}

func (s *StaticSource) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

func (s *StaticSource) LoadTeams(_ context.Context) ([]TeamRecord, error) {
	return s.Records, nil
}

func (s *StaticSource) Close() error { return nil }

const (
	MinSeed = 1
	MaxSeed = 16
)

// ValidSeed reports whether s is a regional seed line.
func ValidSeed(s int) bool {
	return s >= MinSeed && s <= MaxSeed
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
