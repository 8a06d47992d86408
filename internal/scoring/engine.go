package scoring

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Matchup/internal/bracket"
	"github.com/MikeSquared-Agency/Matchup/internal/store"
)

var (
	ErrNoDataset     = errors.New("no dataset loaded")
	ErrNoTeams       = errors.New("dataset contains no teams")
	ErrTeamNotFound  = errors.New("team not found")
	ErrDuplicateTeam = errors.New("duplicate team name")
)

// Field is one fully scored dataset snapshot. It is immutable once built.
type Field struct {
	ID       uuid.UUID  `json:"dataset_id"`
	LoadedAt time.Time  `json:"loaded_at"`
	Stats    FieldStats `json:"stats"`
	Teams    []*Team    `json:"teams"`

	byName map[string]*Team
	// byFold keys teams by lower-cased name; names must be unique under it.
	byFold map[string]*Team
}

// BuildField scores every record against the field it belongs to.
func BuildField(records []store.TeamRecord, cfg Config) (*Field, error) {
	if len(records) == 0 {
		return nil, ErrNoTeams
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}

	f := &Field{
		ID:       uuid.New(),
		LoadedAt: time.Now().UTC(),
		Teams:    make([]*Team, 0, len(records)),
		byName:   make(map[string]*Team, len(records)),
		byFold:   make(map[string]*Team, len(records)),
	}
	for _, rec := range records {
		fold := strings.ToLower(rec.Name)
		if prev, dup := f.byFold[fold]; dup {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateTeam, prev.Name, rec.Name)
		}
		t := newTeam(rec)
		f.Teams = append(f.Teams, t)
		f.byName[t.Name] = t
		f.byFold[fold] = t
	}

	stats, err := ComputeFieldStats(f.Teams)
	if err != nil {
		return nil, err
	}
	f.Stats = stats

	for _, t := range f.Teams {
		scoreTeam(t, stats, cfg)
	}
	ComputeIdentity(f.Teams)
	return f, nil
}

// Team looks up a team by exact name, then case-insensitively.
func (f *Field) Team(name string) (*Team, error) {
	name = strings.TrimSpace(name)
	if t, ok := f.byName[name]; ok {
		return t, nil
	}
	if t, ok := f.byFold[strings.ToLower(name)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrTeamNotFound, name)
}

// Rankings returns the teams by mi_base descending, ties by name.
func (f *Field) Rankings() []*Team {
	ranked := append([]*Team(nil), f.Teams...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MIBase != ranked[j].MIBase {
			return ranked[i].MIBase > ranked[j].MIBase
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// Engine owns the current field. Loads swap the snapshot atomically; reads
// never observe a partially scored field.
type Engine struct {
	mu     sync.RWMutex
	field  *Field
	cfg    Config
	logger *slog.Logger
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger}
}

// Config returns the tunables the engine scores with.
func (e *Engine) Config() Config { return e.cfg }

// Load scores records into a new field and publishes it. The previous field
// stays in place if scoring fails.
func (e *Engine) Load(records []store.TeamRecord) (*Field, error) {
	start := time.Now()
	f, err := BuildField(records, e.cfg)
	if err != nil {
		return nil, err
	}
	e.logDiagnostics(f)

	e.mu.Lock()
	e.field = f
	e.mu.Unlock()

	e.logger.Info("dataset loaded",
		"dataset_id", f.ID,
		"teams", len(f.Teams),
		"metrics", len(f.Stats),
		"duration", time.Since(start))
	return f, nil
}

func (e *Engine) logDiagnostics(f *Field) {
	for _, t := range f.Teams {
		if !t.Resume.Available {
			e.logger.Debug("résumé neutral: missing record or schedule data", "team", t.Name)
		}
		for _, slot := range t.Marks {
			if !slot.Evaluated {
				e.logger.Debug("mark skipped: missing input", "team", t.Name, "mark", slot.Category)
			}
		}
	}
}

// Field returns the published snapshot.
func (e *Engine) Field() (*Field, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.field == nil {
		return nil, ErrNoDataset
	}
	return e.field, nil
}

func (e *Engine) Team(name string) (*Team, error) {
	f, err := e.Field()
	if err != nil {
		return nil, err
	}
	return f.Team(name)
}

func (e *Engine) Rankings() ([]*Team, error) {
	f, err := e.Field()
	if err != nil {
		return nil, err
	}
	return f.Rankings(), nil
}

// Compare resolves a vs b against the published field. round is optional
// and only affects the attached topology.
func (e *Engine) Compare(a, b string, round *bracket.Round) (*MatchupResult, error) {
	f, err := e.Field()
	if err != nil {
		return nil, err
	}
	if round != nil && !round.Valid() {
		return nil, fmt.Errorf("%w: %q", bracket.ErrUnknownRound, string(*round))
	}
	ta, err := f.Team(a)
	if err != nil {
		return nil, err
	}
	tb, err := f.Team(b)
	if err != nil {
		return nil, err
	}

	res := ResolveMatchup(ta, tb, f.Stats, round, e.cfg)
	res.DatasetID = f.ID
	e.logger.Debug("matchup resolved",
		"a", ta.Name, "b", tb.Name, "outcome", res.Outcome, "margin", res.Margin, "lean", res.Lean)
	return res, nil
}

// Records returns the dataset rows the field was built from, in load order.
func (f *Field) Records() []store.TeamRecord {
	out := make([]store.TeamRecord, 0, len(f.Teams))
	for _, t := range f.Teams {
		out = append(out, t.Record())
	}
	return out
}
