package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/Matchup/internal/bracket"
	"github.com/MikeSquared-Agency/Matchup/internal/hermes"
	"github.com/MikeSquared-Agency/Matchup/internal/metrics"
	"github.com/MikeSquared-Agency/Matchup/internal/scoring"
	"github.com/MikeSquared-Agency/Matchup/internal/store"
)

var ErrNoSource = errors.New("no dataset source configured")

// Broker wires the engine to its dataset source and to the event bus.
type Broker struct {
	engine  *scoring.Engine
	hermes  hermes.Client
	metrics *metrics.Metrics
	source  store.Source
	logger  *slog.Logger

	// loadMu serialises loads so the last reload requested is the one
	// left published.
	loadMu sync.Mutex
}

// New builds a broker. h, m and src may be nil.
func New(e *scoring.Engine, h hermes.Client, m *metrics.Metrics, src store.Source, logger *slog.Logger) *Broker {
	return &Broker{
		engine:  e,
		hermes:  h,
		metrics: m,
		source:  src,
		logger:  logger,
	}
}

func (b *Broker) Engine() *scoring.Engine { return b.engine }

// Reload re-reads the configured source.
func (b *Broker) Reload(ctx context.Context) (*scoring.Field, error) {
	if b.source == nil {
		return nil, ErrNoSource
	}
	return b.LoadFrom(ctx, b.source)
}

// LoadFrom reads every record from src and publishes the scored field.
func (b *Broker) LoadFrom(ctx context.Context, src store.Source) (*scoring.Field, error) {
	b.loadMu.Lock()
	defer b.loadMu.Unlock()

	start := time.Now()
	records, err := src.LoadTeams(ctx)
	if err == nil {
		var f *scoring.Field
		f, err = b.engine.Load(records)
		if err == nil {
			b.loaded(src.Name(), f, time.Since(start))
			return f, nil
		}
	}

	b.metrics.ObserveLoad(src.Name(), time.Since(start), 0, err)
	b.logger.Error("dataset load failed", "source", src.Name(), "error", err)
	b.publish(hermes.SubjectDatasetFailed, hermes.DatasetFailedEvent{
		Source: src.Name(),
		Error:  err.Error(),
		At:     time.Now().UTC(),
	})
	return nil, fmt.Errorf("load %s dataset: %w", src.Name(), err)
}

// LoadRecords publishes an in-memory record set, e.g. an uploaded dataset.
func (b *Broker) LoadRecords(ctx context.Context, label string, records []store.TeamRecord) (*scoring.Field, error) {
	return b.LoadFrom(ctx, &store.StaticSource{Label: label, Records: records})
}

func (b *Broker) loaded(source string, f *scoring.Field, d time.Duration) {
	b.metrics.ObserveLoad(source, d, len(f.Teams), nil)
	b.publish(hermes.SubjectDatasetLoaded, hermes.DatasetLoadedEvent{
		DatasetID:  f.ID.String(),
		Source:     source,
		Teams:      len(f.Teams),
		Metrics:    len(f.Stats),
		DurationMs: d.Milliseconds(),
		LoadedAt:   f.LoadedAt,
	})
}

// Compare resolves a matchup, records it and announces it.
func (b *Broker) Compare(a, bName string, round *bracket.Round) (*scoring.MatchupResult, error) {
	res, err := b.engine.Compare(a, bName, round)
	if err != nil {
		b.metrics.ObserveLookupFailure(failureReason(err))
		return nil, err
	}
	b.metrics.ObserveMatchup(res.Outcome, res.Lean)

	evt := hermes.MatchupResolvedEvent{
		MatchupID:  res.ID.String(),
		DatasetID:  res.DatasetID.String(),
		TeamA:      res.A.Name,
		TeamB:      res.B.Name,
		Outcome:    res.Outcome,
		Winner:     res.Winner,
		Margin:     res.Margin,
		Lean:       res.Lean,
		ResolvedAt: res.ResolvedAt,
	}
	if res.Round != nil {
		evt.Round = string(*res.Round)
	}
	b.publish(hermes.SubjectMatchupResolved, evt)
	return res, nil
}

// Team looks up a single scored team, counting misses.
func (b *Broker) Team(name string) (*scoring.Team, error) {
	t, err := b.engine.Team(name)
	if err != nil {
		b.metrics.ObserveLookupFailure(failureReason(err))
	}
	return t, err
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, scoring.ErrNoDataset):
		return "no_dataset"
	case errors.Is(err, scoring.ErrTeamNotFound):
		return "team_not_found"
	case errors.Is(err, bracket.ErrUnknownRound):
		return "unknown_round"
	default:
		return "other"
	}
}

func (b *Broker) publish(subject string, data interface{}) {
	if b.hermes == nil {
		return
	}
	if err := b.hermes.Publish(subject, data); err != nil {
		b.logger.Warn("publish failed", "subject", subject, "error", err)
	}
}

// SetupSubscriptions registers the reload command handler.
func (b *Broker) SetupSubscriptions() error {
	if b.hermes == nil {
		return nil
	}
	return b.hermes.Subscribe(hermes.SubjectDatasetReload, func(_ string, data []byte) {
		var req hermes.DatasetReloadRequest
		if len(data) > 0 {
			if err := json.Unmarshal(data, &req); err != nil {
				b.logger.Warn("invalid reload request", "error", err)
				return
			}
		}
		b.handleReload(req)
	})
}

func (b *Broker) handleReload(req hermes.DatasetReloadRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var err error
	switch {
	case len(req.Teams) > 0:
		var records []store.TeamRecord
		if records, err = store.DecodeDataset(bytes.NewReader(req.Teams)); err == nil {
			_, err = b.LoadRecords(ctx, "event", records)
		}
	case req.Path != "":
		_, err = b.LoadFrom(ctx, store.NewFileSource(req.Path))
	default:
		_, err = b.Reload(ctx)
	}
	if err != nil {
		b.logger.Warn("reload request failed", "path", req.Path, "error", err)
		return
	}
	b.logger.Info("dataset reloaded from event", "path", req.Path, "inline", len(req.Teams) > 0)
}
