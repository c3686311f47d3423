// Package hintservice is the engine facade. A request moves strictly
// forward through grouping, scoring, and synthesis; the terminal
// outcome is a HintResult or the defined no-recommendation result, and
// nothing partial is ever returned.
package hintservice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/PzNot2ndPlace/hints-service/internal/apperr"
	"github.com/PzNot2ndPlace/hints-service/internal/grouper"
	"github.com/PzNot2ndPlace/hints-service/internal/hintlog"
	"github.com/PzNot2ndPlace/hints-service/internal/models"
	"github.com/PzNot2ndPlace/hints-service/internal/pattern"
	"github.com/PzNot2ndPlace/hints-service/internal/scorer"
	"github.com/PzNot2ndPlace/hints-service/internal/sse"
	"github.com/PzNot2ndPlace/hints-service/internal/synthesizer"
)

// Params holds the engine heuristics. All of them are configurable;
// the defaults mirror the observed production values.
type Params struct {
	SimilarityThreshold float64
	MinDF               float64
	MaxDF               float64
	DecayWindowHours    float64
	SaturationCount     int
	CircularMean        bool
}

// DefaultParams returns the stock heuristics.
func DefaultParams() Params {
	return Params{
		SimilarityThreshold: 0.7,
		MinDF:               0.1,
		MaxDF:               0.9,
		DecayWindowHours:    12,
		SaturationCount:     5,
		CircularMean:        false,
	}
}

// Service coordinates the recommendation pipeline. The hint log and
// the event broker are optional collaborators; the engine works
// without either.
type Service struct {
	mu     sync.RWMutex
	params Params

	synth  *synthesizer.Synthesizer
	log    *hintlog.DB
	broker *sse.Broker
}

// NewService creates the engine facade. log and broker may be nil.
func NewService(params Params, synth *synthesizer.Synthesizer, log *hintlog.DB, broker *sse.Broker) *Service {
	return &Service{params: params, synth: synth, log: log, broker: broker}
}

// Params returns the current engine heuristics.
func (s *Service) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// SetParams atomically replaces the engine heuristics. In-flight
// requests keep the snapshot they started with.
func (s *Service) SetParams(p Params) {
	s.mu.Lock()
	s.params = p
	s.mu.Unlock()
}

// Recommend runs one full recommendation over the note history.
// The text-vectorization model is fitted fresh from this request's
// corpus; no fitted state survives the call. Returns
// apperr.ErrNoRecommendation when the history is empty or no cluster
// survives scoring.
func (s *Service) Recommend(ctx context.Context, notes []models.Note, now time.Time) (*models.HintResult, error) {
	if len(notes) == 0 {
		return nil, apperr.ErrNoRecommendation
	}
	p := s.Params()

	clusters := grouper.Group(notes, grouper.Options{
		Threshold: p.SimilarityThreshold,
		MinDF:     p.MinDF,
		MaxDF:     p.MaxDF,
	})

	rec, ok := scorer.SelectBest(clusters, now, scorer.Params{
		DecayWindowHours: p.DecayWindowHours,
		SaturationCount:  p.SaturationCount,
		CircularMean:     p.CircularMean,
	})
	if !ok {
		return nil, apperr.ErrNoRecommendation
	}

	res := s.synth.Synthesize(ctx, rec, now)

	s.record(res, rec, now)
	if s.broker != nil {
		s.broker.PublishHintServed(string(res.Note.Category), res.HintText)
	}

	slog.Debug("hint served",
		slog.String("category", string(res.Note.Category)),
		slog.Int("sample_count", rec.Signature.SampleCount),
		slog.Float64("score", rec.Score))

	return &res, nil
}

// Signatures exposes the per-category temporal signal of a history:
// for each category, the count of parseable time triggers and their
// mean time-of-day.
func (s *Service) Signatures(notes []models.Note) map[models.Category]pattern.CategorySignature {
	return pattern.CategorySignatures(notes, s.Params().CircularMean)
}

// RecentHints returns the most recently served hints from the audit
// log, or an empty slice when the log is disabled.
func (s *Service) RecentHints(limit int) ([]hintlog.Entry, error) {
	if s.log == nil {
		return []hintlog.Entry{}, nil
	}
	entries, err := s.log.Recent(limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []hintlog.Entry{}
	}
	return entries, nil
}

// record appends the served hint to the audit log, best effort.
func (s *Service) record(res models.HintResult, rec *scorer.Recommendation, now time.Time) {
	if s.log == nil {
		return
	}
	triggerAt := ""
	if len(res.Note.Triggers) > 0 {
		triggerAt = res.Note.Triggers[0].Value
	}
	err := s.log.Record(hintlog.Entry{
		Category:    res.Note.Category,
		Text:        res.Note.Text,
		HintText:    res.HintText,
		TriggerAt:   triggerAt,
		SampleCount: rec.Signature.SampleCount,
		Score:       rec.Score,
		ServedAt:    now,
	})
	if err != nil {
		slog.Warn("hint log record failed", slog.String("error", err.Error()))
	}
}
