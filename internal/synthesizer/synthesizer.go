// Package synthesizer turns a winning cluster into the outgoing hint:
// a freshly synthesized note plus human-readable hint text.
package synthesizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PzNot2ndPlace/hints-service/internal/models"
	"github.com/PzNot2ndPlace/hints-service/internal/scorer"
)

// hintTemplate is the fallback wording used when no rewriter is
// configured or the rewriter fails.
const hintTemplate = "You often set reminder '%s' (%d similar notes found). " +
	"You usually create such reminders around %s, and they fire at %s."

// Rewriter rewords hint text into a more natural phrasing. It is an
// optional collaborator: implementations may call external services,
// and any failure is absorbed by the synthesizer.
type Rewriter interface {
	Rewrite(ctx context.Context, note models.Note, now time.Time) (string, error)
}

// Synthesizer builds HintResults. The zero value is not usable; use New.
type Synthesizer struct {
	rewriter Rewriter
	timeout  time.Duration
}

// New creates a synthesizer. rewriter may be nil, in which case the
// template text is always used. timeout bounds each rewrite call.
func New(rewriter Rewriter, timeout time.Duration) *Synthesizer {
	return &Synthesizer{rewriter: rewriter, timeout: timeout}
}

// Synthesize assembles the hint for the winning cluster.
//
// The representative text and category come from the cluster's first
// member in original order. The recommended trigger is the current day
// at the cluster's average trigger time, rolled forward one calendar
// day when that moment is not strictly in the future. The synthesized
// note carries a single time trigger and no UpdatedAt: it is a fresh
// suggestion, never an edit.
func (s *Synthesizer) Synthesize(ctx context.Context, rec *scorer.Recommendation, now time.Time) models.HintResult {
	repr := rec.Cluster.Notes[0]
	sig := rec.Signature

	triggerAt := time.Date(now.Year(), now.Month(), now.Day(),
		sig.AvgTrigger.Hour, sig.AvgTrigger.Minute, 0, 0, now.Location())
	if !triggerAt.After(now) {
		triggerAt = triggerAt.AddDate(0, 0, 1)
	}

	note := models.Note{
		Text:      repr.Text,
		Category:  rec.Cluster.Category,
		CreatedAt: now,
		Triggers: []models.Trigger{{
			Kind:  models.TriggerTime,
			Value: triggerAt.Format(models.TimeLayout),
		}},
	}

	hint := fmt.Sprintf(hintTemplate, repr.Text, sig.SampleCount, sig.AvgCreation, sig.AvgTrigger)
	if s.rewriter != nil {
		if rewritten, ok := s.rewrite(ctx, note, now); ok {
			hint = rewritten
		}
	}

	return models.HintResult{Note: note, HintText: hint}
}

// rewrite calls the collaborator under the configured timeout. Any
// error or empty response falls back to the template; rewriting must
// never abort the recommendation.
func (s *Synthesizer) rewrite(ctx context.Context, note models.Note, now time.Time) (string, bool) {
	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.rewriter.Rewrite(rctx, note, now)
	if err != nil {
		slog.Warn("hint rewrite failed, using template text", slog.String("error", err.Error()))
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		slog.Warn("hint rewrite returned empty text, using template text")
		return "", false
	}
	return text, true
}
