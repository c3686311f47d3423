// Package scorer ranks note clusters by their relevance to the
// current time and picks the best candidate for a hint.
package scorer

import (
	"math"
	"time"

	"github.com/PzNot2ndPlace/hints-service/internal/grouper"
	"github.com/PzNot2ndPlace/hints-service/internal/models"
	"github.com/PzNot2ndPlace/hints-service/internal/pattern"
)

// Params holds the scoring heuristics. The constants come from the
// observed behavior of the production service and are configuration,
// not derived values.
type Params struct {
	// DecayWindowHours is the window over which the time factor decays
	// linearly to zero.
	DecayWindowHours float64
	// SaturationCount is the cluster size at which the count factor
	// saturates at 1.
	SaturationCount int
	// CircularMean switches temporal averaging to the circular mean.
	CircularMean bool
}

// Recommendation is the winning cluster together with the evidence
// that selected it.
type Recommendation struct {
	Cluster   *grouper.Cluster
	Signature pattern.TimeSignature
	Score     float64
}

// SelectBest scores every cluster of size >= 2 and returns the one
// with the strictly highest positive score, or false when nothing
// qualifies (no such cluster, no temporal signature, or every score
// is zero). That absent outcome is a normal result, not an error.
//
// Categories are walked in models.Categories order and clusters in
// discovery order, so ties resolve to the first cluster encountered
// and repeated invocations over the same history agree.
func SelectBest(clusters map[models.Category][]*grouper.Cluster, now time.Time, p Params) (*Recommendation, bool) {
	var best *Recommendation
	nowTOD := models.TimeOfDayFrom(now)

	for _, cat := range models.Categories() {
		for _, c := range clusters[cat] {
			if len(c.Notes) < 2 {
				continue
			}
			sig, ok := pattern.Signature(c.Notes, p.CircularMean)
			if !ok {
				continue
			}

			hours := math.Abs(float64(nowTOD.Seconds()-sig.AvgCreation.Seconds())) / 3600
			timeFactor := math.Max(0, 1-hours/p.DecayWindowHours)
			countFactor := math.Min(1, float64(sig.SampleCount)/float64(p.SaturationCount))
			score := timeFactor * countFactor

			if score <= 0 {
				continue
			}
			if best == nil || score > best.Score {
				best = &Recommendation{Cluster: c, Signature: sig, Score: score}
			}
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}
