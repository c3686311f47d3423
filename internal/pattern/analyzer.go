// Package pattern extracts temporal signatures from note collections.
package pattern

import (
	"math"

	"github.com/PzNot2ndPlace/hints-service/internal/models"
)

// AverageTime returns the linear mean of the given clock times:
// seconds-since-midnight are averaged with integer truncation and
// converted back to hour/minute.
//
// The mean is deliberately linear, not circular. Times straddling
// midnight (23:50 and 00:10) average toward midday; see
// AverageTimeCircular for the opt-in alternative.
//
// The input must be non-empty. Callers guard; an empty slice is a
// programming error, not a runtime condition.
func AverageTime(times []models.TimeOfDay) models.TimeOfDay {
	total := 0
	for _, t := range times {
		total += t.Seconds()
	}
	avg := total / len(times)
	return models.TimeOfDay{Hour: avg / 3600, Minute: (avg % 3600) / 60}
}

// AverageTimeCircular returns the circular mean of the given clock
// times, treating the day as a 24-hour circle so that values around
// midnight average correctly. Same non-empty precondition as
// AverageTime.
func AverageTimeCircular(times []models.TimeOfDay) models.TimeOfDay {
	var sinSum, cosSum float64
	for _, t := range times {
		rad := 2 * math.Pi * float64(t.Seconds()) / 86400
		sinSum += math.Sin(rad)
		cosSum += math.Cos(rad)
	}
	rad := math.Atan2(sinSum, cosSum)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	avg := int(rad * 86400 / (2 * math.Pi))
	return models.TimeOfDay{Hour: avg / 3600, Minute: (avg % 3600) / 60}
}

// TimeSignature is the temporal fingerprint of one note cluster.
// All averages are clock times with no date component.
type TimeSignature struct {
	// AvgCreation is the mean creation time-of-day across all members.
	AvgCreation models.TimeOfDay
	// AvgTrigger is the mean time-of-day of the members' parseable
	// time-trigger values.
	AvgTrigger models.TimeOfDay
	// SampleCount is the number of member notes.
	SampleCount int
	// TriggerCount is the number of parseable time triggers seen.
	TriggerCount int
}

// Signature computes the temporal signature of a group of notes.
// Unparseable or location triggers contribute nothing. It returns
// false when no member carries a parseable time trigger: such a group
// has no temporal signature and is never recommendable.
func Signature(notes []models.Note, circular bool) (TimeSignature, bool) {
	if len(notes) == 0 {
		return TimeSignature{}, false
	}

	creations := make([]models.TimeOfDay, 0, len(notes))
	var triggers []models.TimeOfDay
	for _, n := range notes {
		creations = append(creations, models.TimeOfDayFrom(n.CreatedAt))
		for _, tr := range n.Triggers {
			if ts, ok := tr.TimeValue(); ok {
				triggers = append(triggers, models.TimeOfDayFrom(ts))
			}
		}
	}
	if len(triggers) == 0 {
		return TimeSignature{}, false
	}

	avg := AverageTime
	if circular {
		avg = AverageTimeCircular
	}
	return TimeSignature{
		AvgCreation:  avg(creations),
		AvgTrigger:   avg(triggers),
		SampleCount:  len(notes),
		TriggerCount: len(triggers),
	}, true
}

// CategorySignature summarizes the time triggers observed for one
// category across a whole note collection.
type CategorySignature struct {
	TriggerCount int
	AvgTrigger   models.TimeOfDay
}

// CategorySignatures groups notes by category and computes, for each
// category with at least one parseable time trigger, the trigger count
// and mean trigger time-of-day. Notes without time triggers contribute
// nothing here but remain eligible for text clustering.
func CategorySignatures(notes []models.Note, circular bool) map[models.Category]CategorySignature {
	byCat := make(map[models.Category][]models.TimeOfDay)
	for _, n := range notes {
		for _, tr := range n.Triggers {
			if ts, ok := tr.TimeValue(); ok {
				byCat[n.Category] = append(byCat[n.Category], models.TimeOfDayFrom(ts))
			}
		}
	}

	avg := AverageTime
	if circular {
		avg = AverageTimeCircular
	}
	out := make(map[models.Category]CategorySignature, len(byCat))
	for cat, times := range byCat {
		out[cat] = CategorySignature{
			TriggerCount: len(times),
			AvgTrigger:   avg(times),
		}
	}
	return out
}
