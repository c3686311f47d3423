// Package models defines the domain types for the hints service.
package models

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp layout used for note creation times and
// time-trigger values throughout the service.
const TimeLayout = "2006-01-02 15:04"

// Category classifies a note. The set is closed.
type Category string

// Note categories.
const (
	CategoryTime     Category = "Time"
	CategoryLocation Category = "Location"
	CategoryEvent    Category = "Event"
	CategoryShopping Category = "Shopping"
	CategoryCall     Category = "Call"
	CategoryMeeting  Category = "Meeting"
	CategoryDeadline Category = "Deadline"
	CategoryHealth   Category = "Health"
	CategoryRoutine  Category = "Routine"
	CategoryOther    Category = "Other"
)

// Categories returns all categories in canonical order. The order is
// load-bearing: the scorer walks categories in this order so that
// repeated runs over the same history pick the same winner.
func Categories() []Category {
	return []Category{
		CategoryTime, CategoryLocation, CategoryEvent, CategoryShopping,
		CategoryCall, CategoryMeeting, CategoryDeadline, CategoryHealth,
		CategoryRoutine, CategoryOther,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, k := range Categories() {
		if c == k {
			return true
		}
	}
	return false
}

// TriggerKind distinguishes time triggers from location triggers.
type TriggerKind string

// Trigger kinds.
const (
	TriggerTime     TriggerKind = "Time"
	TriggerLocation TriggerKind = "Location"
)

// Trigger is a single firing condition attached to a note. For time
// triggers the value is a TimeLayout timestamp; location values are
// opaque and carried through unmodified.
type Trigger struct {
	Kind  TriggerKind
	Value string
}

// TimeValue parses the trigger value as a timestamp. It returns false
// for location triggers and for unparseable time values; such triggers
// are skipped by temporal analysis rather than failing the request.
func (t Trigger) TimeValue() (time.Time, bool) {
	if t.Kind != TriggerTime {
		return time.Time{}, false
	}
	ts, err := time.Parse(TimeLayout, t.Value)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Note is one historical reminder. Notes are immutable once handed to
// the engine.
type Note struct {
	Text      string
	Category  Category
	CreatedAt time.Time
	UpdatedAt *time.Time
	Triggers  []Trigger
}

// HintResult is the engine output: a freshly synthesized note (never
// part of the input history, UpdatedAt always nil) plus hint text.
type HintResult struct {
	Note     Note
	HintText string
}

// TimeOfDay is a clock time with no date component.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// TimeOfDayFrom extracts the clock time of t.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// Seconds returns the value as seconds since midnight.
func (d TimeOfDay) Seconds() int {
	return d.Hour*3600 + d.Minute*60
}

// String formats the value as "HH:MM".
func (d TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}
