package hintservice

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/PzNot2ndPlace/hints-service/internal/apperr"
	"github.com/PzNot2ndPlace/hints-service/internal/hintlog"
	"github.com/PzNot2ndPlace/hints-service/internal/models"
	"github.com/PzNot2ndPlace/hints-service/internal/synthesizer"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(DefaultParams(), synthesizer.New(nil, time.Second), nil, nil)
}

func mustParse(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.Parse(models.TimeLayout, v)
	if err != nil {
		t.Fatalf("parse %q: %v", v, err)
	}
	return ts
}

func note(t *testing.T, text string, cat models.Category, createdAt string, triggerValues ...string) models.Note {
	t.Helper()
	n := models.Note{Text: text, Category: cat, CreatedAt: mustParse(t, createdAt)}
	for _, v := range triggerValues {
		n.Triggers = append(n.Triggers, models.Trigger{Kind: models.TriggerTime, Value: v})
	}
	return n
}

// recurringHistory is three near-duplicate shopping notes created
// around 17:00 with triggers around 18:00, padded with unrelated notes
// so the shared shopping terms stay inside the document-frequency band.
func recurringHistory(t *testing.T) []models.Note {
	t.Helper()
	return []models.Note{
		note(t, "buy milk at the grocery store", models.CategoryShopping, "2025-06-15 16:55", "2025-06-15 17:55"),
		note(t, "buy milk at the grocery store", models.CategoryShopping, "2025-06-14 17:00", "2025-06-14 18:00"),
		note(t, "buy milk at the grocery store after work", models.CategoryShopping, "2025-06-13 17:05", "2025-06-13 18:05"),
		note(t, "team standup meeting", models.CategoryMeeting, "2025-06-16 09:00", "2025-06-16 10:00"),
		note(t, "call the dentist", models.CategoryCall, "2025-06-16 12:00"),
	}
}

func TestRecommend_RecurringPattern(t *testing.T) {
	svc := newTestService(t)
	now := mustParse(t, "2025-06-16 17:10")

	res, err := svc.Recommend(context.Background(), recurringHistory(t), now)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if res.Note.Category != models.CategoryShopping {
		t.Errorf("category = %s, want Shopping", res.Note.Category)
	}
	if res.Note.Text != "buy milk at the grocery store" {
		t.Errorf("text = %q, want first cluster member's text", res.Note.Text)
	}
	if res.Note.UpdatedAt != nil {
		t.Error("synthesized note must have nil UpdatedAt")
	}
	if len(res.Note.Triggers) != 1 {
		t.Fatalf("got %d triggers, want 1", len(res.Note.Triggers))
	}
	// Average trigger time is 18:00, still ahead of 17:10 today.
	if got := res.Note.Triggers[0].Value; got != "2025-06-16 18:00" {
		t.Errorf("trigger value = %q, want 2025-06-16 18:00", got)
	}
	want := "You often set reminder 'buy milk at the grocery store' (3 similar notes found). " +
		"You usually create such reminders around 17:00, and they fire at 18:00."
	if res.HintText != want {
		t.Errorf("hint text = %q, want %q", res.HintText, want)
	}
}

func TestRecommend_EmptyHistory(t *testing.T) {
	svc := newTestService(t)
	now := mustParse(t, "2025-06-16 17:10")

	_, err := svc.Recommend(context.Background(), nil, now)
	if !errors.Is(err, apperr.ErrNoRecommendation) {
		t.Errorf("err = %v, want ErrNoRecommendation", err)
	}
}

func TestRecommend_AllDistinctNotes(t *testing.T) {
	svc := newTestService(t)
	now := mustParse(t, "2025-06-16 17:10")
	notes := []models.Note{
		note(t, "buy milk at the store", models.CategoryShopping, "2025-06-15 17:00", "2025-06-15 18:00"),
		note(t, "call the plumber", models.CategoryCall, "2025-06-14 10:00", "2025-06-14 11:00"),
		note(t, "dentist appointment downtown", models.CategoryHealth, "2025-06-13 08:00", "2025-06-13 09:00"),
	}

	_, err := svc.Recommend(context.Background(), notes, now)
	if !errors.Is(err, apperr.ErrNoRecommendation) {
		t.Errorf("err = %v, want ErrNoRecommendation", err)
	}
}

func TestRecommend_NoTimeTriggers(t *testing.T) {
	svc := newTestService(t)
	now := mustParse(t, "2025-06-16 17:10")
	notes := []models.Note{
		note(t, "buy milk at the grocery store", models.CategoryShopping, "2025-06-15 17:00"),
		note(t, "buy milk at the grocery store", models.CategoryShopping, "2025-06-14 17:00"),
		note(t, "team standup meeting", models.CategoryMeeting, "2025-06-16 09:00"),
		note(t, "call the dentist", models.CategoryCall, "2025-06-16 12:00"),
	}

	_, err := svc.Recommend(context.Background(), notes, now)
	if !errors.Is(err, apperr.ErrNoRecommendation) {
		t.Errorf("err = %v, want ErrNoRecommendation", err)
	}
}

func TestRecommend_TriggerRollsToNextDay(t *testing.T) {
	svc := newTestService(t)
	// History fires at 18:00; asking at 20:00 must suggest tomorrow.
	now := mustParse(t, "2025-06-16 20:00")
	notes := []models.Note{
		note(t, "buy milk at the grocery store", models.CategoryShopping, "2025-06-15 19:55", "2025-06-15 18:00"),
		note(t, "buy milk at the grocery store", models.CategoryShopping, "2025-06-14 20:05", "2025-06-14 18:00"),
		note(t, "team standup meeting", models.CategoryMeeting, "2025-06-16 09:00"),
		note(t, "call the dentist", models.CategoryCall, "2025-06-16 12:00"),
	}

	res, err := svc.Recommend(context.Background(), notes, now)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got := res.Note.Triggers[0].Value; got != "2025-06-17 18:00" {
		t.Errorf("trigger value = %q, want next-day 18:00", got)
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	svc := newTestService(t)
	now := mustParse(t, "2025-06-16 17:10")
	history := recurringHistory(t)

	first, err := svc.Recommend(context.Background(), history, now)
	if err != nil {
		t.Fatalf("first Recommend: %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := svc.Recommend(context.Background(), history, now)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if got.HintText != first.HintText {
			t.Fatalf("run %d: hint text %q differs from %q", i, got.HintText, first.HintText)
		}
		if got.Note.Triggers[0].Value != first.Note.Triggers[0].Value {
			t.Fatalf("run %d: trigger %q differs from %q", i, got.Note.Triggers[0].Value, first.Note.Triggers[0].Value)
		}
	}
}

func TestRecommend_RecordsToHintLog(t *testing.T) {
	db, err := hintlog.Open(filepath.Join(t.TempDir(), "hints.db"))
	if err != nil {
		t.Fatalf("open hint log: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := NewService(DefaultParams(), synthesizer.New(nil, time.Second), db, nil)
	now := mustParse(t, "2025-06-16 17:10")

	if _, err := svc.Recommend(context.Background(), recurringHistory(t), now); err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	entries, err := svc.RecentHints(10)
	if err != nil {
		t.Fatalf("RecentHints: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Category != models.CategoryShopping {
		t.Errorf("logged category = %s, want Shopping", e.Category)
	}
	if e.SampleCount != 3 {
		t.Errorf("logged sample count = %d, want 3", e.SampleCount)
	}
	if e.TriggerAt != "2025-06-16 18:00" {
		t.Errorf("logged trigger = %q, want 2025-06-16 18:00", e.TriggerAt)
	}
}

func TestRecentHints_NoLogConfigured(t *testing.T) {
	svc := newTestService(t)
	entries, err := svc.RecentHints(10)
	if err != nil {
		t.Fatalf("RecentHints: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %v, want empty slice", entries)
	}
}

func TestSetParams(t *testing.T) {
	svc := newTestService(t)
	p := svc.Params()
	p.SimilarityThreshold = 0.5
	p.SaturationCount = 10
	svc.SetParams(p)

	got := svc.Params()
	if got.SimilarityThreshold != 0.5 || got.SaturationCount != 10 {
		t.Errorf("params = %+v, not updated", got)
	}
}

func TestSignatures(t *testing.T) {
	svc := newTestService(t)
	sigs := svc.Signatures(recurringHistory(t))

	shopping, ok := sigs[models.CategoryShopping]
	if !ok {
		t.Fatal("no shopping signature")
	}
	if shopping.TriggerCount != 3 {
		t.Errorf("shopping TriggerCount = %d, want 3", shopping.TriggerCount)
	}
	if shopping.AvgTrigger != (models.TimeOfDay{Hour: 18}) {
		t.Errorf("shopping AvgTrigger = %v, want 18:00", shopping.AvgTrigger)
	}
	if _, ok := sigs[models.CategoryCall]; ok {
		t.Error("category without time triggers must not appear")
	}
}
