package grouper

import (
	"testing"

	"github.com/PzNot2ndPlace/hints-service/internal/models"
)

var defaultOpts = Options{Threshold: 0.7, MinDF: 0.1, MaxDF: 0.9}

func note(text string, cat models.Category) models.Note {
	return models.Note{Text: text, Category: cat}
}

func TestGroup_Empty(t *testing.T) {
	got := Group(nil, defaultOpts)
	if len(got) != 0 {
		t.Errorf("empty history produced %d categories", len(got))
	}
}

func TestGroup_SingleNoteCategorySkipped(t *testing.T) {
	notes := []models.Note{
		note("buy milk at the grocery store", models.CategoryShopping),
		note("team standup in the morning", models.CategoryMeeting),
	}
	got := Group(notes, defaultOpts)
	if len(got) != 0 {
		t.Errorf("categories with one note produced %d cluster groups", len(got))
	}
}

func TestGroup_ClustersNearDuplicates(t *testing.T) {
	notes := []models.Note{
		note("buy milk at the grocery store", models.CategoryShopping),
		note("buy milk at the grocery store", models.CategoryShopping),
		note("buy milk at the grocery store after work", models.CategoryShopping),
		// Filler in other categories keeps the shared shopping terms
		// inside the document-frequency band.
		note("team standup meeting", models.CategoryMeeting),
		note("call the dentist", models.CategoryCall),
	}

	got := Group(notes, defaultOpts)
	clusters, ok := got[models.CategoryShopping]
	if !ok {
		t.Fatal("no shopping clusters")
	}
	if len(clusters) != 1 {
		t.Fatalf("got %d shopping clusters, want 1", len(clusters))
	}
	if n := len(clusters[0].Notes); n != 3 {
		t.Errorf("cluster size = %d, want 3", n)
	}
	if clusters[0].Category != models.CategoryShopping {
		t.Errorf("cluster category = %s", clusters[0].Category)
	}
	if _, ok := got[models.CategoryMeeting]; ok {
		t.Error("single-note category must not produce clusters")
	}
}

func TestGroup_DissimilarNotesStaySeparate(t *testing.T) {
	notes := []models.Note{
		note("buy milk at the grocery store", models.CategoryShopping),
		note("pick up dry cleaning downtown", models.CategoryShopping),
		note("team standup meeting", models.CategoryMeeting),
		note("water the plants", models.CategoryRoutine),
	}

	got := Group(notes, defaultOpts)
	clusters := got[models.CategoryShopping]
	if len(clusters) != 2 {
		t.Fatalf("got %d shopping clusters, want 2 singletons", len(clusters))
	}
	for _, c := range clusters {
		if len(c.Notes) != 1 {
			t.Errorf("cluster size = %d, want 1", len(c.Notes))
		}
	}
}

func TestGroup_SameTextDifferentCategoriesNotMerged(t *testing.T) {
	notes := []models.Note{
		note("pick up the package", models.CategoryShopping),
		note("pick up the package", models.CategoryShopping),
		note("pick up the package", models.CategoryEvent),
		note("pick up the package", models.CategoryEvent),
		note("water the plants daily", models.CategoryRoutine),
		note("call mom tonight", models.CategoryCall),
	}

	got := Group(notes, defaultOpts)
	for _, cat := range []models.Category{models.CategoryShopping, models.CategoryEvent} {
		clusters := got[cat]
		if len(clusters) != 1 {
			t.Fatalf("%s: got %d clusters, want 1", cat, len(clusters))
		}
		if len(clusters[0].Notes) != 2 {
			t.Errorf("%s: cluster size = %d, want 2", cat, len(clusters[0].Notes))
		}
		for _, n := range clusters[0].Notes {
			if n.Category != cat {
				t.Errorf("%s cluster holds a %s note", cat, n.Category)
			}
		}
	}
}
