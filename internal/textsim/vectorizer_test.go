package textsim

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	got := tokenize("Buy milk, bread & 2 eggs!")
	want := []string{"buy", "milk", "bread", "2", "eggs"}
	if len(got) != len(want) {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFit_DropsOutOfBandTerms(t *testing.T) {
	docs := []string{
		"alpha beta",
		"alpha gamma",
		"alpha delta",
	}
	// "alpha" appears in every document (ratio 1.0 > MaxDF) and is
	// dropped; the three singletons (ratio 1/3) stay.
	v := Fit(docs, Options{MinDF: 0.1, MaxDF: 0.9})
	if v.VocabSize() != 3 {
		t.Fatalf("vocab size = %d, want 3", v.VocabSize())
	}
	if _, ok := v.vocab["alpha"]; ok {
		t.Error("near-universal term must be dropped")
	}
}

func TestFit_MinDFDropsRareTerms(t *testing.T) {
	docs := []string{
		"report status", "report status", "report status",
		"report status", "report status", "report status",
		"report status", "report status", "report status",
		"report status noise",
	}
	v := Fit(docs, Options{MinDF: 0.2, MaxDF: 1.0})
	if _, ok := v.vocab["noise"]; ok {
		t.Error("term below MinDF must be dropped")
	}
	if _, ok := v.vocab["report"]; !ok {
		t.Error("in-band term must be kept")
	}
}

func TestCosine_IdenticalDocs(t *testing.T) {
	docs := []string{
		"water the plants",
		"water the plants",
		"pay rent",
		"dentist appointment",
	}
	v := Fit(docs, Options{MinDF: 0.1, MaxDF: 0.9})
	a := v.Transform(docs[0])
	b := v.Transform(docs[1])
	if got := Cosine(a, b); math.Abs(got-1) > 1e-9 {
		t.Errorf("cosine of identical docs = %f, want 1", got)
	}
}

func TestCosine_DisjointDocs(t *testing.T) {
	docs := []string{
		"water the plants",
		"pay rent online",
		"dentist appointment tomorrow",
	}
	v := Fit(docs, Options{MinDF: 0.1, MaxDF: 0.9})
	a := v.Transform(docs[0])
	b := v.Transform(docs[1])
	if got := Cosine(a, b); got != 0 {
		t.Errorf("cosine of disjoint docs = %f, want 0", got)
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	if got := Cosine([]float64{0, 0}, []float64{1, 2}); got != 0 {
		t.Errorf("cosine with zero vector = %f, want 0", got)
	}
}

func TestTransform_OutOfVocabularyIgnored(t *testing.T) {
	docs := []string{"alpha beta", "alpha gamma", "delta beta"}
	v := Fit(docs, Options{MinDF: 0.1, MaxDF: 0.9})
	vec := v.Transform("unseen words only")
	for i, w := range vec {
		if w != 0 {
			t.Errorf("component %d = %f, want 0", i, w)
		}
	}
}
