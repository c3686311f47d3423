// Package textsim provides a request-scoped TF-IDF vectorizer and
// cosine similarity for note texts.
//
// A Vectorizer is fitted from one request's corpus and discarded with
// it. Sharing a fitted model across requests would freeze the
// vocabulary on whatever corpus happened to arrive first, so there is
// deliberately no package-level state here.
package textsim

import (
	"math"
	"strings"
	"unicode"
)

// Options bounds the fitted vocabulary by document frequency.
type Options struct {
	// MinDF excludes terms appearing in fewer than this fraction of
	// documents (noise terms).
	MinDF float64
	// MaxDF excludes terms appearing in more than this fraction of
	// documents (near-universal stop-words).
	MaxDF float64
}

// Vectorizer is a TF-IDF term-weighting model fitted over a corpus.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// Fit builds a vectorizer from the corpus. Terms outside the
// [MinDF, MaxDF] document-frequency band are dropped from the
// vocabulary. The vocabulary may end up empty (for example a corpus of
// identical one-term documents); Transform then yields zero vectors
// and every similarity is zero.
func Fit(docs []string, opts Options) *Vectorizer {
	n := len(docs)
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range tokenize(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	v := &Vectorizer{vocab: make(map[string]int)}
	for term, count := range df {
		ratio := float64(count) / float64(n)
		if ratio < opts.MinDF || ratio > opts.MaxDF {
			continue
		}
		v.vocab[term] = len(v.idf)
		// Smoothed idf, so no term ever weighs exactly zero.
		v.idf = append(v.idf, math.Log(float64(1+n)/float64(1+count))+1)
	}
	return v
}

// VocabSize returns the number of terms in the fitted vocabulary.
func (v *Vectorizer) VocabSize() int {
	return len(v.vocab)
}

// Transform maps a document onto the fitted vocabulary as a TF-IDF
// weight vector. Out-of-vocabulary terms are ignored.
func (v *Vectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, term := range tokenize(doc) {
		if idx, ok := v.vocab[term]; ok {
			vec[idx] += v.idf[idx]
		}
	}
	return vec
}

// Cosine returns the cosine similarity of two vectors, or 0 when
// either has zero magnitude.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// tokenize lowercases the text and splits it on any run of
// non-letter, non-digit characters.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
