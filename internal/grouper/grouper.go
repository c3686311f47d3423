// Package grouper partitions a note history into clusters of
// textually similar notes within each category.
package grouper

import (
	"github.com/PzNot2ndPlace/hints-service/internal/models"
	"github.com/PzNot2ndPlace/hints-service/internal/textsim"
)

// Cluster is a transient grouping of notes from one category whose
// texts are similar enough to count as recurring instances of the same
// reminder. It holds no state beyond the request that produced it.
type Cluster struct {
	Category models.Category
	Notes    []models.Note
}

// Options controls clustering behavior.
type Options struct {
	// Threshold is the cosine similarity a pair must exceed to land in
	// the same cluster.
	Threshold float64
	// MinDF and MaxDF bound the TF-IDF vocabulary, see textsim.Options.
	MinDF float64
	MaxDF float64
}

// Group clusters the notes per category. The TF-IDF model is fitted
// once over the text of every note in the request; categories holding
// fewer than two notes produce no clusters. An empty history yields an
// empty map.
//
// Clustering is a greedy pass in input order: each not-yet-assigned
// note seeds a cluster and pulls in every note (assigned or not) whose
// similarity to the seed exceeds the threshold. Because similarity is
// not transitive, membership can depend on traversal order; that
// non-determinism is an accepted property of the algorithm, not a bug.
func Group(notes []models.Note, opts Options) map[models.Category][]*Cluster {
	out := make(map[models.Category][]*Cluster)
	if len(notes) == 0 {
		return out
	}

	corpus := make([]string, len(notes))
	for i, n := range notes {
		corpus[i] = n.Text
	}
	model := textsim.Fit(corpus, textsim.Options{MinDF: opts.MinDF, MaxDF: opts.MaxDF})

	byCat := make(map[models.Category][]models.Note)
	for _, n := range notes {
		byCat[n.Category] = append(byCat[n.Category], n)
	}

	for cat, catNotes := range byCat {
		if len(catNotes) < 2 {
			continue
		}
		out[cat] = clusterCategory(cat, catNotes, model, opts.Threshold)
	}
	return out
}

func clusterCategory(cat models.Category, notes []models.Note, model *textsim.Vectorizer, threshold float64) []*Cluster {
	vecs := make([][]float64, len(notes))
	for i, n := range notes {
		vecs[i] = model.Transform(n.Text)
	}

	var clusters []*Cluster
	assigned := make([]bool, len(notes))
	for i := range notes {
		if assigned[i] {
			continue
		}
		c := &Cluster{Category: cat, Notes: []models.Note{notes[i]}}
		assigned[i] = true
		for j := range notes {
			if j == i {
				continue
			}
			if textsim.Cosine(vecs[i], vecs[j]) > threshold {
				c.Notes = append(c.Notes, notes[j])
				assigned[j] = true
			}
		}
		clusters = append(clusters, c)
	}
	return clusters
}
