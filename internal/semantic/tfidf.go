package semantic

import (
	"math"
	"sort"

	"github.com/gcbaptista/go-sheet-search/config"
	"github.com/gcbaptista/go-sheet-search/internal/tokenizer"
)

// TFIDFVectorizer fits classic TF-IDF models:
//
//	tf  = raw term count, or 1 + ln(count) when SublinearTF is set
//	idf = ln((1 + n) / (1 + df)) + 1
//
// Vectors are L2-normalized, so cosine similarity is a plain dot product.
type TFIDFVectorizer struct {
	MaxFeatures int  // Vocabulary cap; terms with the highest corpus frequency are kept
	SublinearTF bool // Dampen repeated terms with a logarithm
}

// NewTFIDFVectorizer creates a vectorizer with the given vocabulary cap.
// A non-positive cap uses the default.
func NewTFIDFVectorizer(maxFeatures int, sublinearTF bool) *TFIDFVectorizer {
	if maxFeatures <= 0 {
		maxFeatures = config.DefaultMaxFeatures
	}
	return &TFIDFVectorizer{MaxFeatures: maxFeatures, SublinearTF: sublinearTF}
}

// TFIDFModel is a fitted vocabulary with its inverse document frequencies.
type TFIDFModel struct {
	vocabulary  map[string]int // term -> position, positions follow alphabetical term order
	idf         []float64
	sublinearTF bool
}

// termStats accumulates corpus statistics for one term.
type termStats struct {
	term     string
	docFreq  int
	termFreq int
}

// Fit learns the vocabulary and idf weights from the documents.
func (v *TFIDFVectorizer) Fit(documents []string) (Model, error) {
	stats := make(map[string]*termStats)
	for _, doc := range documents {
		for term, count := range tokenizer.TermCounts(doc) {
			s, ok := stats[term]
			if !ok {
				s = &termStats{term: term}
				stats[term] = s
			}
			s.docFreq++
			s.termFreq += count
		}
	}
	if len(stats) == 0 {
		return nil, ErrEmptyVocabulary
	}

	kept := make([]*termStats, 0, len(stats))
	for _, s := range stats {
		kept = append(kept, s)
	}

	maxFeatures := v.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = config.DefaultMaxFeatures
	}
	if len(kept) > maxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if kept[i].termFreq != kept[j].termFreq {
				return kept[i].termFreq > kept[j].termFreq
			}
			return kept[i].term < kept[j].term
		})
		kept = kept[:maxFeatures]
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].term < kept[j].term
	})

	n := float64(len(documents))
	model := &TFIDFModel{
		vocabulary:  make(map[string]int, len(kept)),
		idf:         make([]float64, len(kept)),
		sublinearTF: v.SublinearTF,
	}
	for i, s := range kept {
		model.vocabulary[s.term] = i
		model.idf[i] = math.Log((1+n)/(1+float64(s.docFreq))) + 1
	}
	return model, nil
}

// Transform vectorizes text into the model's vocabulary space.
func (m *TFIDFModel) Transform(text string) Vector {
	counts := tokenizer.TermCounts(text)

	countByIndex := make(map[int]int, len(counts))
	indices := make([]int, 0, len(counts))
	for term, count := range counts {
		if idx, ok := m.vocabulary[term]; ok {
			countByIndex[idx] = count
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	vec := Vector{Indices: indices, Values: make([]float64, len(indices))}
	for i, idx := range indices {
		tf := float64(countByIndex[idx])
		if m.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		vec.Values[i] = tf * m.idf[idx]
	}

	if norm := vec.Norm(); norm > 0 {
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}

// Similarity returns the cosine similarity of two vectors.
func (m *TFIDFModel) Similarity(a, b Vector) float64 {
	return CosineSimilarity(a, b)
}

// VocabularySize returns the number of terms kept by the model.
func (m *TFIDFModel) VocabularySize() int {
	return len(m.vocabulary)
}

// IDF returns the inverse document frequency of a term and whether it is in the vocabulary.
func (m *TFIDFModel) IDF(term string) (float64, bool) {
	idx, ok := m.vocabulary[term]
	if !ok {
		return 0, false
	}
	return m.idf[idx], true
}
