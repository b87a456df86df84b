package semantic

import (
	"errors"
	"math"
)

// ErrEmptyVocabulary is returned by Fit when no document yields a single term.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no terms")

// Vector is a sparse vector. Indices are ascending vocabulary positions.
type Vector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v Vector) Len() int {
	return len(v.Indices)
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two sparse vectors.
func Dot(a, b Vector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			dot += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// CosineSimilarity returns the normalized dot product of a and b, or 0 when
// either vector is zero.
func CosineSimilarity(a, b Vector) float64 {
	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	return Dot(a, b) / (normA * normB)
}

// Vectorizer fits a term-weighting model on a corpus.
type Vectorizer interface {
	Fit(documents []string) (Model, error)
}

// Model maps text into the vector space learned at fit time.
type Model interface {
	// Transform vectorizes text. Terms outside the vocabulary contribute nothing.
	Transform(text string) Vector
	// Similarity scores two vectors produced by Transform.
	Similarity(a, b Vector) float64
	// VocabularySize returns the number of distinct terms kept by the model.
	VocabularySize() int
}
