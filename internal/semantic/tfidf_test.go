package semantic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func TestTFIDFVectorizer_IDF(t *testing.T) {
	docs := []string{
		"bolt steel",
		"bolt long",
		"nut brass",
	}

	fitted, err := NewTFIDFVectorizer(0, false).Fit(docs)
	require.NoError(t, err)
	m := fitted.(*TFIDFModel)

	assert.Equal(t, 5, m.VocabularySize())

	// smoothed idf: ln((1+n)/(1+df)) + 1
	idfBolt, ok := m.IDF("bolt")
	require.True(t, ok)
	assert.InDelta(t, math.Log(4.0/3.0)+1, idfBolt, epsilon)

	idfNut, ok := m.IDF("nut")
	require.True(t, ok)
	assert.InDelta(t, math.Log(4.0/2.0)+1, idfNut, epsilon)

	_, ok = m.IDF("washer")
	assert.False(t, ok)
}

func TestTFIDFVectorizer_EmptyVocabulary(t *testing.T) {
	_, err := NewTFIDFVectorizer(0, false).Fit([]string{"a | b", "", "7"})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)

	_, err = NewTFIDFVectorizer(0, false).Fit(nil)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestTFIDFVectorizer_MaxFeatures(t *testing.T) {
	docs := []string{
		"alpha alpha beta",
		"alpha gamma delta",
		"beta delta",
	}

	fitted, err := NewTFIDFVectorizer(2, false).Fit(docs)
	require.NoError(t, err)
	m := fitted.(*TFIDFModel)

	// alpha=3; beta=2 and delta=2 tie, alphabetical order keeps beta
	assert.Equal(t, 2, m.VocabularySize())
	_, ok := m.IDF("alpha")
	assert.True(t, ok)
	_, ok = m.IDF("beta")
	assert.True(t, ok)
	_, ok = m.IDF("delta")
	assert.False(t, ok)
	_, ok = m.IDF("gamma")
	assert.False(t, ok)
}

func TestTFIDFModel_Transform(t *testing.T) {
	fitted, err := NewTFIDFVectorizer(0, false).Fit([]string{"bolt steel", "bolt long", "nut brass"})
	require.NoError(t, err)

	t.Run("vectors are unit length", func(t *testing.T) {
		vec := fitted.Transform("bolt bolt steel")
		assert.InDelta(t, 1.0, vec.Norm(), epsilon)
		assert.Equal(t, 2, vec.Len())
		for i := 1; i < len(vec.Indices); i++ {
			assert.Less(t, vec.Indices[i-1], vec.Indices[i], "indices must be ascending")
		}
	})

	t.Run("unknown terms contribute nothing", func(t *testing.T) {
		vec := fitted.Transform("washer gasket")
		assert.Equal(t, 0, vec.Len())
		assert.Equal(t, 0.0, vec.Norm())

		mixed := fitted.Transform("nut washer")
		assert.Equal(t, 1, mixed.Len())
	})

	t.Run("identical text has similarity one", func(t *testing.T) {
		a := fitted.Transform("bolt | long")
		b := fitted.Transform("BOLT long")
		assert.InDelta(t, 1.0, fitted.Similarity(a, b), epsilon)
	})

	t.Run("disjoint text has similarity zero", func(t *testing.T) {
		a := fitted.Transform("bolt")
		b := fitted.Transform("brass")
		assert.Equal(t, 0.0, fitted.Similarity(a, b))
	})
}

func TestTFIDFModel_SublinearTF(t *testing.T) {
	docs := []string{"bolt nut", "bolt washer"}

	raw, err := NewTFIDFVectorizer(0, false).Fit(docs)
	require.NoError(t, err)
	damped, err := NewTFIDFVectorizer(0, true).Fit(docs)
	require.NoError(t, err)

	text := "nut nut nut nut bolt"
	rawVec := raw.Transform(text)
	dampedVec := damped.Transform(text)

	nut := raw.(*TFIDFModel).vocabulary["nut"]
	weightOf := func(v Vector, idx int) float64 {
		for i, j := range v.Indices {
			if j == idx {
				return v.Values[i]
			}
		}
		return 0
	}
	assert.Greater(t, weightOf(rawVec, nut), weightOf(dampedVec, nut))
}

func TestCosineSimilarity(t *testing.T) {
	a := Vector{Indices: []int{0, 2}, Values: []float64{3, 4}}
	b := Vector{Indices: []int{0, 2}, Values: []float64{6, 8}}
	c := Vector{Indices: []int{1}, Values: []float64{5}}
	zero := Vector{}

	assert.InDelta(t, 1.0, CosineSimilarity(a, b), epsilon)
	assert.Equal(t, 0.0, CosineSimilarity(a, c))
	assert.Equal(t, 0.0, CosineSimilarity(a, zero))
	assert.InDelta(t, 50.0, Dot(a, b), epsilon)
}
