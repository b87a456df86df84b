package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowMatch_MarshalJSON(t *testing.T) {
	match := RowMatch{
		Index:   2,
		Record:  map[string]interface{}{"name": "Nut", "id": "CD007", "description": "brass nut"},
		Columns: []string{"id", "name", "description"},
	}

	data, err := json.Marshal(match)
	require.NoError(t, err)
	assert.Equal(t, `{"index":2,"record":{"id":"CD007","name":"Nut","description":"brass nut"}}`, string(data))

	var decoded RowMatch
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.Index)
	assert.Equal(t, match.Record, decoded.Record)
}

func TestSemanticMatch_MarshalJSON(t *testing.T) {
	match := SemanticMatch{
		RowMatch: RowMatch{
			Index:   0,
			Record:  map[string]interface{}{"name": "Bolt", "id": "AB007"},
			Columns: []string{"id", "name"},
		},
		Score: 0.5,
	}

	data, err := json.Marshal(match)
	require.NoError(t, err)
	assert.Equal(t, `{"_semantic_score":0.5,"id":"AB007","name":"Bolt"}`, string(data))

	var decoded SemanticMatch
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 0.5, decoded.Score)
	assert.Equal(t, []string{"id", "name"}, decoded.Columns)
	assert.Equal(t, match.Record, decoded.Record)
}

func TestSemanticMatch_MarshalJSON_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		match SemanticMatch
		want  string
	}{
		{
			name: "no columns sorts keys",
			match: SemanticMatch{
				RowMatch: RowMatch{Record: map[string]interface{}{"b": "2", "a": "1"}},
			},
			want: `{"_semantic_score":0,"a":"1","b":"2"}`,
		},
		{
			name: "unlisted keys follow columns",
			match: SemanticMatch{
				RowMatch: RowMatch{
					Record:  map[string]interface{}{"z": "3", "b": "2", "a": "1"},
					Columns: []string{"z"},
				},
				Score: 1,
			},
			want: `{"_semantic_score":1,"z":"3","a":"1","b":"2"}`,
		},
		{
			name: "column named like the score is not repeated",
			match: SemanticMatch{
				RowMatch: RowMatch{
					Record:  map[string]interface{}{SemanticScoreField: "x", "id": "A1"},
					Columns: []string{SemanticScoreField, "id"},
				},
				Score: 0.25,
			},
			want: `{"_semantic_score":0.25,"id":"A1"}`,
		},
		{
			name:  "empty record",
			match: SemanticMatch{Score: 0.75},
			want:  `{"_semantic_score":0.75}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.match)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestSemanticMatch_UnmarshalJSON_RejectsNonObject(t *testing.T) {
	var match SemanticMatch
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &match))
}
