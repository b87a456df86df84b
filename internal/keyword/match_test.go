package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/go-sheet-search/model"
)

func TestIsIdentifierLike(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"AB007", true},
		{"X42", true},
		{"ab007", true},
		{"Z0", true},
		{"A0001", true},
		{"007", false},
		{"AB", false},
		{"AB-007", false},
		{"AB007X", false},
		{"bolt", false},
		{" AB007", false},
		{"AB 007", false},
		{"ÄB007", false},
		{"AB٠٧", true},
		{"X４２", true},
		{"", false},
		{"(?i)[", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIdentifierLike(tt.query))
		})
	}
}

func TestSelectPolicy(t *testing.T) {
	assert.Equal(t, PolicyExact, SelectPolicy("AB007"))
	assert.Equal(t, PolicySubstring, SelectPolicy("bolt"))
	assert.Equal(t, PolicySubstring, SelectPolicy("[unclosed"))
	assert.Equal(t, "exact", PolicyExact.String())
	assert.Equal(t, "substring", PolicySubstring.String())
}

func TestMatcher_MatchCell(t *testing.T) {
	tests := []struct {
		name  string
		query string
		cell  string
		want  bool
	}{
		{"identifier equal", "AB007", "AB007", true},
		{"identifier case-insensitive", "ab007", "AB007", true},
		{"identifier rejects superstring", "AB007", "AB0071", false},
		{"identifier rejects substring hit", "AB007", "XAB007", false},
		{"identifier rejects padded cell", "AB007", " AB007", false},
		{"substring contained", "bolt", "Bolt Long", true},
		{"substring case-insensitive", "BOLT", "hex bolt", true},
		{"substring miss", "nut", "Bolt", false},
		{"digits use substring policy", "7", "107", true},
		{"regex metacharacters are literal", "a.b", "axb", false},
		{"regex metacharacters match literally", "a.b", "xa.by", true},
		{"empty cell never matches a substring query", "bolt", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMatcher(tt.query).MatchCell(tt.cell))
		})
	}
}

func TestMatcher_Mask(t *testing.T) {
	sheet := model.NewSheet("Parts", []string{"id", "name"}, [][]string{
		{"AB007", "Bolt"},
		{"AB107", "Bolt Long"},
		{"CD007", "Nut"},
	})

	assert.Equal(t, []bool{true, false, false}, NewMatcher("AB007").Mask(sheet))
	assert.Equal(t, []bool{true, true, false}, NewMatcher("bolt").Mask(sheet))
	assert.Equal(t, []bool{true, false, true}, NewMatcher("007").Mask(sheet))
	assert.Equal(t, []bool{false, false, false}, NewMatcher("washer").Mask(sheet))
}
