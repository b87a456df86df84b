package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/gcbaptista/go-sheet-search/internal/testing"
	"github.com/gcbaptista/go-sheet-search/services"
)

func TestFormatRecord(t *testing.T) {
	record := map[string]interface{}{"name": "Bolt", "id": "AB007"}
	assert.Equal(t, "id=AB007, name=Bolt", formatRecord(record))
	assert.Equal(t, "", formatRecord(nil))
}

func TestPrintResult(t *testing.T) {
	color.NoColor = true

	result := services.SearchResult{
		Keyword: services.KeywordResult{
			Summary: "Total keyword matches (pre-cap): 1\n- Parts: 1",
			Policy:  "exact",
			Results: map[string][]services.RowMatch{
				"Parts": {{Index: 0, Record: map[string]interface{}{"id": "AB007"}}},
			},
		},
		Semantic: &services.SemanticResult{
			Summary: "Semantic hits (top 30 per sheet): 1",
			Results: map[string][]services.SemanticMatch{
				"Parts": {{RowMatch: services.RowMatch{Index: 0, Record: map[string]interface{}{"id": "AB007"}}, Score: 0.5}},
			},
		},
	}

	var buf bytes.Buffer
	printResult(&buf, result)

	out := buf.String()
	assert.Contains(t, out, "Keyword (exact match)")
	assert.Contains(t, out, "Total keyword matches (pre-cap): 1")
	assert.Contains(t, out, "[Parts]")
	assert.Contains(t, out, "row 0: id=AB007")
	assert.Contains(t, out, "0.5000 row 0: id=AB007")
}

func TestQueryCommand(t *testing.T) {
	color.NoColor = true

	path := filepath.Join(t.TempDir(), "parts.xlsx")
	require.NoError(t, os.WriteFile(path, testutil.XLSXBytes(t, testutil.PartsSheets()...), 0644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"query", path, "AB007", "--no-semantic"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Total keyword matches (pre-cap): 1")
	assert.Contains(t, out.String(), "- Parts: 1")
	assert.NotContains(t, out.String(), "Semantic")
}

func TestQueryCommand_MissingFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"query", filepath.Join(t.TempDir(), "missing.xlsx"), "bolt"})

	assert.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "sheetsearch v"+version+"\n", out.String())
}
