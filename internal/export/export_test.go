package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/duna-ai/duna/internal/analyzer"
)

func sample() ([]analyzer.Candidate, analyzer.Analytics) {
	view := []analyzer.Candidate{
		{ID: "0", Rank: 1, Filename: "alice.pdf", SimilarityPercentage: 86.42, ExperienceLevel: "Senior", FoundSkills: []string{"go", "kubernetes"}, Summary: "Strong backend profile"},
		{ID: "1", Rank: 2, Filename: "bob.docx", SimilarityPercentage: 41, ExperienceLevel: "Junior"},
	}
	summary := analyzer.Analytics{TotalCandidates: 3, AverageSimilarity: 55.5, MaxSimilarity: 86.42, MinSimilarity: 39.1}
	return view, summary
}

func TestToExcel(t *testing.T) {
	view, summary := sample()

	path, err := ToExcel(view, summary, filepath.Join(t.TempDir(), "ranking"))
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{SummarySheet, CandidatesSheet}, f.GetSheetList())

	cell := func(sheet, axis string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, axis)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Total Candidates", cell(SummarySheet, "A3"))
	assert.Equal(t, "3", cell(SummarySheet, "B3"))
	assert.Equal(t, "55.5%", cell(SummarySheet, "B4"))
	assert.Equal(t, "Candidates Shown", cell(SummarySheet, "A7"))
	assert.Equal(t, "2", cell(SummarySheet, "B7"))

	assert.Equal(t, "Rank", cell(CandidatesSheet, "A1"))
	assert.Equal(t, "alice.pdf", cell(CandidatesSheet, "B2"))
	assert.Equal(t, "86.4%", cell(CandidatesSheet, "C2"))
	assert.Equal(t, "Excellent Match", cell(CandidatesSheet, "D2"))
	assert.Equal(t, "go, kubernetes", cell(CandidatesSheet, "F2"))
	assert.Equal(t, "Moderate Match", cell(CandidatesSheet, "D3"))
	assert.Empty(t, cell(CandidatesSheet, "B4"))
}

func TestToExcelKeepsExtension(t *testing.T) {
	view, summary := sample()
	target := filepath.Join(t.TempDir(), "Report.XLSX")

	path, err := ToExcel(view, summary, target)
	require.NoError(t, err)
	assert.Equal(t, target, path)
}

func TestToExcelEmptyPath(t *testing.T) {
	_, err := ToExcel(nil, analyzer.Analytics{}, "  ")
	require.Error(t, err)
}

func TestDumpToTmpFile(t *testing.T) {
	view, summary := sample()

	name, err := DumpToTmpFile(view, summary)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(name) })

	data, err := os.ReadFile(name)
	require.NoError(t, err)

	var decoded analyzer.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, view, decoded.Candidates)
	assert.Equal(t, summary, decoded.Analytics)
	assert.Contains(t, string(data), "\n  \"results\"")
}
