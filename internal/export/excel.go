package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/duna-ai/duna/internal/analytics"
	"github.com/duna-ai/duna/internal/analyzer"
	"github.com/duna-ai/duna/internal/ranking"
)

const (
	SummarySheet    = "Summary"
	CandidatesSheet = "Ranked Candidates"
)

var candidateHeaders = []string{"Rank", "Filename", "Match Score", "Match", "Experience", "Skills", "Summary"}

var bandFills = map[ranking.Band]string{
	ranking.Excellent: "C6EFCE",
	ranking.Strong:    "DDEBF7",
	ranking.Moderate:  "FFEB9C",
	ranking.Limited:   "FFC7CE",
}

var cellBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// ToExcel writes the current view and the batch summary into an xlsx
// workbook and returns the final path.
func ToExcel(view []analyzer.Candidate, summary analyzer.Analytics, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("export path is empty")
	}
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return "", fmt.Errorf("rename default sheet: %w", err)
	}
	if _, err := f.NewSheet(CandidatesSheet); err != nil {
		return "", fmt.Errorf("create candidates sheet: %w", err)
	}

	if err := writeSummary(f, summary, len(view)); err != nil {
		return "", fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeCandidates(f, view); err != nil {
		return "", fmt.Errorf("candidates sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}

	return path, nil
}

func writeSummary(f *excelize.File, summary analyzer.Analytics, shown int) error {
	if err := f.SetColWidth(SummarySheet, "A", "A", 25); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 30); err != nil {
		return err
	}

	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{
		{"Candidate Ranking Report"},
		{"Generated", time.Now().Format("2006-01-02 15:04:05")},
	}
	for _, m := range analytics.Project(summary) {
		rows = append(rows, []any{m.Label, m.Value})
	}
	rows = append(rows, []any{"Candidates Shown", shown})

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
		if err := f.SetCellStyle(SummarySheet, cell, cell, labelStyle); err != nil {
			return err
		}
	}

	return nil
}

func writeCandidates(f *excelize.File, view []analyzer.Candidate) error {
	widths := map[string]float64{"A": 8, "B": 30, "C": 12, "D": 16, "E": 14, "F": 40, "G": 60}
	for col, width := range widths {
		if err := f.SetColWidth(CandidatesSheet, col, col, width); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder,
	})
	if err != nil {
		return err
	}

	bandStyles := make(map[ranking.Band]int, len(bandFills))
	for band, color := range bandFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
			Border:    cellBorder,
		})
		if err != nil {
			return err
		}
		bandStyles[band] = style
	}

	header := make([]any, 0, len(candidateHeaders))
	for _, h := range candidateHeaders {
		header = append(header, h)
	}
	if err := f.SetSheetRow(CandidatesSheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(candidateHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(CandidatesSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, c := range view {
		band := ranking.BandFor(c.SimilarityPercentage)
		row := []any{
			c.Rank,
			c.Filename,
			analytics.Percent(c.SimilarityPercentage),
			string(band),
			c.ExperienceLevel,
			strings.Join(c.FoundSkills, ", "),
			c.Summary,
		}

		first, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(len(row), i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(CandidatesSheet, first, &row); err != nil {
			return err
		}
		if err := f.SetCellStyle(CandidatesSheet, first, end, bandStyles[band]); err != nil {
			return err
		}
	}

	return f.SetPanes(CandidatesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
