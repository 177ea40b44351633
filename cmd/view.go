package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/duna-ai/duna/internal/analyzer"
	"github.com/duna-ai/duna/internal/document"
	"github.com/duna-ai/duna/internal/export"
	"github.com/duna-ai/duna/internal/ranking"
)

// viewer re-derives the candidate view from one immutable result whenever
// the sort key or the threshold changes. It never talks to the service.
type viewer struct {
	result   *analyzer.Result
	sortBy   ranking.SortKey
	minScore float64
	out      io.Writer
	logger   *zap.Logger
}

func (v *viewer) current() []analyzer.Candidate {
	return ranking.View(v.result.Candidates, v.sortBy, v.minScore)
}

func (v *viewer) show() {
	view := v.current()
	step := ranking.Describe(v.result.Candidates, view)

	v.logger.Info("candidate view",
		zap.String("sort", string(v.sortBy)),
		zap.Float64("min_score", v.minScore),
		zap.Int("initial", step.Initial),
		zap.Int("dropped", step.Dropped),
		zap.Int("left", step.Left),
	)

	renderSummary(v.out, v.result.Analytics)
	renderView(v.out, view, step, v.sortBy, v.minScore)
}

func (v *viewer) handleAction(action string) error {
	switch action {
	case PromptSortSimilarity:
		v.sortBy = ranking.BySimilarity
	case PromptSortName:
		v.sortBy = ranking.ByName
	case PromptSortRank:
		v.sortBy = ranking.ByRank
	case PromptMinScore:
		scorePrompt := promptui.Prompt{
			Label:    "Minimum match score (0-100)",
			Default:  strconv.FormatFloat(v.minScore, 'f', -1, 64),
			Validate: func(s string) error { _, err := parseMinScore(s); return err },
		}
		input, err := scorePrompt.Run()
		if err != nil {
			return err
		}
		v.minScore, _ = parseMinScore(input)
	case PromptDetails:
		return v.details()
	case PromptExport:
		pathPrompt := promptui.Prompt{Label: "Export path", Default: defaultExportPath}
		path, err := pathPrompt.Run()
		if err != nil {
			return err
		}
		return v.export(path)
	case PromptDump:
		return v.dump()
	case PromptExit:
		v.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}

	v.show()
	return nil
}

func (v *viewer) details() error {
	for {
		view := v.current()
		if len(view) == 0 {
			fmt.Fprintln(v.out, noMatchesMessage)
			return nil
		}

		items := make([]string, 0, len(view)+1)
		for _, c := range view {
			items = append(items, candidateLabel(c))
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		idx, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		renderCandidate(v.out, view[idx])
	}
}

func (v *viewer) export(path string) error {
	written, err := export.ToExcel(v.current(), v.result.Analytics, path)
	if err != nil {
		return fmt.Errorf("export to excel: %w", err)
	}
	v.logger.Info("exported candidates", zap.String("filename", written))
	return nil
}

func (v *viewer) dump() error {
	filename, err := export.DumpToTmpFile(v.current(), v.result.Analytics)
	if err != nil {
		return fmt.Errorf("dump results to file: %w", err)
	}
	v.logger.Info("dumping result to file", zap.String("filename", filename))
	return nil
}

func parseMinScore(s string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if score < 0 || score > 100 {
		return 0, fmt.Errorf("score must be between 0 and 100, got %v", score)
	}
	return score, nil
}

// collectFiles opens the given resumes in order. Files of a type the service
// cannot read are skipped with a warning.
func collectFiles(paths []string, lg *zap.Logger) (document.Collection, error) {
	files := document.NewCollection()
	for _, path := range paths {
		f, err := document.Open(path)
		if err != nil {
			return files, err
		}

		if !document.Accepted(f.MediaType) {
			lg.Warn("skipping unsupported file",
				zap.String("path", path),
				zap.String("media_type", f.MediaType),
				zap.String("hint", "only pdf, docx and txt resumes are accepted"),
			)
			continue
		}

		files = files.With(f)
	}

	for i := range files.Len() {
		lg.Debug("selected resume", zap.String("file", files.Label(i)))
	}

	return files, nil
}
