package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/duna-ai/duna/internal/analytics"
	"github.com/duna-ai/duna/internal/analyzer"
	"github.com/duna-ai/duna/internal/logger"
	"github.com/duna-ai/duna/internal/ranking"
)

const (
	noMatchesMessage = "No candidates match the current filter criteria. Try lowering the minimum score threshold."
	previewLimit     = 500
	skillsLimit      = 60
)

func renderSummary(w io.Writer, summary analyzer.Analytics) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, m := range analytics.Project(summary) {
		fmt.Fprintf(tw, "%s\t%s\n", m.Label, m.Value)
	}
	tw.Flush()
}

func renderView(w io.Writer, view []analyzer.Candidate, step ranking.Step, sortBy ranking.SortKey, minScore float64) {
	fmt.Fprintf(w, "\nShowing %d of %d candidates (sorted by %s, minimum score %s)\n\n",
		step.Left, step.Initial, sortBy, analytics.Percent(minScore))

	if len(view) == 0 {
		fmt.Fprintln(w, noMatchesMessage)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tFILENAME\tSCORE\tMATCH\tEXPERIENCE\tSKILLS")
	for _, c := range view {
		fmt.Fprintf(tw, "#%d\t%s\t%s\t%s\t%s\t%s\n",
			c.Rank,
			c.Filename,
			analytics.Percent(c.SimilarityPercentage),
			ranking.BandFor(c.SimilarityPercentage),
			c.ExperienceLevel,
			logger.TruncateForLog(strings.Join(c.FoundSkills, ", "), skillsLimit),
		)
	}
	tw.Flush()
}

func renderCandidate(w io.Writer, c analyzer.Candidate) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Rank\t#%d\n", c.Rank)
	fmt.Fprintf(tw, "File\t%s\n", c.Filename)
	fmt.Fprintf(tw, "Score\t%s (%s)\n", analytics.Percent(c.SimilarityPercentage), ranking.BandFor(c.SimilarityPercentage))
	fmt.Fprintf(tw, "Experience\t%s\n", c.ExperienceLevel)
	fmt.Fprintf(tw, "Skills\t%s\n", strings.Join(c.FoundSkills, ", "))
	tw.Flush()

	if c.Summary != "" {
		fmt.Fprintf(w, "\nSummary:\n%s\n", c.Summary)
	}
	if c.ResumeText != "" {
		fmt.Fprintf(w, "\nResume preview:\n%s\n", logger.TruncateForLog(c.ResumeText, previewLimit))
	}
}

func candidateLabel(c analyzer.Candidate) string {
	return fmt.Sprintf("#%d %s (%s)", c.Rank, c.Filename, analytics.Percent(c.SimilarityPercentage))
}
