package analytics

import (
	"strconv"

	"github.com/duna-ai/duna/internal/analyzer"
)

const (
	LabelTotal   = "Total Candidates"
	LabelAverage = "Average Match Score"
	LabelTop     = "Top Match Score"
	LabelLowest  = "Lowest Match Score"
)

// Metric is one display-ready summary value.
type Metric struct {
	Label string
	Value string
}

// Project formats the service-computed summary as-is. It always describes
// the whole batch, including when the displayed candidates are filtered.
func Project(a analyzer.Analytics) []Metric {
	return []Metric{
		{Label: LabelTotal, Value: strconv.Itoa(a.TotalCandidates)},
		{Label: LabelAverage, Value: Percent(a.AverageSimilarity)},
		{Label: LabelTop, Value: Percent(a.MaxSimilarity)},
		{Label: LabelLowest, Value: Percent(a.MinSimilarity)},
	}
}

// Percent renders a 0..100 score with one decimal.
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
