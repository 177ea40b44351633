package export

import (
	"encoding/json"
	"os"

	"github.com/duna-ai/duna/internal/analyzer"
)

// DumpToTmpFile writes the view together with the batch summary as indented
// JSON into a new temporary file and returns its name.
func DumpToTmpFile(view []analyzer.Candidate, summary analyzer.Analytics) (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analyzer.Result{Candidates: view, Analytics: summary}); err != nil {
		return "", err
	}
	return file.Name(), nil
}
