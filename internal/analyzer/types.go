package analyzer

import "github.com/duna-ai/duna/internal/document"

// Request is the body of POST /api/analyze.
type Request struct {
	JobDescription string             `json:"jobDescription"`
	Files          []document.Encoded `json:"files"`
}

// Candidate is one scored resume as returned by the service. Similarity is
// on a 0..1 scale, SimilarityPercentage on 0..100.
type Candidate struct {
	ID                   string   `json:"id"`
	Rank                 int      `json:"rank"`
	Filename             string   `json:"filename"`
	Similarity           float64  `json:"similarity"`
	SimilarityPercentage float64  `json:"similarity_percentage"`
	ExperienceLevel      string   `json:"experience_level"`
	FoundSkills          []string `json:"found_skills"`
	Summary              string   `json:"summary"`
	ResumeText           string   `json:"resume_text"`
}

// Analytics is computed by the service over the whole batch.
type Analytics struct {
	TotalCandidates   int     `json:"total_candidates"`
	AverageSimilarity float64 `json:"average_similarity"`
	MaxSimilarity     float64 `json:"max_similarity"`
	MinSimilarity     float64 `json:"min_similarity"`
}

// Result holds candidates and analytics of one successful analysis. They are
// always replaced together.
type Result struct {
	Candidates []Candidate `json:"results"`
	Analytics  Analytics   `json:"analytics"`
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Candidates)
}
