package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/duna-ai/duna/internal/analyzer"
	"github.com/duna-ai/duna/internal/document"
)

const (
	ReasonMissingJobDescription = "missing-job-description"
	ReasonMissingFiles          = "missing-files"
	ReasonEncodingFailed        = "encoding-failed"
)

// ValidationError is the single failure channel of Compose.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) OperatorMessage() string {
	switch e.Reason {
	case ReasonMissingJobDescription:
		return "Please enter a job description"
	case ReasonMissingFiles:
		return "Please upload at least one resume"
	case ReasonEncodingFailed:
		var encErr *document.EncodingError
		if errors.As(e.Err, &encErr) {
			return fmt.Sprintf("Could not read %s. Remove or replace it and try again.", encErr.Name)
		}
		return "Could not read one of the uploaded files. Remove or replace it and try again."
	default:
		return e.Reason
	}
}

type Encoder interface {
	EncodeAll(ctx context.Context, files []document.UploadedFile) ([]document.Encoded, error)
}

// Composer validates operator input and builds the analysis request.
type Composer struct {
	encoder Encoder
}

func NewComposer(encoder Encoder) *Composer {
	return &Composer{encoder: encoder}
}

// Compose checks the job description first and the file set second; the
// first failing check wins. The job description is sent as typed.
func (c *Composer) Compose(ctx context.Context, jobDescription string, files []document.UploadedFile) (*analyzer.Request, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ValidationError{Reason: ReasonMissingJobDescription}
	}

	if len(files) == 0 {
		return nil, &ValidationError{Reason: ReasonMissingFiles}
	}

	docs, err := c.encoder.EncodeAll(ctx, files)
	if err != nil {
		return nil, &ValidationError{Reason: ReasonEncodingFailed, Err: err}
	}

	if len(docs) != len(files) {
		return nil, &ValidationError{
			Reason: ReasonEncodingFailed,
			Err:    fmt.Errorf("encoded %d documents out of %d files", len(docs), len(files)),
		}
	}

	return &analyzer.Request{
		JobDescription: jobDescription,
		Files:          docs,
	}, nil
}
