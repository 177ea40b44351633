package document

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// EncodingError reports a file whose bytes could not be read.
type EncodingError struct {
	Name string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding %q: %v", e.Name, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Encoder turns uploaded files into base64 payload documents.
type Encoder struct {
	concurrency int
	logger      *zap.Logger
}

func NewEncoder(logger *zap.Logger, concurrency int) *Encoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Encoder{
		concurrency: concurrency,
		logger:      logger,
	}
}

// Encode reads the whole file and returns its standard base64 encoding
// without any data URI prefix.
func (e *Encoder) Encode(ctx context.Context, f UploadedFile) (Encoded, error) {
	if err := ctx.Err(); err != nil {
		return Encoded{}, &EncodingError{Name: f.Name, Err: err}
	}

	rc, err := f.Open()
	if err != nil {
		return Encoded{}, &EncodingError{Name: f.Name, Err: err}
	}
	defer rc.Close()

	var content strings.Builder
	if f.Size > 0 {
		content.Grow(base64.StdEncoding.EncodedLen(int(f.Size)))
	}

	enc := base64.NewEncoder(base64.StdEncoding, &content)
	if _, err := io.Copy(enc, rc); err != nil {
		return Encoded{}, &EncodingError{Name: f.Name, Err: err}
	}
	if err := enc.Close(); err != nil {
		return Encoded{}, &EncodingError{Name: f.Name, Err: err}
	}

	return Encoded{
		Name:      f.Name,
		MediaType: f.MediaType,
		Content:   content.String(),
	}, nil
}

// EncodeAll encodes every file concurrently. The output keeps the input
// order. If any file fails, no documents are returned, only the first error.
func (e *Encoder) EncodeAll(ctx context.Context, files []UploadedFile) ([]Encoded, error) {
	out := make([]Encoded, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for idx, f := range files {
		g.Go(func() error {
			doc, err := e.Encode(gCtx, f)
			if err != nil {
				return err
			}

			e.logger.Debug("encoded document",
				zap.Int("index", idx+1),
				zap.Int("total", len(files)),
				zap.String("name", f.Name),
				zap.Int("encoded_length", len(doc.Content)),
			)

			out[idx] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.Warn("encoding failed, dropping the whole batch", zap.Error(err))
		return nil, err
	}

	return out, nil
}
