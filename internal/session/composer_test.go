package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duna-ai/duna/internal/document"
)

type stubEncoder struct {
	docs []document.Encoded
	err  error
}

func (s stubEncoder) EncodeAll(context.Context, []document.UploadedFile) ([]document.Encoded, error) {
	return s.docs, s.err
}

func unreadable(name string) document.UploadedFile {
	return document.NewUploadedFile(name, document.MediaTypePDF, 10, func() (io.ReadCloser, error) {
		return nil, errors.New("permission denied")
	})
}

func TestComposeRejectsBlankJobDescription(t *testing.T) {
	composer := NewComposer(document.NewEncoder(nil, 2))

	for _, jd := range []string{"", "  ", "\n\t "} {
		for _, files := range [][]document.UploadedFile{nil, textFiles("a.txt")} {
			req, err := composer.Compose(context.Background(), jd, files)
			require.Nil(t, req)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, ReasonMissingJobDescription, vErr.Reason)
		}
	}
}

func TestComposeRejectsEmptyFileSet(t *testing.T) {
	composer := NewComposer(document.NewEncoder(nil, 2))

	for _, files := range [][]document.UploadedFile{nil, {}} {
		req, err := composer.Compose(context.Background(), "Go developer", files)
		require.Nil(t, req)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, ReasonMissingFiles, vErr.Reason)
		assert.Equal(t, "Please upload at least one resume", vErr.OperatorMessage())
	}
}

func TestComposeEncodingFailure(t *testing.T) {
	composer := NewComposer(document.NewEncoder(nil, 2))
	files := append(textFiles("a.txt"), unreadable("broken.pdf"))

	req, err := composer.Compose(context.Background(), "Go developer", files)
	require.Nil(t, req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonEncodingFailed, vErr.Reason)

	var encErr *document.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "broken.pdf", encErr.Name)
	assert.Equal(t, "Could not read broken.pdf. Remove or replace it and try again.", vErr.OperatorMessage())
}

func TestComposeRejectsShortEncoderOutput(t *testing.T) {
	composer := NewComposer(stubEncoder{docs: []document.Encoded{{Name: "a.txt"}}})

	_, err := composer.Compose(context.Background(), "Go developer", textFiles("a.txt", "b.txt"))

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonEncodingFailed, vErr.Reason)
	assert.Equal(t, "Could not read one of the uploaded files. Remove or replace it and try again.", vErr.OperatorMessage())
}

func TestComposePreservesCountAndOrder(t *testing.T) {
	composer := NewComposer(document.NewEncoder(nil, 3))

	for n := 1; n <= 7; n++ {
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("resume-%d.txt", i)
		}

		req, err := composer.Compose(context.Background(), "  Go developer  ", textFiles(names...))
		require.NoError(t, err)

		assert.Equal(t, "  Go developer  ", req.JobDescription)
		require.Len(t, req.Files, n)
		for i, doc := range req.Files {
			assert.Equal(t, names[i], doc.Name)
			assert.Equal(t, document.MediaTypeText, doc.MediaType)
			assert.NotEmpty(t, doc.Content)
		}
	}
}

func TestComposeKeepsUnknownMediaTypes(t *testing.T) {
	composer := NewComposer(document.NewEncoder(nil, 1))
	file := document.FromBytes("photo.png", "image/png", []byte{0x89, 'P', 'N', 'G'})

	req, err := composer.Compose(context.Background(), "Designer", []document.UploadedFile{file})
	require.NoError(t, err)
	assert.Equal(t, "image/png", req.Files[0].MediaType)
}
