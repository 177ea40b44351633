package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeText = "text/plain"
)

var accepted = []string{MediaTypePDF, MediaTypeDOCX, MediaTypeText}

var extensions = map[string]string{
	".pdf":  MediaTypePDF,
	".docx": MediaTypeDOCX,
	".txt":  MediaTypeText,
}

// Opener returns a fresh reader over the file bytes. The caller closes it.
type Opener func() (io.ReadCloser, error)

// UploadedFile is a resume selected by the operator. Its bytes are only read
// while it is being encoded.
type UploadedFile struct {
	Name      string
	MediaType string
	Size      int64

	open Opener
}

// Encoded is the transport-safe form of an UploadedFile.
type Encoded struct {
	Name      string `json:"name"`
	MediaType string `json:"type"`
	Content   string `json:"content"`
}

func NewUploadedFile(name, mediaType string, size int64, open Opener) UploadedFile {
	return UploadedFile{
		Name:      name,
		MediaType: mediaType,
		Size:      size,
		open:      open,
	}
}

// FromBytes wraps in-memory content, e.g. a resume piped through stdin.
func FromBytes(name, mediaType string, data []byte) UploadedFile {
	content := slices.Clone(data)
	return NewUploadedFile(name, mediaType, int64(len(content)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(content)), nil
	})
}

// Open builds an UploadedFile from a path on disk. The media type is sniffed
// from the content and falls back to the extension when sniffing does not
// recognise one of the accepted types.
func Open(path string) (UploadedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return UploadedFile{}, err
	}
	if info.IsDir() {
		return UploadedFile{}, fmt.Errorf("%s is a directory", path)
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("detecting media type of %s: %w", path, err)
	}

	return NewUploadedFile(filepath.Base(path), mediaTypeOf(detected, path), info.Size(), func() (io.ReadCloser, error) {
		return os.Open(path)
	}), nil
}

func (f UploadedFile) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, errors.New("file has no content source")
	}
	return f.open()
}

// Accepted reports whether the media type is one the analysis service can
// extract text from. Parameters such as charset are ignored.
func Accepted(mediaType string) bool {
	base, _, _ := strings.Cut(mediaType, ";")
	return slices.Contains(accepted, strings.ToLower(strings.TrimSpace(base)))
}

func mediaTypeOf(detected *mimetype.MIME, path string) string {
	for m := detected; m != nil; m = m.Parent() {
		for _, t := range accepted {
			if m.Is(t) {
				return t
			}
		}
	}

	if t, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}

	base, _, _ := strings.Cut(detected.String(), ";")
	return base
}
