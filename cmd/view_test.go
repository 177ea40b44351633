package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/duna-ai/duna/internal/ranking"
)

func newTestViewer(t *testing.T) (*viewer, *bytes.Buffer, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.InfoLevel)
	var buf bytes.Buffer

	return &viewer{
		result: testResult(),
		sortBy: ranking.BySimilarity,
		out:    &buf,
		logger: zap.New(core),
	}, &buf, logs
}

func TestViewerSortActionsReuseResult(t *testing.T) {
	v, buf, logs := newTestViewer(t)
	original := testResult()

	require.NoError(t, v.handleAction(PromptSortName))
	assert.Equal(t, ranking.ByName, v.sortBy)
	assert.Contains(t, buf.String(), "sorted by name")

	require.NoError(t, v.handleAction(PromptSortRank))
	assert.Equal(t, ranking.ByRank, v.sortBy)

	require.NoError(t, v.handleAction(PromptSortSimilarity))
	assert.Equal(t, ranking.BySimilarity, v.sortBy)

	assert.Equal(t, original, v.result)
	assert.Len(t, logs.FilterMessage("candidate view").All(), 3)
}

func TestViewerExitAndUnknownAction(t *testing.T) {
	v, _, _ := newTestViewer(t)

	assert.ErrorIs(t, v.handleAction(PromptExit), errExit)
	assert.Error(t, v.handleAction("launch rockets"))
}

func TestViewerThresholdKeepsSummary(t *testing.T) {
	v, buf, _ := newTestViewer(t)
	v.minScore = 70

	v.show()

	out := buf.String()
	assert.Contains(t, out, "Showing 1 of 3 candidates")
	assert.Contains(t, out, "61.3%")
	assert.NotContains(t, out, "bob.txt")
}

func TestViewerExport(t *testing.T) {
	v, _, logs := newTestViewer(t)
	target := filepath.Join(t.TempDir(), "out")

	require.NoError(t, v.export(target))

	_, err := os.Stat(target + ".xlsx")
	require.NoError(t, err)
	assert.Len(t, logs.FilterMessage("exported candidates").All(), 1)
}

func TestViewerDump(t *testing.T) {
	v, _, logs := newTestViewer(t)

	require.NoError(t, v.dump())

	entries := logs.FilterMessage("dumping result to file").All()
	require.Len(t, entries, 1)

	name, ok := entries[0].ContextMap()["filename"].(string)
	require.True(t, ok)
	t.Cleanup(func() { _ = os.Remove(name) })

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "alice.pdf")
}

func TestParseMinScore(t *testing.T) {
	score, err := parseMinScore(" 42.5 ")
	require.NoError(t, err)
	assert.Equal(t, 42.5, score)

	for _, bad := range []string{"", "abc", "-1", "100.1"} {
		_, err := parseMinScore(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o600))
		return path
	}

	resume := write("alice.txt", []byte("Alice, backend engineer, 7 years of Go.\n"))
	pdf := write("bob.pdf", []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"))
	png := write("photo.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))

	core, logs := observer.New(zapcore.WarnLevel)
	files, err := collectFiles([]string{resume, png, pdf}, zap.New(core))
	require.NoError(t, err)

	require.Equal(t, 2, files.Len())
	assert.Equal(t, "alice.txt", files.Files()[0].Name)
	assert.Equal(t, "bob.pdf", files.Files()[1].Name)
	assert.Len(t, logs.FilterMessage("skipping unsupported file").All(), 1)

	_, err = collectFiles([]string{filepath.Join(dir, "missing.pdf")}, zap.NewNop())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "missing.pdf"))
}
