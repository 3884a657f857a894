package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *Store) time.Time {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Operation: "convert", StartedAt: base, Duration: 2 * time.Second, InputPath: `C:\in\a.pdf`, OutputPath: `C:\out\a.txt`, OutputFormat: "txt", Status: types.StatusSuccess},
		{Operation: "pdf-to-markdown", StartedAt: base.Add(time.Minute), Duration: time.Second, InputPath: "b.pdf", OutputPath: "b.md", Status: types.StatusFailure, Message: "Conversion failed - output file not created", ToolOutput: "Traceback..."},
		{Operation: "convert", StartedAt: base.Add(2 * time.Minute), InputPath: "missing.docx", OutputPath: "c.txt", Status: types.StatusError, Message: "Input file not found: missing.docx"},
	}
	for _, e := range entries {
		_, err := s.Record(context.Background(), e)
		require.NoError(t, err)
	}
	return base
}

func TestOpen_CreatesParentAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "journal.db")
	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
	_, err = s.Record(context.Background(), Entry{Operation: "convert", InputPath: "x", OutputPath: "y"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.List(context.Background(), QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}

func TestRecordAndList(t *testing.T) {
	s := openStore(t)
	base := seed(t, s)
	ctx := context.Background()

	all, err := s.List(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "missing.docx", all[0].InputPath, "newest first")
	assert.Equal(t, `C:\in\a.pdf`, all[2].InputPath)
	assert.True(t, base.Equal(all[2].StartedAt))
	assert.Equal(t, 2*time.Second, all[2].Duration)
	assert.Equal(t, "txt", all[2].OutputFormat)
	assert.Equal(t, "Traceback...", all[1].ToolOutput)

	limited, err := s.List(ctx, QueryOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, types.StatusError, limited[0].Status)

	failed := types.StatusFailure
	onlyFailed, err := s.List(ctx, QueryOptions{Status: &failed})
	require.NoError(t, err)
	require.Len(t, onlyFailed, 1)
	assert.Equal(t, "pdf-to-markdown", onlyFailed[0].Operation)

	recent, err := s.List(ctx, QueryOptions{Since: base.Add(30 * time.Second)})
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestRecord_DefaultsStartedAt(t *testing.T) {
	s := openStore(t)
	before := time.Now().Add(-time.Second)
	id, err := s.Record(context.Background(), Entry{Operation: "convert", InputPath: "a", OutputPath: "b"})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.List(context.Background(), QueryOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].StartedAt.After(before))
}

func TestSummarize(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	sum, err := s.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 3, Success: 1, Failure: 1, Error: 1, Duration: 3 * time.Second}, sum)
}

func TestWriteYAMLAndJSON(t *testing.T) {
	s := openStore(t)
	seed(t, s)
	entries, err := s.List(context.Background(), QueryOptions{})
	require.NoError(t, err)

	var yb bytes.Buffer
	require.NoError(t, WriteYAML(&yb, entries))
	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal(yb.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 3)
	assert.Equal(t, "missing.docx", fromYAML[0]["input"])

	var jb bytes.Buffer
	require.NoError(t, WriteJSON(&jb, entries))
	var fromJSON []Entry
	require.NoError(t, json.Unmarshal(jb.Bytes(), &fromJSON))
	require.Len(t, fromJSON, 3)
	assert.Equal(t, entries[1].Message, fromJSON[1].Message)
	assert.Equal(t, types.StatusFailure, fromJSON[1].Status)
}

func TestWrite_EmptyIsArray(t *testing.T) {
	var jb bytes.Buffer
	require.NoError(t, WriteJSON(&jb, nil))
	assert.Equal(t, "[]\n", jb.String())

	var yb bytes.Buffer
	require.NoError(t, WriteYAML(&yb, nil))
	assert.Equal(t, "[]\n", yb.String())
}
