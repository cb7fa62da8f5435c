package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_Hit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Ingest(ctx, "browser", "Researching vector databases")

	resp, err := s.Query(ctx, "vector")
	require.NoError(t, err)
	assert.Contains(t, resp, "Researching vector databases")
	assert.Equal(t, "Based on your recent activity (Researching vector databases), here is the answer found locally.", resp)
}

func TestQuery_Miss(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Ingest(ctx, "browser", "Making coffee")

	resp, err := s.Query(ctx, "aliens")
	require.NoError(t, err)
	assert.Equal(t, NoContextResponse, resp)
}

func TestQuery_EmptyQuestionSkipsStorage(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	for _, q := range []string{"", "   ", "\t\n"} {
		resp, err := s.Query(context.Background(), q)
		require.NoError(t, err, "question %q", q)
		assert.Equal(t, NoContextResponse, resp)
	}
}

func TestQuery_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Ingest(ctx, "browser", "Researching Vector Databases")
	s.Ingest(ctx, "browser", "ÉCOLE schedule")

	resp, err := s.Query(ctx, "vector")
	require.NoError(t, err)
	assert.Contains(t, resp, "Researching Vector Databases")

	resp, err = s.Query(ctx, "DATABASES")
	require.NoError(t, err)
	assert.Contains(t, resp, "Researching Vector Databases")

	resp, err = s.Query(ctx, "école")
	require.NoError(t, err)
	assert.Contains(t, resp, "ÉCOLE schedule")
}

func TestQuery_SubstringMatch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Ingest(ctx, "browser", "Browsing the category page")

	resp, err := s.Query(ctx, "cat")
	require.NoError(t, err)
	assert.Contains(t, resp, "Browsing the category page")
}

func TestQuery_AnyTokenMatches(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, WithClock(stepClock()))

	s.Ingest(ctx, "a", "reading golang docs")
	s.Ingest(ctx, "b", "drinking tea")
	s.Ingest(ctx, "c", "walking outside")

	resp, err := s.Query(ctx, "Golang TEA")
	require.NoError(t, err)
	assert.Equal(t, "Based on your recent activity (drinking tea | reading golang docs), here is the answer found locally.", resp)
}

func TestQuery_TopThreeMostRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, WithClock(stepClock()))

	for _, c := range []string{"log one", "log two", "log three", "log four", "log five"} {
		_, err := s.Ingest(ctx, "system_monitor", c)
		require.NoError(t, err)
	}

	resp, err := s.Query(ctx, "log")
	require.NoError(t, err)
	assert.Equal(t, "Based on your recent activity (log five | log four | log three), here is the answer found locally.", resp)
	assert.NotContains(t, resp, "log two")
}

func TestQuery_SameTimestampOrderedByID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, c := range []string{"tick 1", "tick 2", "tick 3", "tick 4"} {
		s.Ingest(ctx, "system_monitor", c)
	}

	matches, err := s.Match(ctx, []string{"tick"}, 0)
	require.NoError(t, err)
	require.Len(t, matches, 4)
	for i := 1; i < len(matches); i++ {
		assert.Greater(t, matches[i-1].ID, matches[i].ID)
	}
}

func TestQuery_WildcardsAreLiteral(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Ingest(ctx, "manual", "upload 100% done")
	s.Ingest(ctx, "manual", "1000 items queued")
	s.Ingest(ctx, "manual", "axb")

	resp, err := s.Query(ctx, "0%")
	require.NoError(t, err)
	assert.Contains(t, resp, "upload 100% done")
	assert.NotContains(t, resp, "1000 items queued")

	resp, err = s.Query(ctx, "a_b")
	require.NoError(t, err)
	assert.Equal(t, NoContextResponse, resp)
}

func TestQuery_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Ingest(ctx, "browser", "Reading about sqlite")
	s.Ingest(ctx, "browser", "Writing sqlite tests")

	first, err := s.Query(ctx, "sqlite")
	require.NoError(t, err)
	second, err := s.Query(ctx, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuery_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chronolog.db")

	s1, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = s1.Ingest(ctx, "session1", "This is persistent data")
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()

	resp, err := s2.Query(ctx, "persistent")
	require.NoError(t, err)
	assert.Contains(t, resp, "This is persistent data")
}

func TestQuery_ConcurrentInstancesSeeWrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chronolog.db")

	writer, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer writer.Close()
	reader, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reader.Close()

	_, err = writer.Ingest(ctx, "browser", "shared visibility check")
	require.NoError(t, err)

	resp, err := reader.Query(ctx, "visibility")
	require.NoError(t, err)
	assert.Contains(t, resp, "shared visibility check")
}

func TestQuery_StorageErrorPropagates(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.Query(context.Background(), "anything")
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "query", se.Op)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"what", "did", "i", "read?"}, Tokenize("  What did\tI READ?\n"))
	assert.Empty(t, Tokenize(" \t "))
}

func TestAnswer(t *testing.T) {
	assert.Equal(t, NoContextResponse, Answer(nil))
}
