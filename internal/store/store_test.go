package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	p := filepath.Join(t.TempDir(), "wts.db")
	s, err := Open(p)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestReopenKeepsData(t *testing.T) {
	p := filepath.Join(t.TempDir(), "wts.db")
	ctx := context.Background()

	s, err := Open(p)
	require.NoError(t, err)
	require.NoError(t, s.OutcomeRepo().Append(ctx, OutcomeRecord{SessionID: "s1", ProjectID: "p1", Success: true}))
	require.NoError(t, s.Close())

	s, err = Open(p)
	require.NoError(t, err)
	defer s.Close()

	recs, err := s.OutcomeRepo().Recent(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestOutcomeAppendAndRecent(t *testing.T) {
	repo := openTestStore(t).OutcomeRepo()
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 20, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, OutcomeRecord{
		SessionID: "s1", ProjectID: "p1", ProjectName: "Showers",
		CandidateID: "a", CandidateName: "Alice", Success: true,
		Latency: 120 * time.Millisecond, ResolvedAt: base,
	}))
	require.NoError(t, repo.Append(ctx, OutcomeRecord{
		SessionID: "s2", ProjectID: "p1", ProjectName: "Showers",
		ErrorKind: "resolution", ErrorMessage: "connection refused",
		Latency: 3 * time.Millisecond, ResolvedAt: base.Add(time.Minute),
	}))
	require.NoError(t, repo.Append(ctx, OutcomeRecord{
		SessionID: "s3", ProjectID: "p2", ProjectName: "Dishes",
		CandidateID: "b", CandidateName: "Bob", Success: true,
		ResolvedAt: base.Add(2 * time.Minute),
	}))

	all, err := repo.Recent(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "s3", all[0].SessionID, "newest first")
	assert.Equal(t, "s1", all[2].SessionID)
	assert.Equal(t, 120*time.Millisecond, all[2].Latency)
	assert.True(t, all[2].ResolvedAt.Equal(base))
	assert.Equal(t, "Alice", all[2].CandidateName)

	p1, err := repo.Recent(ctx, QueryOpts{ProjectID: "p1"})
	require.NoError(t, err)
	assert.Len(t, p1, 2)

	limited, err := repo.Recent(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "s3", limited[0].SessionID)

	failed := true
	fails, err := repo.Recent(ctx, QueryOpts{Failed: &failed})
	require.NoError(t, err)
	require.Len(t, fails, 1)
	assert.Equal(t, "resolution", fails[0].ErrorKind)
	assert.False(t, fails[0].Success)

	since, err := repo.Recent(ctx, QueryOpts{From: base.Add(30 * time.Second)})
	require.NoError(t, err)
	assert.Len(t, since, 2)
}

func TestOutcomeAppendRequiresSession(t *testing.T) {
	repo := openTestStore(t).OutcomeRepo()
	assert.Error(t, repo.Append(context.Background(), OutcomeRecord{ProjectID: "p1"}))
}

func TestOutcomeDuplicateSessionRejected(t *testing.T) {
	repo := openTestStore(t).OutcomeRepo()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, OutcomeRecord{SessionID: "s1", ProjectID: "p1"}))
	assert.Error(t, repo.Append(ctx, OutcomeRecord{SessionID: "s1", ProjectID: "p1"}))
}

func TestOutcomeClear(t *testing.T) {
	repo := openTestStore(t).OutcomeRepo()
	ctx := context.Background()

	for _, id := range []string{"s1", "s2"} {
		require.NoError(t, repo.Append(ctx, OutcomeRecord{SessionID: id, ProjectID: "p1"}))
	}

	n, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	recs, err := repo.Recent(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("WTS_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}
