package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherNotifiesSubscribers(t *testing.T) {
	p := writeFile(t, t.TempDir(), "display:\n  candidate_term: 候选人\n")

	w, err := Watch(p, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, "候选人", w.Current().Display.CandidateTerm)

	got := make(chan Config, 8)
	unsubscribe := w.Subscribe(func(c Config) {
		select {
		case got <- c:
		default:
		}
	})
	defer unsubscribe()

	require.NoError(t, os.WriteFile(p, []byte("display:\n  candidate_term: 勇士\n"), 0o644))

	// A rewrite can surface as several events, the first possibly seeing a
	// truncated file.
	deadline := time.After(5 * time.Second)
	for term := ""; term != "勇士"; {
		select {
		case c := <-got:
			term = c.Display.CandidateTerm
		case <-deadline:
			t.Fatal("no reload notification")
		}
	}
	assert.Equal(t, "勇士", w.Current().Display.CandidateTerm)
}

func TestWatcherKeepsLastGoodConfig(t *testing.T) {
	p := writeFile(t, t.TempDir(), "display:\n  candidate_term: 候选人\n")

	errs := make(chan error, 8)
	w, err := Watch(p, func(err error) {
		select {
		case errs <- err:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(p, []byte("spin:\n  variant: slot\n"), 0o644))

	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload error")
	}
	assert.Equal(t, "cycle", w.Current().Spin.Variant)
}

func TestWatcherCloseIdempotent(t *testing.T) {
	p := writeFile(t, t.TempDir(), "")
	w, err := Watch(p, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
