package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abc() []Candidate {
	return []Candidate{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob", PhotoURL: "/uploads/bob.png"},
		{ID: "c", Name: "Carol"},
	}
}

func TestCaptureIndexOf(t *testing.T) {
	snap := Capture(abc())

	require.Equal(t, 3, snap.Len())
	for i, want := range []string{"a", "b", "c"} {
		got, ok := snap.IndexOf(want)
		require.True(t, ok, "id %s", want)
		assert.Equal(t, i, got)
	}

	_, ok := snap.IndexOf("zzz")
	assert.False(t, ok)
}

func TestCaptureIsolatedFromSource(t *testing.T) {
	src := abc()
	snap := Capture(src)

	src[0] = Candidate{ID: "x", Name: "Mallory"}
	src = append(src[:1], src[2:]...)

	assert.Equal(t, 3, snap.Len())
	assert.Equal(t, "Alice", snap.At(0).Name)
	_, ok := snap.IndexOf("x")
	assert.False(t, ok)
}

func TestCaptureDuplicateIDsFirstWins(t *testing.T) {
	snap := Capture([]Candidate{{ID: "a", Name: "one"}, {ID: "a", Name: "two"}})
	i, ok := snap.IndexOf("a")
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestEmptySnapshot(t *testing.T) {
	var zero Snapshot
	assert.True(t, zero.Empty())
	assert.Equal(t, 0, zero.Len())
	_, ok := zero.IndexOf("a")
	assert.False(t, ok)

	assert.True(t, Capture(nil).Empty())
}

func TestAllStopsEarly(t *testing.T) {
	snap := Capture(abc())

	var seen []string
	for i, c := range snap.All() {
		seen = append(seen, c.ID)
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestProjectMembersKeepsCandidateOrder(t *testing.T) {
	p := Project{ID: "p1", Name: "Showers", CandidateIDs: []string{"c", "a", "gone"}}

	snap := CaptureProject(p, abc())

	assert.Equal(t, []string{"Alice", "Carol"}, snap.Names())
}

func TestHasPhoto(t *testing.T) {
	assert.False(t, Candidate{PhotoURL: "  "}.HasPhoto())
	assert.True(t, Candidate{PhotoURL: "/uploads/x.png"}.HasPhoto())
}
