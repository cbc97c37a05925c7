package review

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franz/play-archivist/internal/record"
)

func readArtifact(t *testing.T, path string) artifact {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var a artifact
	require.NoError(t, json.Unmarshal(raw, &a))
	return a
}

func TestQueuePersistsAfterEveryAddition(t *testing.T) {
	q, err := NewQueue(t.TempDir(), time.Now())
	require.NoError(t, err)

	require.NoError(t, q.AddSkippedAuthor(SkippedAuthor{
		Name:       "John Smith",
		ProfileURL: "https://example.org/PlaywrightsS/smith-john.php",
		Reason:     "navigation failed",
	}))

	// the artifact must be usable mid-run, not only after finalize
	a := readArtifact(t, q.Path())
	assert.Equal(t, 1, a.Metadata.Authors.Skipped)
	require.Len(t, a.SkippedEntries.Authors, 1)
	assert.Equal(t, "John Smith", a.SkippedEntries.Authors[0].Name)

	require.NoError(t, q.AddSkippedPlay(SkippedPlay{
		AuthorName: "John Smith",
		PlayID:     "1023456",
		Title:      "The Long Winter",
		Reason:     "write failed",
	}))
	require.NoError(t, q.AddFlaggedPlay(FlaggedPlay{
		Title:      "Spring Tide",
		PlayID:     "1023457",
		AuthorName: "John Smith",
	}))

	a = readArtifact(t, q.Path())
	assert.Equal(t, 1, a.Metadata.Plays.Skipped)
	assert.Equal(t, 1, a.Metadata.Plays.Flagged)
	assert.Equal(t, 2, a.Metadata.Plays.TotalForReview)
	assert.NotEmpty(t, a.Metadata.RunID)
}

func TestQueueFlaggedAuthorCarriesNameConflicts(t *testing.T) {
	q, err := NewQueue(t.TempDir(), time.Now())
	require.NoError(t, err)

	require.NoError(t, q.AddFlaggedAuthor(FlaggedAuthor{
		AuthorID:   "65f0c0ffee",
		Name:       "John Smith",
		ProfileURL: "https://example.org/PlaywrightsS/smith-john.php",
		Reason:     "listing and heading name decompositions disagree",
		NameConflicts: map[string]record.FieldDiff{
			"First Name": {Heading: "Jon", Listing: "John"},
		},
	}))

	a := readArtifact(t, q.Path())
	require.Len(t, a.FlaggedEntries.Authors, 1)
	diff := a.FlaggedEntries.Authors[0].NameConflicts["First Name"]
	assert.Equal(t, "Jon", diff.Heading)
	assert.Equal(t, "John", diff.Listing)
}

func TestQueueFinalizeOnEmptyRunStillWritesArtifact(t *testing.T) {
	q, err := NewQueue(t.TempDir(), time.Now())
	require.NoError(t, err)
	require.NoError(t, q.Finalize())

	a := readArtifact(t, q.Path())
	assert.Equal(t, 0, a.Metadata.Authors.TotalForReview)
	assert.Equal(t, 0, q.TotalForReview())
}
