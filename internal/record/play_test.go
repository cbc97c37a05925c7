package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewPlayDefaults(t *testing.T) {
	p, err := NewPlay(PlayInput{
		Title:     "  The Birthday   Party ",
		Author:    "Harold Pinter",
		ScrapedAt: time.Now(),
		SourceURL: "https://example.org/PlaywrightsP/pinter-harold.php",
	})
	require.NoError(t, err)

	assert.Equal(t, "The Birthday Party", p.Title)
	assert.Equal(t, DefaultPlayID, p.PlayID)
	assert.False(t, p.IsAdaptation)
}

func TestNewPlayAdaptationFlag(t *testing.T) {
	p, err := NewPlay(PlayInput{
		PlayID:         "1023456",
		Title:          "The Seagull",
		Author:         "Anton Chekhov",
		AdaptingAuthor: "Tom Stoppard",
	})
	require.NoError(t, err)

	assert.True(t, p.IsAdaptation)
	assert.Equal(t, "Tom Stoppard", p.AdaptingAuthor)
}

func TestNewPlayRequiresTitle(t *testing.T) {
	_, err := NewPlay(PlayInput{PlayID: "1023456"})
	assert.Error(t, err)
}

func TestPlayDocumentParts(t *testing.T) {
	p, err := NewPlay(PlayInput{
		PlayID: "1023456",
		Title:  "Top Girls",
		Author: "Caryl Churchill",
		Parts: &Parts{
			CountMale:   3,
			CountFemale: 2,
			CountOther:  0,
			TextMale:    "3",
			TextFemale:  "2",
			TextOther:   "0",
		},
	})
	require.NoError(t, err)

	doc := p.Document()
	details, ok := doc["details"].(bson.M)
	require.True(t, ok)

	assert.Equal(t, 3, details["partsCountMale"])
	assert.Equal(t, 2, details["partsCountFemale"])
	assert.Equal(t, 0, details["partsCountOther"], "zero counts are data, not absence")
	assert.Equal(t, 5, details["partsCountTotal"])
	assert.Equal(t, "3", details["partsTextMale"])
}

func TestPlayDocumentOmitsAbsentParts(t *testing.T) {
	p, err := NewPlay(PlayInput{PlayID: "1023456", Title: "Top Girls"})
	require.NoError(t, err)

	doc := p.Document()
	if details, ok := doc["details"].(bson.M); ok {
		assert.NotContains(t, details, "partsCountMale")
		assert.NotContains(t, details, "partsCountTotal")
	}
}

func TestPlayDocumentPrunesPlaceholders(t *testing.T) {
	p, err := NewPlay(PlayInput{
		PlayID:   "1023456",
		Title:    "Top Girls",
		Synopsis: "n/a",
		Notes:    "-",
		Genres:   "Drama",
	})
	require.NoError(t, err)

	doc := p.Document()
	assert.Equal(t, "Drama", doc["genres"])
	if details, ok := doc["details"].(bson.M); ok {
		assert.NotContains(t, details, "synopsis")
		assert.NotContains(t, details, "notes")
	}
}
