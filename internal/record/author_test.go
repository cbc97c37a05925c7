package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthor(t *testing.T, listing, heading, alt string) *Author {
	t.Helper()
	a, err := NewAuthor(AuthorInput{
		ListingName: listing,
		HeadingName: heading,
		AltName:     alt,
		ScrapedAt:   time.Now(),
		SourceURL:   "https://example.org/PlaywrightsS/smith-john.php",
	}, DefaultReviewPolicy())
	require.NoError(t, err)
	return a
}

func TestNewAuthorOrganizationDetection(t *testing.T) {
	a := newTestAuthor(t, "SHAKESPEARE COMPANY", "SHAKESPEARE COMPANY", "")

	assert.True(t, a.IsOrganization)
	assert.Equal(t, "Shakespeare Company", a.Name)
	assert.Equal(t, "Shakespeare Company", a.DisplayName)
	assert.Empty(t, a.FirstName)
	assert.Empty(t, a.LastName)
	assert.Empty(t, a.MiddleNames)
	assert.False(t, a.NeedsReview)
}

func TestNewAuthorOrganizationAltNamePreferred(t *testing.T) {
	a := newTestAuthor(t, "ROYAL COURT", "ROYAL COURT", "Royal Court Theatre")

	// alt name differs from listing, so the organization test fails and the
	// record is parsed as a personal name instead
	assert.False(t, a.IsOrganization)

	b := newTestAuthor(t, "ROYAL COURT", "ROYAL COURT", "ROYAL COURT")
	assert.True(t, b.IsOrganization)
	assert.Equal(t, "ROYAL COURT", b.DisplayName)
}

func TestNewAuthorSingleWordOrganizationFlagged(t *testing.T) {
	a := newTestAuthor(t, "THEATREWORKS", "THEATREWORKS", "")

	assert.True(t, a.IsOrganization)
	assert.True(t, a.NeedsReview)
	assert.Contains(t, a.NeedsReviewReason, "mononym")
}

func TestNewAuthorNameAgreement(t *testing.T) {
	a := newTestAuthor(t, "SMITH Jr John", "John Smith Jr", "")

	assert.Equal(t, "John Smith Jr", a.Name)
	assert.Equal(t, "John", a.FirstName)
	assert.Equal(t, "Smith", a.LastName)
	assert.Equal(t, []string{"Jr"}, a.Suffixes)
	assert.False(t, a.NeedsReview)
}

func TestNewAuthorNameConflict(t *testing.T) {
	a := newTestAuthor(t, "SMITH John", "Jon Smith", "")

	assert.True(t, a.NeedsReview)
	require.Contains(t, a.NeedsReviewData, "First Name")
	assert.Equal(t, "Jon", a.NeedsReviewData["First Name"].Heading)
	assert.Equal(t, "John", a.NeedsReviewData["First Name"].Listing)
}

func TestNewAuthorMiddleNames(t *testing.T) {
	a := newTestAuthor(t, "DOE Jane Anne", "Jane Anne Doe", "")

	assert.Equal(t, "Jane Anne Doe", a.Name)
	assert.Equal(t, []string{"Anne"}, a.MiddleNames)
	assert.False(t, a.NeedsReview)
}

func TestNewAuthorDisambiguationSuffixStripped(t *testing.T) {
	a := newTestAuthor(t, "SMITH John (2)", "John Smith (2)", "")

	assert.Equal(t, "John Smith", a.Name)
	assert.Equal(t, "SMITH John", a.ListingName)
	assert.False(t, a.NeedsReview)
}

func TestNewAuthorAltNameAsDisplayName(t *testing.T) {
	a := newTestAuthor(t, "SMITH John", "John Smith", "Johnny Smith")

	assert.Equal(t, "John Smith", a.Name)
	assert.Equal(t, "Johnny Smith", a.DisplayName)
}

func TestNewAuthorRequiresHeadingName(t *testing.T) {
	_, err := NewAuthor(AuthorInput{ListingName: "SMITH John"}, DefaultReviewPolicy())
	assert.Error(t, err)
}

func TestNewAuthorCustomReviewPolicy(t *testing.T) {
	policy := ReviewPolicy{
		SingleWordOrganization: func(string) bool { return false },
		NameConflict:           func(map[string]FieldDiff) bool { return false },
	}

	a, err := NewAuthor(AuthorInput{
		ListingName: "THEATREWORKS",
		HeadingName: "THEATREWORKS",
	}, policy)
	require.NoError(t, err)
	assert.False(t, a.NeedsReview)

	b, err := NewAuthor(AuthorInput{
		ListingName: "SMITH John",
		HeadingName: "Jon Smith",
	}, policy)
	require.NoError(t, err)
	assert.False(t, b.NeedsReview)
}

func TestAuthorDocumentShape(t *testing.T) {
	a := newTestAuthor(t, "SMITH John", "John Smith", "")
	a.Nationality = "British"
	a.Email = "n/a"

	doc := a.Document()

	assert.Equal(t, "John Smith", doc["name"])
	assert.Equal(t, "British", doc["nationality"])
	assert.NotContains(t, doc, "email", "placeholder values must be pruned")
	assert.NotContains(t, doc, "isOrganization")
	assert.NotContains(t, doc, "playIds", "empty reference lists must be pruned")
}
