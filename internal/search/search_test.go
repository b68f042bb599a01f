package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolodex/internal/models"
)

var roster = []models.Contact{
	{ID: "c1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@analytical.org", Phone: "5551234567"},
	{ID: "c2", FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil", Phone: "5559876543"},
	{ID: "c3", FirstName: "Edsger", LastName: "Dijkstra", Email: "ewd@utexas.edu", Phone: "5550001111"},
}

func ids(contacts []models.Contact) []string {
	out := make([]string, len(contacts))
	for i, c := range contacts {
		out[i] = c.ID
	}
	return out
}

func TestFilterMatchesAcrossFields(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		expected []string
	}{
		{"first name", "ada", []string{"c1"}},
		{"last name", "hopper", []string{"c2"}},
		{"email", "utexas", []string{"c3"}},
		{"phone", "555987", []string{"c2"}},
		{"case insensitive", "LOVELACE", []string{"c1"}},
		{"shared prefix", "555", []string{"c1", "c2", "c3"}},
		{"no match", "turing", []string{}},
		{"empty query returns all", "", []string{"c1", "c2", "c3"}},
		{"whitespace query returns all", "   ", []string{"c1", "c2", "c3"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ids(Filter(tc.query, roster)))
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	filtered := Filter("a", roster)

	// All three contain an "a" somewhere; order must match the input.
	require.Equal(t, []string{"c1", "c2", "c3"}, ids(filtered))
}

func TestFilterIsIdempotent(t *testing.T) {
	once := Filter("grace", roster)
	twice := Filter("grace", once)

	assert.Equal(t, once, twice)
}

func TestFilterSkipsEmptyFields(t *testing.T) {
	sparse := []models.Contact{{ID: "c9", FirstName: "Ada"}}

	// Empty email/phone must not match anything, including the empty string
	// pieces of the query handling.
	assert.Empty(t, Filter("@", sparse))
	assert.Equal(t, []string{"c9"}, ids(Filter("ada", sparse)))
}

func TestHighlightWrapsMatches(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)

	out := Highlight("Ada Lovelace", "love", style)

	assert.Contains(t, out, "Ada ")
	assert.Contains(t, out, "lace")
	// The matched run keeps its original casing.
	assert.Contains(t, out, "Love")
}

func TestHighlightAllOccurrences(t *testing.T) {
	// A transparent "style" so the output is inspectable.
	style := lipgloss.NewStyle()

	out := Highlight("abcabc", "ab", style)

	assert.Equal(t, 2, strings.Count(out, "ab"))
	assert.Equal(t, "abcabc", out)
}

func TestHighlightCaseFoldLengthChanges(t *testing.T) {
	// Lowercasing İ (two bytes) yields i (one byte), so lowered offsets
	// drift from the original text. Neither direction may panic or split a
	// rune mid-byte.
	style := lipgloss.NewStyle()

	cases := []struct {
		name  string
		text  string
		query string
	}{
		{"length-changing rune in query", "xi", "İ"},
		{"length-changing rune in text", "İX", "x"},
		{"rune matched whole", "İstanbul", "i"},
		{"query longer than lowered text", "i", "İİ"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Highlight(tc.text, tc.query, style)
			assert.Equal(t, tc.text, out)
			assert.True(t, utf8.ValidString(out))
		})
	}
}

func TestHighlightStylesWholeRunes(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)

	out := Highlight("İX", "x", style)

	// The İ rune must survive intact ahead of the styled match.
	assert.True(t, strings.HasPrefix(out, "İ"))
	assert.Contains(t, out, "X")
	assert.True(t, utf8.ValidString(out))
}

func TestHighlightNoQueryOrNoMatch(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)

	assert.Equal(t, "Ada", Highlight("Ada", "", style))
	assert.Equal(t, "Ada", Highlight("Ada", "zzz", style))
	assert.Equal(t, "", Highlight("", "ada", style))
}
