// Package search derives filtered views of the contact list and highlights
// query matches in rendered text.
package search

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"rolodex/internal/models"
)

// Filter returns the ordered subsequence of contacts where at least one of
// first name, last name, email or phone contains the query as a
// case-insensitive substring. An empty query matches everything. Filtering
// an already-filtered result with the same query is a no-op.
func Filter(query string, contacts []models.Contact) []models.Contact {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Contact, 0, len(contacts))
	if query == "" {
		out = append(out, contacts...)
		return out
	}

	for _, contact := range contacts {
		if matches(query, contact.FirstName) ||
			matches(query, contact.LastName) ||
			matches(query, contact.Email) ||
			matches(query, contact.Phone) {
			out = append(out, contact)
		}
	}
	return out
}

func matches(query, field string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), query)
}

// Highlight wraps every case-insensitive occurrence of query in the given
// style. It operates on rendered text only; the underlying records are
// never touched. Matching happens on a lowered copy of the text; because
// lowercasing can change a rune's byte length (İ is two bytes, i is one),
// matches are mapped back through a byte-offset table and the original
// runes are sliced whole.
func Highlight(text, query string, style lipgloss.Style) string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || text == "" {
		return text
	}

	lowered, offsets := lowerWithOffsets(text)

	var b strings.Builder
	emitted := 0
	pos := 0
	for pos+len(query) <= len(lowered) {
		i := strings.Index(lowered[pos:], query)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(query)
		// A byte-level hit inside a multi-byte rune is not a match.
		if !runeBoundary(offsets, start) || !runeBoundary(offsets, end) {
			pos = start + 1
			continue
		}
		b.WriteString(text[emitted:offsets[start]])
		b.WriteString(style.Render(text[offsets[start]:offsets[end]]))
		emitted = offsets[end]
		pos = end
	}
	b.WriteString(text[emitted:])
	return b.String()
}

// lowerWithOffsets lowers text rune by rune and records, for every byte of
// the lowered form plus a trailing sentinel, the byte offset of the
// originating rune in the original text.
func lowerWithOffsets(text string) (string, []int) {
	var b strings.Builder
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		n, _ := b.WriteRune(unicode.ToLower(r))
		for j := 0; j < n; j++ {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(text))
	return b.String(), offsets
}

func runeBoundary(offsets []int, i int) bool {
	return i == 0 || i == len(offsets)-1 || offsets[i] != offsets[i-1]
}
