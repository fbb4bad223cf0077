package filter

import (
	"strings"

	"github.com/thomas-vilte/repolens/internal/models"
)

// DefaultSuffixes are the name endings of files sent to the summarizer.
var DefaultSuffixes = []string{
	"README.md",
	".py",
	".js",
	".java",
	"package.json",
	"requirements.txt",
	"Dockerfile",
}

// RelevanceFilter keeps the entries whose name ends with one of its suffixes.
// Matching is literal and case-sensitive, so "not_a_real_Dockerfile" matches
// "Dockerfile".
type RelevanceFilter struct {
	suffixes []string
}

func New(suffixes ...string) *RelevanceFilter {
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	s := make([]string, len(suffixes))
	copy(s, suffixes)
	return &RelevanceFilter{suffixes: s}
}

func (f *RelevanceFilter) IsRelevant(name string) bool {
	for _, suffix := range f.suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Select returns the relevant entries in input order.
func (f *RelevanceFilter) Select(entries []models.TreeEntry) []models.TreeEntry {
	selected := make([]models.TreeEntry, 0, len(entries))
	for _, e := range entries {
		if f.IsRelevant(e.Name) {
			selected = append(selected, e)
		}
	}
	return selected
}

func (f *RelevanceFilter) Suffixes() []string {
	out := make([]string, len(f.suffixes))
	copy(out, f.suffixes)
	return out
}
