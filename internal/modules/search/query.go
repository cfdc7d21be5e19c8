package search

import (
	"strings"

	"questionbank/internal/domain"
	"questionbank/internal/repository"
)

// BuildDisjunction turns a free-text query into the OR of: a subject
// match per whitespace token, a subject match on the whole query, and a
// branch match for every branch whose name contains the query. Matching is
// case-insensitive throughout.
func BuildDisjunction(query string, branches []domain.Branch) repository.PaperDisjunction {
	var d repository.PaperDisjunction

	query = strings.TrimSpace(query)
	if query == "" {
		return d
	}
	lower := strings.ToLower(query)

	seen := make(map[string]struct{})
	addSubject := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		d.SubjectContains = append(d.SubjectContains, s)
	}
	for _, tok := range strings.Fields(lower) {
		addSubject(tok)
	}
	addSubject(lower)

	for _, b := range branches {
		if strings.Contains(strings.ToLower(b.Name), lower) {
			d.BranchIn = append(d.BranchIn, b.ID)
		}
	}
	return d
}
