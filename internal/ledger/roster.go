package ledger

import (
	"sort"
	"strings"

	"github.com/Junio-R-org/J-Bank/internal/models"
)

// Filter returns the roster rows a list view shows for the given search text.
//
// An empty filter returns every participant. A non-empty filter keeps
// participants whose full name, first name or last name contains the text
// case-insensitively. Either way the result is sorted ascending by last name
// (case-sensitive ordinal comparison) with insertion order breaking ties; the
// sequence is rebuilt in full on every call.
func Filter(participants []models.Participant, filterText string) []models.Participant {
	matched := make([]models.Participant, 0, len(participants))
	if filterText == "" {
		matched = append(matched, participants...)
	} else {
		needle := strings.ToLower(filterText)
		for _, p := range participants {
			if strings.Contains(strings.ToLower(p.FullName()), needle) ||
				strings.Contains(strings.ToLower(p.FirstName), needle) ||
				strings.Contains(strings.ToLower(p.LastName), needle) {
				matched = append(matched, p)
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].LastName < matched[j].LastName
	})
	return matched
}
