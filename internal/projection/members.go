package projection

import (
	"strings"

	"github.com/taskflow/taskflow/internal/team"
)

// FilterMembers returns the members whose name or email contains the
// search term case-insensitively, in snapshot order. An empty term
// returns the roster unchanged.
func FilterMembers(members []*team.Member, searchTerm string) []*team.Member {
	term := strings.ToLower(searchTerm)
	matched := make([]*team.Member, 0, len(members))
	for _, m := range members {
		if term != "" &&
			!strings.Contains(strings.ToLower(m.Name), term) &&
			!strings.Contains(strings.ToLower(m.Email), term) {
			continue
		}
		matched = append(matched, m)
	}
	return matched
}
