package riders

import "jamjam-delivery/internal/domain"

// SearchCounter derives the required rider count for a search. The inputs
// are accepted for contract compatibility but deliberately ignored: the
// rule is a placeholder that alternates between 2 and 3 riders per search,
// pending a real distance/weight-based rule. State is owned by the session
// that drives the flow, not by a package global, so tests can control it.
type SearchCounter struct {
	searches int
}

// NewSearchCounter returns a counter starting before the first search.
func NewSearchCounter() *SearchCounter {
	return &SearchCounter{}
}

// RequiredRiders returns 2 on odd searches and 3 on even ones.
// Not safe for concurrent use; confine it to the owning flow.
func (c *SearchCounter) RequiredRiders(_, _ string, _ domain.WeightClass) int {
	c.searches++
	if c.searches%2 == 1 {
		return 2
	}
	return 3
}

// Searches returns how many searches have been performed.
func (c *SearchCounter) Searches() int {
	return c.searches
}
