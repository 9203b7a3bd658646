package model

import "sort"

// SeenSet is the set of pull request URLs that were notification-worthy at the
// end of the previous cycle.
type SeenSet map[string]struct{}

// NewSeenSet builds a SeenSet from the given URLs.
func NewSeenSet(urls ...string) SeenSet {
	s := make(SeenSet, len(urls))
	for _, u := range urls {
		s[u] = struct{}{}
	}
	return s
}

// Has reports whether url is in the set. A nil set contains nothing.
func (s SeenSet) Has(url string) bool {
	_, ok := s[url]
	return ok
}

// URLs returns the members sorted, so the persisted form is deterministic.
func (s SeenSet) URLs() []string {
	urls := make([]string, 0, len(s))
	for u := range s {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}
