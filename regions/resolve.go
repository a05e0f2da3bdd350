package regions

import "sort"

// Rule identifies which resolution step produced a region set
type Rule int

const (
	// RuleNone means no regions apply
	RuleNone Rule = iota
	// RuleExplicit means the page has its own set
	RuleExplicit
	// RulePreceding means the nearest earlier page's set was used
	RulePreceding
	// RuleLastResolved means the set last resolved in the run was reused
	RuleLastResolved
)

// String returns a short name for the rule
func (r Rule) String() string {
	switch r {
	case RuleExplicit:
		return "explicit"
	case RulePreceding:
		return "preceding"
	case RuleLastResolved:
		return "last-resolved"
	default:
		return "none"
	}
}

// State carries the last resolved region set across the pages of one
// extraction run. The zero value is ready to use. A State must not be
// shared between runs.
type State struct {
	last *RegionSet
}

// Last returns the most recently resolved set, or nil.
func (st *State) Last() *RegionSet {
	if st == nil {
		return nil
	}
	return st.last
}

// Reset forgets the last resolved set
func (st *State) Reset() {
	st.last = nil
}

// Resolution is the outcome of resolving a page
type Resolution struct {
	Set        *RegionSet
	SourcePage int // Page the set was defined for
	Rule       Rule
}

// Resolve returns the region set that applies to page:
//
//  1. the page's own set;
//  2. else the set of the largest page number below it;
//  3. else the set last resolved in st;
//  4. else none.
//
// Steps 1 and 2 record their result in st. A nil st disables step 3.
func (s *Store) Resolve(page int, st *State) (Resolution, bool) {
	if set, ok := s.Set(page); ok {
		st.remember(set)
		return Resolution{Set: set, SourcePage: page, Rule: RuleExplicit}, true
	}

	if set, ok := s.preceding(page); ok {
		st.remember(set)
		return Resolution{Set: set, SourcePage: set.Page, Rule: RulePreceding}, true
	}

	if last := st.Last(); last != nil {
		return Resolution{Set: last, SourcePage: last.Page, Rule: RuleLastResolved}, true
	}

	return Resolution{Rule: RuleNone}, false
}

// preceding finds the set with the largest page number below page.
func (s *Store) preceding(page int) (*RegionSet, bool) {
	if s == nil || len(s.pages) == 0 {
		return nil, false
	}
	i := sort.SearchInts(s.pages, page)
	if i == 0 {
		return nil, false
	}
	return s.sets[s.pages[i-1]], true
}

func (st *State) remember(set *RegionSet) {
	if st != nil {
		st.last = set
	}
}
