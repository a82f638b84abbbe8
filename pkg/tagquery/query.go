// SPDX-License-Identifier: MPL-2.0

package tagquery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ErikKalkoken/go-set"
)

const (
	// GroupSeparator separates groups (logical OR).
	GroupSeparator = " "
	// TermSeparator separates terms inside a group (logical AND).
	TermSeparator = ","
	// NegationPrefix marks a term that must be absent.
	NegationPrefix = "!"
)

var (
	// ErrEmptyTerm is returned when a term has no content, e.g. "a,,b" or "a  b".
	ErrEmptyTerm = errors.New("empty term")

	// ErrBareNegation is returned when a term consists of only the negation prefix.
	ErrBareNegation = errors.New("negation without a tag name")
)

type (
	// Term is a single tag requirement.
	Term struct {
		Tag     string
		Negated bool
	}

	// Group is a conjunction of terms.
	Group []Term

	// Query is a disjunction of groups. The zero value is the empty query,
	// which matches every tag set.
	Query struct {
		groups []Group
	}

	// ParseError describes where a query failed to parse.
	// It wraps ErrEmptyTerm or ErrBareNegation.
	ParseError struct {
		Query string
		// Group and Term are 1-based positions of the offending term.
		Group int
		Term  int
		Err   error
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid tag query %q: group %d, term %d: %v", e.Query, e.Group, e.Term, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ParseError) Unwrap() error { return e.Err }

// Parse parses a query string. Only the empty string yields the empty query;
// stray separators produce ErrEmptyTerm.
func Parse(query string) (Query, error) {
	if query == "" {
		return Query{}, nil
	}

	rawGroups := strings.Split(query, GroupSeparator)
	groups := make([]Group, 0, len(rawGroups))
	for gi, rawGroup := range rawGroups {
		rawTerms := strings.Split(rawGroup, TermSeparator)
		group := make(Group, 0, len(rawTerms))
		for ti, raw := range rawTerms {
			term, err := parseTerm(raw)
			if err != nil {
				return Query{}, &ParseError{Query: query, Group: gi + 1, Term: ti + 1, Err: err}
			}
			group = append(group, term)
		}
		groups = append(groups, group)
	}

	return Query{groups: groups}, nil
}

// ParseArgs parses command-line arguments as one query, one group per
// argument word.
func ParseArgs(args []string) (Query, error) {
	return Parse(strings.Join(args, GroupSeparator))
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(query string) Query {
	q, err := Parse(query)
	if err != nil {
		panic(err)
	}
	return q
}

func parseTerm(raw string) (Term, error) {
	if raw == "" {
		return Term{}, ErrEmptyTerm
	}
	name, negated := strings.CutPrefix(raw, NegationPrefix)
	if negated && name == "" {
		return Term{}, ErrBareNegation
	}
	return Term{Tag: name, Negated: negated}, nil
}

// Matches reports whether tags satisfy at least one group of the query.
func (q Query) Matches(tags set.Set[string]) bool {
	if len(q.groups) == 0 {
		return true
	}
	for _, g := range q.groups {
		if g.Matches(tags) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether q is the empty query.
func (q Query) IsEmpty() bool { return len(q.groups) == 0 }

// Groups returns a copy of the parsed groups.
func (q Query) Groups() []Group {
	out := make([]Group, len(q.groups))
	for i, g := range q.groups {
		out[i] = append(Group(nil), g...)
	}
	return out
}

// String renders the query back into its canonical text form.
func (q Query) String() string {
	parts := make([]string, len(q.groups))
	for i, g := range q.groups {
		parts[i] = g.String()
	}
	return strings.Join(parts, GroupSeparator)
}

// Matches reports whether every term of the group holds for tags.
func (g Group) Matches(tags set.Set[string]) bool {
	for _, t := range g {
		if !t.Matches(tags) {
			return false
		}
	}
	return true
}

// String renders the group as comma-separated terms.
func (g Group) String() string {
	parts := make([]string, len(g))
	for i, t := range g {
		parts[i] = t.String()
	}
	return strings.Join(parts, TermSeparator)
}

// Matches reports whether the term holds for tags.
func (t Term) Matches(tags set.Set[string]) bool {
	return tags.Contains(t.Tag) != t.Negated
}

// String renders the term, including its negation prefix.
func (t Term) String() string {
	if t.Negated {
		return NegationPrefix + t.Tag
	}
	return t.Tag
}
