// Package keyword implements cell-level keyword search over a workbook.
//
// A query is matched against every cell of every sheet using one of two
// policies. Identifier-like queries such as "AB007" must equal a whole cell
// (case-insensitive), so "7" never matches "107". Every other query matches
// any cell containing it as a case-insensitive substring.
package keyword

import (
	"regexp"
	"strings"

	"github.com/gcbaptista/go-sheet-search/model"
)

// identifierRegex matches ASCII letters, optional zero padding, then decimal digits of any script.
var identifierRegex = regexp.MustCompile(`^[A-Za-z]+0*\p{Nd}+$`)

// Policy decides whether a single cell matches the query.
type Policy int

const (
	// PolicySubstring matches cells containing the query.
	PolicySubstring Policy = iota
	// PolicyExact matches cells equal to the query.
	PolicyExact
)

func (p Policy) String() string {
	if p == PolicyExact {
		return "exact"
	}
	return "substring"
}

// MarshalText renders the policy by name in JSON responses.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// IsIdentifierLike reports whether q looks like a zero-padded identifier.
func IsIdentifierLike(q string) bool {
	return identifierRegex.MatchString(q)
}

// SelectPolicy picks the match policy for a query.
func SelectPolicy(q string) Policy {
	if IsIdentifierLike(q) {
		return PolicyExact
	}
	return PolicySubstring
}

// Matcher evaluates a fixed query against cells.
type Matcher struct {
	policy Policy
	query  string // lowercased
}

// NewMatcher prepares a matcher for the query.
func NewMatcher(query string) Matcher {
	return Matcher{policy: SelectPolicy(query), query: strings.ToLower(query)}
}

// Policy returns the policy selected for the query.
func (m Matcher) Policy() Policy {
	return m.policy
}

// MatchCell reports whether a single cell value matches.
func (m Matcher) MatchCell(value string) bool {
	cell := strings.ToLower(value)
	if m.policy == PolicyExact {
		return cell == m.query
	}
	return strings.Contains(cell, m.query)
}

// MatchRow ORs the cell matches across all columns of a row.
func (m Matcher) MatchRow(values []string) bool {
	for _, value := range values {
		if m.MatchCell(value) {
			return true
		}
	}
	return false
}

// Mask returns one boolean per row of the sheet.
func (m Matcher) Mask(sheet *model.Sheet) []bool {
	mask := make([]bool, sheet.Len())
	for i, row := range sheet.Rows {
		mask[i] = m.MatchRow(row)
	}
	return mask
}
