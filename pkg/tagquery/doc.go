// SPDX-License-Identifier: MPL-2.0

// Package tagquery parses and evaluates boolean tag queries.
//
// A query is a list of groups separated by single spaces. Each group is a
// comma-separated list of terms, and a term is a tag name optionally prefixed
// with "!" for negation:
//
//	rpg,!finished  puzzle
//
// A tag set matches a query when it satisfies at least one group, and it
// satisfies a group when every term in the group holds. The empty query
// matches everything. Tag comparison is exact and case-sensitive.
package tagquery
