// Package schema defines the grammar of cube and view documents.
//
// It holds the closed value sets (measure types, dimension types, join
// relationships, granularities, pre-aggregation types, display formats),
// the identifier and refresh interval patterns, and the typed shapes the
// structural validator produces for every entity. Field constraints are
// declared with `validate` struct tags; the tag names are listed in
// Constraints and enforced by pkg/document.
//
// The types are plain data. Downstream stages never see raw YAML values,
// only these shapes.
package schema
