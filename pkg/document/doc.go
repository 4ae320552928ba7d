// Package document parses cube/view YAML documents into typed shapes.
//
// Parsing runs in three passes over one document:
//
//  1. YAML syntax: the bytes are decoded into a yaml.Node tree. Failure is a
//     parse issue and nothing else is checked.
//  2. Shape: the node tree is walked against the pkg/schema types, reporting
//     wrong value types and missing required keys with their dotted path.
//  3. Constraints: the typed File is checked against its `validate` tags
//     (identifiers, enums, formats, intervals) and the cross-field rules
//     (cube source descriptor, non-empty file).
//
// Every violation in a document is reported; no issue stops the rest of
// the document from being checked. A constraint issue located at or below
// a path that already failed the shape pass is dropped, so one mistake is
// reported once.
package document
