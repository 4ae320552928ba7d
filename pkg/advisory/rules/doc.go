// Package advisoryrules registers the built-in advisory rules.
// Import this package for its side effects to make the rules available to
// the advisory analyzer.
package advisoryrules
