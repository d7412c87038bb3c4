// Package validation checks repository-wide consistency of the album tree.
//
// Checks are declarative rules: each rule is an independent function over
// one tree entry producing zero or more typed Violations. The engine runs
// every rule on every album and aggregates, never stopping at the first
// problem, so a full scan always yields the complete report. Adding a check
// means registering another rule, not extending a monolithic validator.
//
// Validation never mutates the tree.
package validation
