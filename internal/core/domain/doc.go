// Package domain contains the core business entities for shelve.
//
// Domain types have no dependencies on infrastructure. They represent
// the concepts of the file organizer: category rules, planned and
// applied moves, batches, and reports.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any other internal package
package domain
