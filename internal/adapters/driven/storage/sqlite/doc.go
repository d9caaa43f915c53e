// Package sqlite provides a SQLite-based implementation of the history store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It persists applied
// batches and their moves so they can be listed and undone later.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory as numbered .up.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.shelve/data/history.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
