// Package services implements the core business logic for shelve.
//
// Services implement the driving ports and depend only on domain
// types and driven ports. Infrastructure concerns (TOML files,
// SQLite, fsnotify) live behind the driven interfaces.
package services
