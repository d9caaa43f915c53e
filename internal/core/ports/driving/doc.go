// Package driving defines the interfaces through which the outside
// world drives the core services.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI, TUI and MCP adapters depend on these interfaces; core
// services implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
