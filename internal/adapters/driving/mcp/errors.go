// Package mcp provides an MCP (Model Context Protocol) server adapter for shelve.
// It enables AI assistants to preview and apply organize passes on local directories.
package mcp

import "errors"

// ErrMissingOrganizer is returned when the organizer service is not provided.
var ErrMissingOrganizer = errors.New("mcp: organizer service is required")
