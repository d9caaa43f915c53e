package tui

import "errors"

// ErrMissingOrganizer is returned when the organizer service is not provided.
var ErrMissingOrganizer = errors.New("tui: organizer service is required")
