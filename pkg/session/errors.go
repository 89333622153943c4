package session

import "errors"

var (
	// ErrNothingLoaded is returned by exports when the playlist is empty.
	ErrNothingLoaded = errors.New("session: nothing loaded")

	// ErrNoExporter is returned when the export target is not configured.
	ErrNoExporter = errors.New("session: exporter not available")
)
