package service

import "errors"

var (
	// ErrUnknownTopic rejects operations on a topic id outside the phase's
	// configured list.
	ErrUnknownTopic = errors.New("unknown topic for phase")

	// ErrUnknownPhase rejects operations on a phase with no topic sessions.
	ErrUnknownPhase = errors.New("phase has no conversational sessions")

	// ErrVillageNotSet rejects research before the introduction step has
	// captured the village identity.
	ErrVillageNotSet = errors.New("village name and country must be set before researching")
)
