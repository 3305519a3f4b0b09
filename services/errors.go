package services

import "errors"

// Errors shared by the services and mapped to HTTP statuses by the handlers.
var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrBracketNotFound    = errors.New("bracket not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrRoundNotFound      = errors.New("round not found")

	ErrInvalidRoster       = errors.New("tournament roster is invalid")
	ErrBracketNameRequired = errors.New("bracket name is required")
	ErrBracketNameTooLong  = errors.New("bracket name is too long")
	ErrInvalidGameResult   = errors.New("invalid game result")
	ErrResultLocked        = errors.New("game result is locked by a completed later game")
	ErrExportUnavailable   = errors.New("bracket export is not configured")
	ErrBracketExportFailed = errors.New("failed to export bracket")
	ErrBracketCreateFailed = errors.New("failed to create bracket")
	ErrBracketsListFailed  = errors.New("failed to list brackets")
	ErrResultPersistFailed = errors.New("failed to save game result")
)
