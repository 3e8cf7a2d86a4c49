package tournament

import "errors"

// Validation errors surfaced directly to the user. A failed operation leaves
// the store unchanged.
var (
	ErrEmptyName      = errors.New("player name is required")
	ErrDuplicateName  = errors.New("a player with that name already exists")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMissingPlayer  = errors.New("both players must be selected")
	ErrSamePlayer     = errors.New("a match requires two different players")
	ErrMissingResult  = errors.New("match result is required")
	ErrMissingDate    = errors.New("match date is required")
)
