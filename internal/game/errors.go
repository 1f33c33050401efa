package game

import "errors"

// Validation errors returned by Apply. These never mutate GameState --
// the caller gets back the same state it passed in plus one of these
// errors, matching the teacher's pattern of reporting a typed error to
// the submitting client while leaving state untouched (see
// internal/server/connection.go's ErrConnectionClosed /
// internal/protocol/marshal.go's ErrUnknownMessageType for the sentinel
// style this follows).
var (
	ErrNotYourTurn     = errors.New("game: not your turn")
	ErrIllegalPlay     = errors.New("game: illegal play")
	ErrIllegalPass     = errors.New("game: illegal pass")
	ErrIllegalCharge   = errors.New("game: illegal charge")
	ErrWrongPhase      = errors.New("game: wrong phase for this event")
	ErrAlreadyClaimed  = errors.New("game: seat is already claiming")
	ErrNotClaiming     = errors.New("game: seat is not claiming")
	ErrAlreadyPassed   = errors.New("game: seat already sent its pass")
	ErrAlreadyCharged  = errors.New("game: seat already finished charging")
	ErrUnknownEvent    = errors.New("game: unknown event type")
	ErrGameCorrupt     = errors.New("game: invariant violated, game marked corrupt")
)
