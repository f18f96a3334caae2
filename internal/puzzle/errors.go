package puzzle

import "errors"

var (
	ErrUnknownPiece     = errors.New("puzzle: unknown piece")
	ErrPieceLocked      = errors.New("puzzle: piece is still locked")
	ErrPiecePlaced      = errors.New("puzzle: piece is already placed")
	ErrWrongSlot        = errors.New("puzzle: piece does not belong there")
	ErrPuzzleIncomplete = errors.New("puzzle: puzzle is not complete")
	ErrInvalidProgress  = errors.New("puzzle: invalid progress document")
)
