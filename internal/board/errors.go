package board

import "errors"

var (
	ErrSquareOutOfRange   = errors.New("square out of range")
	ErrPieceOutOfRange    = errors.New("piece out of range")
	ErrColorOutOfRange    = errors.New("color out of range")
	ErrInvalidMoveType    = errors.New("invalid move type")
	ErrInvalidFEN         = errors.New("invalid FEN")
	ErrInvalidPlacement   = errors.New("invalid piece placement")
	ErrInvalidActiveColor = errors.New("invalid active color")
	ErrInconsistentBoard  = errors.New("inconsistent board")
)
