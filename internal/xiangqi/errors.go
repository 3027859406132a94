package xiangqi

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFEN      = errors.New("invalid FEN")
	ErrInvalidSquare   = errors.New("square out of range")
	ErrInvalidMaterial = errors.New("invalid material")
	ErrIllegalPosition = errors.New("illegal position")
	ErrNoPiece         = errors.New("no piece on source square")
	ErrWrongSide       = errors.New("piece belongs to the side not on move")
	ErrIllegalMove     = errors.New("illegal move")
)

// MoveError records which half-move was rejected and why. It unwraps to one of
// the sentinel errors above.
type MoveError struct {
	Ply  int
	From Square
	To   Square
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("ply %d, move %s%s: %v", e.Ply, e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }
