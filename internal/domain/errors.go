package domain

import (
    "errors"
    "fmt"
)

// Errors returned by domain operations.
var (
    ErrOutOfRange   = errors.New("position out of range")
    ErrOccupied     = errors.New("cell occupied")
    ErrGameOver     = errors.New("game over")
    ErrInvalidSide  = errors.New("invalid side")
    ErrInvalidMode  = errors.New("invalid game mode")
    ErrInvalidBoard = errors.New("invalid board")
)

// MoveErrorKind tells callers why a placement was rejected.
type MoveErrorKind uint8

const (
    OutOfRange MoveErrorKind = iota
    Occupied
    Finished
)

// IllegalMoveError is returned by Game.Apply. It matches ErrOutOfRange,
// ErrOccupied or ErrGameOver with errors.Is, depending on Kind.
type IllegalMoveError struct {
    Kind     MoveErrorKind
    Position int
    // Occupant is set for Occupied.
    Occupant Cell
}

func (e *IllegalMoveError) Error() string {
    switch e.Kind {
    case OutOfRange:
        return fmt.Sprintf("position %d out of range %d-%d", e.Position, MinPosition, MaxPosition)
    case Occupied:
        return fmt.Sprintf("position %d already taken by %s", e.Position, e.Occupant)
    default:
        return fmt.Sprintf("position %d: %s", e.Position, ErrGameOver)
    }
}

func (e *IllegalMoveError) Is(target error) bool {
    switch target {
    case ErrOutOfRange:
        return e.Kind == OutOfRange
    case ErrOccupied:
        return e.Kind == Occupied
    case ErrGameOver:
        return e.Kind == Finished
    }
    return false
}

// InvalidBoardError reports a board that is not nine valid cells.
type InvalidBoardError struct {
    Len int
    // Index is the 1-based position of a bad cell value, zero for a length error.
    Index int
    Value Cell
}

func (e *InvalidBoardError) Error() string {
    if e.Index > 0 {
        return fmt.Sprintf("invalid board: cell %d has value %d", e.Index, e.Value)
    }
    return fmt.Sprintf("invalid board: %d cells, want 9", e.Len)
}

func (e *InvalidBoardError) Is(target error) bool { return target == ErrInvalidBoard }
