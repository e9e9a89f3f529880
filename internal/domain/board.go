package domain

import (
    "fmt"
    "strconv"
    "strings"
)

// Cell represents a board cell state.
type Cell uint8

const (
    Empty Cell = iota
    X
    O
)

// Positions are 1-based: position 1 is the top-left cell, 9 the bottom-right.
const (
    MinPosition = 1
    MaxPosition = 9
    Center      = 5
)

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// Lines lists the eight winning triples in scan order: rows, columns, diagonals.
var Lines = [8][3]int{
    // rows
    {0, 1, 2}, {3, 4, 5}, {6, 7, 8},
    // cols
    {0, 3, 6}, {1, 4, 7}, {2, 5, 8},
    // diags
    {0, 4, 8}, {2, 4, 6},
}

func (c Cell) String() string {
    switch c {
    case X:
        return "X"
    case O:
        return "O"
    default:
        return ""
    }
}

// IsSide reports whether c is one of the two player markers.
func (c Cell) IsSide() bool { return c == X || c == O }

// Opponent returns the other side. Empty maps to Empty.
func (c Cell) Opponent() Cell {
    switch c {
    case X:
        return O
    case O:
        return X
    default:
        return Empty
    }
}

// MarshalText encodes a cell as "X", "O" or "".
func (c Cell) MarshalText() ([]byte, error) {
    if c > O {
        return nil, fmt.Errorf("invalid cell %d", c)
    }
    return []byte(c.String()), nil
}

// UnmarshalText accepts "X", "O" (any case) and "", " " or "-" for an empty cell.
func (c *Cell) UnmarshalText(b []byte) error {
    switch strings.ToUpper(strings.TrimSpace(string(b))) {
    case "X":
        *c = X
    case "O":
        *c = O
    case "", "-":
        *c = Empty
    default:
        return fmt.Errorf("invalid cell %q", string(b))
    }
    return nil
}

// ParseSide converts "X" or "O" into a side.
func ParseSide(s string) (Cell, error) {
    switch strings.ToUpper(strings.TrimSpace(s)) {
    case "X":
        return X, nil
    case "O":
        return O, nil
    }
    return Empty, fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

// CheckSide returns ErrInvalidSide unless c is X or O.
func CheckSide(c Cell) error {
    if !c.IsSide() {
        return fmt.Errorf("%w: %d", ErrInvalidSide, c)
    }
    return nil
}

// BoardFromCells copies exactly nine cells into a Board.
func BoardFromCells(cells []Cell) (Board, error) {
    var b Board
    if len(cells) != len(b) {
        return b, &InvalidBoardError{Len: len(cells)}
    }
    for i, c := range cells {
        if c > O {
            return Board{}, &InvalidBoardError{Len: len(cells), Index: i + 1, Value: c}
        }
        b[i] = c
    }
    return b, nil
}

// InRange reports whether pos is a board position.
func InRange(pos int) bool { return pos >= MinPosition && pos <= MaxPosition }

// At returns the cell at a 1-based position, or Empty when out of range.
func (b Board) At(pos int) Cell {
    if !InRange(pos) {
        return Empty
    }
    return b[pos-1]
}

// IsLegal reports whether pos is on the board and empty.
func IsLegal(b Board, pos int) bool {
    return InRange(pos) && b[pos-1] == Empty
}

// With returns a copy of b with side placed at pos. The caller checks legality.
func (b Board) With(pos int, side Cell) Board {
    b[pos-1] = side
    return b
}

// EmptyPositions returns the open positions in ascending order.
func (b Board) EmptyPositions() []int {
    out := make([]int, 0, len(b))
    for i, c := range b {
        if c == Empty {
            out = append(out, i+1)
        }
    }
    return out
}

// IsEmpty reports whether no cell has been played.
func (b Board) IsEmpty() bool {
    for _, c := range b {
        if c != Empty {
            return false
        }
    }
    return true
}

// Count returns how many cells hold c.
func (b Board) Count(c Cell) int {
    n := 0
    for _, v := range b {
        if v == c {
            n++
        }
    }
    return n
}

// Winner returns the side owning the first complete line in scan order, or Empty.
func Winner(b Board) Cell {
    for _, ln := range Lines {
        c := b[ln[0]]
        if c != Empty && c == b[ln[1]] && c == b[ln[2]] {
            return c
        }
    }
    return Empty
}

// IsFull reports whether every cell is occupied.
func IsFull(b Board) bool {
    for _, c := range b {
        if c == Empty {
            return false
        }
    }
    return true
}

// IsDraw reports a full board without a winner.
func IsDraw(b Board) bool {
    return IsFull(b) && Winner(b) == Empty
}

// FindImmediateWin returns the empty position that completes a line for side:
// the first line in scan order holding two of side's cells and one empty cell.
func FindImmediateWin(b Board, side Cell) (int, bool) {
    if !side.IsSide() {
        return 0, false
    }
    for _, ln := range Lines {
        own, open, at := 0, 0, -1
        for _, idx := range ln {
            switch b[idx] {
            case side:
                own++
            case Empty:
                open++
                at = idx
            }
        }
        if own == 2 && open == 1 {
            return at + 1, true
        }
    }
    return 0, false
}

// DisplayValue returns the marker at pos, or the position number when empty.
func DisplayValue(b Board, pos int) string {
    if c := b.At(pos); c != Empty {
        return c.String()
    }
    return strconv.Itoa(pos)
}

// String renders the board as three rows of display values.
func (b Board) String() string {
    var sb strings.Builder
    for r := 0; r < 3; r++ {
        if r > 0 {
            sb.WriteByte('\n')
        }
        for c := 0; c < 3; c++ {
            if c > 0 {
                sb.WriteByte('|')
            }
            sb.WriteString(DisplayValue(b, r*3+c+1))
        }
    }
    return sb.String()
}
