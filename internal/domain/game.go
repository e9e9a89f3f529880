package domain

import (
    "fmt"
    "strings"
)

// Mode describes who sits at the board. The engine itself does not branch on it.
type Mode uint8

const (
    PeerVsPeer Mode = iota
    PeerVsAutomated
)

func (m Mode) String() string {
    switch m {
    case PeerVsPeer:
        return "human_vs_human"
    case PeerVsAutomated:
        return "human_vs_ai"
    default:
        return fmt.Sprintf("mode(%d)", uint8(m))
    }
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == PeerVsPeer || m == PeerVsAutomated }

// ParseMode accepts the String form or the short names "pvp" and "pva".
func ParseMode(s string) (Mode, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "pvp", "human_vs_human":
        return PeerVsPeer, nil
    case "pva", "human_vs_ai":
        return PeerVsAutomated, nil
    }
    return PeerVsPeer, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Outcome is the terminal classification of a board.
type Outcome uint8

const (
    Ongoing Outcome = iota
    Won
    Drawn
)

func (o Outcome) String() string {
    switch o {
    case Won:
        return "won"
    case Drawn:
        return "draw"
    default:
        return "ongoing"
    }
}

// Status is derived from a board; Winner is set only when Outcome is Won.
type Status struct {
    Outcome Outcome
    Winner  Cell
}

// Over reports whether no further placements are legal.
func (s Status) Over() bool { return s.Outcome != Ongoing }

// StatusOf classifies b. A winner is checked before the full-board draw.
func StatusOf(b Board) Status {
    if w := Winner(b); w != Empty {
        return Status{Outcome: Won, Winner: w}
    }
    if IsFull(b) {
        return Status{Outcome: Drawn}
    }
    return Status{Outcome: Ongoing}
}

// Game holds the current state of a Tic-Tac-Toe match.
type Game struct {
    Board Board
    Turn  Cell
    Mode  Mode
}

// New returns a new game with X to move.
func New(mode Mode) Game {
    return Game{Turn: X, Mode: mode}
}

// Reset clears the board and gives the move back to X, keeping the mode.
func (g *Game) Reset() {
    g.Board = Board{}
    g.Turn = X
}

// Status recomputes the terminal status from the board.
func (g Game) Status() Status { return StatusOf(g.Board) }

// Moves returns the number of placements made so far.
func (g Game) Moves() int { return len(g.Board) - g.Board.Count(Empty) }

// IsLegal reports whether the side to move may play pos.
func (g Game) IsLegal(pos int) bool {
    return !g.Status().Over() && IsLegal(g.Board, pos)
}

// Apply places the current turn's marker at pos and flips the turn.
// On error the game is left untouched.
func (g *Game) Apply(pos int) error {
    if !InRange(pos) {
        return &IllegalMoveError{Kind: OutOfRange, Position: pos}
    }
    if g.Status().Over() {
        return &IllegalMoveError{Kind: Finished, Position: pos}
    }
    if c := g.Board[pos-1]; c != Empty {
        return &IllegalMoveError{Kind: Occupied, Position: pos, Occupant: c}
    }
    turn := g.Turn
    switch {
    case turn == Empty:
        // zero-value Game: X moves first
        turn = X
    case !turn.IsSide():
        return fmt.Errorf("%w: turn %d", ErrInvalidSide, uint8(turn))
    }
    g.Board[pos-1] = turn
    g.Turn = turn.Opponent()
    return nil
}
