package ai

import (
    "errors"
    "testing"

    "github.com/willvelida/tic-tac-toe/internal/domain"
)

const (
    E = domain.Empty
    X = domain.X
    O = domain.O
)

// fixedRand returns f from Float64 and lets pick choose the Intn result.
type fixedRand struct {
    f    float64
    pick func(n int) int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) Intn(n int) int {
    if r.pick == nil {
        return 0
    }
    return r.pick(n)
}

func last(n int) int { return n - 1 }

func TestScoreTerminalBoards(t *testing.T) {
    won := domain.Board{X, X, X, O, O, E, E, E, E}
    if s := Score(won, X, Unbounded, false); s != 10 {
        t.Fatalf("expected 10 for an unbounded win, got %d", s)
    }
    if s := Score(won, O, Unbounded, true); s != -10 {
        t.Fatalf("expected -10 for an unbounded loss, got %d", s)
    }
    if s := Score(won, X, Bounded(3), false); s != 13 {
        t.Fatalf("expected 13 for a win with 3 plies left, got %d", s)
    }
    if s := Score(won, O, Bounded(3), true); s != -13 {
        t.Fatalf("expected -13 for a loss with 3 plies left, got %d", s)
    }
    draw := domain.Board{X, O, X, X, O, O, O, X, X}
    if s := Score(draw, X, Bounded(5), true); s != 0 {
        t.Fatalf("expected 0 for a draw, got %d", s)
    }
}

func TestScoreExhaustedBudgetIsNeutral(t *testing.T) {
    // O can win next move, but no plies remain.
    b := domain.Board{X, X, E, O, O, E, X, E, E}
    if s := Score(b, X, Bounded(0), false); s != 0 {
        t.Fatalf("expected 0 with no budget, got %d", s)
    }
    if s := Score(b, X, Bounded(-1), true); s != 0 {
        t.Fatalf("expected 0 with negative budget, got %d", s)
    }
}

func TestScoreFasterWinScoresHigher(t *testing.T) {
    // X to move can win at once (position 3).
    b := domain.Board{X, X, E, O, O, E, E, E, E}
    now := Score(b.With(3, X), X, Bounded(4), false)
    later := Score(b.With(9, X), X, Bounded(4), false)
    if now <= later {
        t.Fatalf("expected immediate win %d to beat slower line %d", now, later)
    }
    if now != 14 {
        t.Fatalf("expected 14, got %d", now)
    }
}

func TestScoreFullDepth(t *testing.T) {
    // X centre, O edge: X forces a win.
    b := domain.Board{E, O, E, E, X, E, E, E, E}
    if s := Score(b, X, Unbounded, true); s != 10 {
        t.Fatalf("expected forced win for X, got %d", s)
    }
    // X centre, O corner: a draw with best play.
    b = domain.Board{O, E, E, E, X, E, E, E, E}
    if s := Score(b, X, Unbounded, true); s != 0 {
        t.Fatalf("expected draw, got %d", s)
    }
    if s := Score(domain.Board{}, X, Unbounded, true); s != 0 {
        t.Fatalf("expected empty board to be a draw, got %d", s)
    }
}

func TestBestMoveEmptyBoardTakesCenter(t *testing.T) {
    e := NewEngine(NewRand(7))
    for i := 0; i < 20; i++ {
        pos, err := e.BestMove(domain.Board{}, X)
        if err != nil || pos != domain.Center {
            t.Fatalf("expected centre, got %d, %v", pos, err)
        }
    }
}

func TestBestMoveWinBeatsBlock(t *testing.T) {
    e := NewEngine(fixedRand{})
    b := domain.Board{X, X, E, O, O, E, E, E, E}
    pos, err := e.BestMove(b, X)
    if err != nil || pos != 3 {
        t.Fatalf("expected winning move 3, got %d, %v", pos, err)
    }
}

func TestBestMoveBlocks(t *testing.T) {
    e := NewEngine(fixedRand{})
    b := domain.Board{X, X, E, O, E, E, E, E, E}
    pos, err := e.BestMove(b, O)
    if err != nil || pos != 3 {
        t.Fatalf("expected block at 3, got %d, %v", pos, err)
    }
}

func TestBestMoveRandomTieBreak(t *testing.T) {
    e := NewEngine(NewRand(42))
    b := domain.Board{E, E, E, E, X, E, E, E, E}
    seen := map[int]bool{}
    for i := 0; i < 60; i++ {
        pos, err := e.BestMove(b, O)
        if err != nil {
            t.Fatalf("BestMove: %v", err)
        }
        switch pos {
        case 1, 3, 7, 9:
            seen[pos] = true
        default:
            t.Fatalf("expected a corner reply to the centre, got %d", pos)
        }
    }
    if len(seen) < 2 {
        t.Fatalf("expected tie-break to vary, saw %v", seen)
    }
}

func TestBestMoveErrors(t *testing.T) {
    e := NewEngine(fixedRand{})
    full := domain.Board{X, O, X, X, O, O, O, X, X}
    if _, err := e.BestMove(full, X); !errors.Is(err, ErrNoLegalMove) {
        t.Fatalf("expected ErrNoLegalMove, got %v", err)
    }
    if _, err := e.BestMove(domain.Board{}, E); !errors.Is(err, domain.ErrInvalidSide) {
        t.Fatalf("expected ErrInvalidSide, got %v", err)
    }
}

func TestDepthHelpers(t *testing.T) {
    if Unbounded.IsBounded() || Unbounded.bonus() != 0 || Unbounded.exhausted() {
        t.Fatalf("unexpected unbounded depth behaviour")
    }
    d := Bounded(1)
    if !d.IsBounded() || d.Plies() != 1 || d.exhausted() {
        t.Fatalf("unexpected bounded depth %+v", d)
    }
    if n := d.next(); !n.exhausted() || n.Plies() != 0 {
        t.Fatalf("expected exhausted depth after one ply, got %+v", n)
    }
    if Unbounded.next() != Unbounded {
        t.Fatalf("unbounded depth should stay unbounded")
    }
}
