package domain

import (
    "errors"
    "testing"
)

// helper to apply a sequence of moves
func playMoves(t *testing.T, g *Game, moves []int) {
    t.Helper()
    for i, m := range moves {
        if err := g.Apply(m); err != nil {
            t.Fatalf("move %d (%d) failed: %v", i, m, err)
        }
    }
}

func TestNewGameInitialState(t *testing.T) {
    g := New(PeerVsAutomated)
    if g.Turn != X {
        t.Fatalf("expected initial turn X, got %v", g.Turn)
    }
    if g.Mode != PeerVsAutomated {
        t.Fatalf("expected mode to be kept, got %v", g.Mode)
    }
    if g.Moves() != 0 {
        t.Fatalf("expected 0 moves, got %d", g.Moves())
    }
    if st := g.Status(); st.Outcome != Ongoing || st.Winner != Empty {
        t.Fatalf("expected ongoing game, got %+v", st)
    }
    for i, c := range g.Board {
        if c != Empty {
            t.Fatalf("expected empty board, cell %d = %v", i, c)
        }
    }
}

func TestApplyOutOfRange(t *testing.T) {
    g := New(PeerVsPeer)
    for _, pos := range []int{-1, 0, 10, 42} {
        err := g.Apply(pos)
        if !errors.Is(err, ErrOutOfRange) {
            t.Fatalf("expected ErrOutOfRange for %d, got %v", pos, err)
        }
        var me *IllegalMoveError
        if !errors.As(err, &me) || me.Kind != OutOfRange || me.Position != pos {
            t.Fatalf("expected IllegalMoveError{OutOfRange, %d}, got %#v", pos, err)
        }
    }
}

func TestApplyOccupiedReportsOccupant(t *testing.T) {
    g := New(PeerVsPeer)
    playMoves(t, &g, []int{5})
    err := g.Apply(5)
    if !errors.Is(err, ErrOccupied) {
        t.Fatalf("expected ErrOccupied on same cell, got %v", err)
    }
    var me *IllegalMoveError
    if !errors.As(err, &me) || me.Occupant != X {
        t.Fatalf("expected occupant X, got %#v", err)
    }
}

func TestApplyIsAtomicOnError(t *testing.T) {
    g := New(PeerVsPeer)
    playMoves(t, &g, []int{1, 2, 3})
    before := g
    for _, pos := range []int{0, 10, 1, 2, 3} {
        if err := g.Apply(pos); err == nil {
            t.Fatalf("expected error for %d", pos)
        }
        if g != before {
            t.Fatalf("game mutated by rejected move %d: %+v vs %+v", pos, g, before)
        }
    }
}

func TestTurnAlternation(t *testing.T) {
    g := New(PeerVsPeer)
    moves := []int{1, 2, 3, 5, 4, 6, 8, 7, 9}
    for n, pos := range moves {
        mover := g.Turn
        want := X
        if (n+1)%2 == 0 {
            want = O
        }
        if mover != want {
            t.Fatalf("move %d: expected %v to move, got %v", n+1, want, mover)
        }
        if err := g.Apply(pos); err != nil {
            t.Fatalf("move %d failed: %v", n+1, err)
        }
        if g.Board.At(pos) != mover {
            t.Fatalf("move %d: cell %d = %v, want %v", n+1, pos, g.Board.At(pos), mover)
        }
    }
}

func TestTurnUnaffectedByRejectedMove(t *testing.T) {
    g := New(PeerVsPeer)
    playMoves(t, &g, []int{1})
    _ = g.Apply(1)
    _ = g.Apply(11)
    if g.Turn != O {
        t.Fatalf("expected O still to move, got %v", g.Turn)
    }
}

func TestWinConditionsForX(t *testing.T) {
    for _, ln := range Lines {
        g := New(PeerVsPeer)
        line := []int{ln[0] + 1, ln[1] + 1, ln[2] + 1}
        var fillers []int
        for pos := MinPosition; pos <= MaxPosition && len(fillers) < 2; pos++ {
            if pos != line[0] && pos != line[1] && pos != line[2] {
                fillers = append(fillers, pos)
            }
        }
        // fillers can complete a line of their own only with three cells
        playMoves(t, &g, []int{line[0], fillers[0], line[1], fillers[1], line[2]})
        st := g.Status()
        if st.Outcome != Won || st.Winner != X {
            t.Fatalf("expected X to win on line %v; got %+v", line, st)
        }
        if g.Moves() != 5 {
            t.Fatalf("expected 5 moves to win, got %d", g.Moves())
        }
    }
}

func TestWinConditionForO(t *testing.T) {
    g := New(PeerVsPeer)
    // X: 1, 2, 9   O: 3, 5, 7 (anti-diagonal)
    playMoves(t, &g, []int{1, 3, 2, 5, 9, 7})
    st := g.Status()
    if st.Outcome != Won || st.Winner != O {
        t.Fatalf("expected O to win, got %+v", st)
    }
}

func TestDrawNoWinner(t *testing.T) {
    g := New(PeerVsPeer)
    // X O X / X O O / O X X
    playMoves(t, &g, []int{1, 2, 3, 5, 4, 6, 8, 7, 9})
    st := g.Status()
    if st.Outcome != Drawn {
        t.Fatalf("expected draw, got %+v", st)
    }
    if st.Winner != Empty {
        t.Fatalf("expected no winner on draw, got %v", st.Winner)
    }
    if g.Moves() != 9 {
        t.Fatalf("expected 9 moves on draw, got %d", g.Moves())
    }
}

func TestGameOverBlocksFurtherMoves(t *testing.T) {
    g := New(PeerVsPeer)
    // X wins quickly on top row
    playMoves(t, &g, []int{1, 4, 2, 5, 3})
    if st := g.Status(); st.Outcome != Won || st.Winner != X {
        t.Fatalf("expected X win before extra move")
    }
    if g.IsLegal(9) {
        t.Fatalf("expected no legal moves after a win")
    }
    before := g
    if err := g.Apply(9); !errors.Is(err, ErrGameOver) {
        t.Fatalf("expected ErrGameOver, got %v", err)
    }
    if g != before {
        t.Fatalf("game mutated after terminal move")
    }
}

func TestResetRestoresInitialState(t *testing.T) {
    histories := [][]int{
        {},
        {5},
        {1, 4, 2, 5, 3},
        {1, 2, 3, 5, 4, 6, 8, 7, 9},
    }
    for _, h := range histories {
        g := New(PeerVsAutomated)
        playMoves(t, &g, h)
        g.Reset()
        if st := g.Status(); st.Outcome != Ongoing {
            t.Fatalf("after %v: expected ongoing, got %+v", h, st)
        }
        if g.Board != (Board{}) || g.Turn != X || g.Mode != PeerVsAutomated {
            t.Fatalf("after %v: expected fresh game, got %+v", h, g)
        }
    }
}

func TestZeroGameStartsWithX(t *testing.T) {
    var g Game
    if err := g.Apply(1); err != nil {
        t.Fatalf("apply: %v", err)
    }
    if g.Board[0] != X || g.Turn != O {
        t.Fatalf("expected X at 1 and O to move, got %+v", g)
    }
}

func TestApplyRejectsInvalidTurn(t *testing.T) {
    g := Game{Turn: Cell(7)}
    err := g.Apply(1)
    if !errors.Is(err, ErrInvalidSide) {
        t.Fatalf("expected ErrInvalidSide, got %v", err)
    }
    if !g.Board.IsEmpty() || g.Turn != Cell(7) {
        t.Fatalf("rejected move changed the game: %+v", g)
    }
}

func TestParseMode(t *testing.T) {
    cases := map[string]Mode{"pvp": PeerVsPeer, "PVA": PeerVsAutomated, "human_vs_ai": PeerVsAutomated}
    for in, want := range cases {
        got, err := ParseMode(in)
        if err != nil || got != want {
            t.Fatalf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
        }
    }
    if _, err := ParseMode("online"); !errors.Is(err, ErrInvalidMode) {
        t.Fatalf("expected ErrInvalidMode, got %v", err)
    }
}
