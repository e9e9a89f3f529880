package ai

import (
    "errors"
    "math"

    "github.com/willvelida/tic-tac-toe/internal/domain"
)

// ErrNoLegalMove is returned when asked to move on a board with no empty cell.
var ErrNoLegalMove = errors.New("no legal move")

const winScore = 10

// Depth is a search budget: either unbounded or a number of remaining plies.
type Depth struct {
    bounded bool
    plies   int
}

// Unbounded searches to the end of the game and scores wins without a speed bonus.
var Unbounded = Depth{}

// Bounded limits the search to n plies; wins found earlier score higher.
func Bounded(n int) Depth { return Depth{bounded: true, plies: n} }

// IsBounded reports whether d carries a ply limit.
func (d Depth) IsBounded() bool { return d.bounded }

// Plies returns the remaining budget; meaningless when unbounded.
func (d Depth) Plies() int { return d.plies }

func (d Depth) bonus() int {
    if !d.bounded {
        return 0
    }
    return d.plies
}

func (d Depth) exhausted() bool { return d.bounded && d.plies <= 0 }

func (d Depth) next() Depth {
    if !d.bounded {
        return d
    }
    return Depth{bounded: true, plies: d.plies - 1}
}

// Score evaluates b from side's point of view with minimax. maximizing tells
// whether side moves next. Terminal boards score +/-10 (plus the remaining
// budget when bounded) or 0 for a draw; an exhausted budget scores 0.
func Score(b domain.Board, side domain.Cell, depth Depth, maximizing bool) int {
    if w := domain.Winner(b); w != domain.Empty {
        if w == side {
            return winScore + depth.bonus()
        }
        return -winScore - depth.bonus()
    }
    if domain.IsFull(b) {
        return 0
    }
    if depth.exhausted() {
        // neutral placeholder for a positional heuristic
        return 0
    }

    mover := side
    best := math.MinInt
    if !maximizing {
        mover = side.Opponent()
        best = math.MaxInt
    }
    for i, c := range b {
        if c != domain.Empty {
            continue
        }
        child := b
        child[i] = mover
        s := Score(child, side, depth.next(), !maximizing)
        if maximizing && s > best || !maximizing && s < best {
            best = s
        }
    }
    return best
}

// Engine picks moves for an automated side. It is safe for concurrent use
// when its Rand is.
type Engine struct {
    rng Rand
}

// NewEngine returns an engine drawing from rng; nil uses a time-seeded source.
func NewEngine(rng Rand) *Engine {
    if rng == nil {
        rng = NewRand(0)
    }
    return &Engine{rng: rng}
}

// BestMove returns an optimal position for side: an immediate win, else a
// block, else the centre on an empty board, else the best full-depth search
// result with ties broken uniformly at random.
func (e *Engine) BestMove(b domain.Board, side domain.Cell) (int, error) {
    if err := domain.CheckSide(side); err != nil {
        return 0, err
    }
    open := b.EmptyPositions()
    if len(open) == 0 {
        return 0, ErrNoLegalMove
    }
    if pos, ok := domain.FindImmediateWin(b, side); ok {
        return pos, nil
    }
    if pos, ok := domain.FindImmediateWin(b, side.Opponent()); ok {
        return pos, nil
    }
    if b.IsEmpty() {
        return domain.Center, nil
    }

    best := math.MinInt
    var candidates []int
    for _, pos := range open {
        s := Score(b.With(pos, side), side, Unbounded, false)
        switch {
        case s > best:
            best = s
            candidates = append(candidates[:0], pos)
        case s == best:
            candidates = append(candidates, pos)
        }
    }
    return candidates[e.rng.Intn(len(candidates))], nil
}
