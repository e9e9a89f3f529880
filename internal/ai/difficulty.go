package ai

import (
    "errors"
    "fmt"
    "sort"
    "strings"

    "github.com/willvelida/tic-tac-toe/internal/domain"
)

// ErrInvalidDifficulty is returned for a tier outside Easy, Medium and Hard.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Tier is the automated opponent's difficulty.
type Tier uint8

const (
    Easy Tier = iota
    Medium
    Hard
)

// suboptimalDepth is the lookahead used when the engine deliberately plays weaker.
const suboptimalDepth = 2

var tierNames = map[Tier]string{Easy: "easy", Medium: "medium", Hard: "hard"}

func (t Tier) String() string {
    if n, ok := tierNames[t]; ok {
        return n
    }
    return fmt.Sprintf("tier(%d)", uint8(t))
}

// Valid reports whether t is one of the three tiers.
func (t Tier) Valid() bool { return t <= Hard }

// OptimalProbability is the chance per move that the engine plays its best move.
func (t Tier) OptimalProbability() (float64, error) {
    switch t {
    case Easy:
        return 0.30, nil
    case Medium:
        return 0.70, nil
    case Hard:
        return 1.00, nil
    }
    return 0, fmt.Errorf("%w: %d", ErrInvalidDifficulty, uint8(t))
}

// ParseTier accepts "easy", "medium", "hard" or the menu numbers "1"-"3".
func ParseTier(s string) (Tier, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "easy", "1":
        return Easy, nil
    case "medium", "2":
        return Medium, nil
    case "hard", "3":
        return Hard, nil
    }
    return Easy, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
}

// MarshalText encodes the tier name.
func (t Tier) MarshalText() ([]byte, error) {
    if !t.Valid() {
        return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, uint8(t))
    }
    return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name.
func (t *Tier) UnmarshalText(b []byte) error {
    v, err := ParseTier(string(b))
    if err != nil {
        return err
    }
    *t = v
    return nil
}

// ChooseMove picks a position for side at the given tier. With the tier's
// optimal-play probability it defers to BestMove; otherwise it scores every
// open position with a two-ply lookahead and picks at random from the better
// half.
func (e *Engine) ChooseMove(cells []domain.Cell, side domain.Cell, tier Tier) (int, error) {
    b, err := domain.BoardFromCells(cells)
    if err != nil {
        return 0, err
    }
    if err := domain.CheckSide(side); err != nil {
        return 0, err
    }
    p, err := tier.OptimalProbability()
    if err != nil {
        return 0, err
    }
    if len(b.EmptyPositions()) == 0 {
        return 0, ErrNoLegalMove
    }
    if e.rng.Float64() < p {
        return e.BestMove(b, side)
    }
    return e.reasonableMove(b, side), nil
}

type scoredMove struct {
    pos   int
    score int
}

// reasonableMove never picks from the worse half of the open positions.
func (e *Engine) reasonableMove(b domain.Board, side domain.Cell) int {
    open := b.EmptyPositions()
    moves := make([]scoredMove, 0, len(open))
    for _, pos := range open {
        moves = append(moves, scoredMove{
            pos:   pos,
            score: Score(b.With(pos, side), side, Bounded(suboptimalDepth), false),
        })
    }
    sort.SliceStable(moves, func(i, j int) bool { return moves[i].score > moves[j].score })
    keep := len(moves) / 2
    if keep < 1 {
        keep = 1
    }
    return moves[e.rng.Intn(keep)].pos
}
