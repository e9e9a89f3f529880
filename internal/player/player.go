package player

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/willvelida/tic-tac-toe/internal/ai"
    "github.com/willvelida/tic-tac-toe/internal/domain"
)

// ErrNoInput is returned by a Human without an input source.
var ErrNoInput = errors.New("no input source")

// Mover decides the next position for one side of a game.
type Mover interface {
    Side() domain.Cell
    IsAutomated() bool
    DecideMove(ctx context.Context, b domain.Board) (int, error)
}

// InputFunc supplies a human's position, typically from a prompt.
type InputFunc func(ctx context.Context, b domain.Board) (int, error)

// StatusFunc receives progress messages from an automated mover.
type StatusFunc func(msg string)

// Human delegates every decision to an input collaborator.
type Human struct {
    side  domain.Cell
    input InputFunc
}

// NewHuman returns a human mover for side.
func NewHuman(side domain.Cell, input InputFunc) (*Human, error) {
    if err := domain.CheckSide(side); err != nil {
        return nil, err
    }
    return &Human{side: side, input: input}, nil
}

func (h *Human) Side() domain.Cell { return h.side }
func (h *Human) IsAutomated() bool { return false }

func (h *Human) DecideMove(ctx context.Context, b domain.Board) (int, error) {
    if h.input == nil {
        return 0, ErrNoInput
    }
    return h.input(ctx, b)
}

// Delay bounds the pause an automated mover takes before answering.
type Delay struct {
    Min time.Duration
    Max time.Duration
}

// Automated picks moves with the engine at a fixed tier.
type Automated struct {
    side   domain.Cell
    tier   ai.Tier
    engine *ai.Engine
    rng    ai.Rand
    delay  Delay
    status StatusFunc
    sleep  func(ctx context.Context, d time.Duration) error
}

// Option configures an Automated mover.
type Option func(*Automated)

// WithStatus sets the callback used for "thinking" messages.
func WithStatus(fn StatusFunc) Option { return func(a *Automated) { a.status = fn } }

// WithDelay sets the thinking pause bounds; the zero Delay disables the pause.
func WithDelay(d Delay) Option { return func(a *Automated) { a.delay = d } }

// WithRand sets the source for the pause length.
func WithRand(r ai.Rand) Option { return func(a *Automated) { a.rng = r } }

// NewAutomated validates side and tier and returns an automated mover.
func NewAutomated(side domain.Cell, tier ai.Tier, engine *ai.Engine, opts ...Option) (*Automated, error) {
    if err := domain.CheckSide(side); err != nil {
        return nil, err
    }
    if _, err := tier.OptimalProbability(); err != nil {
        return nil, err
    }
    if engine == nil {
        engine = ai.NewEngine(nil)
    }
    a := &Automated{side: side, tier: tier, engine: engine, sleep: sleepCtx}
    for _, opt := range opts {
        opt(a)
    }
    if a.rng == nil {
        a.rng = ai.NewRand(0)
    }
    return a, nil
}

func (a *Automated) Side() domain.Cell { return a.side }
func (a *Automated) IsAutomated() bool { return true }
func (a *Automated) Tier() ai.Tier { return a.tier }

// DecideMove pauses for the thinking delay, then asks the engine.
// The pause and status messages never influence the chosen position.
func (a *Automated) DecideMove(ctx context.Context, b domain.Board) (int, error) {
    if d := a.thinkTime(); d > 0 {
        a.notify(fmt.Sprintf("AI (%s) is thinking...", a.side))
        if err := a.sleep(ctx, d); err != nil {
            return 0, err
        }
    }
    pos, err := a.engine.ChooseMove(b[:], a.side, a.tier)
    if err != nil {
        return 0, err
    }
    a.notify(fmt.Sprintf("AI chooses position %d", pos))
    return pos, nil
}

func (a *Automated) notify(msg string) {
    if a.status != nil {
        a.status(msg)
    }
}

func (a *Automated) thinkTime() time.Duration {
    lo, hi := a.delay.Min, a.delay.Max
    if hi < lo {
        hi = lo
    }
    if hi <= 0 {
        return 0
    }
    if hi == lo {
        return lo
    }
    return lo + time.Duration(a.rng.Float64()*float64(hi-lo))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return ctx.Err()
    case <-t.C:
        return nil
    }
}
