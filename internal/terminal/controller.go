package terminal

import (
    "context"
    "errors"
    "fmt"

    "go.uber.org/zap"

    "github.com/willvelida/tic-tac-toe/internal/ai"
    "github.com/willvelida/tic-tac-toe/internal/domain"
    "github.com/willvelida/tic-tac-toe/internal/player"
)

// Controller runs console games between two movers.
type Controller struct {
    ui     *UI
    engine *ai.Engine
    rng    ai.Rand
    delay  player.Delay
    log    *zap.Logger
}

// NewController wires a UI to the engine. delay is the AI's thinking pause.
func NewController(ui *UI, engine *ai.Engine, rng ai.Rand, delay player.Delay, log *zap.Logger) *Controller {
    if log == nil {
        log = zap.NewNop()
    }
    if rng == nil {
        rng = ai.NewRand(0)
    }
    if engine == nil {
        engine = ai.NewEngine(rng)
    }
    return &Controller{ui: ui, engine: engine, rng: rng, delay: delay, log: log}
}

type seats map[domain.Cell]player.Mover

func (c *Controller) human(side domain.Cell) (player.Mover, error) {
    h, err := player.NewHuman(side, func(ctx context.Context, b domain.Board) (int, error) {
        return c.ui.Position(ctx, side, b)
    })
    if err != nil {
        return nil, err
    }
    return h, nil
}

// setup walks the menus until a game is configured. Choosing "back" from
// the symbol menu returns to the mode menu.
func (c *Controller) setup() (domain.Mode, seats, error) {
    for {
        mode, err := c.ui.Mode()
        if err != nil {
            return mode, nil, err
        }
        if mode == domain.PeerVsPeer {
            c.ui.Message("Setting up Human vs Human game")
            c.ui.Message("Player X goes first, Player O goes second")
            x, err := c.human(domain.X)
            if err != nil {
                return mode, nil, err
            }
            o, err := c.human(domain.O)
            if err != nil {
                return mode, nil, err
            }
            return mode, seats{domain.X: x, domain.O: o}, nil
        }

        side, err := c.ui.Symbol()
        if err != nil {
            return mode, nil, err
        }
        if side == domain.Empty {
            continue
        }
        tier, err := c.ui.Difficulty()
        if err != nil {
            return mode, nil, err
        }
        bot, err := player.NewAutomated(side.Opponent(), tier, c.engine,
            player.WithDelay(c.delay), player.WithRand(c.rng), player.WithStatus(c.ui.AIStatus))
        if err != nil {
            return mode, nil, err
        }
        h, err := c.human(side)
        if err != nil {
            return mode, nil, err
        }
        c.ui.Message("Game setup complete!")
        c.ui.Message(fmt.Sprintf("Human: %s, AI: %s (%s)", side, bot.Side(), tier))
        c.ui.Message("Player X goes first")
        return mode, seats{side: h, bot.Side(): bot}, nil
    }
}

// Play runs one game to completion and returns its final status.
func (c *Controller) Play(ctx context.Context, g *domain.Game, movers seats) (domain.Status, error) {
    for {
        c.ui.ShowBoard(g.Board)
        st := g.Status()
        if st.Over() {
            return st, nil
        }
        m := movers[g.Turn]
        if m == nil {
            return st, fmt.Errorf("no mover for %s", g.Turn)
        }
        c.ui.TurnInfo(g.Turn, m.IsAutomated())
        pos, err := m.DecideMove(ctx, g.Board)
        if err != nil {
            return st, err
        }
        if err := g.Apply(pos); err != nil {
            c.ui.Error(fmt.Sprintf("Invalid move: %v", err))
            continue
        }
        c.log.Debug("move", zap.Stringer("side", m.Side()), zap.Int("position", pos))
    }
}

// Run shows the welcome screen and plays games until the player leaves.
func (c *Controller) Run(ctx context.Context) error {
    c.ui.Welcome()
    for {
        mode, movers, err := c.setup()
        if err != nil {
            return c.finish(err)
        }
        g := domain.New(mode)
        st, err := c.Play(ctx, &g, movers)
        if err != nil {
            return c.finish(err)
        }
        c.ui.Result(st)
        c.log.Info("game finished", zap.Stringer("mode", mode), zap.Stringer("outcome", st.Outcome), zap.Stringer("winner", st.Winner))

        again, err := c.ui.PlayAgain()
        if err != nil {
            return c.finish(err)
        }
        if !again {
            c.ui.Message("Thanks for playing Tic-Tac-Toe! Goodbye!")
            return nil
        }
    }
}

func (c *Controller) finish(err error) error {
    if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
        c.ui.Message("Thanks for playing! Goodbye!")
        return nil
    }
    c.ui.Error(fmt.Sprintf("An unexpected error occurred: %v", err))
    return err
}
