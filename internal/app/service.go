package app

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"

    "github.com/willvelida/tic-tac-toe/internal/ai"
    "github.com/willvelida/tic-tac-toe/internal/domain"
    "github.com/willvelida/tic-tac-toe/internal/player"
)

// Errors exposed by the service layer.
var (
    ErrNotFound    = errors.New("game not found")
    ErrNotYourTurn = errors.New("not your turn")
    ErrStale       = errors.New("game changed while the AI was thinking")
)

// Options describe a new game.
type Options struct {
    Mode domain.Mode
    // Human is the human's side against the AI; Empty picks one at random.
    Human domain.Cell
    Tier  ai.Tier
}

// GameState is the in-memory state tracked per game.
type GameState struct {
    ID   string
    Game domain.Game
    // Automated is the AI's side, Empty when two humans play.
    Automated domain.Cell
    Tier      ai.Tier
    Created   time.Time
    Updated   time.Time
}

// Status is recomputed from the board.
func (gs GameState) Status() domain.Status { return gs.Game.Status() }

// AutomatedToMove reports whether the AI owes the next move.
func (gs GameState) AutomatedToMove() bool {
    return gs.Automated != domain.Empty && gs.Game.Turn == gs.Automated && !gs.Status().Over()
}

// Kind names the mover type for side.
func (gs GameState) Kind(side domain.Cell) string {
    if side == gs.Automated {
        return "ai"
    }
    return "human"
}

// Stats summarises a game for display.
type Stats struct {
    ID            string `json:"id"`
    Mode          string `json:"mode"`
    CurrentPlayer string `json:"current_player"`
    State         string `json:"state"`
    Winner        string `json:"winner,omitempty"`
    MovesMade     int    `json:"moves_made"`
    PlayerX       string `json:"player_x_type"`
    PlayerO       string `json:"player_o_type"`
    Tier          string `json:"tier,omitempty"`
}

type subscriber struct {
    ch        chan []byte
    closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and subscribers.
type Service struct {
    mu     sync.Mutex
    games  map[string]*GameState
    bots   map[string]*player.Automated
    subs   map[string]map[*subscriber]struct{}
    render func(GameState) []byte

    log    *zap.Logger
    engine *ai.Engine
    rng    ai.Rand
    delay  player.Delay
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *zap.Logger) Option { return func(s *Service) { s.log = log } }

// WithRenderer sets the broadcast renderer.
func WithRenderer(renderer func(GameState) []byte) Option {
    return func(s *Service) { s.render = renderer }
}

// WithRand sets the randomness used by the AI, side selection and pauses.
func WithRand(r ai.Rand) Option { return func(s *Service) { s.rng = r } }

// WithThinkDelay sets the AI's pause bounds.
func WithThinkDelay(d player.Delay) Option { return func(s *Service) { s.delay = d } }

func noRender(GameState) []byte { return nil }

// NewService creates a service. Without options it logs nowhere, renders nothing
// and uses a time-seeded random source with no thinking pause.
func NewService(opts ...Option) *Service {
    s := &Service{
        games: make(map[string]*GameState),
        bots:  make(map[string]*player.Automated),
        subs:  make(map[string]map[*subscriber]struct{}),
    }
    for _, opt := range opts {
        opt(s)
    }
    if s.render == nil {
        s.render = noRender
    }
    if s.log == nil {
        s.log = zap.NewNop()
    }
    if s.rng == nil {
        s.rng = ai.NewRand(0)
    }
    s.engine = ai.NewEngine(s.rng)
    return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = noRender
        return
    }
    s.render = renderer
}

// Engine exposes the AI engine for stateless move requests.
func (s *Service) Engine() *ai.Engine { return s.engine }

// RandomSide picks X or O with equal probability.
func (s *Service) RandomSide() domain.Cell {
    if s.rng.Intn(2) == 0 {
        return domain.X
    }
    return domain.O
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame(opts Options) (*GameState, error) {
    if !opts.Mode.Valid() {
        return nil, fmt.Errorf("%w: %d", domain.ErrInvalidMode, opts.Mode)
    }
    now := time.Now()
    gs := &GameState{ID: uuid.NewString(), Game: domain.New(opts.Mode), Created: now, Updated: now}

    var bot *player.Automated
    if opts.Mode == domain.PeerVsAutomated {
        human := opts.Human
        if human == domain.Empty {
            human = s.RandomSide()
        }
        if err := domain.CheckSide(human); err != nil {
            return nil, err
        }
        var err error
        bot, err = player.NewAutomated(human.Opponent(), opts.Tier, s.engine,
            player.WithDelay(s.delay), player.WithRand(s.rng),
            player.WithStatus(func(msg string) { s.log.Debug(msg, zap.String("game_id", gs.ID)) }))
        if err != nil {
            return nil, err
        }
        gs.Automated = bot.Side()
        gs.Tier = opts.Tier
    }

    s.mu.Lock()
    s.games[gs.ID] = gs
    if bot != nil {
        s.bots[gs.ID] = bot
    }
    cp := *gs
    s.mu.Unlock()

    s.log.Info("game created",
        zap.String("game_id", cp.ID),
        zap.Stringer("mode", cp.Game.Mode),
        zap.Stringer("ai_side", cp.Automated),
        zap.Stringer("tier", cp.Tier))
    return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return nil, false
    }
    cp := *gs
    return &cp, true
}

// IsLegal reports whether the side to move may play pos.
func (s *Service) IsLegal(id string, pos int) (bool, error) {
    gs, ok := s.Get(id)
    if !ok {
        return false, ErrNotFound
    }
    return gs.Game.IsLegal(pos), nil
}

// Reset clears the board of an existing game and broadcasts it.
func (s *Service) Reset(id string) (*GameState, error) {
    s.mu.Lock()
    gs, ok := s.games[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    gs.Game.Reset()
    gs.Updated = time.Now()
    cp := s.publishLocked(gs)
    s.log.Info("game reset", zap.String("game_id", id))
    return cp, nil
}

// Play applies a human move for the side to move.
func (s *Service) Play(id string, pos int) (*GameState, error) {
    s.mu.Lock()
    gs, ok := s.games[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    if gs.AutomatedToMove() {
        s.mu.Unlock()
        return nil, ErrNotYourTurn
    }
    side := gs.Game.Turn
    if err := gs.Game.Apply(pos); err != nil {
        s.mu.Unlock()
        return nil, err
    }
    gs.Updated = time.Now()
    cp := s.publishLocked(gs)
    s.logMove(cp, side, pos, "human")
    return cp, nil
}

// PlayAutomated lets the AI move if it is its turn. The decision, including
// the thinking pause, runs without holding the service lock; if the game
// changed meanwhile ErrStale is returned and nothing is applied.
func (s *Service) PlayAutomated(ctx context.Context, id string) (*GameState, error) {
    s.mu.Lock()
    gs, ok := s.games[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    bot := s.bots[id]
    if bot == nil || !gs.AutomatedToMove() {
        cp := *gs
        s.mu.Unlock()
        return &cp, nil
    }
    snapshot := gs.Game
    s.mu.Unlock()

    pos, err := bot.DecideMove(ctx, snapshot.Board)
    if err != nil {
        return nil, fmt.Errorf("ai move for game %s: %w", id, err)
    }

    s.mu.Lock()
    gs, ok = s.games[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    if gs.Game != snapshot {
        s.mu.Unlock()
        return nil, ErrStale
    }
    if err := gs.Game.Apply(pos); err != nil {
        s.mu.Unlock()
        return nil, fmt.Errorf("ai move for game %s: %w", id, err)
    }
    gs.Updated = time.Now()
    cp := s.publishLocked(gs)
    s.logMove(cp, bot.Side(), pos, "ai")
    return cp, nil
}

// Statistics reports the current state of a game.
func (s *Service) Statistics(id string) (Stats, error) {
    gs, ok := s.Get(id)
    if !ok {
        return Stats{}, ErrNotFound
    }
    st := gs.Status()
    stats := Stats{
        ID:            gs.ID,
        Mode:          gs.Game.Mode.String(),
        CurrentPlayer: gs.Game.Turn.String(),
        State:         st.Outcome.String(),
        Winner:        st.Winner.String(),
        MovesMade:     gs.Game.Moves(),
        PlayerX:       gs.Kind(domain.X),
        PlayerO:       gs.Kind(domain.O),
    }
    if gs.Automated != domain.Empty {
        stats.Tier = gs.Tier.String()
    }
    return stats, nil
}

// publishLocked snapshots gs, fans the rendered state out and unlocks.
// Sends never block, so they happen under the lock; a subscriber channel is
// only ever closed under the lock after leaving its set.
func (s *Service) publishLocked(gs *GameState) *GameState {
    cp := *gs
    payload := s.render(cp)
    dropped := 0
    if set, ok := s.subs[cp.ID]; ok {
        for sub := range set {
            select {
            case sub.ch <- payload:
            default:
                delete(set, sub)
                sub.close()
                dropped++
            }
        }
        if len(set) == 0 {
            delete(s.subs, cp.ID)
        }
    }
    s.mu.Unlock()

    if dropped > 0 {
        s.log.Debug("dropped slow subscribers", zap.String("game_id", cp.ID), zap.Int("count", dropped))
    }
    return &cp
}

func (s *Service) logMove(gs *GameState, side domain.Cell, pos int, kind string) {
    st := gs.Status()
    s.log.Info("move applied",
        zap.String("game_id", gs.ID),
        zap.String("mover", kind),
        zap.Stringer("side", side),
        zap.Int("position", pos),
        zap.Stringer("state", st.Outcome))
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
    s.mu.Lock()
    defer s.mu.Unlock()
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    sub := &subscriber{ch: make(chan []byte, 1)}
    set[sub] = struct{}{}

    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
                if len(set) == 0 {
                    delete(s.subs, id)
                }
            }
            sub.close()
            s.mu.Unlock()
        })
    }
    go func() {
        <-ctx.Done()
        unsub()
    }()
    return sub.ch, unsub
}
