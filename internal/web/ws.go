package web

import (
    "context"
    "net/http"

    "github.com/go-chi/chi/v5"
    "github.com/gorilla/websocket"
    "github.com/mitchellh/mapstructure"
    "go.uber.org/zap"

    "github.com/willvelida/tic-tac-toe/internal/app"
    "github.com/willvelida/tic-tac-toe/internal/domain"
)

// Message is the websocket envelope in both directions.
type Message struct {
    Type     string      `json:"type"`
    Contents interface{} `json:"contents,omitempty"`
}

// MakeMoveRequest asks to place the side to move at Position.
type MakeMoveRequest struct {
    Position int `mapstructure:"position"`
}

// StateBroadcast describes the game after every change.
type StateBroadcast struct {
    ID        string       `json:"id"`
    Board     domain.Board `json:"board"`
    Turn      domain.Cell  `json:"turn"`
    State     string       `json:"state"`
    Winner    domain.Cell  `json:"winner,omitempty"`
    AIToMove  bool         `json:"ai_to_move"`
    Automated domain.Cell  `json:"ai_side,omitempty"`
}

// ErrorResponse reports a rejected request.
type ErrorResponse struct {
    Reason string `json:"reason"`
}

func stateOf(gs app.GameState) Message {
    st := gs.Status()
    return Message{Type: "StateBroadcast", Contents: StateBroadcast{
        ID:        gs.ID,
        Board:     gs.Game.Board,
        Turn:      gs.Game.Turn,
        State:     st.Outcome.String(),
        Winner:    st.Winner,
        AIToMove:  gs.AutomatedToMove(),
        Automated: gs.Automated,
    }}
}

func errorMessage(reason string) Message {
    return Message{Type: "ErrorResponse", Contents: ErrorResponse{Reason: reason}}
}

// ws drives one game over a websocket. State is pushed whenever the service
// broadcasts a change, so AI replies and resets from any path reach the client.
// Only this handler's goroutine writes to conn.
func (h *handlers) ws(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    gs, ok := h.svc.Get(id)
    if !ok {
        http.NotFound(w, r)
        return
    }
    conn, err := h.upgrader.Upgrade(w, r, nil)
    if err != nil {
        h.log.Warn("websocket upgrade failed", zap.String("game_id", id), zap.Error(err))
        return
    }
    defer conn.Close()

    ctx, cancel := context.WithCancel(r.Context())
    defer cancel()
    updates, unsub := h.svc.Subscribe(ctx, id)
    defer func() { unsub() }()

    incoming := make(chan Message)
    readErr := make(chan error, 1)
    go func() {
        for {
            var msg Message
            if err := conn.ReadJSON(&msg); err != nil {
                readErr <- err
                return
            }
            select {
            case incoming <- msg:
            case <-ctx.Done():
                return
            }
        }
    }()

    var last *domain.Game
    sendState := func(force bool) error {
        cur, ok := h.svc.Get(id)
        if !ok {
            return conn.WriteJSON(errorMessage(app.ErrNotFound.Error()))
        }
        if !force && last != nil && *last == cur.Game {
            return nil
        }
        g := cur.Game
        last = &g
        return conn.WriteJSON(stateOf(*cur))
    }

    if err := sendState(true); err != nil {
        return
    }
    h.advance(gs)
    for {
        select {
        case err := <-readErr:
            if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
                h.log.Debug("websocket closed", zap.String("game_id", id), zap.Error(err))
            }
            return
        case msg := <-incoming:
            var err error
            if reply, force := h.handleMessage(id, msg); reply != nil {
                err = conn.WriteJSON(reply)
            } else if force {
                err = sendState(true)
            }
            if err != nil {
                return
            }
        case _, ok := <-updates:
            if !ok {
                // dropped as a slow reader; catch up from the current state
                updates, unsub = h.svc.Subscribe(ctx, id)
            }
            if err := sendState(false); err != nil {
                return
            }
        }
    }
}

// handleMessage applies one client request. It returns an error reply, or nil
// when the resulting state arrives through the broadcast; force asks for the
// current state to be sent regardless.
func (h *handlers) handleMessage(id string, msg Message) (reply *Message, force bool) {
    fail := func(reason string) (*Message, bool) {
        m := errorMessage(reason)
        return &m, false
    }
    switch msg.Type {
    case "MakeMoveRequest":
        var req MakeMoveRequest
        dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{WeaklyTypedInput: true, Result: &req})
        if err == nil {
            err = dec.Decode(msg.Contents)
        }
        if err != nil {
            return fail("Please enter a valid number")
        }
        gs, err := h.svc.Play(id, req.Position)
        if err != nil {
            return fail(moveMessage(err))
        }
        h.advance(gs)
        return nil, false
    case "ResetRequest":
        gs, err := h.svc.Reset(id)
        if err != nil {
            return fail(err.Error())
        }
        h.advance(gs)
        return nil, false
    case "StateRequest":
        return nil, true
    default:
        return fail("unknown message type " + msg.Type)
    }
}
