package web

import (
    "context"
    "errors"
    "fmt"
    "io"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/gorilla/websocket"
    "go.uber.org/zap"

    "github.com/willvelida/tic-tac-toe/internal/ai"
    "github.com/willvelida/tic-tac-toe/internal/app"
    "github.com/willvelida/tic-tac-toe/internal/domain"
)

type handlers struct {
    svc      *app.Service
    tpl      *templates
    log      *zap.Logger
    cfg      Config
    upgrader websocket.Upgrader
}

type cellView struct {
    GameID   string
    Pos      int
    Label    string
    Playable bool
}

type boardView struct {
    ID     string
    Status string
    Error  string
    Rows   [][]cellView
}

func (h *handlers) boardData(gs app.GameState, errMsg string) boardView {
    v := boardView{ID: gs.ID, Status: statusText(gs), Error: errMsg}
    open := !gs.Status().Over() && !gs.AutomatedToMove()
    for row := 0; row < 3; row++ {
        cells := make([]cellView, 0, 3)
        for col := 1; col <= 3; col++ {
            pos := row*3 + col
            cells = append(cells, cellView{
                GameID:   gs.ID,
                Pos:      pos,
                Label:    domain.DisplayValue(gs.Game.Board, pos),
                Playable: open && gs.Game.Board.At(pos) == domain.Empty,
            })
        }
        v.Rows = append(v.Rows, cells)
    }
    return v
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
    return renderTemplate(h.tpl.board, "", h.boardData(gs, errMsg))
}

func statusText(gs app.GameState) string {
    st := gs.Status()
    switch st.Outcome {
    case domain.Won:
        if st.Winner == gs.Automated {
            return fmt.Sprintf("AI (%s) wins!", st.Winner)
        }
        return fmt.Sprintf("Player %s wins!", st.Winner)
    case domain.Drawn:
        return "It's a draw!"
    }
    if gs.AutomatedToMove() {
        return fmt.Sprintf("AI (%s) is thinking...", gs.Automated)
    }
    return fmt.Sprintf("Player %s's turn", gs.Game.Turn)
}

func modeText(gs app.GameState) string {
    if gs.Automated == domain.Empty {
        return "Human vs Human"
    }
    return fmt.Sprintf("Human (%s) vs AI (%s), %s", gs.Automated.Opponent(), gs.Automated, gs.Tier)
}

// moveMessage turns a rejected move into text for the player.
func moveMessage(err error) string {
    var ill *domain.IllegalMoveError
    switch {
    case errors.As(err, &ill) && ill.Kind == domain.Occupied:
        return fmt.Sprintf("Position %d is already taken!", ill.Position)
    case errors.Is(err, domain.ErrOutOfRange):
        return fmt.Sprintf("Position must be between %d and %d", domain.MinPosition, domain.MaxPosition)
    case errors.Is(err, domain.ErrGameOver):
        return "Game is over"
    case errors.Is(err, app.ErrNotYourTurn):
        return "Wait for the AI to move"
    default:
        return "Invalid move"
    }
}

// advance lets the AI answer in the background; the result reaches clients
// through the service broadcast.
func (h *handlers) advance(gs *app.GameState) {
    if gs == nil || !gs.AutomatedToMove() {
        return
    }
    id := gs.ID
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), h.cfg.MoveTimeout)
        defer cancel()
        if _, err := h.svc.PlayAutomated(ctx, id); err != nil {
            if errors.Is(err, app.ErrStale) {
                h.log.Debug("discarded stale ai move", zap.String("game_id", id))
                return
            }
            h.log.Warn("ai move failed", zap.String("game_id", id), zap.Error(err))
        }
    }()
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(status)
    _, _ = w.Write(body)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
    writeHTML(w, http.StatusOK, renderTemplate(h.tpl.index, "", nil))
}

func (h *handlers) gameOptions(r *http.Request) (app.Options, error) {
    _ = r.ParseForm()
    opts := app.Options{Mode: domain.PeerVsPeer, Tier: h.cfg.DefaultTier}
    if v := r.Form.Get("mode"); v != "" {
        m, err := domain.ParseMode(v)
        if err != nil {
            return opts, err
        }
        opts.Mode = m
    }
    if v := r.Form.Get("side"); v != "" && !strings.EqualFold(v, "random") {
        side, err := domain.ParseSide(v)
        if err != nil {
            return opts, err
        }
        opts.Human = side
    }
    if v := r.Form.Get("tier"); v != "" {
        t, err := ai.ParseTier(v)
        if err != nil {
            return opts, err
        }
        opts.Tier = t
    }
    return opts, nil
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
    opts, err := h.gameOptions(r)
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    gs, err := h.svc.CreateGame(opts)
    if err != nil {
        http.Error(w, "failed to create", http.StatusInternalServerError)
        return
    }
    h.advance(gs)
    http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
    gs, ok := h.svc.Get(chi.URLParam(r, "id"))
    if !ok {
        http.NotFound(w, r)
        return
    }
    data := struct {
        ID    string
        Mode  string
        Board boardView
    }{ID: gs.ID, Mode: modeText(*gs), Board: h.boardData(*gs, "")}
    writeHTML(w, http.StatusOK, renderTemplate(h.tpl.game, "", data))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    _ = r.ParseForm()
    pos, convErr := strconv.Atoi(strings.TrimSpace(r.Form.Get("pos")))
    var (
        gs     *app.GameState
        err    error
        errMsg string
    )
    if convErr != nil {
        errMsg = "Please enter a valid number"
    } else if gs, err = h.svc.Play(id, pos); err != nil {
        errMsg = moveMessage(err)
    }
    if errors.Is(err, app.ErrNotFound) {
        http.NotFound(w, r)
        return
    }
    if gs == nil {
        var ok bool
        if gs, ok = h.svc.Get(id); !ok {
            http.NotFound(w, r)
            return
        }
    } else {
        h.advance(gs)
    }
    writeHTML(w, http.StatusOK, h.renderBoard(*gs, errMsg))
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
    gs, err := h.svc.Reset(chi.URLParam(r, "id"))
    if err != nil {
        http.NotFound(w, r)
        return
    }
    h.advance(gs)
    writeHTML(w, http.StatusOK, h.renderBoard(*gs, ""))
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
    st, err := h.svc.Statistics(chi.URLParam(r, "id"))
    if err != nil {
        writeJSON(w, http.StatusNotFound, ErrorResponse{Reason: err.Error()})
        return
    }
    writeJSON(w, http.StatusOK, st)
}

var heartbeatInterval = 15 * time.Second

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("X-Accel-Buffering", "no")
    // In tests or non-EventSource requests, just acknowledge headers and return
    if r.Header.Get("Accept") != "text/event-stream" {
        w.WriteHeader(http.StatusOK)
        return
    }
    flusher, ok := w.(http.Flusher)
    if !ok {
        w.WriteHeader(http.StatusOK)
        return
    }
    ctx := r.Context()
    ch, unsub := h.svc.Subscribe(ctx, id)
    defer unsub()
    ticker := time.NewTicker(heartbeatInterval)
    defer ticker.Stop()
    flusher.Flush()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            _, _ = io.WriteString(w, ": ping\n\n")
            flusher.Flush()
        case b, ok := <-ch:
            if !ok {
                return
            }
            writeEvent(w, "board", b)
            flusher.Flush()
        }
    }
}

// writeEvent emits one SSE event; every payload line needs its own data field.
func writeEvent(w io.Writer, name string, payload []byte) {
    _, _ = fmt.Fprintf(w, "event: %s\n", name)
    for _, line := range strings.Split(strings.TrimRight(string(payload), "\n"), "\n") {
        _, _ = fmt.Fprintf(w, "data: %s\n", line)
    }
    _, _ = io.WriteString(w, "\n")
}
