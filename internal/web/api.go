package web

import (
    "encoding/json"
    "errors"
    "net/http"

    "github.com/willvelida/tic-tac-toe/internal/ai"
    "github.com/willvelida/tic-tac-toe/internal/domain"
)

type moveRequest struct {
    Board []domain.Cell `json:"board"`
    Side  domain.Cell   `json:"side"`
    Tier  string        `json:"tier,omitempty"`
}

type moveResponse struct {
    Position int `json:"position"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

// apiMove answers a stateless "what would the AI play here" request.
func (h *handlers) apiMove(w http.ResponseWriter, r *http.Request) {
    var req moveRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeJSON(w, http.StatusBadRequest, ErrorResponse{Reason: "malformed request: " + err.Error()})
        return
    }
    tier := h.cfg.DefaultTier
    if req.Tier != "" {
        t, err := ai.ParseTier(req.Tier)
        if err != nil {
            writeJSON(w, http.StatusBadRequest, ErrorResponse{Reason: err.Error()})
            return
        }
        tier = t
    }
    pos, err := h.svc.Engine().ChooseMove(req.Board, req.Side, tier)
    switch {
    case err == nil:
        writeJSON(w, http.StatusOK, moveResponse{Position: pos})
    case errors.Is(err, ai.ErrNoLegalMove):
        writeJSON(w, http.StatusConflict, ErrorResponse{Reason: err.Error()})
    case errors.Is(err, domain.ErrInvalidBoard), errors.Is(err, domain.ErrInvalidSide), errors.Is(err, ai.ErrInvalidDifficulty):
        writeJSON(w, http.StatusBadRequest, ErrorResponse{Reason: err.Error()})
    default:
        writeJSON(w, http.StatusInternalServerError, ErrorResponse{Reason: err.Error()})
    }
}
