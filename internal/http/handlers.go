package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vokinneberg/handwritten-math-solver/internal/types"
)

//go:generate mockgen -source=handlers.go -destination=mock_solver.go -package=http Solver

// Solver defines the interface for answering a question about an optional image
type Solver interface {
	Ask(ctx context.Context, question, image string) types.AskResponse
}

// AskReq is the /ask request body. Question is a pointer so a missing field
// can be told apart from an empty one.
type AskReq struct {
	Question *string `json:"question"`
	Image    string  `json:"image,omitempty"`
}

type Handler struct {
	solver Solver
}

// NewHandlers initializes handlers with dependencies
func NewHandlers(solver Solver) *Handler {
	return &Handler{
		solver: solver,
	}
}

// AskHandler always answers 200 once the body is valid; failures are in the answer text
func (h *Handler) AskHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req AskReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Question == nil {
		errorResponse(w, http.StatusBadRequest, "Question is required", nil)
		return
	}

	response := h.solver.Ask(r.Context(), *req.Question, req.Image)

	writeJSON(w, http.StatusOK, response)
}

// HealthHandler reports that the process is serving
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorMsg := message
	if err != nil {
		errorMsg = fmt.Sprintf("%s: %v", message, err)
	}

	if err := json.NewEncoder(w).Encode(types.ErrorResponse{
		Error:   http.StatusText(status),
		Message: errorMsg,
	}); err != nil {
		slog.Error("Error encoding error response", "error", err, "status", status)
	}
}
