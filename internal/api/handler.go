// Package api serves the calculation method engine over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/hints"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/store"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StrategyInfo describes one catalog entry.
type StrategyInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

// HintsResponse is the hint sequence for a pair with the first Reveal
// levels uncovered.
type HintsResponse struct {
	A      int64         `json:"a"`
	B      int64         `json:"b"`
	Result *hints.Result `json:"result"`
	State  hints.State   `json:"state"`
}

// ValidateRequest is a client-supplied derivation to check.
type ValidateRequest struct {
	A     int64         `json:"a"`
	B     int64         `json:"b"`
	Steps []method.Step `json:"steps"`
}

// Handler holds the dependencies of the API routes.
type Handler struct {
	selector *method.Selector
	hints    hints.Config
	repo     store.EventRepo
	logger   *zap.Logger
}

// NewHandler creates a Handler. repo may be nil, which disables /stats.
func NewHandler(selector *method.Selector, hintCfg hints.Config, repo store.EventRepo, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{selector: selector, hints: hintCfg, repo: repo, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	out := make([]StrategyInfo, 0, len(method.Catalog()))
	for _, s := range method.Catalog() {
		out = append(out, strategyInfo(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Strategy(w http.ResponseWriter, r *http.Request) {
	s, err := method.ParseStrategy(mux.Vars(r)["name"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, strategyInfo(s))
}

func strategyInfo(s method.Strategy) StrategyInfo {
	return StrategyInfo{
		Name:        s.String(),
		DisplayName: s.DisplayName(),
		Description: s.Description(),
		Priority:    s.Priority(),
	}
}

func (h *Handler) Rank(w http.ResponseWriter, r *http.Request) {
	a, b, ok := operands(w, r.URL.Query())
	if !ok {
		return
	}
	ranking, err := h.selector.Select(a, b)
	if err != nil {
		h.engineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

func (h *Handler) Candidates(w http.ResponseWriter, r *http.Request) {
	a, b, ok := operands(w, r.URL.Query())
	if !ok {
		return
	}
	cands, err := h.selector.Candidates(a, b)
	if err != nil {
		h.engineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cands)
}

func (h *Handler) Hints(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	a, b, ok := operands(w, query)
	if !ok {
		return
	}
	reveal, err := intParam(query, "reveal", 0)
	if err != nil || reveal < 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "reveal must be a non-negative integer"})
		return
	}

	ranking, err := h.selector.Select(a, b)
	if err != nil {
		h.engineError(w, err)
		return
	}
	res := hints.Generate(ranking, a, b, h.hints)
	state := hints.NewState(res)
	for i := 0; i < reveal && state.HasMoreHints; i++ {
		state = hints.Reveal(state, res)
	}
	writeJSON(w, http.StatusOK, HintsResponse{A: a, B: b, Result: res, State: state})
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := method.CheckOperands(req.A, req.B); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, method.Validate(req.A, req.B, req.Steps))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "stats are not available"})
		return
	}
	stats, err := h.repo.StrategyStats(r.Context())
	if err != nil {
		h.logger.Error("strategy stats", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to load stats"})
		return
	}
	if stats == nil {
		stats = []store.StrategyStat{}
	}
	writeJSON(w, http.StatusOK, stats)
}

// engineError maps selector errors to responses. Operand range problems
// are the caller's fault; anything else is an engine defect.
func (h *Handler) engineError(w http.ResponseWriter, err error) {
	if errors.Is(err, method.ErrOperandRange) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.logger.Error("engine failure", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func operands(w http.ResponseWriter, query url.Values) (int64, int64, bool) {
	a, errA := strconv.ParseInt(query.Get("a"), 10, 64)
	b, errB := strconv.ParseInt(query.Get("b"), 10, 64)
	if errA != nil || errB != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "a and b must be integers"})
		return 0, 0, false
	}
	return a, b, true
}

func intParam(query url.Values, key string, defaultVal int) (int, error) {
	s := query.Get(key)
	if s == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
