// Package http exposes machine execution and run history over a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfeilner/unimach"
	"github.com/mfeilner/unimach/internal/logging"
	"github.com/mfeilner/unimach/internal/metrics"
	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/encoding"
	"github.com/mfeilner/unimach/pkg/ports"
)

// Server handles the HTTP API backed by a run store.
type Server struct {
	store   ports.RunStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics wires run execution into Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewHandler creates the HTTP handler for the API.
func NewHandler(store ports.RunStore, opts ...Option) http.Handler {
	server := &Server{
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/healthz", server.health)
	r.Post("/decode", server.decode)
	r.Post("/runs", server.createRun)
	r.Get("/runs", server.listRuns)
	r.Get("/runs/{id}", server.getRun)
	r.Delete("/runs/{id}", server.deleteRun)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type decodeRequest struct {
	Code string `json:"code"`
}

type decodeResponse struct {
	Transitions  []domain.Transition `json:"transitions"`
	HaltingState domain.State        `json:"halting_state"`
	Word         string              `json:"word,omitempty"`
}

type runRequest struct {
	Name      string `json:"name,omitempty"`
	Code      string `json:"code"`
	Word      string `json:"word,omitempty"`
	Operands  []uint `json:"operands,omitempty"`
	TapeSize  int    `json:"tape_size,omitempty"`
	Strict    bool   `json:"strict,omitempty"`
	StepLimit int    `json:"step_limit,omitempty"`
}

// health handles the GET /healthz request.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// decode handles the POST /decode request. It parses a machine code,
// optionally in composite form, into its transition table.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) {
	var body decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("decode: invalid request body", "error", err)
		return
	}

	code := body.Code
	word := ""
	if head, tail, ok := encoding.SplitComposite(code); ok {
		code, word = head, tail
	}
	program, err := encoding.DecodeProgram(code)
	if err != nil {
		http.Error(w, fmt.Sprintf("Decode error: %v", err), http.StatusBadRequest)
		s.logger.Warn("decode: code rejected", "error", err)
		return
	}

	resp := decodeResponse{
		Transitions:  program.Transitions,
		HaltingState: program.HaltingState(),
		Word:         word,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("decode: response encode failed", "error", err)
	}
}

// createRun handles the POST /runs request. The machine executes
// synchronously; failed runs are stored too, carrying the error.
func (s *Server) createRun(w http.ResponseWriter, r *http.Request) {
	var body runRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("createRun: invalid request body", "error", err)
		return
	}
	if len(body.Operands) != 0 && len(body.Operands) != 2 {
		http.Error(w, "Operands must be a pair", http.StatusBadRequest)
		return
	}

	opts := []unimach.Option{unimach.WithLogger(s.logger)}
	if body.Name != "" {
		opts = append(opts, unimach.WithName(body.Name))
	}
	if body.Word != "" {
		opts = append(opts, unimach.WithWord(body.Word))
	}
	if len(body.Operands) == 2 {
		opts = append(opts, unimach.WithOperands(body.Operands[0], body.Operands[1]))
	}
	if body.TapeSize > 0 {
		opts = append(opts, unimach.WithTapeSize(body.TapeSize))
	}
	if body.Strict {
		opts = append(opts, unimach.WithStrictMatching())
	}
	if body.StepLimit > 0 {
		opts = append(opts, unimach.WithStepLimit(body.StepLimit))
	}
	if s.metrics != nil {
		opts = append(opts, unimach.WithLifecycleHooks(s.metrics.Hooks()))
	}

	machine, err := unimach.New(body.Code, opts...)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid machine: %v", err), http.StatusBadRequest)
		s.logger.Warn("createRun: machine rejected", "error", err)
		return
	}

	record := &domain.RunRecord{
		ID:        uuid.NewString(),
		Name:      body.Name,
		Code:      machine.Code(),
		Word:      machine.Word(),
		TapeSize:  machine.TapeSize(),
		Strict:    body.Strict,
		StepLimit: body.StepLimit,
		StartedAt: time.Now().UTC(),
	}

	result, runErr := machine.Run(r.Context())
	record.Duration = time.Since(record.StartedAt)
	if runErr != nil {
		record.Status = domain.RunFailed
		record.Error = runErr.Error()
	} else {
		record.Status = domain.RunCompleted
		record.Result = result.Value
		record.Steps = result.Steps
		record.FinalState = result.FinalState
		record.FinalTape = result.Tape
	}
	if s.metrics != nil {
		s.metrics.ObserveRun(record.Status, record.Duration)
	}

	if err := s.store.Save(r.Context(), record); err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.logger.Error("createRun: save failed", "error", err)
		return
	}
	s.logger.Info("run stored",
		"id", record.ID, "status", record.Status, "steps", record.Steps, "result", record.Result)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(record); err != nil {
		s.logger.Error("createRun: response encode failed", "error", err)
	}
}

// listRuns handles the GET /runs request.
func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.logger.Error("listRuns: list failed", "error", err)
		return
	}
	if records == nil {
		records = []*domain.RunRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		s.logger.Error("listRuns: response encode failed", "error", err)
	}
}

// getRun handles the GET /runs/{id} request.
func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			http.Error(w, "Run not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.logger.Error("getRun: load failed", "error", err, "id", id)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(record); err != nil {
		s.logger.Error("getRun: response encode failed", "error", err)
	}
}

// deleteRun handles the DELETE /runs/{id} request. Deletes are idempotent.
func (s *Server) deleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.logger.Error("deleteRun: delete failed", "error", err, "id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
