package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/pulse-cx/insight/internal/application/analysis"
	apptasks "github.com/pulse-cx/insight/internal/application/tasks"
	"github.com/pulse-cx/insight/internal/domain/report"
	"github.com/pulse-cx/insight/internal/domain/reviews"
	domtasks "github.com/pulse-cx/insight/internal/domain/tasks"
	"github.com/pulse-cx/insight/internal/middleware"
)

type Router struct {
	svc     *appanalysis.Service
	tracker *apptasks.Tracker
	reports report.Repository
	replier reviews.ReplyWriter
}

// NewRouter wires the HTTP surface. health may be nil, in which case a
// plain liveness response is served.
func NewRouter(svc *appanalysis.Service, tracker *apptasks.Tracker, reports report.Repository, replier reviews.ReplyWriter, health http.HandlerFunc) http.Handler {
	r := &Router{svc: svc, tracker: tracker, reports: reports, replier: replier}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	if health == nil {
		health = middleware.LivenessHandler
	}
	mux.Get("/health", health)
	mux.Get("/health/live", middleware.LivenessHandler)

	mux.Route("/analysis", func(rt chi.Router) {
		rt.Post("/request", r.wrap(r.handleRequest))
		rt.Get("/status/{taskID}", r.wrap(r.handleStatus))
		rt.Get("/result/{taskID}", r.wrap(r.handleResult))
		rt.Get("/latest", r.wrap(r.handleLatest))
	})

	mux.Post("/reviews/reply", r.wrap(r.handleReply))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// errBadRequest marks client-side input errors.
var errBadRequest = errors.New("bad request")

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, errBadRequest):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domtasks.ErrNotFound):
				http.Error(w, "task not found", http.StatusNotFound)
			case errors.Is(err, domtasks.ErrNotCompleted):
				http.Error(w, "task is not completed yet", http.StatusBadRequest)
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// POST /analysis/request
// Body: {"shopName": "...", "address": "..."}
// Registers the task and kicks the pipeline off in the background; the
// response returns immediately with the task id.
func (r *Router) handleRequest(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ShopName string `json:"shopName"`
		Address  string `json:"address"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if body.ShopName == "" {
		return fmt.Errorf("%w: shopName is required", errBadRequest)
	}

	task := r.tracker.Create("작업 대기 중...")

	go r.svc.RunUntilDone(task.ID, body.ShopName, body.Address)

	return writeJSON(w, map[string]any{
		"task_id": task.ID,
		"status":  string(task.Status),
		"message": "분석 요청이 접수되었습니다.",
	})
}

// GET /analysis/status/{taskID}
// Polling endpoint; the heavy result payload is deliberately omitted.
func (r *Router) handleStatus(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "taskID")
	task, err := r.tracker.Get(id)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{
		"task_id":  task.ID,
		"status":   string(task.Status),
		"progress": task.Progress,
		"message":  task.Message,
	})
}

// GET /analysis/result/{taskID}
func (r *Router) handleResult(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "taskID")
	rep, err := r.tracker.Result(id)
	if err != nil {
		return err
	}
	return writeJSON(w, rep)
}

// GET /analysis/latest
// Most recent persisted report, independent of in-memory task state.
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	rep, err := r.reports.Latest(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, rep)
}

// POST /reviews/reply
// Body: {"reviewText": "...", "tone": "...", "length": "..."}
func (r *Router) handleReply(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ReviewText string `json:"reviewText"`
		Tone       string `json:"tone"`
		Length     string `json:"length"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if body.ReviewText == "" {
		return fmt.Errorf("%w: reviewText is required", errBadRequest)
	}

	reply, err := r.replier.Reply(req.Context(), body.ReviewText, body.Tone, body.Length)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"reply": reply})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}
