package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	appai "github.com/mentorflow/mentorflow/internal/application/ai"
	appsubmissions "github.com/mentorflow/mentorflow/internal/application/submissions"
	domai "github.com/mentorflow/mentorflow/internal/domain/ai"
	"github.com/mentorflow/mentorflow/internal/domain/submission"
	"github.com/mentorflow/mentorflow/internal/middleware"
)

type Router struct {
	submissionsSvc *appsubmissions.Service
	aiSvc          *appai.Service
}

// Options configures the parts of the router that are not use-cases.
type Options struct {
	AllowedOrigins []string
	// Checkers are reported by GET /health, keyed by name.
	Checkers map[string]middleware.HealthChecker
}

func NewRouter(submissionsSvc *appsubmissions.Service, aiSvc *appai.Service, opts Options) http.Handler {
	r := &Router{submissionsSvc: submissionsSvc, aiSvc: aiSvc}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Get("/health", middleware.HealthHandler(opts.Checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/submissions", r.wrap(r.handleUpload))
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks an error caused by a malformed request.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var br badRequest
		switch {
		case errors.As(err, &br),
			errors.Is(err, submission.ErrUnsupportedFormat),
			errors.Is(err, domai.ErrEmptyText):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Str("path", req.URL.Path).Msg("request failed")
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, map[string]string{"detail": msg})
}

// POST /api/submissions
// Multipart form with a single "file" part.
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	file, header, err := req.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return badRequest{"No file provided"}
	}
	if err != nil {
		return badRequest{"invalid multipart form: " + err.Error()}
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	sub, err := r.submissionsSvc.Upload(req.Context(), appsubmissions.UploadCommand{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	if errors.Is(err, submission.ErrUnsupportedFormat) {
		middleware.IncrementUploadsRejected()
	}
	if err != nil {
		return err
	}
	middleware.IncrementUploads()

	return writeJSON(w, http.StatusOK, sub)
}

// POST /api/analyze
// Body: {"text": "...", "submissionId": 1}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text         string `json:"text"`
		SubmissionID *int64 `json:"submissionId"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{"invalid JSON body: " + err.Error()}
	}
	if body.Text == "" {
		return domai.ErrEmptyText
	}

	done := middleware.StartAnalysis()
	res, err := r.aiSvc.Analyze(req.Context(), appai.AnalyzeCommand{
		Text:         body.Text,
		SubmissionID: body.SubmissionID,
	})
	done(err != nil, err == nil && !res.Structured())
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, res)
}
