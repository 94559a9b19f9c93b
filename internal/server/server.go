// Package server exposes report generation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/ukaji3/bcreport-go/docs"
	"github.com/ukaji3/bcreport-go/internal/config"
	"github.com/ukaji3/bcreport-go/internal/store"
	"github.com/ukaji3/bcreport-go/pkg/bcreport"
	"go.uber.org/zap"
)

const defaultRunsLimit = 20

// RunStore records and lists report runs. A nil RunStore disables run history.
type RunStore interface {
	RecordRun(ctx context.Context, run store.Run) (store.Run, error)
	ListRuns(ctx context.Context, limit int) ([]store.Run, error)
}

// Options configures the server.
type Options struct {
	Addr              string
	MaxUploadBytes    int64
	ReadHeaderTimeout time.Duration
	// KeepSource keeps the uploaded .xlsx sheets in the returned workbook.
	KeepSource bool
	Report     bcreport.Options
	Store      RunStore
	Logger     *zap.Logger
}

// OptionsFromConfig maps runtime configuration to server options.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	mode, err := bcreport.ParseMode(cfg.Report.Mode)
	if err != nil {
		return Options{}, err
	}
	report := bcreport.DefaultOptions()
	report.Mode = mode
	report.SheetName = cfg.Report.SheetName
	report.Title = cfg.Report.Title

	return Options{
		Addr:              cfg.Server.Addr,
		MaxUploadBytes:    cfg.MaxUploadBytes(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		KeepSource:        cfg.Report.KeepSource,
		Report:            report,
	}, nil
}

// Server is the HTTP front end of the report generator.
type Server struct {
	httpServer *http.Server
	opts       Options
	log        *zap.Logger
	now        func() time.Time
	startedAt  time.Time
}

// NewServer creates a new server bound to opts.Addr.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = config.Default().MaxUploadBytes()
	}
	s := &Server{
		opts:      opts,
		log:       opts.Logger,
		now:       time.Now,
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/process-complete-report/", s.handleProcess)
	mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.withRequestID(s.withCORS(s.withLogging(mux))),
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving HTTP requests.
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.log.Info("server listening", zap.String("addr", ln.Addr().String()))
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	s.writeJSONStatus(w, http.StatusOK, v)
}

func (s *Server) writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSONStatus(w, status, errorResponse{Detail: detail})
}

// GET /api/health: liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"ok":       true,
		"uptime_s": time.Since(s.startedAt).Seconds(),
	})
}

// GET /api/runs?limit=N: recent report runs.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.opts.Store == nil {
		s.writeError(w, http.StatusNotFound, "run history is not configured")
		return
	}

	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.opts.Store.ListRuns(r.Context(), limit)
	if err != nil {
		s.log.Error("list runs", zap.String("request_id", requestID(r.Context())), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	s.writeJSON(w, runs)
}
