// Package web serves the task list page over HTTP. Every handler drives the
// same tasklist.Client, one request at a time.
package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"tasklist/internal/metrics"
	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

const shutdownTimeout = 5 * time.Second

// Server is the web front end.
type Server struct {
	client *tasklist.Client
	ui     *pageUI
	log    logrus.FieldLogger
	page   *template.Template
	router chi.Router

	// mu serializes handlers so the client sees one user action at a time.
	mu sync.Mutex
}

// New builds a server for currentUser, which may be empty.
func New(svc service.Service, currentUser string, log logrus.FieldLogger) *Server {
	ui := &pageUI{}
	s := &Server{
		client: tasklist.New(svc, ui, currentUser, log),
		ui:     ui,
		log:    log,
		page:   template.Must(template.New("tasklist").Parse(pageTemplate)),
	}
	s.router = s.routes()
	return s
}

// Start performs the initial loads. Failures are logged only.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.Start(ctx)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("web server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.serialize)
		r.Get("/", s.handleIndex)
		r.Post("/submit", s.handleSubmit)
		r.Post("/clear", s.handleClear)
		r.Post("/tasks/{id}/edit", s.handleEdit)
		r.Get("/tasks/{id}/delete", s.handleConfirmDelete)
		r.Post("/tasks/{id}/delete", s.handleDelete)
		r.Post("/tasks/{id}/toggle", s.handleToggle)
	})
	return r
}

func (s *Server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("http request")
	})
}

type pageData struct {
	View    tasklist.View
	Notices []string
	User    string
}

// handleIndex is a page load: it refetches categories and tasks before
// drawing. Load failures are logged and the last good state is shown.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_ = s.client.Reload(r.Context())
	s.render(w, "page", pageData{
		View:    s.client.View(),
		Notices: s.ui.drain(),
		User:    s.client.CurrentUser(),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	s.client.SetForm(tasklist.Form{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
		DueDate:     r.PostFormValue("due_date"),
	})
	_ = s.client.Submit(r.Context())
	redirectHome(w, r)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.client.ClearForm()
	redirectHome(w, r)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	_ = s.client.EditTask(r.Context(), id)
	redirectHome(w, r)
}

func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	s.render(w, "confirm", struct {
		ID       int
		Question string
	}{id, tasklist.ConfirmDelete})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	s.ui.answer = r.PostFormValue("answer") == "yes"
	_ = s.client.DeleteTask(r.Context(), id)
	s.ui.answer = false
	redirectHome(w, r)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	current, err := strconv.Atoi(r.PostFormValue("completed"))
	if err != nil {
		http.Error(w, "invalid completed flag", http.StatusBadRequest)
		return
	}
	_ = s.client.ToggleCompleted(r.Context(), id, current)
	redirectHome(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.ExecuteTemplate(w, name, data); err != nil {
		s.log.WithError(err).Error("failed to render page")
	}
}

func taskID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// pageUI queues notices until the next page render and answers the
// confirmation with the value posted by the delete form.
type pageUI struct {
	notices []string
	answer  bool
}

func (u *pageUI) Alert(msg string) {
	u.notices = append(u.notices, msg)
}

func (u *pageUI) Confirm(string) bool {
	return u.answer
}

func (u *pageUI) drain() []string {
	notices := u.notices
	u.notices = nil
	return notices
}
