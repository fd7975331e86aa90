package web

import (
	"context"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"barberbook/internal/booking"
	"barberbook/internal/config"
	"barberbook/internal/ics"
	appLog "barberbook/internal/log"
	"barberbook/internal/metrics"
	"barberbook/internal/model"
	"barberbook/internal/session"
)

// sessionCookie carries the visitor's session ID.
const sessionCookie = "barberbook_session"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed all:static
var embeddedStatic embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/booking.html"))

// Options wires a Server to its collaborators.
type Options struct {
	Sessions *session.Store
	Metrics  *metrics.BookingMetrics
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
	Debug    bool
}

// Server serves the booking widget and its JSON API.
type Server struct {
	cfg      *config.Config
	loc      *time.Location
	debug    bool
	router   chi.Router
	sessions *session.Store
	metrics  *metrics.BookingMetrics
	gatherer prometheus.Gatherer
}

// NewServer constructs a new Server.
func NewServer(cfg *config.Config, opts Options) *Server {
	loc, err := cfg.Location()
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", cfg.Timezone)
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		cfg:      cfg,
		loc:      loc,
		debug:    opts.Debug,
		router:   chi.NewRouter(),
		sessions: opts.Sessions,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.router)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty username or password counts as disabled.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="barberbook", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Run serves on cfg.Listen until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen, "debug", s.debug)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handlePage)
	r.Post("/intent", s.handleFormIntent)
	r.Get("/booking.ics", s.handleInvite)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", s.handleSession)
		r.Post("/intents", s.handleAPIIntent)
		r.Get("/phone", s.handlePhone)
	})

	r.Handle("/static/*", s.staticFileServer())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// flowFor resolves the visitor's flow from the session cookie, starting a
// new session when there is none. The cookie is re-issued on every request
// so its lifetime tracks the server's idle TTL rather than creation time.
func (s *Server) flowFor(w http.ResponseWriter, r *http.Request) *booking.Flow {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}
	id, flow, _ := s.sessions.GetOrCreate(id)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.cfg.SessionTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return flow
}

// dispatch applies in to flow, recording metrics. Rejected intents are
// logged and otherwise ignored; the caller always gets a renderable view.
func (s *Server) dispatch(ctx context.Context, flow *booking.Flow, in booking.Intent) (booking.View, error) {
	start := time.Now()
	view, err := flow.Dispatch(ctx, in)
	s.metrics.ObserveIntent(intentLabel(in.Kind), err)

	if in.Kind == booking.IntentSubmit {
		s.metrics.ObserveSubmit(time.Since(start))
		if err == nil && view.Step == booking.StepConfirmed {
			s.metrics.ObserveConfirmed()
		}
	}
	if err != nil {
		appLog.Debug("intent rejected", "intent", in.Kind, "reason", err.Error(), "request_id", middleware.GetReqID(ctx))
	}
	return view, err
}

// intentLabel bounds the metric label set to the known intents; anything a
// client makes up is counted as "unknown".
func intentLabel(k booking.IntentKind) string {
	if !k.Known() {
		return "unknown"
	}
	return string(k)
}

// pageData is what the booking template renders.
type pageData struct {
	Shop  config.ShopConfig
	View  booking.View
	Error string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	flow := s.flowFor(w, r)
	s.renderPage(w, pageData{
		Shop:  s.cfg.Shop,
		View:  flow.View(),
		Error: noticeMessages[r.URL.Query().Get("notice")],
	})
}

func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, data); err != nil {
		appLog.Error("render booking page failed", err)
	}
}

// handleFormIntent applies a form-posted intent and redirects back to the
// page, so reloads never repeat the action. A rejected intent carries a
// notice code on the redirect.
func (s *Server) handleFormIntent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	flow := s.flowFor(w, r)

	in := booking.Intent{
		Kind:   booking.IntentKind(r.PostForm.Get("intent")),
		Barber: r.PostForm.Get("barber"),
		Date:   r.PostForm.Get("date"),
		Time:   r.PostForm.Get("time"),
		Step:   parseIntDefault(r.PostForm.Get("step"), 0),
		Contact: model.Contact{
			Name:  r.PostForm.Get("name"),
			Phone: r.PostForm.Get("phone"),
			Email: r.PostForm.Get("email"),
			Notes: r.PostForm.Get("notes"),
		},
	}
	if _, err := s.dispatch(r.Context(), flow, in); err != nil {
		http.Redirect(w, r, "/?notice="+noticeCode(err), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// apiResponse is the JSON response shape for /api/session and /api/intents.
type apiResponse struct {
	View  booking.View `json:"view"`
	Error string       `json:"error,omitempty"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	flow := s.flowFor(w, r)
	writeJSON(w, http.StatusOK, apiResponse{View: flow.View()})
}

// handleAPIIntent applies a JSON intent.
//
// POST /api/intents {"intent":"select-date","date":"2026-03-21"}
//
// A rejected intent still answers 200 with the unchanged view and an
// "error" message; only a malformed body is a client error.
func (s *Server) handleAPIIntent(w http.ResponseWriter, r *http.Request) {
	var in booking.Intent
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid intent body")
		return
	}
	flow := s.flowFor(w, r)

	view, err := s.dispatch(r.Context(), flow, in)
	resp := apiResponse{View: view}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type phoneResponse struct {
	Formatted string `json:"formatted"`
}

// handlePhone formats partial phone input for live typing.
//
// GET /api/phone?input=5551234
func (s *Server) handlePhone(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, phoneResponse{
		Formatted: booking.FormatPhone(r.URL.Query().Get("input")),
	})
}

// handleInvite serves the confirmed booking as an .ics attachment.
func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	flow := s.flowFor(w, r)
	b, ok := flow.Confirmed()
	if !ok {
		http.NotFound(w, r)
		return
	}

	body, err := ics.BuildInvite(b, ics.InviteConfig{
		ShopName:   s.cfg.Shop.Name,
		Location:   s.cfg.Shop.Location,
		Zone:       s.loc,
		SlotLength: s.cfg.SlotLength(),
	})
	if err != nil {
		appLog.Error("build invite failed", err, "booking_id", b.ID)
		http.Error(w, "invite unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="booking.ics"`)
	_, _ = w.Write([]byte(body))
}

// staticFileServer serves the embedded stylesheet and images under /static/.
func (s *Server) staticFileServer() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		appLog.Error("failed to initialize embedded static filesystem", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "static files not available", http.StatusServiceUnavailable)
		})
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
