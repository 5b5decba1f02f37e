// Package http exposes the JSON API: expense reports, diary timelines,
// todos, habit tracking, the calendar views, and the activity feed.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"lifelog/internal/cache"
	applog "lifelog/internal/log"
	"lifelog/internal/middleware/ratelimit"
	"lifelog/internal/middleware/security"
	"lifelog/internal/middleware/trace"
	"lifelog/internal/services"
	"lifelog/internal/store"
)

// Options tunes the server's response caches.
type Options struct {
	CacheTTL        time.Duration
	CacheMaxEntries int
	DefaultPageSize int
}

func (o *Options) fill() {
	if o.CacheTTL <= 0 {
		o.CacheTTL = 30 * time.Second
	}
	if o.CacheMaxEntries <= 0 {
		o.CacheMaxEntries = 256
	}
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = services.DefaultPageSize
	}
}

type Server struct {
	http.Server

	records  *services.Records
	backend  store.Backend
	activity store.ActivityLog

	defaultPageSize int

	// Derived-view caches, purged whenever their collection changes.
	reportCache *cache.LRUCache[services.ExpenseReport]
	dayCache    *cache.LRUCache[services.DayDetail]
	cacheMgr    *cache.Manager

	rateLimiter *ratelimit.Limiter
	detector    *security.Detector

	unsubscribe  func()
	started      time.Time
	shutdownOnce sync.Once
}

// NewServer wires routes, middleware, and cache invalidation. The hub
// subscription purges derived-view caches on every collection change, so a
// mutation through this server (or a peer process feeding the same hub)
// is visible on the next read.
func NewServer(addr string, records *services.Records, backend store.Backend, activity store.ActivityLog, hub *store.Hub, opts Options) *Server {
	opts.fill()

	s := &Server{
		records:         records,
		backend:         backend,
		activity:        activity,
		defaultPageSize: opts.DefaultPageSize,
		reportCache:     cache.NewLRUCache[services.ExpenseReport](opts.CacheMaxEntries, opts.CacheTTL),
		dayCache:        cache.NewLRUCache[services.DayDetail](opts.CacheMaxEntries, opts.CacheTTL),
		cacheMgr:        cache.NewManager(),
		rateLimiter:     ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:        security.NewDetector(),
		started:         time.Now(),
	}

	s.cacheMgr.Register(s.reportCache)
	s.cacheMgr.Register(s.dayCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	if hub != nil {
		s.unsubscribe = hub.Subscribe(func(snap store.Snapshot) {
			if snap.Collection == store.Expenses {
				s.reportCache.Purge()
			}
			s.dayCache.Purge()
		})
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/expenses/report", s.handleExpenseReport)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/diary", s.handleDiaryList)
	mux.HandleFunc("GET /api/diary/stats", s.handleDiaryStats)
	mux.HandleFunc("GET /api/diary/random", s.handleDiaryRandom)
	mux.HandleFunc("POST /api/diary", s.handleCreateDiaryEntry)
	mux.HandleFunc("PUT /api/diary/{id}", s.handleUpdateDiaryEntry)
	mux.HandleFunc("DELETE /api/diary/{id}", s.handleDeleteDiaryEntry)

	mux.HandleFunc("GET /api/todos", s.handleTodoList)
	mux.HandleFunc("POST /api/todos", s.handleCreateTodo)
	mux.HandleFunc("POST /api/todos/{id}/toggle", s.handleToggleTodo)
	mux.HandleFunc("DELETE /api/todos/{id}", s.handleDeleteTodo)

	mux.HandleFunc("GET /api/habits", s.handleHabitList)
	mux.HandleFunc("POST /api/habits", s.handleCreateHabit)
	mux.HandleFunc("PUT /api/habits/{id}", s.handleRenameHabit)
	mux.HandleFunc("POST /api/habits/{id}/toggle", s.handleToggleHabit)
	mux.HandleFunc("GET /api/habits/{id}/week", s.handleHabitWeek)
	mux.HandleFunc("DELETE /api/habits/{id}", s.handleDeleteHabit)

	mux.HandleFunc("GET /api/calendar", s.handleCalendarMonth)
	mux.HandleFunc("GET /api/calendar/{date}", s.handleCalendarDay)

	mux.HandleFunc("GET /api/activity", s.handleActivity)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(s.detector.ExtractClientIP)
	limited := s.rateLimiter.Middleware(s.detector.ExtractClientIP, nil)

	requestLogger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)

	var handler http.Handler = mux
	handler = s.blockSuspicious(handler)
	handler = limited(handler)
	handler = headers.Middleware(handler)
	handler = applog.Middleware(requestLogger)(handler)
	handler = tracer.Middleware(handler)

	s.Server.Addr = addr
	s.Server.Handler = handler
	s.Server.ReadHeaderTimeout = 5 * time.Second

	return s
}

// blockSuspicious rejects requests matching known attack patterns before
// they reach a handler.
func (s *Server) blockSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Blocked suspicious request",
				"path", r.URL.Path,
				"client_ip", s.detector.ExtractClientIP(r))
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the HTTP server and the background cache/limiter routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		s.cacheMgr.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
