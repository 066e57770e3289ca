// Package http exposes the finance service as a JSON API. Every response
// uses the {success, data, message} envelope; derived views are cached in
// an LRU with TTL and purged on any mutation.
package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"duit/internal/cache"
	"duit/internal/core"
	applog "duit/internal/log"
	"duit/internal/middleware/trace"
	"duit/internal/services"
)

const snapshotCacheSize = 100
const snapshotCacheTTL = 5 * time.Minute

type Server struct {
	http.Server

	finance   *services.Finance
	formatter *core.Formatter

	rateLimiter *rateLimiter

	// Derived-view caches. Mutations purge all of them so every read after
	// a write recomputes from fresh collections.
	snapshotCache *cache.LRUCache[*services.Snapshot]
	chartCache    *cache.LRUCache[[]core.CategoryTotal]
	dailyCache    *cache.LRUCache[map[string][]core.Transaction]

	cacheManager *cache.Manager
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, finance *services.Finance, formatter *core.Formatter) *Server {
	mux := http.NewServeMux()

	s := &Server{
		finance:       finance,
		formatter:     formatter,
		rateLimiter:   newRateLimiter(),
		snapshotCache: cache.NewLRUCache[*services.Snapshot](snapshotCacheSize, snapshotCacheTTL),
		chartCache:    cache.NewLRUCache[[]core.CategoryTotal](snapshotCacheSize, snapshotCacheTTL),
		dailyCache:    cache.NewLRUCache[map[string][]core.Transaction](snapshotCacheSize, snapshotCacheTTL),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.snapshotCache)
	s.cacheManager.Register(s.chartCache)
	s.cacheManager.Register(s.dailyCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("GET /api/categories/{id}", s.handleGetCategory)
	mux.HandleFunc("PUT /api/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/charts/categories", s.handleChartCategories)
	mux.HandleFunc("GET /api/charts/daily", s.handleChartDaily)

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	tracer := trace.NewMiddleware(clientIP)
	s.Server = http.Server{
		Addr:    addr,
		Handler: tracer.Middleware(applog.Middleware(logger)(s.withRateLimit(mux))),
	}

	return s
}

// withRateLimit applies the per-IP limiter to mutating requests only.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			ip := clientIP(r)
			if !s.rateLimiter.allow(ip) {
				applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
					"client_ip", ip,
					"method", r.Method,
					"path", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				respondMessage(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the originating IP, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if i := strings.IndexByte(ip, ','); i >= 0 {
			return strings.TrimSpace(ip[:i])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// purgeDerived drops every cached derived view. Called after each mutation.
func (s *Server) purgeDerived() {
	s.snapshotCache.Purge()
	s.chartCache.Purge()
	s.dailyCache.Purge()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Shutdown stops background routines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
