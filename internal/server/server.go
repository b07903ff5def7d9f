// Package server assembles the HTTP surface: Connect services, metrics, health and
// static files.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/gorilla/mux"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/splitease/splitease/internal/auth"
	"github.com/splitease/splitease/internal/metrics"
	"github.com/splitease/splitease/internal/middleware"
	"github.com/splitease/splitease/pkg/api/apiconnect"
)

// Services are the Connect handlers mounted by the router.
type Services struct {
	Auth    apiconnect.AuthServiceHandler
	Expense apiconnect.ExpenseServiceHandler
	Group   apiconnect.GroupServiceHandler
	Friend  apiconnect.FriendServiceHandler
	Balance apiconnect.BalanceServiceHandler
}

// Options configure the router.
type Options struct {
	Tokens     *auth.TokenManager
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	StaticPath string
	// Ping reports whether the store is usable; nil means always healthy.
	Ping func(ctx context.Context) error
}

// NewRouter mounts every service behind the shared interceptors. The auth service
// accepts anonymous calls; all others require a token.
func NewRouter(svcs Services, opts Options) *mux.Router {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	// Metrics see every call, auth runs before logging so log lines carry the user.
	chain := func(authn connect.Interceptor) connect.HandlerOption {
		var interceptors []connect.Interceptor
		if opts.Metrics != nil {
			interceptors = append(interceptors, opts.Metrics.Interceptor())
		}
		interceptors = append(interceptors, authn, middleware.LoggingInterceptor(opts.Logger))
		return connect.WithInterceptors(interceptors...)
	}
	public := chain(middleware.OptionalAuth(opts.Tokens))
	private := chain(middleware.RequireAuth(opts.Tokens))

	r := mux.NewRouter()
	mount := func(path string, h http.Handler) {
		r.PathPrefix(path).Handler(h)
	}
	mount(apiconnect.NewAuthServiceHandler(svcs.Auth, public))
	mount(apiconnect.NewExpenseServiceHandler(svcs.Expense, private))
	mount(apiconnect.NewGroupServiceHandler(svcs.Group, private))
	mount(apiconnect.NewFriendServiceHandler(svcs.Friend, private))
	mount(apiconnect.NewBalanceServiceHandler(svcs.Balance, private))

	r.HandleFunc("/healthz", healthz(opts.Ping)).Methods(http.MethodGet)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler()).Methods(http.MethodGet)
	}
	if opts.StaticPath != "" {
		r.PathPrefix("/").Handler(staticHandler(opts.StaticPath))
	}

	r.Use(corsMiddleware, requestLogger(opts.Logger))
	return r
}

// Handler wraps the router with h2c so Connect clients can use HTTP/2 without TLS.
func Handler(r http.Handler) http.Handler {
	return h2c.NewHandler(r, &http2.Server{})
}

func healthz(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				slog.Error("Health check failed", "error", err)
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}
}

// staticHandler serves files under dir, falling back to index.html for unknown paths.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/splitease.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		filePath := filepath.Join(dir, filepath.Clean("/"+urlPath))

		if info, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	})
}

// requestLogger logs every HTTP request at Debug; RPC outcomes are logged by the
// Connect interceptor.
func requestLogger(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
