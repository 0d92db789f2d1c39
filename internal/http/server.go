package http

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"donations/internal/analytics"
	"donations/internal/cache"
	"donations/internal/config"
	"donations/internal/log"
	"donations/internal/middleware/cors"
	"donations/internal/middleware/ratelimit"
	"donations/internal/middleware/security"
	"donations/internal/middleware/trace"
)

const (
	serviceName      = "donation-microservice"
	defaultCacheSize = 256
	cacheCleanup     = 10 * time.Minute
)

// Options configures the server boundary.
type Options struct {
	AppEnv          string
	FrontendURL     string
	RateLimitMax    int
	RateLimitWindow time.Duration
	// CacheTTL of zero disables the response cache.
	CacheTTL  time.Duration
	CacheSize int
	// HealthCheck, when set, is probed by /readyz.
	HealthCheck func(ctx context.Context) error
}

// OptionsFromConfig maps the application config onto server options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		AppEnv:          cfg.AppEnv,
		FrontendURL:     cfg.FrontendURL,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		CacheTTL:        cfg.CacheTTL,
	}
}

type Server struct {
	http.Server
	engine *analytics.Engine
	opts   Options
	logger *log.Logger

	cache        *cache.LRUCache[any]
	cacheManager *cache.Manager
	limiter      *ratelimit.Limiter
	detector     *security.Detector

	ready        atomic.Bool
	startedAt    time.Time
	now          func() time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, engine *analytics.Engine, opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:           addr,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		engine:   engine,
		opts:     opts,
		logger:   logger,
		detector: security.NewDetector(),
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			Max:    opts.RateLimitMax,
			Window: opts.RateLimitWindow,
		}),
		startedAt: time.Now(),
		now:       time.Now,
	}

	s.cacheManager = cache.NewManager(logger.WithComponent(log.ComponentCache).Logger)
	if opts.CacheTTL > 0 {
		size := opts.CacheSize
		if size <= 0 {
			size = defaultCacheSize
		}
		s.cache = cache.NewLRUCache[any](size, opts.CacheTTL)
		s.cacheManager.Register(s.cache)
		s.cacheManager.StartCleanup(cacheCleanup)
	}

	mux := http.NewServeMux()
	s.routes(mux)
	s.Handler = s.middleware(mux)
	s.ready.Store(engine != nil)

	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/analytics/overview", s.handleOverview)
	mux.HandleFunc("GET /api/analytics/charts/{chartType}", s.handleChart)
	mux.HandleFunc("GET /api/analytics/trends", s.handleTrends)
	mux.HandleFunc("GET /api/analytics/category-performance", s.handleCategoryPerformance)
	mux.HandleFunc("GET /api/analytics/summary", s.handleSummary)
	mux.HandleFunc("GET /api/analytics/export", s.handleExport)

	mux.HandleFunc("GET /api/donations", s.handleDonations)
	mux.HandleFunc("GET /api/donations/running-low", s.handleRunningLow)
	mux.HandleFunc("GET /api/donations/by-gender", s.handleByGender)
	mux.HandleFunc("GET /api/donations/category/{categoryId}", s.handleDonationsByCategory)
	mux.HandleFunc("GET /api/donators/top", s.handleTopDonators)
	mux.HandleFunc("GET /api/categories", s.handleCategories)

	mux.HandleFunc("/", handleNotFound)
}

// middleware wraps h, outermost first: recover, trace, security headers,
// suspicious request logging, CORS, rate limit.
func (s *Server) middleware(h http.Handler) http.Handler {
	extractIP := s.detector.ExtractClientIP

	h = s.limiter.Middleware(extractIP, func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldClientIP, extractIP(r),
			log.FieldPath, r.URL.Path)
		TooManyRequestsError().Write(w)
	})(h)
	h = cors.Middleware(cors.DefaultConfig(s.opts.FrontendURL))(h)
	h = s.detector.Middleware(s.logger.WithComponent(log.ComponentSecurity).Logger)(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = trace.NewMiddleware(s.logger, extractIP).Middleware(h)
	return s.recoverer(h)
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			s.logger.ErrorContext(r.Context(), "Panic recovered",
				log.FieldRequestID, trace.GetRequestID(r.Context()),
				log.FieldPath, r.URL.Path,
				log.FieldError, fmt.Sprint(rec),
				"stack", string(debug.Stack()))

			msg := "Something went wrong"
			if s.opts.AppEnv == "development" {
				msg = fmt.Sprint(rec)
			}
			InternalServerError(msg).Write(w)
		}()
		next.ServeHTTP(w, r)
	})
}

// cached returns compute's result through the response cache.
func (s *Server) cached(key string, compute func() any) any {
	if s.cache == nil {
		return compute()
	}
	return s.cache.GetOrCompute(key, compute)
}

func cachedList[T any](s *Server, key string, compute func() []T) []T {
	return s.cached(key, func() any { return compute() }).([]T)
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.ready.Store(false)
		s.limiter.Stop()
		s.cacheManager.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
