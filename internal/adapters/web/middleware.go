package web

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
)

const requestIDHeader = "X-Request-ID"

// statusRecorder captures the status written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// instrument attaches a request-scoped logger, records metrics, and writes the access log.
// The mux records the matched pattern on the request it is handed.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		logger := s.logger.With(zap.String("request_id", requestID))
		r = r.WithContext(common.WithLogger(r.Context(), logger))

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		if s.httpMetrics != nil {
			s.httpMetrics.RecordRequest(r.Method, route, status, duration.Seconds())
		}

		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", duration))
	})
}

// recoverer turns a handler panic into a 500
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				common.LoggerFromContext(r.Context()).Error("handler panic",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"))
				http.Error(w, unexpectedErrorMessage, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// clientLimiter hands out one token bucket per client address. Old
// addresses fall out of the LRU so the table stays bounded.
type clientLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *lru.Cache[string, *rate.Limiter]
}

const clientLimiterSize = 4096

func newClientLimiter(perMinute, burst int) (*clientLimiter, error) {
	cache, err := lru.New[string, *rate.Limiter](clientLimiterSize)
	if err != nil {
		return nil, err
	}
	return &clientLimiter{
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		limiters: cache,
	}, nil
}

func (c *clientLimiter) allow(addr string) bool {
	limiter, ok := c.limiters.Get(addr)
	if !ok {
		limiter = rate.NewLimiter(c.limit, c.burst)
		if prev, loaded, _ := c.limiters.PeekOrAdd(addr, limiter); loaded {
			limiter = prev
		}
	}
	return limiter.Allow()
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimited rejects clients that exceed the configured request rate
func (s *Server) rateLimited(route string, next http.HandlerFunc) http.HandlerFunc {
	if s.limiter == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientAddr(r)) {
			if s.httpMetrics != nil {
				s.httpMetrics.RecordRateLimited(route)
			}
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
