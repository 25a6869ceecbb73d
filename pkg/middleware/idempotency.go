package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"cabroster/pkg/logger"
)

type cachedResponse struct {
	statusCode int
	body       []byte
	header     http.Header
	storedAt   time.Time
}

type idempotencyStore struct {
	mu      sync.Mutex
	entries map[string]*cachedResponse
	ttl     time.Duration
}

func newIdempotencyStore(ttl time.Duration) *idempotencyStore {
	store := &idempotencyStore{
		entries: make(map[string]*cachedResponse),
		ttl:     ttl,
	}

	go store.cleanup()

	return store
}

func (s *idempotencyStore) get(key string) (*cachedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}

	if time.Since(entry.storedAt) > s.ttl {
		delete(s.entries, key)
		return nil, false
	}

	return entry, true
}

func (s *idempotencyStore) put(key string, resp *cachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = resp
}

func (s *idempotencyStore) cleanup() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		for key, entry := range s.entries {
			if time.Since(entry.storedAt) > s.ttl {
				delete(s.entries, key)
			}
		}
		s.mu.Unlock()
	}
}

type captureWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
	written    bool
}

func (cw *captureWriter) WriteHeader(code int) {
	if !cw.written {
		cw.statusCode = code
		cw.written = true
		cw.ResponseWriter.WriteHeader(code)
	}
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.written {
		cw.WriteHeader(http.StatusOK)
	}
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for repeated POST requests
// carrying the same Idempotency-Key header.
func Idempotency(log *logger.Logger, ttl time.Duration) func(http.Handler) http.Handler {
	store := newIdempotencyStore(ttl)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			key = UserIDFromContext(r.Context()) + ":" + r.URL.Path + ":" + key

			if cached, ok := store.get(key); ok {
				log.Info("Replaying idempotent response",
					"request_id", requestID(r),
					"path", r.URL.Path,
				)

				for name, values := range cached.header {
					for _, v := range values {
						w.Header().Add(name, v)
					}
				}
				w.Header().Set("X-Idempotent-Replay", "true")
				w.WriteHeader(cached.statusCode)
				_, _ = w.Write(cached.body)
				return
			}

			cw := &captureWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.statusCode < 500 {
				store.put(key, &cachedResponse{
					statusCode: cw.statusCode,
					body:       append([]byte(nil), cw.body.Bytes()...),
					header:     w.Header().Clone(),
					storedAt:   time.Now(),
				})
			}
		})
	}
}
