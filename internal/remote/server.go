// Package remote serves viewer sessions over websocket so a browser can drive
// the reducer and draw the returned matrices itself.
package remote

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/heightview/internal/logger"
	"github.com/Faultbox/heightview/internal/viewer"
)

// Config holds server settings.
type Config struct {
	// ReadLimit caps the size of one incoming message, including uploaded
	// images.
	ReadLimit int64
	// WriteTimeout bounds each outgoing message.
	WriteTimeout time.Duration
	// Options seeds every new session.
	Options viewer.Options
}

// DefaultConfig returns the stock server settings.
func DefaultConfig() Config {
	return Config{
		ReadLimit:    16 << 20,
		WriteTimeout: 10 * time.Second,
		Options:      viewer.DefaultOptions(),
	}
}

// Server upgrades HTTP requests to viewer sessions.
type Server struct {
	config   Config
	upgrader websocket.Upgrader
	log      *zap.Logger

	nextID   atomic.Uint64
	mu       sync.Mutex
	sessions map[uint64]*session
	wg       sync.WaitGroup
}

// NewServer creates a server.
func NewServer(cfg Config) *Server {
	return &Server{
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log:      logger.Named("remote"),
		sessions: make(map[uint64]*session),
	}
}

// Handler returns the HTTP routes: /ws for sessions and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeHTTP)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// ServeHTTP upgrades the request and runs a session until the client leaves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}

	id := s.nextID.Add(1)
	sess := newSession(id, conn, s.config, s.log.With(zap.Uint64("session", id)))

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	s.wg.Add(1)

	defer func() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		s.wg.Done()
	}()

	sess.log.Info("session opened", zap.String("remote", r.RemoteAddr))
	sess.run(r.Context())
	sess.log.Info("session closed")
}

// Sessions returns the number of open sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close ends all sessions and waits for them to finish.
func (s *Server) Close() {
	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}
