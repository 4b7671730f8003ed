package session

import (
	"sync"

	"go.uber.org/zap"
)

// Registry keeps one session per chat.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	factory  func(chatID int64) (*Session, error)
	log      *zap.Logger
}

// NewRegistry builds sessions lazily with factory.
func NewRegistry(log *zap.Logger, factory func(chatID int64) (*Session, error)) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{sessions: make(map[int64]*Session), factory: factory, log: log}
}

// Get returns the session for chatID, creating it on first use.
func (r *Registry) Get(chatID int64) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[chatID]; ok {
		return s, nil
	}
	s, err := r.factory(chatID)
	if err != nil {
		return nil, err
	}
	r.sessions[chatID] = s
	r.log.Info("session started", zap.Int64("chat_id", chatID))
	return s, nil
}

// End closes and forgets the session for chatID.
func (r *Registry) End(chatID int64) bool {
	r.mu.Lock()
	s, ok := r.sessions[chatID]
	delete(r.sessions, chatID)
	r.mu.Unlock()
	if ok {
		s.Close()
		r.log.Info("session ended", zap.Int64("chat_id", chatID))
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// CloseAll ends every session.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[int64]*Session)
	r.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
