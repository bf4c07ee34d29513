package storage

import (
	"fmt"
	"sync"

	app "maskflow/internal/application"
)

// Registry — in-memory реестр активных сессий распространения.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*app.PropagationSession
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*app.PropagationSession),
	}
}

// Register добавляет сессию под уникальным идентификатором.
func (r *Registry) Register(id string, session *app.PropagationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; exists {
		return fmt.Errorf("session %q already registered", id)
	}
	r.sessions[id] = session
	return nil
}

// Get возвращает сессию по идентификатору.
func (r *Registry) Get(id string) (*app.PropagationSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	return session, exists
}

// Release освобождает сессию и убирает её из реестра.
func (r *Registry) Release(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[id]
	if !exists {
		return fmt.Errorf("session %q is not registered", id)
	}
	delete(r.sessions, id)
	return session.Release()
}

// Len возвращает число активных сессий.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
