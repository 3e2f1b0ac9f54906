package models

import (
	"sync"

	"github.com/google/uuid"
)

// Session holds one user's current image. A new load replaces the image wholesale and
// releases the previous one; Reset clears the slot.
type Session struct {
	mu      sync.RWMutex
	id      uuid.UUID
	current *ImageData
}

func NewSession() *Session {
	return &Session{id: uuid.New()}
}

func (s *Session) ID() string {
	return s.id.String()
}

// Load stores img as the current image.
func (s *Session) Load(img *ImageData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current != img {
		s.current.Close()
	}
	s.current = img
}

// Current returns the current image or nil. The image stays owned by the session.
func (s *Session) Current() *ImageData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Session) HasImage() bool {
	return s.Current() != nil
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Close()
		s.current = nil
	}
}

// Shutdown releases the current image.
func (s *Session) Shutdown() {
	s.Reset()
}
